package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/askwind/askwind/internal/config"
	"github.com/askwind/askwind/internal/observability"
	"github.com/askwind/askwind/internal/store"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions in an interactive session",
	Long: `Start a terminal session against the seeded database. Each line is an
independent question. Type "tables" to list the tables, "exit" or "quit"
to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadFromEnv("askwind")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateAgent(); err != nil {
		return err
	}

	// Logs go to stderr so the conversation stays readable on stdout.
	logger := observability.NewConsoleLogger(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.New(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if err := st.Ensure(ctx); err != nil {
		return fmt.Errorf("prepare database: %w", err)
	}

	ag, err := buildAgent(cfg, logger, st)
	if err != nil {
		return err
	}

	session := &chatSession{
		agent:  ag,
		tables: st,
		in:     os.Stdin,
		out:    os.Stdout,
	}
	return session.run(ctx)
}

type questionAnswerer interface {
	Ask(ctx context.Context, question string) (string, error)
}

type tableLister interface {
	Tables(ctx context.Context) ([]string, error)
}

type chatSession struct {
	agent  questionAnswerer
	tables tableLister
	in     io.Reader
	out    io.Writer
}

func (s *chatSession) run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Ask questions about the Northwind data.")
	fmt.Fprintln(s.out, `Type "tables" to list the tables, "exit" or "quit" to leave.`)
	fmt.Fprintln(s.out)

	scanner := bufio.NewScanner(s.in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "exit", line == "quit":
			fmt.Fprintln(s.out, "Bye.")
			return nil
		case line == "tables":
			s.printTables(ctx)
			continue
		}

		answer, err := s.agent.Ask(ctx, line)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n\n", err)
			continue
		}
		fmt.Fprintf(s.out, "\n%s\n\n", answer)
	}
}

func (s *chatSession) printTables(ctx context.Context) {
	names, err := s.tables.Tables(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n\n", err)
		return
	}
	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"Table"})
	table.SetBorder(false)
	for _, name := range names {
		table.Append([]string{name})
	}
	table.Render()
	fmt.Fprintln(s.out)
}
