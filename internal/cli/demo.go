package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/askwind/askwind/internal/config"
	"github.com/askwind/askwind/internal/observability"
	"github.com/askwind/askwind/internal/store"
)

// demoQuestions walks through the kinds of analysis the tools support, from
// canned rollups to free-form SQL the model has to write itself.
var demoQuestions = []string{
	"What are the top 5 best-selling products?",
	"Show me sales performance by category",
	"Which customers have placed the most orders?",
	"What's the average order value?",
	"Show me the database schema for the Products table",
	"Which suppliers provide the most products?",
	"What are the total sales by country?",
	"Show me employee sales performance",
	"What products are currently out of stock?",
	"Analyze the seasonal trends in our sales data",
}

const demoAnswerLimit = 500

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted tour of example questions",
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadFromEnv("askwind")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateAgent(); err != nil {
		return err
	}

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
	return runDemoScript(ctx, ag, os.Stdout)
}

func runDemoScript(ctx context.Context, ag questionAnswerer, out io.Writer) error {
	for i, question := range demoQuestions {
		fmt.Fprintf(out, "[%d/%d] %s\n", i+1, len(demoQuestions), question)

		answer, err := ag.Ask(ctx, question)
		if err != nil {
			return fmt.Errorf("question %d failed: %w", i+1, err)
		}
		fmt.Fprintf(out, "%s\n\n", truncate(answer, demoAnswerLimit))
	}
	return nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
