package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/askwind/askwind/internal/agent"
	"github.com/askwind/askwind/internal/api"
	"github.com/askwind/askwind/internal/api/uistatic"
	"github.com/askwind/askwind/internal/config"
	"github.com/askwind/askwind/internal/observability"
	"github.com/askwind/askwind/internal/store"
	"github.com/askwind/askwind/internal/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the askwind web server",
	Long: `Start the HTTP server: the ask page at /, the JSON API at /query and
/tables, and Prometheus metrics at /metrics.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadFromEnv("askwind")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateAgent(); err != nil {
		return err
	}

	logger := observability.NewLogger(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.New(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if err := st.Ensure(ctx); err != nil {
		return fmt.Errorf("prepare database: %w", err)
	}
	logger.Info("database ready", slog.String("path", cfg.Store.Path))

	ag, err := buildAgent(cfg, logger, st)
	if err != nil {
		return err
	}

	handler := api.NewHandler(cfg, api.Dependencies{
		Logger: logger,
		Agent:  ag,
		Tables: st,
		UI:     uistatic.Handler(),
	})
	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", cfg.HTTP.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	logger.Info("shutting down server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		_ = server.Close()
		return err
	}
	return nil
}

func buildAgent(cfg config.Config, logger *slog.Logger, st *store.Store) (*agent.Agent, error) {
	llm, err := agent.NewAnthropicClient(cfg.Agent)
	if err != nil {
		return nil, fmt.Errorf("build llm client: %w", err)
	}
	registry := tools.NewRegistry(st, logger)
	ag, err := agent.New(agent.Config{
		Logger:    logger,
		LLM:       llm,
		Tools:     registry,
		MaxRounds: cfg.Agent.MaxRounds,
	})
	if err != nil {
		return nil, fmt.Errorf("build agent: %w", err)
	}
	return ag, nil
}
