// Package api serves the ask page and the JSON endpoints in front of the
// question-answering agent.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/askwind/askwind/internal/config"
	"github.com/askwind/askwind/internal/observability"
)

// QuestionAnswerer runs one natural-language question to completion.
type QuestionAnswerer interface {
	Ask(ctx context.Context, question string) (string, error)
}

// TableLister reports the table names in the backing database.
type TableLister interface {
	Tables(ctx context.Context) ([]string, error)
}

type Dependencies struct {
	Logger *slog.Logger
	Agent  QuestionAnswerer
	Tables TableLister
	UI     http.Handler
}

func NewHandler(cfg config.Config, deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "service": cfg.Service.Name})
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /query", func(w http.ResponseWriter, r *http.Request) {
		handleQuery(deps, w, r)
	})
	mux.HandleFunc("GET /tables", func(w http.ResponseWriter, r *http.Request) {
		handleTables(deps, w, r)
	})

	if deps.UI != nil {
		mux.Handle("GET /{path...}", deps.UI)
	}

	middlewares := []func(http.Handler) http.Handler{
		observability.TraceMiddleware,
		observability.MetricsMiddleware,
	}
	if deps.Logger != nil {
		middlewares = append(middlewares, observability.LoggingMiddleware(deps.Logger))
	}
	return chain(mux, middlewares...)
}

func chain(base http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	wrapped := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
