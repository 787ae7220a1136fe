// Package tools exposes the data-access operations the model may call. Every
// handler returns plain text: result rows as indented JSON on success, a
// marker-prefixed error string on failure. Failures never escape as Go
// errors; the model reads them like any other tool output.
package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/askwind/askwind/internal/agent"
	"github.com/askwind/askwind/internal/observability"
	"github.com/askwind/askwind/internal/store"
)

// Querier is the slice of the store the tool handlers need.
type Querier interface {
	Query(ctx context.Context, sqlText string, args ...any) (*store.QueryResult, error)
	TableColumns(ctx context.Context, table string) ([]store.Column, error)
	Tables(ctx context.Context) ([]string, error)
}

type handlerFunc func(ctx context.Context, args map[string]any) (text string, isError bool)

type entry struct {
	tool    agent.Tool
	handler handlerFunc
}

// Registry holds the registered tools and dispatches calls by exact name.
// It implements agent.ToolClient.
type Registry struct {
	log     *slog.Logger
	querier Querier
	entries []entry
	byName  map[string]int
}

func NewRegistry(querier Querier, log *slog.Logger) *Registry {
	r := &Registry{
		log:     log,
		querier: querier,
		byName:  make(map[string]int),
	}
	r.register(agent.Tool{
		Name:        "execute_query",
		Description: "Execute a SQL query against the Northwind database and return the result rows as JSON",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The SQL query to execute, in SQLite syntax",
				},
			},
			"required": []string{"query"},
		},
	}, r.executeQuery)
	r.register(agent.Tool{
		Name:        "get_table_schema",
		Description: "Get schema information for a table: column names, types, nullability, and defaults",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"table_name": map[string]any{
					"type":        "string",
					"description": "Name of the table to describe",
				},
			},
			"required": []string{"table_name"},
		},
	}, r.tableSchema)
	r.register(agent.Tool{
		Name:        "list_tables",
		Description: "List all tables in the database",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}, r.listTables)
	r.register(agent.Tool{
		Name:        "analyze_sales_by_category",
		Description: "Analyze sales performance by product category: order count, quantity, revenue, and average order value",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}, r.salesByCategory)
	r.register(agent.Tool{
		Name:        "get_top_products",
		Description: "Get the top performing products by total revenue",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of products to return (default 10)",
				},
			},
		},
	}, r.topProducts)
	return r
}

func (r *Registry) register(tool agent.Tool, handler handlerFunc) {
	r.byName[tool.Name] = len(r.entries)
	r.entries = append(r.entries, entry{tool: tool, handler: handler})
}

// ListTools reports the registered tools in registration order.
func (r *Registry) ListTools(_ context.Context) ([]agent.Tool, error) {
	tools := make([]agent.Tool, 0, len(r.entries))
	for _, e := range r.entries {
		tools = append(tools, e.tool)
	}
	return tools, nil
}

// CallToolText resolves name and runs the handler. Unknown names come back
// as error text rather than a Go error so the model can recover by picking
// a registered tool.
func (r *Registry) CallToolText(ctx context.Context, name string, args map[string]any) (string, bool, error) {
	index, ok := r.byName[name]
	if !ok {
		return fmt.Sprintf("Error: unknown tool %q", name), true, nil
	}

	start := time.Now()
	text, isErr := r.entries[index].handler(ctx, args)
	elapsed := time.Since(start)
	observability.ObserveToolCall(name, isErr, elapsed)
	if r.log != nil {
		r.log.DebugContext(ctx, "tool_call",
			slog.String("tool", name),
			slog.Bool("error", isErr),
			slog.Duration("duration", elapsed),
		)
	}
	return text, isErr, nil
}

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string, got %T", key, raw)
	}
	return value, nil
}
