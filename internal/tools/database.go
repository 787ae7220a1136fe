package tools

import (
	"context"
	"fmt"
	"strings"
)

// executeQuery runs arbitrary SQL handed over by the model and returns the
// rows as indented JSON. The store rejects nothing beyond empty input here;
// the model is trusted with read queries against the demo dataset.
func (r *Registry) executeQuery(ctx context.Context, args map[string]any) (string, bool) {
	sqlText, err := stringArg(args, "query")
	if err != nil {
		return fmt.Sprintf("Error executing query: %v", err), true
	}
	if strings.TrimSpace(sqlText) == "" {
		return "Error executing query: query must not be empty", true
	}

	result, err := r.querier.Query(ctx, sqlText)
	if err != nil {
		return fmt.Sprintf("Error executing query: %v", err), true
	}
	text, err := encodeJSON(result.Rows)
	if err != nil {
		return fmt.Sprintf("Error executing query: %v", err), true
	}
	return text, false
}

// schemaColumn is the wire shape of one described column.
type schemaColumn struct {
	Column   string  `json:"column"`
	Type     string  `json:"type"`
	Nullable bool    `json:"nullable"`
	Default  *string `json:"default"`
}

func (r *Registry) tableSchema(ctx context.Context, args map[string]any) (string, bool) {
	table, err := stringArg(args, "table_name")
	if err != nil {
		return fmt.Sprintf("Error getting schema: %v", err), true
	}

	columns, err := r.querier.TableColumns(ctx, table)
	if err != nil {
		return fmt.Sprintf("Error getting schema: %v", err), true
	}
	described := make([]schemaColumn, 0, len(columns))
	for _, col := range columns {
		described = append(described, schemaColumn{
			Column:   col.Name,
			Type:     col.Type,
			Nullable: col.Nullable,
			Default:  col.Default,
		})
	}
	text, err := encodeJSON(described)
	if err != nil {
		return fmt.Sprintf("Error getting schema: %v", err), true
	}
	return text, false
}

func (r *Registry) listTables(ctx context.Context, _ map[string]any) (string, bool) {
	tables, err := r.querier.Tables(ctx)
	if err != nil {
		return fmt.Sprintf("Error listing tables: %v", err), true
	}
	text, err := encodeJSON(tables)
	if err != nil {
		return fmt.Sprintf("Error listing tables: %v", err), true
	}
	return text, false
}
