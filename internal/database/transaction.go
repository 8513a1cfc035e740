package database

import (
	"context"
	"fmt"
	"strings"
)

// TxBuilder accumulates statements for a single atomic SurrealDB
// transaction. Variables are renamed per statement ($id becomes $v1_id,
// $v2_id, ...) so statements from different call sites cannot collide on
// a variable name. The built query is wrapped in BEGIN/COMMIT TRANSACTION
// and executes as one unit; there is no isolation between Add calls
// before execution.
type TxBuilder struct {
	statements []string
	vars       map[string]interface{}
	varCount   int
}

// NewTxBuilder creates an empty transaction builder
func NewTxBuilder() *TxBuilder {
	return &TxBuilder{vars: make(map[string]interface{})}
}

// Add appends a statement, renaming its variables into the builder's
// shared namespace
func (tb *TxBuilder) Add(query string, vars map[string]interface{}) {
	for name, value := range vars {
		tb.varCount++
		renamed := fmt.Sprintf("v%d_%s", tb.varCount, name)
		query = strings.ReplaceAll(query, "$"+name, "$"+renamed)
		tb.vars[renamed] = value
	}
	tb.statements = append(tb.statements, query)
}

// Build returns the full transaction query and its merged variables.
// An empty builder yields an empty query.
func (tb *TxBuilder) Build() (string, map[string]interface{}) {
	if len(tb.statements) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	for _, stmt := range tb.statements {
		sb.WriteString(stmt)
		if !strings.HasSuffix(strings.TrimSpace(stmt), ";") {
			sb.WriteString(";")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("COMMIT TRANSACTION;")

	return sb.String(), tb.vars
}

// ExecuteTransaction runs the built transaction and returns one result
// per added statement
func ExecuteTransaction(ctx context.Context, db Database, tb *TxBuilder) ([]interface{}, error) {
	query, vars := tb.Build()
	if query == "" {
		return nil, nil
	}
	return db.Query(ctx, query, vars)
}
