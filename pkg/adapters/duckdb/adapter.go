// Package duckdb provides a DuckDB catalog adapter.
package duckdb

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/introspect/pkg/adapter"
	"github.com/leapstack-labs/introspect/pkg/core"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// DefaultSchema is introspected when no schema is configured.
const DefaultSchema = "main"

const listTablesSQL = `
	SELECT table_name
	FROM duckdb_tables()
	WHERE schema_name = ? AND NOT internal
	ORDER BY table_name
`

// DuckDB reports upper-case type names ("VARCHAR", "INTEGER"); they are
// lower-cased to line up with the type mapping rules.
const listColumnsSQL = `
	SELECT
		column_name,
		lower(data_type),
		CASE WHEN is_nullable THEN 'YES' ELSE 'NO' END,
		column_default,
		comment
	FROM duckdb_columns()
	WHERE schema_name = ? AND table_name = ?
	ORDER BY column_index
`

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// DialectName returns the SQL dialect for this adapter.
func (a *Adapter) DialectName() string {
	return "duckdb"
}

// Connect opens the DuckDB database named by the URL path. duckdb:// with no
// path opens an in-memory database. Query parameters such as
// access_mode=read_only are passed to the driver.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path, rawQuery, err := adapter.FileURL(cfg.URL)
	if err != nil {
		return err
	}

	dsn := path
	if rawQuery != "" {
		dsn += "?" + rawQuery
	}

	a.Logger.Debug("opening duckdb database", slog.String("path", path))

	if err := a.OpenDB(ctx, "duckdb", dsn); err != nil {
		return err
	}

	a.Cfg = cfg
	return nil
}

func (a *Adapter) schema() string {
	if a.Cfg.Schema == "" {
		return DefaultSchema
	}
	return a.Cfg.Schema
}

// ListTables returns the base tables of the configured schema.
func (a *Adapter) ListTables(ctx context.Context) ([]string, error) {
	return a.QueryStrings(ctx, listTablesSQL, a.schema())
}

// ListColumns returns the columns of table in the configured schema.
func (a *Adapter) ListColumns(ctx context.Context, table string) ([]core.ColumnInfo, error) {
	return a.QueryColumns(ctx, table, listColumnsSQL, a.schema(), table)
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
