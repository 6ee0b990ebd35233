// Package postgres provides a PostgreSQL catalog adapter.
package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/leapstack-labs/introspect/pkg/adapter"
	"github.com/leapstack-labs/introspect/pkg/core"
)

// DefaultSchema is introspected when no schema is configured.
const DefaultSchema = "public"

const listTablesSQL = `
	SELECT table_name
	FROM information_schema.tables
	WHERE table_schema = $1 AND table_type = 'BASE TABLE'
	ORDER BY table_name
`

// Types are reported by their pg_type name ("int4", "varchar", "text") so
// they read like MySQL column types. Character types keep their length,
// e.g. "varchar(255)"; atttypmod carries the length plus a 4 byte header.
const listColumnsSQL = `
	SELECT
		a.attname,
		t.typname || CASE
			WHEN t.typname IN ('varchar', 'bpchar') AND a.atttypmod > 4
			THEN '(' || (a.atttypmod - 4) || ')'
			ELSE ''
		END,
		CASE WHEN a.attnotnull THEN 'NO' ELSE 'YES' END,
		pg_get_expr(d.adbin, d.adrelid),
		COALESCE(col_description(a.attrelid, a.attnum), '')
	FROM pg_catalog.pg_attribute a
	JOIN pg_catalog.pg_class c ON c.oid = a.attrelid
	JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
	JOIN pg_catalog.pg_type t ON t.oid = a.atttypid
	LEFT JOIN pg_catalog.pg_attrdef d ON d.adrelid = a.attrelid AND d.adnum = a.attnum
	WHERE n.nspname = $1 AND c.relname = $2 AND a.attnum > 0 AND NOT a.attisdropped
	ORDER BY a.attnum
`

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL adapter instance.
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
	return "postgres"
}

// Connect establishes a connection to PostgreSQL. The URL is handed to pgx,
// so libpq parameters such as sslmode work as query options.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	connCfg, err := pgx.ParseConfig(cfg.URL)
	if err != nil {
		return &core.ConfigurationError{Key: adapter.ConfigKeyDatabaseURL, Reason: "invalid postgres URL", Err: err}
	}

	a.Logger.Debug("connecting to postgres",
		slog.String("host", connCfg.Host),
		slog.String("database", connCfg.Database),
		slog.String("schema", schemaOrDefault(cfg.Schema)))

	if err := a.UseDB(ctx, "postgres", stdlib.OpenDB(*connCfg)); err != nil {
		return err
	}

	a.Cfg = cfg
	return nil
}

func schemaOrDefault(schema string) string {
	if schema == "" {
		return DefaultSchema
	}
	return schema
}

// ListTables returns the base tables of the configured schema.
func (a *Adapter) ListTables(ctx context.Context) ([]string, error) {
	return a.QueryStrings(ctx, listTablesSQL, schemaOrDefault(a.Cfg.Schema))
}

// ListColumns returns the columns of table in the configured schema.
func (a *Adapter) ListColumns(ctx context.Context, table string) ([]core.ColumnInfo, error) {
	return a.QueryColumns(ctx, table, listColumnsSQL, schemaOrDefault(a.Cfg.Schema), table)
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
