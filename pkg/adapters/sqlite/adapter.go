// Package sqlite provides a SQLite catalog adapter backed by the pure-Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/introspect/pkg/adapter"
	"github.com/leapstack-labs/introspect/pkg/core"

	_ "modernc.org/sqlite" // sqlite driver
)

const memoryPath = ":memory:"

const listTablesSQL = `
	SELECT name
	FROM sqlite_master
	WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	ORDER BY name
`

// SQLite type names are case-insensitive; they are lower-cased so that
// "TEXT" and "text" map to the same semantic type. Column comments do not exist.
const listColumnsSQL = `
	SELECT
		name,
		lower(type),
		CASE WHEN "notnull" = 1 THEN 'NO' ELSE 'YES' END,
		dflt_value,
		''
	FROM pragma_table_info(?)
	ORDER BY cid
`

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
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
	return "sqlite"
}

// Connect opens the database file named by the URL. A file: URL is handed to
// the driver unchanged so SQLite URI parameters (mode=ro, ...) apply.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return err
	}

	a.Logger.Debug("opening sqlite database", slog.String("dsn", dsn))

	if err := a.OpenDB(ctx, "sqlite", dsn); err != nil {
		return err
	}

	a.Cfg = cfg
	return nil
}

func buildDSN(cfg adapter.Config) (string, error) {
	if cfg.Type == "file" {
		return cfg.URL, nil
	}

	path, rawQuery, err := adapter.FileURL(cfg.URL)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = memoryPath
	}
	if rawQuery != "" {
		path += "?" + rawQuery
	}
	return path, nil
}

// ListTables returns user tables; SQLite's internal sqlite_* tables are omitted.
func (a *Adapter) ListTables(ctx context.Context) ([]string, error) {
	return a.QueryStrings(ctx, listTablesSQL)
}

// ListColumns returns the columns of table as declared in its CREATE TABLE.
func (a *Adapter) ListColumns(ctx context.Context, table string) ([]core.ColumnInfo, error) {
	return a.QueryColumns(ctx, table, listColumnsSQL, table)
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
