// Package adapter defines the catalog contract every database adapter
// implements, plus the registry that maps URL schemes to adapters.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories and
// register themselves from init(). Import them with a blank identifier.
package adapter

import (
	"context"

	"github.com/leapstack-labs/introspect/pkg/core"
)

// Config is an alias for core.AdapterConfig.
type Config = core.AdapterConfig

// Adapter is a connected view of one database's catalog.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// ListTables returns the base table names visible in the connected
	// database (or configured schema) in catalog order.
	ListTables(ctx context.Context) ([]string, error)

	// ListColumns returns the columns of table in ordinal order.
	// Failures are reported as *core.CatalogError.
	ListColumns(ctx context.Context, table string) ([]core.ColumnInfo, error)

	// DialectName returns the canonical database name, e.g. "postgres".
	DialectName() string
}
