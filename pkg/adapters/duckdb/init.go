// Package duckdb provides a DuckDB catalog adapter.
//
// This file registers the adapter for the duckdb:// scheme.
// Import this package with a blank identifier to register it:
//
//	import _ "github.com/leapstack-labs/introspect/pkg/adapters/duckdb"
package duckdb

import (
	"log/slog"

	"github.com/leapstack-labs/introspect/pkg/adapter"
)

func init() {
	adapter.Register("duckdb", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
