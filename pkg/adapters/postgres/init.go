// Package postgres provides a PostgreSQL catalog adapter.
//
// This file registers the adapter for the postgres:// and postgresql://
// schemes. Import this package with a blank identifier to register it:
//
//	import _ "github.com/leapstack-labs/introspect/pkg/adapters/postgres"
package postgres

import (
	"log/slog"

	"github.com/leapstack-labs/introspect/pkg/adapter"
)

func init() {
	factory := func(logger *slog.Logger) adapter.Adapter { return New(logger) }
	adapter.Register("postgres", factory)
	adapter.Register("postgresql", factory)
}
