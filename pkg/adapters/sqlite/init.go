package sqlite

import (
	"log/slog"

	"github.com/leapstack-labs/introspect/pkg/adapter"
)

func init() {
	factory := func(logger *slog.Logger) adapter.Adapter { return New(logger) }
	for _, scheme := range []string{"sqlite", "sqlite3", "file"} {
		adapter.Register(scheme, factory)
	}
}
