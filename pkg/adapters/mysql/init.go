package mysql

import (
	"log/slog"

	"github.com/leapstack-labs/introspect/pkg/adapter"
)

func init() {
	factory := func(logger *slog.Logger) adapter.Adapter { return New(logger) }
	adapter.Register("mysql", factory)
	adapter.Register("mariadb", factory)
}
