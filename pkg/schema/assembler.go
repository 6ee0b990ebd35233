// Package schema assembles table schema documents from catalog metadata.
package schema

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/introspect/pkg/core"
	"github.com/leapstack-labs/introspect/pkg/typemap"
)

// ColumnLister lists the columns of one table in native column order.
type ColumnLister interface {
	ListColumns(ctx context.Context, table string) ([]core.ColumnInfo, error)
}

// Assembler builds one TableSchema per table.
type Assembler struct {
	columns ColumnLister
	logger  *slog.Logger
}

// NewAssembler creates an Assembler reading columns from columns.
// If logger is nil, a discard logger is used.
func NewAssembler(columns ColumnLister, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Assembler{columns: columns, logger: logger}
}

// Assemble lists the columns of table and builds its schema document.
// Catalog errors are returned unchanged.
func (a *Assembler) Assemble(ctx context.Context, table string) (*core.TableSchema, error) {
	columns, err := a.columns.ListColumns(ctx, table)
	if err != nil {
		return nil, err
	}

	ts := core.NewTableSchema(table, Title(table))
	for _, col := range columns {
		prop := core.NewPropertySchema(col.Default, col.Comment, typemap.Map(col.NativeType, col.Nullable))

		// A catalog should never report the same column twice
		if replaced := ts.Properties.Set(col.Name, prop); replaced {
			a.logger.Warn("duplicate column reported by catalog, keeping last definition",
				slog.String("table", table),
				slog.String("column", col.Name))
		}

		if !prop.Type.Base.Known() {
			a.logger.Debug("no semantic type for native type",
				slog.String("table", table),
				slog.String("column", col.Name),
				slog.String("native_type", col.NativeType))
		}
	}

	a.logger.Debug("assembled table schema",
		slog.String("table", table),
		slog.Int("properties", ts.Properties.Len()))

	return ts, nil
}
