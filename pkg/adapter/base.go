package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/introspect/pkg/core"
)

var (
	// ErrNotConnected is returned when a catalog query runs before Connect.
	ErrNotConnected = errors.New("database connection not established")
	// ErrTableNotFound is returned when the catalog reports no columns for a table.
	ErrTableNotFound = errors.New("table not found")
	// ErrMalformedCatalog is returned when a catalog row is missing a required value.
	ErrMalformedCatalog = errors.New("malformed catalog row")
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close and catalog scanning implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger
}

// OpenDB opens and pings a database/sql handle. The handle is kept only if
// the ping succeeds.
func (b *BaseSQLAdapter) OpenDB(ctx context.Context, driverName, dsn string) error {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s connection: %w", driverName, err)
	}
	return b.UseDB(ctx, driverName, db)
}

// UseDB pings db and attaches it to the adapter. db is closed if the ping fails.
func (b *BaseSQLAdapter) UseDB(ctx context.Context, name string, db *sql.DB) error {
	// Catalog reads are strictly sequential.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping %s: %w", name, err)
	}

	b.DB = db
	return nil
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		err := b.DB.Close()
		b.DB = nil
		return err
	}
	return nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// QueryStrings runs a table listing query whose first column is a name.
func (b *BaseSQLAdapter) QueryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	if b.DB == nil {
		return nil, &core.CatalogError{Op: core.OpListTables, Err: ErrNotConnected}
	}

	rows, err := b.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &core.CatalogError{Op: core.OpListTables, Err: err}
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return nil, &core.CatalogError{Op: core.OpListTables, Err: fmt.Errorf("failed to scan table name: %w", err)}
		}
		if !name.Valid || name.String == "" {
			return nil, &core.CatalogError{Op: core.OpListTables, Err: ErrMalformedCatalog}
		}
		names = append(names, name.String)
	}

	if err := rows.Err(); err != nil {
		return nil, &core.CatalogError{Op: core.OpListTables, Err: err}
	}

	return names, nil
}

// QueryColumns runs a column listing query for table. The query must return
// five columns in this order: name, native type, nullability ("YES"/"NO"),
// default expression (nullable) and comment (nullable).
func (b *BaseSQLAdapter) QueryColumns(ctx context.Context, table, query string, args ...any) ([]core.ColumnInfo, error) {
	if b.DB == nil {
		return nil, &core.CatalogError{Op: core.OpListColumns, Table: table, Err: ErrNotConnected}
	}

	rows, err := b.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &core.CatalogError{Op: core.OpListColumns, Table: table, Err: err}
	}
	defer func() { _ = rows.Close() }()

	var columns []core.ColumnInfo
	for rows.Next() {
		var (
			name, nativeType, nullable sql.NullString
			def, comment               sql.NullString
		)
		if err := rows.Scan(&name, &nativeType, &nullable, &def, &comment); err != nil {
			return nil, &core.CatalogError{Op: core.OpListColumns, Table: table, Err: fmt.Errorf("failed to scan column metadata: %w", err)}
		}
		if !name.Valid || name.String == "" {
			return nil, &core.CatalogError{Op: core.OpListColumns, Table: table, Err: ErrMalformedCatalog}
		}

		col := core.ColumnInfo{
			Name:       name.String,
			NativeType: nativeType.String,
			Nullable:   nullable.String == "YES",
			Comment:    comment.String,
		}
		if def.Valid {
			d := def.String
			col.Default = &d
		}
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, &core.CatalogError{Op: core.OpListColumns, Table: table, Err: err}
	}

	if len(columns) == 0 {
		return nil, &core.CatalogError{Op: core.OpListColumns, Table: table, Err: ErrTableNotFound}
	}

	return columns, nil
}
