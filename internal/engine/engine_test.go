package engine

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/introspect/internal/testutil"
	"github.com/leapstack-labs/introspect/pkg/adapter"
	"github.com/leapstack-labs/introspect/pkg/core"

	_ "github.com/leapstack-labs/introspect/pkg/adapters/sqlite"
)

type fakeCatalog struct {
	tables     []string
	columns    map[string][]core.ColumnInfo
	tablesErr  error
	columnErrs map[string]error
	listed     []string
}

func (f *fakeCatalog) ListTables(context.Context) ([]string, error) {
	return f.tables, f.tablesErr
}

func (f *fakeCatalog) ListColumns(_ context.Context, table string) ([]core.ColumnInfo, error) {
	f.listed = append(f.listed, table)
	if err := f.columnErrs[table]; err != nil {
		return nil, err
	}
	return f.columns[table], nil
}

func usersCatalog() *fakeCatalog {
	return &fakeCatalog{
		tables: []string{"users", "_migrations"},
		columns: map[string][]core.ColumnInfo{
			"users": {
				{Name: "id", NativeType: "int(11)", Nullable: false},
				{Name: "email", NativeType: "varchar(255)", Nullable: true, Comment: "primary email"},
			},
			"_migrations": {
				{Name: "version", NativeType: "bigint"},
			},
		},
	}
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestEngine_Run(t *testing.T) {
	out := t.TempDir()
	catalog := usersCatalog()

	eng := New(Config{OutputDir: out, Catalog: catalog, Logger: testutil.NewTestLogger(t)})
	summary, err := eng.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"users.json"}, dirEntries(t, out))
	assert.Equal(t, []string{filepath.Join(out, "users.json")}, summary.Written)
	assert.Equal(t, []string{"_migrations"}, summary.Skipped)
	assert.Equal(t, 2, summary.Tables)
	assert.NotEmpty(t, summary.RunID)

	// Excluded tables are never introspected.
	assert.Equal(t, []string{"users"}, catalog.listed)

	doc := readJSON(t, filepath.Join(out, "users.json"))
	assert.Equal(t, "Users", doc["title"])
	assert.Equal(t, "users", doc["table_name"])
	assert.Equal(t, "object", doc["type"])

	props := doc["properties"].(map[string]any)
	id := props["id"].(map[string]any)
	assert.Equal(t, "number", id["type"])
	assert.Nil(t, id["default"])

	email := props["email"].(map[string]any)
	assert.Equal(t, []any{"string", "null"}, email["type"])
	assert.Equal(t, "primary email", email["description"])
}

func TestEngine_Run_EmptyCatalog(t *testing.T) {
	out := t.TempDir()

	summary, err := New(Config{OutputDir: out, Catalog: &fakeCatalog{}}).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summary.Written)
	assert.Empty(t, dirEntries(t, out))
}

func TestEngine_Run_OnlyExcludedTables(t *testing.T) {
	out := t.TempDir()
	catalog := &fakeCatalog{tables: []string{"_a", "_b"}}

	summary, err := New(Config{OutputDir: out, Catalog: catalog}).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, dirEntries(t, out))
	assert.Empty(t, catalog.listed)
	assert.Equal(t, []string{"_a", "_b"}, summary.Skipped)
}

func TestEngine_Run_StopsAtFirstFailure(t *testing.T) {
	out := t.TempDir()
	catalog := &fakeCatalog{
		tables: []string{"accounts", "orders", "users"},
		columns: map[string][]core.ColumnInfo{
			"accounts": {{Name: "id", NativeType: "int"}},
			"users":    {{Name: "id", NativeType: "int"}},
		},
		columnErrs: map[string]error{
			"orders": &core.CatalogError{Op: core.OpListColumns, Table: "orders", Err: errors.New("connection reset")},
		},
	}

	summary, err := New(Config{OutputDir: out, Catalog: catalog}).Run(context.Background())
	require.Error(t, err)

	var catErr *core.CatalogError
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, "orders", catErr.Table)
	assert.Contains(t, err.Error(), "introspect orders")

	// Tables after the failure are not attempted.
	assert.Equal(t, []string{"accounts", "orders"}, catalog.listed)
	assert.Equal(t, []string{"accounts.json"}, dirEntries(t, out))
	assert.Len(t, summary.Written, 1)
}

func TestEngine_Run_ListTablesError(t *testing.T) {
	catalog := &fakeCatalog{tablesErr: &core.CatalogError{Op: core.OpListTables, Err: assert.AnError}}

	summary, err := New(Config{OutputDir: t.TempDir(), Catalog: catalog}).Run(context.Background())
	var catErr *core.CatalogError
	require.ErrorAs(t, err, &catErr)
	require.NotNil(t, summary)
	assert.Empty(t, summary.Written)
}

func TestEngine_Run_MissingOutputDir(t *testing.T) {
	catalog := usersCatalog()
	out := filepath.Join(t.TempDir(), "missing")

	_, err := New(Config{OutputDir: out, Catalog: catalog}).Run(context.Background())

	var ioErr *core.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Empty(t, catalog.listed, "no catalog work before the output directory is verified")
}

func TestEngine_Run_ConfigurationErrorBeforeConnect(t *testing.T) {
	eng := New(Config{OutputDir: t.TempDir(), AdapterConfig: adapter.Config{URL: ""}})
	defer func() { _ = eng.Close() }()

	_, err := eng.Run(context.Background())
	var cfgErr *core.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "database_url", cfgErr.Key)
}

func TestEngine_Run_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{OutputDir: t.TempDir(), Catalog: usersCatalog()}).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Tables(t *testing.T) {
	catalog := usersCatalog()

	statuses, err := New(Config{Catalog: catalog}).Tables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []TableStatus{
		{Name: "users", Included: true},
		{Name: "_migrations", Included: false},
	}, statuses)
	assert.Empty(t, catalog.listed)
}

func TestEngine_Close_InjectedCatalogUntouched(t *testing.T) {
	eng := New(Config{Catalog: usersCatalog()})
	require.NoError(t, eng.Close())

	_, err := eng.Tables(context.Background())
	require.NoError(t, err)
}

func TestEngine_RunAgainstSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "app.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE user_accounts (id INTEGER NOT NULL PRIMARY KEY, email TEXT, created_at DATETIME NOT NULL);
		CREATE TABLE _migrations (version INTEGER NOT NULL);
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out := t.TempDir()
	eng := New(Config{
		AdapterConfig: adapter.Config{URL: "sqlite://" + dbPath},
		OutputDir:     out,
		Logger:        testutil.NewTestLogger(t),
	})
	defer func() { _ = eng.Close() }()

	summary, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"_migrations"}, summary.Skipped)
	assert.Equal(t, []string{"user_accounts.json"}, dirEntries(t, out))

	doc := readJSON(t, filepath.Join(out, "user_accounts.json"))
	assert.Equal(t, "User Accounts", doc["title"])

	props := doc["properties"].(map[string]any)
	assert.Equal(t, "number", props["id"].(map[string]any)["type"])
	assert.Equal(t, []any{"string", "null"}, props["email"].(map[string]any)["type"])
	assert.Equal(t, "string", props["created_at"].(map[string]any)["type"])
}
