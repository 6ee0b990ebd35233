// Package engine runs the introspection pipeline: list tables, skip excluded
// ones, assemble a schema document per table and write it to disk.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/introspect/pkg/adapter"
	"github.com/leapstack-labs/introspect/pkg/output"
	"github.com/leapstack-labs/introspect/pkg/schema"
)

// Catalog is the read-only view of a database the pipeline needs.
// Every adapter.Adapter satisfies it.
type Catalog interface {
	ListTables(ctx context.Context) ([]string, error)
	schema.ColumnLister
}

// Engine orchestrates one introspection run.
type Engine struct {
	// Catalog (lazy initialized from dbConfig unless injected)
	catalog   Catalog
	dbConfig  adapter.Config
	ownsDB    bool
	catalogMu sync.Mutex

	writer *output.Writer
	logger *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// AdapterConfig selects and configures the database adapter.
	AdapterConfig adapter.Config
	// OutputDir is the existing directory schema documents are written to.
	OutputDir string
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
	// Catalog, when set, is used instead of connecting through AdapterConfig.
	// The engine does not close an injected catalog.
	Catalog Catalog
}

// New creates a new engine with lazy database connection.
// The database is only connected when Run() or Tables() is called.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Engine{
		catalog:  cfg.Catalog,
		dbConfig: cfg.AdapterConfig,
		writer:   output.NewWriter(cfg.OutputDir, logger),
		logger:   logger,
	}
}

// ensureCatalog lazily connects to the database.
func (e *Engine) ensureCatalog(ctx context.Context) (Catalog, error) {
	e.catalogMu.Lock()
	defer e.catalogMu.Unlock()

	if e.catalog != nil {
		return e.catalog, nil
	}

	adp, err := adapter.Open(ctx, e.dbConfig, e.logger)
	if err != nil {
		return nil, err
	}

	e.catalog = adp
	e.ownsDB = true
	return adp, nil
}

// Close releases the database connection if the engine opened it.
func (e *Engine) Close() error {
	e.catalogMu.Lock()
	defer e.catalogMu.Unlock()

	if !e.ownsDB {
		return nil
	}
	e.logger.Debug("closing engine")

	adp, ok := e.catalog.(adapter.Adapter)
	e.catalog = nil
	e.ownsDB = false
	if ok {
		if err := adp.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}

// Run introspects every non-excluded table and writes its schema document.
// Tables are processed in catalog order; the first failure stops the run.
// The returned Summary is never nil and describes what was done before any
// failure, so callers can report partial progress.
func (e *Engine) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	summary := &Summary{
		RunID:     uuid.NewString(),
		OutputDir: e.writer.Dir(),
	}
	logger := e.logger.With(slog.String("run_id", summary.RunID))
	defer func() { summary.Duration = time.Since(start) }()

	// Fail on a missing output directory before touching the database.
	if err := e.writer.Check(); err != nil {
		return summary, err
	}

	catalog, err := e.ensureCatalog(ctx)
	if err != nil {
		return summary, err
	}

	tables, err := catalog.ListTables(ctx)
	if err != nil {
		return summary, err
	}
	summary.Tables = len(tables)

	logger.Info("introspecting tables", slog.Int("count", len(tables)), slog.String("out_dir", summary.OutputDir))

	asm := schema.NewAssembler(catalog, logger)
	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if schema.Excluded(table) {
			logger.Debug("skipping excluded table", slog.String("table", table))
			summary.Skipped = append(summary.Skipped, table)
			continue
		}

		ts, err := asm.Assemble(ctx, table)
		if err != nil {
			return summary, fmt.Errorf("introspect %s: %w", table, err)
		}

		path, err := e.writer.Write(ts)
		if err != nil {
			return summary, fmt.Errorf("introspect %s: %w", table, err)
		}
		summary.Written = append(summary.Written, path)
	}

	logger.Info("introspection complete",
		slog.Int("written", len(summary.Written)),
		slog.Int("skipped", len(summary.Skipped)))

	return summary, nil
}

// TableStatus reports whether a catalog table would be introspected.
type TableStatus struct {
	Name     string `json:"name"`
	Included bool   `json:"included"`
}

// Tables lists catalog tables with their inclusion status, without
// querying columns or writing anything.
func (e *Engine) Tables(ctx context.Context) ([]TableStatus, error) {
	catalog, err := e.ensureCatalog(ctx)
	if err != nil {
		return nil, err
	}

	tables, err := catalog.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]TableStatus, 0, len(tables))
	for _, table := range tables {
		statuses = append(statuses, TableStatus{Name: table, Included: !schema.Excluded(table)})
	}
	return statuses, nil
}
