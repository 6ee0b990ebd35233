// Package output writes table schema documents to disk, one JSON file per table.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/introspect/pkg/core"
)

// DefaultDir is the output directory used when none is configured,
// relative to the working directory.
const DefaultDir = "out"

// FileExt is appended to the table name to form the file name.
const FileExt = ".json"

var (
	// ErrNotDirectory is returned when the output path exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrInvalidFileName is returned for table names that cannot be used as a file name.
	ErrInvalidFileName = errors.New("table name is not a valid file name")
)

// Writer serializes schema documents into a fixed directory.
// The directory must already exist; Writer never creates it.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a Writer for dir. An empty dir selects DefaultDir.
// If logger is nil, a discard logger is used.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	if dir == "" {
		dir = DefaultDir
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Writer{dir: dir, logger: logger}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Check verifies that the output directory exists and is a directory.
func (w *Writer) Check() error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return &core.IOError{Op: "stat output directory", Path: w.dir, Err: err}
	}
	if !info.IsDir() {
		return &core.IOError{Op: "stat output directory", Path: w.dir, Err: ErrNotDirectory}
	}
	return nil
}

// PathFor returns the file path a table's schema is written to.
func (w *Writer) PathFor(table string) string {
	return filepath.Join(w.dir, table+FileExt)
}

// Write serializes schema to <dir>/<table_name>.json, overwriting any
// existing file, and returns the path written.
func (w *Writer) Write(schema *core.TableSchema) (string, error) {
	path := w.PathFor(schema.TableName)
	if !validFileName(schema.TableName) {
		return "", &core.IOError{Op: "write", Path: path, Err: ErrInvalidFileName}
	}

	if err := w.Check(); err != nil {
		return "", err
	}

	data, err := Encode(schema)
	if err != nil {
		return "", &core.IOError{Op: "encode", Path: path, Err: err}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // schema documents are meant to be shared
		return "", &core.IOError{Op: "write", Path: path, Err: err}
	}

	w.logger.Debug("wrote schema document",
		slog.String("table", schema.TableName),
		slog.String("path", path),
		slog.Int("bytes", len(data)))

	return path, nil
}

// Encode returns the canonical serialization of schema: two-space indented
// JSON with fields in declaration order, no HTML escaping and a trailing newline.
func Encode(schema *core.TableSchema) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(schema); err != nil {
		return nil, fmt.Errorf("failed to encode schema for %s: %w", schema.TableName, err)
	}
	return buf.Bytes(), nil
}

// validFileName rejects names that would escape the output directory.
func validFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`+"\x00")
}
