package core

import (
	"fmt"
)

// Catalog operations reported in CatalogError.Op.
const (
	OpListTables  = "list tables"
	OpListColumns = "list columns"
)

// ConfigurationError is returned when a required configuration value is
// missing or malformed. It is raised before any connection attempt.
type ConfigurationError struct {
	Key    string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ConnectionError is returned when the database connection cannot be
// established (driver open, network or authentication failure).
type ConnectionError struct {
	Scheme string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s database: %v", e.Scheme, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// CatalogError is returned when a catalog query fails or returns malformed data.
// Table is empty for table listing failures.
type CatalogError struct {
	Op    string
	Table string
	Err   error
}

func (e *CatalogError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("catalog %s for table %q: %v", e.Op, e.Table, e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }

// IOError is returned when the output directory is missing or not writable,
// or when writing a schema document fails.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
