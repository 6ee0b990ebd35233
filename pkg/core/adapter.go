package core

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	// Type is the registered adapter name, normally the URL scheme.
	Type string
	// URL is the connection URL as supplied by the user.
	URL string
	// Schema restricts introspection to one schema for adapters that have them.
	// Empty selects the adapter's default.
	Schema string
	// Options holds driver-specific settings.
	Options map[string]string
}

// ColumnInfo describes one column as reported by a database catalog.
type ColumnInfo struct {
	// Name is unique within the owning table and never empty.
	Name string
	// NativeType is the raw database type string, e.g. "varchar(255)".
	NativeType string
	Nullable   bool
	// Default is the declared default verbatim; nil when the catalog reports NULL.
	Default *string
	// Comment is the free-text column description, empty if none.
	Comment string
}
