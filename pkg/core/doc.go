// Package core defines the shared language of introspect.
//
// This package contains:
//   - Catalog entities (ColumnInfo) as reported by database adapters
//   - Schema document types (TableSchema, PropertySchema, SemanticType)
//   - Adapter configuration (AdapterConfig)
//   - The error taxonomy shared by every stage of the pipeline
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
