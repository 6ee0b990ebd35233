package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ObjectKind is the constant "type" of every table schema document.
const ObjectKind = "object"

// Tag is a coarse semantic type classification.
type Tag string

const (
	TagString Tag = "string"
	TagNumber Tag = "number"
	// TagUnknown marks a native type no rule matched. It serializes as JSON null.
	TagUnknown Tag = ""
)

// Known reports whether the tag is a real type rather than TagUnknown.
func (t Tag) Known() bool { return t != TagUnknown }

func (t Tag) value() any {
	if !t.Known() {
		return nil
	}
	return string(t)
}

// SemanticType is the result of mapping a native column type.
//
// A non-nullable type serializes as its bare tag ("string", "number" or null).
// A nullable type serializes as the pair [tag, "null"], including [null, "null"]
// for unknown nullable columns.
type SemanticType struct {
	Base     Tag
	Nullable bool
}

// MarshalJSON implements json.Marshaler.
func (t SemanticType) MarshalJSON() ([]byte, error) {
	if t.Nullable {
		return json.Marshal([]any{t.Base.value(), "null"})
	}
	return json.Marshal(t.Base.value())
}

func (t SemanticType) String() string {
	base := "null"
	if t.Base.Known() {
		base = string(t.Base)
	}
	if t.Nullable {
		return fmt.Sprintf("[%s null]", base)
	}
	return base
}

// PropertySchema describes one column inside a table schema document.
// ACL, Collections, Validation and APIAlias are left empty for manual curation.
type PropertySchema struct {
	Default     *string        `json:"default"`
	Description string         `json:"description"`
	Type        SemanticType   `json:"type"`
	ACL         map[string]any `json:"acl"`
	Collections map[string]any `json:"collections"`
	Validation  []any          `json:"validation"`
	APIAlias    string         `json:"api_alias"`
}

// NewPropertySchema returns a PropertySchema with empty curation stubs.
func NewPropertySchema(def *string, description string, typ SemanticType) PropertySchema {
	return PropertySchema{
		Default:     def,
		Description: description,
		Type:        typ,
		ACL:         map[string]any{},
		Collections: map[string]any{},
		Validation:  []any{},
	}
}

// Properties maps column names to their PropertySchema, preserving
// insertion order so output follows the catalog's column order.
// The zero value is ready to use.
type Properties struct {
	keys   []string
	values map[string]PropertySchema
}

// Set stores prop under name. An existing entry keeps its position and is
// replaced; replaced reports whether that happened.
func (p *Properties) Set(name string, prop PropertySchema) (replaced bool) {
	if p.values == nil {
		p.values = make(map[string]PropertySchema)
	}
	if _, ok := p.values[name]; ok {
		replaced = true
	} else {
		p.keys = append(p.keys, name)
	}
	p.values[name] = prop
	return replaced
}

// Get returns the property stored under name.
func (p *Properties) Get(name string) (PropertySchema, bool) {
	prop, ok := p.values[name]
	return prop, ok
}

// Keys returns the property names in insertion order.
func (p *Properties) Keys() []string {
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// Len returns the number of properties.
func (p *Properties) Len() int { return len(p.keys) }

// MarshalJSON implements json.Marshaler, emitting keys in insertion order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(name)
		if err != nil {
			return nil, err
		}
		val, err := marshalNoEscape(p.values[name])
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalNoEscape encodes v without HTML escaping so comments and defaults
// containing <, > or & are written verbatim.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// TableSchema is the schema document generated for one table.
type TableSchema struct {
	Title       string     `json:"title"`
	TableName   string     `json:"table_name"`
	Description string     `json:"description"`
	Kind        string     `json:"type"`
	Properties  Properties `json:"properties"`
}

// NewTableSchema returns an empty TableSchema for the named table.
func NewTableSchema(tableName, title string) *TableSchema {
	return &TableSchema{
		Title:     title,
		TableName: tableName,
		Kind:      ObjectKind,
	}
}
