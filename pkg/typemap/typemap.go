// Package typemap maps native database column types to semantic types.
package typemap

import (
	"strings"

	"github.com/leapstack-labs/introspect/pkg/core"
)

// Map classifies a native column type string.
//
// Matching is case-sensitive. "text" and "datetime" must match exactly,
// "varchar" anywhere in the string marks a string. Any type containing "int"
// (which covers "tinyint") is a number, and that check runs last so it wins.
// Types matching neither rule get core.TagUnknown. A nullable column always
// gets the null pairing, including an unknown base tag.
func Map(nativeType string, nullable bool) core.SemanticType {
	base := core.TagUnknown

	if nativeType == "text" || strings.Contains(nativeType, "varchar") || nativeType == "datetime" {
		base = core.TagString
	}

	if strings.Contains(nativeType, "int") || strings.Contains(nativeType, "tinyint") {
		base = core.TagNumber
	}

	return core.SemanticType{Base: base, Nullable: nullable}
}
