package schema

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Title converts a table name into a human-readable title.
// The name is split on underscores, the first rune of each segment is
// upper-cased and the segments are joined with single spaces. The rest of
// each segment is left untouched, so "user_accounts" becomes "User Accounts"
// and "userID" becomes "UserID". Empty segments stay empty.
func Title(name string) string {
	upper := cases.Upper(language.Und)

	segments := strings.Split(name, "_")
	for i, seg := range segments {
		r, size := utf8.DecodeRuneInString(seg)
		if size == 0 || r == utf8.RuneError {
			continue
		}
		segments[i] = upper.String(string(r)) + seg[size:]
	}
	return strings.Join(segments, " ")
}

// Excluded reports whether a table is left out of introspection.
// Tables whose name begins with an underscore are internal by convention.
func Excluded(table string) bool {
	return strings.HasPrefix(table, "_")
}
