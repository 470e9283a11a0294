// Package mojibake repairs strings that were UTF-8 encoded, then decoded as
// Latin-1 by the exporter. Facebook exports store every non-ASCII field that way.
package mojibake

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Repair decodes the Latin-1 bytes of s as UTF-8. s is returned unchanged
// when it holds a rune above U+00FF (it was never mangled) or when the
// recovered bytes are not valid UTF-8.
func Repair(s string) string {
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil || !utf8.Valid(b) {
		return s
	}
	return string(b)
}
