// Package utils holds the path and list helpers shared by config, the rc
// file reader and the outline collector.
package utils

import (
	"strings"
	"unicode"
)

// SplitList splits a keyword list written as "TODO, WAIT" or "TODO WAIT".
// Commas and whitespace both separate items; empty items are dropped.
func SplitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
