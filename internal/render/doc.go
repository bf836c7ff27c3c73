// Package render turns a report into terminal output.
//
// Rows are padded into columns by visible width so colored and plain output
// line up the same way. Colors are opt-in; without them the text is written
// as parsed, markup delimiters included.
package render
