// Package emit writes parser tables as a table-file literal.
package emit

import (
	"fmt"
	"io"
	"strings"

	"racc/internal/tables"
)

const (
	// perLine is the number of entries on one data line.
	perLine = 10
	// nilField is an absent entry, as wide as a %6d field.
	nilField = "   nil"
	// closing ends every array literal.
	closing = " ]\n\n"
)

// Render formats cells as the body of an array literal: six-column fields,
// comma separated, a line break before every 11th, 21st, ... entry, no
// trailing separator, then the closing marker.
func Render(cells []tables.Cell) string {
	var sb strings.Builder
	sb.Grow(len(cells)*7 + len(cells)/perLine + len(closing))
	for i, c := range cells {
		if i > 0 {
			sb.WriteByte(',')
			if i%perLine == 0 {
				sb.WriteByte('\n')
			}
		}
		if c.Valid {
			fmt.Fprintf(&sb, "%6d", c.Value)
		} else {
			sb.WriteString(nilField)
		}
	}
	sb.WriteString(closing)
	return sb.String()
}

// WriteArray writes "<name> = [" followed by the rendered cells.
func WriteArray(w io.Writer, name string, cells []tables.Cell) error {
	if _, err := io.WriteString(w, name+" = [\n"); err != nil {
		return err
	}
	_, err := io.WriteString(w, Render(cells))
	return err
}
