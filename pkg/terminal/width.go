// Package terminal answers the two questions nestbox asks of the terminal:
// how many columns are available right now, and which escape sequences the
// output can render.
package terminal

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// DefaultColumns is used when neither the terminal nor $COLUMNS reports a width
const DefaultColumns = 80

// WidthOracle reports the current terminal width in columns.
// Implementations are queried on every draw and must not cache.
type WidthOracle interface {
	Columns() int
}

// Fixed is a WidthOracle that always reports the same width
type Fixed int

// Columns implements WidthOracle
func (f Fixed) Columns() int {
	return int(f)
}

type fdProvider interface {
	Fd() uintptr
}

// writerWidth queries the terminal behind a writer each time it is asked
type writerWidth struct {
	fd    int
	hasFd bool
}

// ForWriter returns a WidthOracle for the terminal behind w. Writers without a
// file descriptor fall back to $COLUMNS and then DefaultColumns.
func ForWriter(w io.Writer) WidthOracle {
	if v, ok := w.(fdProvider); ok {
		return &writerWidth{fd: int(v.Fd()), hasFd: true}
	}
	return &writerWidth{}
}

// Columns implements WidthOracle
func (o *writerWidth) Columns() int {
	if o.hasFd {
		if cols, _, err := term.GetSize(o.fd); err == nil && cols > 0 {
			return cols
		}
	}
	return envColumns()
}

func envColumns() int {
	if v := os.Getenv("COLUMNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultColumns
}
