// Package terminal answers questions about the process's console.
package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

// DefaultWidth is assumed for anything that is not a sized terminal
const DefaultWidth = 80

// IsTerminal reports whether f is attached to an interactive terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the column count of the terminal behind w.
// Writers that are not terminals get DefaultWidth.
func Width(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !IsTerminal(f) {
		return DefaultWidth
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}
