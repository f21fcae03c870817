// Package terminal reads prompted input and tidies the screen afterwards,
// so secret answers do not stay visible in the scrollback.
package terminal

import (
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/term"
)

// ClearPreviousLines erases the text of a prompt plus its answer from
// stdout. textLength is len(prompt)+len(answer); wrapping is computed from
// the terminal width (80 when unknown).
func ClearPreviousLines(textLength int) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	clearLines(os.Stdout, LinesUsed(textLength, width))
}

// LinesUsed is the number of rows to erase for textLength characters at the
// given width, including the empty row left by Enter.
func LinesUsed(textLength, width int) int {
	if width <= 0 {
		width = 80
	}
	n := int(math.Ceil(float64(textLength) / float64(width)))
	if n < 1 {
		n = 1
	}
	return n + 1
}

func clearLines(w io.Writer, n int) {
	for i := 0; i < n; i++ {
		fmt.Fprint(w, "\r\x1b[2K")
		if i < n-1 {
			fmt.Fprint(w, "\x1b[1A")
		}
	}
}
