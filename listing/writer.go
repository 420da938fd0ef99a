package listing

import (
	"fmt"
	"strings"
)

// writer accumulates listing text. Indentation is written lazily when
// the first text of a line arrives, so empty lines carry none.
type writer struct {
	buf    strings.Builder
	indent string
	next   int // indentation of the line not yet started, -1 inside a line
}

func newWriter(indent int) *writer {
	if indent < 0 {
		indent = 0
	}
	return &writer{indent: strings.Repeat(" ", indent)}
}

func (w *writer) write(s string) {
	if s == "" {
		return
	}
	if w.next >= 0 {
		w.buf.WriteString(strings.Repeat(w.indent, w.next))
		w.next = -1
	}
	w.buf.WriteString(s)
}

func (w *writer) printf(format string, args ...any) {
	w.write(fmt.Sprintf(format, args...))
}

// line ends the current line; the next one starts at depth.
func (w *writer) line(depth int) {
	w.buf.WriteByte('\n')
	w.next = depth
}

func (w *writer) String() string { return w.buf.String() }
