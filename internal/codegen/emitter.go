package codegen

import (
	"fmt"
	"io"
	"strings"
)

// emitter wraps an io.Writer with helpers for emitting indented Java text.
// The first write error sticks; later calls are no-ops.
type emitter struct {
	w      io.Writer
	err    error  // first error
	indent string // one indentation step
	depth  int    // current nesting level
}

// emit writes a formatted line at the current depth.
func (e *emitter) emit(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, "%s%s\n", strings.Repeat(e.indent, e.depth), fmt.Sprintf(format, args...))
}

// emitLine writes a blank line.
func (e *emitter) emitLine() {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w)
}

// in and out change the nesting level.
func (e *emitter) in()  { e.depth++ }
func (e *emitter) out() { e.depth-- }

// fail records err unless an earlier error is already held.
func (e *emitter) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}
