// Package diag collects lexical and syntactic diagnostics for a compilation.
package diag

import (
	"fmt"
	"io"
	"strings"
)

// Kind distinguishes the stage that produced a diagnostic.
type Kind uint8

const (
	ScanError  Kind = iota // malformed character sequence
	ParseError             // token stream does not match the grammar
)

var kindNames = [...]string{
	ScanError:  "scan error",
	ParseError: "parse error",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Diagnostic is a single message tagged with the 1-based source line where
// it was detected.
type Diagnostic struct {
	Kind Kind
	Line int
	Msg  string
}

// Error returns the message in the "At line <n>: <message>" form.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("At line %d: %s", d.Line, d.Msg)
}

// Reporter accumulates diagnostics in the order they are reported.
// The zero value is ready to use.
type Reporter struct {
	diags []Diagnostic
	scan  int
	parse int
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// AddScanError records a lexical error.
func (r *Reporter) AddScanError(line int, msg string) {
	r.diags = append(r.diags, Diagnostic{Kind: ScanError, Line: line, Msg: msg})
	r.scan++
}

// AddParseError records a syntax error.
func (r *Reporter) AddParseError(line int, msg string) {
	r.diags = append(r.diags, Diagnostic{Kind: ParseError, Line: line, Msg: msg})
	r.parse++
}

// HasErrors reports whether any diagnostic has been recorded.
func (r *Reporter) HasErrors() bool {
	return r.scan+r.parse > 0
}

// ScanErrors returns the number of lexical errors.
func (r *Reporter) ScanErrors() int { return r.scan }

// ParseErrors returns the number of syntax errors.
func (r *Reporter) ParseErrors() int { return r.parse }

// Diagnostics returns a copy of all diagnostics in report order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), r.diags...)
}

// Err returns nil when no diagnostic was recorded, otherwise a List
// holding all of them.
func (r *Reporter) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return List(r.Diagnostics())
}

// Report writes scan errors followed by parse errors to w, one per line,
// each group under its own heading.
func (r *Reporter) Report(w io.Writer) error {
	groups := []struct {
		kind  Kind
		title string
	}{
		{ScanError, "SCAN ERROR(S):"},
		{ParseError, "PARSE ERROR(S):"},
	}

	var b strings.Builder
	for _, g := range groups {
		first := true
		for _, d := range r.diags {
			if d.Kind != g.kind {
				continue
			}
			if first {
				b.WriteString(g.title)
				b.WriteByte('\n')
				first = false
			}
			b.WriteString("\t-")
			b.WriteString(d.Error())
			b.WriteByte('\n')
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// List is an error made of one or more diagnostics.
type List []Diagnostic

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, d := range l {
		msgs[i] = d.Error()
	}
	return strings.Join(msgs, "\n")
}
