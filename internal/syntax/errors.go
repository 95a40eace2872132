package syntax

// ErrorSink receives diagnostics from the scanner and the parser.
// It is satisfied by *diag.Reporter.
type ErrorSink interface {
	AddScanError(line int, msg string)
	AddParseError(line int, msg string)
}

// SyntaxError represents a syntax error.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}
