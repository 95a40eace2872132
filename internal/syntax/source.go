package syntax

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// source pulls characters from a stream one rune at a time and tracks the
// line and column of the current one. Input is never read ahead of the
// scanner by more than the bufio buffer.
type source struct {
	in       *bufio.Reader
	filename string

	line uint32 // line of ch, 1-based
	col  uint32 // column of ch, 1-based, counted in runes

	ch   rune // current character; -1 before the first read and at end of stream
	done bool // end of stream reached

	errh func(line, col uint32, msg string) // nil drops errors
}

func newSource(filename string, src io.Reader, errh func(line, col uint32, msg string)) *source {
	s := &source{
		in:       bufio.NewReader(src),
		filename: filename,
		line:     1,
		ch:       -1,
		errh:     errh,
	}
	s.nextch()
	return s
}

// nextch advances to the next character. The position moves past the
// previous character first, so at end of stream it points just after the
// last one. Once the stream is done, nextch does nothing.
func (s *source) nextch() {
	if s.done {
		return
	}

	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	r, size, err := s.in.ReadRune()
	if err != nil {
		if err != io.EOF {
			s.error("I/O error reading source: " + err.Error())
		}
		s.ch = -1
		s.done = true
		return
	}
	if r == utf8.RuneError && size == 1 {
		s.error("invalid UTF-8 encoding")
	}
	s.ch = r
}

func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

func (s *source) eof() bool {
	return s.done
}

// error reports a lexical error at the current character.
func (s *source) error(msg string) {
	s.errorAt(s.line, s.col, msg)
}

func (s *source) errorAt(line, col uint32, msg string) {
	if s.errh != nil {
		s.errh(line, col, msg)
	}
}

// isLetter reports whether r is an ASCII letter. Underscore is not a letter:
// it may continue a word but never start one.
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isWordChar reports whether r may continue an identifier.
func isWordChar(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '_'
}

// isWhitespace reports whether r is a blank. A carriage return is a blank,
// so "\r\n" ends one line and a lone "\r" ends none.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}
