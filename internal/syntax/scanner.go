package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Scanner performs lexical analysis on Easy source code.
// Tokens are pulled one at a time with Scan.
type Scanner struct {
	source // embedded character reader

	// Literal accumulation
	litBuf strings.Builder
}

// NewScanner creates a new Scanner for the given source.
// Lexical errors are reported to sink; if sink is nil, they are silently dropped.
func NewScanner(filename string, src io.Reader, sink ErrorSink) *Scanner {
	errh := func(line, col uint32, msg string) {
		if sink != nil {
			sink.AddScanError(int(line), msg)
		}
	}
	return &Scanner{source: *newSource(filename, src, errh)}
}

// Scan returns the next token. Once the input is exhausted it returns an
// EOF token on every call. Lexical errors never stop the scanner: they are
// reported and, where a token was started, an ERROR token is returned.
func (s *Scanner) Scan() Token {
	s.skipBlanks()

	pos := s.pos()
	switch {
	case s.eof():
		return Token{Kind: _EOF, Text: "EOF", Pos: pos}

	case isLetter(s.ch):
		return s.scanWord(pos)

	case isDigit(s.ch):
		return s.scanNumber(pos)

	case s.ch == '"' || s.ch == '\'':
		return s.scanString(pos)

	case s.ch == '_':
		return s.scanUnderscore(pos)
	}

	return s.scanOperator(pos)
}

// Line returns the line of the current character.
func (s *Scanner) Line() int {
	return int(s.line)
}

// skipBlanks skips runs of whitespace, newlines, and comments. It only
// returns when the current character starts none of them.
func (s *Scanner) skipBlanks() {
	for {
		switch {
		case isWhitespace(s.ch) || s.ch == '\n':
			s.nextch()
		case s.ch == '#':
			s.skipComment()
		default:
			return
		}
	}
}

// skipComment skips a "# ..." line comment or a "## ... ##" block comment.
func (s *Scanner) skipComment() {
	s.nextch() // #
	if s.ch != '#' {
		for s.ch != '\n' && !s.eof() {
			s.nextch()
		}
		return
	}

	s.nextch() // second #
	for {
		switch {
		case s.eof():
			s.error("unterminated block comment")
			return
		case s.ch == '#':
			s.nextch()
			if s.ch == '#' {
				s.nextch()
				return
			}
		default:
			s.nextch()
		}
	}
}

// startLit begins accumulating a literal.
func (s *Scanner) startLit() {
	s.litBuf.Reset()
	s.litBuf.WriteRune(s.ch)
}

// continueLit adds the current character to the literal being accumulated.
func (s *Scanner) continueLit() {
	s.litBuf.WriteRune(s.ch)
}

// stopLit ends literal accumulation and returns the accumulated string.
func (s *Scanner) stopLit() string {
	return s.litBuf.String()
}

// scanWord scans a keyword, word operator, boolean literal, or identifier.
func (s *Scanner) scanWord(pos Pos) Token {
	s.startLit()
	s.nextch()
	for isWordChar(s.ch) {
		s.continueLit()
		s.nextch()
	}
	word := s.stopLit()
	return Token{Kind: LookupWord(word), Text: word, Pos: pos}
}

// scanUnderscore rejects a word that starts with an underscore. The whole
// word is consumed so scanning resumes after it.
func (s *Scanner) scanUnderscore(pos Pos) Token {
	s.startLit()
	s.nextch()
	for isWordChar(s.ch) {
		s.continueLit()
		s.nextch()
	}
	s.error("identifiers cannot start with an underscore")
	return Token{Kind: _Error, Text: s.stopLit(), Pos: pos}
}

// scanNumber scans a maximal run of decimal digits.
func (s *Scanner) scanNumber(pos Pos) Token {
	s.startLit()
	s.nextch()
	for isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}
	return Token{Kind: _IntLit, Text: s.stopLit(), Pos: pos}
}

// scanString scans a string literal delimited by " or '. The closing quote
// must match the opening one. The token text is the raw content between
// the quotes.
func (s *Scanner) scanString(pos Pos) Token {
	quote := s.ch
	s.nextch()

	var b strings.Builder
	for s.ch != quote {
		if s.eof() {
			s.error("unterminated string")
			return Token{Kind: _Error, Text: "unterminated string", Pos: pos}
		}
		b.WriteRune(s.ch)
		s.nextch()
	}
	s.nextch() // closing quote

	return Token{Kind: _StringLit, Text: b.String(), Pos: pos}
}

// scanOperator scans an operator or delimiter.
func (s *Scanner) scanOperator(pos Pos) Token {
	ch := s.ch
	s.nextch()

	tok := func(kind TokenKind, text string) Token {
		return Token{Kind: kind, Text: text, Pos: pos}
	}

	switch ch {
	case '+', '-':
		if s.ch == ch {
			s.nextch()
			op := string([]rune{ch, ch})
			s.error(op + " not allowed")
			return tok(_Error, op)
		}
		return tok(_ArithOp, string(ch))

	case '*', '/', '%':
		return tok(_ArithOp, string(ch))

	case '<', '>':
		if s.ch == '=' {
			s.nextch()
			return tok(_RelOp, string(ch)+"=")
		}
		return tok(_RelOp, string(ch))

	case '=':
		if s.ch == '=' {
			s.nextch()
			return tok(_RelOp, "==")
		}
		return tok(_Assign, "=")

	case '!':
		if s.ch == '=' {
			s.nextch()
			return tok(_RelOp, "!=")
		}
		return tok(_LogicOp, "!")

	case '&', '|':
		if s.ch == ch {
			s.nextch()
			return tok(_LogicOp, string([]rune{ch, ch}))
		}
		s.error(fmt.Sprintf("single %c not allowed", ch))
		return tok(_Error, string(ch))

	case '.':
		if isDigit(s.ch) {
			s.error("floats must have digits on both sides of the point")
			return tok(_Error, ".")
		}
		return tok(_Dot, ".")

	case '(':
		return tok(_Lparen, "(")
	case ')':
		return tok(_Rparen, ")")
	case '{':
		return tok(_Lbrace, "{")
	case '}':
		return tok(_Rbrace, "}")
	case '[':
		return tok(_Lbrack, "[")
	case ']':
		return tok(_Rbrack, "]")
	case ';':
		return tok(_Semi, ";")
	case ',':
		return tok(_Comma, ",")
	}

	s.errorAt(pos.line, pos.col, fmt.Sprintf("unrecognized character %q in input", ch))
	return tok(_Error, fmt.Sprintf("ASCII: %d", ch))
}
