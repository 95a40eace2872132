// Package syntax implements lexical and syntactic analysis for the Easy
// teaching language.
package syntax

import "fmt"

// TokenKind classifies a lexical token.
type TokenKind uint

const (
	_Keyword  TokenKind = iota // function, main, end, if, ...
	_ArithOp                   // + - * / %
	_LogicOp                   // && || ! and or not
	_RelOp                     // < <= > >= == != equals notequals
	_Assign                    // =
	_Lparen                    // (
	_Rparen                    // )
	_Lbrace                    // {
	_Rbrace                    // }
	_Lbrack                    // [
	_Rbrack                    // ]
	_IntLit                    // 123
	_FloatLit                  // 1.5 (not produced by the scanner)
	_StringLit                 // "abc" or 'abc'
	_BoolLit                   // true false
	_Ident                     // foo
	_Semi                      // ;
	_Comma                     // ,
	_Dot                       // .
	_EOF                       // end of input
	_Error                     // lexical error

	tokenKindCount
)

var tokenKindNames = [...]string{
	_Keyword:   "KEYWORD",
	_ArithOp:   "ARITH_OP",
	_LogicOp:   "LOGIC_OP",
	_RelOp:     "REL_OP",
	_Assign:    "ASSIGN",
	_Lparen:    "LPAREN",
	_Rparen:    "RPAREN",
	_Lbrace:    "LBRACE",
	_Rbrace:    "RBRACE",
	_Lbrack:    "LBRACKET",
	_Rbrack:    "RBRACKET",
	_IntLit:    "INT_LIT",
	_FloatLit:  "FLOAT_LIT",
	_StringLit: "STRING_LIT",
	_BoolLit:   "BOOL_LIT",
	_Ident:     "IDENT",
	_Semi:      "SEMICOLON",
	_Comma:     "COMMA",
	_Dot:       "DOT",
	_EOF:       "EOF",
	_Error:     "ERROR",
}

// String returns the upper-case name of the kind.
func (k TokenKind) String() string {
	if k < tokenKindCount {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

// IsEOF reports whether k is the end-of-input kind.
func (k TokenKind) IsEOF() bool {
	return k == _EOF
}

// IsError reports whether k marks a lexical error.
func (k TokenKind) IsError() bool {
	return k == _Error
}

// IsLiteral reports whether k is one of the literal kinds.
func (k TokenKind) IsLiteral() bool {
	switch k {
	case _IntLit, _FloatLit, _StringLit, _BoolLit:
		return true
	}
	return false
}

// Token is a classified lexical unit. Tokens are values and never change
// after the scanner produces them.
type Token struct {
	Kind TokenKind
	Text string // spelling; decoded content for string literals
	Pos  Pos
}

// String returns the token's spelling.
func (t Token) String() string {
	return t.Text
}

// Is reports whether t has the given kind and spelling.
func (t Token) Is(kind TokenKind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsKeyword reports whether t is the keyword kw.
func (t Token) IsKeyword(kw string) bool {
	return t.Is(_Keyword, kw)
}

// IsUnary reports whether t can start a unary expression.
func (t Token) IsUnary() bool {
	switch t.Kind {
	case _LogicOp:
		return t.Text == "!" || t.Text == "not"
	case _ArithOp:
		return t.Text == "-"
	}
	return false
}

// Precedence returns the binding power of t as a binary operator.
// Returns 0 for tokens that are not binary operators.
// Precedence levels (higher = binds tighter):
//
//	1: || or
//	2: && and
//	3: == equals != notequals
//	4: < <= > >=
//	5: + -
//	6: * / % mod
func (t Token) Precedence() int {
	switch t.Kind {
	case _LogicOp:
		switch t.Text {
		case "||", "or":
			return 1
		case "&&", "and":
			return 2
		}
	case _RelOp:
		switch t.Text {
		case "==", "equals", "!=", "notequals":
			return 3
		case "<", "<=", ">", ">=":
			return 4
		}
	case _ArithOp:
		switch t.Text {
		case "+", "-":
			return 5
		case "*", "/", "%":
			return 6
		}
	case _Keyword:
		if t.Text == "mod" {
			return 6
		}
	}
	return 0
}

// keywords is the reserved word set.
var keywords = map[string]bool{
	"function": true,
	"main":     true,
	"end":      true,
	"return":   true,
	"int":      true,
	"boolean":  true,
	"void":     true,
	"mod":      true,
	"if":       true,
	"else":     true,
	"while":    true,
	"for":      true,
	"loop":     true,
	"until":    true,
	"in":       true,
	"from":     true,
	"by":       true,
	"to":       true,
	"break":    true,
	"new":      true,
}

// Word operators and literals, checked after keywords.
var (
	logicWords = map[string]bool{"and": true, "or": true, "not": true}
	relWords   = map[string]bool{"equals": true, "notequals": true}
	boolWords  = map[string]bool{"true": true, "false": true}
)

// LookupWord classifies a scanned word. Keywords win over word operators,
// which win over boolean literals; anything else is an identifier.
func LookupWord(word string) TokenKind {
	switch {
	case keywords[word]:
		return _Keyword
	case logicWords[word]:
		return _LogicOp
	case relWords[word]:
		return _RelOp
	case boolWords[word]:
		return _BoolLit
	}
	return _Ident
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	return keywords[word]
}
