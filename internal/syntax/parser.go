package syntax

import (
	"errors"
	"fmt"
	"io"
)

// Parser performs syntax analysis on Easy source code.
//
// Every production returns (node, error). The first mismatch is returned
// up through all enclosing productions unchanged, so a parse either yields
// a complete Program or nothing, and at most one syntax error is reported.
type Parser struct {
	scanner *Scanner
	sink    ErrorSink

	// Current token and the line of the token before it
	tok      Token
	prevLine uint32

	first      error // the single fatal error, if any
	incomplete bool  // first error was found at EOF

	// noTernary disables the postfix "Expr if Cond else Expr" form while
	// parsing statement headers and the body of a do statement, where a
	// following "if" belongs to the enclosing construct. Parentheses,
	// brackets and argument lists switch it back on.
	noTernary bool
}

// NewParser creates a new Parser for the given source. Lexical and syntax
// errors are reported to sink; a nil sink drops them.
func NewParser(filename string, src io.Reader, sink ErrorSink) *Parser {
	p := &Parser{
		scanner: NewScanner(filename, src, sink),
		sink:    sink,
	}
	p.next() // prime the parser with first token
	return p
}

// ----------------------------------------------------------------------------
// Token navigation

// next advances to the next token.
func (p *Parser) next() {
	p.prevLine = p.tok.Pos.line
	p.tok = p.scanner.Scan()
}

// got reports whether the current token is the keyword kw.
// If so, it consumes the token.
func (p *Parser) got(kw string) bool {
	if p.tok.IsKeyword(kw) {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it has the given kind.
func (p *Parser) want(kind TokenKind) (Token, error) {
	if p.tok.Kind != kind {
		return Token{}, p.unexpected(kind.String())
	}
	t := p.tok
	p.next()
	return t, nil
}

// wantKeyword consumes the current token if it is the keyword kw.
func (p *Parser) wantKeyword(kw string) (Token, error) {
	if !p.tok.IsKeyword(kw) {
		return Token{}, p.unexpected(fmt.Sprintf("%q", kw))
	}
	t := p.tok
	p.next()
	return t, nil
}

// skipSemis consumes optional statement terminators.
func (p *Parser) skipSemis() {
	for p.tok.Kind == _Semi {
		p.next()
	}
}

// ----------------------------------------------------------------------------
// Error handling

// errorAt builds a syntax error at pos.
func (p *Parser) errorAt(pos Pos, msg string) error {
	return &SyntaxError{Pos: pos, Msg: msg}
}

// unexpected builds the error for a current token that does not match want.
func (p *Parser) unexpected(want string) error {
	return p.errorAt(p.tok.Pos, fmt.Sprintf("expected %s but found %s", want, describe(p.tok)))
}

// describe renders a token for error messages.
func describe(t Token) string {
	if t.Kind == _EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

// fail records err as the fatal error, reports it to the sink and scans
// the rest of the input. Only the first call has any effect.
func (p *Parser) fail(err error) {
	if p.first != nil {
		return
	}
	p.first = err
	p.incomplete = p.tok.Kind == _EOF

	var se *SyntaxError
	if p.sink != nil && errors.As(err, &se) {
		p.sink.AddParseError(int(se.Pos.Line()), se.Msg)
	}

	// Lexical errors past the failure point are still reported.
	for p.tok.Kind != _EOF {
		p.tok = p.scanner.Scan()
	}
}

// FirstError returns the fatal syntax error, or nil if none.
func (p *Parser) FirstError() error {
	return p.first
}

// Incomplete reports whether parsing failed because the input ended early.
// An interactive reader uses it to ask for more lines.
func (p *Parser) Incomplete() bool {
	return p.first != nil && p.incomplete
}

// ----------------------------------------------------------------------------
// Parsing entry points

// Parse parses a complete program. It returns nil if a syntax error was
// found; the error is then available from FirstError and has been
// reported to the sink.
func (p *Parser) Parse() *Program {
	prog, err := p.program()
	if err != nil {
		p.fail(err)
		return nil
	}
	return prog
}

// ParseExpr parses a single expression that must make up the whole input.
// It returns nil on error, like Parse.
func (p *Parser) ParseExpr() Expr {
	x, err := p.expr()
	if err == nil && p.tok.Kind != _EOF {
		err = p.unexpected("EOF")
	}
	if err != nil {
		p.fail(err)
		return nil
	}
	return x
}

// program parses: {FunctionDecl} MainBlock {FunctionDecl} EOF
func (p *Parser) program() (*Program, error) {
	prog := &Program{Funcs: []*FuncDecl{}}
	prog.pos = p.tok.Pos

	for {
		p.skipSemis()
		switch {
		case p.tok.Kind == _EOF:
			if prog.Main == nil {
				return nil, p.errorAt(p.tok.Pos, "missing main block")
			}
			return prog, nil

		case p.tok.IsKeyword("function"):
			f, err := p.funcDecl()
			if err != nil {
				return nil, err
			}
			prog.Funcs = append(prog.Funcs, f)

		case p.tok.IsKeyword("main"):
			if prog.Main != nil {
				return nil, p.errorAt(p.tok.Pos, "duplicate main block")
			}
			b, err := p.mainBlock()
			if err != nil {
				return nil, err
			}
			prog.Main = b

		default:
			return nil, p.errorAt(p.tok.Pos, fmt.Sprintf("unrecognized token %s at top level", describe(p.tok)))
		}
	}
}

// mainBlock parses: main {Stmt} end
func (p *Parser) mainBlock() (*Block, error) {
	pos := p.tok.Pos
	if _, err := p.wantKeyword("main"); err != nil {
		return nil, err
	}
	b, err := p.blockUntil(pos, "end")
	if err != nil {
		return nil, err
	}
	if _, err := p.wantKeyword("end"); err != nil {
		return nil, err
	}
	return b, nil
}

// ----------------------------------------------------------------------------
// Declarations

// funcDecl parses:
//
//	function [Type =] Name ( [Param {, Param}] ) {Stmt} end
func (p *Parser) funcDecl() (*FuncDecl, error) {
	d := &FuncDecl{Params: []*ParamDecl{}}
	d.pos = p.tok.Pos
	if _, err := p.wantKeyword("function"); err != nil {
		return nil, err
	}

	switch {
	case isTypeKeyword(p.tok):
		t, err := p.typ()
		if err != nil {
			return nil, err
		}
		if _, err := p.want(_Assign); err != nil {
			return nil, err
		}
		d.Result = t
		if d.Name, err = p.ident(); err != nil {
			return nil, err
		}

	case p.tok.Kind == _Ident:
		// Either the name, or a named result type followed by "=".
		first := p.tok
		p.next()
		if p.tok.Kind == _Assign {
			p.next()
			rt := &RefType{Name: identFrom(first)}
			rt.pos = first.Pos
			d.Result = rt
			var err error
			if d.Name, err = p.ident(); err != nil {
				return nil, err
			}
		} else {
			d.Name = identFrom(first)
		}

	default:
		return nil, p.unexpected("function name or result type")
	}

	if d.Result == nil {
		v := &BaseType{Kind: Void}
		v.pos = d.pos
		d.Result = v
	}

	if _, err := p.want(_Lparen); err != nil {
		return nil, err
	}
	if p.tok.Kind != _Rparen {
		for {
			prm, err := p.paramDecl()
			if err != nil {
				return nil, err
			}
			d.Params = append(d.Params, prm)
			if p.tok.Kind != _Comma {
				break
			}
			p.next()
		}
	}
	if _, err := p.want(_Rparen); err != nil {
		return nil, err
	}

	body, err := p.blockUntil(p.tok.Pos, "end")
	if err != nil {
		return nil, err
	}
	if _, err := p.wantKeyword("end"); err != nil {
		return nil, err
	}
	d.Body = body
	return d, nil
}

// paramDecl parses: Type Name
func (p *Parser) paramDecl() (*ParamDecl, error) {
	d := &ParamDecl{}
	d.pos = p.tok.Pos
	t, err := p.typ()
	if err != nil {
		return nil, err
	}
	d.Type = t
	if d.Name, err = p.ident(); err != nil {
		return nil, err
	}
	return d, nil
}

// isTypeKeyword reports whether t is a built-in type keyword.
func isTypeKeyword(t Token) bool {
	return t.IsKeyword("int") || t.IsKeyword("boolean") || t.IsKeyword("void")
}

// typ parses a built-in type keyword or a named type.
func (p *Parser) typ() (Type, error) {
	pos := p.tok.Pos
	switch {
	case p.tok.IsKeyword("int"):
		p.next()
		return p.baseType(pos, Int), nil
	case p.tok.IsKeyword("boolean"):
		p.next()
		return p.baseType(pos, Boolean), nil
	case p.tok.IsKeyword("void"):
		p.next()
		return p.baseType(pos, Void), nil
	case p.tok.Kind == _Ident:
		t := &RefType{Name: identFrom(p.tok)}
		t.pos = pos
		p.next()
		return t, nil
	}
	return nil, p.unexpected("type")
}

func (p *Parser) baseType(pos Pos, kind TypeKind) *BaseType {
	t := &BaseType{Kind: kind}
	t.pos = pos
	return t
}

// ident parses an identifier.
func (p *Parser) ident() (*Ident, error) {
	t, err := p.want(_Ident)
	if err != nil {
		return nil, err
	}
	return identFrom(t), nil
}

func identFrom(t Token) *Ident {
	id := &Ident{Value: t.Text}
	id.pos = t.Pos
	return id
}

// ----------------------------------------------------------------------------
// Statements

// blockUntil parses statements up to, but not including, one of the
// keywords in stop (or EOF, which the caller reports).
func (p *Parser) blockUntil(pos Pos, stop ...string) (*Block, error) {
	b := &Block{Stmts: []Stmt{}}
	b.pos = pos

	outer := p.noTernary
	p.noTernary = false
	defer func() { p.noTernary = outer }()

	for {
		p.skipSemis()
		if p.tok.Kind == _EOF {
			return b, nil
		}
		for _, kw := range stop {
			if p.tok.IsKeyword(kw) {
				return b, nil
			}
		}
		s, err := p.stmt()
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, s)
	}
}

// stmt parses a single statement. The leading keyword selects the form;
// a leading identifier is resolved by the token that follows it.
func (p *Parser) stmt() (Stmt, error) {
	if p.tok.Kind == _Ident {
		return p.identStmt()
	}
	if p.tok.Kind != _Keyword {
		return nil, p.unexpected("statement")
	}

	switch p.tok.Text {
	case "if":
		return p.ifStmt()
	case "while":
		return p.whileStmt()
	case "int", "boolean":
		t, err := p.typ()
		if err != nil {
			return nil, err
		}
		return p.varDeclStmt(t)
	case "return":
		return p.returnStmt()
	case "for":
		return p.forStmt()
	case "loop":
		return p.loopStmt()
	case "until":
		return p.untilStmt()
	case "break":
		s := &BreakStmt{}
		s.pos = p.tok.Pos
		p.next()
		return s, nil
	}
	return nil, p.unexpected("statement")
}

// identStmt parses a statement that starts with an identifier:
//
//	Name {[Expr]} = Expr
//	Name {[Expr]} ( Args )
//	TypeName Name = Expr
//	do Stmt if Expr else Stmt
func (p *Parser) identStmt() (Stmt, error) {
	first := p.tok
	p.next()

	switch p.tok.Kind {
	case _Lbrack, _Assign, _Lparen:
		base := &IdRef{Name: identFrom(first)}
		base.pos = first.Pos
		return p.refStmt(base)
	}

	if first.Text == "do" {
		return p.doIfStmt(first.Pos)
	}

	if p.tok.Kind == _Ident {
		t := &RefType{Name: identFrom(first)}
		t.pos = first.Pos
		return p.varDeclStmt(t)
	}

	return nil, p.unexpected(`"=", "[" or "("`)
}

// refStmt parses the rest of an assignment or call statement once the
// leading identifier has been consumed.
func (p *Parser) refStmt(base Ref) (Stmt, error) {
	target, err := p.indices(base)
	if err != nil {
		return nil, err
	}

	switch p.tok.Kind {
	case _Assign:
		s := &AssignStmt{Target: target}
		s.pos = target.Pos()
		p.next()
		if s.Value, err = p.expr(); err != nil {
			return nil, err
		}
		return s, nil

	case _Lparen:
		s := &CallStmt{Target: target}
		s.pos = target.Pos()
		if s.Args, err = p.args(); err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, p.unexpected(`"=" or "("`)
}

// varDeclStmt parses the rest of: Type Name = Expr
func (p *Parser) varDeclStmt(t Type) (Stmt, error) {
	d := &VarDecl{Type: t}
	d.pos = t.Pos()
	var err error
	if d.Name, err = p.ident(); err != nil {
		return nil, err
	}
	if _, err := p.want(_Assign); err != nil {
		return nil, err
	}
	s := &VarDeclStmt{Decl: d}
	s.pos = d.pos
	if s.Init, err = p.expr(); err != nil {
		return nil, err
	}
	return s, nil
}

// ifStmt parses:
//
//	if Expr {Stmt} {else if Expr {Stmt}} [else {Stmt}] end
func (p *Parser) ifStmt() (Stmt, error) {
	s := &IfStmt{ElseIfs: []*ElseIf{}}
	s.pos = p.tok.Pos
	p.next() // if

	var err error
	if s.Cond, err = p.headerExpr(); err != nil {
		return nil, err
	}
	if s.Body, err = p.blockUntil(p.tok.Pos, "else", "end"); err != nil {
		return nil, err
	}

	for p.tok.IsKeyword("else") {
		elsePos := p.tok.Pos
		p.next()
		if p.tok.IsKeyword("if") {
			ei := &ElseIf{}
			ei.pos = elsePos
			p.next()
			if ei.Cond, err = p.headerExpr(); err != nil {
				return nil, err
			}
			if ei.Body, err = p.blockUntil(p.tok.Pos, "else", "end"); err != nil {
				return nil, err
			}
			s.ElseIfs = append(s.ElseIfs, ei)
			continue
		}
		if s.Else, err = p.blockUntil(elsePos, "end"); err != nil {
			return nil, err
		}
		break
	}

	if _, err := p.wantKeyword("end"); err != nil {
		return nil, err
	}
	return s, nil
}

// whileStmt parses: while Expr {Stmt} end
func (p *Parser) whileStmt() (Stmt, error) {
	s := &WhileStmt{}
	s.pos = p.tok.Pos
	p.next()

	var err error
	if s.Cond, err = p.headerExpr(); err != nil {
		return nil, err
	}
	if s.Body, err = p.endBlock(); err != nil {
		return nil, err
	}
	return s, nil
}

// untilStmt parses: until Expr {Stmt} end
func (p *Parser) untilStmt() (Stmt, error) {
	s := &UntilStmt{}
	s.pos = p.tok.Pos
	p.next()

	var err error
	if s.Cond, err = p.headerExpr(); err != nil {
		return nil, err
	}
	if s.Body, err = p.endBlock(); err != nil {
		return nil, err
	}
	return s, nil
}

// loopStmt parses: loop {Stmt} end
func (p *Parser) loopStmt() (Stmt, error) {
	s := &LoopStmt{}
	s.pos = p.tok.Pos
	p.next()

	var err error
	if s.Body, err = p.endBlock(); err != nil {
		return nil, err
	}
	return s, nil
}

// forStmt parses:
//
//	for Type Name from Expr to Expr [by Expr] {Stmt} end
//	for Type Name in Expr {Stmt} end
func (p *Parser) forStmt() (Stmt, error) {
	pos := p.tok.Pos
	p.next() // for

	vt, err := p.typ()
	if err != nil {
		return nil, err
	}
	v, err := p.ident()
	if err != nil {
		return nil, err
	}

	if p.got("in") {
		s := &ForEachStmt{Var: v, VarType: vt}
		s.pos = pos
		if s.Collection, err = p.headerExpr(); err != nil {
			return nil, err
		}
		if s.Body, err = p.endBlock(); err != nil {
			return nil, err
		}
		return s, nil
	}

	if _, err := p.wantKeyword("from"); err != nil {
		return nil, err
	}
	s := &ForStmt{Var: v, VarType: vt}
	s.pos = pos
	if s.From, err = p.headerExpr(); err != nil {
		return nil, err
	}
	if _, err := p.wantKeyword("to"); err != nil {
		return nil, err
	}
	if s.To, err = p.headerExpr(); err != nil {
		return nil, err
	}

	if p.got("by") {
		if s.By, err = p.headerExpr(); err != nil {
			return nil, err
		}
	} else {
		one := &IntLit{Value: "1"}
		one.pos = p.tok.Pos
		step := &LiteralExpr{Lit: one}
		step.pos = one.pos
		s.By = step
	}

	if s.Body, err = p.endBlock(); err != nil {
		return nil, err
	}
	return s, nil
}

// doIfStmt parses the rest of: do Stmt if Expr else Stmt
func (p *Parser) doIfStmt(pos Pos) (Stmt, error) {
	s := &DoIfStmt{}
	s.pos = pos

	outer := p.noTernary
	p.noTernary = true
	then, err := p.stmt()
	p.noTernary = outer
	if err != nil {
		return nil, err
	}
	s.Then = then

	if _, err := p.wantKeyword("if"); err != nil {
		return nil, err
	}
	if s.Cond, err = p.headerExpr(); err != nil {
		return nil, err
	}
	if _, err := p.wantKeyword("else"); err != nil {
		return nil, err
	}
	if s.Else, err = p.stmt(); err != nil {
		return nil, err
	}
	return s, nil
}

// returnStmt parses: return [Expr]
func (p *Parser) returnStmt() (Stmt, error) {
	s := &ReturnStmt{}
	s.pos = p.tok.Pos
	p.next()

	if startsExpr(p.tok) {
		var err error
		if s.Result, err = p.expr(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// endBlock parses {Stmt} end.
func (p *Parser) endBlock() (*Block, error) {
	b, err := p.blockUntil(p.tok.Pos, "end")
	if err != nil {
		return nil, err
	}
	if _, err := p.wantKeyword("end"); err != nil {
		return nil, err
	}
	return b, nil
}

// ----------------------------------------------------------------------------
// Expressions

// startsExpr reports whether t can begin an expression.
func startsExpr(t Token) bool {
	switch t.Kind {
	case _IntLit, _FloatLit, _StringLit, _BoolLit, _Ident, _Lparen:
		return true
	}
	return t.IsUnary()
}

// expr parses an expression with an optional postfix conditional:
//
//	Expr [if Expr else Expr]
//
// The "if" only continues the expression when it sits on the same line as
// the end of the expression; otherwise it starts the next statement.
func (p *Parser) expr() (Expr, error) {
	x, err := p.binaryExpr(0)
	if err != nil {
		return nil, err
	}
	if p.noTernary || !p.tok.IsKeyword("if") || p.tok.Pos.line != p.prevLine {
		return x, nil
	}

	ie := &IfExpr{Then: x}
	ie.pos = x.Pos()
	p.next() // if
	if ie.Cond, err = p.expr(); err != nil {
		return nil, err
	}
	if _, err := p.wantKeyword("else"); err != nil {
		return nil, err
	}
	if ie.Else, err = p.expr(); err != nil {
		return nil, err
	}
	return ie, nil
}

// headerExpr parses an expression in a statement header, where a trailing
// "if" never forms a conditional expression.
func (p *Parser) headerExpr() (Expr, error) {
	outer := p.noTernary
	p.noTernary = true
	defer func() { p.noTernary = outer }()
	return p.expr()
}

// nestedExpr parses an expression inside brackets, where the conditional
// form is always available.
func (p *Parser) nestedExpr() (Expr, error) {
	outer := p.noTernary
	p.noTernary = false
	defer func() { p.noTernary = outer }()
	return p.expr()
}

// binaryExpr parses a binary expression whose operators all bind tighter
// than prec. Operators of equal precedence associate to the left.
func (p *Parser) binaryExpr(prec int) (Expr, error) {
	x, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}

	for {
		oprec := p.tok.Precedence()
		if oprec <= prec {
			return x, nil
		}

		// Binary expression position starts at the left operand.
		b := &BinaryExpr{X: x, Op: p.operator()}
		b.pos = x.Pos()
		if b.Y, err = p.binaryExpr(oprec); err != nil {
			return nil, err
		}
		x = b
	}
}

// operator consumes the current token as an Operator.
func (p *Parser) operator() *Operator {
	op := &Operator{Value: p.tok.Text}
	op.pos = p.tok.Pos
	p.next()
	return op
}

// unaryExpr parses: {! | not | -} Atom
func (p *Parser) unaryExpr() (Expr, error) {
	if !p.tok.IsUnary() {
		return p.atom()
	}
	u := &UnaryExpr{}
	u.pos = p.tok.Pos
	u.Op = p.operator()
	var err error
	if u.X, err = p.unaryExpr(); err != nil {
		return nil, err
	}
	return u, nil
}

// atom parses a literal, a parenthesized expression, a reference, or a call.
func (p *Parser) atom() (Expr, error) {
	pos := p.tok.Pos
	var l Literal

	switch p.tok.Kind {
	case _IntLit:
		n := &IntLit{Value: p.tok.Text}
		n.pos = pos
		l = n
	case _FloatLit:
		n := &FloatLit{Value: p.tok.Text}
		n.pos = pos
		l = n
	case _StringLit:
		n := &StringLit{Value: p.tok.Text}
		n.pos = pos
		l = n
	case _BoolLit:
		n := &BoolLit{Value: p.tok.Text == "true"}
		n.pos = pos
		l = n

	case _Lparen:
		p.next()
		x, err := p.nestedExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.want(_Rparen); err != nil {
			return nil, err
		}
		return x, nil

	case _Ident:
		base := &IdRef{Name: identFrom(p.tok)}
		base.pos = pos
		p.next()
		r, err := p.indices(base)
		if err != nil {
			return nil, err
		}
		if p.tok.Kind == _Lparen {
			c := &CallExpr{Target: r}
			c.pos = pos
			if c.Args, err = p.args(); err != nil {
				return nil, err
			}
			return c, nil
		}
		x := &RefExpr{Ref: r}
		x.pos = pos
		return x, nil

	default:
		return nil, p.unexpected("expression")
	}

	p.next()
	x := &LiteralExpr{Lit: l}
	x.pos = pos
	return x, nil
}

// indices parses {[Expr]} after a reference.
func (p *Parser) indices(r Ref) (Ref, error) {
	for p.tok.Kind == _Lbrack {
		p.next()
		ix := &IndexedRef{Base: r}
		ix.pos = r.Pos()
		var err error
		if ix.Index, err = p.nestedExpr(); err != nil {
			return nil, err
		}
		if _, err := p.want(_Rbrack); err != nil {
			return nil, err
		}
		r = ix
	}
	return r, nil
}

// args parses: ( [Expr {, Expr}] )
func (p *Parser) args() ([]Expr, error) {
	if _, err := p.want(_Lparen); err != nil {
		return nil, err
	}
	list := []Expr{}
	if p.tok.Kind != _Rparen {
		for {
			x, err := p.nestedExpr()
			if err != nil {
				return nil, err
			}
			list = append(list, x)
			if p.tok.Kind != _Comma {
				break
			}
			p.next()
		}
	}
	if _, err := p.want(_Rparen); err != nil {
		return nil, err
	}
	return list, nil
}
