package syntax

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// parse parses src as a program.
func parse(t *testing.T, src string) (*Program, *testSink) {
	t.Helper()
	sink := &testSink{}
	p := NewParser("", strings.NewReader(src), sink)
	return p.Parse(), sink
}

// mustParse parses src and fails the test on any diagnostic.
func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, sink := parse(t, src)
	if len(sink.scan) > 0 || len(sink.parse) > 0 {
		t.Fatalf("unexpected errors: scan=%q parse=%q", sink.scan, sink.parse)
	}
	if prog == nil {
		t.Fatal("Parse returned nil without errors")
	}
	return prog
}

// mainStmts parses a main block containing body and returns its statements.
func mainStmts(t *testing.T, body string) []Stmt {
	t.Helper()
	return mustParse(t, "main\n"+body+"\nend\n").Main.Stmts
}

// sexpr renders an expression fully parenthesized.
func sexpr(e Expr) string {
	switch x := e.(type) {
	case *LiteralExpr:
		switch l := x.Lit.(type) {
		case *IntLit:
			return l.Value
		case *FloatLit:
			return l.Value
		case *BoolLit:
			return fmt.Sprint(l.Value)
		case *StringLit:
			return fmt.Sprintf("%q", l.Value)
		}
	case *RefExpr:
		return refString(x.Ref)
	case *UnaryExpr:
		return fmt.Sprintf("(%s %s)", x.Op.Value, sexpr(x.X))
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", sexpr(x.X), x.Op.Value, sexpr(x.Y))
	case *IfExpr:
		return fmt.Sprintf("(%s if %s else %s)", sexpr(x.Then), sexpr(x.Cond), sexpr(x.Else))
	case *CallExpr:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = sexpr(a)
		}
		return refString(x.Target) + "(" + strings.Join(args, ", ") + ")"
	}
	return fmt.Sprintf("<%T>", e)
}

func refString(r Ref) string {
	switch x := r.(type) {
	case *IdRef:
		return x.Name.Value
	case *IndexedRef:
		return refString(x.Base) + "[" + sexpr(x.Index) + "]"
	case *QualifiedRef:
		return refString(x.Base) + "." + x.Member.Value
	}
	return fmt.Sprintf("<%T>", r)
}

func TestParseExpr(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"2+3*4", "(2 + (3 * 4))"},
		{"(2+3)*4", "((2 + 3) * 4)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"a or b and c", "(a or (b and c))"},
		{"a || b && c", "(a || (b && c))"},
		{"a == b < c", "(a == (b < c))"},
		{"a equals b notequals c", "((a equals b) notequals c)"},
		{"x + 1 >= y * 2", "((x + 1) >= (y * 2))"},
		{"a mod 2 equals 0", "((a mod 2) equals 0)"},
		{"a % 2 == 0", "((a % 2) == 0)"},
		{"not a and b", "((not a) and b)"},
		{"!a || b", "((! a) || b)"},
		{"-x * y", "((- x) * y)"},
		{"- -x", "(- (- x))"},
		{"f()", "f()"},
		{"f(1, g(2))", "f(1, g(2))"},
		{"a[i][j+1]", "a[i][(j + 1)]"},
		{"m[0](1)", "m[0](1)"},
		{`"s" + 'q'`, `("s" + "q")`},
		{"true || false", "(true || false)"},
		{"1 if true else 2", "(1 if true else 2)"},
		{"x if a else y if b else z", "(x if a else (y if b else z))"},
		{"a + 1 if a > 0 else 0", "((a + 1) if (a > 0) else 0)"},
		{"(1 if c else 2) + 3", "((1 if c else 2) + 3)"},
		{"f(1 if c else 2)", "f((1 if c else 2))"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			sink := &testSink{}
			p := NewParser("", strings.NewReader(tt.src), sink)
			x := p.ParseExpr()
			if x == nil {
				t.Fatalf("ParseExpr failed: %v", p.FirstError())
			}
			if got := sexpr(x); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParsePrecedenceShape(t *testing.T) {
	x := NewParser("", strings.NewReader("2+3*4"), nil).ParseExpr()

	b, ok := x.(*BinaryExpr)
	if !ok || b.Op.Value != "+" {
		t.Fatalf("root = %T, want BinaryExpr +", x)
	}
	if _, ok := b.X.(*LiteralExpr); !ok {
		t.Errorf("left = %T, want LiteralExpr", b.X)
	}
	r, ok := b.Y.(*BinaryExpr)
	if !ok || r.Op.Value != "*" {
		t.Fatalf("right = %T, want BinaryExpr *", b.Y)
	}
}

func TestParseTernaryShape(t *testing.T) {
	x := NewParser("", strings.NewReader("1 if true else 2"), nil).ParseExpr()

	ie, ok := x.(*IfExpr)
	if !ok {
		t.Fatalf("got %T, want IfExpr", x)
	}
	if sexpr(ie.Then) != "1" || sexpr(ie.Cond) != "true" || sexpr(ie.Else) != "2" {
		t.Errorf("got then=%s cond=%s else=%s", sexpr(ie.Then), sexpr(ie.Cond), sexpr(ie.Else))
	}
}

func TestParseProgramLayout(t *testing.T) {
	prog := mustParse(t, `
function before()
end
main
end
function int = after(int a, boolean b)
  return a
end
`)
	if prog.Main == nil || len(prog.Main.Stmts) != 0 {
		t.Fatalf("main = %+v, want empty block", prog.Main)
	}

	var names []string
	for _, f := range prog.Funcs {
		names = append(names, f.Name.Value)
	}
	if diff := cmp.Diff([]string{"before", "after"}, names); diff != "" {
		t.Errorf("functions mismatch (-want +got):\n%s", diff)
	}

	before := prog.Funcs[0]
	if bt, ok := before.Result.(*BaseType); !ok || bt.Kind != Void {
		t.Errorf("implicit result = %#v, want void", before.Result)
	}
	if before.Params == nil || len(before.Params) != 0 {
		t.Errorf("params = %#v, want empty", before.Params)
	}

	after := prog.Funcs[1]
	if bt, ok := after.Result.(*BaseType); !ok || bt.Kind != Int {
		t.Errorf("result = %#v, want int", after.Result)
	}
	if len(after.Params) != 2 || after.Params[0].Name.Value != "a" || after.Params[1].Name.Value != "b" {
		t.Fatalf("params = %#v", after.Params)
	}
	if bt, ok := after.Params[1].Type.(*BaseType); !ok || bt.Kind != Boolean {
		t.Errorf("param b type = %#v, want boolean", after.Params[1].Type)
	}
	if len(after.Body.Stmts) != 1 {
		t.Fatalf("body has %d stmts, want 1", len(after.Body.Stmts))
	}
	if r, ok := after.Body.Stmts[0].(*ReturnStmt); !ok || sexpr(r.Result) != "a" {
		t.Errorf("body = %#v, want return a", after.Body.Stmts[0])
	}
}

func TestParseNamedTypes(t *testing.T) {
	prog := mustParse(t, `
function String = greet(String who)
  String s = "hi " + who
  return s
end
main
end
`)
	f := prog.Funcs[0]
	if rt, ok := f.Result.(*RefType); !ok || rt.Name.Value != "String" {
		t.Errorf("result = %#v, want RefType String", f.Result)
	}
	if rt, ok := f.Params[0].Type.(*RefType); !ok || rt.Name.Value != "String" {
		t.Errorf("param type = %#v, want RefType String", f.Params[0].Type)
	}
	vd, ok := f.Body.Stmts[0].(*VarDeclStmt)
	if !ok {
		t.Fatalf("stmt 0 = %T, want VarDeclStmt", f.Body.Stmts[0])
	}
	if rt, ok := vd.Decl.Type.(*RefType); !ok || rt.Name.Value != "String" || vd.Decl.Name.Value != "s" {
		t.Errorf("decl = %#v", vd.Decl)
	}
}

func TestParseStatements(t *testing.T) {
	stmts := mainStmts(t, `
int x = 1
boolean done = false
x = x + 1
a[i][0] = 2
println("x", x)
return
break
`)
	want := []string{"*syntax.VarDeclStmt", "*syntax.VarDeclStmt", "*syntax.AssignStmt", "*syntax.AssignStmt", "*syntax.CallStmt", "*syntax.ReturnStmt", "*syntax.BreakStmt"}
	var got []string
	for _, s := range stmts {
		got = append(got, fmt.Sprintf("%T", s))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("statements mismatch (-want +got):\n%s", diff)
	}

	if a := stmts[3].(*AssignStmt); refString(a.Target) != "a[i][0]" {
		t.Errorf("indexed target = %s", refString(a.Target))
	}
	if c := stmts[4].(*CallStmt); refString(c.Target) != "println" || len(c.Args) != 2 {
		t.Errorf("call = %s with %d args", refString(c.Target), len(c.Args))
	}
	if r := stmts[5].(*ReturnStmt); r.Result != nil {
		t.Errorf("bare return has result %s", sexpr(r.Result))
	}
}

func TestParseSemicolonsOptional(t *testing.T) {
	with := mainStmts(t, "int x = 1; x = 2;; f(x);")
	without := mainStmts(t, "int x = 1 x = 2 f(x)")
	if len(with) != 3 || len(without) != 3 {
		t.Fatalf("got %d and %d statements, want 3 each", len(with), len(without))
	}
}

func TestParseIf(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		s := mainStmts(t, "if x > 0\n  y = 1\nend")[0].(*IfStmt)
		if s.ElseIfs == nil || len(s.ElseIfs) != 0 {
			t.Errorf("ElseIfs = %#v, want empty non-nil", s.ElseIfs)
		}
		if s.Else != nil {
			t.Errorf("Else = %#v, want nil", s.Else)
		}
		if len(s.Body.Stmts) != 1 {
			t.Errorf("body has %d stmts, want 1", len(s.Body.Stmts))
		}
	})

	t.Run("chain", func(t *testing.T) {
		s := mainStmts(t, `
if x < 0
  y = -1
else if x equals 0
  y = 0
else if x < 10
else
  y = 1
  z = 2
end`)[0].(*IfStmt)
		if len(s.ElseIfs) != 2 {
			t.Fatalf("got %d else-ifs, want 2", len(s.ElseIfs))
		}
		if sexpr(s.ElseIfs[0].Cond) != "(x equals 0)" || len(s.ElseIfs[1].Body.Stmts) != 0 {
			t.Errorf("else-ifs = %s / %d stmts", sexpr(s.ElseIfs[0].Cond), len(s.ElseIfs[1].Body.Stmts))
		}
		if s.Else == nil || len(s.Else.Stmts) != 2 {
			t.Errorf("else = %#v, want 2 stmts", s.Else)
		}
	})

	t.Run("nested if as first statement", func(t *testing.T) {
		s := mainStmts(t, "if a if b x = 1 end end")[0].(*IfStmt)
		if sexpr(s.Cond) != "a" {
			t.Errorf("cond = %s, want a", sexpr(s.Cond))
		}
		if _, ok := s.Body.Stmts[0].(*IfStmt); !ok {
			t.Errorf("body[0] = %T, want IfStmt", s.Body.Stmts[0])
		}
	})
}

func TestParseTernaryStatementBoundary(t *testing.T) {
	// A postfix if on the same line continues the expression.
	s := mainStmts(t, "x = 1 if c else 2")
	if a := s[0].(*AssignStmt); sexpr(a.Value) != "(1 if c else 2)" {
		t.Errorf("value = %s", sexpr(a.Value))
	}

	// On the next line it starts an if statement.
	s = mainStmts(t, "x = 5\nif x > 3\n  y = 1\nend")
	if len(s) != 2 {
		t.Fatalf("got %d statements, want 2", len(s))
	}
	if _, ok := s[1].(*IfStmt); !ok {
		t.Errorf("stmt 1 = %T, want IfStmt", s[1])
	}
}

func TestParseLoops(t *testing.T) {
	stmts := mainStmts(t, `
for int i from 0 to 5
  println(i)
end
for int j from 10 to 0 by -2
end
for String s in names
  print(s)
end
while n > 0
  n = n - 1
end
loop
  break
end
until x == 0
  x = x - 1
end
`)
	f := stmts[0].(*ForStmt)
	if f.Var.Value != "i" || sexpr(f.From) != "0" || sexpr(f.To) != "5" || sexpr(f.By) != "1" {
		t.Errorf("for = %s from %s to %s by %s", f.Var.Value, sexpr(f.From), sexpr(f.To), sexpr(f.By))
	}
	if bt, ok := f.VarType.(*BaseType); !ok || bt.Kind != Int {
		t.Errorf("for var type = %#v", f.VarType)
	}
	if f2 := stmts[1].(*ForStmt); sexpr(f2.By) != "(- 2)" {
		t.Errorf("by = %s, want (- 2)", sexpr(f2.By))
	}

	fe := stmts[2].(*ForEachStmt)
	if fe.Var.Value != "s" || sexpr(fe.Collection) != "names" || len(fe.Body.Stmts) != 1 {
		t.Errorf("foreach = %s in %s", fe.Var.Value, sexpr(fe.Collection))
	}
	if _, ok := fe.VarType.(*RefType); !ok {
		t.Errorf("foreach var type = %T, want RefType", fe.VarType)
	}

	if w := stmts[3].(*WhileStmt); sexpr(w.Cond) != "(n > 0)" {
		t.Errorf("while cond = %s", sexpr(w.Cond))
	}
	if l := stmts[4].(*LoopStmt); len(l.Body.Stmts) != 1 {
		t.Errorf("loop body has %d stmts", len(l.Body.Stmts))
	}
	if u := stmts[5].(*UntilStmt); sexpr(u.Cond) != "(x == 0)" {
		t.Errorf("until cond = %s", sexpr(u.Cond))
	}
}

func TestParseDoIf(t *testing.T) {
	s, ok := mainStmts(t, "do x = 1 if y > 2 else x = 3")[0].(*DoIfStmt)
	if !ok {
		t.Fatal("not a DoIfStmt")
	}
	if a := s.Then.(*AssignStmt); sexpr(a.Value) != "1" {
		t.Errorf("then value = %s, want 1", sexpr(a.Value))
	}
	if sexpr(s.Cond) != "(y > 2)" {
		t.Errorf("cond = %s", sexpr(s.Cond))
	}
	if a := s.Else.(*AssignStmt); sexpr(a.Value) != "3" {
		t.Errorf("else value = %s, want 3", sexpr(a.Value))
	}

	// "do" is an ordinary name when followed by =, [ or (.
	stmts := mainStmts(t, "do = 1\ndo(2)")
	if _, ok := stmts[0].(*AssignStmt); !ok {
		t.Errorf("stmt 0 = %T, want AssignStmt", stmts[0])
	}
	if _, ok := stmts[1].(*CallStmt); !ok {
		t.Errorf("stmt 1 = %T, want CallStmt", stmts[1])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing end", "main\n  x = 1\n", `3: expected "end" but found EOF`},
		{"empty input", "", "1: missing main block"},
		{"only functions", "function f()\nend\n", "3: missing main block"},
		{"duplicate main", "main end main end", "1: duplicate main block"},
		{"top-level statement", "x = 1", `1: unrecognized token IDENT "x" at top level`},
		{"bad ident statement", "main x 1 end", `1: expected "=", "[" or "(" but found INT_LIT "1"`},
		{"missing expression", "main\nx =\nend", `3: expected expression but found KEYWORD "end"`},
		{"unclosed call", "main foo(1, 2 end", `1: expected RPAREN but found KEYWORD "end"`},
		{"for without to", "main for int i from 1 end", `1: expected "to" but found KEYWORD "end"`},
		{"for without from or in", "main for int i = 1 end", `1: expected "from" but found ASSIGN "="`},
		{"do without if", "main do x = 1 end", `1: expected "if" but found KEYWORD "end"`},
		{"ternary without else", "main x = 1 if c end", `1: expected "else" but found KEYWORD "end"`},
		{"function without parens", "function f end main end", `1: expected LPAREN but found KEYWORD "end"`},
		{"missing result name", "function int = (", `1: expected IDENT but found LPAREN "("`},
		{"void variable", "main void v = 1 end", `1: expected statement but found KEYWORD "void"`},
		{"unclosed paren", "main x = (1 + 2\nend", `2: expected RPAREN but found KEYWORD "end"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &testSink{}
			p := NewParser("", strings.NewReader(tt.src), sink)
			if prog := p.Parse(); prog != nil {
				t.Fatalf("Parse returned a program, want nil")
			}
			if diff := cmp.Diff([]string{tt.want}, sink.parse); diff != "" {
				t.Errorf("parse errors mismatch (-want +got):\n%s", diff)
			}

			var se *SyntaxError
			if !errors.As(p.FirstError(), &se) {
				t.Fatalf("FirstError = %v, want *SyntaxError", p.FirstError())
			}
			if got := fmt.Sprintf("%d: %s", se.Pos.Line(), se.Msg); got != tt.want {
				t.Errorf("FirstError = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseScanErrorBecomesParseError(t *testing.T) {
	prog, sink := parse(t, "main\n  x = 1 @ 2\nend")
	if prog != nil {
		t.Fatal("got a program, want nil")
	}
	if len(sink.scan) != 1 || len(sink.parse) != 1 {
		t.Fatalf("scan=%q parse=%q, want one of each", sink.scan, sink.parse)
	}
}

func TestParseScanErrorsKeepAccumulating(t *testing.T) {
	_, sink := parse(t, "main @ end $\n'open")
	if len(sink.parse) != 1 {
		t.Errorf("parse errors = %q, want exactly one", sink.parse)
	}
	want := []string{
		"1: unrecognized character '@' in input",
		"1: unrecognized character '$' in input",
		"2: unterminated string",
	}
	if diff := cmp.Diff(want, sink.scan); diff != "" {
		t.Errorf("scan errors mismatch (-want +got):\n%s", diff)
	}
}

func TestParseIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"main\n  x = 1\n", true},
		{"function f()\n", true},
		{"main\n if x\n", true},
		{"main x 1 end", false},
		{"main end", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			p := NewParser("", strings.NewReader(tt.src), nil)
			p.Parse()
			if got := p.Incomplete(); got != tt.want {
				t.Errorf("Incomplete() = %v, want %v (err %v)", got, tt.want, p.FirstError())
			}
		})
	}
}

func TestParsePositions(t *testing.T) {
	prog := mustParse(t, `function int = sq(int n)
  return n * n
end
main
  for int i from 1 to 3
    println(sq(i) if i > 1 else 0)
  end
  do x = 1 if true else x = 2
end
`)

	Inspect(prog, func(n Node) bool {
		if !n.Pos().IsValid() {
			t.Errorf("%T has invalid position", n)
		}
		return true
	})

	if got := prog.Funcs[0].Pos().Line(); got != 1 {
		t.Errorf("function line = %d, want 1", got)
	}
	if got := prog.Main.Pos().Line(); got != 4 {
		t.Errorf("main line = %d, want 4", got)
	}
	loop := prog.Main.Stmts[0].(*ForStmt)
	if got := loop.Body.Stmts[0].Pos().Line(); got != 6 {
		t.Errorf("println line = %d, want 6", got)
	}
}

func TestParseDeterministic(t *testing.T) {
	src := "function f(int a)\n  return a mod 2\nend\nmain\n  f(1 if x else 2)\nend\n"
	var outs []string
	for i := 0; i < 2; i++ {
		var b strings.Builder
		Fprint(&b, mustParse(t, src), &PrintConfig{ShowPositions: true})
		outs = append(outs, b.String())
	}
	if outs[0] != outs[1] {
		t.Errorf("two parses differ:\n%s\n---\n%s", outs[0], outs[1])
	}
}
