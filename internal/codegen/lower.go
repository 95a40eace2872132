package codegen

import (
	"fmt"
	"strings"

	"github.com/easy-lang/easyc/internal/rtabi"
	"github.com/easy-lang/easyc/internal/syntax"
)

// program emits the class wrapper, the entry point and every function.
func (g *generator) program(prog *syntax.Program) {
	g.e.emit("%s %s {", rtabi.ClassHeader, g.conf.ClassName)
	g.e.in()

	g.e.emit("%s {", rtabi.MainSignature)
	g.body(prog.Main)
	g.e.emit("}")

	for _, f := range prog.Funcs {
		g.e.emitLine()
		g.funcDecl(f)
	}

	g.e.out()
	g.e.emit("}")
}

// funcDecl emits a function as a public static method.
func (g *generator) funcDecl(f *syntax.FuncDecl) {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = g.javaType(p.Type) + " " + p.Name.Value
	}
	g.e.emit("%s %s %s(%s) {", rtabi.MethodModifiers, g.javaType(f.Result), f.Name.Value, strings.Join(params, ", "))
	g.body(f.Body)
	g.e.emit("}")
}

// body emits the statements of b one level deeper.
func (g *generator) body(b *syntax.Block) {
	g.e.in()
	if b != nil {
		for _, s := range b.Stmts {
			g.stmt(s)
		}
	}
	g.e.out()
}

// ----------------------------------------------------------------------------
// Statements

func (g *generator) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.Block:
		for _, s := range s.Stmts {
			g.stmt(s)
		}

	case *syntax.VarDeclStmt:
		g.e.emit("%s %s = %s;", g.javaType(s.Decl.Type), s.Decl.Name.Value, g.expr(s.Init))

	case *syntax.AssignStmt:
		g.e.emit("%s = %s;", g.ref(s.Target), g.expr(s.Value))

	case *syntax.CallStmt:
		g.e.emit("%s;", g.call(s.Target, s.Args))

	case *syntax.IfStmt:
		g.e.emit("if (%s) {", g.expr(s.Cond))
		g.body(s.Body)
		for _, ei := range s.ElseIfs {
			g.e.emit("} else if (%s) {", g.expr(ei.Cond))
			g.body(ei.Body)
		}
		if s.Else != nil {
			g.e.emit("} else {")
			g.body(s.Else)
		}
		g.e.emit("}")

	case *syntax.WhileStmt:
		g.e.emit("while (%s) {", g.expr(s.Cond))
		g.body(s.Body)
		g.e.emit("}")

	case *syntax.ForStmt:
		// The bound is inclusive and the guard always counts up.
		v := s.Var.Value
		g.e.emit("for (%s %s = %s; %s <= %s; %s += %s) {",
			g.javaType(s.VarType), v, g.expr(s.From), v, g.expr(s.To), v, g.expr(s.By))
		g.body(s.Body)
		g.e.emit("}")

	case *syntax.ForEachStmt:
		g.e.emit("for (%s %s : %s) {", g.javaType(s.VarType), s.Var.Value, g.expr(s.Collection))
		g.body(s.Body)
		g.e.emit("}")

	case *syntax.LoopStmt:
		g.e.emit("while (true) {")
		g.body(s.Body)
		g.e.emit("}")

	case *syntax.UntilStmt:
		g.e.emit("while (!(%s)) {", g.expr(s.Cond))
		g.body(s.Body)
		g.e.emit("}")

	case *syntax.DoIfStmt:
		g.e.emit("if (%s) {", g.expr(s.Cond))
		g.e.in()
		g.stmt(s.Then)
		g.e.out()
		g.e.emit("} else {")
		g.e.in()
		g.stmt(s.Else)
		g.e.out()
		g.e.emit("}")

	case *syntax.BreakStmt:
		g.e.emit("break;")

	case *syntax.ReturnStmt:
		if s.Result == nil {
			g.e.emit("return;")
		} else {
			g.e.emit("return %s;", g.expr(s.Result))
		}

	default:
		g.unsupported(s, fmt.Sprintf("statement %T", s))
	}
}

// ----------------------------------------------------------------------------
// Expressions

// javaOps maps Easy word operators to Java. Symbolic operators are shared.
var javaOps = map[string]string{
	"and":       "&&",
	"or":        "||",
	"not":       "!",
	"equals":    "==",
	"notequals": "!=",
	"mod":       "%",
}

func javaOp(op string) string {
	if j, ok := javaOps[op]; ok {
		return j
	}
	return op
}

// expr renders x without outer parentheses.
func (g *generator) expr(x syntax.Expr) string {
	switch x := x.(type) {
	case *syntax.LiteralExpr:
		return g.literal(x.Lit)

	case *syntax.RefExpr:
		return g.ref(x.Ref)

	case *syntax.CallExpr:
		return g.call(x.Target, x.Args)

	case *syntax.UnaryExpr:
		operand := g.expr(x.X)
		switch x.X.(type) {
		case *syntax.BinaryExpr, *syntax.IfExpr, *syntax.UnaryExpr:
			operand = "(" + operand + ")"
		}
		return javaOp(x.Op.Value) + operand

	case *syntax.BinaryExpr:
		return g.operand(x.X) + " " + javaOp(x.Op.Value) + " " + g.operand(x.Y)

	case *syntax.IfExpr:
		return g.operand(x.Cond) + " ? " + g.operand(x.Then) + " : " + g.operand(x.Else)
	}

	g.unsupported(x, fmt.Sprintf("expression %T", x))
	return ""
}

// operand renders x for use inside a larger expression. Compound
// expressions are parenthesized so the tree shape survives Java's own
// precedence rules.
func (g *generator) operand(x syntax.Expr) string {
	s := g.expr(x)
	switch x.(type) {
	case *syntax.BinaryExpr, *syntax.IfExpr:
		return "(" + s + ")"
	}
	return s
}

// call renders a call, rewriting builtins to their host functions.
func (g *generator) call(target syntax.Ref, args []syntax.Expr) string {
	if id, ok := target.(*syntax.IdRef); ok {
		if b, ok := rtabi.LookupBuiltin(id.Name.Value); ok {
			if b.Concat && len(args) > 1 {
				parts := []string{`""`}
				for _, a := range args {
					parts = append(parts, g.operand(a))
				}
				return b.Host + "(" + strings.Join(parts, " + ") + ")"
			}
			return b.Host + "(" + g.exprList(args) + ")"
		}
	}
	return g.ref(target) + "(" + g.exprList(args) + ")"
}

func (g *generator) exprList(list []syntax.Expr) string {
	parts := make([]string, len(list))
	for i, x := range list {
		parts[i] = g.expr(x)
	}
	return strings.Join(parts, ", ")
}

// ref renders a reference.
func (g *generator) ref(r syntax.Ref) string {
	switch r := r.(type) {
	case *syntax.IdRef:
		return r.Name.Value
	case *syntax.IndexedRef:
		return g.ref(r.Base) + "[" + g.expr(r.Index) + "]"
	case *syntax.QualifiedRef:
		return g.ref(r.Base) + "." + r.Member.Value
	}
	g.unsupported(r, fmt.Sprintf("reference %T", r))
	return ""
}

// literal renders a literal in Java syntax.
func (g *generator) literal(l syntax.Literal) string {
	switch l := l.(type) {
	case *syntax.IntLit:
		return l.Value
	case *syntax.FloatLit:
		return l.Value + "f"
	case *syntax.BoolLit:
		if l.Value {
			return "true"
		}
		return "false"
	case *syntax.StringLit:
		return javaQuote(l.Value)
	}
	g.unsupported(l, fmt.Sprintf("literal %T", l))
	return ""
}

// javaQuote returns s as a Java string literal. Backslash escapes already
// written in the Easy source are kept as Java escapes; quotes and raw
// control characters are escaped.
func javaQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '\\':
			if i+1 < len(rs) && isJavaEscape(rs[i+1]) {
				b.WriteRune(r)
				b.WriteRune(rs[i+1])
				i++
			} else {
				b.WriteString(`\\`)
			}
		case r == '"':
			b.WriteString(`\"`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\%03o`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// isJavaEscape reports whether r may follow a backslash in a Java string.
func isJavaEscape(r rune) bool {
	switch r {
	case 'b', 's', 't', 'n', 'f', 'r', '"', '\'', '\\', 'u':
		return true
	}
	return '0' <= r && r <= '7'
}
