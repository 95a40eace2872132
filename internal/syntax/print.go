package syntax

import (
	"fmt"
	"io"
	"strings"
)

// PrintConfig controls the textual AST dump.
type PrintConfig struct {
	ShowPositions bool // append "line:col" to every node
}

// Fprint writes a textual representation of the AST to w, one node per
// line, children indented by two spaces. A nil conf prints without
// positions.
func Fprint(w io.Writer, node Node, conf *PrintConfig) {
	p := &printer{w: w}
	if conf != nil {
		p.conf = *conf
	}
	p.print(node)
}

type printer struct {
	w      io.Writer
	conf   PrintConfig
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// line prints the header of n.
func (p *printer) line(n Node, format string, args ...interface{}) {
	s := fmt.Sprintf(format, args...)
	if p.conf.ShowPositions {
		s += " " + n.Pos().String()
	}
	p.printf("%s\n", s)
}

// nest prints children one level deeper.
func (p *printer) nest(children ...Node) {
	p.indent++
	for _, c := range children {
		p.print(c)
	}
	p.indent--
}

// label prints a field name with the given children beneath it.
func (p *printer) label(name string, children ...Node) {
	p.indent++
	p.printf("%s:\n", name)
	p.nest(children...)
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		p.line(n, "Program")
		for _, f := range n.Funcs {
			p.nest(f)
		}
		if n.Main != nil {
			p.label("Main", n.Main)
		}

	case *FuncDecl:
		p.line(n, "FuncDecl %s", n.Name.Value)
		p.label("Result", n.Result)
		if len(n.Params) > 0 {
			p.label("Params", nodes(n.Params)...)
		}
		p.nest(n.Body)

	case *ParamDecl:
		p.line(n, "ParamDecl %s", n.Name.Value)
		p.nest(n.Type)

	case *VarDecl:
		p.line(n, "VarDecl %s", n.Name.Value)
		p.nest(n.Type)

	case *BaseType:
		p.line(n, "BaseType %s", n.Kind)

	case *RefType:
		p.line(n, "RefType %s", n.Name.Value)

	case *Block:
		p.line(n, "Block")
		p.nest(nodes(n.Stmts)...)

	case *VarDeclStmt:
		p.line(n, "VarDeclStmt")
		p.nest(n.Decl, n.Init)

	case *AssignStmt:
		p.line(n, "AssignStmt")
		p.nest(n.Target, n.Value)

	case *CallStmt:
		p.line(n, "CallStmt")
		p.nest(n.Target)
		if len(n.Args) > 0 {
			p.label("Args", nodes(n.Args)...)
		}

	case *IfStmt:
		p.line(n, "IfStmt")
		p.nest(n.Cond, n.Body)
		p.nest(nodes(n.ElseIfs)...)
		if n.Else != nil {
			p.label("Else", n.Else)
		}

	case *ElseIf:
		p.line(n, "ElseIf")
		p.nest(n.Cond, n.Body)

	case *WhileStmt:
		p.line(n, "WhileStmt")
		p.nest(n.Cond, n.Body)

	case *ForStmt:
		p.line(n, "ForStmt %s", n.Var.Value)
		p.nest(n.VarType)
		p.label("From", n.From)
		p.label("To", n.To)
		p.label("By", n.By)
		p.nest(n.Body)

	case *ForEachStmt:
		p.line(n, "ForEachStmt %s", n.Var.Value)
		p.nest(n.VarType)
		p.label("In", n.Collection)
		p.nest(n.Body)

	case *LoopStmt:
		p.line(n, "LoopStmt")
		p.nest(n.Body)

	case *UntilStmt:
		p.line(n, "UntilStmt")
		p.nest(n.Cond, n.Body)

	case *DoIfStmt:
		p.line(n, "DoIfStmt")
		p.label("Then", n.Then)
		p.label("If", n.Cond)
		p.label("Else", n.Else)

	case *BreakStmt:
		p.line(n, "BreakStmt")

	case *ReturnStmt:
		p.line(n, "ReturnStmt")
		p.nest(n.Result)

	case *UnaryExpr:
		p.line(n, "UnaryExpr %s", n.Op.Value)
		p.nest(n.X)

	case *BinaryExpr:
		p.line(n, "BinaryExpr %s", n.Op.Value)
		p.nest(n.X, n.Y)

	case *RefExpr:
		p.line(n, "RefExpr")
		p.nest(n.Ref)

	case *CallExpr:
		p.line(n, "CallExpr")
		p.nest(n.Target)
		if len(n.Args) > 0 {
			p.label("Args", nodes(n.Args)...)
		}

	case *LiteralExpr:
		p.line(n, "LiteralExpr")
		p.nest(n.Lit)

	case *IfExpr:
		p.line(n, "IfExpr")
		p.label("Then", n.Then)
		p.label("If", n.Cond)
		p.label("Else", n.Else)

	case *IdRef:
		p.line(n, "IdRef %s", n.Name.Value)

	case *IndexedRef:
		p.line(n, "IndexedRef")
		p.nest(n.Base, n.Index)

	case *QualifiedRef:
		p.line(n, "QualifiedRef %s", n.Member.Value)
		p.nest(n.Base)

	case *Ident:
		p.line(n, "Ident %s", n.Value)
	case *Operator:
		p.line(n, "Operator %s", n.Value)
	case *IntLit:
		p.line(n, "IntLit %s", n.Value)
	case *FloatLit:
		p.line(n, "FloatLit %s", n.Value)
	case *BoolLit:
		p.line(n, "BoolLit %t", n.Value)
	case *StringLit:
		p.line(n, "StringLit %q", n.Value)

	default:
		p.printf("<%T>\n", node)
	}
}

// nodes converts a slice of concrete nodes for printing.
func nodes[T Node](s []T) []Node {
	out := make([]Node, len(s))
	for i, n := range s {
		out[i] = n
	}
	return out
}
