package syntax

import "fmt"

// ----------------------------------------------------------------------------
// Interfaces
//
// The node set is closed: every variant lives in this file and carries an
// unexported marker method. Traversals switch on the concrete type.
// Nodes are built bottom-up by the parser and are not modified afterwards.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of the token that introduced the node
	aNode()   // marker method to restrict implementations to this package
}

// Decl is the interface for declarations.
type Decl interface {
	Node
	aDecl()
}

// Type is the interface for type nodes (BaseType, RefType).
type Type interface {
	Node
	aType()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Ref is the interface for addressable locations usable as assignment or
// call targets (IdRef, IndexedRef, QualifiedRef).
type Ref interface {
	Node
	aRef()
}

// Literal is the interface for literal terminals.
type Literal interface {
	Node
	aLit()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

type decl struct{ node }

func (*decl) aDecl() {}

type typ struct{ node }

func (*typ) aType() {}

type stmt struct{ node }

func (*stmt) aStmt() {}

type expr struct{ node }

func (*expr) aExpr() {}

type ref struct{ node }

func (*ref) aRef() {}

type lit struct{ node }

func (*lit) aLit() {}

// ----------------------------------------------------------------------------
// Program and declarations

// Program is the root of the tree: the main block plus every function
// declared before or after it, in source order.
type Program struct {
	node
	Main  *Block
	Funcs []*FuncDecl
}

// FuncDecl represents
//
//	function [Type =] Name ( Params ) Body end
type FuncDecl struct {
	decl
	Name   *Ident
	Result Type // *BaseType{Kind: Void} when no return type was written
	Params []*ParamDecl
	Body   *Block
}

// ParamDecl represents a single "Type Name" function parameter.
type ParamDecl struct {
	decl
	Type Type
	Name *Ident
}

// VarDecl represents the "Type Name" part of a variable declaration.
type VarDecl struct {
	decl
	Type Type
	Name *Ident
}

// ----------------------------------------------------------------------------
// Types

// TypeKind enumerates the built-in types.
type TypeKind uint8

const (
	Void TypeKind = iota
	Int
	Boolean
	Float
	InvalidType
)

var typeKindNames = [...]string{
	Void:        "void",
	Int:         "int",
	Boolean:     "boolean",
	Float:       "float",
	InvalidType: "error",
}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return fmt.Sprintf("TypeKind(%d)", k)
}

// BaseType is a built-in type.
type BaseType struct {
	typ
	Kind TypeKind
}

// RefType is a named type such as String or a user-defined type.
type RefType struct {
	typ
	Name *Ident
}

// ----------------------------------------------------------------------------
// Statements

// Block is an ordered statement sequence.
type Block struct {
	stmt
	Stmts []Stmt
}

// VarDeclStmt represents "Type Name = Init".
type VarDeclStmt struct {
	stmt
	Decl *VarDecl
	Init Expr
}

// AssignStmt represents "Target = Value".
type AssignStmt struct {
	stmt
	Target Ref
	Value  Expr
}

// CallStmt represents a call used as a statement: "Target(Args)".
type CallStmt struct {
	stmt
	Target Ref
	Args   []Expr
}

// IfStmt represents
//
//	if Cond Body {else if Cond Body} [else Else] end
//
// ElseIfs is empty when no "else if" clause was written; Else is nil when
// there is no trailing else.
type IfStmt struct {
	stmt
	Cond    Expr
	Body    *Block
	ElseIfs []*ElseIf
	Else    *Block
}

// ElseIf is one "else if Cond Body" clause of an IfStmt.
type ElseIf struct {
	node
	Cond Expr
	Body *Block
}

// WhileStmt represents "while Cond Body end".
type WhileStmt struct {
	stmt
	Cond Expr
	Body *Block
}

// ForStmt represents the inclusive counted loop
//
//	for VarType Var from From to To [by By] Body end
//
// By is an IntLit 1 when no step was written.
type ForStmt struct {
	stmt
	Var     *Ident
	VarType Type
	From    Expr
	To      Expr
	By      Expr
	Body    *Block
}

// ForEachStmt represents "for VarType Var in Collection Body end".
type ForEachStmt struct {
	stmt
	Var        *Ident
	VarType    Type
	Collection Expr
	Body       *Block
}

// LoopStmt represents the unconditional "loop Body end".
type LoopStmt struct {
	stmt
	Body *Block
}

// UntilStmt represents "until Cond Body end", a while loop over the
// negated condition.
type UntilStmt struct {
	stmt
	Cond Expr
	Body *Block
}

// DoIfStmt represents "do Then if Cond else Else".
type DoIfStmt struct {
	stmt
	Then Stmt
	Cond Expr
	Else Stmt
}

// BreakStmt represents "break".
type BreakStmt struct {
	stmt
}

// ReturnStmt represents "return [Result]".
type ReturnStmt struct {
	stmt
	Result Expr // nil for a bare return
}

// ----------------------------------------------------------------------------
// Expressions

// UnaryExpr represents "Op X" for !, not and -.
type UnaryExpr struct {
	expr
	Op *Operator
	X  Expr
}

// BinaryExpr represents "X Op Y".
type BinaryExpr struct {
	expr
	X  Expr
	Op *Operator
	Y  Expr
}

// RefExpr is a reference used as a value.
type RefExpr struct {
	expr
	Ref Ref
}

// CallExpr represents "Target(Args)" inside an expression.
type CallExpr struct {
	expr
	Target Ref
	Args   []Expr
}

// LiteralExpr wraps a literal terminal.
type LiteralExpr struct {
	expr
	Lit Literal
}

// IfExpr is the ternary "Then if Cond else Else".
type IfExpr struct {
	expr
	Then Expr
	Cond Expr
	Else Expr
}

// ----------------------------------------------------------------------------
// References

// IdRef names a variable or function.
type IdRef struct {
	ref
	Name *Ident
}

// IndexedRef represents "Base[Index]".
type IndexedRef struct {
	ref
	Base  Ref
	Index Expr
}

// QualifiedRef represents "Base.Member". The parser does not produce it.
type QualifiedRef struct {
	ref
	Base   Ref
	Member *Ident
}

// ----------------------------------------------------------------------------
// Terminals

// Ident is an identifier.
type Ident struct {
	node
	Value string
}

// Operator is an operator spelling as written in the source ("and", "&&", "mod", ...).
type Operator struct {
	node
	Value string
}

// IntLit is a decimal integer literal.
type IntLit struct {
	lit
	Value string
}

// FloatLit is a floating-point literal. The scanner does not produce it.
type FloatLit struct {
	lit
	Value string
}

// BoolLit is true or false.
type BoolLit struct {
	lit
	Value bool
}

// StringLit holds the raw characters between the quotes.
type StringLit struct {
	lit
	Value string
}
