package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order, visiting children in source
// order. If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		// Functions are visited around the main block in source order.
		walkFuncs(n.Funcs, v, func(f *FuncDecl) bool { return n.beforeMain(f.Pos()) })
		if n.Main != nil {
			Walk(n.Main, v)
		}
		walkFuncs(n.Funcs, v, func(f *FuncDecl) bool { return !n.beforeMain(f.Pos()) })

	case *FuncDecl:
		Walk(n.Result, v)
		Walk(n.Name, v)
		for _, p := range n.Params {
			Walk(p, v)
		}
		if n.Body != nil {
			Walk(n.Body, v)
		}

	case *ParamDecl:
		Walk(n.Type, v)
		Walk(n.Name, v)

	case *VarDecl:
		Walk(n.Type, v)
		Walk(n.Name, v)

	case *RefType:
		Walk(n.Name, v)

	case *Block:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *VarDeclStmt:
		Walk(n.Decl, v)
		Walk(n.Init, v)

	case *AssignStmt:
		Walk(n.Target, v)
		Walk(n.Value, v)

	case *CallStmt:
		Walk(n.Target, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *IfStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)
		for _, ei := range n.ElseIfs {
			Walk(ei, v)
		}
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *ElseIf:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *WhileStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *ForStmt:
		Walk(n.VarType, v)
		Walk(n.Var, v)
		Walk(n.From, v)
		Walk(n.To, v)
		Walk(n.By, v)
		Walk(n.Body, v)

	case *ForEachStmt:
		Walk(n.VarType, v)
		Walk(n.Var, v)
		Walk(n.Collection, v)
		Walk(n.Body, v)

	case *LoopStmt:
		Walk(n.Body, v)

	case *UntilStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *DoIfStmt:
		Walk(n.Then, v)
		Walk(n.Cond, v)
		Walk(n.Else, v)

	case *ReturnStmt:
		Walk(n.Result, v)

	case *UnaryExpr:
		Walk(n.Op, v)
		Walk(n.X, v)

	case *BinaryExpr:
		Walk(n.X, v)
		Walk(n.Op, v)
		Walk(n.Y, v)

	case *RefExpr:
		Walk(n.Ref, v)

	case *CallExpr:
		Walk(n.Target, v)
		for _, a := range n.Args {
			Walk(a, v)
		}

	case *LiteralExpr:
		Walk(n.Lit, v)

	case *IfExpr:
		Walk(n.Then, v)
		Walk(n.Cond, v)
		Walk(n.Else, v)

	case *IdRef:
		Walk(n.Name, v)

	case *IndexedRef:
		Walk(n.Base, v)
		Walk(n.Index, v)

	case *QualifiedRef:
		Walk(n.Base, v)
		Walk(n.Member, v)

	// Leaf nodes: BaseType, BreakStmt, Ident, Operator and the literals.
	// No children to visit
	}
}

// walkFuncs walks the functions selected by keep.
func walkFuncs(funcs []*FuncDecl, v Visitor, keep func(*FuncDecl) bool) {
	for _, f := range funcs {
		if keep(f) {
			Walk(f, v)
		}
	}
}

// beforeMain reports whether pos precedes the main block.
func (n *Program) beforeMain(pos Pos) bool {
	if n.Main == nil {
		return false
	}
	return pos.Before(n.Main.Pos())
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
