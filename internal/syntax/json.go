package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
// Object keys are sorted by encoding/json, so the output is stable.
func FprintJSON(w io.Writer, node Node, conf *PrintConfig) error {
	j := jsoner{}
	if conf != nil {
		j.conf = *conf
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(j.toJSON(node))
}

type jsoner struct {
	conf PrintConfig
}

// obj starts the JSON object for n.
func (j jsoner) obj(n Node, kind string) map[string]interface{} {
	m := map[string]interface{}{"type": kind}
	if j.conf.ShowPositions {
		m["pos"] = n.Pos().String()
	}
	return m
}

func (j jsoner) toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		m := j.obj(n, "Program")
		m["functions"] = mapSlice(n.Funcs, j.toJSON)
		m["main"] = j.block(n.Main)
		return m

	case *FuncDecl:
		m := j.obj(n, "FuncDecl")
		m["name"] = n.Name.Value
		m["result"] = j.toJSON(n.Result)
		m["params"] = mapSlice(n.Params, j.toJSON)
		m["body"] = j.block(n.Body)
		return m

	case *ParamDecl:
		m := j.obj(n, "ParamDecl")
		m["name"] = n.Name.Value
		m["paramtype"] = j.toJSON(n.Type)
		return m

	case *VarDecl:
		m := j.obj(n, "VarDecl")
		m["name"] = n.Name.Value
		m["vartype"] = j.toJSON(n.Type)
		return m

	case *BaseType:
		m := j.obj(n, "BaseType")
		m["kind"] = n.Kind.String()
		return m

	case *RefType:
		m := j.obj(n, "RefType")
		m["name"] = n.Name.Value
		return m

	case *Block:
		m := j.obj(n, "Block")
		m["stmts"] = mapSlice(n.Stmts, j.toJSON)
		return m

	case *VarDeclStmt:
		m := j.obj(n, "VarDeclStmt")
		m["decl"] = j.toJSON(n.Decl)
		m["init"] = j.toJSON(n.Init)
		return m

	case *AssignStmt:
		m := j.obj(n, "AssignStmt")
		m["target"] = j.toJSON(n.Target)
		m["value"] = j.toJSON(n.Value)
		return m

	case *CallStmt:
		m := j.obj(n, "CallStmt")
		m["target"] = j.toJSON(n.Target)
		m["args"] = mapSlice(n.Args, j.toJSON)
		return m

	case *IfStmt:
		m := j.obj(n, "IfStmt")
		m["cond"] = j.toJSON(n.Cond)
		m["body"] = j.block(n.Body)
		m["elseifs"] = mapSlice(n.ElseIfs, j.toJSON)
		m["else"] = j.block(n.Else)
		return m

	case *ElseIf:
		m := j.obj(n, "ElseIf")
		m["cond"] = j.toJSON(n.Cond)
		m["body"] = j.block(n.Body)
		return m

	case *WhileStmt:
		m := j.obj(n, "WhileStmt")
		m["cond"] = j.toJSON(n.Cond)
		m["body"] = j.block(n.Body)
		return m

	case *ForStmt:
		m := j.obj(n, "ForStmt")
		m["var"] = n.Var.Value
		m["vartype"] = j.toJSON(n.VarType)
		m["from"] = j.toJSON(n.From)
		m["to"] = j.toJSON(n.To)
		m["by"] = j.toJSON(n.By)
		m["body"] = j.block(n.Body)
		return m

	case *ForEachStmt:
		m := j.obj(n, "ForEachStmt")
		m["var"] = n.Var.Value
		m["vartype"] = j.toJSON(n.VarType)
		m["collection"] = j.toJSON(n.Collection)
		m["body"] = j.block(n.Body)
		return m

	case *LoopStmt:
		m := j.obj(n, "LoopStmt")
		m["body"] = j.block(n.Body)
		return m

	case *UntilStmt:
		m := j.obj(n, "UntilStmt")
		m["cond"] = j.toJSON(n.Cond)
		m["body"] = j.block(n.Body)
		return m

	case *DoIfStmt:
		m := j.obj(n, "DoIfStmt")
		m["then"] = j.toJSON(n.Then)
		m["cond"] = j.toJSON(n.Cond)
		m["else"] = j.toJSON(n.Else)
		return m

	case *BreakStmt:
		return j.obj(n, "BreakStmt")

	case *ReturnStmt:
		m := j.obj(n, "ReturnStmt")
		m["result"] = j.toJSON(n.Result)
		return m

	case *UnaryExpr:
		m := j.obj(n, "UnaryExpr")
		m["op"] = n.Op.Value
		m["x"] = j.toJSON(n.X)
		return m

	case *BinaryExpr:
		m := j.obj(n, "BinaryExpr")
		m["op"] = n.Op.Value
		m["x"] = j.toJSON(n.X)
		m["y"] = j.toJSON(n.Y)
		return m

	case *RefExpr:
		m := j.obj(n, "RefExpr")
		m["ref"] = j.toJSON(n.Ref)
		return m

	case *CallExpr:
		m := j.obj(n, "CallExpr")
		m["target"] = j.toJSON(n.Target)
		m["args"] = mapSlice(n.Args, j.toJSON)
		return m

	case *LiteralExpr:
		return j.toJSON(n.Lit)

	case *IfExpr:
		m := j.obj(n, "IfExpr")
		m["then"] = j.toJSON(n.Then)
		m["cond"] = j.toJSON(n.Cond)
		m["else"] = j.toJSON(n.Else)
		return m

	case *IdRef:
		m := j.obj(n, "IdRef")
		m["name"] = n.Name.Value
		return m

	case *IndexedRef:
		m := j.obj(n, "IndexedRef")
		m["base"] = j.toJSON(n.Base)
		m["index"] = j.toJSON(n.Index)
		return m

	case *QualifiedRef:
		m := j.obj(n, "QualifiedRef")
		m["base"] = j.toJSON(n.Base)
		m["member"] = n.Member.Value
		return m

	case *Ident:
		m := j.obj(n, "Ident")
		m["value"] = n.Value
		return m

	case *Operator:
		m := j.obj(n, "Operator")
		m["value"] = n.Value
		return m

	case *IntLit:
		m := j.obj(n, "IntLit")
		m["value"] = n.Value
		return m

	case *FloatLit:
		m := j.obj(n, "FloatLit")
		m["value"] = n.Value
		return m

	case *BoolLit:
		m := j.obj(n, "BoolLit")
		m["value"] = n.Value
		return m

	case *StringLit:
		m := j.obj(n, "StringLit")
		m["value"] = n.Value
		return m

	default:
		return map[string]interface{}{"type": "Unknown"}
	}
}

// block converts an optional block; a nil block becomes JSON null.
func (j jsoner) block(b *Block) interface{} {
	if b == nil {
		return nil
	}
	return j.toJSON(b)
}

func mapSlice[T Node](s []T, f func(Node) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
