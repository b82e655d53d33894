package plugin

import (
	"encoding/json"

	"github.com/tanquar/deno-lint/internal/ast"
	"github.com/tanquar/deno-lint/internal/source"
)

// EncodeProgram renders the tree back into the ESTree-shaped JSON the
// plugin side consumes. The encoding mirrors ast.Decode: decoding what this
// produces yields the same tree. Nodes the analysis kept opaque come out as
// bare {type, start, end} stubs.
func EncodeProgram(prog *ast.Program) ([]byte, error) {
	sourceType := "script"
	if prog.Module {
		sourceType = "module"
	}
	n := node("Program", prog.Loc)
	n["sourceType"] = sourceType
	n["body"] = encodeStmtList(prog.Body)
	return json.Marshal(n)
}

func node(typ string, sp source.Span) map[string]any {
	return map[string]any{
		"type":  typ,
		"start": int64(sp.Start),
		"end":   int64(sp.End),
	}
}

func encodeStmtList(body []ast.Stmt) []any {
	out := make([]any, 0, len(body))
	for _, s := range body {
		out = append(out, encodeStmt(s))
	}
	return out
}

func encodeStmt(s ast.Stmt) any {
	switch s := s.(type) {
	case nil:
		return nil
	case *ast.BlockStmt:
		n := node("BlockStatement", s.Loc)
		n["body"] = encodeStmtList(s.Body)
		return n
	case *ast.ExprStmt:
		n := node("ExpressionStatement", s.Loc)
		n["expression"] = encodeExpr(s.X)
		return n
	case *ast.EmptyStmt:
		return node("EmptyStatement", s.Loc)
	case *ast.DebuggerStmt:
		return node("DebuggerStatement", s.Loc)
	case *ast.VarDecl:
		return encodeVarDecl(s)
	case *ast.FnDecl:
		n := node("FunctionDeclaration", s.Loc)
		n["id"] = encodeExpr(s.Name)
		fnFields(n, s.Fn)
		return n
	case *ast.ReturnStmt:
		n := node("ReturnStatement", s.Loc)
		n["argument"] = encodeExpr(s.Arg)
		return n
	case *ast.IfStmt:
		n := node("IfStatement", s.Loc)
		n["test"] = encodeExpr(s.Test)
		n["consequent"] = encodeStmt(s.Cons)
		n["alternate"] = encodeStmt(s.Alt)
		return n
	case *ast.WhileStmt:
		n := node("WhileStatement", s.Loc)
		n["test"] = encodeExpr(s.Test)
		n["body"] = encodeStmt(s.Body)
		return n
	case *ast.DoWhileStmt:
		n := node("DoWhileStatement", s.Loc)
		n["body"] = encodeStmt(s.Body)
		n["test"] = encodeExpr(s.Test)
		return n
	case *ast.ForStmt:
		n := node("ForStatement", s.Loc)
		n["init"] = encodeNode(s.Init)
		n["test"] = encodeExpr(s.Test)
		n["update"] = encodeExpr(s.Update)
		n["body"] = encodeStmt(s.Body)
		return n
	case *ast.ForInStmt:
		typ := "ForInStatement"
		if s.Of {
			typ = "ForOfStatement"
		}
		n := node(typ, s.Loc)
		n["left"] = encodeNode(s.Left)
		n["right"] = encodeExpr(s.Right)
		n["body"] = encodeStmt(s.Body)
		return n
	case *ast.SwitchStmt:
		n := node("SwitchStatement", s.Loc)
		n["discriminant"] = encodeExpr(s.Disc)
		cases := make([]any, 0, len(s.Cases))
		for _, c := range s.Cases {
			cn := node("SwitchCase", c.Loc)
			cn["test"] = encodeExpr(c.Test)
			cn["consequent"] = encodeStmtList(c.Body)
			cases = append(cases, cn)
		}
		n["cases"] = cases
		return n
	case *ast.TryStmt:
		n := node("TryStatement", s.Loc)
		n["block"] = encodeStmt(s.Block)
		if s.Handler != nil {
			hn := node("CatchClause", s.Handler.Loc)
			hn["param"] = encodePat(s.Handler.Param)
			hn["body"] = encodeStmt(s.Handler.Body)
			n["handler"] = hn
		} else {
			n["handler"] = nil
		}
		n["finalizer"] = encodeStmt(s.Finalizer)
		return n
	case *ast.ThrowStmt:
		n := node("ThrowStatement", s.Loc)
		n["argument"] = encodeExpr(s.Arg)
		return n
	case *ast.BreakStmt:
		n := node("BreakStatement", s.Loc)
		n["label"] = encodeExpr(s.Label)
		return n
	case *ast.ContinueStmt:
		n := node("ContinueStatement", s.Loc)
		n["label"] = encodeExpr(s.Label)
		return n
	case *ast.LabeledStmt:
		n := node("LabeledStatement", s.Loc)
		n["label"] = encodeExpr(s.Label)
		n["body"] = encodeStmt(s.Body)
		return n
	case *ast.OpaqueStmt:
		return node(s.Type, s.Loc)
	default:
		return node("UnknownStatement", s.Span())
	}
}

func encodeVarDecl(v *ast.VarDecl) map[string]any {
	n := node("VariableDeclaration", v.Loc)
	n["kind"] = v.Kind.String()
	decls := make([]any, 0, len(v.Decls))
	for _, d := range v.Decls {
		dn := node("VariableDeclarator", d.Loc)
		dn["id"] = encodePat(d.Name)
		dn["init"] = encodeExpr(d.Init)
		decls = append(decls, dn)
	}
	n["declarations"] = decls
	return n
}

// encodeNode handles the positions that hold either a declaration, an
// expression or a pattern (for-init, for-in left, assignment target).
func encodeNode(x ast.Node) any {
	switch x := x.(type) {
	case nil:
		return nil
	case *ast.VarDecl:
		return encodeVarDecl(x)
	case ast.Expr:
		return encodeExpr(x)
	case ast.Pat:
		return encodePat(x)
	case ast.Stmt:
		return encodeStmt(x)
	default:
		return node("UnknownNode", x.Span())
	}
}

func encodeExprList(elems []ast.Expr) []any {
	out := make([]any, 0, len(elems))
	for _, e := range elems {
		out = append(out, encodeExpr(e)) // nil elem stays a hole
	}
	return out
}

func encodeExpr(e ast.Expr) any {
	switch e := e.(type) {
	case nil:
		return nil
	case *ast.Ident:
		if e == nil {
			return nil
		}
		n := node("Identifier", e.Loc)
		n["name"] = e.Name
		return n
	case *ast.Lit:
		return encodeLit(e)
	case *ast.TemplateLit:
		n := node("TemplateLiteral", e.Loc)
		n["expressions"] = encodeExprList(e.Exprs)
		n["quasis"] = []any{}
		return n
	case *ast.ArrayLit:
		n := node("ArrayExpression", e.Loc)
		n["elements"] = encodeExprList(e.Elems)
		return n
	case *ast.ObjectLit:
		n := node("ObjectExpression", e.Loc)
		props := make([]any, 0, len(e.Props))
		for _, p := range e.Props {
			pn := node("Property", p.Loc)
			pn["key"] = encodeExpr(p.Key)
			pn["computed"] = p.Computed
			if p.Value != nil {
				pn["value"] = encodeExpr(p.Value)
				pn["shorthand"] = false
			} else {
				pn["value"] = encodeExpr(p.Key)
				pn["shorthand"] = true
			}
			props = append(props, pn)
		}
		n["properties"] = props
		return n
	case *ast.UnaryExpr:
		n := node("UnaryExpression", e.Loc)
		n["operator"] = e.Op
		n["prefix"] = true
		n["argument"] = encodeExpr(e.Arg)
		return n
	case *ast.UpdateExpr:
		n := node("UpdateExpression", e.Loc)
		n["operator"] = e.Op
		n["prefix"] = e.Prefix
		n["argument"] = encodeExpr(e.Arg)
		return n
	case *ast.BinExpr:
		typ := "BinaryExpression"
		if e.Op == "&&" || e.Op == "||" || e.Op == "??" {
			typ = "LogicalExpression"
		}
		n := node(typ, e.Loc)
		n["operator"] = e.Op
		n["left"] = encodeExpr(e.Left)
		n["right"] = encodeExpr(e.Right)
		return n
	case *ast.AssignExpr:
		n := node("AssignmentExpression", e.Loc)
		n["operator"] = e.Op
		n["left"] = encodeNode(e.Left)
		n["right"] = encodeExpr(e.Right)
		return n
	case *ast.CondExpr:
		n := node("ConditionalExpression", e.Loc)
		n["test"] = encodeExpr(e.Test)
		n["consequent"] = encodeExpr(e.Cons)
		n["alternate"] = encodeExpr(e.Alt)
		return n
	case *ast.CallExpr:
		n := node("CallExpression", e.Loc)
		n["callee"] = encodeExpr(e.Callee)
		n["arguments"] = encodeExprList(e.Args)
		n["optional"] = e.Optional
		return n
	case *ast.NewExpr:
		n := node("NewExpression", e.Loc)
		n["callee"] = encodeExpr(e.Callee)
		n["arguments"] = encodeExprList(e.Args)
		return n
	case *ast.MemberExpr:
		n := node("MemberExpression", e.Loc)
		n["object"] = encodeExpr(e.Obj)
		n["property"] = encodeExpr(e.Prop)
		n["computed"] = e.Computed
		n["optional"] = e.Optional
		return n
	case *ast.SeqExpr:
		n := node("SequenceExpression", e.Loc)
		n["expressions"] = encodeExprList(e.Exprs)
		return n
	case *ast.FnExpr:
		n := node("FunctionExpression", e.Loc)
		n["id"] = encodeExpr(e.Name)
		fnFields(n, e.Fn)
		return n
	case *ast.ArrowExpr:
		n := node("ArrowFunctionExpression", e.Loc)
		n["id"] = nil
		fnFields(n, e.Fn)
		return n
	case *ast.SpreadExpr:
		n := node("SpreadElement", e.Loc)
		n["argument"] = encodeExpr(e.Arg)
		return n
	case *ast.TSNonNull:
		n := node("TSNonNullExpression", e.Loc)
		n["expression"] = encodeExpr(e.X)
		return n
	case *ast.TSAsExpr:
		typ := "TSAsExpression"
		if e.Assertion {
			typ = "TSTypeAssertion"
		}
		n := node(typ, e.Loc)
		n["expression"] = encodeExpr(e.X)
		n["typeAnnotation"] = encodeType(e.TypeAnn)
		return n
	case *ast.OpaqueExpr:
		return node(e.Type, e.Loc)
	default:
		return node("UnknownExpression", e.Span())
	}
}

func encodeLit(l *ast.Lit) map[string]any {
	n := node("Literal", l.Loc)
	n["raw"] = l.Raw
	switch l.Kind {
	case ast.LitBool:
		n["value"] = l.Bool
	case ast.LitNum:
		n["value"] = l.Num
	case ast.LitStr:
		n["value"] = l.Str
	case ast.LitRegex:
		n["value"] = nil
		n["regex"] = map[string]any{}
	case ast.LitBigInt:
		n["value"] = nil
		n["bigint"] = l.Raw
	default:
		n["value"] = nil
	}
	return n
}

func fnFields(n map[string]any, fn *ast.Function) {
	params := make([]any, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, encodePat(p))
	}
	n["params"] = params
	n["async"] = fn.Async
	n["generator"] = fn.Generator
	if fn.Body != nil {
		n["body"] = encodeStmt(fn.Body)
		n["expression"] = false
	} else {
		n["body"] = encodeExpr(fn.ExprBody)
		n["expression"] = true
	}
}

func encodePat(p ast.Pat) any {
	switch p := p.(type) {
	case nil:
		return nil
	case *ast.IdentPat:
		n := node("Identifier", p.Loc)
		n["name"] = p.Name
		n["typeAnnotation"] = encodeTypeAnn(p.TypeAnn)
		return n
	case *ast.ArrayPat:
		n := node("ArrayPattern", p.Loc)
		elems := make([]any, 0, len(p.Elems))
		for _, e := range p.Elems {
			elems = append(elems, encodePat(e))
		}
		n["elements"] = elems
		n["typeAnnotation"] = encodeTypeAnn(p.TypeAnn)
		return n
	case *ast.ObjectPat:
		n := node("ObjectPattern", p.Loc)
		n["properties"] = []any{}
		n["typeAnnotation"] = encodeTypeAnn(p.TypeAnn)
		return n
	case *ast.RestPat:
		n := node("RestElement", p.Loc)
		n["argument"] = encodePat(p.Arg)
		return n
	case *ast.OpaquePat:
		return node(p.Type, p.Loc)
	default:
		return node("UnknownPattern", p.Span())
	}
}

// encodeTypeAnn wraps a type in the TSTypeAnnotation node the ESTree shape
// carries on annotated bindings.
func encodeTypeAnn(t ast.TSType) any {
	if t == nil {
		return nil
	}
	n := node("TSTypeAnnotation", t.Span())
	n["typeAnnotation"] = encodeType(t)
	return n
}

func encodeType(t ast.TSType) any {
	switch t := t.(type) {
	case nil:
		return nil
	case *ast.TSLitType:
		n := node("TSLiteralType", t.Loc)
		n["literal"] = encodeLit(t.Lit)
		return n
	case *ast.TSTypeRef:
		n := node("TSTypeReference", t.Loc)
		name := node("Identifier", t.Loc)
		name["name"] = t.Name
		n["typeName"] = name
		return n
	case *ast.OpaqueType:
		return node(t.Type, t.Loc)
	default:
		return node("UnknownType", t.Span())
	}
}
