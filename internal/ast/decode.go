package ast

import (
	"encoding/json"
	"fmt"

	"fortio.org/safecast"

	"github.com/tanquar/deno-lint/internal/source"
)

// rawNode is the union of every ESTree field the decoder looks at. Child
// fields stay raw because the same key holds different shapes depending on
// the node type (e.g. "body" is a list on Program and a node on
// LabeledStatement).
type rawNode struct {
	Type           string            `json:"type"`
	Start          *int64            `json:"start"`
	End            *int64            `json:"end"`
	SourceType     string            `json:"sourceType"`
	Body           json.RawMessage   `json:"body"`
	Expression     json.RawMessage   `json:"expression"`
	Test           json.RawMessage   `json:"test"`
	Consequent     json.RawMessage   `json:"consequent"`
	Alternate      json.RawMessage   `json:"alternate"`
	Init           json.RawMessage   `json:"init"`
	Update         json.RawMessage   `json:"update"`
	Left           json.RawMessage   `json:"left"`
	Right          json.RawMessage   `json:"right"`
	Operator       string            `json:"operator"`
	Argument       json.RawMessage   `json:"argument"`
	Arguments      []json.RawMessage `json:"arguments"`
	Callee         json.RawMessage   `json:"callee"`
	Object         json.RawMessage   `json:"object"`
	Property       json.RawMessage   `json:"property"`
	Computed       bool              `json:"computed"`
	Optional       bool              `json:"optional"`
	Prefix         bool              `json:"prefix"`
	Async          bool              `json:"async"`
	Generator      bool              `json:"generator"`
	Elements       []json.RawMessage `json:"elements"`
	Properties     []json.RawMessage `json:"properties"`
	Key            json.RawMessage   `json:"key"`
	Value          json.RawMessage   `json:"value"`
	Kind           string            `json:"kind"`
	Declarations   []json.RawMessage `json:"declarations"`
	ID             json.RawMessage   `json:"id"`
	Params         []json.RawMessage `json:"params"`
	Cases          []json.RawMessage `json:"cases"`
	Discriminant   json.RawMessage   `json:"discriminant"`
	Block          json.RawMessage   `json:"block"`
	Handler        json.RawMessage   `json:"handler"`
	Finalizer      json.RawMessage   `json:"finalizer"`
	Param          json.RawMessage   `json:"param"`
	Label          json.RawMessage   `json:"label"`
	Name           string            `json:"name"`
	Raw            string            `json:"raw"`
	Regex          json.RawMessage   `json:"regex"`
	BigInt         string            `json:"bigint"`
	Expressions    []json.RawMessage `json:"expressions"`
	TypeAnnotation json.RawMessage   `json:"typeAnnotation"`
	TypeName       json.RawMessage   `json:"typeName"`
	Literal        json.RawMessage   `json:"literal"`
}

// Decode parses an ESTree-shaped JSON document (as emitted by acorn,
// espree or typescript-eslint) into a Program. Node types the analysis
// does not model decode to opaque nodes; structurally invalid input fails.
func Decode(data []byte) (*Program, error) {
	d := &decoder{}
	raw := d.raw(data)
	if d.err != nil {
		return nil, d.err
	}
	if raw == nil || raw.Type != "Program" {
		return nil, fmt.Errorf("decode: root node is %q, want Program", typeOf(raw))
	}
	prog := &Program{
		Loc:    d.span(raw),
		Module: raw.SourceType == "module",
		Body:   d.stmtList(raw.Body),
	}
	if d.err != nil {
		return nil, d.err
	}
	return prog, nil
}

func typeOf(raw *rawNode) string {
	if raw == nil {
		return "<nil>"
	}
	return raw.Type
}

type decoder struct {
	err error
}

func (d *decoder) failf(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf("decode: "+format, args...)
	}
}

// raw unmarshals one node; JSON null yields nil.
func (d *decoder) raw(data json.RawMessage) *rawNode {
	if d.err != nil || len(data) == 0 || string(data) == "null" {
		return nil
	}
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		d.failf("malformed node: %v", err)
		return nil
	}
	return &raw
}

func (d *decoder) span(raw *rawNode) source.Span {
	if raw == nil || raw.Start == nil || raw.End == nil {
		return source.Span{}
	}
	start, err := safecast.Conv[uint32](*raw.Start)
	if err != nil {
		d.failf("span start overflow: %v", err)
		return source.Span{}
	}
	end, err := safecast.Conv[uint32](*raw.End)
	if err != nil {
		d.failf("span end overflow: %v", err)
		return source.Span{}
	}
	return source.Span{Start: start, End: end}
}

func (d *decoder) stmtList(data json.RawMessage) []Stmt {
	if d.err != nil || len(data) == 0 || string(data) == "null" {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		d.failf("malformed statement list: %v", err)
		return nil
	}
	out := make([]Stmt, 0, len(items))
	for _, item := range items {
		if s := d.stmt(item); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (d *decoder) stmt(data json.RawMessage) Stmt {
	raw := d.raw(data)
	if raw == nil {
		return nil
	}
	sp := d.span(raw)

	switch raw.Type {
	case "ExpressionStatement":
		return &ExprStmt{Loc: sp, X: d.expr(raw.Expression)}
	case "BlockStatement":
		return &BlockStmt{Loc: sp, Body: d.stmtList(raw.Body)}
	case "EmptyStatement":
		return &EmptyStmt{Loc: sp}
	case "DebuggerStatement":
		return &DebuggerStmt{Loc: sp}
	case "VariableDeclaration":
		return d.varDecl(raw, sp)
	case "FunctionDeclaration":
		return &FnDecl{Loc: sp, Name: d.ident(raw.ID), Fn: d.function(raw, sp)}
	case "ReturnStatement":
		return &ReturnStmt{Loc: sp, Arg: d.optExpr(raw.Argument)}
	case "IfStatement":
		return &IfStmt{
			Loc:  sp,
			Test: d.expr(raw.Test),
			Cons: d.stmt(raw.Consequent),
			Alt:  d.optStmt(raw.Alternate),
		}
	case "WhileStatement":
		return &WhileStmt{Loc: sp, Test: d.expr(raw.Test), Body: d.stmt(raw.Body)}
	case "DoWhileStatement":
		return &DoWhileStmt{Loc: sp, Body: d.stmt(raw.Body), Test: d.expr(raw.Test)}
	case "ForStatement":
		return &ForStmt{
			Loc:    sp,
			Init:   d.forInit(raw.Init),
			Test:   d.optExpr(raw.Test),
			Update: d.optExpr(raw.Update),
			Body:   d.stmt(raw.Body),
		}
	case "ForInStatement", "ForOfStatement":
		return &ForInStmt{
			Loc:   sp,
			Left:  d.forInit(raw.Left),
			Right: d.expr(raw.Right),
			Body:  d.stmt(raw.Body),
			Of:    raw.Type == "ForOfStatement",
		}
	case "SwitchStatement":
		sw := &SwitchStmt{Loc: sp, Disc: d.expr(raw.Discriminant)}
		for _, c := range raw.Cases {
			craw := d.raw(c)
			if craw == nil {
				continue
			}
			sw.Cases = append(sw.Cases, &SwitchCase{
				Loc:  d.span(craw),
				Test: d.optExpr(craw.Test),
				Body: d.stmtList(craw.Consequent),
			})
		}
		return sw
	case "TryStatement":
		ts := &TryStmt{Loc: sp, Block: d.block(raw.Block)}
		if hraw := d.raw(raw.Handler); hraw != nil {
			ts.Handler = &CatchClause{
				Loc:   d.span(hraw),
				Param: d.optPat(hraw.Param),
				Body:  d.block(hraw.Body),
			}
		}
		if fin := d.raw(raw.Finalizer); fin != nil {
			ts.Finalizer = &BlockStmt{Loc: d.span(fin), Body: d.stmtList(fin.Body)}
		}
		return ts
	case "ThrowStatement":
		return &ThrowStmt{Loc: sp, Arg: d.expr(raw.Argument)}
	case "BreakStatement":
		return &BreakStmt{Loc: sp, Label: d.ident(raw.Label)}
	case "ContinueStatement":
		return &ContinueStmt{Loc: sp, Label: d.ident(raw.Label)}
	case "LabeledStatement":
		return &LabeledStmt{Loc: sp, Label: d.ident(raw.Label), Body: d.stmt(raw.Body)}
	default:
		return &OpaqueStmt{Loc: sp, Type: raw.Type}
	}
}

func (d *decoder) optStmt(data json.RawMessage) Stmt {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return d.stmt(data)
}

func (d *decoder) varDecl(raw *rawNode, sp source.Span) *VarDecl {
	decl := &VarDecl{Loc: sp}
	switch raw.Kind {
	case "let":
		decl.Kind = VarLet
	case "const":
		decl.Kind = VarConst
	default:
		decl.Kind = VarVar
	}
	for _, item := range raw.Declarations {
		draw := d.raw(item)
		if draw == nil {
			continue
		}
		decl.Decls = append(decl.Decls, &VarDeclarator{
			Loc:  d.span(draw),
			Name: d.pat(draw.ID),
			Init: d.optExpr(draw.Init),
		})
	}
	return decl
}

// forInit decodes a for-loop init / for-in left, which is either a
// VariableDeclaration or an expression.
func (d *decoder) forInit(data json.RawMessage) Node {
	raw := d.raw(data)
	if raw == nil {
		return nil
	}
	if raw.Type == "VariableDeclaration" {
		return d.varDecl(raw, d.span(raw))
	}
	return d.expr(data)
}

func (d *decoder) block(data json.RawMessage) *BlockStmt {
	raw := d.raw(data)
	if raw == nil {
		return nil
	}
	return &BlockStmt{Loc: d.span(raw), Body: d.stmtList(raw.Body)}
}

func (d *decoder) function(raw *rawNode, sp source.Span) *Function {
	fn := &Function{
		Loc:       sp,
		Async:     raw.Async,
		Generator: raw.Generator,
	}
	for _, p := range raw.Params {
		if pat := d.pat(p); pat != nil {
			fn.Params = append(fn.Params, pat)
		}
	}
	body := d.raw(raw.Body)
	if body != nil && body.Type == "BlockStatement" {
		fn.Body = &BlockStmt{Loc: d.span(body), Body: d.stmtList(body.Body)}
	} else if body != nil {
		fn.ExprBody = d.expr(raw.Body)
	}
	return fn
}

func (d *decoder) exprList(items []json.RawMessage) []Expr {
	out := make([]Expr, 0, len(items))
	for _, item := range items {
		if len(item) == 0 || string(item) == "null" {
			out = append(out, nil) // array hole
			continue
		}
		out = append(out, d.expr(item))
	}
	return out
}

func (d *decoder) optExpr(data json.RawMessage) Expr {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return d.expr(data)
}

func (d *decoder) expr(data json.RawMessage) Expr {
	raw := d.raw(data)
	if raw == nil {
		return nil
	}
	sp := d.span(raw)

	switch raw.Type {
	case "Identifier":
		return &Ident{Loc: sp, Name: raw.Name}
	case "Literal":
		return d.literal(raw, sp)
	case "TemplateLiteral":
		return &TemplateLit{Loc: sp, Exprs: d.exprList(raw.Expressions)}
	case "ArrayExpression":
		return &ArrayLit{Loc: sp, Elems: d.exprList(raw.Elements)}
	case "ObjectExpression":
		obj := &ObjectLit{Loc: sp}
		for _, p := range raw.Properties {
			praw := d.raw(p)
			if praw == nil {
				continue
			}
			if praw.Type != "Property" {
				// SpreadElement etc. — не моделируем
				continue
			}
			obj.Props = append(obj.Props, &Property{
				Loc:      d.span(praw),
				Key:      d.expr(praw.Key),
				Value:    d.optExpr(praw.Value),
				Computed: praw.Computed,
			})
		}
		return obj
	case "UnaryExpression":
		return &UnaryExpr{Loc: sp, Op: raw.Operator, Arg: d.expr(raw.Argument)}
	case "UpdateExpression":
		return &UpdateExpr{Loc: sp, Op: raw.Operator, Prefix: raw.Prefix, Arg: d.expr(raw.Argument)}
	case "BinaryExpression", "LogicalExpression":
		return &BinExpr{Loc: sp, Op: raw.Operator, Left: d.expr(raw.Left), Right: d.expr(raw.Right)}
	case "AssignmentExpression":
		return &AssignExpr{Loc: sp, Op: raw.Operator, Left: d.expr(raw.Left), Right: d.expr(raw.Right)}
	case "ConditionalExpression":
		return &CondExpr{Loc: sp, Test: d.expr(raw.Test), Cons: d.expr(raw.Consequent), Alt: d.expr(raw.Alternate)}
	case "CallExpression":
		return &CallExpr{Loc: sp, Callee: d.expr(raw.Callee), Args: d.exprList(raw.Arguments), Optional: raw.Optional}
	case "NewExpression":
		return &NewExpr{Loc: sp, Callee: d.expr(raw.Callee), Args: d.exprList(raw.Arguments)}
	case "MemberExpression":
		return &MemberExpr{Loc: sp, Obj: d.expr(raw.Object), Prop: d.expr(raw.Property), Computed: raw.Computed, Optional: raw.Optional}
	case "SequenceExpression":
		return &SeqExpr{Loc: sp, Exprs: d.exprList(raw.Expressions)}
	case "FunctionExpression":
		return &FnExpr{Loc: sp, Name: d.ident(raw.ID), Fn: d.function(raw, sp)}
	case "ArrowFunctionExpression":
		return &ArrowExpr{Loc: sp, Fn: d.function(raw, sp)}
	case "SpreadElement":
		return &SpreadExpr{Loc: sp, Arg: d.expr(raw.Argument)}
	case "TSNonNullExpression":
		return &TSNonNull{Loc: sp, X: d.expr(raw.Expression)}
	case "TSAsExpression":
		return &TSAsExpr{Loc: sp, X: d.expr(raw.Expression), TypeAnn: d.tsType(raw.TypeAnnotation)}
	case "TSTypeAssertion":
		return &TSAsExpr{Loc: sp, X: d.expr(raw.Expression), TypeAnn: d.tsType(raw.TypeAnnotation), Assertion: true}
	case "ChainExpression", "ParenthesizedExpression":
		return d.expr(raw.Expression)
	default:
		return &OpaqueExpr{Loc: sp, Type: raw.Type}
	}
}

func (d *decoder) literal(raw *rawNode, sp source.Span) *Lit {
	lit := &Lit{Loc: sp, Raw: raw.Raw}
	switch {
	case len(raw.Regex) != 0 && string(raw.Regex) != "null":
		lit.Kind = LitRegex
	case raw.BigInt != "":
		lit.Kind = LitBigInt
	case len(raw.Value) == 0 || string(raw.Value) == "null":
		lit.Kind = LitNull
	default:
		var v any
		if err := json.Unmarshal(raw.Value, &v); err != nil {
			d.failf("malformed literal value: %v", err)
			return lit
		}
		switch val := v.(type) {
		case bool:
			lit.Kind = LitBool
			lit.Bool = val
		case float64:
			lit.Kind = LitNum
			lit.Num = val
		case string:
			lit.Kind = LitStr
			lit.Str = val
		default:
			d.failf("unsupported literal value %T", v)
		}
	}
	return lit
}

func (d *decoder) ident(data json.RawMessage) *Ident {
	raw := d.raw(data)
	if raw == nil {
		return nil
	}
	return &Ident{Loc: d.span(raw), Name: raw.Name}
}

func (d *decoder) optPat(data json.RawMessage) Pat {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return d.pat(data)
}

func (d *decoder) pat(data json.RawMessage) Pat {
	raw := d.raw(data)
	if raw == nil {
		return nil
	}
	sp := d.span(raw)

	switch raw.Type {
	case "Identifier":
		return &IdentPat{Loc: sp, Name: raw.Name, TypeAnn: d.typeAnn(raw.TypeAnnotation)}
	case "ArrayPattern":
		ap := &ArrayPat{Loc: sp, TypeAnn: d.typeAnn(raw.TypeAnnotation)}
		for _, e := range raw.Elements {
			if len(e) == 0 || string(e) == "null" {
				ap.Elems = append(ap.Elems, nil)
				continue
			}
			ap.Elems = append(ap.Elems, d.pat(e))
		}
		return ap
	case "ObjectPattern":
		return &ObjectPat{Loc: sp, TypeAnn: d.typeAnn(raw.TypeAnnotation)}
	case "RestElement":
		return &RestPat{Loc: sp, Arg: d.pat(raw.Argument)}
	case "AssignmentPattern":
		// параметр со значением по умолчанию — берём целевой паттерн
		return d.pat(raw.Left)
	default:
		return &OpaquePat{Loc: sp, Type: raw.Type}
	}
}

// typeAnn unwraps a TSTypeAnnotation wrapper node; absent yields nil.
func (d *decoder) typeAnn(data json.RawMessage) TSType {
	raw := d.raw(data)
	if raw == nil {
		return nil
	}
	if raw.Type == "TSTypeAnnotation" {
		return d.tsType(raw.TypeAnnotation)
	}
	return d.tsType(data)
}

func (d *decoder) tsType(data json.RawMessage) TSType {
	raw := d.raw(data)
	if raw == nil {
		return nil
	}
	sp := d.span(raw)

	switch raw.Type {
	case "TSLiteralType":
		lraw := d.raw(raw.Literal)
		if lraw == nil {
			return &OpaqueType{Loc: sp, Type: raw.Type}
		}
		return &TSLitType{Loc: sp, Lit: d.literal(lraw, d.span(lraw))}
	case "TSTypeReference":
		name := ""
		if nraw := d.raw(raw.TypeName); nraw != nil {
			name = nraw.Name
		}
		return &TSTypeRef{Loc: sp, Name: name}
	default:
		return &OpaqueType{Loc: sp, Type: raw.Type}
	}
}
