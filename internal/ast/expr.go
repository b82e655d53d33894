package ast

import (
	"github.com/tanquar/deno-lint/internal/source"
)

// LitKind discriminates literal values.
type LitKind uint8

const (
	LitNull LitKind = iota
	LitBool
	LitNum
	LitStr
	LitRegex
	LitBigInt
)

type (
	// Ident is an identifier reference.
	Ident struct {
		Loc  source.Span
		Name string
	}

	// Lit is a literal value. Exactly one of Bool/Num/Str is meaningful,
	// per Kind; Raw preserves the source text.
	Lit struct {
		Loc  source.Span
		Kind LitKind
		Bool bool
		Num  float64
		Str  string
		Raw  string
	}

	// TemplateLit is a template literal; only the span and whether it has
	// substitutions are tracked.
	TemplateLit struct {
		Loc   source.Span
		Exprs []Expr
	}

	// ArrayLit is `[a, , c]`; a nil element is a hole.
	ArrayLit struct {
		Loc   source.Span
		Elems []Expr
	}

	// ObjectLit is `{ k: v, ... }`.
	ObjectLit struct {
		Loc   source.Span
		Props []*Property
	}

	// Property is one object-literal entry. Value is nil for shorthand.
	Property struct {
		Loc      source.Span
		Key      Expr
		Value    Expr
		Computed bool
	}

	// UnaryExpr is a prefix operator application (`!x`, `typeof x`, ...).
	UnaryExpr struct {
		Loc source.Span
		Op  string
		Arg Expr
	}

	// UpdateExpr is `x++` / `--x`.
	UpdateExpr struct {
		Loc    source.Span
		Op     string
		Prefix bool
		Arg    Expr
	}

	// BinExpr covers binary and logical operators; Op is the source
	// operator text ("===", "&&", "in", ...).
	BinExpr struct {
		Loc   source.Span
		Op    string
		Left  Expr
		Right Expr
	}

	// AssignExpr is `target op= value`.
	AssignExpr struct {
		Loc   source.Span
		Op    string
		Left  Node // pattern or member expression
		Right Expr
	}

	// CondExpr is `test ? cons : alt`.
	CondExpr struct {
		Loc  source.Span
		Test Expr
		Cons Expr
		Alt  Expr
	}

	// CallExpr is `callee(args...)`.
	CallExpr struct {
		Loc      source.Span
		Callee   Expr
		Args     []Expr
		Optional bool // `callee?.()`
	}

	// NewExpr is `new callee(args...)`.
	NewExpr struct {
		Loc    source.Span
		Callee Expr
		Args   []Expr
	}

	// MemberExpr is `obj.prop` or `obj[prop]`.
	MemberExpr struct {
		Loc      source.Span
		Obj      Expr
		Prop     Expr
		Computed bool
		Optional bool // `obj?.prop`
	}

	// SeqExpr is the comma operator.
	SeqExpr struct {
		Loc   source.Span
		Exprs []Expr
	}

	// FnExpr is a function expression.
	FnExpr struct {
		Loc  source.Span
		Name *Ident // nil when anonymous
		Fn   *Function
	}

	// ArrowExpr is an arrow function.
	ArrowExpr struct {
		Loc source.Span
		Fn  *Function
	}

	// SpreadExpr is `...arg` in call or array position.
	SpreadExpr struct {
		Loc source.Span
		Arg Expr
	}

	// TSNonNull is the TypeScript non-null assertion `expr!`.
	TSNonNull struct {
		Loc source.Span
		X   Expr
	}

	// TSAsExpr is `expr as Type`; angle-bracket assertions `<Type>expr`
	// decode to the same node with Assertion set.
	TSAsExpr struct {
		Loc       source.Span
		X         Expr
		TypeAnn   TSType
		Assertion bool
	}

	// OpaqueExpr stands in for expression forms the core does not model.
	OpaqueExpr struct {
		Loc  source.Span
		Type string
	}
)

func (e *Ident) Span() source.Span       { return e.Loc }
func (e *Lit) Span() source.Span         { return e.Loc }
func (e *TemplateLit) Span() source.Span { return e.Loc }
func (e *ArrayLit) Span() source.Span    { return e.Loc }
func (e *ObjectLit) Span() source.Span   { return e.Loc }
func (e *Property) Span() source.Span    { return e.Loc }
func (e *UnaryExpr) Span() source.Span   { return e.Loc }
func (e *UpdateExpr) Span() source.Span  { return e.Loc }
func (e *BinExpr) Span() source.Span     { return e.Loc }
func (e *AssignExpr) Span() source.Span  { return e.Loc }
func (e *CondExpr) Span() source.Span    { return e.Loc }
func (e *CallExpr) Span() source.Span    { return e.Loc }
func (e *NewExpr) Span() source.Span     { return e.Loc }
func (e *MemberExpr) Span() source.Span  { return e.Loc }
func (e *SeqExpr) Span() source.Span     { return e.Loc }
func (e *FnExpr) Span() source.Span      { return e.Loc }
func (e *ArrowExpr) Span() source.Span   { return e.Loc }
func (e *SpreadExpr) Span() source.Span  { return e.Loc }
func (e *TSNonNull) Span() source.Span   { return e.Loc }
func (e *TSAsExpr) Span() source.Span    { return e.Loc }
func (e *OpaqueExpr) Span() source.Span  { return e.Loc }

func (*Ident) exprNode()       {}
func (*Lit) exprNode()         {}
func (*TemplateLit) exprNode() {}
func (*ArrayLit) exprNode()    {}
func (*ObjectLit) exprNode()   {}
func (*UnaryExpr) exprNode()   {}
func (*UpdateExpr) exprNode()  {}
func (*BinExpr) exprNode()     {}
func (*AssignExpr) exprNode()  {}
func (*CondExpr) exprNode()    {}
func (*CallExpr) exprNode()    {}
func (*NewExpr) exprNode()     {}
func (*MemberExpr) exprNode()  {}
func (*SeqExpr) exprNode()     {}
func (*FnExpr) exprNode()      {}
func (*ArrowExpr) exprNode()   {}
func (*SpreadExpr) exprNode()  {}
func (*TSNonNull) exprNode()   {}
func (*TSAsExpr) exprNode()    {}
func (*OpaqueExpr) exprNode()  {}

// Patterns.

type (
	// IdentPat is a plain binding name, optionally type-annotated.
	IdentPat struct {
		Loc     source.Span
		Name    string
		TypeAnn TSType // nil when unannotated
	}

	// ArrayPat is `[a, b]` in binding position.
	ArrayPat struct {
		Loc     source.Span
		Elems   []Pat // nil element is a hole
		TypeAnn TSType
	}

	// ObjectPat is `{a, b}` in binding position; property sub-patterns are
	// not modeled beyond their spans.
	ObjectPat struct {
		Loc     source.Span
		TypeAnn TSType
	}

	// RestPat is `...rest`.
	RestPat struct {
		Loc source.Span
		Arg Pat
	}

	// OpaquePat stands in for unmodeled pattern forms.
	OpaquePat struct {
		Loc  source.Span
		Type string
	}
)

func (p *IdentPat) Span() source.Span  { return p.Loc }
func (p *ArrayPat) Span() source.Span  { return p.Loc }
func (p *ObjectPat) Span() source.Span { return p.Loc }
func (p *RestPat) Span() source.Span   { return p.Loc }
func (p *OpaquePat) Span() source.Span { return p.Loc }

func (*IdentPat) patNode()  {}
func (*ArrayPat) patNode()  {}
func (*ObjectPat) patNode() {}
func (*RestPat) patNode()   {}
func (*OpaquePat) patNode() {}

// Type annotations.

type (
	// TSLitType is a literal type (`'bar'`, `2`).
	TSLitType struct {
		Loc source.Span
		Lit *Lit
	}

	// TSTypeRef is a named type reference (`string`, `Foo`, `const`).
	TSTypeRef struct {
		Loc  source.Span
		Name string
	}

	// OpaqueType stands in for unmodeled type forms.
	OpaqueType struct {
		Loc  source.Span
		Type string
	}
)

func (t *TSLitType) Span() source.Span  { return t.Loc }
func (t *TSTypeRef) Span() source.Span  { return t.Loc }
func (t *OpaqueType) Span() source.Span { return t.Loc }

func (*TSLitType) tsTypeNode()  {}
func (*TSTypeRef) tsTypeNode()  {}
func (*OpaqueType) tsTypeNode() {}
