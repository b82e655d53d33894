package ast

import (
	"github.com/tanquar/deno-lint/internal/source"
)

// VarKind distinguishes var/let/const declarations.
type VarKind uint8

const (
	VarVar VarKind = iota
	VarLet
	VarConst
)

func (k VarKind) String() string {
	switch k {
	case VarLet:
		return "let"
	case VarConst:
		return "const"
	}
	return "var"
}

type (
	// BlockStmt is `{ ... }`.
	BlockStmt struct {
		Loc  source.Span
		Body []Stmt
	}

	// ExprStmt is an expression in statement position.
	ExprStmt struct {
		Loc source.Span
		X   Expr
	}

	// EmptyStmt is a stray `;`.
	EmptyStmt struct {
		Loc source.Span
	}

	// DebuggerStmt is `debugger;`.
	DebuggerStmt struct {
		Loc source.Span
	}

	// VarDecl is `var/let/const a = ..., b = ...;`.
	VarDecl struct {
		Loc   source.Span
		Kind  VarKind
		Decls []*VarDeclarator
	}

	// VarDeclarator is one `name = init` of a VarDecl. Init may be nil.
	VarDeclarator struct {
		Loc  source.Span
		Name Pat
		Init Expr
	}

	// FnDecl is a function declaration.
	FnDecl struct {
		Loc  source.Span
		Name *Ident
		Fn   *Function
	}

	// ReturnStmt is `return [arg];`.
	ReturnStmt struct {
		Loc source.Span
		Arg Expr // nil for bare return
	}

	// IfStmt is `if (test) cons [else alt]`.
	IfStmt struct {
		Loc  source.Span
		Test Expr
		Cons Stmt
		Alt  Stmt // nil when no else
	}

	// WhileStmt is `while (test) body`.
	WhileStmt struct {
		Loc  source.Span
		Test Expr
		Body Stmt
	}

	// DoWhileStmt is `do body while (test);`.
	DoWhileStmt struct {
		Loc  source.Span
		Body Stmt
		Test Expr
	}

	// ForStmt is the classic three-clause for. Any clause may be nil;
	// Init is either a *VarDecl or an expression statement position.
	ForStmt struct {
		Loc    source.Span
		Init   Node
		Test   Expr
		Update Expr
		Body   Stmt
	}

	// ForInStmt covers both for-in and for-of (Of flag).
	ForInStmt struct {
		Loc   source.Span
		Left  Node // *VarDecl or assignment target
		Right Expr
		Body  Stmt
		Of    bool
	}

	// SwitchStmt is `switch (disc) { cases }`.
	SwitchStmt struct {
		Loc   source.Span
		Disc  Expr
		Cases []*SwitchCase
	}

	// SwitchCase is one `case test:` (Test nil for default) with its body.
	SwitchCase struct {
		Loc  source.Span
		Test Expr
		Body []Stmt
	}

	// TryStmt is `try block [catch] [finally]`.
	TryStmt struct {
		Loc       source.Span
		Block     *BlockStmt
		Handler   *CatchClause // nil when absent
		Finalizer *BlockStmt   // nil when absent
	}

	// CatchClause is `catch [(param)] { ... }`.
	CatchClause struct {
		Loc   source.Span
		Param Pat // nil for binding-less catch
		Body  *BlockStmt
	}

	// ThrowStmt is `throw arg;`.
	ThrowStmt struct {
		Loc source.Span
		Arg Expr
	}

	// BreakStmt is `break [label];`.
	BreakStmt struct {
		Loc   source.Span
		Label *Ident // nil when unlabeled
	}

	// ContinueStmt is `continue [label];`.
	ContinueStmt struct {
		Loc   source.Span
		Label *Ident
	}

	// LabeledStmt is `label: body`.
	LabeledStmt struct {
		Loc   source.Span
		Label *Ident
		Body  Stmt
	}

	// OpaqueStmt stands in for statement forms the core does not model
	// (class declarations, import/export, ...). Only the span and the
	// original type tag survive decoding.
	OpaqueStmt struct {
		Loc  source.Span
		Type string
	}
)

func (s *BlockStmt) Span() source.Span     { return s.Loc }
func (s *ExprStmt) Span() source.Span      { return s.Loc }
func (s *EmptyStmt) Span() source.Span     { return s.Loc }
func (s *DebuggerStmt) Span() source.Span  { return s.Loc }
func (s *VarDecl) Span() source.Span       { return s.Loc }
func (s *VarDeclarator) Span() source.Span { return s.Loc }
func (s *FnDecl) Span() source.Span        { return s.Loc }
func (s *ReturnStmt) Span() source.Span    { return s.Loc }
func (s *IfStmt) Span() source.Span        { return s.Loc }
func (s *WhileStmt) Span() source.Span     { return s.Loc }
func (s *DoWhileStmt) Span() source.Span   { return s.Loc }
func (s *ForStmt) Span() source.Span       { return s.Loc }
func (s *ForInStmt) Span() source.Span     { return s.Loc }
func (s *SwitchStmt) Span() source.Span    { return s.Loc }
func (s *SwitchCase) Span() source.Span    { return s.Loc }
func (s *TryStmt) Span() source.Span       { return s.Loc }
func (s *CatchClause) Span() source.Span   { return s.Loc }
func (s *ThrowStmt) Span() source.Span     { return s.Loc }
func (s *BreakStmt) Span() source.Span     { return s.Loc }
func (s *ContinueStmt) Span() source.Span  { return s.Loc }
func (s *LabeledStmt) Span() source.Span   { return s.Loc }
func (s *OpaqueStmt) Span() source.Span    { return s.Loc }

func (*BlockStmt) stmtNode()    {}
func (*ExprStmt) stmtNode()     {}
func (*EmptyStmt) stmtNode()    {}
func (*DebuggerStmt) stmtNode() {}
func (*VarDecl) stmtNode()      {}
func (*FnDecl) stmtNode()       {}
func (*ReturnStmt) stmtNode()   {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*DoWhileStmt) stmtNode()  {}
func (*ForStmt) stmtNode()      {}
func (*ForInStmt) stmtNode()    {}
func (*SwitchStmt) stmtNode()   {}
func (*TryStmt) stmtNode()      {}
func (*ThrowStmt) stmtNode()    {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*LabeledStmt) stmtNode()  {}
func (*OpaqueStmt) stmtNode()   {}
