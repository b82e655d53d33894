// Package ast defines the syntax tree the analysis core operates on.
//
// The tree is produced by an external parser (any ESTree-emitting JS/TS
// parser) and decoded by this package; the core never mutates it. Every node
// carries the byte-offset span of its extent in the original source.
package ast

import (
	"github.com/tanquar/deno-lint/internal/source"
)

// Node is implemented by every syntax-tree node.
type Node interface {
	Span() source.Span
}

// Stmt is a statement-level node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression-level node.
type Expr interface {
	Node
	exprNode()
}

// Pat is a binding pattern (variable declaration targets, function params).
type Pat interface {
	Node
	patNode()
}

// TSType is a type-annotation node. Only the shapes rule logic inspects are
// modeled; everything else decodes to OpaqueType.
type TSType interface {
	Node
	tsTypeNode()
}

// Program is the root of one parsed file, module or script variant.
type Program struct {
	Loc    source.Span
	Module bool // true for "sourceType": "module"
	Body   []Stmt
}

func (p *Program) Span() source.Span { return p.Loc }

// Function is the shared shape of function declarations, function
// expressions and arrow functions. Body is nil for an expression-bodied
// arrow (ExprBody holds the expression instead).
type Function struct {
	Loc       source.Span
	Params    []Pat
	Body      *BlockStmt
	ExprBody  Expr
	Async     bool
	Generator bool
}

func (f *Function) Span() source.Span { return f.Loc }
