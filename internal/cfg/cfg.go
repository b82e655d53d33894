// Package cfg computes control-flow facts for a parsed program: whether a
// position is reachable from the entry point, and whether control starting
// at it definitely leaves the enclosing structure.
//
// Facts are produced in one forward pass and are read-only afterwards; rules
// query them through the diagnostic context instead of re-deriving
// reachability themselves.
package cfg

import (
	"github.com/tanquar/deno-lint/internal/ast"
	"github.com/tanquar/deno-lint/internal/source"
)

// Meta is the per-position fact pair. StopsExecution means control leaves
// the current structure unconditionally at or immediately after the
// position (return, throw, break, continue, or a structurally equivalent
// terminal form).
type Meta struct {
	Unreachable    bool
	StopsExecution bool
}

// ControlFlow owns the position-to-fact mapping for one program. Keys are
// the Start offset of the node each fact describes.
type ControlFlow struct {
	meta map[uint32]Meta
}

// Meta returns the fact recorded for the position, if any. Absence means
// "unknown", not "reachable": callers must not fabricate a default.
func (c *ControlFlow) Meta(lo uint32) (Meta, bool) {
	m, ok := c.meta[lo]
	return m, ok
}

// MetaAt is a convenience form taking the node's span.
func (c *ControlFlow) MetaAt(span source.Span) (Meta, bool) {
	return c.Meta(span.Start)
}

// Len reports how many positions carry facts.
func (c *ControlFlow) Len() int {
	return len(c.meta)
}

// Analyze builds the control-flow facts for one program. It is total:
// unrecognized constructs default to reachable and non-terminal, and the
// result for identical input is identical.
func Analyze(prog *ast.Program) *ControlFlow {
	a := &analyzer{
		flow:  &ControlFlow{meta: make(map[uint32]Meta)},
		terms: make(map[ast.Stmt]termKind),
	}
	a.stmtList(prog.Body, true)
	return a.flow
}
