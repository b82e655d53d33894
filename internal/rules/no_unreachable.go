package rules

import (
	"github.com/tanquar/deno-lint/internal/ast"
	"github.com/tanquar/deno-lint/internal/lint"
)

const noUnreachableCode = "no-unreachable"

const noUnreachableMessage = "This statement is unreachable"

// NoUnreachable reports statements the control-flow facts mark as dead. It
// is a pure consumer of the precomputed facts: no flow analysis happens
// here.
type NoUnreachable struct{}

func (*NoUnreachable) Code() string   { return noUnreachableCode }
func (*NoUnreachable) Tags() []string { return []string{"recommended"} }

func (*NoUnreachable) LintProgram(c *lint.Context, prog *ast.Program) {
	flow := c.ControlFlow()
	if flow == nil {
		return
	}
	ast.Inspect(prog, func(n ast.Node) bool {
		s, ok := n.(ast.Stmt)
		if !ok {
			return true
		}
		if meta, known := flow.MetaAt(s.Span()); known && meta.Unreachable {
			c.AddDiagnostic(s.Span(), noUnreachableCode, noUnreachableMessage)
			// вложенные операторы мёртвого блока не дублируем
			return false
		}
		return true
	})
}
