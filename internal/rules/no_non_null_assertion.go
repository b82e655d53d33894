package rules

import (
	"github.com/tanquar/deno-lint/internal/ast"
	"github.com/tanquar/deno-lint/internal/lint"
)

const noNonNullAssertionCode = "no-non-null-assertion"

const noNonNullAssertionMessage = "do not use non-null assertion"

// NoNonNullAssertion flags every TypeScript `!` assertion: it silences the
// type checker without making the value any less nullable.
type NoNonNullAssertion struct{}

func (*NoNonNullAssertion) Code() string   { return noNonNullAssertionCode }
func (*NoNonNullAssertion) Tags() []string { return nil }

func (*NoNonNullAssertion) LintProgram(c *lint.Context, prog *ast.Program) {
	ast.Inspect(prog, func(n ast.Node) bool {
		if nn, ok := n.(*ast.TSNonNull); ok {
			c.AddDiagnostic(nn.Loc, noNonNullAssertionCode, noNonNullAssertionMessage)
		}
		return true
	})
}
