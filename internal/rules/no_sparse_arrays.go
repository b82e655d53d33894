package rules

import (
	"github.com/tanquar/deno-lint/internal/ast"
	"github.com/tanquar/deno-lint/internal/lint"
)

const noSparseArraysCode = "no-sparse-arrays"

const noSparseArraysMessage = "Sparse arrays are not allowed"

// NoSparseArrays flags array literals with holes (`[1,,3]`). An explicit
// null element is fine; an elided one usually is a typo.
type NoSparseArrays struct{}

func (*NoSparseArrays) Code() string   { return noSparseArraysCode }
func (*NoSparseArrays) Tags() []string { return nil }

func (*NoSparseArrays) LintProgram(c *lint.Context, prog *ast.Program) {
	ast.Inspect(prog, func(n ast.Node) bool {
		arr, ok := n.(*ast.ArrayLit)
		if !ok {
			return true
		}
		for _, elem := range arr.Elems {
			if elem == nil {
				c.AddDiagnostic(arr.Loc, noSparseArraysCode, noSparseArraysMessage)
				break
			}
		}
		return true
	})
}
