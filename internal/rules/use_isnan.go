package rules

import (
	"github.com/tanquar/deno-lint/internal/ast"
	"github.com/tanquar/deno-lint/internal/lint"
)

const useIsNaNCode = "use-isnan"

const (
	useIsNaNComparison = "Use the isNaN function to compare with NaN"
	useIsNaNSwitch     = "'switch(NaN)' can never match a case clause. Use Number.isNaN instead of the switch"
	useIsNaNCase       = "'case NaN' can never match. Use Number.isNaN before the switch"
)

// UseIsNaN flags comparisons and switches against NaN, which never behave
// the way the author expects (NaN compares unequal to everything).
type UseIsNaN struct{}

func (*UseIsNaN) Code() string   { return useIsNaNCode }
func (*UseIsNaN) Tags() []string { return []string{"recommended"} }

var nanComparisonOps = map[string]bool{
	"==": true, "!=": true, "===": true, "!==": true,
	"<": true, "<=": true, ">": true, ">=": true,
}

func isNaNIdent(e ast.Expr) bool {
	id, ok := e.(*ast.Ident)
	return ok && id.Name == "NaN"
}

func (*UseIsNaN) LintProgram(c *lint.Context, prog *ast.Program) {
	ast.Inspect(prog, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.BinExpr:
			if !nanComparisonOps[n.Op] {
				return true
			}
			// обе стороны проверяются независимо
			if isNaNIdent(n.Left) {
				c.AddDiagnostic(n.Loc, useIsNaNCode, useIsNaNComparison)
			}
			if isNaNIdent(n.Right) {
				c.AddDiagnostic(n.Loc, useIsNaNCode, useIsNaNComparison)
			}
		case *ast.SwitchStmt:
			if isNaNIdent(n.Disc) {
				c.AddDiagnostic(n.Loc, useIsNaNCode, useIsNaNSwitch)
			}
			for _, cs := range n.Cases {
				if cs.Test != nil && isNaNIdent(cs.Test) {
					c.AddDiagnostic(cs.Loc, useIsNaNCode, useIsNaNCase)
				}
			}
		}
		return true
	})
}
