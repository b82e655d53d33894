package rules

import (
	"math"

	"github.com/tanquar/deno-lint/internal/ast"
	"github.com/tanquar/deno-lint/internal/lint"
)

const preferAsConstCode = "prefer-as-const"

const (
	preferAsConstMessage = "Expected a `const` assertion instead of a literal type annotation"
	preferAsConstHint    = "Remove a literal type annotation and add `as const`"
)

// PreferAsConst flags literal type annotations that merely restate the
// literal value (`let x: 'a' = 'a'`, `1 as 1`): `as const` says the same
// thing without the duplication.
type PreferAsConst struct{}

func (*PreferAsConst) Code() string   { return preferAsConstCode }
func (*PreferAsConst) Tags() []string { return []string{"recommended"} }

func (*PreferAsConst) LintProgram(c *lint.Context, prog *ast.Program) {
	ast.Inspect(prog, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.TSAsExpr:
			preferAsConstCompare(c, n.TypeAnn, n.X)
		case *ast.VarDecl:
			for _, d := range n.Decls {
				if d.Init == nil {
					continue
				}
				if ta := bindingTypeAnn(d.Name); ta != nil {
					preferAsConstCompare(c, ta, d.Init)
				}
			}
		}
		return true
	})
}

func bindingTypeAnn(p ast.Pat) ast.TSType {
	switch p := p.(type) {
	case *ast.IdentPat:
		return p.TypeAnn
	case *ast.ArrayPat:
		return p.TypeAnn
	case *ast.ObjectPat:
		return p.TypeAnn
	}
	return nil
}

// preferAsConstCompare reports when the annotation is a literal type whose
// value equals the initializer literal. Template strings and distinct
// values never match.
func preferAsConstCompare(c *lint.Context, t ast.TSType, e ast.Expr) {
	lt, ok := t.(*ast.TSLitType)
	if !ok || lt.Lit == nil {
		return
	}
	lit, ok := e.(*ast.Lit)
	if !ok {
		return
	}
	switch {
	case lit.Kind == ast.LitStr && lt.Lit.Kind == ast.LitStr && lit.Str == lt.Lit.Str:
	case lit.Kind == ast.LitNum && lt.Lit.Kind == ast.LitNum &&
		math.Abs(lit.Num-lt.Lit.Num) < 1e-15:
	default:
		return
	}
	c.AddDiagnosticWithHint(t.Span(), preferAsConstCode, preferAsConstMessage, preferAsConstHint)
}
