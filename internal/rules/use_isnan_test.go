package rules

import (
	"testing"

	"github.com/tanquar/deno-lint/internal/ast"
)

// 42 === NaN
func TestUseIsNaN_Comparison(t *testing.T) {
	prog := program(&ast.ExprStmt{
		Loc: sp(0, 10),
		X: &ast.BinExpr{
			Loc:   sp(0, 10),
			Op:    "===",
			Left:  num(0, 2, 42),
			Right: ident(7, 10, "NaN"),
		},
	})

	diags := runRule(t, &UseIsNaN{}, prog)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	d := diags[0]
	if d.Code != "use-isnan" || d.Span != sp(0, 10) || d.Message != useIsNaNComparison {
		t.Errorf("diagnostic = %+v", d)
	}
}

// NaN < NaN даёт по находке на каждую сторону
func TestUseIsNaN_BothSides(t *testing.T) {
	prog := program(&ast.ExprStmt{
		Loc: sp(0, 9),
		X: &ast.BinExpr{
			Loc:   sp(0, 9),
			Op:    "<",
			Left:  ident(0, 3, "NaN"),
			Right: ident(6, 9, "NaN"),
		},
	})
	if diags := runRule(t, &UseIsNaN{}, prog); len(diags) != 2 {
		t.Errorf("got %d diagnostics, want 2", len(diags))
	}
}

// switch (NaN) { case NaN: break; default: break; }
func TestUseIsNaN_Switch(t *testing.T) {
	prog := program(&ast.SwitchStmt{
		Loc:  sp(0, 60),
		Disc: ident(8, 11, "NaN"),
		Cases: []*ast.SwitchCase{
			{
				Loc:  sp(16, 35),
				Test: ident(21, 24, "NaN"),
				Body: []ast.Stmt{&ast.BreakStmt{Loc: sp(30, 35)}},
			},
			{
				Loc:  sp(38, 58),
				Body: []ast.Stmt{&ast.BreakStmt{Loc: sp(50, 55)}},
			},
		},
	})

	diags := runRule(t, &UseIsNaN{}, prog)
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(diags))
	}
	if diags[0].Span != sp(0, 60) || diags[0].Message != useIsNaNSwitch {
		t.Errorf("switch diagnostic = %+v", diags[0])
	}
	if diags[1].Span != sp(16, 35) || diags[1].Message != useIsNaNCase {
		t.Errorf("case diagnostic = %+v", diags[1])
	}
}

func TestUseIsNaN_Valid(t *testing.T) {
	progs := []*ast.Program{
		// isNaN(x)
		program(&ast.ExprStmt{Loc: sp(0, 8), X: &ast.CallExpr{
			Loc:    sp(0, 8),
			Callee: ident(0, 5, "isNaN"),
			Args:   []ast.Expr{ident(6, 7, "x")},
		}}),
		// a === b
		program(&ast.ExprStmt{Loc: sp(0, 7), X: &ast.BinExpr{
			Loc: sp(0, 7), Op: "===", Left: ident(0, 1, "a"), Right: ident(6, 7, "b"),
		}}),
		// NaN + 1 — не сравнение
		program(&ast.ExprStmt{Loc: sp(0, 7), X: &ast.BinExpr{
			Loc: sp(0, 7), Op: "+", Left: ident(0, 3, "NaN"), Right: num(6, 7, 1),
		}}),
	}
	for i, prog := range progs {
		if diags := runRule(t, &UseIsNaN{}, prog); len(diags) != 0 {
			t.Errorf("program %d: unexpected diagnostics %+v", i, diags)
		}
	}
}
