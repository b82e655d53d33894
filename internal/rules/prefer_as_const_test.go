package rules

import (
	"testing"

	"github.com/tanquar/deno-lint/internal/ast"
)

func litType(lo, hi uint32, lit *ast.Lit) *ast.TSLitType {
	return &ast.TSLitType{Loc: sp(lo, hi), Lit: lit}
}

func declProgram(name ast.Pat, init ast.Expr) *ast.Program {
	return program(&ast.VarDecl{
		Loc:  sp(0, 30),
		Kind: ast.VarLet,
		Decls: []*ast.VarDeclarator{
			{Loc: sp(4, 29), Name: name, Init: init},
		},
	})
}

func TestPreferAsConst_Invalid(t *testing.T) {
	tests := []struct {
		name string
		prog *ast.Program
	}{
		{
			// let foo: 'bar' = 'bar';
			name: "annotated string binding",
			prog: declProgram(
				&ast.IdentPat{Loc: sp(4, 14), Name: "foo", TypeAnn: litType(9, 14, str(9, 14, "bar"))},
				str(17, 22, "bar"),
			),
		},
		{
			// let foo: 2 = 2;
			name: "annotated number binding",
			prog: declProgram(
				&ast.IdentPat{Loc: sp(4, 10), Name: "foo", TypeAnn: litType(9, 10, num(9, 10, 2))},
				num(13, 14, 2),
			),
		},
		{
			// let [x]: 'bar' = 'bar';
			name: "array pattern",
			prog: declProgram(
				&ast.ArrayPat{Loc: sp(4, 14), TypeAnn: litType(9, 14, str(9, 14, "bar"))},
				str(17, 22, "bar"),
			),
		},
		{
			// 'bar' as 'bar'
			name: "as expression",
			prog: program(&ast.ExprStmt{Loc: sp(0, 15), X: &ast.TSAsExpr{
				Loc:     sp(0, 14),
				X:       str(0, 5, "bar"),
				TypeAnn: litType(9, 14, str(9, 14, "bar")),
			}}),
		},
		{
			// <4>4
			name: "angle assertion",
			prog: program(&ast.ExprStmt{Loc: sp(0, 5), X: &ast.TSAsExpr{
				Loc:       sp(0, 4),
				X:         num(3, 4, 4),
				TypeAnn:   litType(1, 2, num(1, 2, 4)),
				Assertion: true,
			}}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRule(t, &PreferAsConst{}, tt.prog)
			if len(diags) != 1 {
				t.Fatalf("got %d diagnostics, want 1", len(diags))
			}
			d := diags[0]
			if d.Code != "prefer-as-const" || d.Message != preferAsConstMessage || d.Hint != preferAsConstHint {
				t.Errorf("diagnostic = %+v", d)
			}
		})
	}
}

// находка указывает на аннотацию, не на всё объявление
func TestPreferAsConst_SpanIsAnnotation(t *testing.T) {
	prog := declProgram(
		&ast.IdentPat{Loc: sp(4, 14), Name: "foo", TypeAnn: litType(9, 14, str(9, 14, "bar"))},
		str(17, 22, "bar"),
	)
	diags := runRule(t, &PreferAsConst{}, prog)
	if len(diags) != 1 || diags[0].Span != sp(9, 14) {
		t.Errorf("diagnostics = %+v, want span 9..14", diags)
	}
}

func TestPreferAsConst_MultipleDeclarators(t *testing.T) {
	// let foo: 2 = 2, bar: 3 = 3;
	prog := program(&ast.VarDecl{
		Loc:  sp(0, 27),
		Kind: ast.VarLet,
		Decls: []*ast.VarDeclarator{
			{Loc: sp(4, 14), Name: &ast.IdentPat{Loc: sp(4, 10), Name: "foo", TypeAnn: litType(9, 10, num(9, 10, 2))}, Init: num(13, 14, 2)},
			{Loc: sp(16, 26), Name: &ast.IdentPat{Loc: sp(16, 22), Name: "bar", TypeAnn: litType(21, 22, num(21, 22, 3))}, Init: num(25, 26, 3)},
		},
	})
	if diags := runRule(t, &PreferAsConst{}, prog); len(diags) != 2 {
		t.Errorf("got %d diagnostics, want 2", len(diags))
	}
}

func TestPreferAsConst_Valid(t *testing.T) {
	tests := []struct {
		name string
		prog *ast.Program
	}{
		{
			// let foo: string = 'bar'; — аннотация не литеральная
			name: "type reference",
			prog: declProgram(
				&ast.IdentPat{Loc: sp(4, 16), Name: "foo", TypeAnn: &ast.TSTypeRef{Loc: sp(9, 15), Name: "string"}},
				str(18, 23, "bar"),
			),
		},
		{
			// let foo: 'bar' = baz; — инициализатор не литерал
			name: "non-literal init",
			prog: declProgram(
				&ast.IdentPat{Loc: sp(4, 14), Name: "foo", TypeAnn: litType(9, 14, str(9, 14, "bar"))},
				ident(17, 20, "baz"),
			),
		},
		{
			// let foo: 'bar' = 'qux'; — значения не совпадают
			name: "value mismatch",
			prog: declProgram(
				&ast.IdentPat{Loc: sp(4, 14), Name: "foo", TypeAnn: litType(9, 14, str(9, 14, "bar"))},
				str(17, 22, "qux"),
			),
		},
		{
			// let foo: 'bar'; — без инициализатора
			name: "no init",
			prog: declProgram(
				&ast.IdentPat{Loc: sp(4, 14), Name: "foo", TypeAnn: litType(9, 14, str(9, 14, "bar"))},
				nil,
			),
		},
		{
			// let foo = 'bar'; — без аннотации
			name: "no annotation",
			prog: declProgram(&ast.IdentPat{Loc: sp(4, 7), Name: "foo"}, str(10, 15, "bar")),
		},
		{
			// 1 as 2 — числа разные
			name: "number mismatch in as",
			prog: program(&ast.ExprStmt{Loc: sp(0, 7), X: &ast.TSAsExpr{
				Loc:     sp(0, 6),
				X:       num(0, 1, 1),
				TypeAnn: litType(5, 6, num(5, 6, 2)),
			}}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diags := runRule(t, &PreferAsConst{}, tt.prog); len(diags) != 0 {
				t.Errorf("unexpected diagnostics %+v", diags)
			}
		})
	}
}
