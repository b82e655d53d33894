package diagfmt

import (
	"strings"
	"testing"

	"github.com/tanquar/deno-lint/internal/lint"
	"github.com/tanquar/deno-lint/internal/source"
)

func testFile(t *testing.T, content string) (*source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("sample.ts", []byte(content))
	return fs, id
}

func TestPretty_HeaderAndSort(t *testing.T) {
	fs, id := testFile(t, "42 === NaN;\nconst a = [1,,3];\n")
	// нарочно не в порядке позиций
	diags := []lint.Diagnostic{
		{Code: "no-sparse-arrays", Span: source.Span{Start: 22, End: 28}, Message: "Sparse arrays are not allowed"},
		{Code: "use-isnan", Span: source.Span{Start: 0, End: 10}, Message: "Use the isNaN function to compare with NaN"},
	}

	var sb strings.Builder
	Pretty(&sb, fs, id, diags, PrettyOpts{})

	out := sb.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("output:\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "sample.ts:1:1: use-isnan: ") {
		t.Errorf("first line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "sample.ts:2:11: no-sparse-arrays: ") {
		t.Errorf("second line %q", lines[1])
	}
}

func TestPretty_ExcerptAndHint(t *testing.T) {
	fs, id := testFile(t, "let foo: 'bar' = 'bar';\n")
	diags := []lint.Diagnostic{{
		Code:    "prefer-as-const",
		Span:    source.Span{Start: 9, End: 14},
		Message: "Expected a `const` assertion instead of a literal type annotation",
		Hint:    "Remove a literal type annotation and add `as const`",
	}}

	var sb strings.Builder
	Pretty(&sb, fs, id, diags, PrettyOpts{ShowExcerpt: true, ShowHints: true})

	out := sb.String()
	if !strings.Contains(out, "  let foo: 'bar' = 'bar';\n") {
		t.Errorf("excerpt missing:\n%s", out)
	}
	if !strings.Contains(out, "\n           ^~~~~\n") {
		t.Errorf("marker missing or misplaced:\n%s", out)
	}
	if !strings.Contains(out, "hint: Remove a literal type annotation") {
		t.Errorf("hint missing:\n%s", out)
	}
}

func TestPretty_NoHintLineWhenAbsent(t *testing.T) {
	fs, id := testFile(t, "x!;\n")
	diags := []lint.Diagnostic{{
		Code: "no-non-null-assertion", Span: source.Span{Start: 0, End: 2}, Message: "do not use non-null assertion",
	}}

	var sb strings.Builder
	Pretty(&sb, fs, id, diags, PrettyOpts{ShowHints: true})
	if strings.Contains(sb.String(), "hint:") {
		t.Errorf("unexpected hint line:\n%s", sb.String())
	}
}
