package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/tanquar/deno-lint/internal/lint"
	"github.com/tanquar/deno-lint/internal/source"
)

func TestJSON_Output(t *testing.T) {
	fs, id := testFile(t, "42 === NaN;\n")
	diags := []lint.Diagnostic{{
		Code:    "use-isnan",
		Span:    source.Span{Start: 0, End: 10},
		Message: "Use the isNaN function to compare with NaN",
		Hint:    "call isNaN",
	}}

	var sb strings.Builder
	err := JSON(&sb, fs, id, diags, JSONOpts{IncludePositions: true, IncludeHints: true})
	if err != nil {
		t.Fatal(err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal([]byte(sb.String()), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, sb.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("output = %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "use-isnan" || d.Hint != "call isNaN" {
		t.Errorf("diagnostic = %+v", d)
	}
	loc := d.Location
	if loc.File != "sample.ts" || loc.StartByte != 0 || loc.EndByte != 10 {
		t.Errorf("location = %+v", loc)
	}
	if loc.StartLine != 1 || loc.StartCol != 1 || loc.EndCol != 11 {
		t.Errorf("positions = %+v", loc)
	}
}

func TestJSON_MaxTruncatesAfterSort(t *testing.T) {
	fs, id := testFile(t, "aa;\nbb;\n")
	diags := []lint.Diagnostic{
		{Code: "later", Span: source.Span{Start: 4, End: 6}, Message: "second"},
		{Code: "earlier", Span: source.Span{Start: 0, End: 2}, Message: "first"},
	}

	out := BuildDiagnosticsOutput(fs, id, diags, JSONOpts{Max: 1})
	if out.Count != 1 || out.Diagnostics[0].Code != "earlier" {
		t.Errorf("output = %+v", out)
	}
}

func TestJSON_HintOmittedWhenDisabled(t *testing.T) {
	fs, id := testFile(t, "x;\n")
	diags := []lint.Diagnostic{{Code: "c", Span: source.Span{Start: 0, End: 1}, Message: "m", Hint: "h"}}

	var sb strings.Builder
	if err := JSON(&sb, fs, id, diags, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(sb.String(), "hint") {
		t.Errorf("hint leaked:\n%s", sb.String())
	}
}
