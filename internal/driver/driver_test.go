package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tanquar/deno-lint/internal/lint"
	"github.com/tanquar/deno-lint/internal/plugin"
	"github.com/tanquar/deno-lint/internal/rules"
	"github.com/tanquar/deno-lint/internal/source"
)

const sparseArrayAST = `{"type":"Program","start":0,"end":7,"sourceType":"script","body":[` +
	`{"type":"ExpressionStatement","start":0,"end":7,"expression":` +
	`{"type":"ArrayExpression","start":0,"end":6,"elements":[` +
	`{"type":"Literal","start":1,"end":2,"value":1,"raw":"1"},null,` +
	`{"type":"Literal","start":3,"end":4,"value":3,"raw":"3"}]}}]}`

const nanCompareAST = `{"type":"Program","start":0,"end":10,"sourceType":"script","body":[` +
	`{"type":"ExpressionStatement","start":0,"end":10,"expression":` +
	`{"type":"BinaryExpression","start":0,"end":10,"operator":"===",` +
	`"left":{"type":"Literal","start":0,"end":2,"value":42,"raw":"42"},` +
	`"right":{"type":"Identifier","start":7,"end":10,"name":"NaN"}}}]}`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLintDir_SortedResults(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "b.ast.json", nanCompareAST)
	writeInput(t, dir, "a.ast.json", sparseArrayAST)
	writeInput(t, dir, "notes.txt", "ignored")

	_, results, err := LintDir(context.Background(), dir, Options{Jobs: 4})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if filepath.Base(results[0].Path) != "a.ast.json" || filepath.Base(results[1].Path) != "b.ast.json" {
		t.Errorf("result order: %q, %q", results[0].Path, results[1].Path)
	}

	if len(results[0].Diagnostics) != 1 || results[0].Diagnostics[0].Code != "no-sparse-arrays" {
		t.Errorf("a.ast.json diagnostics = %+v", results[0].Diagnostics)
	}
	if len(results[1].Diagnostics) != 1 || results[1].Diagnostics[0].Code != "use-isnan" {
		t.Errorf("b.ast.json diagnostics = %+v", results[1].Diagnostics)
	}
}

func TestLintDir_RuleSelection(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "a.ast.json", sparseArrayAST)
	writeInput(t, dir, "b.ast.json", nanCompareAST)

	_, results, err := LintDir(context.Background(), dir, Options{Rules: []string{"use-isnan"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(results[0].Diagnostics) != 0 {
		t.Errorf("deselected rule still ran: %+v", results[0].Diagnostics)
	}
	if len(results[1].Diagnostics) != 1 {
		t.Errorf("selected rule missing: %+v", results[1].Diagnostics)
	}
}

func TestLintDir_BadInputDoesNotAbortOthers(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "bad.ast.json", "{not json")
	writeInput(t, dir, "good.ast.json", sparseArrayAST)

	_, results, err := LintDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Err == nil {
		t.Error("bad input should carry its decode error")
	}
	if results[1].Err != nil || len(results[1].Diagnostics) != 1 {
		t.Errorf("good input suffered: %+v", results[1])
	}
}

func TestLintDir_Empty(t *testing.T) {
	fileSet, results, err := LintDir(context.Background(), t.TempDir(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if fileSet == nil || len(results) != 0 {
		t.Errorf("results = %+v", results)
	}
}

func TestLintFile(t *testing.T) {
	dir := t.TempDir()
	path := writeInput(t, dir, "one.ast.json", nanCompareAST)

	fileSet, res, err := LintFile(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != "use-isnan" {
		t.Errorf("diagnostics = %+v", res.Diagnostics)
	}
	// позиции для рендера доступны через FileSet
	start, _ := fileSet.Resolve(res.FileID, res.Diagnostics[0].Span)
	if start.Line != 1 {
		t.Errorf("start = %+v", start)
	}
}

func TestLintFile_SiblingSourcePositions(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "x.ts", "42 === NaN;\n")
	path := writeInput(t, dir, "x.ts.ast.json", nanCompareAST)

	fileSet, res, err := LintFile(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := filepath.Base(fileSet.Get(res.FileID).Path); got != "x.ts" {
		t.Fatalf("spans resolve against %q, want the sibling source", got)
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %+v", res.Diagnostics)
	}
	start, end := fileSet.Resolve(res.FileID, res.Diagnostics[0].Span)
	if start.Line != 1 || start.Col != 1 || end.Col != 11 {
		t.Errorf("resolved %+v..%+v", start, end)
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	key := cacheKey([]byte("input"), rules.All())
	payload := &CachedResult{
		Schema: cacheSchemaVersion,
		Diagnostics: []lint.Diagnostic{
			{Code: "use-isnan", Span: source.Span{Start: 5, End: 10}, Message: "m", Hint: "h"},
		},
	}
	if err := cache.Put(key, payload); err != nil {
		t.Fatal(err)
	}

	var got CachedResult
	hit, err := cache.Get(key, &got)
	if err != nil || !hit {
		t.Fatalf("hit=%v err=%v", hit, err)
	}
	if len(got.Diagnostics) != 1 || got.Diagnostics[0] != payload.Diagnostics[0] {
		t.Errorf("got %+v", got.Diagnostics)
	}

	var miss CachedResult
	if hit, _ := cache.Get(cacheKey([]byte("other"), rules.All()), &miss); hit {
		t.Error("unexpected hit for a different key")
	}
}

func TestCacheKey_DependsOnRuleSet(t *testing.T) {
	content := []byte(sparseArrayAST)
	all := cacheKey(content, rules.All())
	one := cacheKey(content, rules.All()[:1])
	if all == one {
		t.Error("rule-set change must change the key")
	}
}

func TestCacheKey_DependsOnPluginContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plugin.ts")
	if err := os.WriteFile(path, []byte("export default 1;"), 0o600); err != nil {
		t.Fatal(err)
	}
	host := plugin.NewHost(plugin.Descriptor{Path: path})
	content := []byte(sparseArrayAST)

	before := cacheKey(content, []lint.Rule{host})
	// правка модуля на месте: путь тот же, ключ обязан измениться
	if err := os.WriteFile(path, []byte("export default 2;"), 0o600); err != nil {
		t.Fatal(err)
	}
	after := cacheKey(content, []lint.Rule{host})
	if before == after {
		t.Error("plugin content change must change the key")
	}
}

func TestCacheKey_DependsOnRunnerAndCodes(t *testing.T) {
	content := []byte(sparseArrayAST)
	base := cacheKey(content, []lint.Rule{plugin.NewHost(plugin.Descriptor{Path: "p.ts"})})
	runner := cacheKey(content, []lint.Rule{plugin.NewHost(plugin.Descriptor{
		Path: "p.ts", Runner: []string{"deno", "run", "--allow-net"},
	})})
	codes := cacheKey(content, []lint.Rule{plugin.NewHost(plugin.Descriptor{
		Path: "p.ts", Codes: []string{"only-this"},
	})})
	if base == runner {
		t.Error("runner change must change the key")
	}
	if base == codes {
		t.Error("code-selection change must change the key")
	}
}

func TestSelectRules_PassesSelectionToPlugins(t *testing.T) {
	selected := selectRules(Options{
		Rules:   []string{"use-isnan"},
		Plugins: []plugin.Descriptor{{Path: "p.ts"}},
	})

	var host *plugin.Host
	for _, r := range selected {
		if h, ok := r.(*plugin.Host); ok {
			host = h
		}
	}
	if host == nil {
		t.Fatal("plugin host missing from selection")
	}
	desc := host.Descriptor()
	if len(desc.Codes) != 1 || desc.Codes[0] != "use-isnan" {
		t.Errorf("descriptor codes = %v, want [use-isnan]", desc.Codes)
	}
}

func TestDiskCache_DropAll(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := cacheKey([]byte("input"), rules.All())
	if err := cache.Put(key, &CachedResult{Schema: cacheSchemaVersion}); err != nil {
		t.Fatal(err)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	var got CachedResult
	if hit, _ := cache.Get(key, &got); hit {
		t.Error("hit after DropAll")
	}
}

func TestLintFile_ServesFromCache(t *testing.T) {
	dir := t.TempDir()
	path := writeInput(t, dir, "one.ast.json", sparseArrayAST)
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// кладём в кеш под правильным ключом заведомо другой результат
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	planted := lint.Diagnostic{Code: "planted", Span: source.Span{Start: 1, End: 2}, Message: "from cache"}
	key := cacheKey(content, rules.All())
	if err := cache.Put(key, &CachedResult{Schema: cacheSchemaVersion, Diagnostics: []lint.Diagnostic{planted}}); err != nil {
		t.Fatal(err)
	}

	_, res, err := LintFile(context.Background(), path, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0] != planted {
		t.Errorf("cache was not consulted: %+v", res.Diagnostics)
	}
}
