package lint

import (
	"slices"
	"sort"

	"github.com/tanquar/deno-lint/internal/cfg"
	"github.com/tanquar/deno-lint/internal/source"
)

// Context is the single mutable collection point of one lint run: every
// rule, native or external, reports findings through it and reads
// control-flow facts from it. None of its operations fail; it is a pure
// accumulator. One writer at a time (rule execution is sequential within a
// run), so no locking.
type Context struct {
	flow        *cfg.ControlFlow
	diags       []Diagnostic
	pluginCodes []string
}

// NewContext creates a context for one run, seeded with the program's
// control-flow facts.
func NewContext(flow *cfg.ControlFlow) *Context {
	return &Context{flow: flow}
}

// AddDiagnostic appends a diagnostic without a hint. Diagnostics with an
// empty rule code are dropped.
func (c *Context) AddDiagnostic(span source.Span, code, message string) {
	if code == "" {
		return
	}
	c.diags = append(c.diags, Diagnostic{Code: code, Span: span, Message: message})
}

// AddDiagnosticWithHint appends a diagnostic with a remediation hint.
func (c *Context) AddDiagnosticWithHint(span source.Span, code, message, hint string) {
	if code == "" {
		return
	}
	c.diags = append(c.diags, Diagnostic{Code: code, Span: span, Message: message, Hint: hint})
}

// ControlFlow exposes the run's control-flow facts, read-only.
func (c *Context) ControlFlow() *cfg.ControlFlow {
	return c.flow
}

// SetPluginCodes records which external rule codes were discovered during
// the run. Observability only: used to detect registration mismatches, not
// needed for diagnostic correctness.
func (c *Context) SetPluginCodes(codes []string) {
	c.pluginCodes = slices.Clone(codes)
	sort.Strings(c.pluginCodes)
}

// PluginCodes returns the recorded external rule codes, sorted.
func (c *Context) PluginCodes() []string {
	return c.pluginCodes
}

// Len reports how many diagnostics have accumulated so far.
func (c *Context) Len() int {
	return len(c.diags)
}

// TakeDiagnostics hands the accumulated list to the caller, leaving the
// context empty. Order is insertion order: the order rules executed and,
// within a rule, the order its traversal visited matching nodes. The
// engine never re-sorts by position; consumers that want that sort it
// themselves.
func (c *Context) TakeDiagnostics() []Diagnostic {
	out := c.diags
	c.diags = nil
	return out
}
