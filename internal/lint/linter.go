package lint

import (
	"context"
	"fmt"

	"github.com/tanquar/deno-lint/internal/ast"
	"github.com/tanquar/deno-lint/internal/cfg"
)

// Result is the outcome of one lint run: the accumulated diagnostics in
// insertion order plus any recoverable external-rule failures.
type Result struct {
	Diagnostics []Diagnostic
	Failures    []*PluginError
}

// Linter drives one or more rules over programs. It is immutable after
// construction and safe to share across concurrent runs; all per-run state
// lives in the Context created inside Run.
type Linter struct {
	rules []Rule
}

// New constructs a linter running the given rules in registration order.
func New(rules ...Rule) *Linter {
	return &Linter{rules: rules}
}

// Rules returns the configured rules in registration order.
func (l *Linter) Rules() []Rule {
	return l.rules
}

// Run lints one program: builds the control-flow facts once, creates one
// context, invokes every rule in order, and hands back the harvested
// diagnostics. External-rule faults are collected per rule; the run
// continues. ctx only bounds external invocations — native rules are not
// interruptible.
func (l *Linter) Run(ctx context.Context, prog *ast.Program) Result {
	flow := cfg.Analyze(prog)
	c := NewContext(flow)

	var failures []*PluginError
	for _, rule := range l.rules {
		switch r := rule.(type) {
		case NativeRule:
			r.LintProgram(c, prog)
		case ExternalRule:
			if perr := r.RunExternal(ctx, c, prog); perr != nil {
				failures = append(failures, perr)
			}
		default:
			// реестр собирается из доверенного кода
			panic(fmt.Sprintf("lint: rule %q is neither native nor external", rule.Code()))
		}
	}

	return Result{
		Diagnostics: c.TakeDiagnostics(),
		Failures:    failures,
	}
}
