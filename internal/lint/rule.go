package lint

import (
	"context"

	"github.com/tanquar/deno-lint/internal/ast"
)

// Rule is the capability common to both rule variants: identifying code
// plus optional tags. Registry entries are immutable configuration,
// constructed once and reused across runs; they own no per-run state.
type Rule interface {
	Code() string
	Tags() []string
}

// NativeRule is compiled-in analysis logic, invoked in-process against the
// tree. Native rules are trusted: a panic here is a defect and aborts the
// run.
type NativeRule interface {
	Rule
	LintProgram(c *Context, prog *ast.Program)
}

// ExternalRule delegates to an isolated execution environment. A returned
// *PluginError is recoverable: the driver records it and continues with the
// remaining rules.
type ExternalRule interface {
	Rule
	RunExternal(ctx context.Context, c *Context, prog *ast.Program) *PluginError
}
