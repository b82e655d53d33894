package plugin

import (
	"encoding/json"

	"github.com/tanquar/deno-lint/internal/source"
)

// Wire protocol: newline-delimited JSON over the child's stdio. The host
// sends a single "run" message; the child answers with a stream of ops and
// closes the conversation with "done". Control-flow queries are the one
// request the child makes back, answered inline on its stdin.

// runMsg is the host→child kickoff. Empty RuleCodes means "run every rule
// the module registered".
type runMsg struct {
	Op         string          `json:"op"`
	ProgramAst json.RawMessage `json:"programAst"`
	RuleCodes  []string        `json:"ruleCodes"`
}

// childMsg is the envelope for every child→host line; which fields are
// meaningful depends on Op.
type childMsg struct {
	Op string `json:"op"`

	// register_rule_code, report_diagnostics
	Code        string           `json:"code,omitempty"`
	Diagnostics []wireDiagnostic `json:"diagnostics,omitempty"`

	// query_control_flow
	ID   uint64       `json:"id,omitempty"`
	Span *source.Span `json:"span,omitempty"`

	// error
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message,omitempty"`
}

// wireDiagnostic is one finding as the child reports it. An absent hint
// stays absent through the boundary.
type wireDiagnostic struct {
	Span    source.Span `json:"span"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// flowAnswer replies to one query_control_flow. Both facts are null when no
// statement starts at the queried position.
type flowAnswer struct {
	Op             string `json:"op"`
	ID             uint64 `json:"id"`
	IsReachable    *bool  `json:"isReachable"`
	StopsExecution *bool  `json:"stopsExecution"`
}
