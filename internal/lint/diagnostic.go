// Package lint holds the per-run diagnostic context, the rule abstraction
// and the run driver shared by native and external rules.
package lint

import (
	"github.com/tanquar/deno-lint/internal/source"
)

// Diagnostic is one reported rule violation. Immutable once created;
// ownership transfers to the context's list. An empty Hint means no hint
// was attached.
type Diagnostic struct {
	Code    string      `json:"code" msgpack:"code"`
	Span    source.Span `json:"span" msgpack:"span"`
	Message string      `json:"message" msgpack:"message"`
	Hint    string      `json:"hint,omitempty" msgpack:"hint,omitempty"`
}
