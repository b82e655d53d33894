// Package rules holds the built-in lint rules. Each rule is stateless: all
// per-run accumulation goes through the shared diagnostic context.
package rules

import (
	"github.com/tanquar/deno-lint/internal/lint"
)

// all is the registry, in the order rules were added to the project.
// Output order of a run follows this order, so it stays append-only.
var all = []lint.Rule{
	&UseIsNaN{},
	&NoSparseArrays{},
	&PreferAsConst{},
	&NoNonNullAssertion{},
	&NoUnreachable{},
}

// All returns every built-in rule in registration order.
func All() []lint.Rule {
	out := make([]lint.Rule, len(all))
	copy(out, all)
	return out
}

// Get looks a rule up by its code.
func Get(code string) (lint.Rule, bool) {
	for _, r := range all {
		if r.Code() == code {
			return r, true
		}
	}
	return nil, false
}
