package source

import (
	"fmt"
)

// Span is a byte-offset range [Start, End) into the original source buffer.
// Spans come from the external parser and are never mutated afterwards;
// control-flow facts are keyed by Start.
type Span struct {
	Start uint32 `json:"lo" msgpack:"lo"` // в байтах включительно
	End   uint32 `json:"hi" msgpack:"hi"` // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Cover extends s to include other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
