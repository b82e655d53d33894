package source

import (
	"encoding/json"
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		other    Span
		expected Span
	}{
		{
			name:     "disjoint after",
			span:     Span{Start: 10, End: 20},
			other:    Span{Start: 30, End: 40},
			expected: Span{Start: 10, End: 40},
		},
		{
			name:     "disjoint before",
			span:     Span{Start: 30, End: 40},
			other:    Span{Start: 10, End: 20},
			expected: Span{Start: 10, End: 40},
		},
		{
			name:     "contained",
			span:     Span{Start: 10, End: 40},
			other:    Span{Start: 20, End: 30},
			expected: Span{Start: 10, End: 40},
		},
		{
			name:     "identical",
			span:     Span{Start: 10, End: 20},
			other:    Span{Start: 10, End: 20},
			expected: Span{Start: 10, End: 20},
		},
		{
			name:     "empty other",
			span:     Span{Start: 10, End: 20},
			other:    Span{Start: 25, End: 25},
			expected: Span{Start: 10, End: 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.span.Cover(tt.other)
			if result != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", result, tt.expected)
			}
		})
	}
}

func TestSpan_Contains(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		other    Span
		expected bool
	}{
		{name: "inside", span: Span{Start: 0, End: 100}, other: Span{Start: 10, End: 20}, expected: true},
		{name: "equal", span: Span{Start: 10, End: 20}, other: Span{Start: 10, End: 20}, expected: true},
		{name: "overlaps start", span: Span{Start: 10, End: 20}, other: Span{Start: 5, End: 15}, expected: false},
		{name: "overlaps end", span: Span{Start: 10, End: 20}, other: Span{Start: 15, End: 25}, expected: false},
		{name: "disjoint", span: Span{Start: 10, End: 20}, other: Span{Start: 30, End: 40}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Contains(tt.other); got != tt.expected {
				t.Errorf("Contains() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpan_WireEncoding(t *testing.T) {
	// Протокол фиксирует {lo, hi} на проводе.
	data, err := json.Marshal(Span{Start: 5, End: 10})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"lo":5,"hi":10}` {
		t.Errorf("wire form = %s, want {\"lo\":5,\"hi\":10}", data)
	}

	var s Span
	if err := json.Unmarshal([]byte(`{"lo":5,"hi":10}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s != (Span{Start: 5, End: 10}) {
		t.Errorf("round-trip = %+v", s)
	}
}

func TestSpan_EmptyLen(t *testing.T) {
	if !(Span{Start: 7, End: 7}).Empty() {
		t.Error("zero-length span should be empty")
	}
	if (Span{Start: 7, End: 9}).Empty() {
		t.Error("non-zero span should not be empty")
	}
	if got := (Span{Start: 7, End: 9}).Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}
