package source

import (
	"bytes"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		want        string
		wantChanged bool
	}{
		{"no carriage returns", "a;\nb;\n", "a;\nb;\n", false},
		{"crlf pairs", "a;\r\nb;\r\n", "a;\nb;\n", true},
		{"lone cr kept", "a\rb\r\nc", "a\rb\nc", true},
		{"trailing cr kept", "a\r", "a\r", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := normalizeCRLF([]byte(tt.in))
			if string(got) != tt.want || changed != tt.wantChanged {
				t.Errorf("normalizeCRLF(%q) = %q, %v; want %q, %v",
					tt.in, got, changed, tt.want, tt.wantChanged)
			}
		})
	}
}

func TestRemoveBOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("x;")...)
	got, had := removeBOM(withBOM)
	if !had || !bytes.Equal(got, []byte("x;")) {
		t.Errorf("removeBOM = %q, %v", got, had)
	}

	plain := []byte("x;")
	got, had = removeBOM(plain)
	if had || !bytes.Equal(got, plain) {
		t.Errorf("removeBOM(plain) = %q, %v", got, had)
	}
}

func TestBuildLineIndex(t *testing.T) {
	idx := buildLineIndex([]byte("ab\nc\n\nd"))
	want := []uint32{2, 4, 5}
	if len(idx) != len(want) {
		t.Fatalf("index = %v, want %v", idx, want)
	}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("index = %v, want %v", idx, want)
		}
	}
	if got := buildLineIndex([]byte("no newline")); len(got) != 0 {
		t.Errorf("index = %v, want empty", got)
	}
}

func TestToLineCol(t *testing.T) {
	// "ab\ncd\nef"
	idx := []uint32{2, 5}
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 1, Col: 2}},
		{2, LineCol{Line: 1, Col: 3}}, // перевод строки принадлежит своей строке
		{3, LineCol{Line: 2, Col: 1}},
		{4, LineCol{Line: 2, Col: 2}},
		{6, LineCol{Line: 3, Col: 1}},
		{7, LineCol{Line: 3, Col: 2}},
	}
	for _, tt := range tests {
		if got := toLineCol(idx, tt.off); got != tt.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}

	if got := toLineCol(nil, 4); got != (LineCol{Line: 1, Col: 5}) {
		t.Errorf("single-line file: %+v", got)
	}
}
