package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/tanquar/deno-lint/internal/lint"
	"github.com/tanquar/deno-lint/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Hint     string       `json:"hint,omitempty"`
	Location LocationJSON `json:"location"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// makeLocation создаёт LocationJSON из Span
func makeLocation(span source.Span, fs *source.FileSet, id source.FileID, opts JSONOpts) LocationJSON {
	f := fs.Get(id)
	loc := LocationJSON{
		File:      formatPath(f, fs, opts.PathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if opts.IncludePositions {
		startPos, endPos := fs.Resolve(id, span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(fs *source.FileSet, id source.FileID, diags []lint.Diagnostic, opts JSONOpts) DiagnosticsOutput {
	sorted := sortForOutput(diags)
	if opts.Max > 0 && opts.Max < len(sorted) {
		sorted = sorted[:opts.Max]
	}

	out := make([]DiagnosticJSON, 0, len(sorted))
	for _, d := range sorted {
		dj := DiagnosticJSON{
			Code:     d.Code,
			Message:  d.Message,
			Location: makeLocation(d.Span, fs, id, opts),
		}
		if opts.IncludeHints {
			dj.Hint = d.Hint
		}
		out = append(out, dj)
	}
	return DiagnosticsOutput{Diagnostics: out, Count: len(out)}
}

// JSON форматирует диагностики одного файла в JSON формат.
func JSON(w io.Writer, fs *source.FileSet, id source.FileID, diags []lint.Diagnostic, opts JSONOpts) error {
	output := BuildDiagnosticsOutput(fs, id, diags, opts)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
