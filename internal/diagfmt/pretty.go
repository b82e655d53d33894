package diagfmt

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/tanquar/deno-lint/internal/lint"
	"github.com/tanquar/deno-lint/internal/source"
)

var (
	prettyPathColor = color.New(color.FgCyan)
	prettyCodeColor = color.New(color.FgRed, color.Bold)
	prettyHintColor = color.New(color.FgYellow)
	prettyMarkColor = color.New(color.FgRed)
)

// Pretty форматирует диагностики одного файла в человекочитаемый вид:
//
//	<path>:<line>:<col>: <code>: <message>
//
// затем строка исходника с подчёркиванием ^~~~ по Span, затем hint.
// Движок порядок не гарантирует, поэтому сортировка по позиции — здесь.
func Pretty(w io.Writer, fs *source.FileSet, id source.FileID, diags []lint.Diagnostic, opts PrettyOpts) {
	sorted := sortForOutput(diags)

	f := fs.Get(id)
	path := formatPath(f, fs, opts.PathMode)

	for _, d := range sorted {
		start, end := fs.Resolve(id, d.Span)

		pathStr := fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
		codeStr := d.Code
		if opts.Color {
			pathStr = prettyPathColor.Sprint(pathStr)
			codeStr = prettyCodeColor.Sprint(codeStr)
		}
		fmt.Fprintf(w, "%s: %s: %s\n", pathStr, codeStr, d.Message)

		if opts.ShowExcerpt {
			writeExcerpt(w, f, start, end, opts.Color)
		}
		if opts.ShowHints && d.Hint != "" {
			label := "hint:"
			if opts.Color {
				label = prettyHintColor.Sprint(label)
			}
			fmt.Fprintf(w, "  %s %s\n", label, d.Hint)
		}
	}
}

// sortForOutput orders by position, then code, keeping a stable tiebreak so
// output is deterministic across runs.
func sortForOutput(diags []lint.Diagnostic) []lint.Diagnostic {
	sorted := append([]lint.Diagnostic(nil), diags...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		if a.Span.End != b.Span.End {
			return a.Span.End < b.Span.End
		}
		return a.Code < b.Code
	})
	return sorted
}

// writeExcerpt prints the first source line of the span with a ^~~~ marker
// under the offending range.
func writeExcerpt(w io.Writer, f *source.File, start, end source.LineCol, colorize bool) {
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	} else if end.Line > start.Line {
		// многострочный span подчёркиваем до конца первой строки
		if rest := len(line) - int(start.Col-1); rest > width {
			width = rest
		}
	}
	marker := "^" + strings.Repeat("~", width-1)
	if colorize {
		marker = prettyMarkColor.Sprint(marker)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", int(start.Col-1)), marker)
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
