package source

import (
	"bytes"
	"path/filepath"
	"sort"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalizeCRLF схлопывает \r\n в \n, одиночные \r не трогает. AST-дампы и
// их исходники-соседи могут приезжать с Windows-концами строк, а офсеты
// диагностик считаются по нормализованному буферу.
func normalizeCRLF(content []byte) ([]byte, bool) {
	crlf := []byte("\r\n")
	if !bytes.Contains(content, crlf) {
		return content, false
	}

	out := make([]byte, 0, len(content))
	for {
		i := bytes.Index(content, crlf)
		if i < 0 {
			return append(out, content...), true
		}
		out = append(out, content[:i]...)
		out = append(out, '\n')
		content = content[i+2:]
	}
}

// removeBOM срезает UTF-8 BOM: parser-фронтенды считают офсеты уже без него.
func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, utf8BOM) {
		return content[len(utf8BOM):], true
	}
	return content, false
}

// buildLineIndex records the byte offset of every newline; Resolve turns
// diagnostic spans into line/column positions against it.
func buildLineIndex(content []byte) []uint32 {
	var out []uint32
	base := uint32(0)
	for {
		i := bytes.IndexByte(content, '\n')
		if i < 0 {
			return out
		}
		out = append(out, base+uint32(i))
		base += uint32(i) + 1
		content = content[i+1:]
	}
}

// toLineCol converts a byte offset into a 1-based line/column pair. A
// newline belongs to the line it terminates.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// первый перевод строки с позицией >= off; всё левее — законченные строки
	line := sort.Search(len(lineIdx), func(i int) bool {
		return lineIdx[i] >= off
	})
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - lineStart + 1}
}

// normalizePath даёт единый вид пути в кроссплатформенных дифах.
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
