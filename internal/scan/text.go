package scan

import "strings"

// StripComments removes "//" and "/* */" comments from src. Every newline
// is preserved, including newlines inside block comments, so a byte offset
// in the stripped text maps to the same 1-based line number as in the
// original text. All non-comment bytes survive unchanged.
func StripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	i := 0
	for i < len(src) {
		if src[i] == '/' && i+1 < len(src) && src[i+1] == '/' {
			i += 2
			for i < len(src) && src[i] != '\n' {
				i++
			}
			continue
		}
		if src[i] == '/' && i+1 < len(src) && src[i+1] == '*' {
			i += 2
			for i < len(src) {
				if src[i] == '*' && i+1 < len(src) && src[i+1] == '/' {
					i += 2
					break
				}
				if src[i] == '\n' {
					b.WriteByte('\n')
				}
				i++
			}
			continue
		}
		b.WriteByte(src[i])
		i++
	}
	return b.String()
}

// LineAt returns the 1-based line number of byte offset off in text.
func LineAt(text string, off int) int {
	if off > len(text) {
		off = len(text)
	}
	return 1 + strings.Count(text[:off], "\n")
}

// SliceLines extracts the inclusive 1-based line range [start, end] from
// raw, with trailing newline and carriage-return bytes trimmed. Ranges
// extending past the last line are clamped to end of text.
func SliceLines(raw string, start, end int) string {
	line := 1
	i := 0
	for i < len(raw) && line < start {
		if raw[i] == '\n' {
			line++
		}
		i++
	}
	j := i
	for j < len(raw) && line <= end {
		if raw[j] == '\n' {
			line++
		}
		j++
	}
	return strings.TrimRight(raw[i:j], "\r\n")
}

// BraceBlock locates the first "{" at or after start and returns the offset
// of that brace plus the offset just past its depth-matched "}". Input must
// be comment-stripped so braces inside comments cannot confuse matching.
// When no "{" exists before end of text, ok is false. An unbalanced block
// ends at end of text rather than failing, to stay tolerant of truncated
// sources.
func BraceBlock(text string, start int) (open, end int, ok bool) {
	i := start
	for i < len(text) && text[i] != '{' {
		i++
	}
	if i >= len(text) {
		return 0, 0, false
	}
	depth := 0
	for j := i; j < len(text); j++ {
		switch text[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, j + 1, true
			}
		}
	}
	return i, len(text), true
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// lastIdentBefore returns the last identifier token in text[lo:hi], or ""
// when no identifier ends within the range.
func lastIdentBefore(text string, lo, hi int) string {
	r := hi
	for r > lo && !isIdentChar(text[r-1]) {
		r--
	}
	end := r
	for r > lo && isIdentChar(text[r-1]) {
		r--
	}
	return text[r:end]
}
