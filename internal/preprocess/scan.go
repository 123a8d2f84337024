package preprocess

import "strings"

const directive = "include"

// StripComments removes // comments that are not inside string literals.
// The newline ending a comment is kept so line numbers do not move.
func StripComments(src string) string {
	if !strings.Contains(src, "//") {
		return src
	}

	var b strings.Builder
	b.Grow(len(src))

	inString := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case inString:
			// Strings cannot span lines; a newline ends an unterminated one
			// and leaves it for the scanner to report.
			if c == '"' || c == '\n' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				b.WriteByte('\n')
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// scanDirective matches include "path"; at src[i:]. Whitespace may
// separate the parts. It returns the path and the offset just past the ';'.
func scanDirective(src string, i int) (path string, end int, ok bool) {
	if !strings.HasPrefix(src[i:], directive) {
		return "", 0, false
	}
	j := i + len(directive)
	if j < len(src) && isIdentChar(src[j]) {
		return "", 0, false
	}

	j = skipSpace(src, j)
	if j >= len(src) || src[j] != '"' {
		return "", 0, false
	}
	q := strings.IndexAny(src[j+1:], "\"\n")
	if q < 0 || src[j+1+q] != '"' {
		return "", 0, false
	}
	path = src[j+1 : j+1+q]

	j = skipSpace(src, j+q+2)
	if j >= len(src) || src[j] != ';' {
		return "", 0, false
	}
	return path, j + 1, true
}

// skipString returns the offset just past the string literal starting at
// src[i]. An unterminated literal ends at the newline or end of input.
func skipString(src string, i int) int {
	j := i + 1
	for j < len(src) {
		switch src[j] {
		case '"':
			return j + 1
		case '\n':
			return j
		}
		j++
	}
	return j
}

func skipSpace(src string, i int) int {
	for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\r' || src[i] == '\n') {
		i++
	}
	return i
}

// atIdentStart reports whether src[i] does not continue an identifier.
func atIdentStart(src string, i int) bool {
	return i == 0 || !isIdentChar(src[i-1])
}

func isIdentChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_'
}
