package syntax

import "unicode/utf8"

// source is a character reader with position tracking.
// It walks a UTF-8 encoded string and provides character-by-character access.
type source struct {
	buf string // expanded source text

	// Position tracking
	filename string // source file name
	line     uint32 // current line number (1-based)
	col      uint32 // current column number (1-based, byte offset)

	// Current state
	ch    rune // current character, -1 for EOF
	chOff int  // byte offset of ch in buf
	offs  int  // byte offset of the character after ch

	// First lexical error; once set the scanner stops producing tokens.
	err *LexError
}

// init prepares s to read buf. The first character is loaded immediately.
//
// Position tracking: (line, col) always refers to the position of s.ch after nextch() returns.
// Initial state: line=1, col=0, s.ch=-1
// After first nextch(): line=1, col=1, s.ch=first char
func (s *source) init(filename, buf string) {
	s.buf = buf
	s.filename = filename
	s.line = 1
	s.col = 0
	s.ch = -1
	s.chOff = 0
	s.offs = 0
	s.err = nil
	s.nextch()
}

// nextch reads the next character from the source and updates position.
// Sets s.ch to -1 at EOF.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	s.chOff = s.offs
	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRuneInString(s.buf[s.offs:])
	if r == utf8.RuneError && width == 1 {
		s.error("invalid UTF-8 encoding")
	}

	s.ch = r
	s.offs += width
}

// peek returns the byte following the current character without consuming
// anything, or 0 at EOF.
func (s *source) peek() byte {
	if s.offs < len(s.buf) {
		return s.buf[s.offs]
	}
	return 0
}

// pos returns the current position (position of current character).
func (s *source) pos() Pos {
	return Pos{filename: s.filename, line: s.line, col: s.col, offset: s.chOff}
}

// error records a lexical error at the current position. Only the first
// error is kept.
func (s *source) error(msg string) {
	s.errorAt(s.pos(), msg)
}

func (s *source) errorAt(pos Pos, msg string) {
	if s.err == nil {
		s.err = &LexError{Pos: pos, Msg: msg}
	}
}

// Character classification helpers

// isLetter reports whether r is a letter (a-z, A-Z, or _).
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

// isDigit reports whether r is a decimal digit (0-9).
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// lower returns the lowercase version of r if r is an ASCII letter.
func lower(r rune) rune {
	return ('a' - 'A') | r
}

// isWhitespace reports whether r separates tokens.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
