package syntax

// LexError reports an unrecognized character, a malformed number or an
// unterminated string.
type LexError struct {
	Pos Pos
	Msg string
}

func (e *LexError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ParseError reports the first malformed construct in a token stream.
type ParseError struct {
	Pos      Pos
	Expected string // description of the acceptable token set
	Found    string // description of the token actually found
	Msg      string // set instead of Expected/Found for non-token errors
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return e.Pos.String() + ": " + e.Msg
	}
	return e.Pos.String() + ": expected " + e.Expected + ", found " + e.Found
}
