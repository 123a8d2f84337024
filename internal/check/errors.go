// Package check performs the semantic checks that the parser leaves out:
// declarations, gate arities, register bounds and parameter expressions.
package check

import (
	"fmt"

	"github.com/you-not-fish/qasm/internal/syntax"
)

// Error is a semantic error in a parsed program.
type Error struct {
	Pos syntax.Pos
	Msg string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorHandler is called for each error found.
type ErrorHandler func(pos syntax.Pos, msg string)

// errorf reports an error at pos.
func (c *Checker) errorf(pos syntax.Pos, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	if c.errors == 0 {
		c.first = &Error{Pos: pos, Msg: msg}
	}
	c.errors++

	if c.conf.Error != nil {
		c.conf.Error(pos, msg)
	}
}
