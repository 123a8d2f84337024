package preprocess

import (
	"errors"
	"strings"
)

var errIsDir = errors.New("is a directory")

// IncludeError reports an include target that could not be found or read.
type IncludeError struct {
	Path string // path as written in the directive
	Err  error
}

func (e *IncludeError) Error() string {
	return "include " + e.Path + ": " + e.Err.Error()
}

func (e *IncludeError) Unwrap() error {
	return e.Err
}

// CycleError reports a file that includes itself, directly or through
// other files. Chain lists the files being expanded, outermost first,
// followed by the file that closed the cycle.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return "include cycle: " + strings.Join(e.Chain, " -> ")
}
