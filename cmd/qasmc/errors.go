package main

import (
	"errors"

	"github.com/you-not-fish/qasm/internal/check"
	"github.com/you-not-fish/qasm/internal/preprocess"
	"github.com/you-not-fish/qasm/internal/syntax"
)

// Exit codes of the qasmc command.
const (
	exitDiagnostics = 1 // the input is not a valid program
	exitUsage       = 2 // bad flags, arguments or configuration
	exitIO          = 3 // a file could not be read
)

// hasExitCode is an error that carries the code the process exits with.
type hasExitCode interface {
	error
	ExitCode() int
}

type exitCodeError struct {
	error
	code int
}

func (e exitCodeError) Unwrap() error {
	return e.error
}

func (e exitCodeError) ExitCode() int {
	return e.code
}

// withExitCodeIfNone attaches code to err unless err already has one.
func withExitCodeIfNone(err error, code int) error {
	if err == nil {
		return nil
	}
	var ecerr hasExitCode
	if errors.As(err, &ecerr) {
		return err
	}
	return exitCodeError{err, code}
}

// classify attaches the exit code that fits a front end error. Anything
// that is not a diagnostic about the source is an I/O failure.
func classify(err error) error {
	var (
		lexErr   *syntax.LexError
		parseErr *syntax.ParseError
		checkErr *check.Error
		cycleErr *preprocess.CycleError
	)
	if errors.As(err, &lexErr) || errors.As(err, &parseErr) ||
		errors.As(err, &checkErr) || errors.As(err, &cycleErr) {
		return withExitCodeIfNone(err, exitDiagnostics)
	}
	return withExitCodeIfNone(err, exitIO)
}

// exitCode returns the code for err, or 1 when it has none.
func exitCode(err error) int {
	var ecerr hasExitCode
	if errors.As(err, &ecerr) {
		return ecerr.ExitCode()
	}
	return exitDiagnostics
}
