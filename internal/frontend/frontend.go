// Package frontend runs the whole front end on files: include expansion,
// scanning and parsing.
package frontend

import (
	"context"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/you-not-fish/qasm/internal/preprocess"
	"github.com/you-not-fish/qasm/internal/syntax"
)

// Loader loads OpenQASM files. A Loader may be used by several goroutines
// at once; every Load works on its own state.
type Loader struct {
	Fs          afero.Fs // nil means the OS file system
	SearchPaths []string
	Builtins    afero.Fs // fallback for includes, usually qelib.Fs()
	Logger      logrus.FieldLogger

	// Concurrency bounds LoadAll. Zero or less means no limit.
	Concurrency int
}

// Result is one loaded file.
type Result struct {
	Path     string
	Expanded string          // source after comment removal and include expansion
	Tokens   []syntax.Lexeme // tokens of Expanded
	Program  *syntax.Program
}

func (l *Loader) expander() *preprocess.Expander {
	fs := l.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &preprocess.Expander{
		Fs:          fs,
		SearchPaths: l.SearchPaths,
		Builtins:    l.Builtins,
		Logger:      l.Logger,
	}
}

// Expand reads path and expands its includes relative to its directory.
func (l *Loader) Expand(path string) (string, error) {
	return l.expander().ExpandFile(path)
}

// Load expands, tokenizes and parses the file at path. Positions in the
// result carry path as their file name.
func (l *Loader) Load(path string) (*Result, error) {
	log := l.logger().WithField("path", path)
	log.Debug("Loading")

	src, err := l.Expand(path)
	if err != nil {
		return nil, err
	}

	name := filepath.ToSlash(path)
	toks, err := syntax.Tokenize(name, src)
	if err != nil {
		return nil, err
	}

	prog, err := syntax.ParseProgram(toks)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"tokens": len(toks),
		"stmts":  len(prog.Stmts),
	}).Debug("Loaded")

	return &Result{Path: path, Expanded: src, Tokens: toks, Program: prog}, nil
}

// LoadAll loads paths concurrently. Results are in the order of paths.
// The first error cancels loads that have not started yet and is returned.
func (l *Loader) LoadAll(ctx context.Context, paths []string) ([]*Result, error) {
	results := make([]*Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if l.Concurrency > 0 {
		g.SetLimit(l.Concurrency)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := l.Load(path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (l *Loader) logger() logrus.FieldLogger {
	if l.Logger != nil {
		return l.Logger
	}
	return discard
}

var discard = func() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}()
