// Package preprocess removes comments from OpenQASM source and replaces
// include directives with the text of the files they name.
package preprocess

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/you-not-fish/qasm/internal/qelib"
)

// builtinPrefix marks chain entries served from Expander.Builtins.
const builtinPrefix = "<builtin>/"

// Expander expands include directives against a file system.
// An Expander holds no per-call state and may be shared between goroutines.
type Expander struct {
	// Fs is where included files are read from. Nil means the OS file system.
	Fs afero.Fs

	// SearchPaths are tried, in order, after the including file's directory.
	SearchPaths []string

	// Builtins is the last fallback for relative paths, usually qelib.Fs().
	Builtins afero.Fs

	// Logger receives include resolution at debug level. Nil is silent.
	Logger logrus.FieldLogger
}

// Expand strips comments from src and expands its includes using the OS
// file system, with the standard library available as a fallback.
// Relative include paths resolve against baseDir.
func Expand(src, baseDir string) (string, error) {
	e := &Expander{Fs: afero.NewOsFs(), Builtins: qelib.Fs()}
	return e.Expand(src, baseDir)
}

// Expand strips comments from src and replaces every include directive,
// depth first, with the expanded text of the named file.
func (e *Expander) Expand(src, baseDir string) (string, error) {
	return e.expand(src, baseDir, nil)
}

// ExpandFile reads path and expands it with baseDir set to its directory.
func (e *Expander) ExpandFile(path string) (string, error) {
	data, err := afero.ReadFile(e.fs(), path)
	if err != nil {
		return "", &IncludeError{Path: path, Err: err}
	}
	return e.expand(string(data), filepath.Dir(path), []string{chainKey(path)})
}

func (e *Expander) fs() afero.Fs {
	if e.Fs == nil {
		return afero.NewOsFs()
	}
	return e.Fs
}

// expand does the work for one file. chain holds the keys of the files
// currently being expanded, outermost first.
func (e *Expander) expand(src, baseDir string, chain []string) (string, error) {
	src = StripComments(src)

	var b strings.Builder
	b.Grow(len(src))

	for i := 0; i < len(src); {
		switch c := src[i]; {
		case c == '"':
			// Copy string literals whole so their contents are never taken
			// for a directive.
			j := skipString(src, i)
			b.WriteString(src[i:j])
			i = j

		case c == 'i' && atIdentStart(src, i):
			path, end, ok := scanDirective(src, i)
			if !ok {
				b.WriteByte(c)
				i++
				continue
			}
			text, err := e.include(path, baseDir, chain)
			if err != nil {
				return "", err
			}
			b.WriteString(text)
			i = end

		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String(), nil
}

// include resolves, reads and expands one directive target.
func (e *Expander) include(path, baseDir string, chain []string) (string, error) {
	fsys, resolved, builtin, err := e.resolve(path, baseDir)
	if err != nil {
		return "", &IncludeError{Path: path, Err: err}
	}

	var key string
	if builtin {
		key = builtinPrefix + strings.TrimPrefix(resolved, "/")
	} else {
		key = chainKey(resolved)
	}
	for _, k := range chain {
		if k == key {
			cycle := append(append([]string(nil), chain...), key)
			return "", &CycleError{Chain: cycle}
		}
	}

	e.debug("Expanding include", logrus.Fields{
		"path":     path,
		"resolved": key,
		"depth":    len(chain),
	})

	data, err := afero.ReadFile(fsys, resolved)
	if err != nil {
		return "", &IncludeError{Path: path, Err: err}
	}

	dir := filepath.Dir(resolved)
	if builtin {
		dir = baseDir
	}
	return e.expand(string(data), dir, append(chain[:len(chain):len(chain)], key))
}

// resolve finds the file a directive names. Relative paths are tried
// against baseDir, then each search path, then the builtin library.
func (e *Expander) resolve(path, baseDir string) (fsys afero.Fs, resolved string, builtin bool, err error) {
	fsys = e.fs()

	if filepath.IsAbs(path) {
		if _, err := statFile(fsys, path); err != nil {
			return nil, "", false, err
		}
		return fsys, path, false, nil
	}

	first := filepath.Join(baseDir, path)
	_, firstErr := statFile(fsys, first)
	if firstErr == nil {
		return fsys, first, false, nil
	}

	for _, dir := range e.SearchPaths {
		candidate := filepath.Join(dir, path)
		if _, err := statFile(fsys, candidate); err == nil {
			e.debug("Include found on search path", logrus.Fields{"path": path, "dir": dir})
			return fsys, candidate, false, nil
		}
	}

	if e.Builtins != nil {
		candidate := "/" + filepath.ToSlash(filepath.Clean(path))
		if _, err := statFile(e.Builtins, candidate); err == nil {
			return e.Builtins, candidate, true, nil
		}
	}

	return nil, "", false, firstErr
}

func (e *Expander) debug(msg string, fields logrus.Fields) {
	if e.Logger != nil {
		e.Logger.WithFields(fields).Debug(msg)
	}
}

// statFile is Stat that refuses directories.
func statFile(fsys afero.Fs, path string) (fs.FileInfo, error) {
	fi, err := fsys.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: path, Err: errIsDir}
	}
	return fi, nil
}

// chainKey names a file independently of how it was reached.
func chainKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
