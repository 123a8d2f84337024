// Package qelib provides the standard gate library that OpenQASM programs
// conventionally pull in with include "qelib1.inc";
package qelib

import (
	_ "embed"
	"sync"

	"github.com/spf13/afero"
)

// Name is the include path under which the library is served.
const Name = "qelib1.inc"

//go:embed qelib1.inc
var source []byte

var (
	once sync.Once
	fs   afero.Fs
)

// Source returns the library text.
func Source() string {
	return string(source)
}

// Fs returns a read-only file system holding the library at /qelib1.inc.
// The same instance is shared by all callers.
func Fs() afero.Fs {
	once.Do(func() {
		mem := afero.NewMemMapFs()
		if err := afero.WriteFile(mem, "/"+Name, source, 0o444); err != nil {
			panic(err)
		}
		fs = afero.NewReadOnlyFs(mem)
	})
	return fs
}
