package qelib

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/qasm/internal/syntax"
)

func TestFs(t *testing.T) {
	data, err := afero.ReadFile(Fs(), "/"+Name)
	require.NoError(t, err)
	assert.Equal(t, Source(), string(data))

	err = afero.WriteFile(Fs(), "/other.inc", []byte("x"), 0o644)
	assert.Error(t, err, "library fs must be read-only")
}

func TestLibraryParses(t *testing.T) {
	prog, err := syntax.ParseString(Name, Source())
	require.NoError(t, err)

	gates := map[string]bool{}
	for _, s := range prog.Stmts {
		d, ok := s.(*syntax.GateDecl)
		require.True(t, ok, "unexpected %T in library", s)
		gates[d.Name] = true
	}
	for _, name := range []string{"u3", "u2", "u1", "cx", "id", "x", "y", "z", "h", "s", "sdg", "t", "tdg", "rx", "ry", "rz", "cz", "cy", "ch", "ccx", "crz", "cu1", "cu3"} {
		assert.True(t, gates[name], "missing gate %s", name)
	}
}
