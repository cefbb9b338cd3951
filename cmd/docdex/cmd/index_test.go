package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestIndexCmd_EndToEnd(t *testing.T) {
	folder := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(folder, "a.txt"), []byte("alpha beta"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "b.txt"), []byte("beta"), 0o644))

	out, err := runCLI(t, "index", folder)
	require.NoError(t, err)
	assert.Contains(t, out, "Built full index: 2 documents")

	// The checkpoint exists where the config says it should.
	_, err = os.Stat(filepath.Join(folder, ".docdex", "index.json"))
	assert.NoError(t, err)

	// A second run is incremental and changes nothing.
	out, err = runCLI(t, "index", folder)
	require.NoError(t, err)
	assert.Contains(t, out, "(2 unchanged)")
}

func TestIndexCmd_MissingFolder(t *testing.T) {
	_, err := runCLI(t, "index", filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestRootCmd_DefaultsToIndex(t *testing.T) {
	folder := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(folder, "a.txt"), []byte("alpha"), 0o644))

	out, err := runCLI(t, folder)
	require.NoError(t, err)
	assert.Contains(t, out, "Built full index")
}

func TestStatusCmd(t *testing.T) {
	folder := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(folder, "a.txt"), []byte("alpha"), 0o644))

	out, err := runCLI(t, "status", folder)
	require.NoError(t, err)
	assert.Contains(t, out, "No index checkpoint")

	_, err = runCLI(t, "index", folder)
	require.NoError(t, err)

	out, err = runCLI(t, "status", "--check", folder)
	require.NoError(t, err)
	assert.Contains(t, out, "Documents: 1")
	assert.Contains(t, out, "Consistency: OK")
}
