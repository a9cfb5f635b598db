package cmd_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/sapling/cache"
	"github.com/ardnew/sapling/cli/cmd"
	"github.com/ardnew/sapling/parser"
)

func TestRunExecutesSourceFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greet.sap")

	require.NoError(t, os.WriteFile(path, []byte(`x = 1 + 2`), 0o644))

	r := cmd.Run{File: path}
	require.NoError(t, r.Run(context.Background()))
}

func TestRunCompileWritesSidecar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greet.sap")

	require.NoError(t, os.WriteFile(path, []byte(`x = 1`), 0o644))

	r := cmd.Run{File: path, Compile: true}
	require.NoError(t, r.Run(context.Background()))

	sidecar := filepath.Join(dir, "greet.sapped")
	f, err := os.Open(sidecar)
	require.NoError(t, err)
	defer f.Close()

	_, err = cache.Decode(f)
	require.NoError(t, err)
}

func TestRunReportsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.sap")

	require.NoError(t, os.WriteFile(path, []byte(`x = `), 0o644))

	r := cmd.Run{File: path}
	err := r.Run(context.Background())
	require.Error(t, err)
}

func TestRunDirectoryNonRecursive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.sap"), []byte(`a = 1`), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.sap"), []byte(`b = bad syntax {`), 0o644))

	r := cmd.Run{File: dir}
	require.NoError(t, r.Run(context.Background()))
}

func TestRunDirectoryRecursiveDescendsIntoSubdirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "bad.sap"), []byte(`b = `), 0o644))

	r := cmd.Run{File: dir, Recursive: true}
	require.Error(t, r.Run(context.Background()))
}

func TestRunSappedCache(t *testing.T) {
	dir := t.TempDir()

	code, err := parser.Parse(`answer = 42`)
	require.NoError(t, err)

	f, err := os.Create(filepath.Join(dir, "precompiled.sapped"))
	require.NoError(t, err)
	require.NoError(t, cache.Encode(f, code))
	require.NoError(t, f.Close())

	r := cmd.Run{File: filepath.Join(dir, "precompiled.sapped")}
	require.NoError(t, r.Run(context.Background()))
}
