package cmd_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/sapling/cli/cmd"
)

func TestFmtJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.sap")
	require.NoError(t, os.WriteFile(path, []byte(`x = 1 + 2`), 0o644))

	f := cmd.Fmt{Source: path, Indent: 2}
	require.NoError(t, f.Run(context.Background()))
}

func TestFmtYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.sap")
	require.NoError(t, os.WriteFile(path, []byte(`x = 1 + 2`), 0o644))

	f := cmd.Fmt{Source: path, YAML: true, Indent: 2}
	require.NoError(t, f.Run(context.Background()))
}

func TestFmtParseErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.sap")
	require.NoError(t, os.WriteFile(path, []byte(`x = `), 0o644))

	f := cmd.Fmt{Source: path}
	require.Error(t, f.Run(context.Background()))
}
