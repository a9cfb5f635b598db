package repl

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistoryAppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	h := NewHistory(path)
	require.NoError(t, h.Append("x = 1"))
	require.NoError(t, h.Append("x + 1"))

	reloaded := NewHistory(path)
	require.NoError(t, reloaded.Load())
	require.Equal(t, []string{"x = 1", "x + 1"}, reloaded.Entries())
}

func TestHistoryLoadMissingFileIsNotError(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, h.Load())
	require.Empty(t, h.Entries())
}

func TestHistoryAppendIgnoresBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	h := NewHistory(path)
	require.NoError(t, h.Append("   "))
	require.Empty(t, h.Entries())
}
