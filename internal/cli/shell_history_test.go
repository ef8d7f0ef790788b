package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadShellHistory_FileNotFound_ReturnsNil(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent", "history")
	lines := loadHistoryFromPath(path)
	assert.Nil(t, lines)
}

func TestLoadShellHistory_ReadsLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")
	content := "week +1\nplan 7\n\ncook 12\nmode edit\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lines := loadHistoryFromPath(path)
	assert.Equal(t, []string{"week +1", "plan 7", "cook 12", "mode edit"}, lines)
}

func TestLoadShellHistory_TruncatesOverMax(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	// Write 600 lines.
	var b strings.Builder
	for i := 0; i < 600; i++ {
		b.WriteString("line\n")
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	lines := loadHistoryFromPath(path)
	assert.Len(t, lines, maxHistoryLines)
}

func TestHistoryPath_UnderStateDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	assert.Equal(t, "history", filepath.Base(shellHistoryPath()))
	assert.Equal(t, ".gabelguru", filepath.Base(filepath.Dir(shellHistoryPath())))
}

func TestAppendShellHistory_AppendsLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	appendHistoryToPath(path, "week -1")
	appendHistoryToPath(path, "dashboard")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "week -1\ndashboard\n", string(data))
}

func TestAppendShellHistory_SkipsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	appendHistoryToPath(path, "")
	appendHistoryToPath(path, "   ")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "file should not be created for empty lines")
}
