package organizer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanDryRun(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"old.log":  "0123456789",
		"new.log":  "abc",
		"keep.txt": "data",
	})

	old := time.Now().AddDate(0, 0, -10)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.log"), old, old))

	result, err := newTestOrganizer().Clean(CleanOptions{
		Dir:           dir,
		Pattern:       "*.log",
		OlderThanDays: 7,
		DryRun:        true,
	})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.Files)
	assert.Equal(t, int64(10), result.Bytes)
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, filepath.Join(dir, "old.log"), result.Candidates[0])

	// Nothing is removed in a dry run.
	_, err = os.Stat(filepath.Join(dir, "old.log"))
	assert.NoError(t, err)
}

func TestClean(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"old.log":  "0123456789",
		"new.log":  "abc",
		"keep.txt": "data",
	})

	old := time.Now().AddDate(0, 0, -10)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.log"), old, old))

	result, err := newTestOrganizer().Clean(CleanOptions{
		Dir:           dir,
		Pattern:       "*.log",
		OlderThanDays: 7,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Files)
	assert.Equal(t, int64(10), result.Bytes)

	_, err = os.Stat(filepath.Join(dir, "old.log"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "new.log"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "keep.txt"))
	assert.NoError(t, err)
}

func TestCleanDefaultPattern(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.log":      "x",
		"b.txt":      "y",
		"nested/c.d": "z",
	})

	result, err := newTestOrganizer().Clean(CleanOptions{Dir: dir})
	require.NoError(t, err)

	// Every top-level file matches "*"; subdirectories are untouched.
	assert.Equal(t, 2, result.Files)
	_, err = os.Stat(filepath.Join(dir, "nested", "c.d"))
	assert.NoError(t, err)
}

func TestCleanInvalidOptions(t *testing.T) {
	dir := t.TempDir()

	_, err := newTestOrganizer().Clean(CleanOptions{Dir: dir, Pattern: "["})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid glob pattern")

	_, err = newTestOrganizer().Clean(CleanOptions{Dir: dir, OlderThanDays: -1})
	require.Error(t, err)

	_, err = newTestOrganizer().Clean(CleanOptions{Dir: filepath.Join(dir, "missing")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
