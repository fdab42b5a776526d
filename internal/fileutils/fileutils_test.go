package fileutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	return path
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.csv")

	assert.True(t, FileExists(path))
	assert.False(t, FileExists(filepath.Join(dir, "missing.csv")))
	assert.False(t, FileExists(dir))
}

func TestDirectoryExists(t *testing.T) {
	dir := t.TempDir()

	assert.True(t, DirectoryExists(dir))
	assert.False(t, DirectoryExists(filepath.Join(dir, "missing")))
	assert.False(t, DirectoryExists(writeFile(t, dir, "a.csv")))
}

func TestEnsureDirectoryExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, EnsureDirectoryExists(dir))
	assert.True(t, DirectoryExists(dir))

	// Idempotent.
	assert.NoError(t, EnsureDirectoryExists(dir))
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv")
	writeFile(t, dir, "a.csv")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "subdir"), 0750))

	files, err := ListFiles(dir)
	require.NoError(t, err)

	// Sorted, directories excluded.
	assert.Equal(t, []string{
		filepath.Join(dir, "a.csv"),
		filepath.Join(dir, "b.csv"),
	}, files)
}

func TestListFilesMissingDirectory(t *testing.T) {
	files, err := ListFiles(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestArchiveFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv")
	writeFile(t, dir, "b.csv")

	require.NoError(t, ArchiveFiles(dir))

	remaining, err := ListFiles(dir)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	archived, err := ListFiles(filepath.Join(dir, "archive"))
	require.NoError(t, err)
	assert.Len(t, archived, 2)
}

func TestArchiveFilesEmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, ArchiveFiles(dir))
	assert.False(t, DirectoryExists(filepath.Join(dir, "archive")))
}

func TestDeleteFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv")
	writeFile(t, dir, "b.csv")

	require.NoError(t, DeleteFiles(dir))

	remaining, err := ListFiles(dir)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
