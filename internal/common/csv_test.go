package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendRowsToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "vouchers.csv")

	rows := [][]string{
		{"H", "INV-1001", "07152026"},
		{"L", "1", "EA", "10.00"},
	}
	require.NoError(t, AppendRowsToCSV(rows, path))

	// Appending adds to the existing file, heterogeneous widths intact.
	require.NoError(t, AppendRowsToCSV([][]string{{"D", "", "1"}}, path))

	content, err := os.ReadFile(path) // #nosec G304
	require.NoError(t, err)
	assert.Equal(t, "H,INV-1001,07152026\nL,1,EA,10.00\nD,,1\n", string(content))
}

func TestAppendRowsToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vouchers.csv")

	require.NoError(t, AppendRowsToCSV(nil, path))
	assert.NoFileExists(t, path)
}

func TestAppendRowsToCSVCustomDelimiter(t *testing.T) {
	original := Delimiter
	defer SetDelimiter(original)
	SetDelimiter('|')

	path := filepath.Join(t.TempDir(), "vouchers.csv")
	require.NoError(t, AppendRowsToCSV([][]string{{"a", "b"}}, path))

	content, err := os.ReadFile(path) // #nosec G304
	require.NoError(t, err)
	assert.Equal(t, "a|b\n", string(content))
}
