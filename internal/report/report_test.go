package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run-summary.csv")

	entries := []Entry{
		{
			Campus:      "chico",
			ExportFile:  "8821-1754042400000.xml",
			InvoiceID:   "INV-1001",
			VendorID:    "0000012345",
			GrossAmount: "120.00",
			LineCount:   2,
			RowCount:    5,
			OutputFile:  "/data/output/vouchers-2026-08-01.csv",
		},
	}
	require.NoError(t, Write(entries, path))

	content, err := os.ReadFile(path) // #nosec G304
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "campus,export_file,invoice_id,vendor_id,gross_amount,line_count,row_count,output_file", lines[0])
	assert.Contains(t, lines[1], "INV-1001")
	assert.Contains(t, lines[1], "120.00")
}

func TestWriteEmptyRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run-summary.csv")

	require.NoError(t, Write(nil, path))
	assert.NoFileExists(t, path)
}
