package almaparser

import (
	"os"
	"path/filepath"
	"testing"

	"calstate/alma-voucher/internal/config"
	"calstate/alma-voucher/internal/fileutils"
	"calstate/alma-voucher/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportXML = `<?xml version="1.0" encoding="UTF-8"?>
<payment_data xmlns="http://com/exlibris/repository/acq/invoice/xmlbeans">
  <invoice_list>
    <invoice>
      <invoice_number>INV-1001</invoice_number>
      <invoice_date>07/15/2026</invoice_date>
      <vendor_FinancialSys_Code>0000012345-001</vendor_FinancialSys_Code>
      <payment_method>ACCOUNTINGDEPARTMENT</payment_method>
      <invoice_amount><sum>50.00</sum></invoice_amount>
      <invoice_line_list>
        <invoice_line>
          <line_number>1</line_number>
          <line_type>REGULAR</line_type>
          <quantity>1</quantity>
          <price>50.00</price>
          <fund_info_list>
            <fund_info>
              <amount><sum>50.00</sum></amount>
              <external_id>C SPD1</external_id>
            </fund_info>
          </fund_info_list>
        </invoice_line>
      </invoice_line_list>
    </invoice>
    <invoice>
      <invoice_number>INV-1002</invoice_number>
      <payment_method>CREDITCARD</payment_method>
      <invoice_amount><sum>25.00</sum></invoice_amount>
    </invoice>
  </invoice_list>
</payment_data>`

func writeExportFile(t *testing.T, dir, name, content string) *fileutils.ExportFile {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	export, ok := fileutils.NewExportFile(path)
	require.True(t, ok)
	return export
}

func testConfig(outputDir string) *config.Campus {
	return &config.Campus{
		Campus:             "chico",
		FileName:           "vouchers-{date}.csv",
		OutputFilepath:     outputDir,
		AccountingFormat:   "01/02/2006",
		UnitOfMeasure:      "EA",
		VoucherLayout:      config.LayoutInterface,
		SkipPaymentMethods: []string{"CREDITCARD"},
	}
}

func TestValidateFormat(t *testing.T) {
	dir := t.TempDir()
	parser := New(nil)

	valid := filepath.Join(dir, "valid.xml")
	require.NoError(t, os.WriteFile(valid, []byte(exportXML), 0600))

	noInvoices := filepath.Join(dir, "other.xml")
	require.NoError(t, os.WriteFile(noInvoices, []byte(`<report><row/></report>`), 0600))

	notXML := filepath.Join(dir, "notxml.xml")
	require.NoError(t, os.WriteFile(notXML, []byte("plain text <"), 0600))

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"valid export", valid, true},
		{"xml without invoices", noInvoices, false},
		{"not xml", notXML, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := parser.ValidateFormat(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ok)
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	export := writeExportFile(t, dir, "8821-1754042400000.xml", exportXML)
	cfg := testConfig(filepath.Join(dir, "output"))

	output, entries, err := New(nil).ParseFile(export, cfg)
	require.NoError(t, err)

	// The credit card invoice is skipped without an entry.
	require.Len(t, entries, 1)
	assert.Equal(t, "INV-1001", entries[0].InvoiceID)
	assert.Equal(t, "0000012345", entries[0].VendorID)
	assert.Equal(t, "50.00", entries[0].GrossAmount)
	assert.Equal(t, 1, entries[0].LineCount)
	assert.Equal(t, export.Filename, entries[0].ExportFile)

	files := output.Files()
	require.Len(t, files, 1)
	expected := filepath.Join(cfg.OutputFilepath, "vouchers-"+export.Date+".csv")
	assert.Equal(t, expected, files[0])

	rows := output.Rows(files[0])
	require.NotEmpty(t, rows)
	assert.Equal(t, models.RecordHeader, rows[0][0])
	assert.Equal(t, "INV-1001", rows[0][1])
	assert.Equal(t, len(rows), entries[0].RowCount)
}

func TestParseFileBusinessUnitSuffix(t *testing.T) {
	dir := t.TempDir()
	export := writeExportFile(t, dir, "8821-1754042400000.xml", exportXML)

	cfg := testConfig(filepath.Join(dir, "output"))
	cfg.MultipleBusinessUnits = true
	cfg.BusinessUnits = []config.BusinessUnit{{ID: "C", Name: "SMCMP"}}

	output, _, err := New(nil).ParseFile(export, cfg)
	require.NoError(t, err)

	files := output.Files()
	require.Len(t, files, 1)
	assert.Equal(t,
		filepath.Join(cfg.OutputFilepath, "vouchers-"+export.Date+"-SMCMP.csv"),
		files[0])
}

func TestParseFileInvalidDocument(t *testing.T) {
	dir := t.TempDir()
	export := writeExportFile(t, dir, "1-1754042400000.xml", "plain text <")

	_, _, err := New(nil).ParseFile(export, testConfig(dir))
	assert.Error(t, err)
}

func TestOutput(t *testing.T) {
	a := NewOutput()
	assert.True(t, a.Empty())

	a.Add("x.csv", [][]string{{"H"}})
	a.Add("y.csv", [][]string{{"H"}})
	a.Add("x.csv", [][]string{{"L"}})

	b := NewOutput()
	b.Add("z.csv", [][]string{{"H"}})
	b.Merge(a)

	assert.Equal(t, []string{"z.csv", "x.csv", "y.csv"}, b.Files())
	assert.Equal(t, [][]string{{"H"}, {"L"}}, b.Rows("x.csv"))
	assert.False(t, b.Empty())
}
