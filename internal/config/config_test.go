package config

import (
	"os"
	"path/filepath"
	"testing"

	"calstate/alma-voucher/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCampusConfig(t *testing.T, baseDir, campus, content string) string {
	t.Helper()

	campusDir := filepath.Join(baseDir, campus)
	require.NoError(t, os.MkdirAll(campusDir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(campusDir, "config.yaml"), []byte(content), 0600))
	return campusDir
}

const minimalConfig = `file_name: vouchers-{date}.csv
alma_export_filepath: /data/exports
output_filepath: /data/output
`

func TestLoadCampusDefaults(t *testing.T) {
	campusDir := writeCampusConfig(t, t.TempDir(), "chico", minimalConfig)

	cfg, err := LoadCampus(campusDir)
	require.NoError(t, err)

	// Campus name defaults to the directory name.
	assert.Equal(t, "chico", cfg.Campus)

	assert.Equal(t, "vouchers-{date}.csv", cfg.FileName)
	assert.Equal(t, "01/02/2006", cfg.AccountingFormat)
	assert.Equal(t, LayoutInterface, cfg.VoucherLayout)
	assert.Equal(t, "EA", cfg.UnitOfMeasure)
	assert.Equal(t, "tmp", cfg.TmpFilepath)
	assert.Equal(t, []string{"CREDITCARD"}, cfg.SkipPaymentMethods)
	assert.False(t, cfg.MultipleBusinessUnits)
	assert.False(t, cfg.Debug)
}

func TestLoadCampusFullConfig(t *testing.T) {
	campusDir := writeCampusConfig(t, t.TempDir(), "northridge", `campus: csun
file_name: ap-vouchers.csv
alma_export_filepath: /data/exports
output_filepath: /data/output
error_log_filepath: /data/logs
peoplesoft_voucher_layout: upload
voucher_upload_abbr: true
multiple_business_units: true
populate_gl_unit: true
business_units:
  - id: C
    name: SMCMP
  - id: N
    name: SMNOR
ship_to_locations:
  - sut: S
    location: MAIN
  - sut: E
    location: ANNEX
allowed_lines: REGULAR;ADJUSTMENT
skip_payment_methods:
  - CREDITCARD
  - DEPOSITACCOUNT
sftp:
  server: cfs.example.edu:2222
  username: alma
  password: hunter2
  path: /incoming
`)

	cfg, err := LoadCampus(campusDir)
	require.NoError(t, err)

	assert.Equal(t, "csun", cfg.Campus)
	assert.Equal(t, LayoutUpload, cfg.VoucherLayout)
	assert.True(t, cfg.VoucherUploadAbbr)
	assert.Equal(t, []BusinessUnit{{ID: "C", Name: "SMCMP"}, {ID: "N", Name: "SMNOR"}}, cfg.BusinessUnits)
	assert.Equal(t, "cfs.example.edu:2222", cfg.SFTP.Server)
	assert.Equal(t, "hunter2", cfg.SFTP.Password)
	assert.True(t, cfg.SkipsPaymentMethod("DEPOSITACCOUNT"))
}

func TestLoadCampusMissingRequired(t *testing.T) {
	tests := []struct {
		name   string
		config string
		key    string
	}{
		{
			"missing file name",
			"alma_export_filepath: /a\noutput_filepath: /b\n",
			"file_name",
		},
		{
			"missing export path",
			"file_name: f.csv\noutput_filepath: /b\n",
			"alma_export_filepath",
		},
		{
			"missing output path",
			"file_name: f.csv\nalma_export_filepath: /a\n",
			"output_filepath",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			campusDir := writeCampusConfig(t, t.TempDir(), "x", tc.config)

			_, err := LoadCampus(campusDir)
			require.Error(t, err)

			var reqErr *parsererror.RequiredConfigError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tc.key, reqErr.Key)
		})
	}
}

func TestLoadCampusInvalidLayout(t *testing.T) {
	campusDir := writeCampusConfig(t, t.TempDir(), "x",
		minimalConfig+"peoplesoft_voucher_layout: sideways\n")

	_, err := LoadCampus(campusDir)
	require.Error(t, err)

	var layoutErr *parsererror.InvalidLayoutError
	assert.ErrorAs(t, err, &layoutErr)
}

func TestLoadCampusMissingConfigFile(t *testing.T) {
	_, err := LoadCampus(filepath.Join(t.TempDir(), "nowhere"))
	assert.Error(t, err)
}

func TestListCampuses(t *testing.T) {
	baseDir := t.TempDir()
	writeCampusConfig(t, baseDir, "chico", minimalConfig)
	writeCampusConfig(t, baseDir, "fresno", minimalConfig)
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, "README.md"), []byte("x"), 0600))

	campuses, err := ListCampuses(baseDir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"chico", "fresno"}, campuses)
}

func TestBusinessUnitName(t *testing.T) {
	cfg := &Campus{BusinessUnits: []BusinessUnit{
		{ID: "C", Name: "SMCMP"},
		{ID: "N", Name: "SMNOR"},
	}}

	name, ok := cfg.BusinessUnitName("N")
	assert.True(t, ok)
	assert.Equal(t, "SMNOR", name)

	_, ok = cfg.BusinessUnitName("Z")
	assert.False(t, ok)
}

func TestShipTo(t *testing.T) {
	t.Run("single location", func(t *testing.T) {
		cfg := &Campus{ShipToLocation: "MAIN"}
		assert.Equal(t, "MAIN", cfg.ShipTo("S"))
		assert.Equal(t, "MAIN", cfg.ShipTo("E"))
	})

	t.Run("per-flag locations", func(t *testing.T) {
		cfg := &Campus{ShipToLocations: []ShipToLocation{
			{SUT: "S", Location: "MAIN"},
			{SUT: "E", Location: "ANNEX"},
		}}
		assert.Equal(t, "ANNEX", cfg.ShipTo("E"))

		// Unmatched flags fall back to the first entry.
		assert.Equal(t, "MAIN", cfg.ShipTo("U"))
	})
}

func TestAllowedLineTypes(t *testing.T) {
	assert.Equal(t, []string{"REGULAR"}, (&Campus{}).AllowedLineTypes())
	assert.Equal(t, []string{"REGULAR", "ADJUSTMENT"},
		(&Campus{AllowedLines: "REGULAR;ADJUSTMENT"}).AllowedLineTypes())
}

func TestSkipsPaymentMethod(t *testing.T) {
	cfg := &Campus{SkipPaymentMethods: []string{"CREDITCARD"}}

	assert.True(t, cfg.SkipsPaymentMethod("CREDITCARD"))
	assert.False(t, cfg.SkipsPaymentMethod("ACCOUNTINGDEPARTMENT"))
	assert.False(t, cfg.SkipsPaymentMethod(""))
}
