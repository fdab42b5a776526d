// Package config provides Viper-based loading of per-campus configuration.
//
// Each campus keeps a config.yaml in its campuses/<campus>/ directory with
// the static PeopleSoft values that are not stored in Alma. Configuration
// is loaded once per run and treated as read-only for the duration of a
// transform pass.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"calstate/alma-voucher/internal/parsererror"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Voucher layout identifiers accepted by peoplesoft_voucher_layout.
const (
	LayoutInterface = "interface"
	LayoutUpload    = "upload"
)

// BusinessUnit maps a single-character identifier used in the Alma fund
// external id field to a PeopleSoft business unit code. Order matters:
// the first entry acts as the default when no identifier is present.
type BusinessUnit struct {
	ID   string `mapstructure:"id" yaml:"id"`
	Name string `mapstructure:"name" yaml:"name"`
}

// ShipToLocation maps a sales/use tax applicability flag to a ship-to
// location code. The first entry is the fallback when no flag matches.
type ShipToLocation struct {
	SUT      string `mapstructure:"sut" yaml:"sut"`
	Location string `mapstructure:"location" yaml:"location"`
}

// Campus represents the complete configuration for one campus.
type Campus struct {
	Campus string `mapstructure:"campus" yaml:"campus"`

	AlmaExportFilepath string `mapstructure:"alma_export_filepath" yaml:"alma_export_filepath"`
	OutputFilepath     string `mapstructure:"output_filepath" yaml:"output_filepath"`
	ErrorLogFilepath   string `mapstructure:"error_log_filepath" yaml:"error_log_filepath"`
	TmpFilepath        string `mapstructure:"tmp_filepath" yaml:"tmp_filepath"`

	AccountingFormat  string `mapstructure:"accounting_format" yaml:"accounting_format"`
	InvoiceDateFormat string `mapstructure:"invoice_date_format" yaml:"invoice_date_format"`

	FileName string `mapstructure:"file_name" yaml:"file_name"`

	VoucherLayout     string `mapstructure:"peoplesoft_voucher_layout" yaml:"peoplesoft_voucher_layout"`
	VoucherUploadAbbr bool   `mapstructure:"voucher_upload_abbr" yaml:"voucher_upload_abbr"`
	UnitOfMeasure     string `mapstructure:"unit_of_measure" yaml:"unit_of_measure"`

	MultipleBusinessUnits bool           `mapstructure:"multiple_business_units" yaml:"multiple_business_units"`
	PopulateGLUnit        bool           `mapstructure:"populate_gl_unit" yaml:"populate_gl_unit"`
	BusinessUnits         []BusinessUnit `mapstructure:"business_units" yaml:"business_units"`

	ShipToLocation  string           `mapstructure:"ship_to_location" yaml:"ship_to_location"`
	ShipToLocations []ShipToLocation `mapstructure:"ship_to_locations" yaml:"ship_to_locations"`

	DiscountInInvoiceLine bool `mapstructure:"discount_in_invoice_line" yaml:"discount_in_invoice_line"`
	ShipmentInInvoiceLine bool `mapstructure:"shipment_in_invoice_line" yaml:"shipment_in_invoice_line"`

	AllowedLines               string `mapstructure:"allowed_lines" yaml:"allowed_lines"`
	MerchandiseAmountInInvoice bool   `mapstructure:"merchandise_amount_in_invoice" yaml:"merchandise_amount_in_invoice"`

	SkipPaymentMethods []string `mapstructure:"skip_payment_methods" yaml:"skip_payment_methods"`

	Debug bool `mapstructure:"debug" yaml:"debug"`

	SFTP struct {
		Server   string `mapstructure:"server" yaml:"server"`
		Username string `mapstructure:"username" yaml:"username"`
		Password string `mapstructure:"password" yaml:"-"`
		Path     string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"sftp" yaml:"sftp"`

	HTTP struct {
		URL      string `mapstructure:"url" yaml:"url"`
		Username string `mapstructure:"username" yaml:"username"`
		Password string `mapstructure:"password" yaml:"-"`
	} `mapstructure:"http" yaml:"http"`

	SMTP struct {
		Server string `mapstructure:"server" yaml:"server"`
		From   string `mapstructure:"from" yaml:"from"`
		To     string `mapstructure:"to" yaml:"to"`
	} `mapstructure:"smtp" yaml:"smtp"`
}

// LoadCampus loads the configuration for one campus directory.
// Values resolve in order: defaults, config.yaml, ALMA_-prefixed
// environment variables.
func LoadCampus(campusDir string) (*Campus, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(campusDir)

	v.SetEnvPrefix("ALMA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config in %s: %w", campusDir, err)
	}

	var campus Campus
	if err := v.Unmarshal(&campus); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if campus.Campus == "" {
		campus.Campus = filepath.Base(campusDir)
	}

	if err := campus.Validate(); err != nil {
		return nil, err
	}

	return &campus, nil
}

// ListCampuses returns the campus directory names found under baseDir.
func ListCampuses(baseDir string) ([]string, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list campuses in %s: %w", baseDir, err)
	}

	var campuses []string
	for _, entry := range entries {
		if entry.IsDir() {
			campuses = append(campuses, entry.Name())
		}
	}

	return campuses, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("accounting_format", "01/02/2006")
	v.SetDefault("invoice_date_format", "")
	v.SetDefault("peoplesoft_voucher_layout", LayoutInterface)
	v.SetDefault("voucher_upload_abbr", false)
	v.SetDefault("unit_of_measure", "EA")
	v.SetDefault("multiple_business_units", false)
	v.SetDefault("populate_gl_unit", false)
	v.SetDefault("discount_in_invoice_line", false)
	v.SetDefault("shipment_in_invoice_line", false)
	v.SetDefault("merchandise_amount_in_invoice", false)
	v.SetDefault("allowed_lines", "")
	v.SetDefault("skip_payment_methods", []string{"CREDITCARD"})
	v.SetDefault("tmp_filepath", "tmp")
	v.SetDefault("debug", false)
}

// Validate checks the loaded configuration for required entries and
// recognized values.
func (c *Campus) Validate() error {
	if c.FileName == "" {
		return &parsererror.RequiredConfigError{Key: "file_name"}
	}
	if c.AlmaExportFilepath == "" {
		return &parsererror.RequiredConfigError{Key: "alma_export_filepath"}
	}
	if c.OutputFilepath == "" {
		return &parsererror.RequiredConfigError{Key: "output_filepath"}
	}
	if c.VoucherLayout != LayoutInterface && c.VoucherLayout != LayoutUpload {
		return &parsererror.InvalidLayoutError{Layout: c.VoucherLayout}
	}
	return nil
}

// BusinessUnitName resolves a single-character business unit identifier
// to its PeopleSoft code.
func (c *Campus) BusinessUnitName(id string) (string, bool) {
	for _, unit := range c.BusinessUnits {
		if unit.ID == id {
			return unit.Name, true
		}
	}
	return "", false
}

// ShipTo resolves the ship-to location for a sales/use tax flag. When a
// per-flag list is configured, an unmatched flag falls back to the first
// entry; otherwise the single configured location applies to every line.
func (c *Campus) ShipTo(sut string) string {
	if len(c.ShipToLocations) == 0 {
		return c.ShipToLocation
	}
	for _, loc := range c.ShipToLocations {
		if loc.SUT == sut {
			return loc.Location
		}
	}
	return c.ShipToLocations[0].Location
}

// AllowedLineTypes returns the invoice line types to include in output.
// Certain line types are placeholders and can be safely ignored.
func (c *Campus) AllowedLineTypes() []string {
	if c.AllowedLines == "" {
		return []string{"REGULAR"}
	}
	return strings.Split(c.AllowedLines, ";")
}

// SkipsPaymentMethod reports whether invoices paid with the given method
// are excluded from processing.
func (c *Campus) SkipsPaymentMethod(method string) bool {
	for _, m := range c.SkipPaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Dump renders the configuration as YAML for debug logging. Credentials
// are excluded from serialization.
func (c *Campus) Dump(log *logrus.Logger) {
	out, err := yaml.Marshal(c)
	if err != nil {
		log.WithError(err).Warn("Failed to dump config")
		return
	}
	log.Debugf("Effective config for %s:\n%s", c.Campus, out)
}
