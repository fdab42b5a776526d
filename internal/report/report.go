// Package report writes a per-run processing summary so campus staff can
// reconcile what was converted without opening the voucher files.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Entry is one processed invoice in the run summary.
type Entry struct {
	Campus      string `csv:"campus"`
	ExportFile  string `csv:"export_file"`
	InvoiceID   string `csv:"invoice_id"`
	VendorID    string `csv:"vendor_id"`
	GrossAmount string `csv:"gross_amount"`
	LineCount   int    `csv:"line_count"`
	RowCount    int    `csv:"row_count"`
	OutputFile  string `csv:"output_file"`
}

// Write writes the run summary as CSV. An empty run writes nothing.
func Write(entries []Entry, path string) error {
	if len(entries) == 0 {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating summary file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := gocsv.MarshalFile(&entries, file); err != nil {
		return fmt.Errorf("error writing summary: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":  path,
		"count": len(entries),
	}).Info("Wrote run summary")

	return nil
}
