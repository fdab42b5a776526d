// Package almaparser parses Alma invoice export documents and transforms
// each invoice into PeopleSoft voucher rows.
package almaparser

import (
	"fmt"
	"path/filepath"
	"strings"

	"calstate/alma-voucher/internal/config"
	"calstate/alma-voucher/internal/fileutils"
	"calstate/alma-voucher/internal/models"
	"calstate/alma-voucher/internal/parsererror"
	"calstate/alma-voucher/internal/report"
	"calstate/alma-voucher/internal/xmlutils"

	"github.com/sirupsen/logrus"
	xmlpath "github.com/masterzen/xmlpath"
)

// invoicesPath locates the invoices inside an export document.
const invoicesPath = "payment_data/invoice_list/invoice"

// Parser transforms Alma export files into grouped voucher output.
type Parser struct {
	log *logrus.Logger
}

// New creates a parser with the given logger.
func New(logger *logrus.Logger) *Parser {
	if logger == nil {
		logger = logrus.New()
	}
	return &Parser{log: logger}
}

// SetLogger sets a custom logger for the parser
func (p *Parser) SetLogger(logger *logrus.Logger) {
	if logger != nil {
		p.log = logger
	}
}

// ValidateFormat checks whether a file parses as an Alma invoice export.
func (p *Parser) ValidateFormat(filePath string) (bool, error) {
	root, err := xmlutils.LoadXMLFile(filePath)
	if err != nil {
		p.log.WithField("file", filePath).Info("File is not a valid XML")
		return false, nil
	}

	if !xmlutils.Exists(root, invoicesPath) {
		p.log.WithField("file", filePath).Info("File is not an Alma invoice export (no invoices)")
		return false, nil
	}

	return true, nil
}

// ParseFile transforms one export file into voucher rows grouped by
// output file, plus a summary entry per processed invoice. A failure
// while transforming one invoice is logged and does not prevent
// transformation of its siblings.
func (p *Parser) ParseFile(export *fileutils.ExportFile, cfg *config.Campus) (*Output, []report.Entry, error) {
	root, err := xmlutils.LoadXMLFile(export.Path)
	if err != nil {
		return nil, nil, &parsererror.ValidationError{
			FilePath: export.Path,
			Reason:   err.Error(),
		}
	}

	output := NewOutput()
	var entries []report.Entry

	for _, invoiceNode := range xmlutils.Nodes(root, invoicesPath) {
		entry, err := p.transformInvoice(invoiceNode, export, cfg, output)
		if err != nil {
			p.log.WithField("file", export.Filename).WithError(err).Error("Skipping invoice")
			continue
		}
		if entry != nil {
			entries = append(entries, *entry)
		}
	}

	p.log.WithFields(logrus.Fields{
		"file":  export.Filename,
		"count": len(entries),
	}).Info("Transformed invoices from export file")

	return output, entries, nil
}

// transformInvoice converts a single invoice subtree. Invoices paid with
// a skipped payment method return (nil, nil).
func (p *Parser) transformInvoice(node *xmlpath.Node, export *fileutils.ExportFile, cfg *config.Campus, output *Output) (*report.Entry, error) {
	method, _ := xmlutils.Field(node, "payment_method")
	if cfg.SkipsPaymentMethod(method) {
		p.log.WithField("payment_method", method).Debug("Skipping invoice by payment method")
		return nil, nil
	}

	invoice := models.NewInvoice(node, cfg, export.Timestamp)

	rows, err := invoice.Rows()
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %w", invoice.InvoiceID, err)
	}

	name, err := outputFileName(cfg, export, invoice)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %w", invoice.InvoiceID, err)
	}

	output.Add(name, rows)

	return &report.Entry{
		Campus:      cfg.Campus,
		ExportFile:  export.Filename,
		InvoiceID:   invoice.InvoiceID,
		VendorID:    invoice.VendorID,
		GrossAmount: models.FormatAmount(invoice.GrossAmt),
		LineCount:   len(invoice.Lines),
		RowCount:    len(rows),
		OutputFile:  name,
	}, nil
}

// outputFileName builds the target path for an invoice's rows: the
// configured file name with {date} replaced by the export date and,
// when the invoice resolves a business unit, the unit name appended
// before the extension.
func outputFileName(cfg *config.Campus, export *fileutils.ExportFile, invoice *models.Invoice) (string, error) {
	if cfg.FileName == "" {
		return "", &parsererror.RequiredConfigError{Key: "file_name"}
	}

	name := strings.ReplaceAll(cfg.FileName, "{date}", export.Date)

	if unit, ok := invoice.BusinessUnitName(); ok {
		ext := filepath.Ext(name)
		name = strings.TrimSuffix(name, ext) + "-" + unit + ext
	}

	return filepath.Join(cfg.OutputFilepath, name), nil
}
