package models

import (
	"strconv"

	"calstate/alma-voucher/internal/config"
	"calstate/alma-voucher/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Rows renders the invoice in the campus's configured voucher layout.
// Field order within a row is part of the downstream contract and must
// not be reordered.
func (inv *Invoice) Rows() ([][]string, error) {
	switch inv.cfg.VoucherLayout {
	case config.LayoutInterface:
		return inv.ToInterfaceRows(), nil
	case config.LayoutUpload:
		return inv.ToUploadRows(), nil
	default:
		return nil, &parsererror.InvalidLayoutError{Layout: inv.cfg.VoucherLayout}
	}
}

// rowFunds returns the line's funds, or a single zero-value placeholder
// so a line with no fund allocations still yields an output row.
func rowFunds(line *InvoiceLine) []*Fund {
	if len(line.Funds) == 0 {
		return []*Fund{{}}
	}
	return line.Funds
}

func (inv *Invoice) formatOverhead() string {
	if inv.OverheadBlank {
		return ""
	}
	return FormatAmount(inv.OverheadAmt)
}

// ToUploadRows renders the AP Voucher Upload layout: one row per
// (line, fund) pair. Only the first row of the invoice carries the
// supplier id, gross amount and address sequence number. In abbreviated
// mode only the first row is emitted at all.
func (inv *Invoice) ToUploadRows() [][]string {
	var rows [][]string

	for _, line := range inv.Lines {
		for _, fund := range rowFunds(line) {
			if len(rows) == 0 {
				rows = append(rows, inv.uploadFirstRow(line, fund))
				continue
			}
			if inv.cfg.VoucherUploadAbbr {
				return rows
			}
			rows = append(rows, inv.uploadContinuationRow(line, fund))
		}
	}

	return rows
}

func (inv *Invoice) uploadFirstRow(line *InvoiceLine, fund *Fund) []string {
	// Merchandise amount from the line, unless the campus takes it from
	// the invoice instead.
	merchandise := line.Price
	if inv.cfg.MerchandiseAmountInInvoice {
		merchandise = inv.MerchandiseAmt
	}

	return []string{
		inv.InvoiceID,                // A. Invoice # (30 chars)
		inv.InvoiceDate,              // B. Invoice Date (10 chars)
		inv.VendorID,                 // C. Supplier ID (10 chars)
		inv.AccountingDate,           // D. Accounting Date (10 chars)
		strconv.Itoa(line.LineNum),   // E. Voucher Line (5 chars)
		fund.GLUnit,                  // F. GL Business Unit (5 chars)
		"",                           // G. Quantity
		"",                           // H. Unit of Measure
		"",                           // I. Unit Price
		FormatAmount(inv.GrossAmt),   // J. Voucher Gross Amount (23.3 length)
		FormatAmount(merchandise),    // K. Merchandise Amt (28 chars)
		line.Description,             // L. Description on the voucher line (30 chars)
		fund.SpeedchartKey,           // M. Speedchart (10 chars)
		fund.AccountCode,             // N. Account (6 chars)
		fund.FundCode,                // O. Fund Code (5 chars)
		fund.DeptID,                  // P. Department ID (10 chars)
		fund.ProgramCode,             // Q. Program Code (5 chars)
		fund.ClassCode,               // R. Class (5 chars)
		fund.ProjectID,               // S. Project ID (15 chars)
		line.ShipTo,                  // T. Ship To Location (10 chars)
		line.SUTApplicability,        // U. 'S' Sales Tax, 'U' Use Tax, 'E' Exempt (1 char)
		FormatAmount(inv.TaxAmt),     // V. Sales Tax Amount (23.3 length)
		FormatAmount(inv.FreightAmt), // W. Freight Amount (23.3 length)
		inv.formatOverhead(),         // X. Miscellaneous Charge Amount (23.3 length)
		"",                           // Y. Supplier Class
		"",                           // Z. Old Vendor ID
		"",                           // AA. Name 1
		"",                           // BB. Name 2
		"",                           // CC. Supplier Location
		inv.VendorAddrSeqNum,         // DD. Addr Seq # (5 chars)
		"", "", "", "", "", "", "", "", "", // EE-MM. Address info, payment group, handling code, etc.
	}
}

func (inv *Invoice) uploadContinuationRow(line *InvoiceLine, fund *Fund) []string {
	return []string{
		inv.InvoiceID,              // A. Invoice # (30 chars)
		inv.InvoiceDate,            // B. Invoice Date (10 chars)
		"",                         // C. Supplier ID (first row only)
		inv.AccountingDate,         // D. Accounting Date (10 chars)
		strconv.Itoa(line.LineNum), // E. Voucher Line (5 chars)
		fund.GLUnit,                // F. GL Business Unit (5 chars)
		"",                         // G. Quantity
		"",                         // H. Unit of Measure
		"",                         // I. Unit Price
		"",                         // J. Voucher Gross Amount (first row only)
		FormatAmount(line.Price),   // K. Merchandise Amt (28 chars)
		line.Description,           // L. Description on the voucher line (30 chars)
		fund.SpeedchartKey,         // M. Speedchart (10 chars)
		fund.AccountCode,           // N. Account (6 chars)
		fund.FundCode,              // O. Fund Code (5 chars)
		fund.DeptID,                // P. Department ID (10 chars)
		fund.ProgramCode,           // Q. Program Code (5 chars)
		fund.ClassCode,             // R. Class (5 chars)
		fund.ProjectID,             // S. Project ID (15 chars)
		line.ShipTo,                // T. Ship To Location (10 chars)
		line.SUTApplicability,      // U. 'S' Sales Tax, 'U' Use Tax, 'E' Exempt (1 char)
		"", "", "", "", "", // V-Z. First row only
		"", "", "", "", "", "", "", "", // AA-HH. First row only
		"", "", "", "", "", // II-MM. First row only
	}
}

// ToInterfaceRows renders the AP Voucher Interface layout: one header
// row, then per (line, fund) a voucher line row, followed by a
// distribution row whenever the fund has no speedchart key.
func (inv *Invoice) ToInterfaceRows() [][]string {
	rows := [][]string{{
		RecordHeader,                 // A. Record Indicator (1 char)
		inv.InvoiceID,                // B. Invoice ID (30 chars)
		inv.InvoiceDate,              // C. Invoice Date (10 chars)
		inv.VendorID,                 // D. Supplier ID (10 chars)
		inv.AccountingDate,           // E. Accounting Date (10 chars)
		FormatAmount(inv.GrossAmt),   // F. Gross Amount (23.3 length)
		FormatAmount(inv.TaxAmt),     // G. Sales Tax Amount (23.3 length)
		FormatAmount(inv.FreightAmt), // H. Freight Amount (23.3 length)
		inv.formatOverhead(),         // I. Misc Charge Amount (23.3 length)
	}}

	for _, line := range inv.Lines {
		for _, fund := range rowFunds(line) {
			merchandise := inv.interfaceMerchandise(line, fund)

			rows = append(rows, []string{
				RecordLine,                   // A. Record Indicator (1 char)
				strconv.Itoa(line.Quantity),  // B. Quantity (11.4 length)
				inv.UnitOfMeasure,            // C. Unit of Measure (3 chars)
				FormatAmount(unitPrice(merchandise, line.Quantity)), // D. Unit Price (10.5 length)
				FormatAmount(merchandise),    // E. Merchandise Amount (23.3 length)
				line.Description,             // F. Line Description (30 chars)
				line.ShipTo,                  // G. Ship To Location (10 chars)
				line.SUTApplicability,        // H. Sales Tax = S, Use Tax = U, Exempt = E (1 char)
				fund.SpeedchartKey,           // I. SpeedChart (10 chars)
			})

			// Without a speedchart key the chartfield string goes on a
			// distribution row.
			if fund.SpeedchartKey == "" {
				rows = append(rows, []string{
					RecordDistribution,          // A. Record Indicator (1 char)
					fund.GLUnit,                 // B. GL Business Unit (5 chars)
					strconv.Itoa(line.Quantity), // C. Quantity (11.4 length)
					FormatAmount(merchandise),   // D. Merchandise Amount (23.3 length)
					fund.AccountCode,            // E. Account (10 chars)
					fund.FundCode,               // F. Fund (5 chars)
					fund.DeptID,                 // G. Department (10 chars)
					fund.ProgramCode,            // H. Program Code (5 chars)
					fund.ClassCode,              // I. Class (5 chars)
					fund.ProjectID,              // J. Project ID (15 chars)
				})
			}
		}
	}

	return rows
}

// interfaceMerchandise is the line price, except when the line splits
// across multiple funds and the invoice carries no freight or overhead,
// in which case the fund's own amount is used instead.
func (inv *Invoice) interfaceMerchandise(line *InvoiceLine, fund *Fund) decimal.Decimal {
	if len(line.Funds) > 1 && inv.FreightAmt.IsZero() && inv.effectiveOverhead().IsZero() {
		return fund.Amount
	}
	return line.Price
}

func unitPrice(merchandise decimal.Decimal, quantity int) decimal.Decimal {
	if quantity == 0 {
		return merchandise
	}
	return merchandise.Div(decimal.NewFromInt(int64(quantity)))
}
