package models

import (
	"sort"
	"strings"
	"time"

	"calstate/alma-voucher/internal/config"
	"calstate/alma-voucher/internal/dateutils"
	"calstate/alma-voucher/internal/xmlutils"

	"github.com/shopspring/decimal"
	xmlpath "github.com/masterzen/xmlpath"
)

// Invoice is one Alma invoice mapped to the fields the AP voucher
// formats need, with its filtered and ordered invoice lines.
type Invoice struct {
	InvoiceID        string
	InvoiceDate      string
	VendorID         string
	VendorAddrSeqNum string
	AccountingDate   string
	UnitOfMeasure    string

	GrossAmt decimal.Decimal
	TaxAmt   decimal.Decimal
	TaxType  string

	// OverheadAmt feeds the misc charge column. When the discount
	// policy resolves to zero, OverheadBlank marks the column as blank
	// on output rather than 0.00.
	OverheadAmt   decimal.Decimal
	OverheadBlank bool

	MiscChrgAmt decimal.Decimal
	FreightAmt  decimal.Decimal

	// MerchandiseAmt is the invoice-level merchandise amount:
	// gross - tax - freight - overhead, computed after any overrides.
	MerchandiseAmt decimal.Decimal

	Lines []*InvoiceLine

	cfg *config.Campus
}

// NewInvoice builds an invoice record from an invoice subtree, the
// campus configuration snapshot and the processing timestamp.
func NewInvoice(node *xmlpath.Node, cfg *config.Campus, timestamp time.Time) *Invoice {
	inv := &Invoice{cfg: cfg}

	inv.InvoiceID, _ = xmlutils.Field(node, "invoice_number")

	gross, _ := xmlutils.Field(node, "invoice_amount/sum")
	inv.GrossAmt = ParseAmount(gross)

	tax, _ := xmlutils.Field(node, "vat_info/vat_amount")
	inv.TaxAmt = ParseAmount(tax)
	inv.TaxType, _ = xmlutils.Field(node, "vat_info/vat_type")

	overhead, _ := xmlutils.Field(node, "additional_charges/overhead_amount")
	inv.OverheadAmt = ParseAmount(overhead)

	misc, _ := xmlutils.Field(node, "additional_charges/insurance_amount")
	inv.MiscChrgAmt = ParseAmount(misc)

	inv.AccountingDate = timestamp.Format(cfg.AccountingFormat)
	inv.UnitOfMeasure = cfg.UnitOfMeasure
	inv.InvoiceDate = invoiceDate(node, cfg)

	vendorCode, _ := xmlutils.Field(node, "vendor_FinancialSys_Code")
	inv.VendorID, inv.VendorAddrSeqNum = splitVendorCode(vendorCode)

	inv.applyDiscountPolicy(node)
	inv.applyFreightPolicy(node)

	inv.MerchandiseAmt = inv.GrossAmt.
		Sub(inv.TaxAmt).
		Sub(inv.FreightAmt).
		Sub(inv.effectiveOverhead())

	inv.buildLines(node)

	return inv
}

// invoiceDate returns the invoice date, reformatted for the interface
// layout: per invoice_date_format when one is configured, otherwise with
// slashes stripped.
func invoiceDate(node *xmlpath.Node, cfg *config.Campus) string {
	date, _ := xmlutils.Field(node, "invoice_date")

	if cfg.VoucherLayout != config.LayoutInterface {
		return date
	}

	if cfg.InvoiceDateFormat == "" {
		return strings.ReplaceAll(date, "/", "")
	}

	parsed, err := dateutils.ParseDate(date)
	if err != nil {
		return date
	}
	return parsed.Format(cfg.InvoiceDateFormat)
}

// splitVendorCode splits the combined vendor financial system code into
// the vendor id and the address sequence number. Without a hyphen the
// whole value is the vendor id and the sequence number stays unset.
func splitVendorCode(code string) (vendorID, addrSeqNum string) {
	if !strings.Contains(code, "-") {
		return code, ""
	}

	parts := strings.Split(code, "-")
	return parts[0], parts[1]
}

// applyDiscountPolicy overrides the overhead amount with the sign-negated
// price of the DISCOUNT line when the campus carries discounts as invoice
// lines. A zero or absent discount blanks the column entirely.
func (inv *Invoice) applyDiscountPolicy(node *xmlpath.Node) {
	if !inv.cfg.DiscountInInvoiceLine {
		return
	}

	price, _ := xmlutils.Field(node,
		"invoice_line_list/invoice_line[line_type='"+LineTypeDiscount+"']/price")
	discount := ParseAmount(price)

	if discount.IsZero() {
		inv.OverheadAmt = decimal.Zero
		inv.OverheadBlank = true
		return
	}

	inv.OverheadAmt = discount.Neg()
	inv.OverheadBlank = false
}

// applyFreightPolicy sets the freight amount from the additional charges
// field, or from the SHIPMENT line when the campus carries shipping as an
// invoice line. Line-exclusive tax invoices use the line price rather
// than the total price.
func (inv *Invoice) applyFreightPolicy(node *xmlpath.Node) {
	freight, _ := xmlutils.Field(node, "additional_charges/shipment_amount")
	inv.FreightAmt = ParseAmount(freight)

	if !inv.cfg.ShipmentInInvoiceLine {
		return
	}

	path := "invoice_line_list/invoice_line[line_type='" + LineTypeShipment + "']/total_price"
	if inv.TaxType == TaxTypeLineExclusive {
		path = "invoice_line_list/invoice_line[line_type='" + LineTypeShipment + "']/price"
	}

	value, _ := xmlutils.Field(node, path)
	inv.FreightAmt = ParseAmount(value)
}

// effectiveOverhead is the overhead amount entering arithmetic; a
// blanked column counts as zero.
func (inv *Invoice) effectiveOverhead() decimal.Decimal {
	if inv.OverheadBlank {
		return decimal.Zero
	}
	return inv.OverheadAmt
}

// buildLines gathers every line subtree across all line list groups,
// sorts them ascending by line number and keeps only allowed line types.
// Certain line types are placeholders and can be safely ignored.
func (inv *Invoice) buildLines(node *xmlpath.Node) {
	lineNodes := xmlutils.Nodes(node, "invoice_line_list/invoice_line")

	sort.SliceStable(lineNodes, func(i, j int) bool {
		return lineNumber(lineNodes[i]) < lineNumber(lineNodes[j])
	})

	allowed := make(map[string]bool)
	for _, lineType := range inv.cfg.AllowedLineTypes() {
		allowed[lineType] = true
	}

	for _, lineNode := range lineNodes {
		lineType, _ := xmlutils.Field(lineNode, "line_type")
		if !allowed[lineType] {
			continue
		}
		inv.Lines = append(inv.Lines, NewInvoiceLine(lineNode, inv.cfg, inv.TaxAmt))
	}
}

func lineNumber(node *xmlpath.Node) int {
	value, _ := xmlutils.Field(node, "line_number")
	return ParseCount(value)
}

// BusinessUnitName scans lines in order, then funds within each line,
// and returns the resolved business unit name for the first fund whose
// business unit id is set. Used for output file naming.
func (inv *Invoice) BusinessUnitName() (string, bool) {
	for _, line := range inv.Lines {
		for _, fund := range line.Funds {
			if fund.BusinessUnitID != "" {
				return fund.BusinessUnitName, fund.BusinessUnitName != ""
			}
		}
	}
	return "", false
}
