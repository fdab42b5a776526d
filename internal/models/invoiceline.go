package models

import (
	"calstate/alma-voucher/internal/config"
	"calstate/alma-voucher/internal/xmlutils"

	"github.com/shopspring/decimal"
	xmlpath "github.com/masterzen/xmlpath"
)

// InvoiceLine is one billable invoice line with its fund allocations.
type InvoiceLine struct {
	LineNum    int
	Quantity   int
	Price      decimal.Decimal
	TotalPrice decimal.Decimal

	// Description carries the Alma line type; the AP voucher formats
	// display it as the voucher line description.
	Description string

	// SUTApplicability is identical for every line of an invoice: it is
	// derived from the invoice-level tax amount, not from line data.
	SUTApplicability string

	// ShipTo is resolved against the campus configuration at
	// construction time.
	ShipTo string

	Funds []*Fund
}

// NewInvoiceLine builds a line record from an invoice_line subtree.
// taxAmt is the invoice-level tax amount, which determines the sales/use
// tax flag for every line.
func NewInvoiceLine(node *xmlpath.Node, cfg *config.Campus, taxAmt decimal.Decimal) *InvoiceLine {
	l := &InvoiceLine{}

	lineNum, _ := xmlutils.Field(node, "line_number")
	l.LineNum = ParseCount(lineNum)

	quantity, _ := xmlutils.Field(node, "quantity")
	l.Quantity = ParseCount(quantity)

	price, _ := xmlutils.Field(node, "price")
	l.Price = ParseAmount(price)

	totalPrice, _ := xmlutils.Field(node, "total_price")
	l.TotalPrice = ParseAmount(totalPrice)

	l.Description, _ = xmlutils.Field(node, "line_type")

	l.SUTApplicability = sutApplicability(taxAmt)
	l.ShipTo = cfg.ShipTo(l.SUTApplicability)

	for _, fundNode := range xmlutils.Nodes(node, "fund_info_list/fund_info") {
		l.Funds = append(l.Funds, NewFund(fundNode, cfg))
	}

	return l
}

// sutApplicability returns the sales/use tax flag for an invoice with
// the given invoice-level tax amount.
func sutApplicability(taxAmt decimal.Decimal) string {
	if taxAmt.GreaterThan(decimal.Zero) {
		return SUTSales
	}
	return SUTExempt
}
