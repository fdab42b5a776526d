// Package models holds the invoice, line and fund records parsed from an
// Alma invoice export, plus the PeopleSoft voucher layout renderers.
//
// All three record types are built once from their XML subtree and a
// read-only configuration snapshot, and are immutable afterwards.
// Transforming distinct invoices is a pure function of (subtree, config),
// so callers may process invoices in parallel as long as the
// configuration is not mutated mid-pass.
package models

// Alma invoice line types relevant to voucher conversion.
const (
	LineTypeRegular  = "REGULAR"
	LineTypeDiscount = "DISCOUNT"
	LineTypeShipment = "SHIPMENT"
)

// Sales/use tax applicability flags.
const (
	SUTSales  = "S"
	SUTUse    = "U"
	SUTExempt = "E"
)

// TaxTypeLineExclusive marks invoices whose line totals exclude tax.
const TaxTypeLineExclusive = "LINEEXCLUSIVE"

// Record indicators for the AP voucher interface layout.
const (
	RecordHeader       = "H"
	RecordLine         = "L"
	RecordDistribution = "D"
)
