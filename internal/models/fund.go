package models

import (
	"strings"

	"calstate/alma-voucher/internal/config"
	"calstate/alma-voucher/internal/xmlutils"

	"github.com/shopspring/decimal"
	xmlpath "github.com/masterzen/xmlpath"
)

// Fund is one fund allocation on an invoice line: an amount plus GL
// coding decoded from the fund's external id field. The coding is
// mutually exclusive: either a speedchart key or a chartfield tuple,
// never both.
type Fund struct {
	Amount decimal.Decimal

	// Single-character identifier from the external id field, plus the
	// PeopleSoft business unit code it resolves to.
	BusinessUnitID   string
	BusinessUnitName string

	GLUnit string

	SpeedchartKey string

	AccountCode string
	FundCode    string
	DeptID      string
	ProgramCode string
	ClassCode   string
	ProjectID   string
}

// NewFund builds a fund record from a fund_info subtree. An absent
// external id leaves all coding fields unset.
func NewFund(node *xmlpath.Node, cfg *config.Campus) *Fund {
	f := &Fund{}

	amount, _ := xmlutils.Field(node, "amount/sum")
	f.Amount = ParseAmount(amount)

	if externalID, ok := xmlutils.Field(node, "external_id"); ok {
		f.decodeExternalID(externalID, cfg)
	}

	return f
}

// decodeExternalID decodes the space-delimited external id field, which
// jointly encodes an optional business unit identifier and either a
// speedchart key or chartfield values. See the external id field layout
// in the documentation for more information.
//
// This is a pure function of (tokens, policy flags, business unit list).
func (f *Fund) decodeExternalID(externalID string, cfg *config.Campus) {
	tokens := strings.Split(externalID, " ")

	switch {
	case cfg.MultipleBusinessUnits && len(tokens[0]) == 1:
		f.BusinessUnitID = tokens[0]

		if name, ok := cfg.BusinessUnitName(f.BusinessUnitID); ok {
			f.BusinessUnitName = name
			if cfg.PopulateGLUnit {
				f.GLUnit = name
			}
		}

	case !cfg.MultipleBusinessUnits && cfg.PopulateGLUnit && len(tokens[0]) != 1:
		// Only a single business unit in use by the library and no
		// identifier inserted into the external id field. Prepend an
		// empty token so the speedchart key or chartfield values below
		// are pulled from the right positions.
		tokens = append([]string{""}, tokens...)

		if len(cfg.BusinessUnits) > 0 {
			f.GLUnit = cfg.BusinessUnits[0].Name
		}

	default:
		// No business unit identifier; realign positions as above.
		tokens = append([]string{""}, tokens...)
	}

	if len(tokens) == 2 {
		f.SpeedchartKey = tokens[1]
		return
	}

	// Chartfield codes: a fixed positional window, each field
	// independently optional.
	chartfields := []*string{
		&f.AccountCode,
		&f.FundCode,
		&f.DeptID,
		&f.ProgramCode,
		&f.ClassCode,
		&f.ProjectID,
	}
	for i, field := range chartfields {
		if i+1 < len(tokens) {
			*field = tokens[i+1]
		}
	}
}
