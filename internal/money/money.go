// Package money holds the document totals arithmetic. Everything here is
// pure and full precision; rounding to two places happens only when a value
// is formatted for display or export.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Totals is the computed footer of a document.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal returns quantity * unitPrice.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// ParseAmount parses a user-entered numeric string. Parse failures coerce to
// zero rather than erroring, matching how the entry forms treat bad input.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DocumentTotals sums item totals and applies the document-level tax
// percentage (e.g. 16 for 16%). An empty item list yields all zeros.
func DocumentTotals(lineTotals []decimal.Decimal, taxPercentage decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, lt := range lineTotals {
		subtotal = subtotal.Add(lt)
	}
	tax := subtotal.Mul(taxPercentage).Div(hundred)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
