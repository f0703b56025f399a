// Package taxes estimates self-employment tax owed on gig income.
package taxes

import (
	"strings"

	"github.com/shopspring/decimal"

	"gigflow.io/ledger/models"
)

// DefaultTaxPercentage applies when neither the gig nor the user carries a
// rate. Roughly self-employment tax plus a low federal bracket.
const DefaultTaxPercentage int32 = 23

var oneHundred = decimal.NewFromInt(100)

// Estimate is the tax picture for a single gig.
type Estimate struct {
	Income    decimal.Decimal `json:"income"`
	TaxRate   int32           `json:"tax_rate"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
}

// CalculateGigTax computes income and owed tax for one gig.
//
// The rate resolution order matters: a gig-level rate wins even when it is
// zero, because 0% is how users mark cash income that will not be reported.
// Only a nil gig rate falls back to the user default, then to
// DefaultTaxPercentage.
func CalculateGigTax(gig *models.Gig, user *models.User) Estimate {

	income := parseAmount(gig.ActualPay).Add(parseAmount(gig.Tips))

	rate := DefaultTaxPercentage
	switch {
	case gig.TaxPercentage != nil:
		rate = *gig.TaxPercentage
	case user != nil && user.DefaultTaxPercentage != nil:
		rate = *user.DefaultTaxPercentage
	}

	return Estimate{
		Income:    income,
		TaxRate:   rate,
		TaxAmount: income.Mul(decimal.NewFromInt(int64(rate))).Div(oneHundred),
	}
}

// CalculateTotalTaxEstimate sums the owed tax across a collection of gigs.
// An empty collection yields zero.
func CalculateTotalTaxEstimate(gigs []*models.Gig, user *models.User) decimal.Decimal {

	total := decimal.Zero
	for _, gig := range gigs {
		total = total.Add(CalculateGigTax(gig, user).TaxAmount)
	}

	return total
}

// parseAmount coerces a nullable decimal string to a value. Anything that
// does not parse is treated as zero, never as an error.
func parseAmount(s *string) decimal.Decimal {

	if s == nil {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(strings.TrimSpace(*s))
	if err != nil {
		return decimal.Zero
	}

	return d
}
