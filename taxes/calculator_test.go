package taxes

import (
	"testing"

	"github.com/shopspring/decimal"

	"gigflow.io/ledger/models"
)

func strPtr(s string) *string { return &s }
func i32Ptr(v int32) *int32   { return &v }

func TestCalculateGigTax_ZeroRateIsPreserved(t *testing.T) {
	gig := &models.Gig{
		ActualPay:     strPtr("100"),
		Tips:          strPtr("20"),
		TaxPercentage: i32Ptr(0),
	}
	user := &models.User{DefaultTaxPercentage: i32Ptr(25)}

	est := CalculateGigTax(gig, user)

	if est.TaxRate != 0 {
		t.Errorf("expected tax rate 0, got %d", est.TaxRate)
	}
	if !est.TaxAmount.IsZero() {
		t.Errorf("expected tax amount 0, got %s", est.TaxAmount)
	}
	if !est.Income.Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected income 120, got %s", est.Income)
	}
}

func TestCalculateGigTax_NilRateFallsBackToUserDefault(t *testing.T) {
	gig := &models.Gig{ActualPay: strPtr("50"), Tips: strPtr("5")}
	user := &models.User{DefaultTaxPercentage: i32Ptr(20)}

	est := CalculateGigTax(gig, user)

	if est.TaxRate != 20 {
		t.Errorf("expected tax rate 20, got %d", est.TaxRate)
	}
	if !est.TaxAmount.Equal(decimal.NewFromInt(11)) {
		t.Errorf("expected tax amount 11, got %s", est.TaxAmount)
	}
}

func TestCalculateGigTax_NilRateAndNoUserDefault(t *testing.T) {
	gig := &models.Gig{ActualPay: strPtr("100")}

	for _, user := range []*models.User{nil, {}} {
		est := CalculateGigTax(gig, user)
		if est.TaxRate != DefaultTaxPercentage {
			t.Errorf("expected default rate %d, got %d", DefaultTaxPercentage, est.TaxRate)
		}
		if !est.TaxAmount.Equal(decimal.NewFromInt(23)) {
			t.Errorf("expected tax amount 23, got %s", est.TaxAmount)
		}
	}
}

func TestCalculateGigTax_CoercesBadInput(t *testing.T) {
	tests := []struct {
		name string
		pay  *string
		tips *string
		want string
	}{
		{"both nil", nil, nil, "0"},
		{"non-numeric pay", strPtr("abc"), strPtr("5"), "5"},
		{"empty strings", strPtr(""), strPtr(""), "0"},
		{"whitespace", strPtr(" 12.50 "), nil, "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gig := &models.Gig{ActualPay: tt.pay, Tips: tt.tips, TaxPercentage: i32Ptr(10)}
			est := CalculateGigTax(gig, &models.User{})

			want, _ := decimal.NewFromString(tt.want)
			if !est.Income.Equal(want) {
				t.Errorf("expected income %s, got %s", want, est.Income)
			}
		})
	}
}

func TestCalculateTotalTaxEstimate(t *testing.T) {
	user := &models.User{DefaultTaxPercentage: i32Ptr(20)}

	if total := CalculateTotalTaxEstimate(nil, user); !total.IsZero() {
		t.Errorf("expected 0 for empty collection, got %s", total)
	}

	gigs := []*models.Gig{
		{ActualPay: strPtr("100"), Tips: strPtr("0"), TaxPercentage: i32Ptr(10)},
		{ActualPay: strPtr("50"), Tips: strPtr("5")},
	}

	// 100*0.10 + 55*0.20 = 10 + 11 = 21
	total := CalculateTotalTaxEstimate(gigs, user)
	if !total.Equal(decimal.NewFromInt(21)) {
		t.Errorf("expected total 21, got %s", total)
	}
}
