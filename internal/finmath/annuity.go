// Package finmath provides the reusable numeric primitives shared by the
// module calculators: annuity payments, future-value-adjusted savings plans
// and ancillary cost resolution. All arithmetic uses decimals and no formula
// rounds internally; rounding happens at result-assembly boundaries.
package finmath

import "github.com/shopspring/decimal"

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// AnnuityPayment computes the level monthly payment for a fixed-rate
// amortizing loan of the given amount, annual nominal rate (as a fraction,
// e.g. 0.035) and term in years.
//
// A zero rate degrades to straight-line repayment; a non-positive amount
// yields a zero payment.
func AnnuityPayment(amount, annualRate decimal.Decimal, termYears int) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	periods := decimal.NewFromInt(int64(termYears) * 12)
	if periods.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	monthlyRate := annualRate.Div(twelve)
	if monthlyRate.IsZero() {
		return amount.Div(periods)
	}
	growth := one.Add(monthlyRate).Pow(periods)
	return amount.Mul(monthlyRate).Mul(growth).Div(growth.Sub(one))
}

// FutureValue compounds a present lump sum monthly for the given number of
// months at the given annual rate.
func FutureValue(presentValue, annualRate decimal.Decimal, months int) decimal.Decimal {
	monthlyRate := annualRate.Div(twelve)
	return presentValue.Mul(one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(months))))
}

// SavingsPayment computes the monthly contribution needed to reach targetFV
// in the given number of months, crediting the compounded growth of an
// existing lump sum startPV first. When the lump sum already covers the
// target the required contribution is zero.
func SavingsPayment(targetFV, startPV, annualRate decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	remaining := targetFV.Sub(FutureValue(startPV, annualRate, months))
	if remaining.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	monthlyRate := annualRate.Div(twelve)
	if monthlyRate.IsZero() {
		return remaining.Div(decimal.NewFromInt(int64(months)))
	}
	growth := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(months)))
	return remaining.Mul(monthlyRate).Div(growth.Sub(one))
}
