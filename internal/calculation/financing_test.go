package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finnav/finnav/internal/domain"
	"github.com/finnav/finnav/internal/finmath"
)

// ltvInput builds an input with no ancillary costs and income high enough to
// keep DSTI green, so the LTV classification can be exercised in isolation.
func ltvInput(price, equity int64) FinancingInput {
	return FinancingInput{
		PurchasePrice:    decimal.NewFromInt(price),
		AncillaryItems:   []finmath.CostItem{},
		Equity:           decimal.NewFromInt(equity),
		NetIncomeMonthly: decimal.NewFromInt(1000000),
		TermYears:        30,
	}
}

func TestCalculateFinancing(t *testing.T) {
	t.Run("ancillary costs feed the loan amount", func(t *testing.T) {
		in := FinancingInput{
			PurchasePrice: decimal.NewFromInt(300000),
			AncillaryItems: []finmath.CostItem{
				{ID: "transfer_tax", Value: decimal.NewFromFloat(3.5), Kind: finmath.CostPercent, Active: true},
				{ID: "notary", Value: decimal.NewFromInt(2500), Kind: finmath.CostFixed, Active: true},
			},
			Equity:           decimal.NewFromInt(50000),
			EquityWork:       decimal.NewFromInt(10000),
			NetIncomeMonthly: decimal.NewFromInt(4000),
			TermYears:        30,
		}

		res := CalculateFinancing(in)

		// 300000 + 10500 + 2500 - 60000 = 253000.
		assert.True(t, res.AncillaryCosts.Total.Equal(decimal.NewFromInt(13000)))
		assert.True(t, res.LoanAmount.Equal(decimal.NewFromInt(253000)), "Got %s", res.LoanAmount)
	})

	t.Run("ltv boundary classification", func(t *testing.T) {
		tests := []struct {
			name   string
			equity int64
			want   domain.Status
		}{
			{"exactly 90 percent is green", 10000, domain.StatusGreen},  // loan 90000 / 100000
			{"just above 90 percent is yellow", 9990, domain.StatusYellow}, // loan 90010
			{"exactly 95 percent is yellow", 5000, domain.StatusYellow}, // loan 95000
			{"just above 95 percent is red", 4990, domain.StatusRed},    // loan 95010
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				res := CalculateFinancing(ltvInput(100000, tt.equity))
				assert.Equal(t, tt.want, res.KIMCheck.LTVStatus)
			})
		}
	})

	t.Run("dsti classification includes existing debt", func(t *testing.T) {
		in := ltvInput(100000, 50000)
		// Loan 50000 at default rates is a small payment; existing debt drives DSTI.
		in.NetIncomeMonthly = decimal.NewFromInt(1000)
		in.ExistingDebtMonthly = decimal.NewFromInt(500)

		res := CalculateFinancing(in)

		assert.Equal(t, domain.StatusRed, res.KIMCheck.DSTIPrimaryStatus)
		assert.Equal(t, domain.StatusRed, res.Assessment)
	})

	t.Run("term classification is two state", func(t *testing.T) {
		in := ltvInput(100000, 50000)
		in.TermYears = 35
		assert.Equal(t, domain.StatusGreen, CalculateFinancing(in).KIMCheck.TermStatus)

		in.TermYears = 36
		assert.Equal(t, domain.StatusRed, CalculateFinancing(in).KIMCheck.TermStatus)
	})

	t.Run("stress scenario pushes green to yellow only", func(t *testing.T) {
		in := FinancingInput{
			PurchasePrice:    decimal.NewFromInt(1000000),
			AncillaryItems:   []finmath.CostItem{},
			Equity:           decimal.NewFromInt(900000),
			NetIncomeMonthly: decimal.NewFromInt(810),
			TermYears:        30,
			PrimaryRate:      decimal.NewFromFloat(0.01),
			StressRate:       decimal.NewFromFloat(0.15),
		}

		res := CalculateFinancing(in)

		assert.Equal(t, domain.StatusGreen, res.KIMCheck.LTVStatus)
		assert.Equal(t, domain.StatusGreen, res.KIMCheck.DSTIPrimaryStatus)
		assert.Equal(t, domain.StatusRed, res.KIMCheck.DSTIStressStatus)
		assert.Equal(t, domain.StatusYellow, res.Assessment, "Red stress DSTI should upgrade green to yellow")
	})

	t.Run("stress scenario does not demote red further", func(t *testing.T) {
		in := ltvInput(100000, 0)
		in.AncillaryItems = []finmath.CostItem{{ID: "big", Value: decimal.NewFromInt(50), Kind: finmath.CostPercent, Active: true}}

		res := CalculateFinancing(in)

		assert.Equal(t, domain.StatusRed, res.KIMCheck.LTVStatus)
		assert.Equal(t, domain.StatusRed, res.Assessment)
	})

	t.Run("scenario payments are monotonic in rate", func(t *testing.T) {
		in := ltvInput(400000, 100000)
		in.PrimaryRate = decimal.NewFromFloat(0.035)
		in.StressRate = decimal.NewFromFloat(0.045)

		res := CalculateFinancing(in)

		assert.True(t, res.Stress.PaymentMonthly.GreaterThanOrEqual(res.Primary.PaymentMonthly),
			"Stress payment %s should be at least primary payment %s", res.Stress.PaymentMonthly, res.Primary.PaymentMonthly)
		assert.True(t, res.Stress.DSTI.GreaterThanOrEqual(res.Primary.DSTI))
	})

	t.Run("equity covering all costs needs no financing", func(t *testing.T) {
		in := ltvInput(100000, 200000)

		res := CalculateFinancing(in)

		assert.True(t, res.LoanAmount.IsZero())
		assert.True(t, res.Primary.PaymentMonthly.IsZero())
		assert.True(t, res.Stress.PaymentMonthly.IsZero())
		assert.True(t, res.LTV.IsZero())
		assert.Contains(t, res.Summary, "no financing is needed")
	})

	t.Run("defaults", func(t *testing.T) {
		in := FinancingInput{
			PurchasePrice:    decimal.NewFromInt(300000),
			Equity:           decimal.NewFromInt(50000),
			NetIncomeMonthly: decimal.NewFromInt(3000),
		}

		res := CalculateFinancing(in)

		assert.Equal(t, DefaultTermYears, res.TermYears)
		assert.True(t, res.Primary.InterestPA.Equal(DefaultPrimaryRate))
		assert.True(t, res.Stress.InterestPA.Equal(DefaultStressRate))
		assert.Len(t, res.AncillaryCosts.Items, 7, "Default ancillary cost positions should be applied")
	})

	t.Run("total repayment matches payment times months", func(t *testing.T) {
		res := CalculateFinancing(ltvInput(300000, 60000))

		months := decimal.NewFromInt(int64(res.TermYears) * 12)
		expected := res.Primary.PaymentMonthly.Mul(months)
		// TotalRepayment is rounded from the unrounded payment, so allow the
		// accumulated rounding difference of up to half a euro per month.
		diff := res.Primary.TotalRepayment.Sub(expected).Abs()
		assert.True(t, diff.LessThanOrEqual(months.Div(decimal.NewFromInt(2))),
			"Total repayment %s should be close to %s", res.Primary.TotalRepayment, expected)
	})
}
