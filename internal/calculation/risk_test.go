package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finnav/finnav/internal/domain"
)

func baseRiskInput() RiskInput {
	return RiskInput{
		NetIncomeMonthly:     decimal.NewFromInt(3000),
		FixedCostsMonthly:    decimal.NewFromInt(1200),
		DebtPaymentsMonthly:  decimal.NewFromInt(300),
		VariableCostsMonthly: decimal.NewFromInt(500),
		Savings:              decimal.NewFromInt(10000),
		QuickInvestments:     decimal.NewFromInt(2000),
		ShockMonths:          6,
		SupportMonthly:       decimal.NewFromInt(1500),
		IncomeProtection:     domain.AnswerUnknown,
	}
}

func TestCalculateRisk(t *testing.T) {
	t.Run("burn and runway", func(t *testing.T) {
		res := CalculateRisk(baseRiskInput())

		// Burn 2000, reserves 12000, runway 6.0.
		assert.True(t, res.MonthlyBurn.Equal(decimal.NewFromInt(2000)))
		assert.True(t, res.LiquidReserves.Equal(decimal.NewFromInt(12000)))
		assert.True(t, res.RunwayMonths.Equal(decimal.NewFromInt(6)), "Got %s", res.RunwayMonths)
	})

	t.Run("shock arithmetic", func(t *testing.T) {
		res := CalculateRisk(baseRiskInput())

		// Deficit 2000-1500=500, need 500*6=3000, reserves cover it.
		assert.True(t, res.ShockDeficitMonthly.Equal(decimal.NewFromInt(500)))
		assert.True(t, res.TotalShockNeed.Equal(decimal.NewFromInt(3000)))
		assert.True(t, res.GapToSafety.IsZero())
		assert.Equal(t, domain.StatusGreen, res.Assessment)
	})

	t.Run("zero burn uses sentinel runway", func(t *testing.T) {
		in := baseRiskInput()
		in.FixedCostsMonthly = decimal.Zero
		in.DebtPaymentsMonthly = decimal.Zero
		in.VariableCostsMonthly = decimal.Zero

		res := CalculateRisk(in)

		assert.True(t, res.RunwayMonths.Equal(RunwaySentinel), "Zero burn must not divide, got %s", res.RunwayMonths)
		assert.Equal(t, domain.StatusGreen, res.Assessment, "Unbounded runway with no deficit is green")
	})

	t.Run("short runway is red", func(t *testing.T) {
		in := baseRiskInput()
		in.Savings = decimal.NewFromInt(4000)
		in.QuickInvestments = decimal.Zero

		res := CalculateRisk(in)

		// Runway 2.0 months.
		assert.True(t, res.RunwayMonths.LessThan(decimal.NewFromInt(3)))
		assert.Equal(t, domain.StatusRed, res.Assessment)
	})

	t.Run("uncovered shock gap is red even with decent runway", func(t *testing.T) {
		in := baseRiskInput()
		in.SupportMonthly = decimal.Zero
		in.ShockMonths = 12
		// Reserves 12000, runway 6.0, but 12-month need is 24000.
		res := CalculateRisk(in)

		assert.True(t, res.GapToSafety.Equal(decimal.NewFromInt(12000)))
		assert.Equal(t, domain.StatusRed, res.Assessment)
	})

	t.Run("runway below six months is yellow", func(t *testing.T) {
		in := baseRiskInput()
		in.Savings = decimal.NewFromInt(8000)
		in.QuickInvestments = decimal.Zero
		in.ShockMonths = 3
		// Runway 4.0, 3-month need 1500 covered by 8000.
		res := CalculateRisk(in)

		assert.True(t, res.RunwayMonths.Equal(decimal.NewFromInt(4)))
		assert.Equal(t, domain.StatusYellow, res.Assessment)
	})

	t.Run("runway rounds to one decimal", func(t *testing.T) {
		in := baseRiskInput()
		in.Savings = decimal.NewFromInt(10000)
		in.QuickInvestments = decimal.NewFromInt(333)

		res := CalculateRisk(in)

		// 10333 / 2000 = 5.1665 → 5.2.
		assert.True(t, res.RunwayMonths.Equal(decimal.NewFromFloat(5.2)), "Got %s", res.RunwayMonths)
	})

	t.Run("missing income protection extends the summary", func(t *testing.T) {
		in := baseRiskInput()
		in.IncomeProtection = domain.AnswerNo

		res := CalculateRisk(in)

		assert.Contains(t, res.Summary, "income protection")
	})

	t.Run("defaults", func(t *testing.T) {
		res := CalculateRisk(RiskInput{Savings: decimal.NewFromInt(1000)})

		assert.Equal(t, 6, res.ShockMonths)
		assert.Equal(t, domain.AnswerUnknown, res.IncomeProtection)
	})
}

func TestValidShockMonths(t *testing.T) {
	assert.True(t, ValidShockMonths(3))
	assert.True(t, ValidShockMonths(6))
	assert.True(t, ValidShockMonths(12))
	assert.False(t, ValidShockMonths(0))
	assert.False(t, ValidShockMonths(9))
}
