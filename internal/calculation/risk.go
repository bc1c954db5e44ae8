package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finnav/finnav/internal/domain"
)

// RunwaySentinel is the runway value reported when the monthly burn is zero
// or negative: reserves last effectively forever.
var RunwaySentinel = decimal.NewFromInt(999)

// ShockDurations lists the selectable income-shock scenarios in months.
var ShockDurations = []int{3, 6, 12}

// ValidShockMonths reports whether months is one of the offered durations.
func ValidShockMonths(months int) bool {
	for _, m := range ShockDurations {
		if m == months {
			return true
		}
	}
	return false
}

// RiskInput holds the wizard answers feeding the income-shock runway check.
type RiskInput struct {
	NetIncomeMonthly     decimal.Decimal `yaml:"net_income_monthly" json:"net_income_monthly"`
	FixedCostsMonthly    decimal.Decimal `yaml:"fixed_costs_monthly" json:"fixed_costs_monthly"`
	DebtPaymentsMonthly  decimal.Decimal `yaml:"debt_payments_monthly" json:"debt_payments_monthly"`
	VariableCostsMonthly decimal.Decimal `yaml:"variable_costs_monthly" json:"variable_costs_monthly"`
	Savings              decimal.Decimal `yaml:"savings" json:"savings"`
	QuickInvestments     decimal.Decimal `yaml:"quick_investments" json:"quick_investments"`
	ShockMonths          int             `yaml:"shock_months" json:"shock_months"`
	SupportMonthly       decimal.Decimal `yaml:"support_monthly" json:"support_monthly"`
	IncomeProtection     domain.TriState `yaml:"income_protection" json:"income_protection"`
}

// ApplyDefaults fills unset fields with the calculator defaults.
func (in *RiskInput) ApplyDefaults() {
	if in.ShockMonths == 0 {
		in.ShockMonths = 6
	}
	if in.IncomeProtection == "" {
		in.IncomeProtection = domain.AnswerUnknown
	}
}

// CalculateRisk runs the runway and income-shock analysis.
func CalculateRisk(in RiskInput) domain.RiskResult {
	in.ApplyDefaults()

	burn := in.FixedCostsMonthly.Add(in.DebtPaymentsMonthly).Add(in.VariableCostsMonthly)
	reserves := in.Savings.Add(in.QuickInvestments)

	runway := RunwaySentinel
	if burn.GreaterThan(decimal.Zero) {
		runway = reserves.Div(burn).Round(1)
	}

	deficit := decimal.Max(decimal.Zero, burn.Sub(in.SupportMonthly))
	totalNeed := deficit.Mul(decimal.NewFromInt(int64(in.ShockMonths)))
	gapToSafety := decimal.Max(decimal.Zero, totalNeed.Sub(reserves))

	assessment := domain.StatusGreen
	if runway.LessThan(decimal.NewFromInt(3)) || gapToSafety.GreaterThan(decimal.Zero) {
		assessment = domain.StatusRed
	} else if runway.LessThan(decimal.NewFromInt(6)) {
		assessment = domain.StatusYellow
	}

	return domain.RiskResult{
		NetIncomeMonthly:     in.NetIncomeMonthly,
		FixedCostsMonthly:    in.FixedCostsMonthly,
		DebtPaymentsMonthly:  in.DebtPaymentsMonthly,
		VariableCostsMonthly: in.VariableCostsMonthly,
		MonthlyBurn:          burn,
		Savings:              in.Savings,
		QuickInvestments:     in.QuickInvestments,
		LiquidReserves:       reserves,
		RunwayMonths:         runway,
		ShockMonths:          in.ShockMonths,
		SupportMonthly:       in.SupportMonthly,
		ShockDeficitMonthly:  deficit,
		TotalShockNeed:       totalNeed,
		GapToSafety:          gapToSafety,
		IncomeProtection:     in.IncomeProtection,
		Assessment:           assessment,
		Summary:              riskSummary(assessment, runway, gapToSafety, in.ShockMonths, in.IncomeProtection),
	}
}

func riskSummary(assessment domain.Status, runway, gapToSafety decimal.Decimal, shockMonths int, incomeProtection domain.TriState) string {
	var summary string
	switch assessment {
	case domain.StatusGreen:
		summary = fmt.Sprintf(
			"Very solid! Your reserves last about %s months without income. The selected scenario (%d months) is financially covered.",
			runway.StringFixed(1), shockMonths)
	case domain.StatusYellow:
		summary = fmt.Sprintf(
			"You have some buffer (%s months), but longer outages will get tight. About %s € are missing to fully cover the %d-month scenario.",
			runway.StringFixed(1), gapToSafety.StringFixed(0), shockMonths)
	default:
		summary = fmt.Sprintf(
			"Critical: your reserves only cover about %s months. A %d-month income outage leaves a gap of %s €.",
			runway.StringFixed(1), shockMonths, gapToSafety.StringFixed(0))
	}
	if incomeProtection == domain.AnswerNo {
		summary += " Without income protection insurance you carry the risk of long-term outages alone."
	}
	return summary
}
