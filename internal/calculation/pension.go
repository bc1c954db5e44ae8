package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finnav/finnav/internal/domain"
	"github.com/finnav/finnav/internal/finmath"
)

// Default assumptions of the pension gap calculator. The replacement rate
// reflects the simplified statutory estimate the funnel works with; it is an
// orientation value, not a legal projection.
var (
	DefaultReplacementRate    = decimal.NewFromFloat(0.60)
	DefaultConservativeReturn = decimal.NewFromFloat(0.03)
	DefaultOptimisticReturn   = decimal.NewFromFloat(0.05)
)

// DefaultPayoutYears is the assumed payout duration when none is given.
const DefaultPayoutYears = 20

// PensionInput holds the wizard answers feeding the pension gap calculation.
type PensionInput struct {
	Age                   int             `yaml:"age" json:"age"`
	NetIncomeMonthly      decimal.Decimal `yaml:"net_income_monthly" json:"net_income_monthly"`
	DesiredPensionMonthly decimal.Decimal `yaml:"desired_pension_monthly" json:"desired_pension_monthly"`
	RetirementAge         int             `yaml:"retirement_age" json:"retirement_age"`
	PartTimeOrCareerBreak bool            `yaml:"part_time_or_career_break" json:"part_time_or_career_break"`
	ReplacementRate       decimal.Decimal `yaml:"replacement_rate" json:"replacement_rate"`
	PayoutYears           int             `yaml:"payout_years" json:"payout_years"`
	CurrentSavingsMonthly decimal.Decimal `yaml:"current_savings_monthly" json:"current_savings_monthly"`
	CurrentCapital        decimal.Decimal `yaml:"current_capital" json:"current_capital"`
	ConservativeReturn    decimal.Decimal `yaml:"conservative_return" json:"conservative_return"`
	OptimisticReturn      decimal.Decimal `yaml:"optimistic_return" json:"optimistic_return"`
}

// ApplyDefaults fills unset assumption fields with the calculator defaults.
// The desired pension defaults to 70% of current net income, matching the
// suggestion the wizard makes.
func (in *PensionInput) ApplyDefaults() {
	if in.ReplacementRate.IsZero() {
		in.ReplacementRate = DefaultReplacementRate
	}
	if in.PayoutYears == 0 {
		in.PayoutYears = DefaultPayoutYears
	}
	if in.RetirementAge == 0 {
		in.RetirementAge = 65
	}
	if in.ConservativeReturn.IsZero() {
		in.ConservativeReturn = DefaultConservativeReturn
	}
	if in.OptimisticReturn.IsZero() {
		in.OptimisticReturn = DefaultOptimisticReturn
	}
	if in.DesiredPensionMonthly.IsZero() && in.NetIncomeMonthly.GreaterThan(decimal.Zero) {
		in.DesiredPensionMonthly = in.NetIncomeMonthly.Mul(decimal.NewFromFloat(0.7)).Round(0)
	}
}

// CalculatePension runs the pension gap projection: statutory estimate, gap,
// capital requirement and the savings effort under both return scenarios.
func CalculatePension(in PensionInput) domain.PensionResult {
	in.ApplyDefaults()

	effectiveRate := in.ReplacementRate
	if in.PartTimeOrCareerBreak {
		effectiveRate = effectiveRate.Mul(decimal.NewFromFloat(0.9))
	}
	statutory := in.NetIncomeMonthly.Mul(effectiveRate).Round(0)

	gap := decimal.Max(decimal.Zero, in.DesiredPensionMonthly.Sub(statutory))

	// The desired pension is treated as already expressed in present
	// purchasing power; the payout phase is not inflation-adjusted.
	capitalNeeded := gap.Mul(decimal.NewFromInt(12)).Mul(decimal.NewFromInt(int64(in.PayoutYears)))

	yearsToRetirement := in.RetirementAge - in.Age
	if yearsToRetirement < 1 {
		yearsToRetirement = 1
	}
	months := yearsToRetirement * 12

	conservative := pensionScenario(in.ConservativeReturn, capitalNeeded, in.CurrentCapital, in.CurrentSavingsMonthly, months)
	optimistic := pensionScenario(in.OptimisticReturn, capitalNeeded, in.CurrentCapital, in.CurrentSavingsMonthly, months)

	return domain.PensionResult{
		DesiredPensionMonthly:     in.DesiredPensionMonthly,
		RetirementAge:             in.RetirementAge,
		ReplacementRate:           effectiveRate,
		PartTimeOrCareerBreak:     in.PartTimeOrCareerBreak,
		EstimatedStatutoryMonthly: statutory,
		GapMonthly:                gap,
		CapitalNeeded:             capitalNeeded,
		YearsToRetirement:         yearsToRetirement,
		CurrentSavingsMonthly:     in.CurrentSavingsMonthly,
		CurrentCapital:            in.CurrentCapital,
		PayoutYears:               in.PayoutYears,
		Conservative:              conservative,
		Optimistic:                optimistic,
		Assessment:                classifyPensionGap(gap, in.DesiredPensionMonthly),
		Summary:                   pensionSummary(gap, capitalNeeded, in.PayoutYears),
	}
}

func pensionScenario(returnPA, capitalNeeded, currentCapital, currentSavings decimal.Decimal, months int) domain.PensionScenario {
	required := finmath.SavingsPayment(capitalNeeded, currentCapital, returnPA, months).Round(0)
	return domain.PensionScenario{
		ReturnPA:        returnPA,
		RequiredMonthly: required,
		ExtraMonthly:    decimal.Max(decimal.Zero, required.Sub(currentSavings)),
	}
}

// classifyPensionGap classifies the gap relative to the desired pension.
// A non-positive target cannot be under-funded, so it classifies green
// instead of dividing by zero.
func classifyPensionGap(gap, desired decimal.Decimal) domain.Status {
	if desired.LessThanOrEqual(decimal.Zero) {
		return domain.StatusGreen
	}
	ratio := gap.Div(desired)
	switch {
	case ratio.GreaterThan(decimal.NewFromFloat(0.25)):
		return domain.StatusRed
	case ratio.GreaterThan(decimal.NewFromFloat(0.10)):
		return domain.StatusYellow
	default:
		return domain.StatusGreen
	}
}

func pensionSummary(gap, capitalNeeded decimal.Decimal, payoutYears int) string {
	if gap.IsZero() {
		return "Excellent! Based on current estimates, the statutory pension covers your target."
	}
	return fmt.Sprintf(
		"A pension gap of about %s € per month is looming. Without private provision you are short roughly %sk € of capital over %d years.",
		gap.StringFixed(0),
		capitalNeeded.Div(decimal.NewFromInt(1000)).StringFixed(1),
		payoutYears,
	)
}
