package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finnav/finnav/internal/domain"
	"github.com/finnav/finnav/internal/finmath"
)

// Default interest assumptions of the financing calculator, as fractions p.a.
var (
	DefaultPrimaryRate = decimal.NewFromFloat(0.035)
	DefaultStressRate  = decimal.NewFromFloat(0.045)
)

// Loan term bounds accepted by the financing calculator.
const (
	MinTermYears     = 5
	MaxTermYears     = 35
	DefaultTermYears = 30
)

// DefaultAncillaryItems returns the closing cost positions the wizard
// pre-fills, modelled on typical Austrian real estate transactions.
func DefaultAncillaryItems() []finmath.CostItem {
	return []finmath.CostItem{
		{ID: "broker", Label: "Broker commission", Value: decimal.NewFromFloat(3.6), Kind: finmath.CostPercent, Active: true},
		{ID: "transfer_tax", Label: "Real estate transfer tax", Value: decimal.NewFromFloat(3.5), Kind: finmath.CostPercent, Active: true},
		{ID: "registration", Label: "Land register entry", Value: decimal.NewFromFloat(1.1), Kind: finmath.CostPercent, Active: true},
		{ID: "notary", Label: "Notary / contract", Value: decimal.NewFromInt(2500), Kind: finmath.CostFixed, Active: true},
		{ID: "bank", Label: "Bank fees / lien", Value: decimal.NewFromFloat(1.2), Kind: finmath.CostPercent, Active: true},
		{ID: "appraisal", Label: "Appraisal", Value: decimal.NewFromInt(400), Kind: finmath.CostFixed, Active: true},
		{ID: "other", Label: "Other / moving", Value: decimal.Zero, Kind: finmath.CostFixed, Active: false},
	}
}

// FinancingInput holds the wizard answers feeding the mortgage affordability
// check. A nil AncillaryItems slice selects the default cost positions.
type FinancingInput struct {
	PurchasePrice       decimal.Decimal    `yaml:"purchase_price" json:"purchase_price"`
	Purpose             string             `yaml:"purpose" json:"purpose"`
	AncillaryItems      []finmath.CostItem `yaml:"ancillary_items" json:"ancillary_items"`
	Equity              decimal.Decimal    `yaml:"equity" json:"equity"`
	EquityWork          decimal.Decimal    `yaml:"equity_work" json:"equity_work"`
	NetIncomeMonthly    decimal.Decimal    `yaml:"net_income_monthly" json:"net_income_monthly"`
	ExistingDebtMonthly decimal.Decimal    `yaml:"existing_debt_monthly" json:"existing_debt_monthly"`
	TermYears           int                `yaml:"term_years" json:"term_years"`
	PrimaryRate         decimal.Decimal    `yaml:"primary_rate" json:"primary_rate"`
	StressRate          decimal.Decimal    `yaml:"stress_rate" json:"stress_rate"`
}

// ApplyDefaults fills unset assumption fields with the calculator defaults.
func (in *FinancingInput) ApplyDefaults() {
	if in.AncillaryItems == nil {
		in.AncillaryItems = DefaultAncillaryItems()
	}
	if in.TermYears == 0 {
		in.TermYears = DefaultTermYears
	}
	if in.PrimaryRate.IsZero() {
		in.PrimaryRate = DefaultPrimaryRate
	}
	if in.StressRate.IsZero() {
		in.StressRate = DefaultStressRate
	}
}

// CalculateFinancing runs the mortgage affordability check: loan sizing
// including ancillary costs, payments under both rate scenarios, and the
// KIM-style threshold classification.
func CalculateFinancing(in FinancingInput) domain.FinancingResult {
	in.ApplyDefaults()

	ancillaryTotal := finmath.SumActiveCosts(in.AncillaryItems, in.PurchasePrice)
	totalCosts := in.PurchasePrice.Add(ancillaryTotal)
	loanAmount := decimal.Max(decimal.Zero, totalCosts.Sub(in.Equity.Add(in.EquityWork)))

	income := in.NetIncomeMonthly
	if income.LessThanOrEqual(decimal.Zero) {
		income = decimal.NewFromInt(1)
	}

	pmtPrimary := finmath.AnnuityPayment(loanAmount, in.PrimaryRate, in.TermYears)
	pmtStress := finmath.AnnuityPayment(loanAmount, in.StressRate, in.TermYears)

	dstiPrimary := pmtPrimary.Add(in.ExistingDebtMonthly).Div(income)
	dstiStress := pmtStress.Add(in.ExistingDebtMonthly).Div(income)

	ltv := decimal.Zero
	if in.PurchasePrice.GreaterThan(decimal.Zero) {
		ltv = loanAmount.Div(in.PurchasePrice)
	}

	check := domain.KIMCheck{
		LTVStatus:         classifyLTV(ltv),
		DSTIPrimaryStatus: classifyDSTI(dstiPrimary),
		DSTIStressStatus:  classifyDSTI(dstiStress),
		TermStatus:        classifyTerm(in.TermYears),
	}

	assessment := financingAssessment(check)

	noFinancingNeeded := loanAmount.LessThanOrEqual(decimal.Zero)

	return domain.FinancingResult{
		PurchasePrice: in.PurchasePrice,
		Purpose:       in.Purpose,
		Equity:        in.Equity,
		EquityWork:    in.EquityWork,
		AncillaryCosts: domain.AncillaryCosts{
			Items: in.AncillaryItems,
			Total: ancillaryTotal,
		},
		LoanAmount:          loanAmount,
		TermYears:           in.TermYears,
		NetIncomeMonthly:    in.NetIncomeMonthly,
		ExistingDebtMonthly: in.ExistingDebtMonthly,
		Primary:             financingScenario("Scenario A", in.PrimaryRate, pmtPrimary, dstiPrimary, in.TermYears),
		Stress:              financingScenario("Scenario B", in.StressRate, pmtStress, dstiStress, in.TermYears),
		LTV:                 ltv,
		KIMCheck:            check,
		Assessment:          assessment,
		Summary:             financingSummary(assessment, noFinancingNeeded),
	}
}

func financingScenario(label string, rate, payment, dsti decimal.Decimal, termYears int) domain.FinancingScenario {
	months := decimal.NewFromInt(int64(termYears) * 12)
	return domain.FinancingScenario{
		Label:          label,
		InterestPA:     rate,
		PaymentMonthly: payment.Round(0),
		TotalRepayment: payment.Mul(months).Round(0),
		DSTI:           dsti,
	}
}

// classifyLTV applies the loan-to-value thresholds, inclusive on the stated
// boundary: exactly 90% is still green.
func classifyLTV(ltv decimal.Decimal) domain.Status {
	switch {
	case ltv.LessThanOrEqual(decimal.NewFromFloat(0.90)):
		return domain.StatusGreen
	case ltv.LessThanOrEqual(decimal.NewFromFloat(0.95)):
		return domain.StatusYellow
	default:
		return domain.StatusRed
	}
}

// classifyDSTI applies the debt-service-to-income thresholds.
func classifyDSTI(dsti decimal.Decimal) domain.Status {
	switch {
	case dsti.LessThanOrEqual(decimal.NewFromFloat(0.40)):
		return domain.StatusGreen
	case dsti.LessThanOrEqual(decimal.NewFromFloat(0.45)):
		return domain.StatusYellow
	default:
		return domain.StatusRed
	}
}

// classifyTerm is two-state: terms beyond 35 years classify red.
func classifyTerm(termYears int) domain.Status {
	if termYears <= MaxTermYears {
		return domain.StatusGreen
	}
	return domain.StatusRed
}

// financingAssessment combines the per-criterion lights. LTV and the primary
// DSTI drive the base result; a red stress DSTI pushes an otherwise green
// result to yellow but never demotes further.
func financingAssessment(check domain.KIMCheck) domain.Status {
	assessment := domain.StatusGreen
	if check.LTVStatus == domain.StatusRed || check.DSTIPrimaryStatus == domain.StatusRed {
		assessment = domain.StatusRed
	} else if check.LTVStatus == domain.StatusYellow || check.DSTIPrimaryStatus == domain.StatusYellow {
		assessment = domain.StatusYellow
	}
	if assessment == domain.StatusGreen && check.DSTIStressStatus == domain.StatusRed {
		assessment = domain.StatusYellow
	}
	return assessment
}

func financingSummary(assessment domain.Status, noFinancingNeeded bool) string {
	if noFinancingNeeded {
		return "Your equity fully covers the purchase costs; no financing is needed."
	}
	switch assessment {
	case domain.StatusGreen:
		return "Your financing plan looks solid and sits within the KIM criteria."
	case domain.StatusYellow:
		return "The plan is feasible but sits in border ranges. Review equity or term."
	default:
		return "Warning: key figures (loan-to-value or debt service) are outside the recommended limits."
	}
}
