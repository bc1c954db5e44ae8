package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finnav/finnav/internal/calculation"
	"github.com/finnav/finnav/internal/domain"
	"github.com/finnav/finnav/internal/finmath"
)

// InputParser handles parsing of profile and scenario input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadProfile loads a household profile from a YAML file
func (ip *InputParser) LoadProfile(filename string) (*domain.Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var profile domain.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}

	return &profile, nil
}

// ValidateProfile validates a loaded household profile
func (ip *InputParser) ValidateProfile(p *domain.Profile) error {
	if p.Basic.Age != nil && (*p.Basic.Age < 16 || *p.Basic.Age > 100) {
		return fmt.Errorf("age must be between 16 and 100, got %d", *p.Basic.Age)
	}
	if p.Basic.HouseholdType != "" && !p.Basic.HouseholdType.Valid() {
		return fmt.Errorf("invalid household type %q", p.Basic.HouseholdType)
	}
	if p.Basic.Employment != "" && !p.Basic.Employment.Valid() {
		return fmt.Errorf("invalid employment type %q", p.Basic.Employment)
	}
	if err := validateNonNegative("net_income_monthly", p.Cashflow.NetIncomeMonthly); err != nil {
		return err
	}
	if err := validateNonNegative("fixed_costs_monthly", p.Cashflow.FixedCostsMonthly); err != nil {
		return err
	}
	if err := validateNonNegative("savings", p.Assets.Savings); err != nil {
		return err
	}
	if err := validateNonNegative("investments", p.Assets.Investments); err != nil {
		return err
	}
	if err := validateNonNegative("consumer_loans_monthly", p.Debts.ConsumerLoansMonthly); err != nil {
		return err
	}
	if err := validateNonNegative("mortgage_remaining", p.Debts.MortgageRemaining); err != nil {
		return err
	}
	if !domain.ValidEmergencyFundMonths(p.Protection.EmergencyFundMonths) {
		return fmt.Errorf("emergency fund months must be one of %v, got %d",
			domain.EmergencyFundSteps, p.Protection.EmergencyFundMonths)
	}
	if p.Protection.PrivatePension != "" && !p.Protection.PrivatePension.Valid() {
		return fmt.Errorf("invalid private pension answer %q", p.Protection.PrivatePension)
	}
	if p.Protection.IncomeProtection != "" && !p.Protection.IncomeProtection.Valid() {
		return fmt.Errorf("invalid income protection answer %q", p.Protection.IncomeProtection)
	}
	return nil
}

// LoadPensionInput loads a pension scenario from a YAML file
func (ip *InputParser) LoadPensionInput(filename string) (*calculation.PensionInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var in calculation.PensionInput
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	in.ApplyDefaults()

	if err := ip.ValidatePensionInput(&in); err != nil {
		return nil, fmt.Errorf("pension input validation failed: %w", err)
	}

	return &in, nil
}

// ValidatePensionInput validates a pension scenario
func (ip *InputParser) ValidatePensionInput(in *calculation.PensionInput) error {
	if in.Age < 16 || in.Age > 100 {
		return fmt.Errorf("age must be between 16 and 100, got %d", in.Age)
	}
	if in.RetirementAge <= in.Age {
		return fmt.Errorf("retirement age %d must be greater than current age %d", in.RetirementAge, in.Age)
	}
	if in.NetIncomeMonthly.LessThan(decimal.Zero) {
		return fmt.Errorf("net_income_monthly must not be negative")
	}
	if in.PayoutYears <= 0 {
		return fmt.Errorf("payout_years must be positive, got %d", in.PayoutYears)
	}
	if err := validateRate("conservative_return", in.ConservativeReturn); err != nil {
		return err
	}
	if err := validateRate("optimistic_return", in.OptimisticReturn); err != nil {
		return err
	}
	return nil
}

// LoadFinancingInput loads a financing scenario from a YAML file
func (ip *InputParser) LoadFinancingInput(filename string) (*calculation.FinancingInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var in calculation.FinancingInput
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	in.ApplyDefaults()

	if err := ip.ValidateFinancingInput(&in); err != nil {
		return nil, fmt.Errorf("financing input validation failed: %w", err)
	}

	return &in, nil
}

// ValidateFinancingInput validates a financing scenario
func (ip *InputParser) ValidateFinancingInput(in *calculation.FinancingInput) error {
	if in.PurchasePrice.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("purchase_price must be positive")
	}
	if in.Equity.LessThan(decimal.Zero) {
		return fmt.Errorf("equity must not be negative")
	}
	if in.NetIncomeMonthly.LessThan(decimal.Zero) {
		return fmt.Errorf("net_income_monthly must not be negative")
	}
	if in.TermYears < calculation.MinTermYears || in.TermYears > calculation.MaxTermYears {
		return fmt.Errorf("term must be between %d and %d years, got %d",
			calculation.MinTermYears, calculation.MaxTermYears, in.TermYears)
	}
	if err := validateRate("primary_rate", in.PrimaryRate); err != nil {
		return err
	}
	if err := validateRate("stress_rate", in.StressRate); err != nil {
		return err
	}
	for i, item := range in.AncillaryItems {
		if item.Kind != "" && item.Kind != finmath.CostPercent && item.Kind != finmath.CostFixed {
			return fmt.Errorf("ancillary item %d (%s): kind must be percent or fixed, got %q", i, item.ID, item.Kind)
		}
		if item.Value.LessThan(decimal.Zero) {
			return fmt.Errorf("ancillary item %d (%s): value must not be negative", i, item.ID)
		}
	}
	return nil
}

// LoadRiskInput loads a risk scenario from a YAML file
func (ip *InputParser) LoadRiskInput(filename string) (*calculation.RiskInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var in calculation.RiskInput
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	in.ApplyDefaults()

	if err := ip.ValidateRiskInput(&in); err != nil {
		return nil, fmt.Errorf("risk input validation failed: %w", err)
	}

	return &in, nil
}

// ValidateRiskInput validates a risk scenario
func (ip *InputParser) ValidateRiskInput(in *calculation.RiskInput) error {
	if !calculation.ValidShockMonths(in.ShockMonths) {
		return fmt.Errorf("shock months must be one of %v, got %d", calculation.ShockDurations, in.ShockMonths)
	}
	if !in.IncomeProtection.Valid() {
		return fmt.Errorf("invalid income protection answer %q", in.IncomeProtection)
	}
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"fixed_costs_monthly", in.FixedCostsMonthly},
		{"debt_payments_monthly", in.DebtPaymentsMonthly},
		{"variable_costs_monthly", in.VariableCostsMonthly},
		{"savings", in.Savings},
		{"quick_investments", in.QuickInvestments},
		{"support_monthly", in.SupportMonthly},
	} {
		if f.value.LessThan(decimal.Zero) {
			return fmt.Errorf("%s must not be negative", f.name)
		}
	}
	return nil
}

func validateNonNegative(name string, v *decimal.Decimal) error {
	if v != nil && v.LessThan(decimal.Zero) {
		return fmt.Errorf("%s must not be negative", name)
	}
	return nil
}

// validateRate checks annual rates given as decimal fractions. One (100% p.a.)
// is a generous ceiling that still catches percent-style inputs like 3.5.
func validateRate(name string, rate decimal.Decimal) error {
	if rate.LessThan(decimal.Zero) || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be a fraction between 0 and 1, got %s", name, rate)
	}
	return nil
}
