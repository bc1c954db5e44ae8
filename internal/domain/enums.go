package domain

import "fmt"

// HouseholdType describes the household composition collected during intake.
type HouseholdType string

const (
	HouseholdSingle HouseholdType = "single"
	HouseholdCouple HouseholdType = "couple"
	HouseholdFamily HouseholdType = "family"
)

// Valid reports whether the household type is one of the known variants.
func (h HouseholdType) Valid() bool {
	switch h {
	case HouseholdSingle, HouseholdCouple, HouseholdFamily:
		return true
	}
	return false
}

// EmploymentType describes the main income situation of the household.
type EmploymentType string

const (
	EmploymentEmployed     EmploymentType = "employed"
	EmploymentSelfEmployed EmploymentType = "self_employed"
	EmploymentPartTime     EmploymentType = "part_time"
)

// Valid reports whether the employment type is one of the known variants.
func (e EmploymentType) Valid() bool {
	switch e {
	case EmploymentEmployed, EmploymentSelfEmployed, EmploymentPartTime:
		return true
	}
	return false
}

// TriState is a closed yes/no/unknown answer. Intake questions about existing
// provisions are deliberately answerable with "unknown" so the funnel never
// blocks on missing knowledge.
type TriState string

const (
	AnswerYes     TriState = "yes"
	AnswerNo      TriState = "no"
	AnswerUnknown TriState = "unknown"
)

// Valid reports whether the answer is one of the three known variants.
func (t TriState) Valid() bool {
	switch t {
	case AnswerYes, AnswerNo, AnswerUnknown:
		return true
	}
	return false
}

// ModuleID identifies one of the three deep-dive calculators.
type ModuleID string

const (
	ModulePension   ModuleID = "pension"
	ModuleFinancing ModuleID = "financing"
	ModuleRisk      ModuleID = "risk"
)

// Valid reports whether the module id is one of the known modules.
func (m ModuleID) Valid() bool {
	switch m {
	case ModulePension, ModuleFinancing, ModuleRisk:
		return true
	}
	return false
}

// ParseModuleID converts a string into a ModuleID or returns an error.
func ParseModuleID(s string) (ModuleID, error) {
	m := ModuleID(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown module id %q", s)
	}
	return m, nil
}

// EmergencyFundSteps is the fixed ordinal set of emergency fund coverage
// answers offered during intake, in months.
var EmergencyFundSteps = []int{0, 1, 2, 3, 6, 12}

// ValidEmergencyFundMonths reports whether months is one of the offered steps.
func ValidEmergencyFundMonths(months int) bool {
	for _, m := range EmergencyFundSteps {
		if m == months {
			return true
		}
	}
	return false
}
