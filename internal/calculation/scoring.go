package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finnav/finnav/internal/domain"
)

// Scores a module recommendation triggers below, per domain.
const (
	retirementRecommendBelow = 70
	debtRecommendBelow       = 50
	protectionRecommendBelow = 70
	maxRecommendations       = 2
)

// CalculateScores derives the five domain scores, the overall score and the
// module recommendations from the intake answers. It is a pure function:
// the input profile is not modified, and scoring an unchanged profile twice
// yields identical output.
func CalculateScores(p domain.Profile) domain.Profile {
	netIncome := p.NetIncomeGuarded()
	freeCash := p.FreeCash()

	p.Scores.Liquidity = liquidityScore(p.Protection.EmergencyFundMonths)
	p.Scores.Wealth = wealthScore(freeCash, netIncome, p.TotalAssets())
	p.Scores.Protection = protectionScore(p.Protection)
	p.Scores.Retirement = retirementScore(p.Basic.Age, p.Protection.PrivatePension)
	p.Scores.Debt = debtScore(p.ConsumerDebtMonthly(), netIncome, p.HasMortgage())
	p.Scores.Overall = p.Scores.Mean()

	p.RecommendedModules = recommendModules(p.Scores, p.HasMortgage())
	p.Cashflow.FreeCashMonthly = &freeCash

	return p
}

// liquidityScore is a step function of emergency fund coverage.
func liquidityScore(emergencyFundMonths int) int {
	switch {
	case emergencyFundMonths >= 6:
		return 100
	case emergencyFundMonths >= 3:
		return 85
	case emergencyFundMonths >= 2:
		return 60
	case emergencyFundMonths >= 1:
		return 45
	default:
		return 20
	}
}

// wealthScore rates the savings rate, with a bonus when existing assets
// exceed six months of net income.
func wealthScore(freeCash, netIncome, totalAssets decimal.Decimal) int {
	savingsRate := freeCash.Div(netIncome)

	score := 20
	switch {
	case savingsRate.GreaterThanOrEqual(decimal.NewFromFloat(0.20)):
		score = 95
	case savingsRate.GreaterThanOrEqual(decimal.NewFromFloat(0.15)):
		score = 80
	case savingsRate.GreaterThanOrEqual(decimal.NewFromFloat(0.10)):
		score = 60
	case savingsRate.GreaterThanOrEqual(decimal.NewFromFloat(0.05)):
		score = 40
	}

	if totalAssets.GreaterThan(netIncome.Mul(decimal.NewFromInt(6))) {
		score += 10
		if score > 100 {
			score = 100
		}
	}
	return score
}

// protectionScore rates income protection coverage and emergency fund depth.
func protectionScore(prot domain.Protection) int {
	score := 20
	switch prot.IncomeProtection {
	case domain.AnswerYes:
		score += 40
	case domain.AnswerUnknown:
		score += 10
	}

	if prot.EmergencyFundMonths >= 3 {
		score += 30
	} else if prot.EmergencyFundMonths >= 1 {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

// retirementScore rates private pension provision. Users over 40 with no
// private provision are hard-set to the floor regardless of other factors.
func retirementScore(age *int, privatePension domain.TriState) int {
	score := 10
	switch privatePension {
	case domain.AnswerYes:
		score = 80
	case domain.AnswerUnknown:
		score = 40
	}

	if age != nil && *age > 40 && privatePension == domain.AnswerNo {
		score = 10
	}
	return score
}

// debtScore rates consumer debt service relative to income, with a flat
// deduction for any outstanding mortgage. Clamped to [0, 100].
func debtScore(consumerDebtMonthly, netIncome decimal.Decimal, hasMortgage bool) int {
	score := 100
	dsti := consumerDebtMonthly.Div(netIncome)
	switch {
	case dsti.GreaterThan(decimal.NewFromFloat(0.4)):
		score = 20
	case dsti.GreaterThan(decimal.NewFromFloat(0.3)):
		score = 40
	case dsti.GreaterThan(decimal.NewFromFloat(0.1)):
		score = 70
	}

	if hasMortgage {
		score -= 5
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// recommendModules builds the candidate list in fixed priority order,
// truncates it to the focus limit, and falls back to the pension module when
// no domain is weak.
func recommendModules(scores domain.Scores, hasMortgage bool) []domain.ModuleID {
	var recommendations []domain.ModuleID

	if scores.Retirement < retirementRecommendBelow {
		recommendations = append(recommendations, domain.ModulePension)
	}
	if scores.Debt < debtRecommendBelow || hasMortgage {
		recommendations = append(recommendations, domain.ModuleFinancing)
	}
	if scores.Protection < protectionRecommendBelow {
		recommendations = append(recommendations, domain.ModuleRisk)
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, domain.ModulePension)
	}
	return recommendations
}
