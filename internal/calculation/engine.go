// Package calculation implements the scoring engine and the three deep-dive
// module calculators of the assessment funnel. Every entry point is a pure
// function from inputs to a new value; the caller owns merging results into
// shared session state.
package calculation

import "github.com/finnav/finnav/internal/domain"

// ApplyPension stores a pension result on the profile and re-scores the
// retirement domain from the module's assessment. A green deep-dive result
// can only raise the retirement score; yellow and red replace it. The overall
// score is recomputed as the mean of the five current domain scores; the
// recommendation routing is not re-run.
func ApplyPension(p domain.Profile, res domain.PensionResult) domain.Profile {
	p.ModuleResults.Pension = &res

	score := p.Scores.Retirement
	switch res.Assessment {
	case domain.StatusGreen:
		if score < 85 {
			score = 85
		}
	case domain.StatusYellow:
		score = 60
	case domain.StatusRed:
		score = 30
	}
	p.Scores.Retirement = score
	p.Scores.Overall = p.Scores.Mean()
	return p
}

// ApplyFinancing stores a financing result on the profile and re-scores the
// debt domain from the module's assessment.
func ApplyFinancing(p domain.Profile, res domain.FinancingResult) domain.Profile {
	p.ModuleResults.Financing = &res

	score := 80
	switch res.Assessment {
	case domain.StatusYellow:
		score = 55
	case domain.StatusRed:
		score = 30
	}
	p.Scores.Debt = score
	p.Scores.Overall = p.Scores.Mean()
	return p
}

// ApplyRisk stores a risk result on the profile, carries the income
// protection answer back into the protection section, and re-scores the
// protection domain from the module's assessment with a bonus for existing
// income protection insurance.
func ApplyRisk(p domain.Profile, res domain.RiskResult) domain.Profile {
	p.ModuleResults.Risk = &res
	p.Protection.IncomeProtection = res.IncomeProtection

	score := 85
	switch res.Assessment {
	case domain.StatusYellow:
		score = 60
	case domain.StatusRed:
		score = 30
	}
	if res.IncomeProtection == domain.AnswerYes {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	p.Scores.Protection = score
	p.Scores.Overall = p.Scores.Mean()
	return p
}
