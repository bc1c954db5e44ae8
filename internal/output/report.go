// Package output renders the assessment report in various formats.
package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finnav/finnav/internal/domain"
)

// ScoreLine pairs one domain score with its traffic light.
type ScoreLine struct {
	Label  string        `yaml:"label" json:"label"`
	Score  int           `yaml:"score" json:"score"`
	Status domain.Status `yaml:"status" json:"status"`
	Color  string        `yaml:"color" json:"color"`
}

// Report is the assembled assessment report for one session.
type Report struct {
	SessionID          string               `yaml:"session_id" json:"session_id"`
	GeneratedAt        time.Time            `yaml:"generated_at" json:"generated_at"`
	Overall            ScoreLine            `yaml:"overall" json:"overall"`
	Domains            []ScoreLine          `yaml:"domains" json:"domains"`
	RecommendedModules []domain.ModuleID    `yaml:"recommended_modules" json:"recommended_modules"`
	ModuleResults      domain.ModuleResults `yaml:"module_results" json:"module_results"`
	Lead               domain.Lead          `yaml:"lead" json:"lead"`
}

// BuildReport assembles the report for a scored profile.
func BuildReport(p domain.Profile) *Report {
	return &Report{
		SessionID:          p.Meta.SessionID,
		GeneratedAt:        time.Now().UTC(),
		Overall:            scoreLine("Overall", p.Scores.Overall),
		Domains: []ScoreLine{
			scoreLine("Liquidity", p.Scores.Liquidity),
			scoreLine("Wealth building", p.Scores.Wealth),
			scoreLine("Protection", p.Scores.Protection),
			scoreLine("Retirement", p.Scores.Retirement),
			scoreLine("Debt", p.Scores.Debt),
		},
		RecommendedModules: p.RecommendedModules,
		ModuleResults:      p.ModuleResults,
		Lead:               p.Lead,
	}
}

func scoreLine(label string, score int) ScoreLine {
	status := domain.ClassifyScore(score)
	return ScoreLine{Label: label, Score: score, Status: status, Color: status.Color()}
}

// Formatter renders a report into a byte stream.
type Formatter interface {
	Name() string
	Format(rep *Report) ([]byte, error)
}

// NewFormatter returns the formatter for the named format.
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "console":
		return ConsoleFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	case "yaml":
		return YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// JSONFormatter renders the report as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(rep *Report) ([]byte, error) {
	return json.MarshalIndent(rep, "", "  ")
}

// YAMLFormatter renders the report as YAML.
type YAMLFormatter struct{}

func (YAMLFormatter) Name() string { return "yaml" }

func (YAMLFormatter) Format(rep *Report) ([]byte, error) {
	return yaml.Marshal(rep)
}

// FormatCurrency formats a decimal as a euro amount
func FormatCurrency(amount decimal.Decimal) string {
	return "€" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal fraction as a percentage
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
