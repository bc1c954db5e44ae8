package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finnav/finnav/internal/domain"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadProfile(t *testing.T) {
	parser := NewInputParser()

	t.Run("valid profile", func(t *testing.T) {
		path := writeTempYAML(t, `
basic:
  age: 35
  household_type: couple
  employment: employed
cashflow:
  net_income_monthly: 3000
  fixed_costs_monthly: 1500
assets:
  savings: 12000
protection:
  emergency_fund_months: 3
  private_pension: "no"
  income_protection: unknown
`)
		p, err := parser.LoadProfile(path)
		require.NoError(t, err)

		require.NotNil(t, p.Basic.Age)
		assert.Equal(t, 35, *p.Basic.Age)
		assert.Equal(t, domain.HouseholdCouple, p.Basic.HouseholdType)
		assert.Equal(t, domain.AnswerNo, p.Protection.PrivatePension)
		require.NotNil(t, p.Cashflow.NetIncomeMonthly)
		assert.Equal(t, "3000", p.Cashflow.NetIncomeMonthly.String())
	})

	t.Run("age out of range", func(t *testing.T) {
		path := writeTempYAML(t, "basic:\n  age: 12\n")
		_, err := parser.LoadProfile(path)
		assert.ErrorContains(t, err, "age must be between 16 and 100")
	})

	t.Run("invalid emergency fund step", func(t *testing.T) {
		path := writeTempYAML(t, "protection:\n  emergency_fund_months: 4\n")
		_, err := parser.LoadProfile(path)
		assert.ErrorContains(t, err, "emergency fund months")
	})

	t.Run("negative income", func(t *testing.T) {
		path := writeTempYAML(t, "cashflow:\n  net_income_monthly: -100\n")
		_, err := parser.LoadProfile(path)
		assert.ErrorContains(t, err, "net_income_monthly must not be negative")
	})

	t.Run("invalid tri-state answer", func(t *testing.T) {
		path := writeTempYAML(t, "protection:\n  private_pension: maybe\n")
		_, err := parser.LoadProfile(path)
		assert.ErrorContains(t, err, "private pension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := parser.LoadProfile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorContains(t, err, "failed to read file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeTempYAML(t, "basic: [unclosed")
		_, err := parser.LoadProfile(path)
		assert.ErrorContains(t, err, "failed to parse YAML")
	})
}

func TestLoadPensionInput(t *testing.T) {
	parser := NewInputParser()

	t.Run("defaults applied", func(t *testing.T) {
		path := writeTempYAML(t, `
age: 35
net_income_monthly: 3000
desired_pension_monthly: 2100
`)
		in, err := parser.LoadPensionInput(path)
		require.NoError(t, err)

		assert.Equal(t, 65, in.RetirementAge)
		assert.Equal(t, 20, in.PayoutYears)
		assert.Equal(t, "0.6", in.ReplacementRate.String())
	})

	t.Run("retirement age before current age", func(t *testing.T) {
		path := writeTempYAML(t, "age: 60\nretirement_age: 58\n")
		_, err := parser.LoadPensionInput(path)
		assert.ErrorContains(t, err, "retirement age")
	})

	t.Run("percent-style rate rejected", func(t *testing.T) {
		path := writeTempYAML(t, "age: 35\nconservative_return: 3.5\n")
		_, err := parser.LoadPensionInput(path)
		assert.ErrorContains(t, err, "fraction between 0 and 1")
	})
}

func TestLoadFinancingInput(t *testing.T) {
	parser := NewInputParser()

	t.Run("defaults applied", func(t *testing.T) {
		path := writeTempYAML(t, `
purchase_price: 300000
equity: 50000
net_income_monthly: 3500
`)
		in, err := parser.LoadFinancingInput(path)
		require.NoError(t, err)

		assert.Equal(t, 30, in.TermYears)
		assert.Len(t, in.AncillaryItems, 7)
	})

	t.Run("missing purchase price", func(t *testing.T) {
		path := writeTempYAML(t, "equity: 50000\n")
		_, err := parser.LoadFinancingInput(path)
		assert.ErrorContains(t, err, "purchase_price must be positive")
	})

	t.Run("term out of range", func(t *testing.T) {
		path := writeTempYAML(t, "purchase_price: 300000\nterm_years: 40\n")
		_, err := parser.LoadFinancingInput(path)
		assert.ErrorContains(t, err, "term must be between 5 and 35 years")
	})

	t.Run("bad cost item kind", func(t *testing.T) {
		path := writeTempYAML(t, `
purchase_price: 300000
ancillary_items:
  - id: notary
    value: 2500
    kind: flat
    active: true
`)
		_, err := parser.LoadFinancingInput(path)
		assert.ErrorContains(t, err, "kind must be percent or fixed")
	})
}

func TestLoadRiskInput(t *testing.T) {
	parser := NewInputParser()

	t.Run("defaults applied", func(t *testing.T) {
		path := writeTempYAML(t, "fixed_costs_monthly: 1200\nsavings: 10000\n")
		in, err := parser.LoadRiskInput(path)
		require.NoError(t, err)

		assert.Equal(t, 6, in.ShockMonths)
		assert.Equal(t, domain.AnswerUnknown, in.IncomeProtection)
	})

	t.Run("invalid shock duration", func(t *testing.T) {
		path := writeTempYAML(t, "shock_months: 9\n")
		_, err := parser.LoadRiskInput(path)
		assert.ErrorContains(t, err, "shock months")
	})

	t.Run("negative reserve", func(t *testing.T) {
		path := writeTempYAML(t, "savings: -1\n")
		_, err := parser.LoadRiskInput(path)
		assert.ErrorContains(t, err, "savings must not be negative")
	})
}

func TestLoadService(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("FINNAV_DATA_DIR", t.TempDir())
		t.Setenv("FINNAV_PORT", "")
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("DEV_MODE", "")

		cfg, err := LoadService()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.False(t, cfg.DevMode)
		assert.True(t, filepath.IsAbs(cfg.DataDir))
		assert.Equal(t, filepath.Join(cfg.DataDir, "leads.db"), cfg.DatabasePath())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("FINNAV_DATA_DIR", t.TempDir())
		t.Setenv("FINNAV_PORT", "9999")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("DEV_MODE", "true")

		cfg, err := LoadService()
		require.NoError(t, err)

		assert.Equal(t, 9999, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.True(t, cfg.DevMode)
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("FINNAV_DATA_DIR", t.TempDir())
		t.Setenv("FINNAV_PORT", "70000")

		_, err := LoadService()
		assert.ErrorContains(t, err, "invalid port")
	})
}
