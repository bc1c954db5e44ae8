package finmath

import "github.com/shopspring/decimal"

// CostKind distinguishes percentage-of-base cost items from fixed amounts.
type CostKind string

const (
	CostPercent CostKind = "percent"
	CostFixed   CostKind = "fixed"
)

// CostItem is one ancillary cost position, either a percentage of a base
// amount (Value holds the percentage, e.g. 3.5 for 3.5%) or a fixed absolute
// amount. Inactive items never contribute to a total.
type CostItem struct {
	ID     string          `yaml:"id" json:"id"`
	Label  string          `yaml:"label" json:"label"`
	Value  decimal.Decimal `yaml:"value" json:"value"`
	Kind   CostKind        `yaml:"kind" json:"kind"`
	Active bool            `yaml:"active" json:"active"`
}

// Resolve returns the absolute amount of the item against the given base.
func (c CostItem) Resolve(base decimal.Decimal) decimal.Decimal {
	if c.Kind == CostPercent {
		return base.Mul(c.Value).Div(decimal.NewFromInt(100))
	}
	return c.Value
}

// SumActiveCosts resolves every active item against the base and returns the
// aggregate ancillary cost.
func SumActiveCosts(items []CostItem, base decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if !item.Active {
			continue
		}
		total = total.Add(item.Resolve(base))
	}
	return total
}
