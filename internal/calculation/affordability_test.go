package calculation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finnav/finnav/internal/domain"
	"github.com/finnav/finnav/internal/finmath"
)

func affordabilityInput() FinancingInput {
	return FinancingInput{
		AncillaryItems:   []finmath.CostItem{},
		Equity:           decimal.NewFromInt(60000),
		NetIncomeMonthly: decimal.NewFromInt(3500),
		TermYears:        30,
	}
}

func TestMaxAffordablePrice(t *testing.T) {
	ctx := context.Background()

	t.Run("finds the green boundary", func(t *testing.T) {
		res, err := MaxAffordablePrice(ctx, AffordabilityRequest{Input: affordabilityInput()})
		require.NoError(t, err)

		require.True(t, res.Converged)
		assert.True(t, res.MaxPurchasePrice.GreaterThan(decimal.Zero))
		assert.Equal(t, domain.StatusGreen, res.Result.Assessment)

		// The found price passes, a clearly higher price does not.
		in := affordabilityInput()
		in.PurchasePrice = res.MaxPurchasePrice.Mul(decimal.NewFromFloat(1.1))
		worse := CalculateFinancing(in)
		assert.NotEqual(t, domain.StatusGreen, worse.Assessment,
			"10%% above the boundary must not still be green")
	})

	t.Run("yellow target allows a higher price", func(t *testing.T) {
		green, err := MaxAffordablePrice(ctx, AffordabilityRequest{Input: affordabilityInput()})
		require.NoError(t, err)

		yellow, err := MaxAffordablePrice(ctx, AffordabilityRequest{
			Input:  affordabilityInput(),
			Target: domain.StatusYellow,
		})
		require.NoError(t, err)

		assert.True(t, yellow.MaxPurchasePrice.GreaterThanOrEqual(green.MaxPurchasePrice))
	})

	t.Run("existing debt can make any price unaffordable", func(t *testing.T) {
		in := affordabilityInput()
		in.ExistingDebtMonthly = decimal.NewFromInt(2000) // dsti 0.57 before any loan

		res, err := MaxAffordablePrice(ctx, AffordabilityRequest{Input: in})
		require.NoError(t, err)

		assert.False(t, res.Converged)
		assert.True(t, res.MaxPurchasePrice.IsZero())
	})

	t.Run("rejects red target", func(t *testing.T) {
		_, err := MaxAffordablePrice(ctx, AffordabilityRequest{
			Input:  affordabilityInput(),
			Target: domain.StatusRed,
		})
		assert.ErrorContains(t, err, "target must be green or yellow")
	})

	t.Run("cancelled context stops the search", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := MaxAffordablePrice(cancelled, AffordabilityRequest{Input: affordabilityInput()})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
