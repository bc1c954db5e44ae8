package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finnav/finnav/internal/domain"
)

// AffordabilityRequest asks for the highest purchase price that keeps the
// financing assessment at or below a target status. The purchase price of the
// input is ignored; all other fields (equity, income, rates, term, ancillary
// items) are held fixed.
type AffordabilityRequest struct {
	Input         FinancingInput
	Target        domain.Status
	MaxIterations int
	Tolerance     decimal.Decimal // price tolerance in euros
}

// AffordabilityResult is the outcome of the affordability search.
type AffordabilityResult struct {
	MaxPurchasePrice decimal.Decimal
	Result           domain.FinancingResult
	Iterations       int
	Converged        bool
}

const (
	defaultAffordabilityIterations = 64
	affordabilityPriceCap          = 100_000_000
)

// statusRank orders traffic lights from best to worst.
func statusRank(s domain.Status) int {
	switch s {
	case domain.StatusGreen:
		return 0
	case domain.StatusYellow:
		return 1
	default:
		return 2
	}
}

// MaxAffordablePrice binary-searches the purchase price for the largest value
// whose financing assessment still meets the target status. The assessment is
// monotonic in price: a higher price means a larger loan and therefore equal
// or worse LTV and DSTI.
func MaxAffordablePrice(ctx context.Context, req AffordabilityRequest) (*AffordabilityResult, error) {
	if req.Target == "" {
		req.Target = domain.StatusGreen
	}
	if req.Target != domain.StatusGreen && req.Target != domain.StatusYellow {
		return nil, fmt.Errorf("affordability target must be green or yellow, got %s", req.Target)
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = defaultAffordabilityIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = decimal.NewFromInt(100)
	}

	meets := func(price decimal.Decimal) (bool, domain.FinancingResult) {
		in := req.Input
		in.PurchasePrice = price
		res := CalculateFinancing(in)
		return statusRank(res.Assessment) <= statusRank(req.Target), res
	}

	// A price low enough that equity covers everything needs no loan. If even
	// that fails the target, existing obligations alone break the check.
	low := decimal.NewFromInt(1)
	ok, lowResult := meets(low)
	if !ok {
		return &AffordabilityResult{
			MaxPurchasePrice: decimal.Zero,
			Result:           lowResult,
			Converged:        false,
		}, nil
	}

	// Grow the upper bound until the target breaks or the cap is reached.
	high := decimal.NewFromInt(100_000)
	iterations := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if ok, _ := meets(high); !ok {
			break
		}
		if high.GreaterThanOrEqual(decimal.NewFromInt(affordabilityPriceCap)) {
			_, res := meets(high)
			return &AffordabilityResult{
				MaxPurchasePrice: high,
				Result:           res,
				Iterations:       iterations,
				Converged:        true,
			}, nil
		}
		low = high
		high = high.Mul(decimal.NewFromInt(2))
		iterations++
	}

	// Binary search between the last passing price and the first failing one.
	best := low
	_, bestResult := meets(low)

	for iterations < req.MaxIterations && high.Sub(low).GreaterThan(req.Tolerance) {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := low.Add(high).Div(decimal.NewFromInt(2))
		if ok, res := meets(mid); ok {
			best = mid
			bestResult = res
			low = mid
		} else {
			high = mid
		}
	}

	return &AffordabilityResult{
		MaxPurchasePrice: best.Round(0),
		Result:           bestResult,
		Iterations:       iterations,
		Converged:        true,
	}, nil
}
