// Package basket builds and analyses weighted currency baskets (valuation,
// rebalancing, performance attribution, volatility via the full correlation
// quadratic form) and carry-trade analytics.
package basket

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/quantora/fxcore/correlation"
	"github.com/quantora/fxcore/currency"
	"github.com/quantora/fxcore/fxerr"
)

const (
	// WeightTolerance is the allowed deviation of the weight sum from 1.
	WeightTolerance = 0.001

	// MinRebalanceAmount filters immaterial rebalance trades.
	MinRebalanceAmount = 0.01
)

// NewBasket validates and constructs a basket. Component weights must sum
// to one within WeightTolerance.
func NewBasket(name string, components []Component, base currency.Code, rebalanceFrequency string) (Basket, error) {
	if len(components) == 0 {
		return Basket{}, fxerr.Validationf("NewBasket", "at least one component is required")
	}

	var sum float64
	seen := make(map[currency.Code]struct{}, len(components))
	for _, c := range components {
		if _, dup := seen[c.Currency]; dup {
			return Basket{}, fxerr.Validationf("NewBasket", "duplicate component %s", c.Currency)
		}
		seen[c.Currency] = struct{}{}
		sum += c.Weight
	}
	if math.Abs(sum-1) > WeightTolerance {
		return Basket{}, fxerr.Validationf("NewBasket", "weights sum to %g, expected 1 within %g", sum, WeightTolerance)
	}

	out := make([]Component, len(components))
	copy(out, components)
	return Basket{
		Name:               name,
		Components:         out,
		BaseCurrency:       base,
		RebalanceFrequency: rebalanceFrequency,
	}, nil
}

// Value returns the basket level in base-currency terms: the weighted sum
// of each component's rate against the base. Base-currency components are
// valued at a rate of one.
func Value(b Basket, rates currency.RateTable) (float64, error) {
	var total float64
	for _, c := range b.Components {
		if c.Currency == b.BaseCurrency {
			total += c.Weight
			continue
		}
		rate, err := rates.Lookup(c.Currency, b.BaseCurrency)
		if err != nil {
			return 0, fxerr.DataErrf("Value", "no rate for %s/%s", c.Currency, b.BaseCurrency)
		}
		total += c.Weight * rate
	}
	return total, nil
}

// Rebalance computes the trades that move current per-currency notionals to
// the basket's target weights of totalValue. Trades smaller than
// MinRebalanceAmount are filtered out as immaterial.
func Rebalance(b Basket, current map[currency.Code]float64, totalValue float64) ([]RebalanceTrade, error) {
	if totalValue <= 0 {
		return nil, fxerr.Validationf("Rebalance", "total value must be positive, got %g", totalValue)
	}

	var out []RebalanceTrade
	for _, c := range b.Components {
		target := c.Weight * totalValue
		trade := target - current[c.Currency]
		if math.Abs(trade) < MinRebalanceAmount {
			continue
		}
		out = append(out, RebalanceTrade{Currency: c.Currency, Amount: trade})
	}
	return out, nil
}

// Attribution decomposes the basket return into per-component
// contributions (weight times component return) with each contribution's
// share of the realized total.
func Attribution(b Basket, componentReturns map[currency.Code]float64) ([]AttributionEntry, float64, error) {
	var total float64
	entries := make([]AttributionEntry, 0, len(b.Components))
	for _, c := range b.Components {
		r, ok := componentReturns[c.Currency]
		if !ok {
			return nil, 0, fxerr.DataErrf("Attribution", "no return supplied for %s", c.Currency)
		}
		contribution := c.Weight * r
		total += contribution
		entries = append(entries, AttributionEntry{
			Currency:     c.Currency,
			Weight:       c.Weight,
			Return:       r,
			Contribution: contribution,
		})
	}

	for i := range entries {
		if total != 0 {
			entries[i].PctOfTotal = entries[i].Contribution / total * 100
		}
	}
	return entries, total, nil
}

// Volatility returns the basket's annualized volatility from component
// volatilities and their correlation matrix, via the quadratic form
// sqrt(w' * Sigma * w).
func Volatility(b Basket, vols map[currency.Code]float64, corr correlation.Matrix) (float64, error) {
	n := len(b.Components)
	weights := make([]float64, n)
	sigma := make([]float64, n)
	index := make([]int, n)

	for i, c := range b.Components {
		v, ok := vols[c.Currency]
		if !ok {
			return 0, fxerr.DataErrf("Volatility", "no volatility supplied for %s", c.Currency)
		}
		if v < 0 {
			return 0, fxerr.Validationf("Volatility", "volatility for %s must be non-negative, got %g", c.Currency, v)
		}
		j := corr.Index(c.Currency.String())
		if j < 0 {
			return 0, fxerr.DataErrf("Volatility", "%s missing from the correlation matrix", c.Currency)
		}
		weights[i] = c.Weight
		sigma[i] = v
		index[i] = j
	}

	// Covariance over the components: Sigma_ij = s_i * s_j * rho_ij.
	cov := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cov.SetSym(i, j, sigma[i]*sigma[j]*corr.At(index[i], index[j]))
		}
	}

	w := mat.NewVecDense(n, weights)
	variance := mat.Inner(w, cov, w)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance), nil
}
