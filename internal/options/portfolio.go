package options

import (
	"math"
	"sort"

	"github.com/ridopark/stoxcore/internal/models"
)

// Position is one option leg: strike and entry_price must be non-negative
// (strike strictly positive), quantity is signed (negative = short), and
// days_to_expiry is the remaining life of the contract in calendar days.
type Position struct {
	Type         OptionType
	Strike       float64
	Quantity     int
	EntryPrice   float64
	DaysToExpiry int
}

// Validate enforces the OptionsInput error kind's position-level checks:
// non-positive strike or a negative entry price are rejected before any
// pricing math runs.
func (p Position) Validate() error {
	if p.Strike <= 0 {
		return models.NewCoreError(models.OptionsInput, "option strike must be positive, got %v", p.Strike)
	}
	if p.EntryPrice < 0 {
		return models.NewCoreError(models.OptionsInput, "option entry price must be non-negative, got %v", p.EntryPrice)
	}
	if p.DaysToExpiry < 0 {
		return models.NewCoreError(models.OptionsInput, "days to expiry must be non-negative, got %d", p.DaysToExpiry)
	}
	return nil
}

// yearsToExpiry converts a position's remaining days to the year fraction
// the pricing model expects.
func (p Position) yearsToExpiry() float64 {
	return float64(p.DaysToExpiry) / 365.0
}

// PnLCurve pairs the underlying price grid with the resulting P&L at each
// sampled price, in the same order and length as the input grid.
type PnLCurve struct {
	UnderlyingPrices []float64
	PnL              []float64
}

// validateGrid rejects an empty or non-strictly-monotonic price grid; the
// analytics layer never generates its own grid, per spec.
func validateGrid(prices []float64) error {
	if len(prices) == 0 {
		return models.NewCoreError(models.OptionsInput, "underlying price grid must not be empty")
	}
	for i := 1; i < len(prices); i++ {
		if prices[i] <= prices[i-1] {
			return models.NewCoreError(models.OptionsInput, "underlying price grid must be strictly increasing")
		}
	}
	return nil
}

// PositionCurve computes one position's P&L curve over the grid: at each
// sampled price, quantity * (theoretical price at the position's remaining
// time to expiry - entry price), using intrinsic value when the position
// has already expired.
func PositionCurve(p Position, prices []float64, sigma, r float64) (PnLCurve, error) {
	if err := p.Validate(); err != nil {
		return PnLCurve{}, err
	}
	if err := validateGrid(prices); err != nil {
		return PnLCurve{}, err
	}
	if sigma <= 0 {
		return PnLCurve{}, models.NewCoreError(models.OptionsInput, "volatility must be positive, got %v", sigma)
	}
	t := p.yearsToExpiry()
	pnl := make([]float64, len(prices))
	for i, s := range prices {
		var theoretical float64
		if p.DaysToExpiry == 0 {
			theoretical = Intrinsic(p.Type, s, p.Strike)
		} else {
			theoretical = Price(p.Type, s, p.Strike, t, sigma, r)
		}
		pnl[i] = float64(p.Quantity) * (theoretical - p.EntryPrice)
	}
	return PnLCurve{UnderlyingPrices: prices, PnL: pnl}, nil
}

// GreeksAt evaluates this position's Greeks at the given current
// underlying price, scaled by quantity (a short position's Greeks are the
// negation of a long one's).
func GreeksAt(p Position, s, sigma, r float64) Greeks {
	g := ComputeGreeks(p.Type, s, p.Strike, p.yearsToExpiry(), sigma, r)
	scale := float64(p.Quantity)
	return Greeks{
		Delta: g.Delta * scale,
		Gamma: g.Gamma * scale,
		Theta: g.Theta * scale,
		Vega:  g.Vega * scale,
		Rho:   g.Rho * scale,
	}
}

// PositionResult bundles one position's curve and current-price Greeks for
// the per-position section of the options-analytics response.
type PositionResult struct {
	Position     Position
	Curve        PnLCurve
	GreeksAtSpot Greeks
}

// Portfolio is the aggregated result across all positions: the summed
// curve, extrema (absent when the payoff is unbounded past the grid
// boundary), break-even crossings, and summed Greeks.
type Portfolio struct {
	TotalCurve       PnLCurve
	MaxProfit        models.Value
	MaxLoss          models.Value
	BreakEvenPoints  []float64
	TotalGreeks      Greeks
}

// Analyze runs the full options-analytics request: per-position curves and
// Greeks, then portfolio aggregation. Any position or grid validation
// failure fails the whole request, per spec section 7's propagation rule.
func Analyze(positions []Position, prices []float64, sigma, r, currentSpot float64) ([]PositionResult, Portfolio, error) {
	if err := validateGrid(prices); err != nil {
		return nil, Portfolio{}, err
	}
	if sigma <= 0 {
		return nil, Portfolio{}, models.NewCoreError(models.OptionsInput, "volatility must be positive, got %v", sigma)
	}

	results := make([]PositionResult, len(positions))
	total := make([]float64, len(prices))
	var totalGreeks Greeks

	for i, p := range positions {
		curve, err := PositionCurve(p, prices, sigma, r)
		if err != nil {
			return nil, Portfolio{}, err
		}
		for j, v := range curve.PnL {
			total[j] += v
		}
		greeks := GreeksAt(p, currentSpot, sigma, r)
		totalGreeks = totalGreeks.Add(greeks)
		results[i] = PositionResult{Position: p, Curve: curve, GreeksAtSpot: greeks}
	}

	totalCurve := PnLCurve{UnderlyingPrices: prices, PnL: total}
	maxProfit, maxLoss := extrema(totalCurve)
	breakEvens := breakEvenPoints(totalCurve)

	return results, Portfolio{
		TotalCurve:      totalCurve,
		MaxProfit:       maxProfit,
		MaxLoss:         maxLoss,
		BreakEvenPoints: breakEvens,
		TotalGreeks:     totalGreeks,
	}, nil
}

// extrema finds the grid's max and min P&L, reporting absent in whichever
// direction the curve is still monotonically increasing (max) or
// decreasing (min) at the grid boundary -- a signal the true extremum lies
// beyond the sampled grid rather than at its edge.
func extrema(curve PnLCurve) (maxProfit, maxLoss models.Value) {
	n := len(curve.PnL)
	if n == 0 {
		return models.Absent, models.Absent
	}
	maxIdx, minIdx := 0, 0
	for i := 1; i < n; i++ {
		if curve.PnL[i] > curve.PnL[maxIdx] {
			maxIdx = i
		}
		if curve.PnL[i] < curve.PnL[minIdx] {
			minIdx = i
		}
	}
	if n < 2 {
		return models.Some(curve.PnL[maxIdx]), models.Some(curve.PnL[minIdx])
	}

	switch {
	case maxIdx == n-1 && curve.PnL[n-1] > curve.PnL[n-2]:
		maxProfit = models.Absent // still rising into the right edge: unbounded beyond the grid
	case maxIdx == 0 && curve.PnL[0] > curve.PnL[1]:
		maxProfit = models.Absent // still rising into the left edge: unbounded beyond the grid
	default:
		maxProfit = models.Some(curve.PnL[maxIdx])
	}
	switch {
	case minIdx == n-1 && curve.PnL[n-1] < curve.PnL[n-2]:
		maxLoss = models.Absent
	case minIdx == 0 && curve.PnL[0] < curve.PnL[1]:
		maxLoss = models.Absent
	default:
		maxLoss = models.Some(curve.PnL[minIdx])
	}
	return maxProfit, maxLoss
}

// breakEvenPoints finds every underlying price at which the curve crosses
// zero, by linear interpolation between adjacent grid points of opposite
// sign. A grid point that lands exactly on zero is its own break-even.
func breakEvenPoints(curve PnLCurve) []float64 {
	var out []float64
	n := len(curve.PnL)
	for i := 0; i < n; i++ {
		if curve.PnL[i] == 0 {
			out = append(out, curve.UnderlyingPrices[i])
		}
	}
	for i := 1; i < n; i++ {
		prevPnL, curPnL := curve.PnL[i-1], curve.PnL[i]
		if prevPnL == 0 || curPnL == 0 {
			continue
		}
		if math.Signbit(prevPnL) == math.Signbit(curPnL) {
			continue
		}
		prevPrice, curPrice := curve.UnderlyingPrices[i-1], curve.UnderlyingPrices[i]
		frac := -prevPnL / (curPnL - prevPnL)
		out = append(out, prevPrice+frac*(curPrice-prevPrice))
	}
	sort.Float64s(out)
	return out
}
