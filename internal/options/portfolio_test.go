package options

import (
	"testing"

	"github.com/ridopark/stoxcore/internal/models"
)

func TestPositionCurveExpiredLongCall(t *testing.T) {
	pos := Position{Type: Call, Strike: 100, Quantity: 1, EntryPrice: 5, DaysToExpiry: 0}
	grid := []float64{80, 90, 100, 110, 120}
	curve, err := PositionCurve(pos, grid, 0.2, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{-5, -5, -5, 5, 15}
	for i, w := range want {
		if !approxEqual(curve.PnL[i], w, 1e-9) {
			t.Fatalf("pnl[%d] = %v, want %v", i, curve.PnL[i], w)
		}
	}
}

func TestAnalyzeSinglePositionPortfolio(t *testing.T) {
	pos := Position{Type: Call, Strike: 100, Quantity: 1, EntryPrice: 5, DaysToExpiry: 0}
	grid := []float64{80, 90, 100, 110, 120}
	_, portfolio, err := Analyze([]Position{pos}, grid, 0.2, 0.05, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if portfolio.MaxProfit.IsAbsent() != true {
		t.Fatalf("expected max_profit absent (unbounded), got %v", portfolio.MaxProfit)
	}
	loss, ok := portfolio.MaxLoss.Get()
	if !ok || !approxEqual(loss, -5, 1e-9) {
		t.Fatalf("max_loss = %v (ok=%v), want -5", loss, ok)
	}
	if len(portfolio.BreakEvenPoints) != 1 || !approxEqual(portfolio.BreakEvenPoints[0], 105, 1e-9) {
		t.Fatalf("break_even_points = %v, want [105]", portfolio.BreakEvenPoints)
	}
}

func TestPortfolioLinearity(t *testing.T) {
	posA := Position{Type: Call, Strike: 100, Quantity: 1, EntryPrice: 5, DaysToExpiry: 30}
	posB := Position{Type: Put, Strike: 95, Quantity: -2, EntryPrice: 3, DaysToExpiry: 30}
	grid := []float64{80, 90, 100, 110, 120}

	curveA, err := PositionCurve(posA, grid, 0.25, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	curveB, err := PositionCurve(posB, grid, 0.25, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, portfolio, err := Analyze([]Position{posA, posB}, grid, 0.25, 0.05, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range grid {
		want := curveA.PnL[i] + curveB.PnL[i]
		if !approxEqual(portfolio.TotalCurve.PnL[i], want, 1e-9) {
			t.Fatalf("total[%d] = %v, want %v (A+B)", i, portfolio.TotalCurve.PnL[i], want)
		}
	}
}

func TestValidatePositionRejectsNonPositiveStrike(t *testing.T) {
	pos := Position{Type: Call, Strike: 0, Quantity: 1, EntryPrice: 5, DaysToExpiry: 10}
	if err := pos.Validate(); err == nil {
		t.Fatal("expected error for non-positive strike")
	} else if !models.IsKind(err, models.OptionsInput) {
		t.Fatalf("error kind = %v, want OptionsInput", err)
	}
}

func TestValidateGridRejectsEmptyAndNonMonotonic(t *testing.T) {
	pos := Position{Type: Call, Strike: 100, Quantity: 1, EntryPrice: 5, DaysToExpiry: 10}
	if _, err := PositionCurve(pos, nil, 0.2, 0.05); err == nil {
		t.Fatal("expected error for empty grid")
	}
	if _, err := PositionCurve(pos, []float64{100, 90, 110}, 0.2, 0.05); err == nil {
		t.Fatal("expected error for non-monotonic grid")
	}
}

func TestAnalyzeRejectsNonPositiveVolatility(t *testing.T) {
	pos := Position{Type: Call, Strike: 100, Quantity: 1, EntryPrice: 5, DaysToExpiry: 10}
	if _, _, err := Analyze([]Position{pos}, []float64{90, 100, 110}, 0, 0.05, 100); err == nil {
		t.Fatal("expected error for zero volatility")
	}
}

func TestExactZeroCrossingIsItsOwnBreakEven(t *testing.T) {
	curve := PnLCurve{UnderlyingPrices: []float64{90, 100, 110}, PnL: []float64{-5, 0, 5}}
	points := breakEvenPoints(curve)
	if len(points) != 1 || !approxEqual(points[0], 100, 1e-9) {
		t.Fatalf("break_even_points = %v, want [100]", points)
	}
}

func TestExtremaBoundedWhenInterior(t *testing.T) {
	curve := PnLCurve{UnderlyingPrices: []float64{80, 90, 100, 110, 120}, PnL: []float64{-2, -10, 5, -10, -2}}
	maxProfit, maxLoss := extrema(curve)
	p, ok := maxProfit.Get()
	if !ok || !approxEqual(p, 5, 1e-9) {
		t.Fatalf("max_profit = %v (ok=%v), want 5", p, ok)
	}
	l, ok := maxLoss.Get()
	if !ok || !approxEqual(l, -10, 1e-9) {
		t.Fatalf("max_loss = %v (ok=%v), want -10", l, ok)
	}
}
