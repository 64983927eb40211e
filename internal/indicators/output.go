// Package indicators implements the library of technical-indicator
// recurrences from spec section 4.2. Every function is pure: it takes a
// read-only candle slice and parameters, and returns a models.Series (or
// an Output of several named series) aligned 1:1 with the input. Warm-up
// positions are models.Absent, never a sentinel NaN or zero. Where a
// formula divides by zero after warm-up, RSI, MFI, Stochastic, CCI,
// Williams %R and CMF emit a documented sentinel value; the other
// indicators emit models.Absent there.
package indicators

import "github.com/ridopark/stoxcore/internal/models"

// Output is an indicator's result: either a single aligned series, or a
// labeled tuple of aligned series (Bollinger's upper/middle/lower, MACD's
// macd/signal/histogram, Ichimoku's five spans, and so on). Names lists
// the sub-series keys in the order they should be presented so the
// registry and transport don't have to re-derive a stable order from a
// Go map.
type Output struct {
	Single models.Series
	Named  map[string]models.Series
	Names  []string
}

// single wraps a one-series result.
func single(s models.Series) Output {
	return Output{Single: s}
}

// named wraps a multi-series result, preserving the given key order.
func named(order []string, series map[string]models.Series) Output {
	return Output{Named: series, Names: order}
}

// IsSingle reports whether this Output carries one unlabeled series.
func (o Output) IsSingle() bool { return o.Single != nil }
