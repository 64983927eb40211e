// Package seriesutil holds the shared numerical recurrences that the
// indicator library builds on: rolling sum/mean/stdev, true range, EMA and
// Wilder smoothing seeding, and cumulative sums. Every indicator that needs
// one of these reuses it from here rather than re-implementing its own
// seed/alpha, so the whole library agrees on warm-up length and seeding
// convention (spec section 4.1 / 9).
package seriesutil

import (
	"math"

	"github.com/ridopark/stoxcore/internal/models"
)

// TypicalPrice is (H+L+C)/3, aligned to the input.
func TypicalPrice(candles []models.Candle) models.Series {
	out := make(models.Series, len(candles))
	for i, c := range candles {
		out[i] = models.Some((c.High + c.Low + c.Close) / 3.0)
	}
	return out
}

// TrueRange is max(H-L, |H-Cprev|, |L-Cprev|); absent at index 0 since
// there is no previous close.
func TrueRange(candles []models.Candle) models.Series {
	out := make(models.Series, len(candles))
	for i, c := range candles {
		if i == 0 {
			continue
		}
		prevClose := candles[i-1].Close
		tr := math.Max(c.High-c.Low, math.Max(math.Abs(c.High-prevClose), math.Abs(c.Low-prevClose)))
		out[i] = models.Some(tr)
	}
	return out
}

// RollingSum is the exact window sum over the trailing `period` elements,
// absent for the first period-1 positions.
func RollingSum(values []float64, period int) models.Series {
	out := make(models.Series, len(values))
	if period < 1 {
		return out
	}
	running := 0.0
	for i, v := range values {
		running += v
		if i >= period {
			running -= values[i-period]
		}
		if i >= period-1 {
			out[i] = models.Some(running)
		}
	}
	return out
}

// RollingMean is RollingSum divided by period.
func RollingMean(values []float64, period int) models.Series {
	sums := RollingSum(values, period)
	out := make(models.Series, len(values))
	for i, s := range sums {
		if v, ok := s.Get(); ok {
			out[i] = models.Some(v / float64(period))
		}
	}
	return out
}

// RollingStdev is the population standard deviation over the trailing
// window, absent in warm-up.
func RollingStdev(values []float64, period int) models.Series {
	out := make(models.Series, len(values))
	if period < 1 {
		return out
	}
	means := RollingMean(values, period)
	for i := period - 1; i < len(values); i++ {
		mean, _ := means[i].Get()
		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := values[j] - mean
			variance += d * d
		}
		variance /= float64(period)
		out[i] = models.Some(math.Sqrt(variance))
	}
	return out
}

// RollingHigh is the max of the trailing `period` elements, absent in
// warm-up.
func RollingHigh(values []float64, period int) models.Series {
	return rollingExtreme(values, period, func(a, b float64) bool { return b > a })
}

// RollingLow is the min of the trailing `period` elements, absent in
// warm-up.
func RollingLow(values []float64, period int) models.Series {
	return rollingExtreme(values, period, func(a, b float64) bool { return b < a })
}

func rollingExtreme(values []float64, period int, better func(cur, candidate float64) bool) models.Series {
	out := make(models.Series, len(values))
	if period < 1 {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		best := values[i-period+1]
		for j := i - period + 2; j <= i; j++ {
			if better(best, values[j]) {
				best = values[j]
			}
		}
		out[i] = models.Some(best)
	}
	return out
}

// EMA is the exponential moving average with smoothing factor
// alpha = 2/(period+1). The first `period`-element SMA is emitted as the
// seed at index period-1; positions before that are absent.
func EMA(values []float64, period int) models.Series {
	return smoothed(values, period, 2.0/(float64(period)+1.0))
}

// WilderSmoothing is the EMA variant with alpha = 1/period used by RSI,
// ADX and ATR. Indicators must use this, not EMA, wherever the formula
// calls for Wilder smoothing — the two seed identically but diverge
// immediately after due to the different alpha.
func WilderSmoothing(values []float64, period int) models.Series {
	return smoothed(values, period, 1.0/float64(period))
}

func smoothed(values []float64, period int, alpha float64) models.Series {
	out := make(models.Series, len(values))
	if period < 1 || len(values) < period {
		return out
	}
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += values[i]
	}
	seed /= float64(period)
	out[period-1] = models.Some(seed)
	prev := seed
	for i := period; i < len(values); i++ {
		prev = alpha*values[i] + (1-alpha)*prev
		out[i] = models.Some(prev)
	}
	return out
}

// EMAFrom computes an EMA the same way EMA does but explicitly seeded from
// the first `period` non-absent series elements, skipping leading absence
// in the source series. This is how nested EMAs (DEMA, TEMA, TRIX, MACD's
// signal line) apply a second or third EMA pass over an already-warmed-up
// series without re-absorbing the first pass's warm-up as more absence
// than the formula calls for.
func EMAFrom(series models.Series, period int) models.Series {
	out := make(models.Series, len(series))
	start := -1
	for i, v := range series {
		if !v.IsAbsent() {
			start = i
			break
		}
	}
	if start < 0 {
		return out
	}
	values := make([]float64, 0, len(series)-start)
	for i := start; i < len(series); i++ {
		if v, ok := series[i].Get(); ok {
			values = append(values, v)
		} else {
			values = append(values, math.NaN())
		}
	}
	sub := EMA(values, period)
	for i, v := range sub {
		if f, ok := v.Get(); ok {
			out[start+i] = models.Some(f)
		}
	}
	return out
}

// CumulativeSum returns the running total of values, present from index 0.
func CumulativeSum(values []float64) models.Series {
	out := make(models.Series, len(values))
	running := 0.0
	for i, v := range values {
		running += v
		out[i] = models.Some(running)
	}
	return out
}

// RollingMeanOfSeries is RollingMean applied to a Series that may itself
// carry a leading absent prefix (e.g. %D smoothing %K): the window only
// ever slides over the present suffix, so the result isn't biased by
// zero-substituting the absent prefix.
func RollingMeanOfSeries(s models.Series, period int) models.Series {
	out := make(models.Series, len(s))
	start := -1
	for i, v := range s {
		if !v.IsAbsent() {
			start = i
			break
		}
	}
	if start < 0 {
		return out
	}
	values := make([]float64, len(s)-start)
	for i := start; i < len(s); i++ {
		values[i-start], _ = s[i].Get()
	}
	sub := RollingMean(values, period)
	for i, v := range sub {
		if f, ok := v.Get(); ok {
			out[start+i] = models.Some(f)
		}
	}
	return out
}

// SeriesValues extracts the float64 column of a Series, substituting 0 for
// absent positions — for internal recurrences that already know they only
// operate on the series's present suffix.
func SeriesValues(s models.Series) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i], _ = v.Get()
	}
	return out
}
