package indicators

import (
	"math"

	"github.com/ridopark/stoxcore/internal/models"
	"github.com/ridopark/stoxcore/internal/seriesutil"
)

// BollingerBands is {upper, middle, lower}: middle is the SMA, the bands
// are middle +/- k standard deviations over the same window.
func BollingerBands(candles []models.Candle, period int, k float64) Output {
	c := closes(candles)
	middle := seriesutil.RollingMean(c, period)
	stdev := seriesutil.RollingStdev(c, period)
	upper := make(models.Series, len(c))
	lower := make(models.Series, len(c))
	for i := range c {
		m, mok := middle[i].Get()
		sd, sok := stdev[i].Get()
		if !mok || !sok {
			continue
		}
		upper[i] = models.Some(m + k*sd)
		lower[i] = models.Some(m - k*sd)
	}
	return named([]string{"upper", "middle", "lower"}, map[string]models.Series{
		"upper": upper, "middle": middle, "lower": lower,
	})
}

// PercentB is the close's position within the Bollinger band, 0 at the
// lower band and 1 at the upper band.
func PercentB(candles []models.Candle, period int, k float64) models.Series {
	bb := BollingerBands(candles, period, k)
	c := closes(candles)
	out := make(models.Series, len(c))
	for i := range c {
		u, uok := bb.Named["upper"][i].Get()
		l, lok := bb.Named["lower"][i].Get()
		if !uok || !lok || u == l {
			continue
		}
		out[i] = models.Some((c[i] - l) / (u - l))
	}
	return out
}

// MACD is {macd, signal, histogram}: macd is the fast EMA minus the slow
// EMA, signal is an EMA of macd, histogram is their difference.
func MACD(candles []models.Candle, fast, slow, signal int) Output {
	c := closes(candles)
	fastEMA := seriesutil.EMA(c, fast)
	slowEMA := seriesutil.EMA(c, slow)
	macd := models.Sub(fastEMA, slowEMA)
	signalLine := seriesutil.EMAFrom(macd, signal)
	hist := models.Sub(macd, signalLine)
	return named([]string{"macd", "signal", "histogram"}, map[string]models.Series{
		"macd": macd, "signal": signalLine, "histogram": hist,
	})
}

// ATR is the Average True Range: Wilder-smoothed true range.
func ATR(candles []models.Candle, period int) models.Series {
	tr := seriesutil.SeriesValues(seriesutil.TrueRange(candles))
	// true range is itself absent at index 0; skip it when smoothing so
	// the first `period` values Wilder consumes are real ranges, not the
	// zero TrueRange substitutes for the missing bar.
	if len(tr) > 0 {
		trTail := tr[1:]
		smoothed := seriesutil.WilderSmoothing(trTail, period)
		out := make(models.Series, len(candles))
		for i, v := range smoothed {
			if f, ok := v.Get(); ok {
				out[i+1] = models.Some(f)
			}
		}
		return out
	}
	return make(models.Series, len(candles))
}

// ADX is the Average Directional Index: a Wilder-smoothed average of DX,
// DX being derived from the +DI/-DI spread of Wilder-smoothed directional
// movement normalized by Wilder-smoothed true range.
func ADX(candles []models.Candle, period int) models.Series {
	n := len(candles)
	out := make(models.Series, n)
	if n < 2*period {
		return out
	}
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	tr := make([]float64, n)
	for i := 1; i < n; i++ {
		upMove := candles[i].High - candles[i-1].High
		downMove := candles[i-1].Low - candles[i].Low
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
		tr[i] = math.Max(candles[i].High-candles[i].Low,
			math.Max(math.Abs(candles[i].High-candles[i-1].Close), math.Abs(candles[i].Low-candles[i-1].Close)))
	}
	smPlusDM := seriesutil.WilderSmoothing(plusDM[1:], period)
	smMinusDM := seriesutil.WilderSmoothing(minusDM[1:], period)
	smTR := seriesutil.WilderSmoothing(tr[1:], period)

	dx := make([]float64, len(smTR))
	dxStart := -1
	for i := range smTR {
		t, tok := smTR[i].Get()
		p, pok := smPlusDM[i].Get()
		m, mok := smMinusDM[i].Get()
		if !tok || !pok || !mok || t == 0 {
			continue
		}
		plusDI := 100 * p / t
		minusDI := 100 * m / t
		sum := plusDI + minusDI
		if sum == 0 {
			dx[i] = 0
		} else {
			dx[i] = 100 * math.Abs(plusDI-minusDI) / sum
		}
		if dxStart < 0 {
			dxStart = i
		}
	}
	if dxStart < 0 {
		return out
	}
	adx := seriesutil.WilderSmoothing(dx[dxStart:], period)
	for i, v := range adx {
		if f, ok := v.Get(); ok {
			// +1 for the leading-bar skip, +dxStart for the DX warm-up.
			out[1+dxStart+i] = models.Some(f)
		}
	}
	return out
}

// ParabolicSAR is Wilder's stop-and-reverse indicator: an accelerating
// trailing stop that flips direction when price crosses it. The initial
// trend direction is taken from the sign of the first bar-to-bar close
// change, an arbitrary convention this spec inherits from its source.
func ParabolicSAR(candles []models.Candle, step, max float64) models.Series {
	n := len(candles)
	out := make(models.Series, n)
	if n < 2 {
		return out
	}
	uptrend := candles[1].Close >= candles[0].Close
	af := step
	var sar, ep float64
	if uptrend {
		sar = candles[0].Low
		ep = candles[1].High
	} else {
		sar = candles[0].High
		ep = candles[1].Low
	}
	out[1] = models.Some(sar)
	for i := 2; i < n; i++ {
		prevSAR := sar
		sar = prevSAR + af*(ep-prevSAR)

		if uptrend {
			sar = math.Min(sar, candles[i-1].Low)
			sar = math.Min(sar, candles[i-2].Low)
			if candles[i].Low < sar {
				uptrend = false
				sar = ep
				ep = candles[i].Low
				af = step
			} else {
				if candles[i].High > ep {
					ep = candles[i].High
					af = math.Min(af+step, max)
				}
			}
		} else {
			sar = math.Max(sar, candles[i-1].High)
			sar = math.Max(sar, candles[i-2].High)
			if candles[i].High > sar {
				uptrend = true
				sar = ep
				ep = candles[i].High
				af = step
			} else {
				if candles[i].Low < ep {
					ep = candles[i].Low
					af = math.Min(af+step, max)
				}
			}
		}
		out[i] = models.Some(sar)
	}
	return out
}

// ChandelierExit is {long, short}: a volatility-scaled trailing stop pair
// anchored to the rolling high/low, long = Hp - m*ATR, short = Lp + m*ATR.
func ChandelierExit(candles []models.Candle, period int, multiplier float64) Output {
	atr := ATR(candles, period)
	hh := seriesutil.RollingHigh(highs(candles), period)
	ll := seriesutil.RollingLow(lows(candles), period)
	long := make(models.Series, len(candles))
	short := make(models.Series, len(candles))
	for i := range candles {
		a, aok := atr[i].Get()
		h, hok := hh[i].Get()
		l, lok := ll[i].Get()
		if !aok || !hok || !lok {
			continue
		}
		long[i] = models.Some(h - multiplier*a)
		short[i] = models.Some(l + multiplier*a)
	}
	return named([]string{"long", "short"}, map[string]models.Series{"long": long, "short": short})
}

// SchaffTrendCycle double-smooths a %K/%D stochastic-style oscillator
// applied to MACD, rather than to price, giving earlier turn signals than
// MACD alone.
func SchaffTrendCycle(candles []models.Candle, cycle, fastK, fastD, shortP, longP int) models.Series {
	macdOut := MACD(candles, shortP, longP, fastD)
	macd := macdOut.Named["macd"]

	stochOfSeries := func(s models.Series, period int) models.Series {
		start := -1
		for i, v := range s {
			if !v.IsAbsent() {
				start = i
				break
			}
		}
		if start < 0 {
			return make(models.Series, len(s))
		}
		vals := seriesutil.SeriesValues(s[start:])
		hh := seriesutil.RollingHigh(vals, period)
		ll := seriesutil.RollingLow(vals, period)
		k := make(models.Series, len(vals))
		for i := range vals {
			h, hok := hh[i].Get()
			l, lok := ll[i].Get()
			if !hok || !lok || h == l {
				continue
			}
			k[i] = models.Some(100 * (vals[i] - l) / (h - l))
		}
		out := make(models.Series, len(s))
		for i, v := range k {
			if f, ok := v.Get(); ok {
				out[start+i] = models.Some(f)
			}
		}
		return out
	}

	pctK1 := stochOfSeries(macd, cycle)
	smoothed1 := seriesutil.RollingMeanOfSeries(pctK1, fastK)
	pctK2 := stochOfSeries(smoothed1, cycle)
	stc := seriesutil.RollingMeanOfSeries(pctK2, fastD)
	return stc
}
