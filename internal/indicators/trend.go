package indicators

import (
	"math"

	"github.com/ridopark/stoxcore/internal/models"
	"github.com/ridopark/stoxcore/internal/seriesutil"
)

// SMA is the simple moving average: seriesutil.RollingMean over closes.
func SMA(candles []models.Candle, period int) models.Series {
	return seriesutil.RollingMean(closes(candles), period)
}

// EMA is the exponential moving average seeded by the first `period`-bar
// SMA, per spec section 4.1.
func EMA(candles []models.Candle, period int) models.Series {
	return seriesutil.EMA(closes(candles), period)
}

// WMA is the linearly-weighted moving average: recent bars carry weight
// up to `period`, the oldest bar in the window carries weight 1.
func WMA(candles []models.Candle, period int) models.Series {
	return wmaOf(closes(candles), period)
}

func wmaOf(values []float64, period int) models.Series {
	out := make(models.Series, len(values))
	if period < 1 {
		return out
	}
	denom := float64(period*(period+1)) / 2.0
	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		weight := 1.0
		for j := i - period + 1; j <= i; j++ {
			sum += weight * values[j]
			weight++
		}
		out[i] = models.Some(sum / denom)
	}
	return out
}

// DEMA is the double exponential moving average: 2*EMA - EMA(EMA).
func DEMA(candles []models.Candle, period int) models.Series {
	e1 := EMA(candles, period)
	e2 := seriesutil.EMAFrom(e1, period)
	out := make(models.Series, len(candles))
	for i := range out {
		a, aok := e1[i].Get()
		b, bok := e2[i].Get()
		if !aok || !bok {
			continue
		}
		out[i] = models.Some(2*a - b)
	}
	return out
}

// TEMA is the triple exponential moving average: 3*EMA - 3*EMA^2 + EMA^3,
// with EMA^2 and EMA^3 being EMA applied again to the prior pass.
func TEMA(candles []models.Candle, period int) models.Series {
	e1 := EMA(candles, period)
	e2 := seriesutil.EMAFrom(e1, period)
	e3 := seriesutil.EMAFrom(e2, period)
	out := make(models.Series, len(candles))
	for i := range out {
		a, aok := e1[i].Get()
		b, bok := e2[i].Get()
		c, cok := e3[i].Get()
		if !aok || !bok || !cok {
			continue
		}
		out[i] = models.Some(3*a - 3*b + c)
	}
	return out
}

// HMA is the Hull moving average: WMA(2*WMA(C,p/2) - WMA(C,p), sqrt(p)).
func HMA(candles []models.Candle, period int) models.Series {
	c := closes(candles)
	half := period / 2
	if half < 1 {
		half = 1
	}
	sqrtPeriod := int(math.Round(math.Sqrt(float64(period))))
	if sqrtPeriod < 1 {
		sqrtPeriod = 1
	}
	wmaHalf := wmaOf(c, half)
	wmaFull := wmaOf(c, period)
	diff := make([]float64, len(c))
	start := -1
	for i := range c {
		a, aok := wmaHalf[i].Get()
		b, bok := wmaFull[i].Get()
		if !aok || !bok {
			continue
		}
		diff[i] = 2*a - b
		if start < 0 {
			start = i
		}
	}
	if start < 0 {
		return make(models.Series, len(c))
	}
	sub := wmaOf(diff[start:], sqrtPeriod)
	out := make(models.Series, len(c))
	for i, v := range sub {
		if f, ok := v.Get(); ok {
			out[start+i] = models.Some(f)
		}
	}
	return out
}

// KAMA is Kaufman's Adaptive Moving Average: the smoothing constant is
// scaled by an efficiency ratio between a fast and a slow EMA constant, so
// the average hugs price in a trend and flattens in chop.
func KAMA(candles []models.Candle, period, fast, slow int) models.Series {
	c := closes(candles)
	out := make(models.Series, len(c))
	if len(c) <= period {
		return out
	}
	fastSC := 2.0 / (float64(fast) + 1.0)
	slowSC := 2.0 / (float64(slow) + 1.0)

	seed := c[period]
	out[period] = models.Some(seed)
	prev := seed
	for i := period + 1; i < len(c); i++ {
		change := math.Abs(c[i] - c[i-period])
		volatility := 0.0
		for j := i - period + 1; j <= i; j++ {
			volatility += math.Abs(c[j] - c[j-1])
		}
		er := 0.0
		if volatility != 0 {
			er = change / volatility
		}
		sc := math.Pow(er*(fastSC-slowSC)+slowSC, 2)
		prev = prev + sc*(c[i]-prev)
		out[i] = models.Some(prev)
	}
	return out
}

// FRAMA is the Fractal Adaptive Moving Average: the smoothing constant is
// derived from a fractal dimension estimated from high/low box counts over
// two half-windows, alpha = exp(-4.6*(D-1)).
func FRAMA(candles []models.Candle, period int) models.Series {
	out := make(models.Series, len(candles))
	if period < 2 || period%2 != 0 {
		period++ // FRAMA requires an even window to split in half
	}
	if len(candles) < period {
		return out
	}
	c := closes(candles)
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += c[i]
	}
	seed /= float64(period)
	out[period-1] = models.Some(seed)
	prev := seed

	half := period / 2
	for i := period; i < len(candles); i++ {
		window := candles[i-period+1 : i+1]
		n1 := boxCount(window[:half])
		n2 := boxCount(window[half:])
		n3 := boxCount(window)

		d := 1.0
		if n1 > 0 && n2 > 0 && n3 > 0 {
			d = (math.Log(n1+n2) - math.Log(n3)) / math.Log(2)
		}
		alpha := math.Exp(-4.6 * (d - 1))
		alpha = math.Min(math.Max(alpha, 0.01), 1.0)
		prev = alpha*c[i] + (1-alpha)*prev
		out[i] = models.Some(prev)
	}
	return out
}

// boxCount is the (highest high - lowest low)/length box-counting measure
// FRAMA's fractal dimension is derived from.
func boxCount(window []models.Candle) float64 {
	if len(window) == 0 {
		return 0
	}
	hi, lo := window[0].High, window[0].Low
	for _, c := range window[1:] {
		if c.High > hi {
			hi = c.High
		}
		if c.Low < lo {
			lo = c.Low
		}
	}
	return (hi - lo) / float64(len(window))
}

func closes(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

func highs(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.High
	}
	return out
}

func lows(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Low
	}
	return out
}

func volumes(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Volume
	}
	return out
}
