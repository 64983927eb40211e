package indicators

import (
	"math"

	"github.com/ridopark/stoxcore/internal/models"
	"github.com/ridopark/stoxcore/internal/seriesutil"
)

// RSI is the Relative Strength Index: 100 - 100/(1+RS), RS being the ratio
// of Wilder-smoothed average gain to average loss. A zero average loss
// emits the documented sentinel 100 rather than absent; a zero average
// gain (all losses) emits 0; when both are zero (a flat window) it emits 50.
func RSI(candles []models.Candle, period int) models.Series {
	c := closes(candles)
	out := make(models.Series, len(c))
	if len(c) <= period {
		return out
	}
	gains := make([]float64, len(c))
	losses := make([]float64, len(c))
	for i := 1; i < len(c); i++ {
		delta := c[i] - c[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}
	avgGain := seriesutil.WilderSmoothing(gains, period)
	avgLoss := seriesutil.WilderSmoothing(losses, period)
	for i := period; i < len(c); i++ {
		g, gok := avgGain[i].Get()
		l, lok := avgLoss[i].Get()
		if !gok || !lok {
			continue
		}
		switch {
		case l == 0 && g == 0:
			out[i] = models.Some(50)
		case l == 0:
			out[i] = models.Some(100)
		case g == 0:
			out[i] = models.Some(0)
		default:
			rs := g / l
			out[i] = models.Some(100 - 100/(1+rs))
		}
	}
	return out
}

// Stochastic is the %K/%D oscillator: %K measures close against the
// trailing high/low range, %D is an SMA of %K.
func Stochastic(candles []models.Candle, kPeriod, dPeriod int) Output {
	h, l, c := highs(candles), lows(candles), closes(candles)
	hh := seriesutil.RollingHigh(h, kPeriod)
	ll := seriesutil.RollingLow(l, kPeriod)
	k := make(models.Series, len(c))
	for i := range c {
		hiv, hok := hh[i].Get()
		lov, lok := ll[i].Get()
		if !hok || !lok {
			continue
		}
		if hiv == lov {
			k[i] = models.Some(0)
			continue
		}
		k[i] = models.Some(100 * (c[i] - lov) / (hiv - lov))
	}
	d := seriesutil.RollingMeanOfSeries(k, dPeriod)
	return named([]string{"k", "d"}, map[string]models.Series{"k": k, "d": d})
}

// CCI is the Commodity Channel Index: deviation of typical price from its
// SMA, scaled by the mean absolute deviation.
func CCI(candles []models.Candle, period int) models.Series {
	tp := seriesutil.SeriesValues(seriesutil.TypicalPrice(candles))
	sma := seriesutil.RollingMean(tp, period)
	out := make(models.Series, len(candles))
	for i := period - 1; i < len(candles); i++ {
		mean, ok := sma[i].Get()
		if !ok {
			continue
		}
		mad := 0.0
		for j := i - period + 1; j <= i; j++ {
			mad += math.Abs(tp[j] - mean)
		}
		mad /= float64(period)
		if mad == 0 {
			out[i] = models.Some(0)
			continue
		}
		out[i] = models.Some((tp[i] - mean) / (0.015 * mad))
	}
	return out
}

// WilliamsR is Williams %R: -100*(Hp-C)/(Hp-Lp) over the trailing period.
func WilliamsR(candles []models.Candle, period int) models.Series {
	h, l, c := highs(candles), lows(candles), closes(candles)
	hh := seriesutil.RollingHigh(h, period)
	ll := seriesutil.RollingLow(l, period)
	out := make(models.Series, len(candles))
	for i := range candles {
		hiv, hok := hh[i].Get()
		lov, lok := ll[i].Get()
		if !hok || !lok {
			continue
		}
		if hiv == lov {
			out[i] = models.Some(0)
			continue
		}
		out[i] = models.Some(-100 * (hiv - c[i]) / (hiv - lov))
	}
	return out
}

// MFI is the Money Flow Index: a volume-weighted RSI computed over
// typical price.
func MFI(candles []models.Candle, period int) models.Series {
	tp := seriesutil.SeriesValues(seriesutil.TypicalPrice(candles))
	out := make(models.Series, len(candles))
	if len(candles) <= period {
		return out
	}
	posFlow := make([]float64, len(candles))
	negFlow := make([]float64, len(candles))
	for i := 1; i < len(candles); i++ {
		mf := tp[i] * candles[i].Volume
		if tp[i] > tp[i-1] {
			posFlow[i] = mf
		} else if tp[i] < tp[i-1] {
			negFlow[i] = mf
		}
	}
	posSum := seriesutil.RollingSum(posFlow, period)
	negSum := seriesutil.RollingSum(negFlow, period)
	for i := period; i < len(candles); i++ {
		p, pok := posSum[i].Get()
		n, nok := negSum[i].Get()
		if !pok || !nok {
			continue
		}
		switch {
		case n == 0 && p == 0:
			out[i] = models.Some(50)
		case n == 0:
			out[i] = models.Some(100)
		case p == 0:
			out[i] = models.Some(0)
		default:
			ratio := p / n
			out[i] = models.Some(100 - 100/(1+ratio))
		}
	}
	return out
}

// UltimateOscillator blends three buying-pressure-over-true-range averages
// at short, medium and long periods: 100*(4*A_s+2*A_m+A_l)/7.
func UltimateOscillator(candles []models.Candle, short, medium, long int) models.Series {
	n := len(candles)
	bp := make([]float64, n)
	tr := make([]float64, n)
	for i := 1; i < n; i++ {
		low := math.Min(candles[i].Low, candles[i-1].Close)
		high := math.Max(candles[i].High, candles[i-1].Close)
		bp[i] = candles[i].Close - low
		tr[i] = high - low
	}
	avg := func(period int) models.Series {
		bpSum := seriesutil.RollingSum(bp, period)
		trSum := seriesutil.RollingSum(tr, period)
		out := make(models.Series, n)
		for i := range out {
			b, bok := bpSum[i].Get()
			t, tok := trSum[i].Get()
			if !bok || !tok || t == 0 {
				continue
			}
			out[i] = models.Some(b / t)
		}
		return out
	}
	as, am, al := avg(short), avg(medium), avg(long)
	out := make(models.Series, n)
	start := long
	if start < 1 {
		start = 1
	}
	for i := start; i < n; i++ {
		a, aok := as[i].Get()
		m, mok := am[i].Get()
		l, lok := al[i].Get()
		if !aok || !mok || !lok {
			continue
		}
		out[i] = models.Some(100 * (4*a + 2*m + l) / 7)
	}
	return out
}

// DetrendedPriceOscillator compares a historical close to a centered SMA:
// C_{t-(p/2+1)} - SMA(C,p).
func DetrendedPriceOscillator(candles []models.Candle, period int) models.Series {
	c := closes(candles)
	sma := seriesutil.RollingMean(c, period)
	shift := period/2 + 1
	out := make(models.Series, len(c))
	for i := period - 1; i < len(c); i++ {
		mean, ok := sma[i].Get()
		if !ok {
			continue
		}
		idx := i - shift
		if idx < 0 {
			continue
		}
		out[i] = models.Some(c[idx] - mean)
	}
	return out
}

// RateOfChange is 100*(C_t-C_{t-p})/C_{t-p}.
func RateOfChange(candles []models.Candle, period int) models.Series {
	c := closes(candles)
	out := make(models.Series, len(c))
	for i := period; i < len(c); i++ {
		if c[i-period] == 0 {
			continue
		}
		out[i] = models.Some(100 * (c[i] - c[i-period]) / c[i-period])
	}
	return out
}

// Momentum is C_t - C_{t-p}.
func Momentum(candles []models.Candle, period int) models.Series {
	c := closes(candles)
	out := make(models.Series, len(c))
	for i := period; i < len(c); i++ {
		out[i] = models.Some(c[i] - c[i-period])
	}
	return out
}

// TRIX is 100 times the rate of change of a triple-smoothed EMA of log
// price: EMA(EMA(EMA(ln C, p), p), p). Absent for the first 3p-2 bars —
// three cascaded EMA seeds, each consuming p-1 more bars than the last,
// plus the final rate-of-change needing one prior value.
func TRIX(candles []models.Candle, period int) models.Series {
	c := closes(candles)
	logClose := make([]float64, len(c))
	for i, v := range c {
		if v > 0 {
			logClose[i] = math.Log(v)
		}
	}
	e1 := seriesutil.EMA(logClose, period)
	e2 := seriesutil.EMAFrom(e1, period)
	e3 := seriesutil.EMAFrom(e2, period)
	out := make(models.Series, len(c))
	var prev float64
	havePrev := false
	for i := range c {
		v, ok := e3[i].Get()
		if !ok {
			continue
		}
		if havePrev && prev != 0 {
			out[i] = models.Some(100 * (v - prev) / prev)
		}
		prev = v
		havePrev = true
	}
	return out
}
