package indicators

import (
	"github.com/ridopark/stoxcore/internal/models"
	"github.com/ridopark/stoxcore/internal/seriesutil"
)

// VWAP is the cumulative volume-weighted average price over the whole
// series. The source this spec follows does not reset VWAP per trading
// session; this is preserved here as a domain-questionable but
// spec-mandated choice (see SPEC_FULL.md open question 3) rather than
// silently introducing a session boundary the rest of the library doesn't
// know about.
func VWAP(candles []models.Candle) models.Series {
	tp := seriesutil.SeriesValues(seriesutil.TypicalPrice(candles))
	pv := make([]float64, len(candles))
	v := make([]float64, len(candles))
	for i, c := range candles {
		pv[i] = tp[i] * c.Volume
		v[i] = c.Volume
	}
	cumPV := seriesutil.CumulativeSum(pv)
	cumV := seriesutil.CumulativeSum(v)
	out := make(models.Series, len(candles))
	for i := range candles {
		totalV, _ := cumV[i].Get()
		if totalV == 0 {
			continue
		}
		totalPV, _ := cumPV[i].Get()
		out[i] = models.Some(totalPV / totalV)
	}
	return out
}

// OBV is On-Balance Volume: a running total of volume signed by the
// direction of the close-to-close change.
func OBV(candles []models.Candle) models.Series {
	out := make(models.Series, len(candles))
	if len(candles) == 0 {
		return out
	}
	running := candles[0].Volume
	out[0] = models.Some(running)
	for i := 1; i < len(candles); i++ {
		switch {
		case candles[i].Close > candles[i-1].Close:
			running += candles[i].Volume
		case candles[i].Close < candles[i-1].Close:
			running -= candles[i].Volume
		}
		out[i] = models.Some(running)
	}
	return out
}

// moneyFlowVolume is the per-bar Accumulation/Distribution money flow
// volume: MF_mult * volume, with MF_mult = ((C-L)-(H-C))/(H-L), 0 when
// H==L.
func moneyFlowVolume(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		if c.High == c.Low {
			continue
		}
		mult := ((c.Close - c.Low) - (c.High - c.Close)) / (c.High - c.Low)
		out[i] = mult * c.Volume
	}
	return out
}

// CMF is the Chaikin Money Flow: the ratio of summed money-flow volume to
// summed volume over the trailing period.
func CMF(candles []models.Candle, period int) models.Series {
	mfv := moneyFlowVolume(candles)
	vol := volumes(candles)
	mfvSum := seriesutil.RollingSum(mfv, period)
	volSum := seriesutil.RollingSum(vol, period)
	out := make(models.Series, len(candles))
	for i := range candles {
		m, mok := mfvSum[i].Get()
		v, vok := volSum[i].Get()
		if !mok || !vok {
			continue
		}
		if v == 0 {
			out[i] = models.Some(0)
			continue
		}
		out[i] = models.Some(m / v)
	}
	return out
}

// ForceIndex is an EMA of close-change times volume, combining direction,
// magnitude, and volume into one oscillator.
func ForceIndex(candles []models.Candle, period int) models.Series {
	raw := make([]float64, len(candles))
	for i := 1; i < len(candles); i++ {
		raw[i] = (candles[i].Close - candles[i-1].Close) * candles[i].Volume
	}
	out := seriesutil.EMA(raw[1:], period)
	shifted := make(models.Series, len(candles))
	for i, v := range out {
		if f, ok := v.Get(); ok {
			shifted[i+1] = models.Some(f)
		}
	}
	return shifted
}

// EaseOfMovement is an SMA of ((H+L)/2 - prev midpoint)*(H-L)/V, rewarding
// price moves that occur on light volume.
func EaseOfMovement(candles []models.Candle, period int) models.Series {
	raw := make([]float64, len(candles))
	for i := 1; i < len(candles); i++ {
		if candles[i].Volume == 0 {
			continue
		}
		mid := (candles[i].High + candles[i].Low) / 2.0
		prevMid := (candles[i-1].High + candles[i-1].Low) / 2.0
		raw[i] = (mid - prevMid) * (candles[i].High - candles[i].Low) / candles[i].Volume
	}
	out := seriesutil.RollingMean(raw[1:], period)
	shifted := make(models.Series, len(candles))
	for i, v := range out {
		if f, ok := v.Get(); ok {
			shifted[i+1] = models.Some(f)
		}
	}
	return shifted
}

// AccumDistLine is the cumulative Accumulation/Distribution money flow
// volume.
func AccumDistLine(candles []models.Candle) models.Series {
	return seriesutil.CumulativeSum(moneyFlowVolume(candles))
}

// PriceVolumeTrend is the cumulative sum of V*(C-Cprev)/Cprev.
func PriceVolumeTrend(candles []models.Candle) models.Series {
	raw := make([]float64, len(candles))
	for i := 1; i < len(candles); i++ {
		if candles[i-1].Close == 0 {
			continue
		}
		raw[i] = candles[i].Volume * (candles[i].Close - candles[i-1].Close) / candles[i-1].Close
	}
	return seriesutil.CumulativeSum(raw)
}

// VolumeOscillator is 100*(EMA(V,short)-EMA(V,long))/EMA(V,long).
func VolumeOscillator(candles []models.Candle, short, long int) models.Series {
	v := volumes(candles)
	shortEMA := seriesutil.EMA(v, short)
	longEMA := seriesutil.EMA(v, long)
	out := make(models.Series, len(candles))
	for i := range candles {
		s, sok := shortEMA[i].Get()
		l, lok := longEMA[i].Get()
		if !sok || !lok || l == 0 {
			continue
		}
		out[i] = models.Some(100 * (s - l) / l)
	}
	return out
}
