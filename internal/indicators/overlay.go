package indicators

import (
	"fmt"

	"github.com/ridopark/stoxcore/internal/models"
	"github.com/ridopark/stoxcore/internal/seriesutil"
)

// Ichimoku computes the five Ichimoku Kinko Hyo spans: conversion (Tenkan),
// base (Kijun), leading span A and B (shifted forward by disp), and the
// lagging span (close shifted back by disp).
func Ichimoku(candles []models.Candle, conv, base, spanB, disp int) Output {
	h, l, c := highs(candles), lows(candles), closes(candles)
	n := len(candles)

	midpoint := func(period int) models.Series {
		hh := seriesutil.RollingHigh(h, period)
		ll := seriesutil.RollingLow(l, period)
		out := make(models.Series, n)
		for i := 0; i < n; i++ {
			hv, hok := hh[i].Get()
			lv, lok := ll[i].Get()
			if !hok || !lok {
				continue
			}
			out[i] = models.Some((hv + lv) / 2)
		}
		return out
	}

	conversion := midpoint(conv)
	baseLine := midpoint(base)
	spanBRaw := midpoint(spanB)

	spanARaw := make(models.Series, n)
	for i := 0; i < n; i++ {
		cv, cok := conversion[i].Get()
		bv, bok := baseLine[i].Get()
		if !cok || !bok {
			continue
		}
		spanARaw[i] = models.Some((cv + bv) / 2)
	}

	shiftForward := func(s models.Series) models.Series {
		out := make(models.Series, n)
		for i := disp; i < n; i++ {
			if v, ok := s[i-disp].Get(); ok {
				out[i] = models.Some(v)
			}
		}
		return out
	}

	leadingSpanA := shiftForward(spanARaw)
	leadingSpanB := shiftForward(spanBRaw)

	laggingSpan := make(models.Series, n)
	for i := 0; i+disp < n; i++ {
		laggingSpan[i] = models.Some(c[i+disp])
	}

	return named(
		[]string{"conversion", "base", "leading_span_a", "leading_span_b", "lagging_span"},
		map[string]models.Series{
			"conversion":      conversion,
			"base":            baseLine,
			"leading_span_a":  leadingSpanA,
			"leading_span_b":  leadingSpanB,
			"lagging_span":    laggingSpan,
		},
	)
}

// GMMA is the Guppy Multiple Moving Average: an EMA line for every period
// in each of a short (fast trader) bundle and a long (investor) bundle.
// Sub-series are keyed by their bundle and period to keep collisions
// impossible between, say, short period 10 and long period 10.
func GMMA(candles []models.Candle, shortPeriods, longPeriods []int) Output {
	series := make(map[string]models.Series, len(shortPeriods)+len(longPeriods))
	order := make([]string, 0, len(shortPeriods)+len(longPeriods))
	for _, p := range shortPeriods {
		key := fmt.Sprintf("short_%d", p)
		series[key] = EMA(candles, p)
		order = append(order, key)
	}
	for _, p := range longPeriods {
		key := fmt.Sprintf("long_%d", p)
		series[key] = EMA(candles, p)
		order = append(order, key)
	}
	return named(order, series)
}

var fibLevels = []struct {
	key string
	pct float64
}{
	{"pct_0", 0.0},
	{"pct_23_6", 0.236},
	{"pct_38_2", 0.382},
	{"pct_50", 0.5},
	{"pct_61_8", 0.618},
	{"pct_78_6", 0.786},
	{"pct_100", 1.0},
}

// FibonacciRetracement computes the seven standard retracement levels
// between the rolling high and low over the trailing period, with the
// 0% level at the high and the 100% level at the low.
func FibonacciRetracement(candles []models.Candle, period int) Output {
	hh := seriesutil.RollingHigh(highs(candles), period)
	ll := seriesutil.RollingLow(lows(candles), period)
	n := len(candles)
	series := make(map[string]models.Series, len(fibLevels))
	order := make([]string, 0, len(fibLevels))
	for _, lvl := range fibLevels {
		series[lvl.key] = make(models.Series, n)
		order = append(order, lvl.key)
	}
	for i := 0; i < n; i++ {
		hv, hok := hh[i].Get()
		lv, lok := ll[i].Get()
		if !hok || !lok {
			continue
		}
		rng := hv - lv
		for _, lvl := range fibLevels {
			series[lvl.key][i] = models.Some(hv - lvl.pct*rng)
		}
	}
	return named(order, series)
}

// KalmanFilter is a scalar Kalman smoother on the close series: a process
// with measurement variance measVar and process variance procVar.
func KalmanFilter(candles []models.Candle, measVar, procVar float64) models.Series {
	c := closes(candles)
	out := make(models.Series, len(c))
	if len(c) == 0 {
		return out
	}
	estimate := c[0]
	errVar := 1.0
	out[0] = models.Some(estimate)
	for i := 1; i < len(c); i++ {
		predErrVar := errVar + procVar
		gain := predErrVar / (predErrVar + measVar)
		estimate = estimate + gain*(c[i]-estimate)
		errVar = (1 - gain) * predErrVar
		out[i] = models.Some(estimate)
	}
	return out
}

// HeikinAshiSlope is the linear-regression slope of the Heikin-Ashi close
// over the trailing period, a smoother trend-angle reading than raw-close
// regression since Heikin-Ashi close already averages out noise.
func HeikinAshiSlope(candles []models.Candle, period int) models.Series {
	n := len(candles)
	haClose := make([]float64, n)
	haOpen := make([]float64, n)
	for i, c := range candles {
		haClose[i] = (c.Open + c.High + c.Low + c.Close) / 4
		if i == 0 {
			haOpen[i] = (c.Open + c.Close) / 2
		} else {
			haOpen[i] = (haOpen[i-1] + haClose[i-1]) / 2
		}
	}
	out := make(models.Series, n)
	for i := period - 1; i < n; i++ {
		out[i] = models.Some(regressionSlope(haClose[i-period+1 : i+1]))
	}
	return out
}

// regressionSlope is the least-squares slope of y against x = 0..len(y)-1.
func regressionSlope(y []float64) float64 {
	n := float64(len(y))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// ZScore is (C - SMA(C,p)) / stdev(C,p).
func ZScore(candles []models.Candle, period int) models.Series {
	c := closes(candles)
	mean := seriesutil.RollingMean(c, period)
	stdev := seriesutil.RollingStdev(c, period)
	out := make(models.Series, len(c))
	for i := range c {
		m, mok := mean[i].Get()
		sd, sok := stdev[i].Get()
		if !mok || !sok || sd == 0 {
			continue
		}
		out[i] = models.Some((c[i] - m) / sd)
	}
	return out
}
