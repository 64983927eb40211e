package models

import "math"

// Candle is one time-bucketed OHLCV bar. Timestamp is seconds since the
// Unix epoch. AdjClose is optional and defaults to Close when nil.
type Candle struct {
	Timestamp int64    `json:"timestamp"`
	Open      float64  `json:"open"`
	High      float64  `json:"high"`
	Low       float64  `json:"low"`
	Close     float64  `json:"close"`
	AdjClose  *float64 `json:"adj_close,omitempty"`
	Volume    float64  `json:"volume"`
}

// AdjustedClose returns AdjClose when present, otherwise Close.
func (c Candle) AdjustedClose() float64 {
	if c.AdjClose != nil {
		return *c.AdjClose
	}
	return c.Close
}

// Metadata describes a CandleSeries's provenance. None of it affects
// indicator math; it is carried through for the transport layer.
type Metadata struct {
	Exchange string `json:"exchange,omitempty"`
	Currency string `json:"currency,omitempty"`
	Interval string `json:"interval,omitempty"`
}

// CandleSeries is an ordered, read-only sequence of candles for one symbol.
// Construction is the external fetcher's job; indicators and analytics only
// ever read a CandleSeries, never mutate it.
type CandleSeries struct {
	Symbol   string
	Metadata Metadata
	Candles  []Candle
}

// Validate checks the input-shape invariants every indicator and the
// registry assume hold before any computation runs: a non-empty series,
// finite fields, and strictly increasing timestamps.
func (s CandleSeries) Validate() error {
	if len(s.Candles) == 0 {
		return NewCoreError(InputShape, "candle series is empty")
	}
	for i, c := range s.Candles {
		if !finite(c.Open) || !finite(c.High) || !finite(c.Low) || !finite(c.Close) || !finite(c.Volume) {
			return NewCoreError(InputShape, "candle at index %d contains a non-finite field", i)
		}
		if c.Volume < 0 {
			return NewCoreError(InputShape, "candle at index %d has negative volume", i)
		}
		if i > 0 && c.Timestamp <= s.Candles[i-1].Timestamp {
			return NewCoreError(InputShape, "timestamps are not strictly increasing at index %d", i)
		}
	}
	return nil
}

// Closes extracts the close-price column, the most commonly consumed
// column across the indicator library.
func (s CandleSeries) Closes() []float64 {
	out := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		out[i] = c.Close
	}
	return out
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
