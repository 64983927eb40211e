package models

import (
	"encoding/json"
)

// Value is an indicator output element: either a real number or absent.
// Absent is distinct from zero — it marks warm-up positions and positions
// where a recurrence is undefined (e.g. RSI's average-loss divide-by-zero
// is a sentinel value, not absent; see the RSI doc comment).
type Value struct {
	set bool
	f   float64
}

// Absent is the zero Value; useful as a named literal at call sites.
var Absent = Value{}

// Some wraps a present value.
func Some(f float64) Value { return Value{set: true, f: f} }

// IsAbsent reports whether v carries no value.
func (v Value) IsAbsent() bool { return !v.set }

// Get returns the wrapped float and whether it was present.
func (v Value) Get() (float64, bool) { return v.f, v.set }

// Float64 returns the wrapped value, or 0 if absent. Callers that need to
// distinguish absent-from-zero must use Get or IsAbsent instead.
func (v Value) Float64() float64 { return v.f }

// MarshalJSON serializes absent as null, matching the wire contract in
// spec section 6.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return json.Marshal(v.f)
}

// UnmarshalJSON accepts null as absent and any JSON number as present.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Absent
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*v = Some(f)
	return nil
}

// Series is an output sequence aligned 1:1 with an input candle series.
type Series []Value

// NewAbsentSeries returns a Series of n absent values, the usual starting
// point for a recurrence before its warm-up region is filled in.
func NewAbsentSeries(n int) Series {
	return make(Series, n)
}

// Map2 combines two series elementwise, propagating absence: the result is
// absent wherever either input is absent.
func Map2(a, b Series, f func(x, y float64) float64) Series {
	out := make(Series, len(a))
	for i := range a {
		av, aok := a[i].Get()
		bv, bok := b[i].Get()
		if !aok || !bok {
			continue
		}
		out[i] = Some(f(av, bv))
	}
	return out
}

// Sub returns a - b, elementwise, absent-propagating.
func Sub(a, b Series) Series {
	return Map2(a, b, func(x, y float64) float64 { return x - y })
}
