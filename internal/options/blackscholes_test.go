package options

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func TestPriceReferenceValues(t *testing.T) {
	call := Price(Call, 100, 100, 1, 0.2, 0.05)
	put := Price(Put, 100, 100, 1, 0.2, 0.05)
	if !approxEqual(call, 10.4506, 1e-4) {
		t.Fatalf("call = %v, want ~10.4506", call)
	}
	if !approxEqual(put, 5.5735, 1e-4) {
		t.Fatalf("put = %v, want ~5.5735", put)
	}
}

func TestPutCallParity(t *testing.T) {
	s, k, tYears, sigma, r := 100.0, 95.0, 0.5, 0.25, 0.03
	call := Price(Call, s, k, tYears, sigma, r)
	put := Price(Put, s, k, tYears, sigma, r)
	lhs := call - put
	rhs := s - k*math.Exp(-r*tYears)
	if !approxEqual(lhs, rhs, 1e-8) {
		t.Fatalf("put-call parity violated: call-put=%v, s-k*e^-rT=%v", lhs, rhs)
	}
}

func TestGreeksIdentities(t *testing.T) {
	s, k, tYears, sigma, r := 100.0, 100.0, 1.0, 0.2, 0.05
	callG := ComputeGreeks(Call, s, k, tYears, sigma, r)
	putG := ComputeGreeks(Put, s, k, tYears, sigma, r)

	if !approxEqual(callG.Delta-putG.Delta, 1, 1e-8) {
		t.Fatalf("delta_call - delta_put = %v, want 1", callG.Delta-putG.Delta)
	}
	if !approxEqual(callG.Gamma, putG.Gamma, 1e-10) {
		t.Fatalf("gamma_call != gamma_put: %v vs %v", callG.Gamma, putG.Gamma)
	}
	if !approxEqual(callG.Vega, putG.Vega, 1e-10) {
		t.Fatalf("vega_call != vega_put: %v vs %v", callG.Vega, putG.Vega)
	}
	if !approxEqual(callG.Delta, 0.6368, 1e-3) {
		t.Fatalf("delta_call = %v, want ~0.6368", callG.Delta)
	}
}

func TestIntrinsicAtExpiry(t *testing.T) {
	if v := Price(Call, 110, 100, 0, 0.2, 0.05); v != 10 {
		t.Fatalf("call intrinsic = %v, want 10", v)
	}
	if v := Price(Put, 90, 100, 0, 0.2, 0.05); v != 10 {
		t.Fatalf("put intrinsic = %v, want 10", v)
	}
	if v := Price(Call, 90, 100, 0, 0.2, 0.05); v != 0 {
		t.Fatalf("out-of-money call intrinsic = %v, want 0", v)
	}
}

func TestStdNormalCDFKnownPoints(t *testing.T) {
	if !approxEqual(stdNormalCDF(0), 0.5, 1e-8) {
		t.Fatalf("Phi(0) = %v, want 0.5", stdNormalCDF(0))
	}
	if !approxEqual(stdNormalCDF(1.959964), 0.975, 1e-4) {
		t.Fatalf("Phi(1.96) = %v, want ~0.975", stdNormalCDF(1.959964))
	}
}
