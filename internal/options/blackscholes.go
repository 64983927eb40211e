// Package options implements the Black-Scholes pricing, Greeks, and
// portfolio P&L engine from spec section 4.4. Like the indicators package
// every function is pure and takes its inputs by value; nothing here
// retains state between calls.
package options

import "math"

// OptionType distinguishes a call from a put contract.
type OptionType int

const (
	Call OptionType = iota
	Put
)

func (t OptionType) String() string {
	if t == Put {
		return "put"
	}
	return "call"
}

const sqrt2Pi = 2.5066282746310002 // math.Sqrt(2 * math.Pi)

// stdNormalPDF is phi, the standard normal density.
func stdNormalPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / sqrt2Pi
}

// stdNormalCDF is Phi, the cumulative standard normal, via the
// Abramowitz-Stegun 7.1.26 rational approximation (absolute error <= 7.5e-8).
func stdNormalCDF(x float64) float64 {
	const (
		a1 = 0.254829592
		a2 = -0.284496736
		a3 = 1.421413741
		a4 = -1.453152027
		a5 = 1.061405429
		p  = 0.3275911
	)
	sign := 1.0
	if x < 0 {
		sign = -1.0
		x = -x
	}
	x /= math.Sqrt2
	t := 1.0 / (1.0 + p*x)
	poly := ((((a5*t+a4)*t+a3)*t+a2)*t + a1) * t
	erf := 1.0 - poly*math.Exp(-x*x)
	return 0.5 * (1.0 + sign*erf)
}

// d1d2 returns the Black-Scholes d1, d2 intermediate terms.
func d1d2(s, k, t, sigma, r float64) (d1, d2 float64) {
	d1 = (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
	d2 = d1 - sigma*math.Sqrt(t)
	return d1, d2
}

// Intrinsic is the option's value at expiry: max(S-K,0) for a call,
// max(K-S,0) for a put.
func Intrinsic(optType OptionType, s, k float64) float64 {
	if optType == Call {
		return math.Max(s-k, 0)
	}
	return math.Max(k-s, 0)
}

// Price is the Black-Scholes theoretical price. At T=0 it returns the
// intrinsic value rather than evaluating d1/d2 against a zero time-to-expiry.
func Price(optType OptionType, s, k, t, sigma, r float64) float64 {
	if t <= 0 {
		return Intrinsic(optType, s, k)
	}
	d1, d2 := d1d2(s, k, t, sigma, r)
	disc := math.Exp(-r * t)
	if optType == Call {
		return s*stdNormalCDF(d1) - k*disc*stdNormalCDF(d2)
	}
	return k*disc*stdNormalCDF(-d2) - s*stdNormalCDF(-d1)
}

// Greeks is the per-contract {delta, gamma, theta, vega, rho} tuple,
// theta and rho expressed per year as specified.
type Greeks struct {
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
}

// ComputeGreeks evaluates all five Greeks at (S,K,T,sigma,r). At T=0 the
// whole tuple collapses to zero except delta, which is the slope of the
// intrinsic value: 1 for an in-the-money call, -1 for an in-the-money put,
// and 0 otherwise, including exactly at the money.
func ComputeGreeks(optType OptionType, s, k, t, sigma, r float64) Greeks {
	if t <= 0 {
		return Greeks{Delta: expiryDelta(optType, s, k)}
	}
	d1, d2 := d1d2(s, k, t, sigma, r)
	sqrtT := math.Sqrt(t)
	pdf := stdNormalPDF(d1)
	disc := math.Exp(-r * t)

	gamma := pdf / (s * sigma * sqrtT)
	vega := s * pdf * sqrtT

	var delta, theta, rho float64
	if optType == Call {
		delta = stdNormalCDF(d1)
		theta = -s*pdf*sigma/(2*sqrtT) - r*k*disc*stdNormalCDF(d2)
		rho = k * t * disc * stdNormalCDF(d2)
	} else {
		delta = stdNormalCDF(d1) - 1
		theta = -s*pdf*sigma/(2*sqrtT) + r*k*disc*stdNormalCDF(-d2)
		rho = -k * t * disc * stdNormalCDF(-d2)
	}
	return Greeks{Delta: delta, Gamma: gamma, Theta: theta, Vega: vega, Rho: rho}
}

func expiryDelta(optType OptionType, s, k float64) float64 {
	switch {
	case optType == Call && s > k:
		return 1
	case optType == Put && s < k:
		return -1
	default:
		return 0
	}
}

// Add returns the elementwise sum of two Greeks tuples, used to aggregate
// per-position Greeks into a portfolio total.
func (g Greeks) Add(o Greeks) Greeks {
	return Greeks{
		Delta: g.Delta + o.Delta,
		Gamma: g.Gamma + o.Gamma,
		Theta: g.Theta + o.Theta,
		Vega:  g.Vega + o.Vega,
		Rho:   g.Rho + o.Rho,
	}
}
