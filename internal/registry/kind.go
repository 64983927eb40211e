// Package registry implements spec section 4.3: a textual-name parser and
// a static dispatch table translating names like "MACD(12,26,9)" into
// invocations of the indicator library. The table is built once at
// package init from a literal slice — no reflection, no plugin loading.
package registry

// ParamType distinguishes the two argument shapes an indicator parameter
// can take: a single decimal number, or a bracketed list of integers
// (GMMA's short/long period bundles).
type ParamType int

const (
	ParamNumber ParamType = iota
	ParamIntArray
)

func (t ParamType) String() string {
	if t == ParamIntArray {
		return "array"
	}
	return "number"
}

// ParamDef describes one positional parameter in an indicator's schema:
// its name (for the listing endpoint), its type, and its default value.
type ParamDef struct {
	Name          string
	Type          ParamType
	DefaultNumber float64
	DefaultArray  []int
}

// Kind is the closed enumeration of supported indicators (spec 4.2 table).
type Kind string

const (
	KindSMA                Kind = "SMA"
	KindEMA                Kind = "EMA"
	KindWMA                Kind = "WMA"
	KindDEMA               Kind = "DEMA"
	KindTEMA               Kind = "TEMA"
	KindHMA                Kind = "HMA"
	KindKAMA               Kind = "KAMA"
	KindFRAMA              Kind = "FRAMA"
	KindRSI                Kind = "RSI"
	KindStochastic         Kind = "STOCHASTIC"
	KindCCI                Kind = "CCI"
	KindWilliamsR          Kind = "WILLIAMS_R"
	KindMFI                Kind = "MFI"
	KindUltimateOsc        Kind = "ULTIMATE_OSC"
	KindDPO                Kind = "DETRENDED_PRICE_OSC"
	KindROC                Kind = "RATE_OF_CHANGE"
	KindMomentum           Kind = "MOMENTUM"
	KindTRIX               Kind = "TRIX"
	KindBollingerBands     Kind = "BOLLINGER_BANDS"
	KindPercentB           Kind = "PERCENT_B"
	KindMACD               Kind = "MACD"
	KindADX                Kind = "ADX"
	KindParabolicSAR       Kind = "PARABOLIC_SAR"
	KindChandelierExit     Kind = "CHANDELIER_EXIT"
	KindSchaffTrendCycle   Kind = "SCHAFF_TREND_CYCLE"
	KindVWAP               Kind = "VWAP"
	KindOBV                Kind = "OBV"
	KindCMF                Kind = "CMF"
	KindForceIndex         Kind = "FORCE_INDEX"
	KindEaseOfMovement     Kind = "EASE_OF_MOVEMENT"
	KindAccumDist          Kind = "ACCUM_DIST_LINE"
	KindPVT                Kind = "PRICE_VOLUME_TREND"
	KindVolumeOscillator   Kind = "VOLUME_OSCILLATOR"
	KindATR                Kind = "ATR"
	KindIchimoku           Kind = "ICHIMOKU"
	KindGMMA               Kind = "GMMA"
	KindFibonacci          Kind = "FIBONACCI_RETRACEMENT"
	KindKalmanFilter       Kind = "KALMAN_FILTER"
	KindHeikinAshiSlope    Kind = "HEIKIN_ASHI_SLOPE"
	KindZScore             Kind = "Z_SCORE"
)
