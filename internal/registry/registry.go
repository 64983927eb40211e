package registry

import (
	"sort"

	"github.com/ridopark/stoxcore/internal/indicators"
	"github.com/ridopark/stoxcore/internal/models"
)

// computeFunc invokes one indicator's recurrence against bound arguments,
// already validated against the entry's schema.
type computeFunc func(candles []models.Candle, bound []boundArg) (indicators.Output, error)

// entry is one row of the static dispatch table: an indicator kind, its
// positional parameter schema, and the function that computes it.
type entry struct {
	kind   Kind
	params []ParamDef
	invoke computeFunc
}

var table = buildTable()

func buildTable() map[Kind]entry {
	entries := []entry{
		{KindSMA, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 20}}, simple(func(c []models.Candle, p int) models.Series { return indicators.SMA(c, p) })},
		{KindEMA, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 20}}, simple(func(c []models.Candle, p int) models.Series { return indicators.EMA(c, p) })},
		{KindWMA, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 20}}, simple(func(c []models.Candle, p int) models.Series { return indicators.WMA(c, p) })},
		{KindDEMA, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 20}}, simple(func(c []models.Candle, p int) models.Series { return indicators.DEMA(c, p) })},
		{KindTEMA, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 20}}, simple(func(c []models.Candle, p int) models.Series { return indicators.TEMA(c, p) })},
		{KindHMA, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 20}}, simple(func(c []models.Candle, p int) models.Series { return indicators.HMA(c, p) })},
		{KindRSI, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 14}}, simple(func(c []models.Candle, p int) models.Series { return indicators.RSI(c, p) })},
		{KindCCI, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 20}}, simple(func(c []models.Candle, p int) models.Series { return indicators.CCI(c, p) })},
		{KindWilliamsR, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 14}}, simple(func(c []models.Candle, p int) models.Series { return indicators.WilliamsR(c, p) })},
		{KindMFI, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 14}}, simple(func(c []models.Candle, p int) models.Series { return indicators.MFI(c, p) })},
		{KindDPO, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 20}}, simple(func(c []models.Candle, p int) models.Series { return indicators.DetrendedPriceOscillator(c, p) })},
		{KindROC, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 12}}, simple(func(c []models.Candle, p int) models.Series { return indicators.RateOfChange(c, p) })},
		{KindMomentum, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 10}}, simple(func(c []models.Candle, p int) models.Series { return indicators.Momentum(c, p) })},
		{KindTRIX, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 15}}, simple(func(c []models.Candle, p int) models.Series { return indicators.TRIX(c, p) })},
		{KindATR, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 14}}, simple(func(c []models.Candle, p int) models.Series { return indicators.ATR(c, p) })},
		{KindADX, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 14}}, simple(func(c []models.Candle, p int) models.Series { return indicators.ADX(c, p) })},
		{KindVWAP, nil, func(c []models.Candle, _ []boundArg) (indicators.Output, error) {
			return single(indicators.VWAP(c)), nil
		}},
		{KindOBV, nil, func(c []models.Candle, _ []boundArg) (indicators.Output, error) {
			return single(indicators.OBV(c)), nil
		}},
		{KindAccumDist, nil, func(c []models.Candle, _ []boundArg) (indicators.Output, error) {
			return single(indicators.AccumDistLine(c)), nil
		}},
		{KindPVT, nil, func(c []models.Candle, _ []boundArg) (indicators.Output, error) {
			return single(indicators.PriceVolumeTrend(c)), nil
		}},
		{KindCMF, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 20}}, simple(func(c []models.Candle, p int) models.Series { return indicators.CMF(c, p) })},
		{KindForceIndex, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 13}}, simple(func(c []models.Candle, p int) models.Series { return indicators.ForceIndex(c, p) })},
		{KindEaseOfMovement, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 14}}, simple(func(c []models.Candle, p int) models.Series { return indicators.EaseOfMovement(c, p) })},
		{KindFibonacci, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 20}}, namedEntry(func(c []models.Candle, p int) indicators.Output { return indicators.FibonacciRetracement(c, p) })},
		{KindHeikinAshiSlope, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 14}}, simple(func(c []models.Candle, p int) models.Series { return indicators.HeikinAshiSlope(c, p) })},
		{KindZScore, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 20}}, simple(func(c []models.Candle, p int) models.Series { return indicators.ZScore(c, p) })},

		{KindKAMA, []ParamDef{
			{Name: "period", Type: ParamNumber, DefaultNumber: 10},
			{Name: "fast", Type: ParamNumber, DefaultNumber: 2},
			{Name: "slow", Type: ParamNumber, DefaultNumber: 30},
		}, func(c []models.Candle, bound []boundArg) (indicators.Output, error) {
			p, err := period(KindKAMA, bound, 0)
			if err != nil {
				return indicators.Output{}, err
			}
			fast, err := period(KindKAMA, bound, 1)
			if err != nil {
				return indicators.Output{}, err
			}
			slow, err := period(KindKAMA, bound, 2)
			if err != nil {
				return indicators.Output{}, err
			}
			return single(indicators.KAMA(c, p, fast, slow)), nil
		}},

		{KindFRAMA, []ParamDef{{Name: "period", Type: ParamNumber, DefaultNumber: 10}}, simple(func(c []models.Candle, p int) models.Series { return indicators.FRAMA(c, p) })},

		{KindStochastic, []ParamDef{
			{Name: "k_period", Type: ParamNumber, DefaultNumber: 14},
			{Name: "d_period", Type: ParamNumber, DefaultNumber: 3},
		}, func(c []models.Candle, bound []boundArg) (indicators.Output, error) {
			k, err := period(KindStochastic, bound, 0)
			if err != nil {
				return indicators.Output{}, err
			}
			d, err := period(KindStochastic, bound, 1)
			if err != nil {
				return indicators.Output{}, err
			}
			return indicators.Stochastic(c, k, d), nil
		}},

		{KindUltimateOsc, []ParamDef{
			{Name: "short", Type: ParamNumber, DefaultNumber: 7},
			{Name: "medium", Type: ParamNumber, DefaultNumber: 14},
			{Name: "long", Type: ParamNumber, DefaultNumber: 28},
		}, func(c []models.Candle, bound []boundArg) (indicators.Output, error) {
			s, err := period(KindUltimateOsc, bound, 0)
			if err != nil {
				return indicators.Output{}, err
			}
			m, err := period(KindUltimateOsc, bound, 1)
			if err != nil {
				return indicators.Output{}, err
			}
			l, err := period(KindUltimateOsc, bound, 2)
			if err != nil {
				return indicators.Output{}, err
			}
			return single(indicators.UltimateOscillator(c, s, m, l)), nil
		}},

		{KindBollingerBands, []ParamDef{
			{Name: "period", Type: ParamNumber, DefaultNumber: 20},
			{Name: "k", Type: ParamNumber, DefaultNumber: 2},
		}, func(c []models.Candle, bound []boundArg) (indicators.Output, error) {
			p, err := period(KindBollingerBands, bound, 0)
			if err != nil {
				return indicators.Output{}, err
			}
			k, err := positive(KindBollingerBands, bound, 1)
			if err != nil {
				return indicators.Output{}, err
			}
			return indicators.BollingerBands(c, p, k), nil
		}},

		{KindPercentB, []ParamDef{
			{Name: "period", Type: ParamNumber, DefaultNumber: 20},
			{Name: "k", Type: ParamNumber, DefaultNumber: 2},
		}, func(c []models.Candle, bound []boundArg) (indicators.Output, error) {
			p, err := period(KindPercentB, bound, 0)
			if err != nil {
				return indicators.Output{}, err
			}
			k, err := positive(KindPercentB, bound, 1)
			if err != nil {
				return indicators.Output{}, err
			}
			return single(indicators.PercentB(c, p, k)), nil
		}},

		{KindMACD, []ParamDef{
			{Name: "fast", Type: ParamNumber, DefaultNumber: 12},
			{Name: "slow", Type: ParamNumber, DefaultNumber: 26},
			{Name: "signal", Type: ParamNumber, DefaultNumber: 9},
		}, func(c []models.Candle, bound []boundArg) (indicators.Output, error) {
			f, err := period(KindMACD, bound, 0)
			if err != nil {
				return indicators.Output{}, err
			}
			s, err := period(KindMACD, bound, 1)
			if err != nil {
				return indicators.Output{}, err
			}
			sig, err := period(KindMACD, bound, 2)
			if err != nil {
				return indicators.Output{}, err
			}
			return indicators.MACD(c, f, s, sig), nil
		}},

		{KindParabolicSAR, []ParamDef{
			{Name: "step", Type: ParamNumber, DefaultNumber: 0.02},
			{Name: "max", Type: ParamNumber, DefaultNumber: 0.2},
		}, func(c []models.Candle, bound []boundArg) (indicators.Output, error) {
			step, err := unitInterval(KindParabolicSAR, bound, 0)
			if err != nil {
				return indicators.Output{}, err
			}
			max, err := unitInterval(KindParabolicSAR, bound, 1)
			if err != nil {
				return indicators.Output{}, err
			}
			if max < step {
				return indicators.Output{}, models.NewCoreError(models.IndicatorParamError,
					"%s parameter %q must be >= step, got %v", KindParabolicSAR, "max", max)
			}
			return single(indicators.ParabolicSAR(c, step, max)), nil
		}},

		{KindChandelierExit, []ParamDef{
			{Name: "period", Type: ParamNumber, DefaultNumber: 22},
			{Name: "multiplier", Type: ParamNumber, DefaultNumber: 3},
		}, func(c []models.Candle, bound []boundArg) (indicators.Output, error) {
			p, err := period(KindChandelierExit, bound, 0)
			if err != nil {
				return indicators.Output{}, err
			}
			m, err := positive(KindChandelierExit, bound, 1)
			if err != nil {
				return indicators.Output{}, err
			}
			return indicators.ChandelierExit(c, p, m), nil
		}},

		{KindSchaffTrendCycle, []ParamDef{
			{Name: "cycle", Type: ParamNumber, DefaultNumber: 10},
			{Name: "fast_k", Type: ParamNumber, DefaultNumber: 3},
			{Name: "fast_d", Type: ParamNumber, DefaultNumber: 3},
			{Name: "short_period", Type: ParamNumber, DefaultNumber: 23},
			{Name: "long_period", Type: ParamNumber, DefaultNumber: 50},
		}, func(c []models.Candle, bound []boundArg) (indicators.Output, error) {
			cycle, err := period(KindSchaffTrendCycle, bound, 0)
			if err != nil {
				return indicators.Output{}, err
			}
			fastK, err := period(KindSchaffTrendCycle, bound, 1)
			if err != nil {
				return indicators.Output{}, err
			}
			fastD, err := period(KindSchaffTrendCycle, bound, 2)
			if err != nil {
				return indicators.Output{}, err
			}
			shortP, err := period(KindSchaffTrendCycle, bound, 3)
			if err != nil {
				return indicators.Output{}, err
			}
			longP, err := period(KindSchaffTrendCycle, bound, 4)
			if err != nil {
				return indicators.Output{}, err
			}
			return single(indicators.SchaffTrendCycle(c, cycle, fastK, fastD, shortP, longP)), nil
		}},

		{KindVolumeOscillator, []ParamDef{
			{Name: "short", Type: ParamNumber, DefaultNumber: 14},
			{Name: "long", Type: ParamNumber, DefaultNumber: 28},
		}, func(c []models.Candle, bound []boundArg) (indicators.Output, error) {
			s, err := period(KindVolumeOscillator, bound, 0)
			if err != nil {
				return indicators.Output{}, err
			}
			l, err := period(KindVolumeOscillator, bound, 1)
			if err != nil {
				return indicators.Output{}, err
			}
			return single(indicators.VolumeOscillator(c, s, l)), nil
		}},

		{KindIchimoku, []ParamDef{
			{Name: "conversion_period", Type: ParamNumber, DefaultNumber: 9},
			{Name: "base_period", Type: ParamNumber, DefaultNumber: 26},
			{Name: "span_b_period", Type: ParamNumber, DefaultNumber: 52},
			{Name: "displacement", Type: ParamNumber, DefaultNumber: 26},
		}, func(c []models.Candle, bound []boundArg) (indicators.Output, error) {
			conv, err := period(KindIchimoku, bound, 0)
			if err != nil {
				return indicators.Output{}, err
			}
			base, err := period(KindIchimoku, bound, 1)
			if err != nil {
				return indicators.Output{}, err
			}
			spanB, err := period(KindIchimoku, bound, 2)
			if err != nil {
				return indicators.Output{}, err
			}
			disp, err := period(KindIchimoku, bound, 3)
			if err != nil {
				return indicators.Output{}, err
			}
			return indicators.Ichimoku(c, conv, base, spanB, disp), nil
		}},

		{KindGMMA, []ParamDef{
			{Name: "short_periods", Type: ParamIntArray, DefaultArray: []int{3, 5, 8, 10, 12, 15}},
			{Name: "long_periods", Type: ParamIntArray, DefaultArray: []int{30, 35, 40, 45, 50, 60}},
		}, func(c []models.Candle, bound []boundArg) (indicators.Output, error) {
			shortP, err := intArray(KindGMMA, bound, 0)
			if err != nil {
				return indicators.Output{}, err
			}
			longP, err := intArray(KindGMMA, bound, 1)
			if err != nil {
				return indicators.Output{}, err
			}
			return indicators.GMMA(c, shortP, longP), nil
		}},

		{KindKalmanFilter, []ParamDef{
			{Name: "measurement_variance", Type: ParamNumber, DefaultNumber: 1},
			{Name: "process_variance", Type: ParamNumber, DefaultNumber: 1},
		}, func(c []models.Candle, bound []boundArg) (indicators.Output, error) {
			measVar, err := positive(KindKalmanFilter, bound, 0)
			if err != nil {
				return indicators.Output{}, err
			}
			procVar, err := positive(KindKalmanFilter, bound, 1)
			if err != nil {
				return indicators.Output{}, err
			}
			return single(indicators.KalmanFilter(c, measVar, procVar)), nil
		}},
	}

	m := make(map[Kind]entry, len(entries))
	for _, e := range entries {
		m[e.kind] = e
	}
	return m
}

// single wraps a one-series result in an indicators.Output.
func single(s models.Series) indicators.Output {
	return indicators.Output{Single: s}
}

// simple adapts a (candles, period) -> Series function, the common case of
// a single integer period argument, into a computeFunc.
func simple(fn func([]models.Candle, int) models.Series) computeFunc {
	return func(c []models.Candle, bound []boundArg) (indicators.Output, error) {
		p, err := period(bound[0].kind(), bound, 0)
		if err != nil {
			return indicators.Output{}, err
		}
		return single(fn(c, p)), nil
	}
}

// namedEntry adapts a (candles, period) -> Output function.
func namedEntry(fn func([]models.Candle, int) indicators.Output) computeFunc {
	return func(c []models.Candle, bound []boundArg) (indicators.Output, error) {
		p, err := period(bound[0].kind(), bound, 0)
		if err != nil {
			return indicators.Output{}, err
		}
		return fn(c, p), nil
	}
}

// Spec is a fully parsed and bound indicator invocation: a kind plus its
// resolved positional arguments, ready to compute or to render back to its
// canonical textual form.
type Spec struct {
	Kind  Kind
	bound []boundArg
}

// Parse parses a textual indicator name such as "RSI(14)" or "MACD" into a
// Spec, binding arguments against the indicator's schema and defaulting any
// omitted trailing arguments.
func Parse(name string) (Spec, error) {
	kindStr, args, err := parseName(name)
	if err != nil {
		return Spec{}, err
	}
	kind := Kind(kindStr)
	e, ok := table[kind]
	if !ok {
		return Spec{}, models.NewCoreError(models.IndicatorUnknown, "unknown indicator %q", kindStr)
	}
	bound, err := bind(kind, e.params, args)
	if err != nil {
		return Spec{}, err
	}
	return Spec{Kind: kind, bound: bound}, nil
}

// CanonicalName renders the shortest textual form that reparses to this
// Spec: trailing arguments equal to their schema default are elided.
func (s Spec) CanonicalName() string {
	return canonicalName(s.Kind, s.bound)
}

// Compute runs this Spec's indicator against candles, which must already
// have passed models.CandleSeries.Validate.
func Compute(candles []models.Candle, spec Spec) (indicators.Output, error) {
	e, ok := table[spec.Kind]
	if !ok {
		return indicators.Output{}, models.NewCoreError(models.IndicatorUnknown, "unknown indicator %q", spec.Kind)
	}
	if err := minLength(spec.Kind, len(candles)); err != nil {
		return indicators.Output{}, err
	}
	return e.invoke(candles, spec.bound)
}

// minLength rejects an indicator request against an empty candle series.
// A non-empty series shorter than an indicator's warm-up is not rejected;
// it yields an all-absent result.
func minLength(kind Kind, n int) error {
	if n == 0 {
		return models.NewCoreError(models.IndicatorTooShort, "%s requires at least one candle", kind)
	}
	return nil
}

// SchemaEntry describes one indicator kind for the listing endpoint.
type SchemaEntry struct {
	Kind   Kind
	Params []ParamDef
}

// Schema lists every registered indicator kind and its parameter schema,
// sorted by kind for a stable listing response.
func Schema() []SchemaEntry {
	out := make([]SchemaEntry, 0, len(table))
	for k, e := range table {
		out = append(out, SchemaEntry{Kind: k, Params: e.params})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}
