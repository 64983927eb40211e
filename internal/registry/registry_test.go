package registry

import (
	"testing"

	"github.com/ridopark/stoxcore/internal/models"
)

func TestParseDefaultsAndCanonicalName(t *testing.T) {
	spec, err := Parse("SMA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.CanonicalName() != "SMA" {
		t.Fatalf("canonical name = %q, want SMA", spec.CanonicalName())
	}

	spec, err = Parse("SMA(20)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.CanonicalName() != "SMA" {
		t.Fatalf("canonical name = %q, want SMA (default period elided)", spec.CanonicalName())
	}

	spec, err = Parse("SMA(50)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.CanonicalName() != "SMA(50)" {
		t.Fatalf("canonical name = %q, want SMA(50)", spec.CanonicalName())
	}
}

func TestCanonicalNameRoundTrip(t *testing.T) {
	cases := []string{
		"RSI",
		"RSI(21)",
		"MACD",
		"MACD(12,26,9)",
		"MACD(5,35,9)",
		"GMMA",
		"GMMA([3,5,8],[30,35,40])",
		"BOLLINGER_BANDS(20,2)",
		"BOLLINGER_BANDS(10,2)",
	}
	for _, name := range cases {
		spec, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", name, err)
		}
		canonical := spec.CanonicalName()
		reparsed, err := Parse(canonical)
		if err != nil {
			t.Fatalf("Parse(%q) (canonical of %q) error: %v", canonical, name, err)
		}
		if reparsed.CanonicalName() != canonical {
			t.Fatalf("round-trip mismatch: %q -> %q -> %q", name, canonical, reparsed.CanonicalName())
		}
	}
}

func TestParseUnknownIndicator(t *testing.T) {
	_, err := Parse("NOT_A_REAL_INDICATOR")
	if err == nil {
		t.Fatal("expected error for unknown indicator")
	}
	if !models.IsKind(err, models.IndicatorUnknown) {
		t.Fatalf("error kind = %v, want IndicatorUnknown", err)
	}
}

func TestParseTooManyArgs(t *testing.T) {
	_, err := Parse("SMA(20,30)")
	if err == nil {
		t.Fatal("expected error for too many arguments")
	}
	if !models.IsKind(err, models.IndicatorParamError) {
		t.Fatalf("error kind = %v, want IndicatorParamError", err)
	}
}

func TestParseArgTypeMismatch(t *testing.T) {
	if _, err := Parse("SMA([20])"); err == nil {
		t.Fatal("expected error for array where number expected")
	}
	if _, err := Parse("GMMA(20,30)"); err == nil {
		t.Fatal("expected error for number where array expected")
	}
}

// parseAndCompute runs name through Parse and then Compute; parameter
// ranges are checked when Compute invokes the indicator, not by Parse.
func parseAndCompute(name string) error {
	spec, err := Parse(name)
	if err != nil {
		return err
	}
	_, err = Compute(someCandles(30, 100), spec)
	return err
}

func TestBollingerRejectsNonPositiveK(t *testing.T) {
	if err := parseAndCompute("BOLLINGER_BANDS(20,0)"); err == nil {
		t.Fatal("expected error for k=0")
	}
	if err := parseAndCompute("BOLLINGER_BANDS(20,-1)"); err == nil {
		t.Fatal("expected error for negative k")
	}
}

func TestParabolicSARRejectsOutOfRangeStep(t *testing.T) {
	if err := parseAndCompute("PARABOLIC_SAR(0,0.2)"); err == nil {
		t.Fatal("expected error for step=0")
	}
	if err := parseAndCompute("PARABOLIC_SAR(1.5,0.2)"); err == nil {
		t.Fatal("expected error for step>1")
	}
	if err := parseAndCompute("PARABOLIC_SAR(0.3,0.2)"); err == nil {
		t.Fatal("expected error for max < step")
	}
}

func TestGMMARejectsEmptyArray(t *testing.T) {
	if err := parseAndCompute("GMMA([],[30,35])"); err == nil {
		t.Fatal("expected error for empty array")
	}
}

func someCandles(n int, start float64) []models.Candle {
	out := make([]models.Candle, n)
	for i := 0; i < n; i++ {
		c := start + float64(i)
		out[i] = models.Candle{Timestamp: int64(i), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 100}
	}
	return out
}

func TestComputeSMA(t *testing.T) {
	spec, err := Parse("SMA(3)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	candles := someCandles(5, 1)
	out, err := Compute(candles, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.IsSingle() {
		t.Fatal("expected single series output")
	}
	if !out.Single[0].IsAbsent() || !out.Single[1].IsAbsent() {
		t.Fatal("expected warm-up positions absent")
	}
	v, ok := out.Single[2].Get()
	if !ok || v != 2 {
		t.Fatalf("SMA(3)[2] = %v, ok=%v, want 2", v, ok)
	}
}

func TestComputeNamedOutput(t *testing.T) {
	spec, err := Parse("MACD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	candles := someCandles(60, 100)
	out, err := Compute(candles, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{"macd", "signal", "histogram"} {
		if _, ok := out.Named[key]; !ok {
			t.Fatalf("missing named series %q", key)
		}
	}
}

func TestSchemaCoversEveryKind(t *testing.T) {
	entries := Schema()
	if len(entries) != len(table) {
		t.Fatalf("Schema() returned %d entries, want %d", len(entries), len(table))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Kind >= entries[i].Kind {
			t.Fatalf("Schema() not sorted at index %d: %q >= %q", i, entries[i-1].Kind, entries[i].Kind)
		}
	}
}

func TestComputeEmptySeries(t *testing.T) {
	spec, _ := Parse("SMA(3)")
	if _, err := Compute(nil, spec); err == nil {
		t.Fatal("expected error computing against an empty candle series")
	}
}
