//go:build js && wasm

// Package main is the in-browser compute boundary: it exports the
// registry's indicator dispatch and the options-analytics engine through
// syscall/js so a host page can call this core directly on candle and
// position data already sitting in the page's memory, with no network
// round trip. Every exported function runs synchronously to completion;
// none of it spawns a goroutine or returns a Promise.
package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/ridopark/stoxcore/internal/models"
	"github.com/ridopark/stoxcore/internal/options"
	"github.com/ridopark/stoxcore/internal/registry"
)

func main() {
	js.Global().Set("stoxcoreComputeIndicator", js.FuncOf(computeIndicator))
	js.Global().Set("stoxcoreIndicatorSchema", js.FuncOf(indicatorSchema))
	js.Global().Set("stoxcoreAnalyzeOptions", js.FuncOf(analyzeOptions))

	select {}
}

// computeIndicator(candlesJSON string, name string) -> {result: ..., error: ...}
func computeIndicator(this js.Value, args []js.Value) any {
	if len(args) != 2 {
		return errorResult("computeIndicator expects (candlesJSON, name)")
	}

	var candles []models.Candle
	if err := json.Unmarshal([]byte(args[0].String()), &candles); err != nil {
		return errorResult("invalid candles JSON: " + err.Error())
	}
	if err := (models.CandleSeries{Candles: candles}).Validate(); err != nil {
		return errorResult(err.Error())
	}

	spec, err := registry.Parse(args[1].String())
	if err != nil {
		return errorResult(err.Error())
	}

	out, err := registry.Compute(candles, spec)
	if err != nil {
		return errorResult(err.Error())
	}

	return jsonResult(out)
}

// indicatorSchema() -> {result: [...schema entries...]}
func indicatorSchema(this js.Value, args []js.Value) any {
	return jsonResult(registry.Schema())
}

// analyzeOptions(positionsJSON, pricesJSON string, sigma, r, spot float64) -> {result: {positions, portfolio}}
func analyzeOptions(this js.Value, args []js.Value) any {
	if len(args) != 5 {
		return errorResult("analyzeOptions expects (positionsJSON, pricesJSON, sigma, r, spot)")
	}

	var positions []options.Position
	if err := json.Unmarshal([]byte(args[0].String()), &positions); err != nil {
		return errorResult("invalid positions JSON: " + err.Error())
	}
	var prices []float64
	if err := json.Unmarshal([]byte(args[1].String()), &prices); err != nil {
		return errorResult("invalid prices JSON: " + err.Error())
	}

	results, portfolio, err := options.Analyze(positions, prices, args[2].Float(), args[3].Float(), args[4].Float())
	if err != nil {
		return errorResult(err.Error())
	}

	return jsonResult(struct {
		Positions []options.PositionResult `json:"positions"`
		Portfolio options.Portfolio        `json:"portfolio"`
	}{results, portfolio})
}

func jsonResult(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return errorResult("failed to encode result: " + err.Error())
	}
	return map[string]any{"result": string(b), "error": nil}
}

func errorResult(msg string) map[string]any {
	return map[string]any{"result": nil, "error": msg}
}
