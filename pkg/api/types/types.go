// Package types defines the JSON wire contracts for the indicator-batch,
// options-analytics, and indicator-listing endpoints (spec section 6).
package types

import (
	"time"

	"github.com/ridopark/stoxcore/internal/models"
	"github.com/ridopark/stoxcore/internal/options"
	"github.com/ridopark/stoxcore/internal/registry"
)

// CandleDTO is the wire shape of one candle: the exact fields the core's
// input contract requires, echoed back unchanged in indicator responses.
type CandleDTO struct {
	Timestamp int64    `json:"timestamp"`
	Open      float64  `json:"open"`
	High      float64  `json:"high"`
	Low       float64  `json:"low"`
	Close     float64  `json:"close"`
	AdjClose  *float64 `json:"adj_close,omitempty"`
	Volume    float64  `json:"volume"`
}

// ToModel converts the wire candle to the internal representation the
// registry and indicator library operate on.
func (c CandleDTO) ToModel() models.Candle {
	return models.Candle{
		Timestamp: c.Timestamp,
		Open:      c.Open,
		High:      c.High,
		Low:       c.Low,
		Close:     c.Close,
		AdjClose:  c.AdjClose,
		Volume:    c.Volume,
	}
}

// CandleDTOFromModel converts an internal candle back to its wire shape.
func CandleDTOFromModel(c models.Candle) CandleDTO {
	return CandleDTO{
		Timestamp: c.Timestamp,
		Open:      c.Open,
		High:      c.High,
		Low:       c.Low,
		Close:     c.Close,
		AdjClose:  c.AdjClose,
		Volume:    c.Volume,
	}
}

// IndicatorRequest is the body of POST /api/v1/indicators/compute: a
// symbol, its candle series, and the textual names of the indicators to
// compute against it.
type IndicatorRequest struct {
	Symbol     string      `json:"symbol"`
	Candles    []CandleDTO `json:"candles"`
	Indicators []string    `json:"indicators" validate:"required,min=1"`
}

// IndicatorEntry is one named indicator's result within the batch
// response: either its aligned series, or an error describing why this one
// name failed -- failures are per-name and never fail the whole batch.
type IndicatorEntry struct {
	Series models.Series `json:"series,omitempty"`
	Error  *ErrorPayload `json:"error,omitempty"`
}

// IndicatorBatchResponse is the indicator-batch endpoint's payload: the
// echoed candles alongside a map from "{canonical_name}" or
// "{canonical_name}.{sub_name}" to its aligned series.
type IndicatorBatchResponse struct {
	Symbol     string                    `json:"symbol"`
	Candles    []CandleDTO               `json:"candles"`
	Indicators map[string]IndicatorEntry `json:"indicators"`
}

// OptionPositionDTO is the wire shape of options.Position.
type OptionPositionDTO struct {
	OptionType   string  `json:"option_type"`
	Strike       float64 `json:"strike"`
	Quantity     int     `json:"quantity"`
	EntryPrice   float64 `json:"entry_price"`
	DaysToExpiry int     `json:"days_to_expiry"`
}

// ToModel converts the wire position to options.Position, translating the
// textual option_type into options.OptionType.
func (p OptionPositionDTO) ToModel() (options.Position, error) {
	var t options.OptionType
	switch p.OptionType {
	case "call", "Call", "CALL":
		t = options.Call
	case "put", "Put", "PUT":
		t = options.Put
	default:
		return options.Position{}, models.NewCoreError(models.OptionsInput, "unknown option_type %q", p.OptionType)
	}
	return options.Position{
		Type:         t,
		Strike:       p.Strike,
		Quantity:     p.Quantity,
		EntryPrice:   p.EntryPrice,
		DaysToExpiry: p.DaysToExpiry,
	}, nil
}

// GreeksDTO is the wire shape of options.Greeks.
type GreeksDTO struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// GreeksDTOFromModel converts options.Greeks to its wire shape.
func GreeksDTOFromModel(g options.Greeks) GreeksDTO {
	return GreeksDTO{Delta: g.Delta, Gamma: g.Gamma, Theta: g.Theta, Vega: g.Vega, Rho: g.Rho}
}

// PnLCurveDTO pairs the underlying price grid with the resulting P&L, the
// same length and order as the request's price grid.
type PnLCurveDTO struct {
	UnderlyingPrices []float64 `json:"underlying_prices"`
	PnL              []float64 `json:"pnl"`
}

// PnLCurveDTOFromModel converts options.PnLCurve to its wire shape.
func PnLCurveDTOFromModel(c options.PnLCurve) PnLCurveDTO {
	return PnLCurveDTO{UnderlyingPrices: c.UnderlyingPrices, PnL: c.PnL}
}

// OptionsRequest is the body of POST /api/v1/options/analyze.
type OptionsRequest struct {
	Positions              []OptionPositionDTO `json:"positions" validate:"required,min=1"`
	UnderlyingPrices       []float64            `json:"underlying_prices" validate:"required,min=1"`
	Volatility             float64              `json:"volatility"`
	RiskFreeRate           float64              `json:"risk_free_rate"`
	CurrentUnderlyingPrice float64              `json:"current_underlying_price"`
}

// PositionResultDTO is one position's curve and current-price Greeks
// within the options-analytics response.
type PositionResultDTO struct {
	Position     OptionPositionDTO `json:"position"`
	Curve        PnLCurveDTO       `json:"curve"`
	GreeksAtSpot GreeksDTO         `json:"greeks_at_current"`
}

// PortfolioDTO is the aggregated portfolio section of the options-analytics
// response. MaxProfit/MaxLoss serialize as null when the payoff is
// unbounded past the grid boundary, via models.Value's own MarshalJSON.
type PortfolioDTO struct {
	TotalPnLCurve   PnLCurveDTO   `json:"total_pnl_curve"`
	MaxProfit       models.Value  `json:"max_profit"`
	MaxLoss         models.Value  `json:"max_loss"`
	BreakEvenPoints []float64     `json:"break_even_points"`
	TotalGreeks     GreeksDTO     `json:"total_greeks"`
}

// OptionsResponse is the full payload of the options-analytics endpoint.
type OptionsResponse struct {
	PerPosition []PositionResultDTO `json:"per_position"`
	Portfolio   PortfolioDTO        `json:"portfolio"`
}

// IndicatorSchemaEntry describes one registered indicator kind for the
// listing endpoint: its name and ordered parameter schema.
type IndicatorSchemaEntry struct {
	Kind   string            `json:"kind"`
	Params []ParamSchemaDTO  `json:"params"`
}

// ParamSchemaDTO is one parameter's wire-visible schema: name, type
// ("number" or "array"), and default value.
type ParamSchemaDTO struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	DefaultNumber float64 `json:"default_number,omitempty"`
	DefaultArray  []int   `json:"default_array,omitempty"`
}

// IndicatorSchemaEntryFromRegistry converts a registry.SchemaEntry to its
// wire shape.
func IndicatorSchemaEntryFromRegistry(e registry.SchemaEntry) IndicatorSchemaEntry {
	params := make([]ParamSchemaDTO, len(e.Params))
	for i, p := range e.Params {
		params[i] = ParamSchemaDTO{
			Name:          p.Name,
			Type:          p.Type.String(),
			DefaultNumber: p.DefaultNumber,
			DefaultArray:  p.DefaultArray,
		}
	}
	return IndicatorSchemaEntry{Kind: string(e.Kind), Params: params}
}

// IndicatorSchemaResponse is the payload of GET /api/v1/indicators/schema.
type IndicatorSchemaResponse struct {
	Indicators []IndicatorSchemaEntry `json:"indicators"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// ErrorPayload is the wire shape of a models.CoreError.
type ErrorPayload struct {
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message"`
}

// ErrorPayloadFromError converts an error into its wire shape, falling
// back to a generic kind when err is not a *models.CoreError.
func ErrorPayloadFromError(err error) ErrorPayload {
	var ce *models.CoreError
	if models.AsCoreError(err, &ce) {
		return ErrorPayload{ErrorKind: string(ce.Kind), Message: ce.Message}
	}
	return ErrorPayload{ErrorKind: "Internal", Message: err.Error()}
}

// ErrorResponse represents a top-level error response.
type ErrorResponse struct {
	ErrorPayload
	CorrelationID string    `json:"correlation_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}
