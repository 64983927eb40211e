package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ridopark/stoxcore/internal/indicators"
	"github.com/ridopark/stoxcore/internal/logger"
	"github.com/ridopark/stoxcore/internal/models"
	"github.com/ridopark/stoxcore/internal/registry"
	"github.com/ridopark/stoxcore/pkg/api/types"
)

// IndicatorHandler serves the indicator-batch compute endpoint and the
// registry listing endpoint.
type IndicatorHandler struct {
	logger zerolog.Logger
}

// NewIndicatorHandler creates a new indicator API handler.
func NewIndicatorHandler() *IndicatorHandler {
	return &IndicatorHandler{logger: logger.NewContextLogger("indicator_handler")}
}

// Compute handles POST /api/v1/indicators/compute: parses each requested
// indicator name, computes it against the request's candles, and returns a
// per-name map of aligned series. A bad name fails only that entry, never
// the whole batch.
func (h *IndicatorHandler) Compute(w http.ResponseWriter, r *http.Request) {
	correlationID := uuid.New().String()
	reqLogger := logger.NewRequestLogger(correlationID, r.Method, r.URL.Path)

	var req types.IndicatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		reqLogger.Error().Err(err).Msg("Failed to decode indicator request")
		writeError(w, correlationID, models.NewCoreError(models.InputShape, "malformed request body: %v", err))
		return
	}

	candles := make([]models.Candle, len(req.Candles))
	for i, c := range req.Candles {
		candles[i] = c.ToModel()
	}
	series := models.CandleSeries{Symbol: req.Symbol, Candles: candles}
	if err := series.Validate(); err != nil {
		reqLogger.Error().Err(err).Str("symbol", req.Symbol).Msg("Invalid candle series")
		writeError(w, correlationID, err)
		return
	}

	response := types.IndicatorBatchResponse{
		Symbol:     req.Symbol,
		Candles:    req.Candles,
		Indicators: make(map[string]types.IndicatorEntry, len(req.Indicators)),
	}

	for _, name := range req.Indicators {
		spec, err := registry.Parse(name)
		if err != nil {
			reqLogger.Warn().Err(err).Str("indicator", name).Msg("Failed to parse indicator name")
			response.Indicators[name] = types.IndicatorEntry{Error: errPtr(types.ErrorPayloadFromError(err))}
			continue
		}
		canonical := spec.CanonicalName()
		out, err := registry.Compute(candles, spec)
		if err != nil {
			reqLogger.Warn().Err(err).Str("indicator", canonical).Msg("Failed to compute indicator")
			response.Indicators[canonical] = types.IndicatorEntry{Error: errPtr(types.ErrorPayloadFromError(err))}
			continue
		}
		addIndicatorResult(response.Indicators, canonical, out)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Correlation-ID", correlationID)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		reqLogger.Error().Err(err).Msg("Failed to encode indicator response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	reqLogger.Info().
		Str("symbol", req.Symbol).
		Int("requested", len(req.Indicators)).
		Msg("Indicator batch completed")
}

// Schema handles GET /api/v1/indicators/schema: the stable listing of
// every registered indicator kind and its parameter schema.
func (h *IndicatorHandler) Schema(w http.ResponseWriter, r *http.Request) {
	entries := registry.Schema()
	out := make([]types.IndicatorSchemaEntry, len(entries))
	for i, e := range entries {
		out[i] = types.IndicatorSchemaEntryFromRegistry(e)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(types.IndicatorSchemaResponse{Indicators: out})
}

// addIndicatorResult writes a single indicator's Output into the response
// map, splitting a named (multi-series) output into "{name}.{sub}" keys.
func addIndicatorResult(dst map[string]types.IndicatorEntry, canonical string, out indicators.Output) {
	if out.IsSingle() {
		dst[canonical] = types.IndicatorEntry{Series: out.Single}
		return
	}
	for _, sub := range out.Names {
		dst[canonical+"."+sub] = types.IndicatorEntry{Series: out.Named[sub]}
	}
}

func errPtr(p types.ErrorPayload) *types.ErrorPayload { return &p }
