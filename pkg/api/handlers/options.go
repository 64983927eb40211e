package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ridopark/stoxcore/internal/logger"
	"github.com/ridopark/stoxcore/internal/models"
	"github.com/ridopark/stoxcore/internal/options"
	"github.com/ridopark/stoxcore/pkg/api/types"
)

// OptionsHandler serves the options-analytics endpoint. Unlike the
// indicator batch, a single bad input fails the whole request: options
// inputs are small and homogeneous, so there is no useful partial result.
type OptionsHandler struct {
	logger zerolog.Logger
}

// NewOptionsHandler creates a new options API handler.
func NewOptionsHandler() *OptionsHandler {
	return &OptionsHandler{logger: logger.NewContextLogger("options_handler")}
}

// Analyze handles POST /api/v1/options/analyze.
func (h *OptionsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	correlationID := uuid.New().String()
	reqLogger := logger.NewRequestLogger(correlationID, r.Method, r.URL.Path)

	var req types.OptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		reqLogger.Error().Err(err).Msg("Failed to decode options request")
		writeError(w, correlationID, models.NewCoreError(models.OptionsInput, "malformed request body: %v", err))
		return
	}

	positions := make([]options.Position, len(req.Positions))
	for i, dto := range req.Positions {
		pos, err := dto.ToModel()
		if err != nil {
			reqLogger.Warn().Err(err).Msg("Invalid option position")
			writeError(w, correlationID, err)
			return
		}
		positions[i] = pos
	}

	results, portfolio, err := options.Analyze(positions, req.UnderlyingPrices, req.Volatility, req.RiskFreeRate, req.CurrentUnderlyingPrice)
	if err != nil {
		reqLogger.Warn().Err(err).Msg("Options analysis failed")
		writeError(w, correlationID, err)
		return
	}

	response := types.OptionsResponse{
		PerPosition: make([]types.PositionResultDTO, len(results)),
		Portfolio: types.PortfolioDTO{
			TotalPnLCurve:   types.PnLCurveDTOFromModel(portfolio.TotalCurve),
			MaxProfit:       portfolio.MaxProfit,
			MaxLoss:         portfolio.MaxLoss,
			BreakEvenPoints: portfolio.BreakEvenPoints,
			TotalGreeks:     types.GreeksDTOFromModel(portfolio.TotalGreeks),
		},
	}
	for i, res := range results {
		response.PerPosition[i] = types.PositionResultDTO{
			Position:     req.Positions[i],
			Curve:        types.PnLCurveDTOFromModel(res.Curve),
			GreeksAtSpot: types.GreeksDTOFromModel(res.GreeksAtSpot),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Correlation-ID", correlationID)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		reqLogger.Error().Err(err).Msg("Failed to encode options response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	reqLogger.Info().
		Int("positions", len(positions)).
		Int("grid_points", len(req.UnderlyingPrices)).
		Msg("Options analysis completed")
}
