package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ridopark/stoxcore/internal/models"
	"github.com/ridopark/stoxcore/pkg/api/types"
)

// writeError writes a typed error response, mapping the core's error kind
// to an HTTP status code.
func writeError(w http.ResponseWriter, correlationID string, err error) {
	payload := types.ErrorPayloadFromError(err)
	status := http.StatusBadRequest
	var ce *models.CoreError
	if models.AsCoreError(err, &ce) {
		status = statusForKind(ce.Kind)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Correlation-ID", correlationID)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.ErrorResponse{
		ErrorPayload:  payload,
		CorrelationID: correlationID,
		Timestamp:     time.Now(),
	})
}

// statusForKind maps a CoreError's kind to the HTTP status a transport
// should report; anything outside the closed taxonomy is a bug, not a
// client error.
func statusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.InputShape, models.IndicatorParseError, models.IndicatorParamError, models.IndicatorTooShort, models.OptionsInput:
		return http.StatusBadRequest
	case models.IndicatorUnknown:
		return http.StatusNotFound
	case models.NumericDomain:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
