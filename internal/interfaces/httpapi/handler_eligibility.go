package httpapi

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
)

type checkEligibilityRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	SportID  string `json:"sport_id" validate:"required"`
}

// CheckEligibility answers whether a player could register for a sport. A
// rule failure is a normal answer carrying the reason, not an error.
func (h *Handler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckEligibility")
	defer span.End()

	var req checkEligibilityRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	span.SetAttributes(
		attribute.String("player_id", req.PlayerID),
		attribute.String("sport_id", req.SportID),
	)

	result, err := h.eligibilityService.Check(ctx, req.PlayerID, req.SportID)
	if err != nil {
		h.logger.WarnContext(ctx, "eligibility check failed", "player_id", req.PlayerID, "sport_id", req.SportID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eligibilityDTO{Eligible: result.Eligible, Reason: result.Reason})
}
