package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/league-portal/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
)

type submitScoreRequest struct {
	Team1Score *int `json:"team1_score" validate:"required,min=0"`
	Team2Score *int `json:"team2_score" validate:"required,min=0"`
}

func (h *Handler) GetBracket(w http.ResponseWriter, r *http.Request) {
	sportID := strings.TrimSpace(r.PathValue("sportID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBracket", attribute.String("sport_id", sportID))
	defer span.End()

	rounds, err := h.bracketService.GetBracket(ctx, sportID)
	if err != nil {
		h.logger.WarnContext(ctx, "get bracket failed", "sport_id", sportID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundsToDTO(rounds))
}

// GetBrackets accepts repeated sport_id parameters as well as a comma
// separated list.
func (h *Handler) GetBrackets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBrackets")
	defer span.End()

	var sportIDs []string
	for _, raw := range r.URL.Query()["sport_id"] {
		sportIDs = append(sportIDs, strings.Split(raw, ",")...)
	}

	brackets, err := h.bracketService.GetBrackets(ctx, sportIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "get brackets failed", "sport_ids", sportIDs, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make(map[string][]roundDTO, len(brackets))
	for sportID, rounds := range brackets {
		out[sportID] = roundsToDTO(rounds)
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

// SubscribeBracket upgrades to a websocket that signals every match change of
// the sport. The sport must exist.
func (h *Handler) SubscribeBracket(w http.ResponseWriter, r *http.Request) {
	sportID := strings.TrimSpace(r.PathValue("sportID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubscribeBracket", attribute.String("sport_id", sportID))
	defer span.End()

	if h.live == nil {
		writeError(ctx, w, fmt.Errorf("%w: live updates are disabled", usecase.ErrDependencyUnavailable))
		return
	}
	if _, err := h.bracketService.GetBracket(ctx, sportID); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.live.Serve(w, r, sportID); err != nil && !errors.Is(err, r.Context().Err()) {
		// The upgrader has already answered the client.
		h.logger.WarnContext(ctx, "live subscription failed", "sport_id", sportID, "error", err)
	}
}

func (h *Handler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	matchID := strings.TrimSpace(r.PathValue("matchID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitScore", attribute.String("match_id", matchID))
	defer span.End()

	var req submitScoreRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoreService.SubmitScore(ctx, usecase.SubmitScoreInput{
		MatchID:    matchID,
		Team1Score: *req.Team1Score,
		Team2Score: *req.Team2Score,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit score failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreResultToDTO(result))
}
