package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/riskibarqy/league-portal/internal/domain/rosterchange"
	"github.com/riskibarqy/league-portal/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
)

type replacementRequest struct {
	ExternalID string `json:"external_id" validate:"required,max=64"`
	Name       string `json:"name" validate:"required,max=200"`
	Gender     string `json:"gender" validate:"omitempty,max=16"`
}

type submitRosterChangeRequest struct {
	Action               string              `json:"action" validate:"required,oneof=replace swap move"`
	ClubID               string              `json:"club_id" validate:"required"`
	SportID              string              `json:"sport_id"`
	RegistrationID       string              `json:"registration_id" validate:"required"`
	SecondRegistrationID string              `json:"second_registration_id" validate:"required_if=Action swap"`
	DestinationSportID   string              `json:"destination_sport_id" validate:"required_if=Action move"`
	Replacement          *replacementRequest `json:"replacement" validate:"required_if=Action replace"`
	Reason               string              `json:"reason" validate:"required,max=1000"`
	SupportingLink       string              `json:"supporting_link" validate:"omitempty,url"`
	ActorID              string              `json:"actor_id" validate:"required"`
}

type decideRosterChangeRequest struct {
	ApproverID string `json:"approver_id" validate:"required"`
}

func (req submitRosterChangeRequest) toInput(autoApprove bool) usecase.SubmitRosterChangeInput {
	input := usecase.SubmitRosterChangeInput{
		Action:               req.Action,
		ClubID:               req.ClubID,
		SportID:              req.SportID,
		RegistrationID:       req.RegistrationID,
		SecondRegistrationID: req.SecondRegistrationID,
		DestinationSportID:   req.DestinationSportID,
		Reason:               req.Reason,
		SupportingLink:       req.SupportingLink,
		ActorID:              req.ActorID,
		AutoApprove:          autoApprove,
	}
	if req.Replacement != nil {
		input.Replacement = usecase.ReplacementInput{
			ExternalID: req.Replacement.ExternalID,
			Name:       req.Replacement.Name,
			Gender:     req.Replacement.Gender,
		}
	}
	return input
}

// SubmitRosterChange records an officer request. Nothing on the roster
// changes until an admin approves it.
func (h *Handler) SubmitRosterChange(w http.ResponseWriter, r *http.Request) {
	h.submitRosterChange(w, r, "httpapi.Handler.SubmitRosterChange", false)
}

// SubmitAdminRosterChange applies the change at once and records it as
// approved by the submitting admin.
func (h *Handler) SubmitAdminRosterChange(w http.ResponseWriter, r *http.Request) {
	h.submitRosterChange(w, r, "httpapi.Handler.SubmitAdminRosterChange", true)
}

func (h *Handler) submitRosterChange(w http.ResponseWriter, r *http.Request, spanName string, autoApprove bool) {
	ctx, span := startSpan(r.Context(), spanName, attribute.Bool("auto_approve", autoApprove))
	defer span.End()

	var req submitRosterChangeRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.rosterChangeService.Submit(ctx, req.toInput(autoApprove))
	if err != nil {
		h.logger.WarnContext(ctx, "submit roster change failed",
			"action", req.Action,
			"club_id", req.ClubID,
			"registration_id", req.RegistrationID,
			"auto_approve", autoApprove,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, rosterChangeToDTO(created))
}

func (h *Handler) ApproveRosterChange(w http.ResponseWriter, r *http.Request) {
	h.decideRosterChange(w, r, "httpapi.Handler.ApproveRosterChange", h.rosterChangeService.Approve)
}

func (h *Handler) RejectRosterChange(w http.ResponseWriter, r *http.Request) {
	h.decideRosterChange(w, r, "httpapi.Handler.RejectRosterChange", h.rosterChangeService.Reject)
}

func (h *Handler) decideRosterChange(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	decide func(ctx context.Context, requestID, approverID string) (rosterchange.Request, error),
) {
	requestID := strings.TrimSpace(r.PathValue("requestID"))
	ctx, span := startSpan(r.Context(), spanName, attribute.String("request_id", requestID))
	defer span.End()

	var req decideRosterChangeRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	decided, err := decide(ctx, requestID, req.ApproverID)
	if err != nil {
		h.logger.WarnContext(ctx, "decide roster change failed", "request_id", requestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterChangeToDTO(decided))
}

func (h *Handler) GetRosterChange(w http.ResponseWriter, r *http.Request) {
	requestID := strings.TrimSpace(r.PathValue("requestID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosterChange", attribute.String("request_id", requestID))
	defer span.End()

	item, err := h.rosterChangeService.Get(ctx, requestID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterChangeToDTO(item))
}

func (h *Handler) ListRosterChanges(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRosterChanges")
	defer span.End()

	query := r.URL.Query()
	items, err := h.rosterChangeService.List(ctx, usecase.ListRosterChangesInput{
		ClubID: strings.TrimSpace(query.Get("club_id")),
		Status: strings.TrimSpace(query.Get("status")),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list roster changes failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterChangesToDTO(items))
}
