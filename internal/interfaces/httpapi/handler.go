package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/league-portal/internal/platform/logging"
	"github.com/riskibarqy/league-portal/internal/usecase"
)

// LiveSubscriber upgrades a request into a live bracket subscription.
type LiveSubscriber interface {
	Serve(w http.ResponseWriter, r *http.Request, sportID string) error
}

type Handler struct {
	bracketService      *usecase.BracketService
	scoreService        *usecase.ScoreService
	eligibilityService  *usecase.EligibilityService
	rosterChangeService *usecase.RosterChangeService
	live                LiveSubscriber
	logger              *logging.Logger
	validator           *validator.Validate
}

// NewHandler wires the services behind the HTTP routes. live may be nil when
// live updates are disabled.
func NewHandler(
	bracketService *usecase.BracketService,
	scoreService *usecase.ScoreService,
	eligibilityService *usecase.EligibilityService,
	rosterChangeService *usecase.RosterChangeService,
	live LiveSubscriber,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		bracketService:      bracketService,
		scoreService:        scoreService,
		eligibilityService:  eligibilityService,
		rosterChangeService: rosterChangeService,
		live:                live,
		logger:              logger.Named("httpapi"),
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}
