package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/league-portal/internal/domain/eligibility"
	"github.com/riskibarqy/league-portal/internal/domain/player"
	"github.com/riskibarqy/league-portal/internal/domain/registration"
	"github.com/riskibarqy/league-portal/internal/domain/rosterchange"
	"github.com/riskibarqy/league-portal/internal/platform/id"
	"github.com/riskibarqy/league-portal/internal/platform/logging"
	"github.com/riskibarqy/league-portal/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

type ReplacementInput struct {
	ExternalID string
	Name       string
	Gender     string
}

type SubmitRosterChangeInput struct {
	Action               string
	ClubID               string
	SportID              string
	RegistrationID       string
	SecondRegistrationID string
	DestinationSportID   string
	Replacement          ReplacementInput
	Reason               string
	SupportingLink       string
	ActorID              string
	// AutoApprove applies the change immediately and records the request as
	// approved by ActorID. Otherwise the request waits for Approve.
	AutoApprove bool
}

type ListRosterChangesInput struct {
	ClubID string
	Status string
}

// RosterChangeService is the request ledger for replace, swap and move
// operations. Validation, the roster mutation and the ledger write of one
// call share a transaction.
type RosterChangeService struct {
	tx       rosterchange.Transactor
	requests rosterchange.Repository
	ids      id.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewRosterChangeService(
	tx rosterchange.Transactor,
	requests rosterchange.Repository,
	ids id.Generator,
	logger *logging.Logger,
) *RosterChangeService {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterChangeService{
		tx:       tx,
		requests: requests,
		ids:      ids,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *RosterChangeService) Submit(ctx context.Context, input SubmitRosterChangeInput) (rosterchange.Request, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterChangeService.Submit")
	defer span.End()

	req, err := requestFromInput(input)
	if err != nil {
		return rosterchange.Request{}, err
	}
	span.SetAttributes(
		attribute.String("roster_change.type", string(req.Type)),
		attribute.Bool("roster_change.auto_approve", input.AutoApprove),
	)

	requestID, err := s.ids.NewID()
	if err != nil {
		return rosterchange.Request{}, fmt.Errorf("generate request id: %w", err)
	}
	req.ID = requestID
	req.CreatedAt = s.now().UTC()
	if err := req.Validate(); err != nil {
		return rosterchange.Request{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, stores rosterchange.Stores) error {
		reg, err := loadRegistration(ctx, stores, req.RegistrationID)
		if err != nil {
			return err
		}
		if reg.ClubID != req.ClubID {
			return fmt.Errorf("%w: registration=%s club=%s", eligibility.ErrClubMismatch, reg.ID, req.ClubID)
		}
		if req.SportID != "" && req.SportID != reg.SportID {
			return fmt.Errorf("%w: registration=%s is not in sport=%s", ErrInvalidInput, reg.ID, req.SportID)
		}
		req.SportID = reg.SportID
		if req.Type == rosterchange.TypeReplace {
			req.OldPlayerID = reg.PlayerID
		}

		if err := s.checkEligibility(ctx, stores, req); err != nil {
			return err
		}

		if input.AutoApprove {
			if err := s.applyMutation(ctx, stores, req); err != nil {
				return err
			}
			if err := req.Decide(true, req.ActorID, s.now().UTC()); err != nil {
				return err
			}
		}

		if err := stores.Requests.Create(ctx, req); err != nil {
			return fmt.Errorf("create roster change request: %w", err)
		}
		return nil
	})
	if err != nil {
		return rosterchange.Request{}, err
	}

	metrics.RosterChangeCounter.WithLabelValues(string(req.Type), req.StatusLabel()).Inc()
	s.logger.InfoContext(ctx, "roster change submitted",
		"request_id", req.ID,
		"type", string(req.Type),
		"club_id", req.ClubID,
		"status", req.StatusLabel(),
	)
	return req, nil
}

// Approve re-checks a pending request against current data, applies it and
// marks it approved.
func (s *RosterChangeService) Approve(ctx context.Context, requestID, approverID string) (rosterchange.Request, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterChangeService.Approve")
	defer span.End()

	return s.decide(ctx, requestID, approverID, true)
}

// Reject marks a pending request rejected without touching the roster.
func (s *RosterChangeService) Reject(ctx context.Context, requestID, approverID string) (rosterchange.Request, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterChangeService.Reject")
	defer span.End()

	return s.decide(ctx, requestID, approverID, false)
}

func (s *RosterChangeService) decide(ctx context.Context, requestID, approverID string, approved bool) (rosterchange.Request, error) {
	requestID = strings.TrimSpace(requestID)
	approverID = strings.TrimSpace(approverID)
	if requestID == "" {
		return rosterchange.Request{}, fmt.Errorf("%w: request id is required", ErrInvalidInput)
	}
	if approverID == "" {
		return rosterchange.Request{}, fmt.Errorf("%w: approver id is required", ErrInvalidInput)
	}

	var req rosterchange.Request
	err := s.tx.WithinTx(ctx, func(ctx context.Context, stores rosterchange.Stores) error {
		current, exists, err := stores.Requests.GetByID(ctx, requestID)
		if err != nil {
			return fmt.Errorf("get roster change request: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: request=%s", ErrNotFound, requestID)
		}
		if !current.Pending() {
			return fmt.Errorf("%w: request=%s is already %s", ErrConflict, requestID, current.StatusLabel())
		}

		if approved {
			if err := s.checkEligibility(ctx, stores, current); err != nil {
				return err
			}
			if err := s.applyMutation(ctx, stores, current); err != nil {
				return err
			}
		}

		decidedAt := s.now().UTC()
		if err := stores.Requests.Decide(ctx, requestID, approved, approverID, decidedAt); err != nil {
			if errors.Is(err, rosterchange.ErrAlreadyDecided) {
				return fmt.Errorf("%w: %w", ErrConflict, err)
			}
			return fmt.Errorf("decide roster change request: %w", err)
		}
		if err := current.Decide(approved, approverID, decidedAt); err != nil {
			return err
		}
		req = current
		return nil
	})
	if err != nil {
		return rosterchange.Request{}, err
	}

	metrics.RosterChangeCounter.WithLabelValues(string(req.Type), req.StatusLabel()).Inc()
	s.logger.InfoContext(ctx, "roster change decided",
		"request_id", req.ID,
		"type", string(req.Type),
		"status", req.StatusLabel(),
		"approved_by", approverID,
	)
	return req, nil
}

func (s *RosterChangeService) Get(ctx context.Context, requestID string) (rosterchange.Request, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterChangeService.Get")
	defer span.End()

	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return rosterchange.Request{}, fmt.Errorf("%w: request id is required", ErrInvalidInput)
	}

	req, exists, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return rosterchange.Request{}, fmt.Errorf("get roster change request: %w", err)
	}
	if !exists {
		return rosterchange.Request{}, fmt.Errorf("%w: request=%s", ErrNotFound, requestID)
	}
	return req, nil
}

func (s *RosterChangeService) List(ctx context.Context, input ListRosterChangesInput) ([]rosterchange.Request, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterChangeService.List")
	defer span.End()

	status, err := rosterchange.ParseStatusFilter(input.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	items, err := s.requests.List(ctx, rosterchange.ListFilter{
		ClubID: strings.TrimSpace(input.ClubID),
		Status: status,
	})
	if err != nil {
		return nil, fmt.Errorf("list roster change requests: %w", err)
	}
	return items, nil
}

func requestFromInput(input SubmitRosterChangeInput) (rosterchange.Request, error) {
	changeType, err := rosterchange.ParseType(input.Action)
	if err != nil {
		return rosterchange.Request{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	req := rosterchange.Request{
		Type:           changeType,
		ClubID:         strings.TrimSpace(input.ClubID),
		ActorID:        strings.TrimSpace(input.ActorID),
		RegistrationID: strings.TrimSpace(input.RegistrationID),
		SportID:        strings.TrimSpace(input.SportID),
		Reason:         strings.TrimSpace(input.Reason),
		SupportingLink: strings.TrimSpace(input.SupportingLink),
	}
	switch changeType {
	case rosterchange.TypeReplace:
		req.NewPlayerExternalID = strings.TrimSpace(input.Replacement.ExternalID)
		req.NewPlayerName = strings.TrimSpace(input.Replacement.Name)
		req.NewPlayerGender = strings.TrimSpace(input.Replacement.Gender)
	case rosterchange.TypeSwap:
		req.SecondRegistrationID = strings.TrimSpace(input.SecondRegistrationID)
	case rosterchange.TypeMove:
		req.DestinationSportID = strings.TrimSpace(input.DestinationSportID)
	}

	return req, nil
}

// checkEligibility runs the rules of req's type against the current roster.
// It is used on submission and again on approval.
func (s *RosterChangeService) checkEligibility(ctx context.Context, stores rosterchange.Stores, req rosterchange.Request) error {
	switch req.Type {
	case rosterchange.TypeReplace:
		return s.checkReplace(ctx, stores, req)
	case rosterchange.TypeSwap:
		return s.checkSwap(ctx, stores, req)
	case rosterchange.TypeMove:
		return s.checkMove(ctx, stores, req)
	default:
		return fmt.Errorf("%w: unknown roster change type %q", ErrInvalidInput, req.Type)
	}
}

func (s *RosterChangeService) checkReplace(ctx context.Context, stores rosterchange.Stores, req rosterchange.Request) error {
	reg, err := loadRegistration(ctx, stores, req.RegistrationID)
	if err != nil {
		return err
	}
	if req.OldPlayerID != "" && reg.PlayerID != req.OldPlayerID {
		return fmt.Errorf("%w: registration=%s no longer holds player=%s", ErrConflict, reg.ID, req.OldPlayerID)
	}

	if !eligibility.IsGenderCompatible(req.NewPlayerGender, reg.Sport.GenderType) {
		return &eligibility.GenderMismatchError{
			PlayerID:   req.NewPlayerExternalID,
			PlayerName: req.NewPlayerName,
			SportID:    reg.Sport.ID,
			SportName:  reg.Sport.Name,
		}
	}

	existing, found, err := stores.Players.GetByExternalID(ctx, req.NewPlayerExternalID)
	if err != nil {
		return fmt.Errorf("get player by external id: %w", err)
	}
	if !found {
		return nil
	}

	// An existing player keeps their stored gender and club; the submitted
	// ones only describe players created by the replacement.
	if existing.ClubID != "" && existing.ClubID != req.ClubID {
		return fmt.Errorf("%w: player=%s belongs to club=%s", eligibility.ErrClubMismatch, existing.ID, existing.ClubID)
	}
	if !eligibility.IsGenderCompatible(existing.Gender, reg.Sport.GenderType) {
		return &eligibility.GenderMismatchError{
			PlayerID:   existing.ID,
			PlayerName: existing.Name,
			SportID:    reg.Sport.ID,
			SportName:  reg.Sport.Name,
		}
	}

	held, err := stores.Registrations.ListDetailsByPlayer(ctx, existing.ID)
	if err != nil {
		return fmt.Errorf("list registrations by player: %w", err)
	}
	return eligibility.CheckRegistration(existing, reg.Sport, held)
}

func (s *RosterChangeService) checkSwap(ctx context.Context, stores rosterchange.Stores, req rosterchange.Request) error {
	first, err := loadRegistration(ctx, stores, req.RegistrationID)
	if err != nil {
		return err
	}
	if req.SecondRegistrationID == req.RegistrationID {
		return eligibility.ErrSameRegistration
	}
	second, err := loadRegistration(ctx, stores, req.SecondRegistrationID)
	if err != nil {
		return err
	}

	if err := eligibility.ValidateSwap(first, second, req.ClubID); err != nil {
		return err
	}
	if err := checkNotHeldElsewhere(ctx, stores, first, second.SportID); err != nil {
		return err
	}
	return checkNotHeldElsewhere(ctx, stores, second, first.SportID)
}

// checkNotHeldElsewhere fails when reg's player already holds sportID through
// a registration other than reg.
func checkNotHeldElsewhere(ctx context.Context, stores rosterchange.Stores, reg registration.Detail, sportID string) error {
	held, err := stores.Registrations.ListDetailsByPlayer(ctx, reg.PlayerID)
	if err != nil {
		return fmt.Errorf("list registrations by player: %w", err)
	}
	for _, other := range held {
		if other.ID != reg.ID && other.SportID == sportID {
			return fmt.Errorf("%w: player=%s sport=%s", eligibility.ErrDuplicateSport, reg.PlayerID, sportID)
		}
	}
	return nil
}

func (s *RosterChangeService) checkMove(ctx context.Context, stores rosterchange.Stores, req rosterchange.Request) error {
	reg, err := loadRegistration(ctx, stores, req.RegistrationID)
	if err != nil {
		return err
	}

	dest, found, err := stores.Sports.GetByID(ctx, req.DestinationSportID)
	if err != nil {
		return fmt.Errorf("get destination sport: %w", err)
	}
	if !found {
		return eligibility.ValidateMove(reg, nil)
	}
	if dest.ID == reg.SportID {
		return fmt.Errorf("%w: registration=%s is already in sport=%s", ErrInvalidInput, reg.ID, dest.ID)
	}
	if err := eligibility.ValidateMove(reg, &dest); err != nil {
		return err
	}

	held, err := stores.Registrations.ListDetailsByPlayer(ctx, reg.PlayerID)
	if err != nil {
		return fmt.Errorf("list registrations by player: %w", err)
	}
	if err := eligibility.CheckRegistration(reg.Player, dest, withoutDetail(held, reg.ID)); err != nil {
		return err
	}

	clubRegs, err := stores.Registrations.ListByClubAndSport(ctx, reg.ClubID, dest.ID)
	if err != nil {
		return fmt.Errorf("list club registrations: %w", err)
	}
	return eligibility.CheckCapacity(dest, reg.MainPlayer, clubRegs)
}

// applyMutation performs the roster change a request describes. Both the
// auto-approved submission and Approve go through here.
func (s *RosterChangeService) applyMutation(ctx context.Context, stores rosterchange.Stores, req rosterchange.Request) error {
	switch req.Type {
	case rosterchange.TypeReplace:
		return s.applyReplace(ctx, stores, req)
	case rosterchange.TypeSwap:
		first, err := loadRegistration(ctx, stores, req.RegistrationID)
		if err != nil {
			return err
		}
		second, err := loadRegistration(ctx, stores, req.SecondRegistrationID)
		if err != nil {
			return err
		}
		if err := stores.Registrations.UpdateSport(ctx, first.ID, second.SportID); err != nil {
			return fmt.Errorf("move registration=%s: %w", first.ID, err)
		}
		if err := stores.Registrations.UpdateSport(ctx, second.ID, first.SportID); err != nil {
			return fmt.Errorf("move registration=%s: %w", second.ID, err)
		}
		return nil
	case rosterchange.TypeMove:
		if err := stores.Registrations.UpdateSport(ctx, req.RegistrationID, req.DestinationSportID); err != nil {
			return fmt.Errorf("move registration=%s: %w", req.RegistrationID, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown roster change type %q", ErrInvalidInput, req.Type)
	}
}

func (s *RosterChangeService) applyReplace(ctx context.Context, stores rosterchange.Stores, req rosterchange.Request) error {
	if err := stores.Replacements.Upsert(ctx, player.Replacement{
		ExternalID: req.NewPlayerExternalID,
		Name:       req.NewPlayerName,
		Gender:     req.NewPlayerGender,
		ClubID:     req.ClubID,
		UpdatedAt:  s.now().UTC(),
	}); err != nil {
		return fmt.Errorf("upsert replacement player: %w", err)
	}

	incoming, found, err := stores.Players.GetByExternalID(ctx, req.NewPlayerExternalID)
	if err != nil {
		return fmt.Errorf("get player by external id: %w", err)
	}
	if !found {
		playerID, err := s.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate player id: %w", err)
		}
		incoming = player.Player{
			ID:         playerID,
			ExternalID: req.NewPlayerExternalID,
			Name:       req.NewPlayerName,
			Gender:     req.NewPlayerGender,
			ClubID:     req.ClubID,
		}
		if err := stores.Players.Create(ctx, incoming); err != nil {
			return fmt.Errorf("create replacement player: %w", err)
		}
	}

	if err := stores.Registrations.UpdatePlayer(ctx, req.RegistrationID, incoming.ID); err != nil {
		return fmt.Errorf("repoint registration=%s: %w", req.RegistrationID, err)
	}
	return nil
}

func loadRegistration(ctx context.Context, stores rosterchange.Stores, registrationID string) (registration.Detail, error) {
	reg, exists, err := stores.Registrations.GetDetail(ctx, registrationID)
	if err != nil {
		return registration.Detail{}, fmt.Errorf("get registration: %w", err)
	}
	if !exists {
		return registration.Detail{}, fmt.Errorf("%w: registration=%s", ErrNotFound, registrationID)
	}
	return reg, nil
}

func withoutDetail(items []registration.Detail, registrationID string) []registration.Detail {
	out := make([]registration.Detail, 0, len(items))
	for _, item := range items {
		if item.ID != registrationID {
			out = append(out, item)
		}
	}
	return out
}
