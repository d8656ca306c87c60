package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-portal/internal/domain/eligibility"
	"github.com/riskibarqy/league-portal/internal/domain/player"
	"github.com/riskibarqy/league-portal/internal/domain/registration"
	"github.com/riskibarqy/league-portal/internal/domain/sport"
)

type EligibilityResult struct {
	Eligible bool
	Reason   string
}

// EligibilityService answers whether a player could take a new registration
// in a sport right now.
type EligibilityService struct {
	playerRepo       player.Repository
	sportRepo        sport.Repository
	registrationRepo registration.Repository
}

func NewEligibilityService(
	playerRepo player.Repository,
	sportRepo sport.Repository,
	registrationRepo registration.Repository,
) *EligibilityService {
	return &EligibilityService{
		playerRepo:       playerRepo,
		sportRepo:        sportRepo,
		registrationRepo: registrationRepo,
	}
}

func (s *EligibilityService) Check(ctx context.Context, playerID, sportID string) (EligibilityResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EligibilityService.Check")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	sportID = strings.TrimSpace(sportID)
	if playerID == "" || sportID == "" {
		return EligibilityResult{}, fmt.Errorf("%w: player id and sport id are required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return EligibilityResult{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return EligibilityResult{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	target, exists, err := s.sportRepo.GetByID(ctx, sportID)
	if err != nil {
		return EligibilityResult{}, fmt.Errorf("get sport: %w", err)
	}
	if !exists {
		return EligibilityResult{}, fmt.Errorf("%w: sport=%s", ErrNotFound, sportID)
	}

	if !eligibility.IsGenderCompatible(p.Gender, target.GenderType) {
		mismatch := &eligibility.GenderMismatchError{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			SportID:    target.ID,
			SportName:  target.Name,
		}
		return EligibilityResult{Reason: mismatch.Error()}, nil
	}

	held, err := s.registrationRepo.ListDetailsByPlayer(ctx, p.ID)
	if err != nil {
		return EligibilityResult{}, fmt.Errorf("list registrations by player: %w", err)
	}
	if err := eligibility.CheckRegistration(p, target, held); err != nil {
		return EligibilityResult{Reason: err.Error()}, nil
	}
	return EligibilityResult{Eligible: true}, nil
}
