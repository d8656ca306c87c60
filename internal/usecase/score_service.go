package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-portal/internal/domain/match"
	"github.com/riskibarqy/league-portal/internal/platform/logging"
	"github.com/riskibarqy/league-portal/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

type Outcome string

const (
	OutcomeWinner       Outcome = "winner"
	OutcomeUndetermined Outcome = "undetermined"
)

type SubmitScoreInput struct {
	MatchID    string
	Team1Score int
	Team2Score int
}

// AdvancedSlot is a team slot of a later match that now holds the winner.
type AdvancedSlot struct {
	MatchID string
	Slot    match.Slot
}

// PropagationFailure is a winner write that did not land. MatchID is empty
// when the dependent matches themselves could not be listed.
type PropagationFailure struct {
	MatchID string
	Slot    match.Slot
	Error   string
}

type ScoreResult struct {
	Match               match.Match
	Outcome             Outcome
	WinnerID            string
	Advanced            []AdvancedSlot
	PropagationFailures []PropagationFailure
}

type ScoreService struct {
	matchRepo match.Repository
	notifier  ChangeNotifier
	logger    *logging.Logger
}

func NewScoreService(matchRepo match.Repository, notifier ChangeNotifier, logger *logging.Logger) *ScoreService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoreService{
		matchRepo: matchRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

// SubmitScore stores the score of a match and, when it produces a winner,
// writes the winner into every match that names this one as a parent. The
// score write is the only step whose failure fails the call.
func (s *ScoreService) SubmitScore(ctx context.Context, input SubmitScoreInput) (ScoreResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.SubmitScore")
	defer span.End()

	matchID := strings.TrimSpace(input.MatchID)
	if matchID == "" {
		return ScoreResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if input.Team1Score < 0 || input.Team2Score < 0 {
		return ScoreResult{}, fmt.Errorf("%w: scores must be non-negative", ErrInvalidInput)
	}
	span.SetAttributes(attribute.String("match.id", matchID))

	target, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return ScoreResult{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return ScoreResult{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if !target.HasTeams() {
		return ScoreResult{}, fmt.Errorf("%w: match=%s has an undecided team slot", ErrInvalidInput, matchID)
	}

	if err := s.matchRepo.UpdateScores(ctx, matchID, input.Team1Score, input.Team2Score); err != nil {
		return ScoreResult{}, fmt.Errorf("update match scores: %w", err)
	}
	target.Team1Score = input.Team1Score
	target.Team2Score = input.Team2Score

	result := ScoreResult{Match: target, Outcome: OutcomeUndetermined}
	defer s.notifier.MatchesChanged(ctx, target.SportID)

	winnerID, ok := match.Winner(target.Team1ID, target.Team2ID, input.Team1Score, input.Team2Score)
	if !ok {
		metrics.ScoresSubmittedCounter.WithLabelValues(string(OutcomeUndetermined)).Inc()
		s.logger.InfoContext(ctx, "score recorded without winner",
			"match_id", matchID,
			"team1_score", input.Team1Score,
			"team2_score", input.Team2Score,
		)
		return result, nil
	}

	result.Outcome = OutcomeWinner
	result.WinnerID = winnerID
	metrics.ScoresSubmittedCounter.WithLabelValues(string(OutcomeWinner)).Inc()

	s.advanceWinner(ctx, target, winnerID, &result)
	return result, nil
}

func (s *ScoreService) advanceWinner(ctx context.Context, target match.Match, winnerID string, result *ScoreResult) {
	dependents, err := s.matchRepo.ListByParent(ctx, target.SportID, target.ID)
	if err != nil {
		metrics.WinnerPropagationCounter.WithLabelValues("failed").Inc()
		s.logger.WarnContext(ctx, "list dependent matches failed",
			"match_id", target.ID,
			"sport_id", target.SportID,
			"error", err,
		)
		result.PropagationFailures = append(result.PropagationFailures, PropagationFailure{Error: err.Error()})
		return
	}

	for _, next := range dependents {
		if next.ParentMatch1ID == target.ID {
			s.setTeam(ctx, next.ID, match.Slot1, winnerID, result)
		}
		if next.ParentMatch2ID == target.ID {
			s.setTeam(ctx, next.ID, match.Slot2, winnerID, result)
		}
	}
}

func (s *ScoreService) setTeam(ctx context.Context, matchID string, slot match.Slot, teamID string, result *ScoreResult) {
	if err := s.matchRepo.SetTeam(ctx, matchID, slot, teamID); err != nil {
		metrics.WinnerPropagationCounter.WithLabelValues("failed").Inc()
		s.logger.WarnContext(ctx, "advance winner failed",
			"match_id", matchID,
			"slot", int(slot),
			"team_id", teamID,
			"error", err,
		)
		result.PropagationFailures = append(result.PropagationFailures, PropagationFailure{
			MatchID: matchID,
			Slot:    slot,
			Error:   err.Error(),
		})
		return
	}
	metrics.WinnerPropagationCounter.WithLabelValues("advanced").Inc()
	result.Advanced = append(result.Advanced, AdvancedSlot{MatchID: matchID, Slot: slot})
}
