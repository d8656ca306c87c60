package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/league-portal/internal/domain/match"
	"github.com/riskibarqy/league-portal/internal/domain/sport"
	"github.com/riskibarqy/league-portal/internal/infrastructure/repository/memory"
	matchmock "github.com/riskibarqy/league-portal/internal/mocks/domain/match"
	sportmock "github.com/riskibarqy/league-portal/internal/mocks/domain/sport"
	"github.com/riskibarqy/league-portal/internal/platform/cache"
	"github.com/riskibarqy/league-portal/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestBracketService_GetBracket_CachesUntilMatchesChange(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	matchRepo := matchmock.NewRepository(t)
	sportRepo := sportmock.NewRepository(t)
	service := NewBracketService(matchRepo, sportRepo, cache.NewStore(time.Minute), 2, logging.NewNop())

	sportRepo.On("GetByID", mock.Anything, "s1").Return(sport.Sport{ID: "s1"}, true, nil)
	matchRepo.On("ListBySport", mock.Anything, "s1").Return([]match.Match{
		{ID: "sf", SportID: "s1", RoundID: 3, MatchOrder: 1},
		{ID: "f", SportID: "s1", RoundID: 5, MatchOrder: 1},
	}, nil).Twice()

	rounds, err := service.GetBracket(ctx, "s1")
	if err != nil {
		t.Fatalf("get bracket: %v", err)
	}
	if len(rounds) != 2 || rounds[0].Title != "Finals" {
		t.Fatalf("expected display ordering with finals first, got %+v", rounds)
	}

	if _, err := service.GetBracket(ctx, "s1"); err != nil {
		t.Fatalf("cached get bracket: %v", err)
	}

	service.MatchesChanged(ctx, "s1")
	if _, err := service.GetBracket(ctx, "s1"); err != nil {
		t.Fatalf("reload bracket: %v", err)
	}
}

func TestBracketService_GetBracket_Errors(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	matchRepo := matchmock.NewRepository(t)
	sportRepo := sportmock.NewRepository(t)
	service := NewBracketService(matchRepo, sportRepo, nil, 0, logging.NewNop())

	if _, err := service.GetBracket(ctx, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	sportRepo.On("GetByID", mock.Anything, "missing").Return(sport.Sport{}, false, nil).Once()
	if _, err := service.GetBracket(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBracketService_GetBracket_EmptySport(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(memory.DefaultSeed())
	service := NewBracketService(store.Matches(), store.Stores().Sports, nil, 1, logging.NewNop())

	rounds, err := service.GetBracket(t.Context(), memory.SportIDChess)
	if err != nil {
		t.Fatalf("get bracket: %v", err)
	}
	if rounds == nil || len(rounds) != 0 {
		t.Fatalf("expected empty rounds, got %#v", rounds)
	}
}

type countingMatches struct {
	match.Repository
	calls atomic.Int32
}

func (c *countingMatches) ListBySport(ctx context.Context, sportID string) ([]match.Match, error) {
	c.calls.Add(1)
	return c.Repository.ListBySport(ctx, sportID)
}

func TestBracketService_GetBrackets(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	store := memory.NewStore(memory.DefaultSeed())
	matches := &countingMatches{Repository: store.Matches()}
	service := NewBracketService(matches, store.Stores().Sports, cache.NewStore(0), 3, logging.NewNop())

	got, err := service.GetBrackets(ctx, []string{memory.SportIDFutsal, memory.SportIDChess + "," + memory.SportIDFutsal, ""})
	if err != nil {
		t.Fatalf("get brackets: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sports, got %d", len(got))
	}
	if len(got[memory.SportIDFutsal]) != 2 {
		t.Fatalf("expected semi finals and finals for futsal, got %+v", got[memory.SportIDFutsal])
	}
	if matches.calls.Load() != 2 {
		t.Fatalf("expected one load per sport, got %d", matches.calls.Load())
	}

	if _, err := service.GetBrackets(ctx, []string{memory.SportIDFutsal, "sport-unknown"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown sport, got %v", err)
	}
	if _, err := service.GetBrackets(ctx, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
