package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/league-portal/internal/domain/bracket"
	"github.com/riskibarqy/league-portal/internal/domain/match"
	"github.com/riskibarqy/league-portal/internal/domain/sport"
	"github.com/riskibarqy/league-portal/internal/platform/cache"
	"github.com/riskibarqy/league-portal/internal/platform/logging"
	"github.com/riskibarqy/league-portal/internal/platform/metrics"
)

const (
	bracketCachePrefix    = "bracket:"
	defaultBracketWorkers = 4
)

// BracketService serves the round view of a sport. Built brackets are cached
// per sport until the sport's matches change.
type BracketService struct {
	matchRepo match.Repository
	sportRepo sport.Repository
	cache     *cache.Store
	workers   int
	logger    *logging.Logger
}

// NewBracketService returns a service without caching when store is nil.
func NewBracketService(
	matchRepo match.Repository,
	sportRepo sport.Repository,
	store *cache.Store,
	workers int,
	logger *logging.Logger,
) *BracketService {
	if workers <= 0 {
		workers = defaultBracketWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BracketService{
		matchRepo: matchRepo,
		sportRepo: sportRepo,
		cache:     store,
		workers:   workers,
		logger:    logger,
	}
}

func (s *BracketService) GetBracket(ctx context.Context, sportID string) ([]bracket.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.GetBracket")
	defer span.End()

	sportID = strings.TrimSpace(sportID)
	if sportID == "" {
		return nil, fmt.Errorf("%w: sport id is required", ErrInvalidInput)
	}

	_, exists, err := s.sportRepo.GetByID(ctx, sportID)
	if err != nil {
		return nil, fmt.Errorf("get sport: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: sport=%s", ErrNotFound, sportID)
	}

	if s.cache == nil {
		return s.build(ctx, sportID)
	}

	value, err := s.cache.GetOrLoad(ctx, bracketCachePrefix+sportID, func(ctx context.Context) (any, error) {
		return s.build(ctx, sportID)
	})
	if err != nil {
		return nil, err
	}
	rounds, ok := value.([]bracket.Round)
	if !ok {
		return nil, fmt.Errorf("unexpected cached bracket type %T", value)
	}
	return rounds, nil
}

func (s *BracketService) build(ctx context.Context, sportID string) ([]bracket.Round, error) {
	start := time.Now()
	defer func() {
		metrics.BracketBuildDuration.Observe(time.Since(start).Seconds())
	}()

	matches, err := s.matchRepo.ListBySport(ctx, sportID)
	if err != nil {
		return nil, fmt.Errorf("list matches by sport: %w", err)
	}
	ordered := append([]match.Match(nil), matches...)
	bracket.SortForDisplay(ordered)
	return bracket.Build(ordered), nil
}

type bracketResult struct {
	sportID string
	rounds  []bracket.Round
	err     error
}

// GetBrackets builds several sports concurrently. Duplicate and blank ids are
// ignored; the first failure in sport id order is returned.
func (s *BracketService) GetBrackets(ctx context.Context, sportIDs []string) (map[string][]bracket.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.GetBrackets")
	defer span.End()

	ids := normalizeSportIDs(sportIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one sport id is required", ErrInvalidInput)
	}

	workerCount := s.workers
	if workerCount > len(ids) {
		workerCount = len(ids)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan bracketResult, len(ids))
	var workers sync.WaitGroup
	for _, sportID := range ids {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			rounds, err := s.GetBracket(ctx, sportID)
			results <- bracketResult{sportID: sportID, rounds: rounds, err: err}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit bracket build: %w", err)
		}
	}

	workers.Wait()
	close(results)

	collected := make([]bracketResult, 0, len(ids))
	for row := range results {
		collected = append(collected, row)
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].sportID < collected[j].sportID })

	out := make(map[string][]bracket.Round, len(collected))
	for _, row := range collected {
		if row.err != nil {
			return nil, fmt.Errorf("bracket for sport=%s: %w", row.sportID, row.err)
		}
		out[row.sportID] = row.rounds
	}
	return out, nil
}

// MatchesChanged drops the cached bracket of sportID.
func (s *BracketService) MatchesChanged(ctx context.Context, sportID string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, bracketCachePrefix+strings.TrimSpace(sportID))
	s.logger.DebugContext(ctx, "bracket cache invalidated", "sport_id", sportID)
}

func normalizeSportIDs(sportIDs []string) []string {
	seen := make(map[string]struct{}, len(sportIDs))
	out := make([]string, 0, len(sportIDs))
	for _, raw := range sportIDs {
		for _, part := range strings.Split(raw, ",") {
			id := strings.TrimSpace(part)
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
