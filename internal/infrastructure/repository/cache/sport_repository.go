package cache

import (
	"context"

	"github.com/riskibarqy/league-portal/internal/domain/sport"
	basecache "github.com/riskibarqy/league-portal/internal/platform/cache"
)

const (
	sportListKey   = "sport:list"
	sportKeyPrefix = "sport:id:"
)

// SportRepository serves sport reads from a TTL cache in front of next.
// Sports are reference data that only change through migrations, so entries
// are never invalidated explicitly.
type SportRepository struct {
	next  sport.Repository
	cache *basecache.Store
}

func NewSportRepository(next sport.Repository, cache *basecache.Store) *SportRepository {
	return &SportRepository{next: next, cache: cache}
}

func (r *SportRepository) List(ctx context.Context) ([]sport.Sport, error) {
	v, err := r.cache.GetOrLoad(ctx, sportListKey, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]sport.Sport(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]sport.Sport)
	return append([]sport.Sport(nil), items...), nil
}

func (r *SportRepository) GetByID(ctx context.Context, sportID string) (sport.Sport, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, sportKeyPrefix+sportID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, sportID)
		if err != nil {
			return nil, err
		}
		return cachedSportByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return sport.Sport{}, false, err
	}

	cached, _ := v.(cachedSportByID)
	return cached.value, cached.exists, nil
}

type cachedSportByID struct {
	value  sport.Sport
	exists bool
}
