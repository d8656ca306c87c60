package memory

import (
	"context"

	"github.com/riskibarqy/league-portal/internal/domain/sport"
)

type SportRepository struct {
	view
}

func (r *SportRepository) GetByID(_ context.Context, sportID string) (sport.Sport, bool, error) {
	var (
		out sport.Sport
		ok  bool
	)
	r.read(func(d *dataset) {
		out, ok = d.sports[sportID]
	})
	return out, ok, nil
}

func (r *SportRepository) List(_ context.Context) ([]sport.Sport, error) {
	var out []sport.Sport
	r.read(func(d *dataset) {
		out = make([]sport.Sport, 0, len(d.sportOrder))
		for _, id := range d.sportOrder {
			out = append(out, d.sports[id])
		}
	})
	return out, nil
}
