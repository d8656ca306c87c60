package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/league-portal/internal/domain/player"
)

type PlayerRepository struct {
	view
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	var (
		out player.Player
		ok  bool
	)
	r.read(func(d *dataset) {
		out, ok = d.players[playerID]
	})
	return out, ok, nil
}

func (r *PlayerRepository) GetByExternalID(_ context.Context, externalID string) (player.Player, bool, error) {
	var (
		out player.Player
		ok  bool
	)
	r.read(func(d *dataset) {
		for _, p := range d.players {
			if p.ExternalID == externalID {
				out, ok = p, true
				return
			}
		}
	})
	return out, ok, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid player: %w", err)
	}
	return r.write(func(d *dataset) error {
		if _, exists := d.players[p.ID]; exists {
			return fmt.Errorf("player %s already exists", p.ID)
		}
		for _, existing := range d.players {
			if existing.ExternalID == p.ExternalID {
				return fmt.Errorf("player with external id %s already exists", p.ExternalID)
			}
		}
		d.players[p.ID] = p
		return nil
	})
}

type ReplacementRepository struct {
	view
}

func (r *ReplacementRepository) Upsert(_ context.Context, item player.Replacement) error {
	if item.ExternalID == "" {
		return fmt.Errorf("replacement external id is required")
	}
	return r.write(func(d *dataset) error {
		d.replacements[item.ExternalID] = item
		return nil
	})
}
