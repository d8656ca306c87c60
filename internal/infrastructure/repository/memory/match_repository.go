package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/league-portal/internal/domain/bracket"
	"github.com/riskibarqy/league-portal/internal/domain/match"
)

type MatchRepository struct {
	view
}

func (r *MatchRepository) ListBySport(_ context.Context, sportID string) ([]match.Match, error) {
	var out []match.Match
	r.read(func(d *dataset) {
		out = make([]match.Match, 0)
		for _, m := range d.matches {
			if m.SportID == sportID {
				out = append(out, d.withNames(m))
			}
		}
	})
	bracket.SortForDisplay(out)
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	var (
		out match.Match
		ok  bool
	)
	r.read(func(d *dataset) {
		var stored match.Match
		stored, ok = d.matches[matchID]
		if ok {
			out = d.withNames(stored)
		}
	})
	return out, ok, nil
}

func (r *MatchRepository) UpdateScores(_ context.Context, matchID string, team1Score, team2Score int) error {
	return r.write(func(d *dataset) error {
		m, ok := d.matches[matchID]
		if !ok {
			return fmt.Errorf("match %s not found", matchID)
		}
		m.Team1Score = team1Score
		m.Team2Score = team2Score
		d.matches[matchID] = m
		return nil
	})
}

func (r *MatchRepository) ListByParent(_ context.Context, sportID, parentID string) ([]match.Match, error) {
	var out []match.Match
	r.read(func(d *dataset) {
		out = make([]match.Match, 0)
		for _, m := range d.matches {
			if m.SportID != sportID {
				continue
			}
			if m.ParentMatch1ID == parentID || m.ParentMatch2ID == parentID {
				out = append(out, d.withNames(m))
			}
		}
	})
	bracket.SortForDisplay(out)
	return out, nil
}

func (r *MatchRepository) SetTeam(_ context.Context, matchID string, slot match.Slot, teamID string) error {
	return r.write(func(d *dataset) error {
		m, ok := d.matches[matchID]
		if !ok {
			return fmt.Errorf("match %s not found", matchID)
		}
		switch slot {
		case match.Slot1:
			m.Team1ID = teamID
		case match.Slot2:
			m.Team2ID = teamID
		default:
			return fmt.Errorf("unknown match slot %d", slot)
		}
		d.matches[matchID] = m
		return nil
	})
}

// withNames fills the display names the way the SQL join does.
func (d *dataset) withNames(m match.Match) match.Match {
	m = cloneMatch(m)
	m.Team1Name = d.teams[m.Team1ID].Name
	m.Team2Name = d.teams[m.Team2ID].Name
	return m
}
