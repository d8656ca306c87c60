package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/league-portal/internal/domain/match"
	"github.com/riskibarqy/league-portal/internal/domain/player"
	"github.com/riskibarqy/league-portal/internal/domain/registration"
	"github.com/riskibarqy/league-portal/internal/domain/rosterchange"
	"github.com/riskibarqy/league-portal/internal/domain/sport"
	"github.com/riskibarqy/league-portal/internal/domain/team"
)

// Store keeps every table in one place so a transaction can lock and
// snapshot all of them together.
type Store struct {
	mu   sync.RWMutex
	data *dataset
}

type dataset struct {
	sports        map[string]sport.Sport
	sportOrder    []string
	teams         map[string]team.Team
	players       map[string]player.Player
	replacements  map[string]player.Replacement
	registrations map[string]registration.Registration
	regOrder      []string
	requests      map[string]rosterchange.Request
	requestOrder  []string
	matches       map[string]match.Match
}

// Seed is the initial content of a Store.
type Seed struct {
	Sports        []sport.Sport
	Teams         []team.Team
	Players       []player.Player
	Registrations []registration.Registration
	Matches       []match.Match
}

func NewStore(seed Seed) *Store {
	d := &dataset{
		sports:        make(map[string]sport.Sport, len(seed.Sports)),
		teams:         make(map[string]team.Team, len(seed.Teams)),
		players:       make(map[string]player.Player, len(seed.Players)),
		replacements:  make(map[string]player.Replacement),
		registrations: make(map[string]registration.Registration, len(seed.Registrations)),
		requests:      make(map[string]rosterchange.Request),
		matches:       make(map[string]match.Match, len(seed.Matches)),
	}
	for _, s := range seed.Sports {
		if _, ok := d.sports[s.ID]; !ok {
			d.sportOrder = append(d.sportOrder, s.ID)
		}
		d.sports[s.ID] = s
	}
	for _, t := range seed.Teams {
		d.teams[t.ID] = t
	}
	for _, p := range seed.Players {
		d.players[p.ID] = p
	}
	for _, r := range seed.Registrations {
		if _, ok := d.registrations[r.ID]; !ok {
			d.regOrder = append(d.regOrder, r.ID)
		}
		d.registrations[r.ID] = r
	}
	for _, m := range seed.Matches {
		d.matches[m.ID] = cloneMatch(m)
	}

	return &Store{data: d}
}

// Stores returns repositories that lock the store per call.
func (s *Store) Stores() rosterchange.Stores {
	return s.stores(false)
}

func (s *Store) stores(inTx bool) rosterchange.Stores {
	v := view{store: s, inTx: inTx}
	return rosterchange.Stores{
		Sports:        &SportRepository{view: v},
		Players:       &PlayerRepository{view: v},
		Replacements:  &ReplacementRepository{view: v},
		Registrations: &RegistrationRepository{view: v},
		Requests:      &RosterChangeRepository{view: v},
	}
}

// ReplacementRecord returns the stored replacement-player record.
func (s *Store) ReplacementRecord(externalID string) (player.Replacement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.data.replacements[externalID]
	return r, ok
}

func (s *Store) Matches() *MatchRepository {
	return &MatchRepository{view: view{store: s}}
}

// WithinTx holds the store lock for the whole of fn and restores the previous
// content if fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, stores rosterchange.Stores) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(ctx, s.stores(true)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// view gives repositories access to the dataset. Inside a transaction the
// store lock is already held.
type view struct {
	store *Store
	inTx  bool
}

func (v view) read(fn func(d *dataset)) {
	if !v.inTx {
		v.store.mu.RLock()
		defer v.store.mu.RUnlock()
	}
	fn(v.store.data)
}

func (v view) write(fn func(d *dataset) error) error {
	if !v.inTx {
		v.store.mu.Lock()
		defer v.store.mu.Unlock()
	}
	return fn(v.store.data)
}

func (d *dataset) clone() *dataset {
	out := &dataset{
		sports:        make(map[string]sport.Sport, len(d.sports)),
		sportOrder:    append([]string(nil), d.sportOrder...),
		teams:         make(map[string]team.Team, len(d.teams)),
		players:       make(map[string]player.Player, len(d.players)),
		replacements:  make(map[string]player.Replacement, len(d.replacements)),
		registrations: make(map[string]registration.Registration, len(d.registrations)),
		regOrder:      append([]string(nil), d.regOrder...),
		requests:      make(map[string]rosterchange.Request, len(d.requests)),
		requestOrder:  append([]string(nil), d.requestOrder...),
		matches:       make(map[string]match.Match, len(d.matches)),
	}
	for k, v := range d.sports {
		out.sports[k] = v
	}
	for k, v := range d.teams {
		out.teams[k] = v
	}
	for k, v := range d.players {
		out.players[k] = v
	}
	for k, v := range d.replacements {
		out.replacements[k] = v
	}
	for k, v := range d.registrations {
		out.registrations[k] = v
	}
	for k, v := range d.requests {
		out.requests[k] = cloneRequest(v)
	}
	for k, v := range d.matches {
		out.matches[k] = cloneMatch(v)
	}
	return out
}

func cloneMatch(m match.Match) match.Match {
	if m.StartTime != nil {
		start := *m.StartTime
		m.StartTime = &start
	}
	return m
}

func cloneRequest(r rosterchange.Request) rosterchange.Request {
	if r.Status != nil {
		status := *r.Status
		r.Status = &status
	}
	if r.ApprovedAt != nil {
		at := *r.ApprovedAt
		r.ApprovedAt = &at
	}
	return r
}
