package rosterchange

import (
	"context"
	"time"

	"github.com/riskibarqy/league-portal/internal/domain/player"
	"github.com/riskibarqy/league-portal/internal/domain/registration"
	"github.com/riskibarqy/league-portal/internal/domain/sport"
)

// ListFilter narrows List results. Empty fields match everything.
type ListFilter struct {
	ClubID string
	Status StatusFilter
}

// Repository persists ledger entries.
type Repository interface {
	Create(ctx context.Context, r Request) error
	GetByID(ctx context.Context, requestID string) (Request, bool, error)
	// List returns entries newest first.
	List(ctx context.Context, filter ListFilter) ([]Request, error)
	// Decide sets the terminal status only if the entry is still pending and
	// returns ErrAlreadyDecided otherwise.
	Decide(ctx context.Context, requestID string, approved bool, by string, at time.Time) error
}

// Stores bundles the repositories a roster change touches, bound to one
// transaction when handed out by a Transactor.
type Stores struct {
	Sports        sport.Repository
	Players       player.Repository
	Replacements  player.ReplacementRepository
	Registrations registration.Repository
	Requests      Repository
}

// Transactor runs fn atomically. If fn returns an error every write made
// through the provided Stores is discarded.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}
