package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-portal/internal/domain/rosterchange"
)

// Transactor runs roster changes inside one database transaction.
type Transactor struct {
	db *sqlx.DB
}

func NewTransactor(db *sqlx.DB) *Transactor {
	return &Transactor{db: db}
}

// Stores returns repositories bound to db, which may be a *sqlx.DB or a
// *sqlx.Tx.
func Stores(db sqlx.ExtContext) rosterchange.Stores {
	return rosterchange.Stores{
		Sports:        NewSportRepository(db),
		Players:       NewPlayerRepository(db),
		Replacements:  NewReplacementRepository(db),
		Registrations: NewRegistrationRepository(db),
		Requests:      NewRosterChangeRepository(db),
	}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, stores rosterchange.Stores) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin roster change tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, Stores(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit roster change tx")
	}
	return nil
}
