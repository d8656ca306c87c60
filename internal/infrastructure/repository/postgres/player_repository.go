package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-portal/internal/domain/player"
	qb "github.com/riskibarqy/league-portal/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db sqlx.ExtContext
}

var playerSelectColumns = []string{
	"public_id",
	"external_id",
	"name",
	"gender",
	"club_public_id",
}

func NewPlayerRepository(db sqlx.ExtContext) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", playerID))
}

func (r *PlayerRepository) GetByExternalID(ctx context.Context, externalID string) (player.Player, bool, error) {
	return r.getOne(ctx, qb.Eq("external_id", externalID))
}

func (r *PlayerRepository) getOne(ctx context.Context, cond qb.Condition) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(cond, qb.IsNull("deleted_at")).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, crerr.Wrap(err, "build select player query")
	}

	var row playerTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, crerr.Wrap(err, "select player")
	}

	return player.Player{
		ID:         row.PublicID,
		ExternalID: row.ExternalID,
		Name:       row.Name,
		Gender:     row.Gender,
		ClubID:     row.ClubID,
	}, true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return crerr.Wrap(err, "invalid player")
	}

	const query = `
INSERT INTO players (public_id, external_id, name, gender, club_public_id)
VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, query, p.ID, p.ExternalID, p.Name, p.Gender, p.ClubID); err != nil {
		return wrapWriteErr(err, "insert player id=%s external_id=%s", p.ID, p.ExternalID)
	}
	return nil
}

type ReplacementRepository struct {
	db sqlx.ExtContext
}

func NewReplacementRepository(db sqlx.ExtContext) *ReplacementRepository {
	return &ReplacementRepository{db: db}
}

func (r *ReplacementRepository) Upsert(ctx context.Context, item player.Replacement) error {
	const query = `
INSERT INTO replacement_players (external_id, name, gender, club_public_id, updated_at)
VALUES (:external_id, :name, :gender, :club_public_id, :updated_at)
ON CONFLICT (external_id)
DO UPDATE SET
    name = EXCLUDED.name,
    gender = EXCLUDED.gender,
    club_public_id = EXCLUDED.club_public_id,
    updated_at = EXCLUDED.updated_at`

	args := map[string]any{
		"external_id":    item.ExternalID,
		"name":           item.Name,
		"gender":         item.Gender,
		"club_public_id": item.ClubID,
		"updated_at":     item.UpdatedAt,
	}
	bound, boundArgs, err := sqlx.Named(query, args)
	if err != nil {
		return crerr.Wrap(err, "bind upsert replacement player query")
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(bound), boundArgs...); err != nil {
		return wrapWriteErr(err, "upsert replacement player external_id=%s", item.ExternalID)
	}
	return nil
}
