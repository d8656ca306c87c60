package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-portal/internal/domain/sport"
	qb "github.com/riskibarqy/league-portal/internal/platform/querybuilder"
)

type SportRepository struct {
	db sqlx.ExtContext
}

var sportSelectColumns = []string{
	"public_id",
	"name",
	"gender_type",
	"sport_type",
	"sport_day",
	"max_count",
	"reserve_count",
	"category",
}

func NewSportRepository(db sqlx.ExtContext) *SportRepository {
	return &SportRepository{db: db}
}

func (r *SportRepository) GetByID(ctx context.Context, sportID string) (sport.Sport, bool, error) {
	query, args, err := qb.Select(sportSelectColumns...).From("sports").
		Where(
			qb.Eq("public_id", sportID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return sport.Sport{}, false, crerr.Wrap(err, "build select sport by id query")
	}

	var row sportTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return sport.Sport{}, false, nil
		}
		return sport.Sport{}, false, crerr.Wrapf(err, "select sport id=%s", sportID)
	}

	return sportFromRow(row), true, nil
}

func (r *SportRepository) List(ctx context.Context) ([]sport.Sport, error) {
	query, args, err := qb.Select(sportSelectColumns...).From("sports").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select sports query")
	}

	var rows []sportTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select sports")
	}

	out := make([]sport.Sport, 0, len(rows))
	for _, row := range rows {
		out = append(out, sportFromRow(row))
	}
	return out, nil
}

func sportFromRow(row sportTableModel) sport.Sport {
	return sport.Sport{
		ID:           row.PublicID,
		Name:         row.Name,
		GenderType:   sport.GenderType(row.GenderType),
		SportType:    sport.Type(row.SportType),
		SportDay:     row.SportDay,
		MaxCount:     row.MaxCount,
		ReserveCount: row.ReserveCount,
		Category:     row.Category,
	}
}
