package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-portal/internal/domain/match"
	qb "github.com/riskibarqy/league-portal/internal/platform/querybuilder"
)

type MatchRepository struct {
	db sqlx.ExtContext
}

var matchSelectColumns = []string{
	"m.public_id",
	"m.sport_public_id",
	"m.team1_public_id",
	"m.team2_public_id",
	"t1.name AS team1_name",
	"t2.name AS team2_name",
	"m.team1_score",
	"m.team2_score",
	"m.round_id",
	"m.match_order",
	"m.parent_match1_public_id",
	"m.parent_match2_public_id",
	"m.start_time",
}

func NewMatchRepository(db sqlx.ExtContext) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListBySport(ctx context.Context, sportID string) ([]match.Match, error) {
	query, args, err := matchSelect().
		Where(
			qb.Eq("m.sport_public_id", sportID),
			qb.IsNull("m.deleted_at"),
		).
		OrderBy("m.round_id DESC", "m.match_order ASC").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select matches by sport query")
	}

	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := matchSelect().
		Where(
			qb.Eq("m.public_id", matchID),
			qb.IsNull("m.deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, crerr.Wrap(err, "build select match query")
	}

	var row matchTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, crerr.Wrapf(err, "select match id=%s", matchID)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) UpdateScores(ctx context.Context, matchID string, team1Score, team2Score int) error {
	query, args, err := qb.Update("matches").
		Set("team1_score", team1Score).
		Set("team2_score", team2Score).
		SetRaw("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build update match scores query")
	}

	return r.exec(ctx, matchID, query, args)
}

func (r *MatchRepository) ListByParent(ctx context.Context, sportID, parentID string) ([]match.Match, error) {
	query, args, err := matchSelect().
		Where(
			qb.Eq("m.sport_public_id", sportID),
			qb.Or(
				qb.Eq("m.parent_match1_public_id", parentID),
				qb.Eq("m.parent_match2_public_id", parentID),
			),
			qb.IsNull("m.deleted_at"),
		).
		OrderBy("m.round_id DESC", "m.match_order ASC").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select matches by parent query")
	}

	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) SetTeam(ctx context.Context, matchID string, slot match.Slot, teamID string) error {
	column := "team1_public_id"
	if slot == match.Slot2 {
		column = "team2_public_id"
	}

	query, args, err := qb.Update("matches").
		Set(column, nullString(teamID)).
		SetRaw("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build set match team query")
	}

	return r.exec(ctx, matchID, query, args)
}

func (r *MatchRepository) selectMatches(ctx context.Context, query string, args []any) ([]match.Match, error) {
	var rows []matchTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select matches")
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) exec(ctx context.Context, matchID, query string, args []any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return crerr.Wrapf(err, "update match id=%s", matchID)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return crerr.Newf("match %s not found", matchID)
	}
	return nil
}

func matchSelect() *qb.SelectBuilder {
	return qb.Select(matchSelectColumns...).
		From("matches m").
		LeftJoin("teams t1 ON t1.public_id = m.team1_public_id").
		LeftJoin("teams t2 ON t2.public_id = m.team2_public_id")
}

func matchFromRow(row matchTableModel) match.Match {
	out := match.Match{
		ID:             row.PublicID,
		SportID:        row.SportID,
		Team1ID:        row.Team1ID.String,
		Team2ID:        row.Team2ID.String,
		Team1Name:      row.Team1Name.String,
		Team2Name:      row.Team2Name.String,
		Team1Score:     row.Team1Score,
		Team2Score:     row.Team2Score,
		RoundID:        row.RoundID,
		MatchOrder:     row.MatchOrder,
		ParentMatch1ID: row.ParentMatch1.String,
		ParentMatch2ID: row.ParentMatch2.String,
	}
	if row.StartTime != nil {
		start := row.StartTime.UTC()
		out.StartTime = &start
	}
	return out
}
