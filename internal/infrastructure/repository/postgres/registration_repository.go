package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-portal/internal/domain/player"
	"github.com/riskibarqy/league-portal/internal/domain/registration"
	"github.com/riskibarqy/league-portal/internal/domain/sport"
	qb "github.com/riskibarqy/league-portal/internal/platform/querybuilder"
)

type RegistrationRepository struct {
	db sqlx.ExtContext
}

var registrationSelectColumns = []string{
	"public_id",
	"player_public_id",
	"sport_public_id",
	"club_public_id",
	"main_player",
}

var registrationDetailColumns = []string{
	"r.public_id",
	"r.player_public_id",
	"r.sport_public_id",
	"r.club_public_id",
	"r.main_player",
	"p.external_id AS player_external_id",
	"p.name AS player_name",
	"p.gender AS player_gender",
	"p.club_public_id AS player_club_public_id",
	"s.name AS sport_name",
	"s.gender_type AS sport_gender_type",
	"s.sport_type AS sport_type",
	"s.sport_day AS sport_day",
	"s.max_count AS sport_max_count",
	"s.reserve_count AS sport_reserve_count",
	"s.category AS sport_category",
}

func NewRegistrationRepository(db sqlx.ExtContext) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) GetByID(ctx context.Context, registrationID string) (registration.Registration, bool, error) {
	query, args, err := qb.Select(registrationSelectColumns...).From("registrations").
		Where(
			qb.Eq("public_id", registrationID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return registration.Registration{}, false, crerr.Wrap(err, "build select registration query")
	}

	var row registrationTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return registration.Registration{}, false, nil
		}
		return registration.Registration{}, false, crerr.Wrapf(err, "select registration id=%s", registrationID)
	}
	return registrationFromRow(row), true, nil
}

func (r *RegistrationRepository) GetDetail(ctx context.Context, registrationID string) (registration.Detail, bool, error) {
	query, args, err := detailSelect().
		Where(
			qb.Eq("r.public_id", registrationID),
			qb.IsNull("r.deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return registration.Detail{}, false, crerr.Wrap(err, "build select registration detail query")
	}

	var row registrationDetailModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return registration.Detail{}, false, nil
		}
		return registration.Detail{}, false, crerr.Wrapf(err, "select registration detail id=%s", registrationID)
	}
	return detailFromRow(row), true, nil
}

func (r *RegistrationRepository) ListDetailsByPlayer(ctx context.Context, playerID string) ([]registration.Detail, error) {
	query, args, err := detailSelect().
		Where(
			qb.Eq("r.player_public_id", playerID),
			qb.IsNull("r.deleted_at"),
		).
		OrderBy("r.id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select registrations by player query")
	}

	var rows []registrationDetailModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "select registrations player=%s", playerID)
	}

	out := make([]registration.Detail, 0, len(rows))
	for _, row := range rows {
		out = append(out, detailFromRow(row))
	}
	return out, nil
}

func (r *RegistrationRepository) ListByClubAndSport(ctx context.Context, clubID, sportID string) ([]registration.Registration, error) {
	query, args, err := qb.Select(registrationSelectColumns...).From("registrations").
		Where(
			qb.Eq("club_public_id", clubID),
			qb.Eq("sport_public_id", sportID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select registrations by club and sport query")
	}

	var rows []registrationTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "select registrations club=%s sport=%s", clubID, sportID)
	}

	out := make([]registration.Registration, 0, len(rows))
	for _, row := range rows {
		out = append(out, registrationFromRow(row))
	}
	return out, nil
}

func (r *RegistrationRepository) UpdatePlayer(ctx context.Context, registrationID, playerID string) error {
	return r.update(ctx, registrationID, "player_public_id", playerID)
}

func (r *RegistrationRepository) UpdateSport(ctx context.Context, registrationID, sportID string) error {
	return r.update(ctx, registrationID, "sport_public_id", sportID)
}

func (r *RegistrationRepository) update(ctx context.Context, registrationID, column, value string) error {
	query, args, err := qb.Update("registrations").
		Set(column, value).
		SetRaw("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", registrationID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return crerr.Wrapf(err, "build update registration %s query", column)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapWriteErr(err, "update registration id=%s %s", registrationID, column)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return crerr.Newf("registration %s not found", registrationID)
	}
	return nil
}

func detailSelect() *qb.SelectBuilder {
	return qb.Select(registrationDetailColumns...).
		From("registrations r").
		LeftJoin("players p ON p.public_id = r.player_public_id").
		LeftJoin("sports s ON s.public_id = r.sport_public_id")
}

func registrationFromRow(row registrationTableModel) registration.Registration {
	return registration.Registration{
		ID:         row.PublicID,
		PlayerID:   row.PlayerID,
		SportID:    row.SportID,
		ClubID:     row.ClubID,
		MainPlayer: row.MainPlayer,
	}
}

func detailFromRow(row registrationDetailModel) registration.Detail {
	return registration.Detail{
		Registration: registrationFromRow(row.registrationTableModel),
		Player: player.Player{
			ID:         row.PlayerID,
			ExternalID: row.PlayerExternalID,
			Name:       row.PlayerName,
			Gender:     row.PlayerGender,
			ClubID:     row.PlayerClubID,
		},
		Sport: sport.Sport{
			ID:           row.SportID,
			Name:         row.SportName,
			GenderType:   sport.GenderType(row.SportGenderType),
			SportType:    sport.Type(row.SportType),
			SportDay:     row.SportDay,
			MaxCount:     row.SportMaxCount,
			ReserveCount: row.SportReserveCount,
			Category:     row.SportCategory,
		},
	}
}
