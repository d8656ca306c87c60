package postgres

import (
	"context"
	"database/sql"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-portal/internal/domain/rosterchange"
	qb "github.com/riskibarqy/league-portal/internal/platform/querybuilder"
)

type RosterChangeRepository struct {
	db sqlx.ExtContext
}

var rosterChangeSelectColumns = []string{
	"public_id",
	"type",
	"club_public_id",
	"actor_id",
	"registration_public_id",
	"second_registration_public_id",
	"sport_public_id",
	"destination_sport_public_id",
	"old_player_public_id",
	"new_player_external_id",
	"new_player_name",
	"new_player_gender",
	"reason",
	"supporting_link",
	"status",
	"approved_by",
	"approved_at",
	"created_at",
}

func NewRosterChangeRepository(db sqlx.ExtContext) *RosterChangeRepository {
	return &RosterChangeRepository{db: db}
}

func (r *RosterChangeRepository) Create(ctx context.Context, req rosterchange.Request) error {
	if err := req.Validate(); err != nil {
		return crerr.Wrap(err, "invalid roster change request")
	}

	const query = `
INSERT INTO roster_change_requests (
    public_id, type, club_public_id, actor_id, registration_public_id,
    second_registration_public_id, sport_public_id, destination_sport_public_id,
    old_player_public_id, new_player_external_id, new_player_name, new_player_gender,
    reason, supporting_link, status, approved_by, approved_at, created_at
) VALUES (
    :public_id, :type, :club_public_id, :actor_id, :registration_public_id,
    :second_registration_public_id, :sport_public_id, :destination_sport_public_id,
    :old_player_public_id, :new_player_external_id, :new_player_name, :new_player_gender,
    :reason, :supporting_link, :status, :approved_by, :approved_at, :created_at
)`

	bound, args, err := sqlx.Named(query, rosterChangeToRow(req))
	if err != nil {
		return crerr.Wrap(err, "bind insert roster change query")
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(bound), args...); err != nil {
		return wrapWriteErr(err, "insert roster change id=%s", req.ID)
	}
	return nil
}

func (r *RosterChangeRepository) GetByID(ctx context.Context, requestID string) (rosterchange.Request, bool, error) {
	query, args, err := qb.Select(rosterChangeSelectColumns...).From("roster_change_requests").
		Where(qb.Eq("public_id", requestID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return rosterchange.Request{}, false, crerr.Wrap(err, "build select roster change query")
	}

	var row rosterChangeTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rosterchange.Request{}, false, nil
		}
		return rosterchange.Request{}, false, crerr.Wrapf(err, "select roster change id=%s", requestID)
	}
	return rosterChangeFromRow(row), true, nil
}

func (r *RosterChangeRepository) List(ctx context.Context, filter rosterchange.ListFilter) ([]rosterchange.Request, error) {
	query, args, err := listRosterChangesQuery(filter)
	if err != nil {
		return nil, err
	}

	var rows []rosterChangeTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select roster changes")
	}

	out := make([]rosterchange.Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, rosterChangeFromRow(row))
	}
	return out, nil
}

func listRosterChangesQuery(filter rosterchange.ListFilter) (string, []any, error) {
	conds := make([]qb.Condition, 0, 2)
	if filter.ClubID != "" {
		conds = append(conds, qb.Eq("club_public_id", filter.ClubID))
	}
	switch filter.Status {
	case rosterchange.FilterPending:
		conds = append(conds, qb.IsNull("status"))
	case rosterchange.FilterApproved:
		conds = append(conds, qb.Eq("status", true))
	case rosterchange.FilterRejected:
		conds = append(conds, qb.Eq("status", false))
	}

	query, args, err := qb.Select(rosterChangeSelectColumns...).From("roster_change_requests").
		Where(conds...).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return "", nil, crerr.Wrap(err, "build select roster changes query")
	}
	return query, args, nil
}

// Decide only touches rows whose status is still NULL, so two concurrent
// decisions cannot both win.
func (r *RosterChangeRepository) Decide(ctx context.Context, requestID string, approved bool, by string, at time.Time) error {
	query, args, err := qb.Update("roster_change_requests").
		Set("status", approved).
		Set("approved_by", by).
		Set("approved_at", at).
		Where(
			qb.Eq("public_id", requestID),
			qb.IsNull("status"),
		).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build decide roster change query")
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return crerr.Wrapf(err, "decide roster change id=%s", requestID)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return crerr.Wrap(err, "read affected rows")
	}
	if affected > 0 {
		return nil
	}

	current, exists, err := r.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if !exists {
		return crerr.Newf("roster change request %s not found", requestID)
	}
	return crerr.Wrapf(rosterchange.ErrAlreadyDecided, "id=%s status=%s", requestID, current.StatusLabel())
}

func rosterChangeToRow(req rosterchange.Request) rosterChangeTableModel {
	row := rosterChangeTableModel{
		PublicID:             req.ID,
		Type:                 string(req.Type),
		ClubID:               req.ClubID,
		ActorID:              req.ActorID,
		RegistrationID:       req.RegistrationID,
		SecondRegistrationID: nullString(req.SecondRegistrationID),
		SportID:              req.SportID,
		DestinationSportID:   nullString(req.DestinationSportID),
		OldPlayerID:          nullString(req.OldPlayerID),
		NewPlayerExternalID:  nullString(req.NewPlayerExternalID),
		NewPlayerName:        nullString(req.NewPlayerName),
		NewPlayerGender:      nullString(req.NewPlayerGender),
		Reason:               req.Reason,
		SupportingLink:       nullString(req.SupportingLink),
		ApprovedBy:           nullString(req.ApprovedBy),
		ApprovedAt:           req.ApprovedAt,
		CreatedAt:            req.CreatedAt,
	}
	if req.Status != nil {
		row.Status = sql.NullBool{Bool: *req.Status, Valid: true}
	}
	return row
}

func rosterChangeFromRow(row rosterChangeTableModel) rosterchange.Request {
	out := rosterchange.Request{
		ID:                   row.PublicID,
		Type:                 rosterchange.Type(row.Type),
		ClubID:               row.ClubID,
		ActorID:              row.ActorID,
		RegistrationID:       row.RegistrationID,
		SecondRegistrationID: row.SecondRegistrationID.String,
		SportID:              row.SportID,
		DestinationSportID:   row.DestinationSportID.String,
		OldPlayerID:          row.OldPlayerID.String,
		NewPlayerExternalID:  row.NewPlayerExternalID.String,
		NewPlayerName:        row.NewPlayerName.String,
		NewPlayerGender:      row.NewPlayerGender.String,
		Reason:               row.Reason,
		SupportingLink:       row.SupportingLink.String,
		ApprovedBy:           row.ApprovedBy.String,
		CreatedAt:            row.CreatedAt.UTC(),
	}
	if row.Status.Valid {
		status := row.Status.Bool
		out.Status = &status
	}
	if row.ApprovedAt != nil {
		at := row.ApprovedAt.UTC()
		out.ApprovedAt = &at
	}
	return out
}
