package postgres

import (
	"database/sql"
	"time"
)

type sportTableModel struct {
	PublicID     string `db:"public_id"`
	Name         string `db:"name"`
	GenderType   string `db:"gender_type"`
	SportType    string `db:"sport_type"`
	SportDay     string `db:"sport_day"`
	MaxCount     int    `db:"max_count"`
	ReserveCount int    `db:"reserve_count"`
	Category     string `db:"category"`
}

type playerTableModel struct {
	PublicID   string `db:"public_id"`
	ExternalID string `db:"external_id"`
	Name       string `db:"name"`
	Gender     string `db:"gender"`
	ClubID     string `db:"club_public_id"`
}

type registrationTableModel struct {
	PublicID   string `db:"public_id"`
	PlayerID   string `db:"player_public_id"`
	SportID    string `db:"sport_public_id"`
	ClubID     string `db:"club_public_id"`
	MainPlayer bool   `db:"main_player"`
}

// registrationDetailModel is a registration joined with its player and sport.
type registrationDetailModel struct {
	registrationTableModel
	PlayerExternalID  string `db:"player_external_id"`
	PlayerName        string `db:"player_name"`
	PlayerGender      string `db:"player_gender"`
	PlayerClubID      string `db:"player_club_public_id"`
	SportName         string `db:"sport_name"`
	SportGenderType   string `db:"sport_gender_type"`
	SportType         string `db:"sport_type"`
	SportDay          string `db:"sport_day"`
	SportMaxCount     int    `db:"sport_max_count"`
	SportReserveCount int    `db:"sport_reserve_count"`
	SportCategory     string `db:"sport_category"`
}

type matchTableModel struct {
	PublicID     string         `db:"public_id"`
	SportID      string         `db:"sport_public_id"`
	Team1ID      sql.NullString `db:"team1_public_id"`
	Team2ID      sql.NullString `db:"team2_public_id"`
	Team1Name    sql.NullString `db:"team1_name"`
	Team2Name    sql.NullString `db:"team2_name"`
	Team1Score   int            `db:"team1_score"`
	Team2Score   int            `db:"team2_score"`
	RoundID      int            `db:"round_id"`
	MatchOrder   int            `db:"match_order"`
	ParentMatch1 sql.NullString `db:"parent_match1_public_id"`
	ParentMatch2 sql.NullString `db:"parent_match2_public_id"`
	StartTime    *time.Time     `db:"start_time"`
}

type rosterChangeTableModel struct {
	PublicID             string         `db:"public_id"`
	Type                 string         `db:"type"`
	ClubID               string         `db:"club_public_id"`
	ActorID              string         `db:"actor_id"`
	RegistrationID       string         `db:"registration_public_id"`
	SecondRegistrationID sql.NullString `db:"second_registration_public_id"`
	SportID              string         `db:"sport_public_id"`
	DestinationSportID   sql.NullString `db:"destination_sport_public_id"`
	OldPlayerID          sql.NullString `db:"old_player_public_id"`
	NewPlayerExternalID  sql.NullString `db:"new_player_external_id"`
	NewPlayerName        sql.NullString `db:"new_player_name"`
	NewPlayerGender      sql.NullString `db:"new_player_gender"`
	Reason               string         `db:"reason"`
	SupportingLink       sql.NullString `db:"supporting_link"`
	Status               sql.NullBool   `db:"status"`
	ApprovedBy           sql.NullString `db:"approved_by"`
	ApprovedAt           *time.Time     `db:"approved_at"`
	CreatedAt            time.Time      `db:"created_at"`
}
