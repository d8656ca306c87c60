package match

import "context"

// Repository exposes bracket match persistence.
type Repository interface {
	// ListBySport returns matches ordered by round_id desc, match_order asc,
	// with team display names filled in.
	ListBySport(ctx context.Context, sportID string) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	UpdateScores(ctx context.Context, matchID string, team1Score, team2Score int) error
	// ListByParent returns matches in sportID whose parent_match1_id or
	// parent_match2_id equals parentID.
	ListByParent(ctx context.Context, sportID, parentID string) ([]Match, error)
	SetTeam(ctx context.Context, matchID string, slot Slot, teamID string) error
}
