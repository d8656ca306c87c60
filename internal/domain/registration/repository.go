package registration

import "context"

// Repository exposes registration reads and the two mutations roster changes
// perform: repointing the player and reassigning the sport.
type Repository interface {
	GetByID(ctx context.Context, registrationID string) (Registration, bool, error)
	GetDetail(ctx context.Context, registrationID string) (Detail, bool, error)
	ListDetailsByPlayer(ctx context.Context, playerID string) ([]Detail, error)
	ListByClubAndSport(ctx context.Context, clubID, sportID string) ([]Registration, error)
	UpdatePlayer(ctx context.Context, registrationID, playerID string) error
	UpdateSport(ctx context.Context, registrationID, sportID string) error
}
