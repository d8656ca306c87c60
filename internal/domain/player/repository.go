package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByExternalID(ctx context.Context, externalID string) (Player, bool, error)
	Create(ctx context.Context, p Player) error
}

// ReplacementRepository stores replacement-player records.
type ReplacementRepository interface {
	Upsert(ctx context.Context, r Replacement) error
}
