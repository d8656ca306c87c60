package sport

import "context"

// Repository exposes sport read operations.
type Repository interface {
	GetByID(ctx context.Context, sportID string) (Sport, bool, error)
	List(ctx context.Context) ([]Sport, error)
}
