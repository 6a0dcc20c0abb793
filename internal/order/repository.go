package order

import (
	"context"

	"github.com/sideorder/sideorder/internal/model"
)

type Repository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	// FindBySession returns the session's orders in chronological order
	// (timestamp ascending); display layers may re-sort.
	FindBySession(ctx context.Context, sessionID string) ([]model.Order, error)
	Update(ctx context.Context, o *model.Order) error
	Delete(ctx context.Context, id string) error
	// CountBySession counts without loading rows.
	CountBySession(ctx context.Context, sessionID string) (int, error)
}
