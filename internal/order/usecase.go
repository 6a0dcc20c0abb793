package order

import (
	"context"

	"github.com/sideorder/sideorder/internal/model"
	"github.com/sideorder/sideorder/internal/order/dto"
)

type UseCase interface {
	LoadOrdersForSession(ctx context.Context, sessionID string) ([]model.Order, error)

	// AddOrder assigns the id and stamps the timestamp from the local clock
	// at insertion; the caller never supplies either.
	AddOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)

	// UpdateOrder merges customizations/notes. Id, session id, timestamp and
	// the denormalized item fields are never mutated by edits.
	UpdateOrder(ctx context.Context, id string, input *dto.UpdateOrderInput) (*model.Order, error)

	DeleteOrder(ctx context.Context, id string) error
	CountForSession(ctx context.Context, sessionID string) (int, error)
}
