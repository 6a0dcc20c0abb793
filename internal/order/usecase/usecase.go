package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sideorder/sideorder/internal/model"
	"github.com/sideorder/sideorder/internal/order"
	"github.com/sideorder/sideorder/internal/order/dto"
)

type orderUseCase struct {
	repo   order.Repository
	logger *zap.Logger
}

func NewOrderUseCase(repo order.Repository, log *zap.Logger) order.UseCase {
	return &orderUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *orderUseCase) LoadOrdersForSession(ctx context.Context, sessionID string) ([]model.Order, error) {
	return uc.repo.FindBySession(ctx, sessionID)
}

func (uc *orderUseCase) AddOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	customizations := input.Customizations
	if customizations == nil {
		customizations = model.Customizations{}
	}

	o := &model.Order{
		ID:             uuid.New().String(),
		SessionID:      input.SessionID,
		Timestamp:      model.NowMillis(),
		ItemName:       input.ItemName,
		ItemCategory:   input.ItemCategory,
		Customizations: customizations,
		Notes:          input.Notes,
	}

	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (uc *orderUseCase) UpdateOrder(ctx context.Context, id string, input *dto.UpdateOrderInput) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, model.ErrNotFound
	}

	if input.Customizations != nil {
		o.Customizations = *input.Customizations
	}
	if input.Notes != nil {
		o.Notes = *input.Notes
	}

	if err := uc.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (uc *orderUseCase) DeleteOrder(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *orderUseCase) CountForSession(ctx context.Context, sessionID string) (int, error) {
	return uc.repo.CountBySession(ctx, sessionID)
}
