package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sideorder/sideorder/internal/model"
	"github.com/sideorder/sideorder/internal/session"
	"github.com/sideorder/sideorder/internal/session/dto"
)

type sessionUseCase struct {
	repo   session.Repository
	logger *zap.Logger
}

func NewSessionUseCase(repo session.Repository, log *zap.Logger) session.UseCase {
	return &sessionUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *sessionUseCase) LoadSessions(ctx context.Context) ([]model.Session, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *sessionUseCase) GetSession(ctx context.Context, id string) (*model.Session, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, model.ErrNotFound
	}
	return s, nil
}

func (uc *sessionUseCase) ActiveSession(ctx context.Context) (*model.Session, error) {
	return uc.repo.FindActive(ctx)
}

func (uc *sessionUseCase) StartSession(ctx context.Context, snapshot *model.MenuSnapshot, name string) (*model.Session, error) {
	if snapshot == nil {
		return nil, errors.New("start session requires a menu snapshot")
	}

	s := &model.Session{
		ID:           uuid.New().String(),
		Name:         name,
		Status:       model.SessionStatusActive,
		StartedAt:    model.NowMillis(),
		Notes:        "",
		MenuSnapshot: *snapshot,
	}

	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}

	uc.logger.Info("session started",
		zap.String("session_id", s.ID),
		zap.Int("snapshot_items", len(s.MenuSnapshot.Items)))
	return s, nil
}

func (uc *sessionUseCase) UpdateSession(ctx context.Context, id string, input *dto.UpdateSessionInput) (*model.Session, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, model.ErrNotFound
	}

	if input.Name != nil {
		s.Name = *input.Name
	}
	if input.Notes != nil {
		s.Notes = *input.Notes
	}
	if input.CustomerCount != nil {
		s.CustomerCount = input.CustomerCount
	}
	if input.ClearCustomerCount {
		s.CustomerCount = nil
	}

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *sessionUseCase) RefreshActiveSnapshot(ctx context.Context, snapshot *model.MenuSnapshot) error {
	active, err := uc.repo.FindActive(ctx)
	if err != nil {
		return err
	}
	if active == nil {
		return nil
	}

	if err := uc.repo.UpdateSnapshot(ctx, active.ID, *snapshot); err != nil {
		return err
	}

	uc.logger.Debug("refreshed active session snapshot", zap.String("session_id", active.ID))
	return nil
}

func (uc *sessionUseCase) EndSession(ctx context.Context, id string) (*model.Session, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, model.ErrNotFound
	}
	if s.Status == model.SessionStatusClosed {
		return s, nil
	}

	endedAt := model.NowMillis()
	if err := uc.repo.End(ctx, id, endedAt); err != nil {
		return nil, err
	}

	s.Status = model.SessionStatusClosed
	s.EndedAt = &endedAt

	uc.logger.Info("session ended", zap.String("session_id", id))
	return s, nil
}

func (uc *sessionUseCase) DeleteSession(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
