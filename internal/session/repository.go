package session

import (
	"context"

	"github.com/sideorder/sideorder/internal/model"
)

// Repository owns session rows and the single-active invariant: Create
// rejects a new active session while one exists, backed by a partial unique
// index on status='active'.
type Repository interface {
	Create(ctx context.Context, s *model.Session) error
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// FindAll returns sessions newest first (startedAt descending).
	FindAll(ctx context.Context) ([]model.Session, error)
	FindActive(ctx context.Context) (*model.Session, error)
	Update(ctx context.Context, s *model.Session) error
	UpdateSnapshot(ctx context.Context, id string, snapshot model.MenuSnapshot) error
	End(ctx context.Context, id string, endedAt int64) error
	// Delete removes the session together with every order recorded
	// against it, in one transaction.
	Delete(ctx context.Context, id string) error
}
