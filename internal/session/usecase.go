package session

import (
	"context"

	"github.com/sideorder/sideorder/internal/model"
	"github.com/sideorder/sideorder/internal/session/dto"
)

type UseCase interface {
	LoadSessions(ctx context.Context) ([]model.Session, error)
	GetSession(ctx context.Context, id string) (*model.Session, error)
	// ActiveSession returns (nil, nil) when no session is active.
	ActiveSession(ctx context.Context) (*model.Session, error)

	// StartSession embeds the already-captured snapshot and makes the new
	// session the active one. Fails with model.ErrActiveSessionExists if a
	// session is already active.
	StartSession(ctx context.Context, snapshot *model.MenuSnapshot, name string) (*model.Session, error)

	// UpdateSession merges name/notes/customer count. Status, startedAt,
	// endedAt and the snapshot are never touched here.
	UpdateSession(ctx context.Context, id string, input *dto.UpdateSessionInput) (*model.Session, error)

	// RefreshActiveSnapshot replaces the snapshot on the active session
	// only; a no-op when no session is active. This is the single way a
	// live menu edit reaches an in-progress session.
	RefreshActiveSnapshot(ctx context.Context, snapshot *model.MenuSnapshot) error

	// EndSession closes the session. Terminal; ending an already closed
	// session is a no-op.
	EndSession(ctx context.Context, id string) (*model.Session, error)

	DeleteSession(ctx context.Context, id string) error
}
