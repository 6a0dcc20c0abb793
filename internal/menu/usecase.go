package menu

import (
	"context"

	"github.com/sideorder/sideorder/internal/menu/dto"
	"github.com/sideorder/sideorder/internal/model"
)

type UseCase interface {
	LoadMenu(ctx context.Context) (*dto.Menu, error)

	AddCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, id string, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ReorderCategories(ctx context.Context, orderedIDs []string) error

	AddItem(ctx context.Context, input *dto.CreateMenuItemInput) (*model.MenuItem, error)
	UpdateItem(ctx context.Context, id string, input *dto.UpdateMenuItemInput) (*model.MenuItem, error)
	DeleteItem(ctx context.Context, id string) error
	ReorderItems(ctx context.Context, categoryID string, orderedIDs []string) error

	AddModifierGroup(ctx context.Context, input *dto.CreateModifierGroupInput) (*model.ModifierGroup, error)
	UpdateModifierGroup(ctx context.Context, id string, input *dto.UpdateModifierGroupInput) (*model.ModifierGroup, error)
	DeleteModifierGroup(ctx context.Context, id string) error
	ReorderModifierGroups(ctx context.Context, orderedIDs []string) error

	// GetSnapshot returns the available-only deep copy of the live menu that
	// sessions embed at start time.
	GetSnapshot(ctx context.Context) (*model.MenuSnapshot, error)
}
