package menu

import (
	"context"

	"github.com/sideorder/sideorder/internal/model"
)

// Repository owns the live menu state: categories, menu items and modifier
// groups together, because cascades and snapshotting span all three.
// Cascading integrity fixes (modifier id stripping, category fallback
// reassignment) live here so no caller can delete around them.
type Repository interface {
	CreateCategory(ctx context.Context, c *model.Category) error
	FindCategoryByID(ctx context.Context, id string) (*model.Category, error)
	FindAllCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, c *model.Category) error
	// DeleteCategory reassigns referencing items to the fallback category
	// (first other available, else first other) before removing the row.
	// Deleting the last category returns model.ErrLastCategory.
	DeleteCategory(ctx context.Context, id string) error
	MaxCategorySortOrder(ctx context.Context) (int, error)
	ReorderCategories(ctx context.Context, orderedIDs []string) error

	CreateItem(ctx context.Context, item *model.MenuItem) error
	FindItemByID(ctx context.Context, id string) (*model.MenuItem, error)
	FindAllItems(ctx context.Context) ([]model.MenuItem, error)
	UpdateItem(ctx context.Context, item *model.MenuItem) error
	DeleteItem(ctx context.Context, id string) error
	MaxItemSortOrder(ctx context.Context, categoryID string) (int, error)
	ReorderItems(ctx context.Context, categoryID string, orderedIDs []string) error

	CreateModifierGroup(ctx context.Context, g *model.ModifierGroup) error
	FindModifierGroupByID(ctx context.Context, id string) (*model.ModifierGroup, error)
	FindAllModifierGroups(ctx context.Context) ([]model.ModifierGroup, error)
	UpdateModifierGroup(ctx context.Context, g *model.ModifierGroup) error
	// DeleteModifierGroup strips the group id from every referencing menu
	// item in the same transaction as the delete.
	DeleteModifierGroup(ctx context.Context, id string) error
	MaxModifierGroupSortOrder(ctx context.Context) (int, error)
	ReorderModifierGroups(ctx context.Context, orderedIDs []string) error
}
