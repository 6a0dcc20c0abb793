package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sideorder/sideorder/internal/menu"
	"github.com/sideorder/sideorder/internal/menu/dto"
	"github.com/sideorder/sideorder/internal/model"
)

type menuUseCase struct {
	repo   menu.Repository
	logger *zap.Logger
}

func NewMenuUseCase(repo menu.Repository, log *zap.Logger) menu.UseCase {
	return &menuUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *menuUseCase) LoadMenu(ctx context.Context) (*dto.Menu, error) {
	items, err := uc.repo.FindAllItems(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := uc.repo.FindAllModifierGroups(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.repo.FindAllCategories(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.Menu{
		Items:          items,
		ModifierGroups: groups,
		Categories:     categories,
	}, nil
}

// Categories

func (uc *menuUseCase) AddCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	sortOrder, err := uc.nextSortOrder(ctx, input.SortOrder, func(ctx context.Context) (int, error) {
		return uc.repo.MaxCategorySortOrder(ctx)
	})
	if err != nil {
		return nil, err
	}

	now := model.NowMillis()
	c := &model.Category{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      input.Name,
		SortOrder: sortOrder,
		Available: input.Available,
	}

	if err := uc.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *menuUseCase) UpdateCategory(ctx context.Context, id string, input *dto.UpdateCategoryInput) (*model.Category, error) {
	c, err := uc.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, model.ErrNotFound
	}

	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Available != nil {
		c.Available = *input.Available
	}
	if input.SortOrder != nil {
		c.SortOrder = *input.SortOrder
	}
	c.UpdatedAt = model.NowMillis()

	if err := uc.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *menuUseCase) DeleteCategory(ctx context.Context, id string) error {
	return uc.repo.DeleteCategory(ctx, id)
}

func (uc *menuUseCase) ReorderCategories(ctx context.Context, orderedIDs []string) error {
	return uc.repo.ReorderCategories(ctx, orderedIDs)
}

// Menu items

func (uc *menuUseCase) AddItem(ctx context.Context, input *dto.CreateMenuItemInput) (*model.MenuItem, error) {
	sortOrder, err := uc.nextSortOrder(ctx, input.SortOrder, func(ctx context.Context) (int, error) {
		return uc.repo.MaxItemSortOrder(ctx, input.CategoryID)
	})
	if err != nil {
		return nil, err
	}

	groupIDs := input.ModifierGroupIDs
	if groupIDs == nil {
		groupIDs = []string{}
	}

	now := model.NowMillis()
	item := &model.MenuItem{
		BaseModel:        model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:             input.Name,
		CategoryID:       input.CategoryID,
		BaseCost:         input.BaseCost,
		Available:        input.Available,
		ModifierGroupIDs: model.StringList(groupIDs),
		SortOrder:        sortOrder,
	}

	if err := uc.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *menuUseCase) UpdateItem(ctx context.Context, id string, input *dto.UpdateMenuItemInput) (*model.MenuItem, error) {
	item, err := uc.repo.FindItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, model.ErrNotFound
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.CategoryID != nil {
		item.CategoryID = *input.CategoryID
	}
	if input.BaseCost != nil {
		item.BaseCost = input.BaseCost
	}
	if input.ClearBaseCost {
		item.BaseCost = nil
	}
	if input.Available != nil {
		item.Available = *input.Available
	}
	if input.ModifierGroupIDs != nil {
		item.ModifierGroupIDs = model.StringList(*input.ModifierGroupIDs)
	}
	if input.SortOrder != nil {
		item.SortOrder = *input.SortOrder
	}
	item.UpdatedAt = model.NowMillis()

	if err := uc.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *menuUseCase) DeleteItem(ctx context.Context, id string) error {
	return uc.repo.DeleteItem(ctx, id)
}

func (uc *menuUseCase) ReorderItems(ctx context.Context, categoryID string, orderedIDs []string) error {
	return uc.repo.ReorderItems(ctx, categoryID, orderedIDs)
}

// Modifier groups

func (uc *menuUseCase) AddModifierGroup(ctx context.Context, input *dto.CreateModifierGroupInput) (*model.ModifierGroup, error) {
	sortOrder, err := uc.nextSortOrder(ctx, input.SortOrder, func(ctx context.Context) (int, error) {
		return uc.repo.MaxModifierGroupSortOrder(ctx)
	})
	if err != nil {
		return nil, err
	}

	now := model.NowMillis()
	g := &model.ModifierGroup{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:        input.Name,
		Options:     mapOptions(input.Options),
		MultiSelect: input.MultiSelect,
		Required:    input.Required,
		Available:   input.Available,
		SortOrder:   sortOrder,
	}

	if err := uc.repo.CreateModifierGroup(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (uc *menuUseCase) UpdateModifierGroup(ctx context.Context, id string, input *dto.UpdateModifierGroupInput) (*model.ModifierGroup, error) {
	g, err := uc.repo.FindModifierGroupByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, model.ErrNotFound
	}

	if input.Name != nil {
		g.Name = *input.Name
	}
	if input.Options != nil {
		g.Options = mapOptions(*input.Options)
	}
	if input.MultiSelect != nil {
		g.MultiSelect = *input.MultiSelect
	}
	if input.Required != nil {
		g.Required = *input.Required
	}
	if input.Available != nil {
		g.Available = *input.Available
	}
	if input.SortOrder != nil {
		g.SortOrder = *input.SortOrder
	}
	g.UpdatedAt = model.NowMillis()

	if err := uc.repo.UpdateModifierGroup(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (uc *menuUseCase) DeleteModifierGroup(ctx context.Context, id string) error {
	return uc.repo.DeleteModifierGroup(ctx, id)
}

func (uc *menuUseCase) ReorderModifierGroups(ctx context.Context, orderedIDs []string) error {
	return uc.repo.ReorderModifierGroups(ctx, orderedIDs)
}

// GetSnapshot builds the point-in-time copy embedded into sessions: available
// entities only, and within groups only available options. Everything is
// loaded fresh from the store, so the snapshot shares nothing with later
// reads of the live menu.
func (uc *menuUseCase) GetSnapshot(ctx context.Context) (*model.MenuSnapshot, error) {
	m, err := uc.LoadMenu(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &model.MenuSnapshot{
		Items:          []model.MenuItem{},
		ModifierGroups: []model.ModifierGroup{},
		Categories:     []model.Category{},
	}

	for _, item := range m.Items {
		if item.Available {
			snapshot.Items = append(snapshot.Items, item)
		}
	}
	for _, g := range m.ModifierGroups {
		if !g.Available {
			continue
		}
		options := model.ModifierOptionList{}
		for _, opt := range g.Options {
			if opt.Available {
				options = append(options, opt)
			}
		}
		g.Options = options
		snapshot.ModifierGroups = append(snapshot.ModifierGroups, g)
	}
	for _, c := range m.Categories {
		if c.Available {
			snapshot.Categories = append(snapshot.Categories, c)
		}
	}

	return snapshot, nil
}

// nextSortOrder honors an explicit sort order from the caller, else appends
// to the end of the relevant scope.
func (uc *menuUseCase) nextSortOrder(ctx context.Context, explicit *int, max func(context.Context) (int, error)) (int, error) {
	if explicit != nil {
		return *explicit, nil
	}
	m, err := max(ctx)
	if err != nil {
		return 0, err
	}
	return m + 1, nil
}

func mapOptions(inputs []dto.ModifierOptionInput) model.ModifierOptionList {
	options := make(model.ModifierOptionList, 0, len(inputs))
	for _, in := range inputs {
		id := in.ID
		if id == "" {
			id = uuid.New().String()
		}
		options = append(options, model.ModifierOption{
			ID:            id,
			Name:          in.Name,
			Available:     in.Available,
			PriceAdditive: in.PriceAdditive,
		})
	}
	return options
}
