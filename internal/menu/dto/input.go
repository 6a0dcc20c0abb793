package dto

type CreateCategoryInput struct {
	Name      string `json:"name" binding:"required"`
	Available bool   `json:"available"`
	SortOrder *int   `json:"sortOrder"`
}

type UpdateCategoryInput struct {
	Name      *string `json:"name"`
	Available *bool   `json:"available"`
	SortOrder *int    `json:"sortOrder"`
}

type CreateMenuItemInput struct {
	Name             string   `json:"name" binding:"required"`
	CategoryID       string   `json:"categoryId" binding:"required"`
	BaseCost         *float64 `json:"baseCost"`
	Available        bool     `json:"available"`
	ModifierGroupIDs []string `json:"modifierGroupIds"`
	SortOrder        *int     `json:"sortOrder"`
}

type UpdateMenuItemInput struct {
	Name             *string   `json:"name"`
	CategoryID       *string   `json:"categoryId"`
	BaseCost         *float64  `json:"baseCost"`
	ClearBaseCost    bool      `json:"clearBaseCost"`
	Available        *bool     `json:"available"`
	ModifierGroupIDs *[]string `json:"modifierGroupIds"`
	SortOrder        *int      `json:"sortOrder"`
}

type ModifierOptionInput struct {
	ID            string   `json:"id"`
	Name          string   `json:"name" binding:"required"`
	Available     bool     `json:"available"`
	PriceAdditive *float64 `json:"priceAdditive"`
}

type CreateModifierGroupInput struct {
	Name        string                `json:"name" binding:"required"`
	Options     []ModifierOptionInput `json:"options"`
	MultiSelect bool                  `json:"multiSelect"`
	Required    bool                  `json:"required"`
	Available   bool                  `json:"available"`
	SortOrder   *int                  `json:"sortOrder"`
}

type UpdateModifierGroupInput struct {
	Name        *string                `json:"name"`
	Options     *[]ModifierOptionInput `json:"options"`
	MultiSelect *bool                  `json:"multiSelect"`
	Required    *bool                  `json:"required"`
	Available   *bool                  `json:"available"`
	SortOrder   *int                   `json:"sortOrder"`
}

type ReorderInput struct {
	OrderedIDs []string `json:"orderedIds" binding:"required"`
}

type ReorderItemsInput struct {
	CategoryID string   `json:"categoryId" binding:"required"`
	OrderedIDs []string `json:"orderedIds" binding:"required"`
}
