package dto

import "github.com/sideorder/sideorder/internal/model"

// Menu is the full live menu, every list sorted by sortOrder ascending.
type Menu struct {
	Items          []model.MenuItem      `json:"items"`
	ModifierGroups []model.ModifierGroup `json:"modifierGroups"`
	Categories     []model.Category      `json:"categories"`
}
