package database

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/sideorder/sideorder/internal/model"
)

// Fixed ids for the seeded defaults. The repair migration and the legacy
// category remap both key on these.
const (
	CategoryEspressoID = "cat-espresso"
	CategoryDripID     = "cat-drip"
	CategoryTeaID      = "cat-tea"
	CategoryOtherID    = "cat-other"

	GroupSizeID   = "group-size"
	GroupMilkID   = "group-milk"
	GroupSyrupsID = "group-syrups"
	GroupTempID   = "group-temp"
)

// legacyCategoryIDs maps the pre-migration category strings to category ids.
var legacyCategoryIDs = map[string]string{
	"espresso": CategoryEspressoID,
	"drip":     CategoryDripID,
	"tea":      CategoryTeaID,
	"other":    CategoryOtherID,
}

// Default items that carry the Temp group; everything seeded except plain
// Espresso.
var tempGroupItemIDs = []string{
	"item-americano",
	"item-latte",
	"item-cappuccino",
	"item-mocha",
	"item-drip",
	"item-pourover",
	"item-tea",
	"item-matcha",
}

func defaultCategories(now int64) []model.Category {
	mk := func(id, name string, sortOrder int) model.Category {
		return model.Category{
			BaseModel: model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
			Name:      name,
			SortOrder: sortOrder,
			Available: true,
		}
	}
	return []model.Category{
		mk(CategoryEspressoID, "Espresso", 0),
		mk(CategoryDripID, "Drip", 1),
		mk(CategoryTeaID, "Tea", 2),
		mk(CategoryOtherID, "Other", 3),
	}
}

func defaultTempGroup(now int64) model.ModifierGroup {
	return model.ModifierGroup{
		BaseModel: model.BaseModel{ID: GroupTempID, CreatedAt: now, UpdatedAt: now},
		Name:      "Temp",
		Options: model.ModifierOptionList{
			{ID: "temp-hot", Name: "Hot", Available: true},
			{ID: "temp-iced", Name: "Iced", Available: true},
		},
		MultiSelect: false,
		Required:    false,
		Available:   true,
		SortOrder:   3,
	}
}

func defaultModifierGroups(now int64) []model.ModifierGroup {
	return []model.ModifierGroup{
		{
			BaseModel: model.BaseModel{ID: GroupSizeID, CreatedAt: now, UpdatedAt: now},
			Name:      "Size",
			Options: model.ModifierOptionList{
				{ID: "size-small", Name: "Small (8oz)", Available: true},
				{ID: "size-regular", Name: "Regular (12oz)", Available: true},
				{ID: "size-large", Name: "Large (16oz)", Available: true},
			},
			MultiSelect: false,
			Required:    true,
			Available:   true,
			SortOrder:   0,
		},
		{
			BaseModel: model.BaseModel{ID: GroupMilkID, CreatedAt: now, UpdatedAt: now},
			Name:      "Milk",
			Options: model.ModifierOptionList{
				{ID: "milk-whole", Name: "Whole", Available: true},
				{ID: "milk-oat", Name: "Oat", Available: true},
				{ID: "milk-almond", Name: "Almond", Available: true},
			},
			MultiSelect: false,
			Required:    true,
			Available:   true,
			SortOrder:   1,
		},
		{
			BaseModel: model.BaseModel{ID: GroupSyrupsID, CreatedAt: now, UpdatedAt: now},
			Name:      "Flavor Syrups",
			Options: model.ModifierOptionList{
				{ID: "syrup-vanilla", Name: "Vanilla", Available: true},
				{ID: "syrup-caramel", Name: "Caramel", Available: true},
				{ID: "syrup-hazelnut", Name: "Hazelnut", Available: true},
			},
			MultiSelect: true,
			Required:    false,
			Available:   true,
			SortOrder:   2,
		},
		defaultTempGroup(now),
	}
}

func defaultMenuItems(now int64) []model.MenuItem {
	mk := func(id, name, categoryID string, sortOrder int, groupIDs ...string) model.MenuItem {
		return model.MenuItem{
			BaseModel:        model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
			Name:             name,
			CategoryID:       categoryID,
			Available:        true,
			ModifierGroupIDs: model.StringList(groupIDs),
			SortOrder:        sortOrder,
		}
	}
	return []model.MenuItem{
		// Espresso is a plain shot, no modifiers.
		mk("item-espresso", "Espresso", CategoryEspressoID, 0),
		mk("item-americano", "Americano", CategoryEspressoID, 1, GroupSizeID, GroupTempID),
		mk("item-latte", "Latte", CategoryEspressoID, 2, GroupSizeID, GroupMilkID, GroupTempID),
		mk("item-cappuccino", "Cappuccino", CategoryEspressoID, 3, GroupSizeID, GroupMilkID, GroupTempID),
		mk("item-mocha", "Mocha", CategoryEspressoID, 4, GroupSizeID, GroupMilkID, GroupTempID),
		mk("item-drip", "Drip Coffee", CategoryDripID, 0, GroupSizeID, GroupTempID),
		// Pour over is single serve, temp only.
		mk("item-pourover", "Pour Over", CategoryDripID, 1, GroupTempID),
		mk("item-tea", "Hot Tea", CategoryTeaID, 0, GroupSizeID, GroupTempID),
		mk("item-matcha", "Matcha Latte", CategoryTeaID, 1, GroupSizeID, GroupMilkID, GroupTempID),
	}
}

// Seed populates the defaults on a fresh store. Every block is
// check-then-insert so a failed or repeated seed is safe to retry, and a
// store with any user data is left untouched.
func Seed(db *sqlx.DB, log *zap.Logger) error {
	now := model.NowMillis()

	var categoryCount int
	if err := db.Get(&categoryCount, `SELECT count(*) FROM categories`); err != nil {
		return err
	}
	if categoryCount == 0 {
		for _, c := range defaultCategories(now) {
			if _, err := db.NamedExec(`INSERT OR IGNORE INTO categories
				(id, name, sort_order, available, created_at, updated_at)
				VALUES (:id, :name, :sort_order, :available, :created_at, :updated_at)`, c); err != nil {
				return err
			}
		}
		log.Info("seeded default categories")
	}

	var groupCount int
	if err := db.Get(&groupCount, `SELECT count(*) FROM modifier_groups`); err != nil {
		return err
	}
	if groupCount == 0 {
		tx, err := db.Beginx()
		if err != nil {
			return err
		}
		for _, g := range defaultModifierGroups(now) {
			if err := insertModifierGroup(tx, g); err != nil {
				tx.Rollback()
				return err
			}
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		log.Info("seeded default modifier groups")
	}

	var itemCount int
	if err := db.Get(&itemCount, `SELECT count(*) FROM menu_items`); err != nil {
		return err
	}
	if itemCount == 0 {
		tx, err := db.Beginx()
		if err != nil {
			return err
		}
		for _, it := range defaultMenuItems(now) {
			if _, err := tx.NamedExec(`INSERT OR IGNORE INTO menu_items
				(id, name, category_id, base_cost, available, modifier_group_ids, sort_order, created_at, updated_at)
				VALUES (:id, :name, :category_id, :base_cost, :available, :modifier_group_ids, :sort_order, :created_at, :updated_at)`, it); err != nil {
				tx.Rollback()
				return err
			}
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		log.Info("seeded default menu items")
	}

	return nil
}

func insertModifierGroup(tx *sqlx.Tx, g model.ModifierGroup) error {
	_, err := tx.NamedExec(`INSERT OR IGNORE INTO modifier_groups
		(id, name, options, multi_select, required, available, sort_order, created_at, updated_at)
		VALUES (:id, :name, :options, :multi_select, :required, :available, :sort_order, :created_at, :updated_at)`, g)
	return err
}
