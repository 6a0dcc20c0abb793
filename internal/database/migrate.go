package database

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/sideorder/sideorder/internal/model"
)

// A migration declares one schema version. Steps run exactly once, in
// ascending version order, tracked by the schema_migrations table. Each step
// receives a transaction and must leave existing data intact.
type migration struct {
	version int
	name    string
	run     func(tx *sqlx.Tx) error
}

var migrations = []migration{
	{1, "base tables", migrateBaseTables},
	{2, "modifier groups", migrateModifierGroups},
	{3, "categories", migrateCategories},
	{4, "settings", migrateSettings},
}

// Initialize brings the store fully up to date: versioned migrations, then
// first-run seeding, then the temp-group repair. Any failure aborts startup.
func Initialize(db *sqlx.DB, log *zap.Logger) error {
	if err := Migrate(db, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := Seed(db, log); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := RepairTempGroup(db, log); err != nil {
		return fmt.Errorf("repair: %w", err)
	}
	return nil
}

// Migrate applies every migration above the store's current version, each in
// its own transaction together with the version marker.
func Migrate(db *sqlx.DB, log *zap.Logger) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at INTEGER NOT NULL
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	if err := db.Get(&current, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := db.Beginx()
		if err != nil {
			return err
		}

		if err := m.run(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
			m.version, model.NowMillis()); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}

		log.Info("applied migration", zap.Int("version", m.version), zap.String("name", m.name))
	}

	return nil
}

// Version 1: the original layout. Menu items carry a free-form category
// string, and customization options are a flat table. Both are superseded
// later but the shapes must be creatable so old datasets migrate cleanly.
func migrateBaseTables(tx *sqlx.Tx) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT 'other',
			base_cost REAL,
			available INTEGER NOT NULL DEFAULT 1,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_menu_items_created_at ON menu_items (created_at)`,

		`CREATE TABLE IF NOT EXISTS customization_options (
			id TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			name TEXT NOT NULL,
			cost_modifier REAL,
			available INTEGER NOT NULL DEFAULT 1
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			ended_at INTEGER,
			customer_count INTEGER,
			notes TEXT NOT NULL DEFAULT '',
			menu_snapshot TEXT NOT NULL DEFAULT '{}'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions (status)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions (started_at)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_single_active
			ON sessions (status) WHERE status = 'active'`,

		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			item_name TEXT NOT NULL,
			item_category TEXT NOT NULL DEFAULT '',
			customizations TEXT NOT NULL DEFAULT '{}',
			notes TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_session_id ON orders (session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_timestamp ON orders (timestamp)`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Version 2: introduce modifier groups and give every existing menu item an
// empty modifier_group_ids list.
func migrateModifierGroups(tx *sqlx.Tx) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS modifier_groups (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			options TEXT NOT NULL DEFAULT '[]',
			multi_select INTEGER NOT NULL DEFAULT 0,
			required INTEGER NOT NULL DEFAULT 0,
			available INTEGER NOT NULL DEFAULT 1,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`ALTER TABLE menu_items ADD COLUMN modifier_group_ids TEXT NOT NULL DEFAULT '[]'`,
		`UPDATE menu_items SET modifier_group_ids = '[]'
			WHERE modifier_group_ids IS NULL OR modifier_group_ids = ''`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Version 3: categories become entities. Seeds the four defaults, remaps the
// legacy category string on every menu item to the matching category id
// (unrecognized values fall back to Other), backfills a dense per-category
// sort order, then drops the legacy column.
func migrateCategories(tx *sqlx.Tx) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			available INTEGER NOT NULL DEFAULT 1,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_categories_sort_order ON categories (sort_order)`,
		`ALTER TABLE menu_items ADD COLUMN category_id TEXT NOT NULL DEFAULT ''`,
		`ALTER TABLE menu_items ADD COLUMN sort_order INTEGER NOT NULL DEFAULT 0`,
		`CREATE INDEX IF NOT EXISTS idx_menu_items_category_id ON menu_items (category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_menu_items_sort_order ON menu_items (sort_order)`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	now := model.NowMillis()
	for _, c := range defaultCategories(now) {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO categories
			(id, name, sort_order, available, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.SortOrder, c.Available, c.CreatedAt, c.UpdatedAt); err != nil {
			return err
		}
	}

	type legacyItem struct {
		ID       string `db:"id"`
		Category string `db:"category"`
	}
	var items []legacyItem
	if err := tx.Select(&items, `SELECT id, category FROM menu_items ORDER BY created_at ASC`); err != nil {
		return err
	}

	position := map[string]int{}
	for _, it := range items {
		categoryID, ok := legacyCategoryIDs[it.Category]
		if !ok {
			categoryID = CategoryOtherID
		}
		sortOrder := position[categoryID]
		position[categoryID] = sortOrder + 1

		if _, err := tx.Exec(`UPDATE menu_items SET category_id = ?, sort_order = ? WHERE id = ?`,
			categoryID, sortOrder, it.ID); err != nil {
			return err
		}
	}

	_, err := tx.Exec(`ALTER TABLE menu_items DROP COLUMN category`)
	return err
}

// Version 4: app settings key-value table. No data transform.
func migrateSettings(tx *sqlx.Tx) error {
	_, err := tx.Exec(`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	return err
}

// RepairTempGroup restores the default "Temp" modifier group when it is
// missing and re-attaches it to the default items that should carry it. This
// is a repair for datasets seeded before temperature moved into a modifier
// group; it acts only when the group is absent.
func RepairTempGroup(db *sqlx.DB, log *zap.Logger) error {
	var count int
	if err := db.Get(&count, `SELECT count(*) FROM modifier_groups WHERE id = ?`, GroupTempID); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var maxSort int
	if err := tx.Get(&maxSort, `SELECT COALESCE(MAX(sort_order), -1) FROM modifier_groups`); err != nil {
		return err
	}

	now := model.NowMillis()
	temp := defaultTempGroup(now)
	temp.SortOrder = maxSort + 1
	if err := insertModifierGroup(tx, temp); err != nil {
		return err
	}

	for _, itemID := range tempGroupItemIDs {
		var raw string
		err := tx.Get(&raw, `SELECT modifier_group_ids FROM menu_items WHERE id = ?`, itemID)
		if err != nil {
			// Default item was deleted by the user; nothing to repair.
			continue
		}

		var groupIDs model.StringList
		if err := json.Unmarshal([]byte(raw), &groupIDs); err != nil {
			groupIDs = model.StringList{}
		}
		if groupIDs.Contains(GroupTempID) {
			continue
		}
		groupIDs = append(groupIDs, GroupTempID)

		encoded, err := json.Marshal(groupIDs)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`UPDATE menu_items SET modifier_group_ids = ?, updated_at = ? WHERE id = ?`,
			string(encoded), now, itemID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("restored missing temp modifier group", zap.String("group_id", GroupTempID))
	return nil
}
