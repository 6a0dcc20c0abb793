package database

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sideorder/sideorder/internal/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func countRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, db.Get(&n, `SELECT count(*) FROM `+table))
	return n
}

func TestInitializeFreshStore(t *testing.T) {
	db := newTestDB(t)
	log := zap.NewNop()

	require.NoError(t, Initialize(db, log))

	var version int
	require.NoError(t, db.Get(&version, `SELECT MAX(version) FROM schema_migrations`))
	assert.Equal(t, 4, version)

	assert.Equal(t, 4, countRows(t, db, "categories"))
	assert.Equal(t, 4, countRows(t, db, "modifier_groups"))
	assert.Equal(t, 9, countRows(t, db, "menu_items"))
	assert.Equal(t, 0, countRows(t, db, "settings"))

	// Items inside one category carry a dense sort order from zero.
	var orders []int
	require.NoError(t, db.Select(&orders,
		`SELECT sort_order FROM menu_items WHERE category_id = ? ORDER BY sort_order ASC`,
		CategoryEspressoID))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, orders)
}

func TestInitializeIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	log := zap.NewNop()

	require.NoError(t, Initialize(db, log))
	require.NoError(t, Initialize(db, log))

	assert.Equal(t, 4, countRows(t, db, "categories"))
	assert.Equal(t, 4, countRows(t, db, "modifier_groups"))
	assert.Equal(t, 9, countRows(t, db, "menu_items"))
	assert.Equal(t, 4, countRows(t, db, "schema_migrations"))
}

func TestInitializeLeavesUserDataAlone(t *testing.T) {
	db := newTestDB(t)
	log := zap.NewNop()

	require.NoError(t, Initialize(db, log))

	// The owner trimmed the menu down to one item; a restart must not
	// re-seed the defaults over their changes.
	_, err := db.Exec(`DELETE FROM menu_items WHERE id != 'item-espresso'`)
	require.NoError(t, err)

	require.NoError(t, Initialize(db, log))
	assert.Equal(t, 1, countRows(t, db, "menu_items"))
}

// Builds a store at schema version 1 with legacy rows, the shape the app
// wrote before modifier groups and category entities existed.
func seedLegacyStore(t *testing.T, db *sqlx.DB) {
	t.Helper()

	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, migrateBaseTables(tx))
	require.NoError(t, tx.Commit())

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at INTEGER NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO schema_migrations (version, applied_at) VALUES (1, ?)`, model.NowMillis())
	require.NoError(t, err)

	legacy := []struct {
		id, name, category string
		createdAt          int64
	}{
		{"old-latte", "Latte", "espresso", 100},
		{"old-flatwhite", "Flat White", "espresso", 200},
		{"old-drip", "Drip Coffee", "drip", 300},
		{"old-scone", "Scone", "pastry", 400},
	}
	for _, it := range legacy {
		_, err = db.Exec(`INSERT INTO menu_items (id, name, category, available, created_at, updated_at)
			VALUES (?, ?, ?, 1, ?, ?)`, it.id, it.name, it.category, it.createdAt, it.createdAt)
		require.NoError(t, err)
	}
}

func TestMigrateLegacyStore(t *testing.T) {
	db := newTestDB(t)
	log := zap.NewNop()

	seedLegacyStore(t, db)
	require.NoError(t, Initialize(db, log))

	type migrated struct {
		ID         string `db:"id"`
		CategoryID string `db:"category_id"`
		SortOrder  int    `db:"sort_order"`
		GroupIDs   string `db:"modifier_group_ids"`
	}
	var items []migrated
	require.NoError(t, db.Select(&items,
		`SELECT id, category_id, sort_order, modifier_group_ids FROM menu_items ORDER BY created_at ASC`))
	require.Len(t, items, 4)

	assert.Equal(t, CategoryEspressoID, items[0].CategoryID)
	assert.Equal(t, 0, items[0].SortOrder)
	assert.Equal(t, CategoryEspressoID, items[1].CategoryID)
	assert.Equal(t, 1, items[1].SortOrder)
	assert.Equal(t, CategoryDripID, items[2].CategoryID)
	assert.Equal(t, 0, items[2].SortOrder)

	// "pastry" was never a known category string, so the item lands in Other.
	assert.Equal(t, CategoryOtherID, items[3].CategoryID)
	assert.Equal(t, 0, items[3].SortOrder)

	for _, it := range items {
		assert.Equal(t, "[]", it.GroupIDs, "legacy items start with no modifier groups")
	}

	// The store had menu items, so the item defaults are not seeded over
	// them, but the modifier group table was empty and gets the defaults.
	assert.Equal(t, 4, countRows(t, db, "menu_items"))
	var tempCount int
	require.NoError(t, db.Get(&tempCount, `SELECT count(*) FROM modifier_groups WHERE id = ?`, GroupTempID))
	assert.Equal(t, 1, tempCount)

	// The legacy category column is gone.
	var hasLegacyColumn int
	require.NoError(t, db.Get(&hasLegacyColumn,
		`SELECT count(*) FROM pragma_table_info('menu_items') WHERE name = 'category'`))
	assert.Equal(t, 0, hasLegacyColumn)
}

func TestRepairTempGroup(t *testing.T) {
	db := newTestDB(t)
	log := zap.NewNop()

	require.NoError(t, Initialize(db, log))

	// Simulate a dataset seeded before temperature became a modifier group.
	_, err := db.Exec(`DELETE FROM modifier_groups WHERE id = ?`, GroupTempID)
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE menu_items SET modifier_group_ids = '["group-size"]' WHERE id = 'item-latte'`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM menu_items WHERE id = 'item-matcha'`)
	require.NoError(t, err)

	require.NoError(t, RepairTempGroup(db, log))

	var tempCount int
	require.NoError(t, db.Get(&tempCount, `SELECT count(*) FROM modifier_groups WHERE id = ?`, GroupTempID))
	assert.Equal(t, 1, tempCount)

	var latteGroups string
	require.NoError(t, db.Get(&latteGroups, `SELECT modifier_group_ids FROM menu_items WHERE id = 'item-latte'`))
	assert.Equal(t, `["group-size","group-temp"]`, latteGroups)

	// Plain espresso never carries the temp group.
	var espressoGroups string
	require.NoError(t, db.Get(&espressoGroups, `SELECT modifier_group_ids FROM menu_items WHERE id = 'item-espresso'`))
	assert.Equal(t, `[]`, espressoGroups)

	// Restored group is appended after the existing groups.
	var sortOrder int
	require.NoError(t, db.Get(&sortOrder, `SELECT sort_order FROM modifier_groups WHERE id = ?`, GroupTempID))
	assert.Equal(t, 3, sortOrder)
}
