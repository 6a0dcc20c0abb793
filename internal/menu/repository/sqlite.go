package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/sideorder/sideorder/internal/model"
)

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

// Categories

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, name, sort_order, available, created_at, updated_at)
        VALUES (:id, :name, :sort_order, :available, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *SQLiteRepository) FindCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	err := r.DB.GetContext(ctx, &c, `SELECT * FROM categories WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *SQLiteRepository) FindAllCategories(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	err := r.DB.SelectContext(ctx, &categories,
		`SELECT * FROM categories ORDER BY sort_order ASC, created_at ASC`)
	return categories, err
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET name = :name,
            sort_order = :sort_order,
            available = :available,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, c)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var categories []model.Category
	if err := tx.SelectContext(ctx, &categories,
		`SELECT * FROM categories ORDER BY sort_order ASC, created_at ASC`); err != nil {
		return err
	}

	found := false
	var fallback *model.Category
	for i := range categories {
		if categories[i].ID == id {
			found = true
			continue
		}
		// First other available category wins, else the first other.
		if fallback == nil || (!fallback.Available && categories[i].Available) {
			fallback = &categories[i]
		}
	}
	if !found {
		return model.ErrNotFound
	}
	if fallback == nil {
		return model.ErrLastCategory
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE menu_items SET category_id = ?, updated_at = ? WHERE category_id = ?`,
		fallback.ID, model.NowMillis(), id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SQLiteRepository) MaxCategorySortOrder(ctx context.Context) (int, error) {
	var max int
	err := r.DB.GetContext(ctx, &max, `SELECT COALESCE(MAX(sort_order), -1) FROM categories`)
	return max, err
}

func (r *SQLiteRepository) ReorderCategories(ctx context.Context, orderedIDs []string) error {
	return r.reorder(ctx, `UPDATE categories SET sort_order = ?, updated_at = ? WHERE id = ?`, orderedIDs)
}

// Menu items

func (r *SQLiteRepository) CreateItem(ctx context.Context, item *model.MenuItem) error {
	query := `
        INSERT INTO menu_items (id, name, category_id, base_cost, available, modifier_group_ids, sort_order, created_at, updated_at)
        VALUES (:id, :name, :category_id, :base_cost, :available, :modifier_group_ids, :sort_order, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, item)
	return err
}

func (r *SQLiteRepository) FindItemByID(ctx context.Context, id string) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.DB.GetContext(ctx, &item, `SELECT * FROM menu_items WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *SQLiteRepository) FindAllItems(ctx context.Context) ([]model.MenuItem, error) {
	items := []model.MenuItem{}
	err := r.DB.SelectContext(ctx, &items,
		`SELECT * FROM menu_items ORDER BY sort_order ASC, created_at ASC`)
	return items, err
}

func (r *SQLiteRepository) UpdateItem(ctx context.Context, item *model.MenuItem) error {
	query := `
        UPDATE menu_items
        SET name = :name,
            category_id = :category_id,
            base_cost = :base_cost,
            available = :available,
            modifier_group_ids = :modifier_group_ids,
            sort_order = :sort_order,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, item)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *SQLiteRepository) DeleteItem(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *SQLiteRepository) MaxItemSortOrder(ctx context.Context, categoryID string) (int, error) {
	var max int
	err := r.DB.GetContext(ctx, &max,
		`SELECT COALESCE(MAX(sort_order), -1) FROM menu_items WHERE category_id = ?`, categoryID)
	return max, err
}

func (r *SQLiteRepository) ReorderItems(ctx context.Context, categoryID string, orderedIDs []string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := model.NowMillis()
	for i, id := range orderedIDs {
		// Scoped to the category so ids from elsewhere cannot be touched.
		if _, err := tx.ExecContext(ctx,
			`UPDATE menu_items SET sort_order = ?, updated_at = ? WHERE id = ? AND category_id = ?`,
			i, now, id, categoryID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Modifier groups

func (r *SQLiteRepository) CreateModifierGroup(ctx context.Context, g *model.ModifierGroup) error {
	query := `
        INSERT INTO modifier_groups (id, name, options, multi_select, required, available, sort_order, created_at, updated_at)
        VALUES (:id, :name, :options, :multi_select, :required, :available, :sort_order, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, g)
	return err
}

func (r *SQLiteRepository) FindModifierGroupByID(ctx context.Context, id string) (*model.ModifierGroup, error) {
	var g model.ModifierGroup
	err := r.DB.GetContext(ctx, &g, `SELECT * FROM modifier_groups WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *SQLiteRepository) FindAllModifierGroups(ctx context.Context) ([]model.ModifierGroup, error) {
	groups := []model.ModifierGroup{}
	err := r.DB.SelectContext(ctx, &groups,
		`SELECT * FROM modifier_groups ORDER BY sort_order ASC, created_at ASC`)
	return groups, err
}

func (r *SQLiteRepository) UpdateModifierGroup(ctx context.Context, g *model.ModifierGroup) error {
	query := `
        UPDATE modifier_groups
        SET name = :name,
            options = :options,
            multi_select = :multi_select,
            required = :required,
            available = :available,
            sort_order = :sort_order,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, g)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *SQLiteRepository) DeleteModifierGroup(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM modifier_groups WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	// Strip the id from every referencing item. The menu is small and local,
	// so scanning the items beats a JSON-path query here.
	var items []model.MenuItem
	if err := tx.SelectContext(ctx, &items, `SELECT * FROM menu_items`); err != nil {
		return err
	}

	now := model.NowMillis()
	for i := range items {
		if !items[i].ModifierGroupIDs.Contains(id) {
			continue
		}
		stripped := items[i].ModifierGroupIDs.Without(id)
		if _, err := tx.ExecContext(ctx,
			`UPDATE menu_items SET modifier_group_ids = ?, updated_at = ? WHERE id = ?`,
			stripped, now, items[i].ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *SQLiteRepository) MaxModifierGroupSortOrder(ctx context.Context) (int, error) {
	var max int
	err := r.DB.GetContext(ctx, &max, `SELECT COALESCE(MAX(sort_order), -1) FROM modifier_groups`)
	return max, err
}

func (r *SQLiteRepository) ReorderModifierGroups(ctx context.Context, orderedIDs []string) error {
	return r.reorder(ctx, `UPDATE modifier_groups SET sort_order = ?, updated_at = ? WHERE id = ?`, orderedIDs)
}

func (r *SQLiteRepository) reorder(ctx context.Context, query string, orderedIDs []string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := model.NowMillis()
	for i, id := range orderedIDs {
		if _, err := tx.ExecContext(ctx, query, i, now, id); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
