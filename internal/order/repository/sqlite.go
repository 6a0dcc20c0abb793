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

func (r *SQLiteRepository) Create(ctx context.Context, o *model.Order) error {
	query := `
        INSERT INTO orders (id, session_id, timestamp, item_name, item_category, customizations, notes)
        VALUES (:id, :session_id, :timestamp, :item_name, :item_category, :customizations, :notes)
    `
	_, err := r.DB.NamedExecContext(ctx, query, o)
	return err
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := r.DB.GetContext(ctx, &o, `SELECT * FROM orders WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *SQLiteRepository) FindBySession(ctx context.Context, sessionID string) ([]model.Order, error) {
	orders := []model.Order{}
	err := r.DB.SelectContext(ctx, &orders,
		`SELECT * FROM orders WHERE session_id = ? ORDER BY timestamp ASC`, sessionID)
	return orders, err
}

func (r *SQLiteRepository) Update(ctx context.Context, o *model.Order) error {
	query := `
        UPDATE orders
        SET customizations = :customizations,
            notes = :notes
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, o)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *SQLiteRepository) CountBySession(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM orders WHERE session_id = ?`, sessionID)
	return count, err
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
