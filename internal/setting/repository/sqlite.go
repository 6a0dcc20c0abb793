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

func (r *SQLiteRepository) Get(ctx context.Context, key string) (*model.Setting, error) {
	var s model.Setting
	err := r.DB.GetContext(ctx, &s, `SELECT * FROM settings WHERE key = ? LIMIT 1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, s *model.Setting) error {
	_, err := r.DB.NamedExecContext(ctx, `
        INSERT INTO settings (key, value) VALUES (:key, :value)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value
    `, s)
	return err
}
