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

func (r *SQLiteRepository) Create(ctx context.Context, s *model.Session) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The partial unique index on status='active' is the backstop; the
	// pre-check turns a constraint violation into the domain error.
	var active int
	if err := tx.GetContext(ctx, &active,
		`SELECT count(*) FROM sessions WHERE status = ?`, model.SessionStatusActive); err != nil {
		return err
	}
	if active > 0 {
		return model.ErrActiveSessionExists
	}

	query := `
        INSERT INTO sessions (id, name, status, started_at, ended_at, customer_count, notes, menu_snapshot)
        VALUES (:id, :name, :status, :started_at, :ended_at, :customer_count, :notes, :menu_snapshot)
    `
	if _, err := tx.NamedExecContext(ctx, query, s); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*model.Session, error) {
	var s model.Session
	err := r.DB.GetContext(ctx, &s, `SELECT * FROM sessions WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context) ([]model.Session, error) {
	sessions := []model.Session{}
	err := r.DB.SelectContext(ctx, &sessions,
		`SELECT * FROM sessions ORDER BY started_at DESC`)
	return sessions, err
}

func (r *SQLiteRepository) FindActive(ctx context.Context) (*model.Session, error) {
	var s model.Session
	err := r.DB.GetContext(ctx, &s,
		`SELECT * FROM sessions WHERE status = ? LIMIT 1`, model.SessionStatusActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, s *model.Session) error {
	query := `
        UPDATE sessions
        SET name = :name,
            customer_count = :customer_count,
            notes = :notes
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, s)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *SQLiteRepository) UpdateSnapshot(ctx context.Context, id string, snapshot model.MenuSnapshot) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE sessions SET menu_snapshot = ? WHERE id = ?`, snapshot, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *SQLiteRepository) End(ctx context.Context, id string, endedAt int64) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE sessions SET status = ?, ended_at = ? WHERE id = ? AND status = ?`,
		model.SessionStatusClosed, endedAt, id, model.SessionStatusActive)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE session_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := requireAffected(res); err != nil {
		return err
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
