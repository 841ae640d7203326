package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/backoffice/internal/model"
)

// RubricaRepo reads and writes the rubricas table.
type RubricaRepo struct {
	db *sql.DB
}

func NewRubricaRepo(db *sql.DB) *RubricaRepo { return &RubricaRepo{db: db} }

// ListAll returns every entry ordered by id.
func (r *RubricaRepo) ListAll(ctx context.Context) ([]model.Rubrica, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, COALESCE(nome, '') FROM rubricas ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Rubrica{}
	for rows.Next() {
		var rb model.Rubrica
		if err := rows.Scan(&rb.ID, &rb.Nome); err != nil {
			return nil, err
		}
		out = append(out, rb)
	}
	return out, rows.Err()
}

// GetByID fetches entry id.
func (r *RubricaRepo) GetByID(ctx context.Context, id uint64) (*model.Rubrica, error) {
	var rb model.Rubrica
	err := r.db.QueryRowContext(ctx, "SELECT id, COALESCE(nome, '') FROM rubricas WHERE id = ?", id).Scan(&rb.ID, &rb.Nome)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rb, nil
}

// Create inserts rb and sets its id.
func (r *RubricaRepo) Create(ctx context.Context, rb *model.Rubrica) error {
	res, err := r.db.ExecContext(ctx, "INSERT INTO rubricas (nome) VALUES (?)", nullIfEmpty(rb.Nome))
	if err != nil {
		return mapWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rb.ID = uint64(id)
	return nil
}

// Update overwrites the name of entry rb.ID.
func (r *RubricaRepo) Update(ctx context.Context, rb *model.Rubrica) error {
	res, err := r.db.ExecContext(ctx, "UPDATE rubricas SET nome = ? WHERE id = ?", nullIfEmpty(rb.Nome), rb.ID)
	if err != nil {
		return mapWriteErr(err)
	}
	return affectedOrNotFound(res)
}

// Delete removes entry id.
func (r *RubricaRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM rubricas WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// Count returns the number of entries.
func (r *RubricaRepo) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, "rubricas", "", nil)
}
