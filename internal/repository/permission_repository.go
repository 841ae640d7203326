package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/backoffice/internal/model"
)

// PermissionRepo encapsulates the queries over the permissions table.
type PermissionRepo struct {
	db *sql.DB
}

func NewPermissionRepo(db *sql.DB) *PermissionRepo { return &PermissionRepo{db: db} }

const permissionColumns = `p.id, p.name, COALESCE(p.description, ''), COALESCE(p.category, ''), p.active, p.created_at, p.updated_at`

func scanPermission(s rowScanner) (model.Permission, error) {
	var p model.Permission
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PermissionRepo) list(ctx context.Context, q string, args ...any) ([]model.Permission, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Permission{}
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListAll returns every permission ordered by category then name.
func (r *PermissionRepo) ListAll(ctx context.Context) ([]model.Permission, error) {
	return r.list(ctx, "SELECT "+permissionColumns+" FROM permissions p ORDER BY p.category, p.name")
}

// ListByCategory returns the permissions of one category.
func (r *PermissionRepo) ListByCategory(ctx context.Context, category string) ([]model.Permission, error) {
	return r.list(ctx, "SELECT "+permissionColumns+" FROM permissions p WHERE p.category = ? ORDER BY p.name", category)
}

// ListActive returns the active permissions.
func (r *PermissionRepo) ListActive(ctx context.Context) ([]model.Permission, error) {
	return r.list(ctx, "SELECT "+permissionColumns+" FROM permissions p WHERE p.active = 1 ORDER BY p.category, p.name")
}

// ListByProfile returns the permissions granted to profile id.
func (r *PermissionRepo) ListByProfile(ctx context.Context, profileID uint64) ([]model.Permission, error) {
	return r.list(ctx, `SELECT `+permissionColumns+`
		FROM permissions p
		JOIN profile_permissions pp ON pp.permission_id = p.id
		WHERE pp.profile_id = ?
		ORDER BY p.category, p.name`, profileID)
}

// Search matches term against name, description or category.
func (r *PermissionRepo) Search(ctx context.Context, term string) ([]model.Permission, error) {
	cond, args := likeAny(term, "p.name", "p.description", "p.category")
	return r.list(ctx, "SELECT "+permissionColumns+" FROM permissions p WHERE "+cond+" ORDER BY p.category, p.name", args...)
}

// Categories returns the distinct, non-empty categories in order.
func (r *PermissionRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT category FROM permissions WHERE category IS NOT NULL AND category <> '' ORDER BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PermissionRepo) getOne(ctx context.Context, where string, arg any) (*model.Permission, error) {
	p, err := scanPermission(r.db.QueryRowContext(ctx, "SELECT "+permissionColumns+" FROM permissions p WHERE "+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByID fetches permission id.
func (r *PermissionRepo) GetByID(ctx context.Context, id uint64) (*model.Permission, error) {
	return r.getOne(ctx, "p.id = ?", id)
}

// GetByName fetches a permission by its unique name.
func (r *PermissionRepo) GetByName(ctx context.Context, name string) (*model.Permission, error) {
	return r.getOne(ctx, "p.name = ?", name)
}

// ExistsByName reports whether a permission is called name.
func (r *PermissionRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM permissions WHERE name = ?)", name).Scan(&ok)
	return ok, err
}

// ExistsByNameAndIDNot reports whether a permission other than id is called name.
func (r *PermissionRepo) ExistsByNameAndIDNot(ctx context.Context, name string, id uint64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM permissions WHERE name = ? AND id <> ?)", name, id).Scan(&ok)
	return ok, err
}

// Create inserts p.
func (r *PermissionRepo) Create(ctx context.Context, p *model.Permission) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO permissions (name, description, category, active) VALUES (?, ?, ?, ?)",
		p.Name, nullIfEmpty(p.Description), nullIfEmpty(p.Category), p.Active)
	if err != nil {
		return mapWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	return r.reload(ctx, uint64(id), p)
}

// Update overwrites p.
func (r *PermissionRepo) Update(ctx context.Context, p *model.Permission) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE permissions SET name = ?, description = ?, category = ?, active = ? WHERE id = ?",
		p.Name, nullIfEmpty(p.Description), nullIfEmpty(p.Category), p.Active, p.ID)
	if err != nil {
		return mapWriteErr(err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	return r.reload(ctx, p.ID, p)
}

// Delete removes permission id; grants cascade.
func (r *PermissionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM permissions WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// Count returns the number of permissions.
func (r *PermissionRepo) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, "permissions", "", nil)
}

func (r *PermissionRepo) reload(ctx context.Context, id uint64, p *model.Permission) error {
	got, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*p = *got
	return nil
}
