package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/backoffice/internal/model"
)

// ProfileRepo encapsulates the queries over profiles and their permission
// grants (profile_permissions).
type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

const profileColumns = `pr.id, pr.name, COALESCE(pr.description, ''), pr.active, pr.created_at, pr.updated_at,
	(SELECT COUNT(*) FROM profile_permissions pp WHERE pp.profile_id = pr.id),
	(SELECT COUNT(*) FROM user_profiles up WHERE up.profile_id = pr.id)`

func scanProfile(s rowScanner) (model.Profile, error) {
	var p model.Profile
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		&p.PermissionCount, &p.UserCount)
	return p, err
}

func (r *ProfileRepo) list(ctx context.Context, q string, args ...any) ([]model.Profile, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListAll returns every profile with its permission and user counts.
func (r *ProfileRepo) ListAll(ctx context.Context) ([]model.Profile, error) {
	return r.list(ctx, "SELECT "+profileColumns+" FROM profiles pr ORDER BY pr.name")
}

// ListActive returns the active profiles.
func (r *ProfileRepo) ListActive(ctx context.Context) ([]model.Profile, error) {
	return r.list(ctx, "SELECT "+profileColumns+" FROM profiles pr WHERE pr.active = 1 ORDER BY pr.name")
}

// ListByUser returns the profiles assigned to user id.
func (r *ProfileRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Profile, error) {
	return r.list(ctx, `SELECT `+profileColumns+`
		FROM profiles pr
		JOIN user_profiles u ON u.profile_id = pr.id
		WHERE u.user_id = ?
		ORDER BY pr.name`, userID)
}

// Search matches term against name or description.
func (r *ProfileRepo) Search(ctx context.Context, term string) ([]model.Profile, error) {
	cond, args := likeAny(term, "pr.name", "pr.description")
	return r.list(ctx, "SELECT "+profileColumns+" FROM profiles pr WHERE "+cond+" ORDER BY pr.name", args...)
}

func (r *ProfileRepo) getOne(ctx context.Context, where string, arg any) (*model.Profile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx, "SELECT "+profileColumns+" FROM profiles pr WHERE "+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	perms, err := r.permissionsOf(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Permissions = perms
	return &p, nil
}

func (r *ProfileRepo) permissionsOf(ctx context.Context, id uint64) ([]model.Permission, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+permissionColumns+`
		FROM permissions p
		JOIN profile_permissions pp ON pp.permission_id = p.id
		WHERE pp.profile_id = ?
		ORDER BY p.category, p.name`, id)
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

// GetByID fetches profile id with its permissions.
func (r *ProfileRepo) GetByID(ctx context.Context, id uint64) (*model.Profile, error) {
	return r.getOne(ctx, "pr.id = ?", id)
}

// GetByName fetches a profile by its unique name with its permissions.
func (r *ProfileRepo) GetByName(ctx context.Context, name string) (*model.Profile, error) {
	return r.getOne(ctx, "pr.name = ?", name)
}

// ExistsByName reports whether a profile is called name.
func (r *ProfileRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM profiles WHERE name = ?)", name).Scan(&ok)
	return ok, err
}

// ExistsByNameAndIDNot reports whether a profile other than id is called name.
func (r *ProfileRepo) ExistsByNameAndIDNot(ctx context.Context, name string, id uint64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM profiles WHERE name = ? AND id <> ?)", name, id).Scan(&ok)
	return ok, err
}

// Create inserts p.  Grants are written separately with SetPermissions.
func (r *ProfileRepo) Create(ctx context.Context, p *model.Profile) error {
	res, err := r.db.ExecContext(ctx, "INSERT INTO profiles (name, description, active) VALUES (?, ?, ?)",
		p.Name, nullIfEmpty(p.Description), p.Active)
	if err != nil {
		return mapWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// Update overwrites name, description and active flag of p.
func (r *ProfileRepo) Update(ctx context.Context, p *model.Profile) error {
	res, err := r.db.ExecContext(ctx, "UPDATE profiles SET name = ?, description = ?, active = ? WHERE id = ?",
		p.Name, nullIfEmpty(p.Description), p.Active, p.ID)
	if err != nil {
		return mapWriteErr(err)
	}
	return affectedOrNotFound(res)
}

// SetPermissions replaces the grants of profile id in one transaction.
func (r *ProfileRepo) SetPermissions(ctx context.Context, id uint64, permissionIDs []uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	var exists bool
	if err = tx.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM profiles WHERE id = ?)", id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM profile_permissions WHERE profile_id = ?", id); err != nil {
		return err
	}
	for _, pid := range permissionIDs {
		if _, err = tx.ExecContext(ctx,
			"INSERT IGNORE INTO profile_permissions (profile_id, permission_id) VALUES (?, ?)", id, pid); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes profile id; grants and user assignments cascade.
func (r *ProfileRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// Count returns the number of profiles.
func (r *ProfileRepo) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, "profiles", "", nil)
}
