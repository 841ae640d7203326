package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/backoffice/internal/model"
)

// UserRepo encapsulates the queries over users and their profile
// assignments (user_profiles).
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `u.id, u.username, u.email, u.first_name, u.last_name, COALESCE(u.phone, ''),
	COALESCE(u.department, ''), u.active, u.last_login, COALESCE(u.notes, ''), u.created_at, u.updated_at`

func scanUser(s rowScanner) (model.User, error) {
	var u model.User
	var lastLogin sql.NullTime
	err := s.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.Department,
		&u.Active, &lastLogin, &u.Notes, &u.CreatedAt, &u.UpdatedAt)
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return u, err
}

func (r *UserRepo) list(ctx context.Context, q string, args ...any) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ListAll returns every user ordered by username.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	return r.list(ctx, "SELECT "+userColumns+" FROM users u ORDER BY u.username")
}

// ListActive returns the active users.
func (r *UserRepo) ListActive(ctx context.Context) ([]model.User, error) {
	return r.list(ctx, "SELECT "+userColumns+" FROM users u WHERE u.active = 1 ORDER BY u.username")
}

// ListByProfile returns the users holding profile id.
func (r *UserRepo) ListByProfile(ctx context.Context, profileID uint64) ([]model.User, error) {
	return r.list(ctx, `SELECT `+userColumns+`
		FROM users u
		JOIN user_profiles up ON up.user_id = u.id
		WHERE up.profile_id = ?
		ORDER BY u.username`, profileID)
}

// Search matches term against username, email, first or last name and
// department.
func (r *UserRepo) Search(ctx context.Context, term string) ([]model.User, error) {
	cond, args := likeAny(term, "u.username", "u.email", "u.first_name", "u.last_name", "u.department")
	return r.list(ctx, "SELECT "+userColumns+" FROM users u WHERE "+cond+" ORDER BY u.username", args...)
}

func (r *UserRepo) getOne(ctx context.Context, where string, arg any) (*model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users u WHERE "+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID fetches user id (profiles not loaded).
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return r.getOne(ctx, "u.id = ?", id)
}

// GetByUsername fetches a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, "u.username = ?", strings.TrimSpace(username))
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "u.email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepo) exists(ctx context.Context, q string, args ...any) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&ok)
	return ok, err
}

// ExistsByUsername reports whether username is taken.
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", username)
}

// ExistsByUsernameAndIDNot reports whether a user other than id holds username.
func (r *UserRepo) ExistsByUsernameAndIDNot(ctx context.Context, username string, id uint64) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = ? AND id <> ?)", username, id)
}

// ExistsByEmail reports whether email is taken.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email)
}

// ExistsByEmailAndIDNot reports whether a user other than id holds email.
func (r *UserRepo) ExistsByEmailAndIDNot(ctx context.Context, email string, id uint64) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = ? AND id <> ?)", email, id)
}

// Create inserts u.  Profiles are assigned separately with SetProfiles.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `INSERT INTO users (username, email, first_name, last_name, phone, department, active, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, u.Username, u.Email, u.FirstName, u.LastName,
		nullIfEmpty(u.Phone), nullIfEmpty(u.Department), u.Active, nullIfEmpty(u.Notes))
	if err != nil {
		return mapWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// Update overwrites the editable columns of u.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	const q = `UPDATE users
		SET username = ?, email = ?, first_name = ?, last_name = ?, phone = ?, department = ?, active = ?, notes = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, u.Username, u.Email, u.FirstName, u.LastName,
		nullIfEmpty(u.Phone), nullIfEmpty(u.Department), u.Active, nullIfEmpty(u.Notes), u.ID)
	if err != nil {
		return mapWriteErr(err)
	}
	return affectedOrNotFound(res)
}

// TouchLastLogin stamps the last access time of username.
func (r *UserRepo) TouchLastLogin(ctx context.Context, username string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE users SET last_login = UTC_TIMESTAMP() WHERE username = ?", username)
	return err
}

// SetProfiles replaces the profiles of user id in one transaction.
func (r *UserRepo) SetProfiles(ctx context.Context, id uint64, profileIDs []uint64) (err error) {
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
	if err = tx.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM user_profiles WHERE user_id = ?", id); err != nil {
		return err
	}
	for _, pid := range profileIDs {
		if _, err = tx.ExecContext(ctx,
			"INSERT IGNORE INTO user_profiles (user_id, profile_id) VALUES (?, ?)", id, pid); err != nil {
			return err
		}
	}
	return nil
}

// PermissionNamesOf returns the names of the active permissions granted to
// username through its active profiles.  An unknown or inactive user has
// none.
func (r *UserRepo) PermissionNamesOf(ctx context.Context, username string) ([]string, error) {
	const q = `SELECT DISTINCT p.name
		FROM users u
		JOIN user_profiles up       ON up.user_id = u.id
		JOIN profiles pr            ON pr.id = up.profile_id AND pr.active = 1
		JOIN profile_permissions pp ON pp.profile_id = pr.id
		JOIN permissions p          ON p.id = pp.permission_id AND p.active = 1
		WHERE u.username = ? AND u.active = 1
		ORDER BY p.name`
	rows, err := r.db.QueryContext(ctx, q, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Delete removes user id; profile assignments cascade.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// Count returns the number of users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, "users", "", nil)
}

// CountActive returns the number of active users.
func (r *UserRepo) CountActive(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, "users", " WHERE active = 1", nil)
}
