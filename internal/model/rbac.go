package model

import "time"

// Permission is a named capability grouped by category (USERS, PRODUCTS,
// FILES, REPORTS, SYSTEM).
type Permission struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Profile groups permissions and is assigned to users (many-to-many both
// ways).  Permissions is only populated by the detail lookups; the list
// queries fill the counters instead.
type Profile struct {
	ID              uint64       `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description,omitempty"`
	Active          bool         `json:"active"`
	Permissions     []Permission `json:"permissions,omitempty"`
	PermissionCount int          `json:"permission_count"`
	UserCount       int          `json:"user_count"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// User is a back-office account.  It carries no credentials.
type User struct {
	ID         uint64     `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Phone      string     `json:"phone,omitempty"`
	Department string     `json:"department,omitempty"`
	Active     bool       `json:"active"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	Profiles   []Profile  `json:"profiles,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// FullName joins first and last name.
func (u *User) FullName() string { return u.FirstName + " " + u.LastName }

// ProfileNames lists the names of the loaded profiles.
func (u *User) ProfileNames() []string {
	out := make([]string, 0, len(u.Profiles))
	for _, p := range u.Profiles {
		out = append(out, p.Name)
	}
	return out
}
