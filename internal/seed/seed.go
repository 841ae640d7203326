// Package seed fills an empty database with the demo catalogue, documents,
// uploads and the default access-control setup.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/backoffice/internal/model"
	"github.com/iliyamo/backoffice/internal/repository"
	"github.com/iliyamo/backoffice/internal/utils"
)

const (
	AdminProfile    = "Amministratore"
	OperatorProfile = "Operatore"
	AdminUsername   = "admin"
)

type tableStore[T any] interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, v *T) error
}

type fileStore interface {
	tableStore[model.FileUpload]
	Update(ctx context.Context, f *model.FileUpload) error
}

type permissionStore interface {
	tableStore[model.Permission]
	ListAll(ctx context.Context) ([]model.Permission, error)
}

type profileStore interface {
	tableStore[model.Profile]
	SetPermissions(ctx context.Context, id uint64, permissionIDs []uint64) error
}

type userStore interface {
	tableStore[model.User]
	SetProfiles(ctx context.Context, id uint64, profileIDs []uint64) error
}

// Seeder inserts demo rows into tables that are still empty.  Tables that
// already hold data are left untouched, so Run is safe on every start.
type Seeder struct {
	products    tableStore[model.Product]
	contents    tableStore[model.Content]
	files       fileStore
	permissions permissionStore
	profiles    profileStore
	users       userStore
	log         *zap.Logger

	adminProfileID uint64
}

// New wires a Seeder over the MySQL repositories.
func New(db *sql.DB, log *zap.Logger) *Seeder {
	return &Seeder{
		products:    repository.NewProductRepo(db),
		contents:    repository.NewContentRepo(db),
		files:       repository.NewFileUploadRepo(db),
		permissions: repository.NewPermissionRepo(db),
		profiles:    repository.NewProfileRepo(db),
		users:       repository.NewUserRepo(db),
		log:         log,
	}
}

// Run seeds every table in dependency order.
func (s *Seeder) Run(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) (int, error)
	}{
		{"products", s.seedProducts},
		{"contents", s.seedContents},
		{"file_uploads", s.seedFiles},
		{"permissions", s.seedPermissions},
		{"profiles", s.seedProfiles},
		{"users", s.seedUsers},
	}
	for _, st := range steps {
		n, err := st.fn(ctx)
		if err != nil {
			return fmt.Errorf("seed %s: %w", st.name, err)
		}
		if n > 0 {
			s.log.Info("seeded table", zap.String("table", st.name), zap.Int("rows", n))
		}
	}
	return nil
}

func empty[T any](ctx context.Context, st tableStore[T]) (bool, error) {
	n, err := st.Count(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func insertAll[T any](ctx context.Context, st tableStore[T], rows []T) (int, error) {
	ok, err := empty(ctx, st)
	if err != nil || !ok {
		return 0, err
	}
	for i := range rows {
		if err := st.Create(ctx, &rows[i]); err != nil {
			return i, err
		}
	}
	return len(rows), nil
}

func (s *Seeder) seedProducts(ctx context.Context) (int, error) {
	return insertAll(ctx, s.products, products())
}

func (s *Seeder) seedContents(ctx context.Context) (int, error) {
	return insertAll(ctx, s.contents, contents())
}

func (s *Seeder) seedPermissions(ctx context.Context) (int, error) {
	return insertAll[model.Permission](ctx, s.permissions, permissions())
}

// seedFiles stores a tiny placeholder blob per upload; the declared size is
// kept from the demo row so listings look realistic.
func (s *Seeder) seedFiles(ctx context.Context) (int, error) {
	ok, err := empty[model.FileUpload](ctx, s.files)
	if err != nil || !ok {
		return 0, err
	}
	blob := []byte{1, 2, 3}
	for i, r := range demoFiles {
		f := model.FileUpload{
			FileName:       r.name,
			UniqueFileName: uuid.NewString() + strings.ToLower(filepath.Ext(r.name)),
			FileType:       r.fileType,
			FileSize:       r.size,
			FileData:       blob,
			Description:    r.description,
			Category:       r.category,
			Status:         model.FileStatus(r.status),
			UploadedBy:     r.uploadedBy,
			ETag:           utils.SHA256Hex(blob),
			Active:         true,
		}
		if err := s.files.Create(ctx, &f); err != nil {
			return i, err
		}
		if r.transcription == "" && r.translation == "" {
			continue
		}
		f.Transcription, f.Translation = r.transcription, r.translation
		if err := s.files.Update(ctx, &f); err != nil {
			return i, err
		}
	}
	return len(demoFiles), nil
}

// seedProfiles creates an administrator profile holding every permission
// and an operator profile limited to the *_VIEW permissions.
func (s *Seeder) seedProfiles(ctx context.Context) (int, error) {
	ok, err := empty[model.Profile](ctx, s.profiles)
	if err != nil || !ok {
		return 0, err
	}
	perms, err := s.permissions.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	var all, view []uint64
	for _, p := range perms {
		all = append(all, p.ID)
		if strings.HasSuffix(p.Name, "_VIEW") {
			view = append(view, p.ID)
		}
	}
	defs := []struct {
		profile model.Profile
		perms   []uint64
	}{
		{model.Profile{Name: AdminProfile, Description: "Accesso completo a tutte le funzionalità", Active: true}, all},
		{model.Profile{Name: OperatorProfile, Description: "Sola consultazione", Active: true}, view},
	}
	for i := range defs {
		p := &defs[i].profile
		if err := s.profiles.Create(ctx, p); err != nil {
			return i, err
		}
		if err := s.profiles.SetPermissions(ctx, p.ID, defs[i].perms); err != nil {
			return i, err
		}
	}
	s.adminProfileID = defs[0].profile.ID
	return len(defs), nil
}

// seedUsers creates the admin account bound to the administrator profile.
// When profiles were not seeded in this run the account gets none.
func (s *Seeder) seedUsers(ctx context.Context) (int, error) {
	ok, err := empty[model.User](ctx, s.users)
	if err != nil || !ok {
		return 0, err
	}
	u := model.User{
		Username:   AdminUsername,
		Email:      "admin@example.com",
		FirstName:  "Admin",
		LastName:   "Sistema",
		Department: "IT",
		Active:     true,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return 0, err
	}
	if s.adminProfileID != 0 {
		if err := s.users.SetProfiles(ctx, u.ID, []uint64{s.adminProfileID}); err != nil {
			return 0, err
		}
	}
	return 1, nil
}
