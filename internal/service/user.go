package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/iliyamo/backoffice/internal/model"
	"github.com/iliyamo/backoffice/internal/queue"
	"github.com/iliyamo/backoffice/internal/repository"
)

// UserInput is the editable part of a user.  A nil ProfileIDs leaves the
// assignments untouched on update.
type UserInput struct {
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Phone      string   `json:"phone"`
	Department string   `json:"department"`
	Active     *bool    `json:"active"`
	Notes      string   `json:"notes"`
	ProfileIDs []uint64 `json:"profile_ids"`
}

func (in UserInput) validate() error {
	var v ValidationError
	username := strings.TrimSpace(in.Username)
	switch {
	case username == "":
		v.add("username", "Lo username è obbligatorio")
	case len(username) < 3 || len(username) > 50:
		v.add("username", "Lo username deve avere tra 3 e 50 caratteri")
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		v.add("email", "L'email è obbligatoria")
	} else if a, err := mail.ParseAddress(email); err != nil || a.Address != email {
		v.add("email", "Email non valida")
	}
	if blank(in.FirstName) {
		v.add("first_name", "Il nome è obbligatorio")
	}
	if blank(in.LastName) {
		v.add("last_name", "Il cognome è obbligatorio")
	}
	if len(strings.TrimSpace(in.Phone)) > 20 {
		v.add("phone", "Il telefono non può superare 20 caratteri")
	}
	if len([]rune(in.Notes)) > 500 {
		v.add("notes", "Le note non possono superare 500 caratteri")
	}
	return v.err()
}

// UserService wraps UserRepo and ProfileRepo for assignments.
type UserService struct {
	repo     *repository.UserRepo
	profiles *repository.ProfileRepo
	resolver *PermissionResolver
	events   EventSink
}

func NewUserService(repo *repository.UserRepo, profiles *repository.ProfileRepo, resolver *PermissionResolver, events EventSink) *UserService {
	return &UserService{repo: repo, profiles: profiles, resolver: resolver, events: events}
}

func (s *UserService) ListAll(ctx context.Context) ([]model.User, error) { return s.repo.ListAll(ctx) }

func (s *UserService) ListActive(ctx context.Context) ([]model.User, error) {
	return s.repo.ListActive(ctx)
}

func (s *UserService) ListByProfile(ctx context.Context, profileID uint64) ([]model.User, error) {
	return s.repo.ListByProfile(ctx, profileID)
}

// Search matches username, email, names or department; blank lists all.
func (s *UserService) Search(ctx context.Context, term string) ([]model.User, error) {
	if blank(term) {
		return s.repo.ListAll(ctx)
	}
	return s.repo.Search(ctx, strings.TrimSpace(term))
}

// Get returns user id with its profiles.
func (s *UserService) Get(ctx context.Context, id uint64) (*model.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Profiles, err = s.profiles.ListByUser(ctx, id); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *UserService) Count(ctx context.Context) (int64, error) { return s.repo.Count(ctx) }

func (s *UserService) CountActive(ctx context.Context) (int64, error) { return s.repo.CountActive(ctx) }

func (s *UserService) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.repo.ExistsByUsername(ctx, strings.TrimSpace(username))
}

func (s *UserService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.repo.ExistsByEmail(ctx, normalizeEmail(email))
}

func (s *UserService) ExistsByUsernameAndIDNot(ctx context.Context, username string, id uint64) (bool, error) {
	return s.repo.ExistsByUsernameAndIDNot(ctx, strings.TrimSpace(username), id)
}

func (s *UserService) ExistsByEmailAndIDNot(ctx context.Context, email string, id uint64) (bool, error) {
	return s.repo.ExistsByEmailAndIDNot(ctx, normalizeEmail(email), id)
}

// Create validates in, rejects a taken username or email, inserts the user
// and assigns its profiles.
func (s *UserService) Create(ctx context.Context, in UserInput) (*model.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	u := in.toModel()
	if err := s.checkUnique(ctx, u, false); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if len(in.ProfileIDs) > 0 {
		if err := s.repo.SetProfiles(ctx, u.ID, in.ProfileIDs); err != nil {
			return nil, fmt.Errorf("assign profiles to user %d: %w", u.ID, err)
		}
	}
	// the resolver may hold an empty set for this username from before it existed
	s.resolver.Purge()
	s.events.Publish(ctx, changed("user", queue.ActionCreated, u.ID, u.Username))
	return s.Get(ctx, u.ID)
}

// Update validates in, rejects a username or email held by another user
// and overwrites user id.  Profiles are replaced when ProfileIDs is set.
func (s *UserService) Update(ctx context.Context, id uint64, in UserInput) (*model.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	u := in.toModel()
	u.ID = id
	if err := s.checkUnique(ctx, u, true); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	if in.ProfileIDs != nil {
		if err := s.repo.SetProfiles(ctx, id, in.ProfileIDs); err != nil {
			return nil, fmt.Errorf("assign profiles to user %d: %w", id, err)
		}
	}
	s.resolver.Purge()
	s.events.Publish(ctx, changed("user", queue.ActionUpdated, id, u.Username))
	return s.Get(ctx, id)
}

// SetProfiles replaces the profiles of user id.
func (s *UserService) SetProfiles(ctx context.Context, id uint64, profileIDs []uint64) (*model.User, error) {
	if err := s.repo.SetProfiles(ctx, id, profileIDs); err != nil {
		return nil, fmt.Errorf("assign profiles to user %d: %w", id, err)
	}
	s.resolver.Purge()
	ev := changed("user", queue.ActionUpdated, id, "")
	ev.Detail = fmt.Sprintf("profiles=%d", len(profileIDs))
	s.events.Publish(ctx, ev)
	return s.Get(ctx, id)
}

// Permissions returns the effective permission names of user id.
func (s *UserService) Permissions(ctx context.Context, id uint64) ([]string, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.PermissionNamesOf(ctx, u.Username)
}

// Delete removes user id and its profile assignments.
func (s *UserService) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	s.resolver.Purge()
	s.events.Publish(ctx, changed("user", queue.ActionDeleted, id, ""))
	return nil
}

func (s *UserService) checkUnique(ctx context.Context, u *model.User, update bool) error {
	var taken bool
	var err error
	if update {
		taken, err = s.repo.ExistsByUsernameAndIDNot(ctx, u.Username, u.ID)
	} else {
		taken, err = s.repo.ExistsByUsername(ctx, u.Username)
	}
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: username %q", ErrDuplicate, u.Username)
	}
	if update {
		taken, err = s.repo.ExistsByEmailAndIDNot(ctx, u.Email, u.ID)
	} else {
		taken, err = s.repo.ExistsByEmail(ctx, u.Email)
	}
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: email %q", ErrDuplicate, u.Email)
	}
	return nil
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (in UserInput) toModel() *model.User {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return &model.User{
		Username:   strings.TrimSpace(in.Username),
		Email:      normalizeEmail(in.Email),
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Phone:      strings.TrimSpace(in.Phone),
		Department: strings.TrimSpace(in.Department),
		Active:     active,
		Notes:      strings.TrimSpace(in.Notes),
	}
}
