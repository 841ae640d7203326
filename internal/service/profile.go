package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/backoffice/internal/model"
	"github.com/iliyamo/backoffice/internal/queue"
	"github.com/iliyamo/backoffice/internal/repository"
)

// ProfileInput is the editable part of a profile.  A nil PermissionIDs
// leaves the grants untouched on update.
type ProfileInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Active        *bool    `json:"active"`
	PermissionIDs []uint64 `json:"permission_ids"`
}

func (in ProfileInput) validate() error {
	var v ValidationError
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		v.add("name", "Il nome del profilo è obbligatorio")
	case len([]rune(name)) > 100:
		v.add("name", "Il nome non può superare 100 caratteri")
	}
	if len([]rune(in.Description)) > 500 {
		v.add("description", "La descrizione non può superare 500 caratteri")
	}
	return v.err()
}

// ProfileService wraps ProfileRepo.
type ProfileService struct {
	repo     *repository.ProfileRepo
	resolver *PermissionResolver
	events   EventSink
}

func NewProfileService(repo *repository.ProfileRepo, resolver *PermissionResolver, events EventSink) *ProfileService {
	return &ProfileService{repo: repo, resolver: resolver, events: events}
}

func (s *ProfileService) ListAll(ctx context.Context) ([]model.Profile, error) {
	return s.repo.ListAll(ctx)
}

func (s *ProfileService) ListActive(ctx context.Context) ([]model.Profile, error) {
	return s.repo.ListActive(ctx)
}

// Get returns profile id with its permissions.
func (s *ProfileService) Get(ctx context.Context, id uint64) (*model.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProfileService) GetByName(ctx context.Context, name string) (*model.Profile, error) {
	return s.repo.GetByName(ctx, strings.TrimSpace(name))
}

// Search matches name or description; a blank term lists all.
func (s *ProfileService) Search(ctx context.Context, term string) ([]model.Profile, error) {
	if blank(term) {
		return s.repo.ListAll(ctx)
	}
	return s.repo.Search(ctx, strings.TrimSpace(term))
}

func (s *ProfileService) Count(ctx context.Context) (int64, error) { return s.repo.Count(ctx) }

func (s *ProfileService) ExistsByName(ctx context.Context, name string) (bool, error) {
	return s.repo.ExistsByName(ctx, strings.TrimSpace(name))
}

func (s *ProfileService) ExistsByNameAndIDNot(ctx context.Context, name string, id uint64) (bool, error) {
	return s.repo.ExistsByNameAndIDNot(ctx, strings.TrimSpace(name), id)
}

// Create validates in, rejects a taken name, inserts the profile and
// writes its grants.
func (s *ProfileService) Create(ctx context.Context, in ProfileInput) (*model.Profile, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := in.toModel()
	taken, err := s.repo.ExistsByName(ctx, p.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: profile %q", ErrDuplicate, p.Name)
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	if len(in.PermissionIDs) > 0 {
		if err := s.repo.SetPermissions(ctx, p.ID, in.PermissionIDs); err != nil {
			return nil, fmt.Errorf("grant permissions to profile %d: %w", p.ID, err)
		}
	}
	s.events.Publish(ctx, changed("profile", queue.ActionCreated, p.ID, p.Name))
	return s.repo.GetByID(ctx, p.ID)
}

// Update validates in, rejects a name held by another profile and
// overwrites profile id.  Grants are replaced when PermissionIDs is set.
func (s *ProfileService) Update(ctx context.Context, id uint64, in ProfileInput) (*model.Profile, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := in.toModel()
	p.ID = id
	taken, err := s.repo.ExistsByNameAndIDNot(ctx, p.Name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: profile %q", ErrDuplicate, p.Name)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile %d: %w", id, err)
	}
	if in.PermissionIDs != nil {
		if err := s.repo.SetPermissions(ctx, id, in.PermissionIDs); err != nil {
			return nil, fmt.Errorf("grant permissions to profile %d: %w", id, err)
		}
	}
	s.resolver.Purge()
	s.events.Publish(ctx, changed("profile", queue.ActionUpdated, p.ID, p.Name))
	return s.repo.GetByID(ctx, id)
}

// SetPermissions replaces the grants of profile id.
func (s *ProfileService) SetPermissions(ctx context.Context, id uint64, permissionIDs []uint64) (*model.Profile, error) {
	if err := s.repo.SetPermissions(ctx, id, permissionIDs); err != nil {
		return nil, fmt.Errorf("grant permissions to profile %d: %w", id, err)
	}
	s.resolver.Purge()
	ev := changed("profile", queue.ActionUpdated, id, "")
	ev.Detail = fmt.Sprintf("permissions=%d", len(permissionIDs))
	s.events.Publish(ctx, ev)
	return s.repo.GetByID(ctx, id)
}

// Delete removes profile id; its grants and user assignments go with it.
func (s *ProfileService) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete profile %d: %w", id, err)
	}
	s.resolver.Purge()
	s.events.Publish(ctx, changed("profile", queue.ActionDeleted, id, ""))
	return nil
}

func (in ProfileInput) toModel() *model.Profile {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return &model.Profile{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Active:      active,
	}
}
