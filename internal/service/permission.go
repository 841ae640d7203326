package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/backoffice/internal/model"
	"github.com/iliyamo/backoffice/internal/queue"
	"github.com/iliyamo/backoffice/internal/repository"
)

// PermissionInput is the editable part of a permission.
type PermissionInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Active      *bool  `json:"active"`
}

func (in PermissionInput) validate() error {
	var v ValidationError
	if blank(in.Name) {
		v.add("name", "Il nome del permesso è obbligatorio")
	} else if len(strings.TrimSpace(in.Name)) > 100 {
		v.add("name", "Il nome non può superare 100 caratteri")
	}
	if len(in.Description) > 500 {
		v.add("description", "La descrizione non può superare 500 caratteri")
	}
	return v.err()
}

// PermissionService wraps PermissionRepo.
type PermissionService struct {
	repo     *repository.PermissionRepo
	resolver *PermissionResolver
	events   EventSink
}

func NewPermissionService(repo *repository.PermissionRepo, resolver *PermissionResolver, events EventSink) *PermissionService {
	return &PermissionService{repo: repo, resolver: resolver, events: events}
}

func (s *PermissionService) ListAll(ctx context.Context) ([]model.Permission, error) {
	return s.repo.ListAll(ctx)
}

func (s *PermissionService) ListByCategory(ctx context.Context, category string) ([]model.Permission, error) {
	return s.repo.ListByCategory(ctx, strings.TrimSpace(category))
}

func (s *PermissionService) ListActive(ctx context.Context) ([]model.Permission, error) {
	return s.repo.ListActive(ctx)
}

func (s *PermissionService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *PermissionService) Get(ctx context.Context, id uint64) (*model.Permission, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PermissionService) GetByName(ctx context.Context, name string) (*model.Permission, error) {
	return s.repo.GetByName(ctx, strings.TrimSpace(name))
}

// Search matches name, description or category; a blank term lists all.
func (s *PermissionService) Search(ctx context.Context, term string) ([]model.Permission, error) {
	if blank(term) {
		return s.repo.ListAll(ctx)
	}
	return s.repo.Search(ctx, strings.TrimSpace(term))
}

func (s *PermissionService) Count(ctx context.Context) (int64, error) { return s.repo.Count(ctx) }

func (s *PermissionService) ExistsByName(ctx context.Context, name string) (bool, error) {
	return s.repo.ExistsByName(ctx, strings.TrimSpace(name))
}

func (s *PermissionService) ExistsByNameAndIDNot(ctx context.Context, name string, id uint64) (bool, error) {
	return s.repo.ExistsByNameAndIDNot(ctx, strings.TrimSpace(name), id)
}

// Create validates in, rejects a taken name and inserts the permission.
// Names are stored upper-case.
func (s *PermissionService) Create(ctx context.Context, in PermissionInput) (*model.Permission, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := in.toModel()
	taken, err := s.repo.ExistsByName(ctx, p.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: permission %q", ErrDuplicate, p.Name)
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create permission: %w", err)
	}
	s.events.Publish(ctx, changed("permission", queue.ActionCreated, p.ID, p.Name))
	return p, nil
}

// Update validates in, rejects a name held by another permission and
// overwrites permission id.
func (s *PermissionService) Update(ctx context.Context, id uint64, in PermissionInput) (*model.Permission, error) {
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
		return nil, fmt.Errorf("%w: permission %q", ErrDuplicate, p.Name)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update permission %d: %w", id, err)
	}
	s.resolver.Purge()
	s.events.Publish(ctx, changed("permission", queue.ActionUpdated, p.ID, p.Name))
	return p, nil
}

// Delete removes permission id and its grants.
func (s *PermissionService) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete permission %d: %w", id, err)
	}
	s.resolver.Purge()
	s.events.Publish(ctx, changed("permission", queue.ActionDeleted, id, ""))
	return nil
}

func (in PermissionInput) toModel() *model.Permission {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return &model.Permission{
		Name:        strings.ToUpper(strings.TrimSpace(in.Name)),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.ToUpper(strings.TrimSpace(in.Category)),
		Active:      active,
	}
}
