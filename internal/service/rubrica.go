package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iliyamo/backoffice/internal/model"
	"github.com/iliyamo/backoffice/internal/queue"
	"github.com/iliyamo/backoffice/internal/repository"
)

// RubricaInput is the body of a create or update.  The id of an update
// comes from the path.
type RubricaInput struct {
	Nome string `json:"nome"`
}

func (in RubricaInput) validate() error {
	var v ValidationError
	if utf8.RuneCountInString(strings.TrimSpace(in.Nome)) > 255 {
		v.add("nome", "Il nome non può superare 255 caratteri")
	}
	return v.err()
}

// RubricaService wraps RubricaRepo.
type RubricaService struct {
	repo   *repository.RubricaRepo
	events EventSink
}

func NewRubricaService(repo *repository.RubricaRepo, events EventSink) *RubricaService {
	return &RubricaService{repo: repo, events: events}
}

func (s *RubricaService) ListAll(ctx context.Context) ([]model.Rubrica, error) {
	return s.repo.ListAll(ctx)
}

func (s *RubricaService) Get(ctx context.Context, id uint64) (*model.Rubrica, error) {
	return s.repo.GetByID(ctx, id)
}

// Create inserts a new entry and returns its id.
func (s *RubricaService) Create(ctx context.Context, in RubricaInput) (uint64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}
	rb := &model.Rubrica{Nome: strings.TrimSpace(in.Nome)}
	if err := s.repo.Create(ctx, rb); err != nil {
		return 0, fmt.Errorf("create rubrica: %w", err)
	}
	s.events.Publish(ctx, changed("rubrica", queue.ActionCreated, rb.ID, rb.Nome))
	return rb.ID, nil
}

// Update renames entry id and returns the id.
func (s *RubricaService) Update(ctx context.Context, id uint64, in RubricaInput) (uint64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}
	rb := &model.Rubrica{ID: id, Nome: strings.TrimSpace(in.Nome)}
	if err := s.repo.Update(ctx, rb); err != nil {
		return 0, fmt.Errorf("update rubrica %d: %w", id, err)
	}
	s.events.Publish(ctx, changed("rubrica", queue.ActionUpdated, id, rb.Nome))
	return id, nil
}

func (s *RubricaService) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete rubrica %d: %w", id, err)
	}
	s.events.Publish(ctx, changed("rubrica", queue.ActionDeleted, id, ""))
	return nil
}
