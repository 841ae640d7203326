package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/backoffice/internal/model"
	"github.com/iliyamo/backoffice/internal/queue"
	"github.com/iliyamo/backoffice/internal/repository"
	"github.com/iliyamo/backoffice/internal/utils"
)

// FileUploadInput is a new upload with its descriptive fields.
type FileUploadInput struct {
	FileName    string
	FileType    string
	Description string
	Category    string
	Metadata    model.Metadata
	Data        []byte
}

// FileUploadPatch is the editable part of an upload.
type FileUploadPatch struct {
	Description   string         `json:"description"`
	Category      string         `json:"category"`
	Metadata      model.Metadata `json:"metadata"`
	Transcription string         `json:"transcription"`
	Translation   string         `json:"translation"`
	Active        *bool          `json:"active"`
}

// FileUploadService wraps FileUploadRepo.
type FileUploadService struct {
	repo   *repository.FileUploadRepo
	events EventSink
	log    *zap.Logger
}

func NewFileUploadService(repo *repository.FileUploadRepo, events EventSink, log *zap.Logger) *FileUploadService {
	return &FileUploadService{repo: repo, events: events, log: log}
}

// List returns uploads, newest first.  A non-blank uploader restricts to
// that user; otherwise a non-blank name searches file names.
func (s *FileUploadService) List(ctx context.Context, uploadedBy, name string) ([]model.FileUpload, error) {
	switch {
	case !blank(uploadedBy):
		return s.repo.ListByUploader(ctx, strings.TrimSpace(uploadedBy))
	case !blank(name):
		return s.repo.SearchByFileName(ctx, strings.TrimSpace(name))
	default:
		return s.repo.ListAll(ctx)
	}
}

func (s *FileUploadService) Get(ctx context.Context, id uint64) (*model.FileUpload, error) {
	return s.repo.GetByID(ctx, id)
}

// Upload stores a new file in PENDING state under a UUID-based unique
// name that keeps the original extension.  The ETag is the SHA-256 of the
// bytes.
func (s *FileUploadService) Upload(ctx context.Context, in FileUploadInput) (*model.FileUpload, error) {
	var v ValidationError
	if blank(in.FileName) {
		v.add("file_name", "Il nome del file è obbligatorio")
	}
	if len(in.Data) == 0 {
		v.add("file", "Il file è vuoto")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.FileName)
	fileType := strings.TrimSpace(in.FileType)
	if fileType == "" || fileType == "application/octet-stream" {
		fileType = mimetype.Detect(in.Data).String()
	}
	f := &model.FileUpload{
		FileName:       name,
		UniqueFileName: uuid.NewString() + strings.ToLower(filepath.Ext(name)),
		FileType:       fileType,
		FileSize:       int64(len(in.Data)),
		FileData:       in.Data,
		Description:    strings.TrimSpace(in.Description),
		Category:       strings.TrimSpace(in.Category),
		Status:         model.FileStatusPending,
		UploadedBy:     ActorFrom(ctx),
		ETag:           utils.SHA256Hex(in.Data),
		Metadata:       in.Metadata,
		Active:         true,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create file upload: %w", err)
	}
	s.log.Info("file uploaded", zap.Uint64("id", f.ID), zap.String("file", f.FileName),
		zap.String("unique_name", f.UniqueFileName), zap.Int64("bytes", f.FileSize))
	s.events.Publish(ctx, changed("file", queue.ActionCreated, f.ID, f.FileName))
	return f, nil
}

// Update applies patch to upload id.  A nil Active keeps the current flag.
func (s *FileUploadService) Update(ctx context.Context, id uint64, patch FileUploadPatch) (*model.FileUpload, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.Description = strings.TrimSpace(patch.Description)
	f.Category = strings.TrimSpace(patch.Category)
	f.Metadata = patch.Metadata
	f.Transcription = patch.Transcription
	f.Translation = patch.Translation
	if patch.Active != nil {
		f.Active = *patch.Active
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, fmt.Errorf("update file upload %d: %w", id, err)
	}
	s.events.Publish(ctx, changed("file", queue.ActionUpdated, f.ID, f.FileName))
	return f, nil
}

// SetStatus moves upload id to status, which must be a known FileStatus.
func (s *FileUploadService) SetStatus(ctx context.Context, id uint64, status string) (*model.FileUpload, error) {
	st := model.FileStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !st.Valid() {
		var v ValidationError
		v.add("status", "Stato non valido: usa PENDING, APPROVED, REJECTED o ARCHIVED")
		return nil, &v
	}
	if err := s.repo.UpdateStatus(ctx, id, st); err != nil {
		return nil, fmt.Errorf("set status of file upload %d: %w", id, err)
	}
	ev := changed("file", queue.ActionStatusChanged, id, "")
	ev.Detail = "status=" + string(st)
	s.events.Publish(ctx, ev)
	return s.repo.GetByID(ctx, id)
}

// Delete removes upload id.
func (s *FileUploadService) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete file upload %d: %w", id, err)
	}
	s.events.Publish(ctx, changed("file", queue.ActionDeleted, id, ""))
	return nil
}

// DeleteMany removes every listed upload and reports how many were found.
// ErrNotFound is returned when none of the ids exist.
func (s *FileUploadService) DeleteMany(ctx context.Context, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		var v ValidationError
		v.add("ids", "Seleziona almeno un file")
		return 0, &v
	}
	deleted, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("delete file uploads: %w", err)
	}
	if len(deleted) == 0 {
		return 0, fmt.Errorf("delete file uploads: %w", ErrNotFound)
	}
	for _, id := range deleted {
		s.events.Publish(ctx, changed("file", queue.ActionDeleted, id, ""))
	}
	return int64(len(deleted)), nil
}

// Download loads upload id with its blob; ErrNoFile when none is stored.
func (s *FileUploadService) Download(ctx context.Context, id uint64) (*model.FileUpload, error) {
	f, err := s.repo.GetWithFile(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(f.FileData) == 0 {
		return nil, ErrNoFile
	}
	return f, nil
}

// Count returns the number of uploads.
func (s *FileUploadService) Count(ctx context.Context) (int64, error) { return s.repo.Count(ctx) }
