package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/iliyamo/backoffice/internal/model"
	"github.com/iliyamo/backoffice/internal/paging"
	"github.com/iliyamo/backoffice/internal/queue"
	"github.com/iliyamo/backoffice/internal/repository"
	"github.com/iliyamo/backoffice/internal/utils"
)

// Content file types offered by the listing filter.
var ContentFileTypes = []string{"PDF", "IMAGE", "DOCUMENT", "VIDEO", "AUDIO", "ARCHIVE", "OTHER"}

const maxContentDescription = 2000

// ContentFilter narrows a content listing.  Blank fields, "Tutti" and
// "Tutte" mean "no filter".
type ContentFilter struct {
	Search   string
	FileType string
	Category string
}

// ContentUpload is a new document with its descriptive metadata.
type ContentUpload struct {
	FileName       string
	FileType       string
	OriginalPath   string
	Description    string
	Category       string
	Tags           string
	CustomMetadata model.Metadata
	Data           []byte
}

// ContentMetadata is the editable part of a stored content.
type ContentMetadata struct {
	Description    string         `json:"description"`
	Category       string         `json:"category"`
	Tags           string         `json:"tags"`
	CustomMetadata model.Metadata `json:"custom_metadata"`
}

func (m ContentMetadata) validate() error {
	var v ValidationError
	if len([]rune(m.Description)) > maxContentDescription {
		v.add("description", fmt.Sprintf("La descrizione non può superare %d caratteri", maxContentDescription))
	}
	for k := range m.CustomMetadata {
		if blank(k) {
			v.add("custom_metadata", "Le chiavi dei metadati non possono essere vuote")
		}
	}
	return v.err()
}

// ContentService wraps ContentRepo.
type ContentService struct {
	repo   *repository.ContentRepo
	events EventSink
	log    *zap.Logger
}

func NewContentService(repo *repository.ContentRepo, events EventSink, log *zap.Logger) *ContentService {
	return &ContentService{repo: repo, events: events, log: log}
}

func isAll(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "Tutti") || strings.EqualFold(s, "Tutte")
}

// List branches on the filter the same way the product listing does, with
// file type taking precedence over category when both are set alone.
func (s *ContentService) List(ctx context.Context, f ContentFilter, pr paging.PageRequest) (paging.Page[model.Content], error) {
	search := strings.TrimSpace(f.Search)
	fileType, category := strings.TrimSpace(f.FileType), strings.TrimSpace(f.Category)
	if isAll(fileType) {
		fileType = ""
	}
	if isAll(category) {
		category = ""
	}
	switch {
	case fileType != "" && category != "":
		return s.repo.FindFiltered(ctx, fileType, category, search, pr)
	case fileType != "" && search != "":
		return s.repo.FindByFileTypeAndName(ctx, fileType, search, pr)
	case category != "" && search != "":
		return s.repo.FindByCategoryAndName(ctx, category, search, pr)
	case fileType != "":
		return s.repo.FindByFileType(ctx, fileType, pr)
	case category != "":
		return s.repo.FindByCategory(ctx, category, pr)
	case search != "":
		return s.repo.Search(ctx, search, pr)
	default:
		return s.repo.FindAll(ctx, pr)
	}
}

// Query adapts List to a grid whose free-text filter is the search term.
func (s *ContentService) Query(fileType, category string) paging.QueryFunc[model.Content] {
	return func(ctx context.Context, pr paging.PageRequest, search string) (paging.Page[model.Content], error) {
		return s.List(ctx, ContentFilter{Search: search, FileType: fileType, Category: category}, pr)
	}
}

func (s *ContentService) Get(ctx context.Context, id uint64) (*model.Content, error) {
	return s.repo.GetByID(ctx, id)
}

// Upload stores a new document.  Size, SHA-256 hash and MIME type are
// derived from the bytes; the file type is classified from the MIME type
// unless one is given.
func (s *ContentService) Upload(ctx context.Context, up ContentUpload) (*model.Content, error) {
	var v ValidationError
	if blank(up.FileName) {
		v.add("file_name", "Il nome del file è obbligatorio")
	}
	if len(up.Data) == 0 {
		v.add("file", "Il file è vuoto")
	}
	meta := ContentMetadata{Description: up.Description, Category: up.Category, Tags: up.Tags, CustomMetadata: up.CustomMetadata}
	if err := meta.validate(); err != nil {
		for k, m := range err.(*ValidationError).Fields {
			v.add(k, m)
		}
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	mt := mimetype.Detect(up.Data)
	fileType := strings.ToUpper(strings.TrimSpace(up.FileType))
	if fileType == "" {
		fileType = ClassifyMIME(mt.String())
	}
	c := &model.Content{
		FileName:       strings.TrimSpace(up.FileName),
		FileSize:       int64(len(up.Data)),
		FileType:       fileType,
		FileHash:       utils.SHA256Hex(up.Data),
		OriginalPath:   strings.TrimSpace(up.OriginalPath),
		MimeType:       mt.String(),
		UploadUser:     ActorFrom(ctx),
		CustomMetadata: up.CustomMetadata,
		Description:    strings.TrimSpace(up.Description),
		Category:       strings.TrimSpace(up.Category),
		Tags:           strings.TrimSpace(up.Tags),
		FileData:       up.Data,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	s.log.Info("content stored", zap.Uint64("id", c.ID), zap.String("file", c.FileName),
		zap.String("mime", c.MimeType), zap.Int64("bytes", c.FileSize))
	s.events.Publish(ctx, changed("content", queue.ActionCreated, c.ID, c.FileName))
	return c, nil
}

// UpdateMetadata overwrites the descriptive fields of content id.
func (s *ContentService) UpdateMetadata(ctx context.Context, id uint64, m ContentMetadata) (*model.Content, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	c := &model.Content{
		ID:             id,
		Description:    strings.TrimSpace(m.Description),
		Category:       strings.TrimSpace(m.Category),
		Tags:           strings.TrimSpace(m.Tags),
		CustomMetadata: m.CustomMetadata,
	}
	if err := s.repo.UpdateMetadata(ctx, c); err != nil {
		return nil, fmt.Errorf("update content %d: %w", id, err)
	}
	s.events.Publish(ctx, changed("content", queue.ActionUpdated, c.ID, c.FileName))
	return c, nil
}

// Delete removes content id.
func (s *ContentService) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete content %d: %w", id, err)
	}
	s.events.Publish(ctx, changed("content", queue.ActionDeleted, id, ""))
	return nil
}

// Download loads content id with its blob; ErrNoFile when none is stored.
func (s *ContentService) Download(ctx context.Context, id uint64) (*model.Content, error) {
	c, err := s.repo.GetWithFile(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(c.FileData) == 0 {
		return nil, ErrNoFile
	}
	return c, nil
}

// Count returns the number of contents.
func (s *ContentService) Count(ctx context.Context) (int64, error) { return s.repo.Count(ctx) }

// ClassifyMIME maps a MIME type to one of ContentFileTypes.
func ClassifyMIME(mime string) string {
	mime = strings.ToLower(mime)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	switch {
	case mime == "application/pdf":
		return "PDF"
	case strings.HasPrefix(mime, "image/"):
		return "IMAGE"
	case strings.HasPrefix(mime, "video/"):
		return "VIDEO"
	case strings.HasPrefix(mime, "audio/"):
		return "AUDIO"
	case strings.Contains(mime, "zip"), strings.Contains(mime, "tar"), strings.Contains(mime, "rar"),
		strings.Contains(mime, "7z"), strings.Contains(mime, "gzip"):
		return "ARCHIVE"
	case strings.HasPrefix(mime, "text/"), strings.Contains(mime, "officedocument"),
		strings.Contains(mime, "msword"), strings.Contains(mime, "opendocument"), strings.Contains(mime, "rtf"):
		return "DOCUMENT"
	}
	return "OTHER"
}
