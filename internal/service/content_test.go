package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/backoffice/internal/paging"
	"github.com/iliyamo/backoffice/internal/repository"
)

var contentCols = []string{"id", "file_name", "file_size", "file_type", "file_hash", "original_path",
	"mime_type", "upload_user", "custom_metadata", "description", "category", "tags", "created_at", "updated_at"}

func TestContentUploadDerivesFileFacts(t *testing.T) {
	db, mock := newMock(t)
	svc := NewContentService(repository.NewContentRepo(db), NopEvents{}, zap.NewNop())

	data := []byte("%PDF-1.4\n%test document\n")
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	mock.ExpectExec("INSERT INTO contents").
		WithArgs("manuale.pdf", int64(len(data)), "PDF", hash, nil, "application/pdf", "admin",
			nil, "Manuale utente", "Documenti", nil, data).
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectQuery("FROM contents WHERE id = ").WithArgs(uint64(21)).
		WillReturnRows(sqlmock.NewRows(contentCols).AddRow(21, "manuale.pdf", len(data), "PDF", hash, "",
			"application/pdf", "admin", "", "Manuale utente", "Documenti", "", nowUTC(), nowUTC()))

	ctx := WithActor(context.Background(), "admin")
	c, err := svc.Upload(ctx, ContentUpload{FileName: " manuale.pdf ", Description: "Manuale utente", Category: "Documenti", Data: data})
	require.NoError(t, err)
	assert.EqualValues(t, 21, c.ID)
	assert.Equal(t, hash, c.FileHash)
	assert.Equal(t, "PDF", c.FileType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentUpdateMetadataRejectsLongDescription(t *testing.T) {
	db, mock := newMock(t)
	svc := NewContentService(repository.NewContentRepo(db), NopEvents{}, zap.NewNop())

	_, err := svc.UpdateMetadata(context.Background(), 1, ContentMetadata{Description: strings.Repeat("x", 2001)})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentListTreatsTuttiAsNoFilter(t *testing.T) {
	db, mock := newMock(t)
	svc := NewContentService(repository.NewContentRepo(db), NopEvents{}, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM contents WHERE file_type = ? AND (LOWER(file_name) LIKE ? ESCAPE '!')")).
		WithArgs("PDF", "%manuale%").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery("LIMIT").WillReturnRows(sqlmock.NewRows(contentCols))

	_, err := svc.List(context.Background(), ContentFilter{Search: "manuale", FileType: "PDF", Category: "Tutti"}, paging.NewPageRequest(0, 5, nil))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileUploadSetStatusValidates(t *testing.T) {
	db, mock := newMock(t)
	svc := NewFileUploadService(repository.NewFileUploadRepo(db), NopEvents{}, zap.NewNop())

	_, err := svc.SetStatus(context.Background(), 1, "LOST")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	mock.ExpectExec("UPDATE file_uploads SET status").WithArgs("ARCHIVED", uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	_, err = svc.SetStatus(context.Background(), 2, "archived")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFileUploadUploadAssignsUniqueName(t *testing.T) {
	db, mock := newMock(t)
	svc := NewFileUploadService(repository.NewFileUploadRepo(db), NopEvents{}, zap.NewNop())

	data := []byte("hello world")
	mock.ExpectExec("INSERT INTO file_uploads").
		WithArgs("Note.TXT", sqlmock.AnyArg(), "text/plain; charset=utf-8", int64(len(data)), data,
			nil, nil, "PENDING", nil, sqlmock.AnyArg(), nil, true).
		WillReturnResult(sqlmock.NewResult(5, 1))
	cols := []string{"id", "file_name", "unique_file_name", "file_type", "file_size", "description", "category",
		"status", "uploaded_by", "etag", "metadata", "transcription", "translation", "active", "upload_date", "updated_at"}
	mock.ExpectQuery("FROM file_uploads WHERE id = ").WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(5, "Note.TXT", "0b0c.txt", "text/plain; charset=utf-8", len(data),
			"", "", "PENDING", "", "etag", "", "", "", true, nowUTC(), nowUTC()))

	f, err := svc.Upload(context.Background(), FileUploadInput{FileName: "Note.TXT", Data: data})
	require.NoError(t, err)
	assert.EqualValues(t, 5, f.ID)
	assert.Equal(t, "PENDING", string(f.Status))
	assert.NoError(t, mock.ExpectationsWereMet())
}
