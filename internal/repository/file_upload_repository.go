package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/backoffice/internal/model"
)

// FileUploadRepo encapsulates the queries over the file_uploads table.
type FileUploadRepo struct {
	db *sql.DB
}

func NewFileUploadRepo(db *sql.DB) *FileUploadRepo { return &FileUploadRepo{db: db} }

const fileUploadColumns = `id, file_name, unique_file_name, COALESCE(file_type, ''), file_size,
	COALESCE(description, ''), COALESCE(category, ''), status, COALESCE(uploaded_by, ''),
	COALESCE(etag, ''), COALESCE(metadata, ''), COALESCE(transcription, ''),
	COALESCE(translation, ''), active, upload_date, updated_at`

func scanFileUpload(s rowScanner, extra ...any) (model.FileUpload, error) {
	var f model.FileUpload
	var status, meta string
	dest := []any{&f.ID, &f.FileName, &f.UniqueFileName, &f.FileType, &f.FileSize, &f.Description,
		&f.Category, &status, &f.UploadedBy, &f.ETag, &meta, &f.Transcription, &f.Translation,
		&f.Active, &f.UploadDate, &f.UpdatedAt}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return f, err
	}
	f.Status = model.FileStatus(status)
	f.Metadata = model.ParseMetadata(meta)
	return f, nil
}

func (r *FileUploadRepo) list(ctx context.Context, where string, args ...any) ([]model.FileUpload, error) {
	q := "SELECT " + fileUploadColumns + " FROM file_uploads" + where + " ORDER BY upload_date DESC, id DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.FileUpload{}
	for rows.Next() {
		f, err := scanFileUpload(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ListAll returns every upload, newest first.
func (r *FileUploadRepo) ListAll(ctx context.Context) ([]model.FileUpload, error) {
	return r.list(ctx, "")
}

// ListByUploader returns the uploads of one user, newest first.
func (r *FileUploadRepo) ListByUploader(ctx context.Context, uploadedBy string) ([]model.FileUpload, error) {
	return r.list(ctx, " WHERE uploaded_by = ?", uploadedBy)
}

// SearchByFileName returns uploads whose original name contains name.
func (r *FileUploadRepo) SearchByFileName(ctx context.Context, name string) ([]model.FileUpload, error) {
	cond, args := likeAny(name, "file_name")
	return r.list(ctx, " WHERE "+cond, args...)
}

// GetByID fetches an upload without its blob.
func (r *FileUploadRepo) GetByID(ctx context.Context, id uint64) (*model.FileUpload, error) {
	f, err := scanFileUpload(r.db.QueryRowContext(ctx, "SELECT "+fileUploadColumns+" FROM file_uploads WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// GetWithFile fetches an upload including its blob.
func (r *FileUploadRepo) GetWithFile(ctx context.Context, id uint64) (*model.FileUpload, error) {
	var data []byte
	f, err := scanFileUpload(r.db.QueryRowContext(ctx, "SELECT "+fileUploadColumns+", file_data FROM file_uploads WHERE id = ?", id), &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	f.FileData = data
	return &f, nil
}

// Create inserts f with its blob.
func (r *FileUploadRepo) Create(ctx context.Context, f *model.FileUpload) error {
	const q = `INSERT INTO file_uploads (file_name, unique_file_name, file_type, file_size, file_data,
		description, category, status, uploaded_by, etag, metadata, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, f.FileName, f.UniqueFileName, nullIfEmpty(f.FileType), f.FileSize,
		f.FileData, nullIfEmpty(f.Description), nullIfEmpty(f.Category), string(f.Status),
		nullIfEmpty(f.UploadedBy), nullIfEmpty(f.ETag), nullIfEmpty(f.Metadata.Encode()), f.Active)
	if err != nil {
		return mapWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	return r.reload(ctx, uint64(id), f)
}

// Update overwrites the editable fields of f.
func (r *FileUploadRepo) Update(ctx context.Context, f *model.FileUpload) error {
	const q = `UPDATE file_uploads
		SET description = ?, category = ?, metadata = ?, transcription = ?, translation = ?, active = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, nullIfEmpty(f.Description), nullIfEmpty(f.Category),
		nullIfEmpty(f.Metadata.Encode()), nullIfEmpty(f.Transcription), nullIfEmpty(f.Translation), f.Active, f.ID)
	if err != nil {
		return err
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	return r.reload(ctx, f.ID, f)
}

// UpdateStatus moves upload id to status.
func (r *FileUploadRepo) UpdateStatus(ctx context.Context, id uint64, status model.FileStatus) error {
	res, err := r.db.ExecContext(ctx, "UPDATE file_uploads SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// Delete removes upload id.
func (r *FileUploadRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM file_uploads WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// DeleteMany removes the listed uploads that exist and returns their ids.
// The rows are locked before the delete so the ids match what went.
func (r *FileUploadRepo) DeleteMany(ctx context.Context, ids []uint64) (deleted []uint64, err error) {
	if len(ids) == 0 {
		return nil, nil
	}
	marks := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	rows, err := tx.QueryContext(ctx, "SELECT id FROM file_uploads WHERE id IN ("+marks+") ORDER BY id FOR UPDATE", args...)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id uint64
		if err = rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		deleted = append(deleted, id)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(deleted) == 0 {
		return nil, nil
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM file_uploads WHERE id IN ("+marks+")", args...); err != nil {
		return nil, err
	}
	return deleted, nil
}

// Count returns the number of uploads.
func (r *FileUploadRepo) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, "file_uploads", "", nil)
}

func (r *FileUploadRepo) reload(ctx context.Context, id uint64, f *model.FileUpload) error {
	got, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*f = *got
	return nil
}
