package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/backoffice/internal/model"
	"github.com/iliyamo/backoffice/internal/paging"
)

// ContentRepo encapsulates the queries over the contents table.
type ContentRepo struct {
	db *sql.DB
}

func NewContentRepo(db *sql.DB) *ContentRepo { return &ContentRepo{db: db} }

var contentSort = sortColumns{
	"id":            "id",
	"file_name":     "file_name",
	"file_size":     "file_size",
	"file_type":     "file_type",
	"category":      "category",
	"creation_date": "created_at",
	"last_modified": "updated_at",
}

const contentColumns = `id, file_name, file_size, file_type, COALESCE(file_hash, ''),
	COALESCE(original_path, ''), COALESCE(mime_type, ''), COALESCE(upload_user, ''),
	COALESCE(custom_metadata, ''), COALESCE(description, ''), COALESCE(category, ''),
	COALESCE(tags, ''), created_at, updated_at`

func scanContent(s rowScanner, extra ...any) (model.Content, error) {
	var c model.Content
	var meta string
	dest := []any{&c.ID, &c.FileName, &c.FileSize, &c.FileType, &c.FileHash, &c.OriginalPath,
		&c.MimeType, &c.UploadUser, &meta, &c.Description, &c.Category, &c.Tags, &c.CreatedAt, &c.UpdatedAt}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return c, err
	}
	c.CustomMetadata = model.ParseMetadata(meta)
	return c, nil
}

func (r *ContentRepo) findPage(ctx context.Context, conds []string, args []any, pr paging.PageRequest) (paging.Page[model.Content], error) {
	out := paging.Page[model.Content]{Page: pr.Page, Size: pr.Size}
	order, err := orderBy(pr, contentSort)
	if err != nil {
		return out, err
	}
	where := whereClause(conds)
	if out.Total, err = countRows(ctx, r.db, "contents", where, args); err != nil {
		return out, err
	}
	q := "SELECT " + contentColumns + " FROM contents" + where + order + " LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, q, append(append([]any{}, args...), pr.Size, pr.Offset())...)
	if err != nil {
		return out, err
	}
	defer rows.Close()
	out.Items = make([]model.Content, 0, pr.Size)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return out, err
		}
		out.Items = append(out.Items, c)
	}
	return out, rows.Err()
}

// FindAll pages over every content.
func (r *ContentRepo) FindAll(ctx context.Context, pr paging.PageRequest) (paging.Page[model.Content], error) {
	return r.findPage(ctx, nil, nil, pr)
}

// Search matches term against file name, description, file type or category.
func (r *ContentRepo) Search(ctx context.Context, term string, pr paging.PageRequest) (paging.Page[model.Content], error) {
	cond, args := likeAny(term, "file_name", "description", "file_type", "category")
	return r.findPage(ctx, []string{cond}, args, pr)
}

// FindByFileType pages over contents of one file type.
func (r *ContentRepo) FindByFileType(ctx context.Context, fileType string, pr paging.PageRequest) (paging.Page[model.Content], error) {
	return r.findPage(ctx, []string{"file_type = ?"}, []any{fileType}, pr)
}

// FindByCategory pages over contents of one category.
func (r *ContentRepo) FindByCategory(ctx context.Context, category string, pr paging.PageRequest) (paging.Page[model.Content], error) {
	return r.findPage(ctx, []string{"category = ?"}, []any{category}, pr)
}

// FindByFileTypeAndName narrows a file type to names containing name.
func (r *ContentRepo) FindByFileTypeAndName(ctx context.Context, fileType, name string, pr paging.PageRequest) (paging.Page[model.Content], error) {
	like, args := likeAny(name, "file_name")
	return r.findPage(ctx, []string{"file_type = ?", like}, append([]any{fileType}, args...), pr)
}

// FindByCategoryAndName narrows a category to names containing name.
func (r *ContentRepo) FindByCategoryAndName(ctx context.Context, category, name string, pr paging.PageRequest) (paging.Page[model.Content], error) {
	like, args := likeAny(name, "file_name")
	return r.findPage(ctx, []string{"category = ?", like}, append([]any{category}, args...), pr)
}

// FindFiltered pages over contents matching every non-empty criterion:
// exact file type, exact category and a substring search on file name,
// description, file type or category.
func (r *ContentRepo) FindFiltered(ctx context.Context, fileType, category, term string, pr paging.PageRequest) (paging.Page[model.Content], error) {
	var conds []string
	var args []any
	if fileType != "" {
		conds = append(conds, "file_type = ?")
		args = append(args, fileType)
	}
	if category != "" {
		conds = append(conds, "category = ?")
		args = append(args, category)
	}
	if term != "" {
		like, la := likeAny(term, "file_name", "description", "file_type", "category")
		conds = append(conds, like)
		args = append(args, la...)
	}
	return r.findPage(ctx, conds, args, pr)
}

// GetByID fetches a content without its blob.
func (r *ContentRepo) GetByID(ctx context.Context, id uint64) (*model.Content, error) {
	c, err := scanContent(r.db.QueryRowContext(ctx, "SELECT "+contentColumns+" FROM contents WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetWithFile fetches a content including its blob.
func (r *ContentRepo) GetWithFile(ctx context.Context, id uint64) (*model.Content, error) {
	var data []byte
	c, err := scanContent(r.db.QueryRowContext(ctx, "SELECT "+contentColumns+", file_data FROM contents WHERE id = ?", id), &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.FileData = data
	return &c, nil
}

// Create inserts c together with its blob.
func (r *ContentRepo) Create(ctx context.Context, c *model.Content) error {
	const q = `INSERT INTO contents (file_name, file_size, file_type, file_hash, original_path, mime_type,
		upload_user, custom_metadata, description, category, tags, file_data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.FileName, c.FileSize, c.FileType, nullIfEmpty(c.FileHash),
		nullIfEmpty(c.OriginalPath), nullIfEmpty(c.MimeType), nullIfEmpty(c.UploadUser),
		nullIfEmpty(c.CustomMetadata.Encode()), nullIfEmpty(c.Description), nullIfEmpty(c.Category),
		nullIfEmpty(c.Tags), c.FileData)
	if err != nil {
		return mapWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*c = *got
	return nil
}

// UpdateMetadata overwrites the editable descriptive fields of content c.ID.
// File name, size, hash and type are fixed at upload.
func (r *ContentRepo) UpdateMetadata(ctx context.Context, c *model.Content) error {
	const q = `UPDATE contents SET description = ?, category = ?, tags = ?, custom_metadata = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, nullIfEmpty(c.Description), nullIfEmpty(c.Category),
		nullIfEmpty(c.Tags), nullIfEmpty(c.CustomMetadata.Encode()), c.ID)
	if err != nil {
		return err
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	got, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = *got
	return nil
}

// Delete removes content id.
func (r *ContentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM contents WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// Count returns the number of contents.
func (r *ContentRepo) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, "contents", "", nil)
}
