package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/backoffice/internal/model"
	"github.com/iliyamo/backoffice/internal/paging"
)

// ProductRepo encapsulates the queries over the products table.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo constructs a ProductRepo with the provided DB handle.
func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

var productSort = sortColumns{
	"id":         "id",
	"name":       "name",
	"price":      "price_cents",
	"category":   "category",
	"quantity":   "quantity",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// file_data is only loaded by GetWithFile.
const productColumns = `id, name, COALESCE(description, ''), price_cents, category, quantity,
	COALESCE(file_name, ''), COALESCE(file_type, ''), COALESCE(file_size, 0),
	COALESCE(uploaded_by, ''), COALESCE(metadata, ''), created_at, updated_at`

func scanProduct(s rowScanner, extra ...any) (model.Product, error) {
	var p model.Product
	var cents int64
	var meta string
	dest := []any{&p.ID, &p.Name, &p.Description, &cents, &p.Category, &p.Quantity,
		&p.FileName, &p.FileType, &p.FileSize, &p.UploadedBy, &meta, &p.CreatedAt, &p.UpdatedAt}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return p, err
	}
	p.SetPriceCents(cents)
	p.Metadata = model.ParseMetadata(meta)
	return p, nil
}

// findPage runs the count and the page query for the given conditions.
func (r *ProductRepo) findPage(ctx context.Context, conds []string, args []any, pr paging.PageRequest) (paging.Page[model.Product], error) {
	out := paging.Page[model.Product]{Page: pr.Page, Size: pr.Size}
	order, err := orderBy(pr, productSort)
	if err != nil {
		return out, err
	}
	where := whereClause(conds)
	if out.Total, err = countRows(ctx, r.db, "products", where, args); err != nil {
		return out, err
	}
	q := "SELECT " + productColumns + " FROM products" + where + order + " LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, q, append(append([]any{}, args...), pr.Size, pr.Offset())...)
	if err != nil {
		return out, err
	}
	defer rows.Close()
	out.Items = make([]model.Product, 0, pr.Size)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return out, err
		}
		out.Items = append(out.Items, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) list(ctx context.Context, where string, args ...any) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+productColumns+" FROM products"+where+" ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// FindAll pages over every product.
func (r *ProductRepo) FindAll(ctx context.Context, pr paging.PageRequest) (paging.Page[model.Product], error) {
	return r.findPage(ctx, nil, nil, pr)
}

// Search matches term case-insensitively against name, description or
// category.
func (r *ProductRepo) Search(ctx context.Context, term string, pr paging.PageRequest) (paging.Page[model.Product], error) {
	cond, args := likeAny(term, "name", "description", "category")
	return r.findPage(ctx, []string{cond}, args, pr)
}

// FindByCategory pages over the products of one category (exact match).
func (r *ProductRepo) FindByCategory(ctx context.Context, category string, pr paging.PageRequest) (paging.Page[model.Product], error) {
	return r.findPage(ctx, []string{"category = ?"}, []any{category}, pr)
}

// FindByCategoryAndName pages over the products of category whose name
// contains name, ignoring case.
func (r *ProductRepo) FindByCategoryAndName(ctx context.Context, category, name string, pr paging.PageRequest) (paging.Page[model.Product], error) {
	like, args := likeAny(name, "name")
	return r.findPage(ctx, []string{"category = ?", like}, append([]any{category}, args...), pr)
}

// ListAll returns every product ordered by id.
func (r *ProductRepo) ListAll(ctx context.Context) ([]model.Product, error) {
	return r.list(ctx, "")
}

// ListByCategory returns the products of one category ordered by id.
func (r *ProductRepo) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	return r.list(ctx, " WHERE category = ?", category)
}

// Categories returns the distinct categories in use, sorted.
func (r *ProductRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT category FROM products ORDER BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID fetches a product without its file blob.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetWithFile fetches a product including its file blob.
func (r *ProductRepo) GetWithFile(ctx context.Context, id uint64) (*model.Product, error) {
	var data []byte
	p, err := scanProduct(r.db.QueryRowContext(ctx, "SELECT "+productColumns+", file_data FROM products WHERE id = ?", id), &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.FileData = data
	return &p, nil
}

// Create inserts p and re-reads it so ID and timestamps are populated.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	const q = `INSERT INTO products (name, description, price_cents, category, quantity, uploaded_by, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.Name, nullIfEmpty(p.Description), p.PriceCents, p.Category,
		p.Quantity, nullIfEmpty(p.UploadedBy), nullIfEmpty(p.Metadata.Encode()))
	if err != nil {
		return mapWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	return r.reload(ctx, uint64(id), p)
}

// Update overwrites the editable columns of p.
func (r *ProductRepo) Update(ctx context.Context, p *model.Product) error {
	const q = `UPDATE products
		SET name = ?, description = ?, price_cents = ?, category = ?, quantity = ?, metadata = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, p.Name, nullIfEmpty(p.Description), p.PriceCents, p.Category,
		p.Quantity, nullIfEmpty(p.Metadata.Encode()), p.ID)
	if err != nil {
		return mapWriteErr(err)
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	return r.reload(ctx, p.ID, p)
}

// AttachFile stores a blob and its descriptive fields on product id.
func (r *ProductRepo) AttachFile(ctx context.Context, id uint64, name, fileType, uploadedBy string, data []byte) error {
	const q = `UPDATE products
		SET file_name = ?, file_type = ?, file_size = ?, file_data = ?, uploaded_by = COALESCE(?, uploaded_by)
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, name, fileType, len(data), data, nullIfEmpty(uploadedBy), id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// Delete removes product id.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// Count returns the number of products.
func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, "products", "", nil)
}

func (r *ProductRepo) reload(ctx context.Context, id uint64, p *model.Product) error {
	got, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*p = *got
	return nil
}
