package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/backoffice/internal/paging"
)

var productCols = []string{"id", "name", "description", "price_cents", "category", "quantity",
	"file_name", "file_type", "file_size", "uploaded_by", "metadata", "created_at", "updated_at"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func productRow(rows *sqlmock.Rows, id int64, name, category string, cents int64) *sqlmock.Rows {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return rows.AddRow(id, name, "", cents, category, 3, "", "", 0, "", `{"colore":"nero"}`, now, now)
}

func TestProductFindByCategoryAndNameIntersects(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products WHERE category = ? AND (LOWER(name) LIKE ? ESCAPE '!')")).
		WithArgs("Elettronica", "%lap%").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectQuery(`FROM products WHERE category = \? AND \(LOWER\(name\) LIKE \? ESCAPE '!'\) ORDER BY name DESC, id ASC LIMIT \? OFFSET \?`).
		WithArgs("Elettronica", "%lap%", 5, 0).
		WillReturnRows(productRow(sqlmock.NewRows(productCols), 1, "Laptop Dell XPS 15", "Elettronica", 129999))

	pr := paging.NewPageRequest(0, 5, []paging.Order{{Property: "name", Direction: paging.Desc}})
	page, err := repo.FindByCategoryAndName(context.Background(), "Elettronica", "LAP", pr)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, 1299.99, page.Items[0].Price)
	assert.Equal(t, "nero", page.Items[0].Metadata["colore"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductSearchOrsColumnsAndPages(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products WHERE (LOWER(name) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!' OR LOWER(category) LIKE ? ESCAPE '!')")).
		WithArgs("%audio%", "%audio%", "%audio%").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(18))
	mock.ExpectQuery(`ORDER BY id ASC LIMIT \? OFFSET \?`).
		WithArgs("%audio%", "%audio%", "%audio%", 5, 15).
		WillReturnRows(sqlmock.NewRows(productCols))

	page, err := repo.Search(context.Background(), " Audio ", paging.NewPageRequest(3, 5, nil))
	require.NoError(t, err)
	assert.Equal(t, 4, page.TotalPages())
	assert.Empty(t, page.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductInvalidSort(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepo(db)

	pr := paging.NewPageRequest(0, 5, []paging.Order{{Property: "file_data", Direction: paging.Asc}})
	_, err := repo.FindAll(context.Background(), pr)
	assert.ErrorIs(t, err, ErrInvalidSort)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductDeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = ?")).
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductGetByIDMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepo(db)

	mock.ExpectQuery("FROM products WHERE id = ").WithArgs(uint64(7)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductCreateReloads(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepo(db)

	mock.ExpectExec("INSERT INTO products").
		WithArgs("Mouse", nil, int64(2550), "Accessori", 4, nil, nil).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectQuery("FROM products WHERE id = ").WithArgs(uint64(12)).
		WillReturnRows(productRow(sqlmock.NewRows(productCols), 12, "Mouse", "Accessori", 2550))

	p := newProduct("Mouse", "Accessori", 2550, 4)
	require.NoError(t, repo.Create(context.Background(), p))
	assert.EqualValues(t, 12, p.ID)
	assert.Equal(t, 25.5, p.Price)
	assert.False(t, p.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductCreateDuplicateIsConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepo(db)

	mock.ExpectExec("INSERT INTO products").
		WillReturnError(&mysqlErr1062{})

	err := repo.Create(context.Background(), newProduct("Mouse", "Accessori", 1, 1))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestProductSearchEscapesWildcards(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products WHERE category = ? AND (LOWER(name) LIKE ? ESCAPE '!')")).
		WithArgs("Accessori", "%50!%!_x!!%").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery("LIMIT").
		WithArgs("Accessori", "%50!%!_x!!%", 5, 0).
		WillReturnRows(sqlmock.NewRows(productCols))

	page, err := repo.FindByCategoryAndName(context.Background(), "Accessori", "50%_X!", paging.NewPageRequest(0, 5, nil))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeAnyPatterns(t *testing.T) {
	cases := map[string]string{
		"lap":  "%lap%",
		"_":    "%!_%",
		"50%":  "%50!%%",
		" a!b": "%a!!b%",
	}
	for term, want := range cases {
		cond, args := likeAny(term, "name", "category")
		assert.Equal(t, "(LOWER(name) LIKE ? ESCAPE '!' OR LOWER(category) LIKE ? ESCAPE '!')", cond)
		assert.Equal(t, []any{want, want}, args, term)
	}
}
