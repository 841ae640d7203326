package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/backoffice/internal/repository"
	"github.com/iliyamo/backoffice/internal/service"
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

func newProductHandler(t *testing.T) (*ProductHandler, sqlmock.Sqlmock) {
	db, mock := newMock(t)
	svc := service.NewProductService(repository.NewProductRepo(db), service.NopEvents{}, zap.NewNop())
	return NewProductHandler(svc, 1024), mock
}

func request(method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestRespondErrorMapping(t *testing.T) {
	ve := &service.ValidationError{Fields: map[string]string{"name": "Il nome del prodotto è obbligatorio"}}
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ve, http.StatusBadRequest, "validation_failed"},
		{fmt.Errorf("get product 3: %w", service.ErrNotFound), http.StatusNotFound, "not_found"},
		{service.ErrNoFile, http.StatusNotFound, "file_not_found"},
		{fmt.Errorf("user: %w", service.ErrDuplicate), http.StatusConflict, "conflict"},
		{service.ErrConflict, http.StatusConflict, "conflict"},
		{service.ErrInvalidSort, http.StatusBadRequest, "invalid_sort"},
		{errors.New("connection reset"), http.StatusInternalServerError, "internal_error"},
		{echo.NewHTTPError(http.StatusRequestEntityTooLarge, "too big"), http.StatusRequestEntityTooLarge, "too big"},
	}
	for _, tc := range cases {
		c, rec := request(http.MethodGet, "/", "")
		require.NoError(t, respondError(c, tc.err))
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		assert.Equal(t, tc.code, decode(t, rec)["error"])
	}

	c, rec := request(http.MethodGet, "/", "")
	require.NoError(t, respondError(c, ve))
	assert.Equal(t, map[string]any{"name": "Il nome del prodotto è obbligatorio"}, decode(t, rec)["fields"])
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t, `attachment; filename="report.pdf"`, contentDisposition("report.pdf"))
	assert.Equal(t, `attachment; filename="a_b_.pdf"; filename*=UTF-8''a%22b%22.pdf`, contentDisposition(`a"b".pdf`))
	assert.Equal(t, `attachment; filename="citt_.pdf"; filename*=UTF-8''citt%C3%A0.pdf`, contentDisposition("città.pdf"))
	assert.Equal(t, `attachment; filename="download"`, contentDisposition(""))
}

func TestProductDownload(t *testing.T) {
	h, mock := newProductHandler(t)
	now := time.Now()
	data := []byte("%PDF-1.4 fake")
	mock.ExpectQuery("SELECT .* file_data FROM products WHERE id = ?").WithArgs(7).
		WillReturnRows(sqlmock.NewRows(append(productCols, "file_data")).
			AddRow(7, "Laptop", "", 99900, "Elettronica", 3, "scheda.pdf", "application/pdf", len(data), "admin", "", now, now, data))

	c, rec := request(http.MethodGet, "/v1/products/7/download", "")
	require.NoError(t, h.Download(withID(c, "7")))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `attachment; filename="scheda.pdf"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, fmt.Sprint(len(data)), rec.Header().Get(echo.HeaderContentLength))
	assert.Equal(t, data, rec.Body.Bytes())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductDownloadFallbackAndMissing(t *testing.T) {
	h, mock := newProductHandler(t)
	now := time.Now()

	mock.ExpectQuery("SELECT .* file_data FROM products WHERE id = ?").WithArgs(1).
		WillReturnRows(sqlmock.NewRows(append(productCols, "file_data")).
			AddRow(1, "Mouse", "", 1500, "Accessori", 1, "x.bin", "%%%", 2, "", "", now, now, []byte{1, 2}))
	c, rec := request(http.MethodGet, "/", "")
	require.NoError(t, h.Download(withID(c, "1")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, echo.MIMEOctetStream, rec.Header().Get(echo.HeaderContentType))

	mock.ExpectQuery("SELECT .* file_data FROM products WHERE id = ?").WithArgs(2).
		WillReturnRows(sqlmock.NewRows(append(productCols, "file_data")).
			AddRow(2, "Tastiera", "", 2500, "Accessori", 1, "", "", 0, "", "", now, now, nil))
	c, rec = request(http.MethodGet, "/", "")
	require.NoError(t, h.Download(withID(c, "2")))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "file_not_found", decode(t, rec)["error"])

	mock.ExpectQuery("SELECT .* file_data FROM products WHERE id = ?").WithArgs(3).
		WillReturnError(sql.ErrNoRows)
	c, rec = request(http.MethodGet, "/", "")
	require.NoError(t, h.Download(withID(c, "3")))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode(t, rec)["error"])

	c, rec = request(http.MethodGet, "/", "")
	require.NoError(t, h.Download(withID(c, "abc")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductListFallsBackToLastPage(t *testing.T) {
	h, mock := newProductHandler(t)
	now := time.Now()
	count := func() {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
			WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(18))
	}
	count()
	mock.ExpectQuery("SELECT .* FROM products WHERE 1=1 ORDER BY .* LIMIT").WithArgs(5, 45).
		WillReturnRows(sqlmock.NewRows(productCols))
	count()
	rows := sqlmock.NewRows(productCols)
	for id := 16; id <= 18; id++ {
		rows.AddRow(id, fmt.Sprintf("P%d", id), "", 1000, "Elettronica", 1, "", "", 0, "", "", now, now)
	}
	mock.ExpectQuery("SELECT .* FROM products WHERE 1=1 ORDER BY .* LIMIT").WithArgs(5, 15).
		WillReturnRows(rows)

	c, rec := request(http.MethodGet, "/v1/products?page=9&size=5", "")
	require.NoError(t, h.List(c))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 3, body["page"])
	assert.EqualValues(t, 4, body["total_pages"])
	assert.EqualValues(t, 18, body["total"])
	assert.Len(t, body["items"], 3)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductListRejectsUnknownSort(t *testing.T) {
	h, mock := newProductHandler(t)
	c, rec := request(http.MethodGet, "/v1/products?sort=password,desc", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_sort", decode(t, rec)["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductCreateValidation(t *testing.T) {
	h, mock := newProductHandler(t)
	c, rec := request(http.MethodPost, "/v1/products", `{"name":"","category":"Audio","price":10}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	fields := decode(t, rec)["fields"].(map[string]any)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "quantity")
	assert.NotContains(t, fields, "price")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductDeleteMissing(t *testing.T) {
	h, mock := newProductHandler(t)
	mock.ExpectExec("DELETE FROM products WHERE id = ?").WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := request(http.MethodDelete, "/", "")
	require.NoError(t, h.Delete(withID(c, "99")))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachFileTooLarge(t *testing.T) {
	h, mock := newProductHandler(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "big.bin")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte{'x'}, 2048))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/products/1/file", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := withID(e.NewContext(req, rec), "1")

	require.NoError(t, h.AttachFile(c))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDemoEndpoints(t *testing.T) {
	h := &DemoHandler{
		Documents: service.NewDocumentSearchService(zap.NewNop()),
		Chatbot:   service.NewChatbotService(0),
		Web:       service.NewWebSearchService(),
	}

	c, rec := request(http.MethodGet, "/v1/web-search?q=", "")
	require.NoError(t, h.WebSearch(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = request(http.MethodGet, "/v1/web-search?q=spring+boot", "")
	require.NoError(t, h.WebSearch(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["items"], 5)

	c, rec = request(http.MethodPost, "/v1/chat", `{"message":"ciao"}`)
	require.NoError(t, h.Chat(c))
	require.Equal(t, http.StatusOK, rec.Code)
	msgs := decode(t, rec)["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "ciao", msgs[0].(map[string]any)["text"])
	assert.Equal(t, service.ChatbotReply, msgs[1].(map[string]any)["text"])

	c, rec = request(http.MethodPost, "/v1/documents/search", `{"date_from":"2024-05-01","date_to":"2024-01-01"}`)
	require.NoError(t, h.DocumentSearch(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = request(http.MethodPost, "/v1/documents/search", `{"author":"Rossi"}`)
	require.NoError(t, h.DocumentSearch(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["results"], 5)

	c, rec = request(http.MethodGet, "/v1/documents/tree", "")
	require.NoError(t, h.DocumentTree(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["items"])
}

func TestHealthWithoutDB(t *testing.T) {
	c, rec := request(http.MethodGet, "/healthz", "")
	require.NoError(t, (&HealthHandler{}).Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
