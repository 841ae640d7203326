package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/backoffice/internal/paging"
	"github.com/iliyamo/backoffice/internal/service"
)

// ContentHandler serves stored documents.
type ContentHandler struct {
	Svc            *service.ContentService
	UploadMaxBytes int64
}

// NewContentHandler panics on a nil service.
func NewContentHandler(svc *service.ContentService, uploadMax int64) *ContentHandler {
	if svc == nil {
		panic("nil service passed to NewContentHandler")
	}
	return &ContentHandler{Svc: svc, UploadMaxBytes: uploadMax}
}

// List handles GET /v1/contents with `search`, `file_type` and `category`.
func (h *ContentHandler) List(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	q := h.Svc.Query(c.QueryParam("file_type"), c.QueryParam("category"))
	view, err := loadView(ctx, q, paging.FromQuery(c.QueryParams()), strings.TrimSpace(c.QueryParam("search")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// FileTypes handles GET /v1/contents/file-types.
func (h *ContentHandler) FileTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, items(service.ContentFileTypes))
}

// Get handles GET /v1/contents/:id.
func (h *ContentHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	ct, err := h.Svc.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ct)
}

// Upload handles POST /v1/contents.  The multipart form carries `file` and
// the optional fields file_type, original_path, description, category,
// tags and custom_metadata (a JSON object).
func (h *ContentHandler) Upload(c echo.Context) error {
	up, err := readUpload(c, "file", h.UploadMaxBytes)
	if err != nil {
		return respondError(c, err)
	}
	meta, err := formMetadata(c, "custom_metadata")
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	ct, err := h.Svc.Upload(ctx, service.ContentUpload{
		FileName:       up.Name,
		FileType:       c.FormValue("file_type"),
		OriginalPath:   c.FormValue("original_path"),
		Description:    c.FormValue("description"),
		Category:       c.FormValue("category"),
		Tags:           c.FormValue("tags"),
		CustomMetadata: meta,
		Data:           up.Data,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, ct)
}

// Update handles PUT /v1/contents/:id; only descriptive metadata changes.
func (h *ContentHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var in service.ContentMetadata
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	ct, err := h.Svc.UpdateMetadata(ctx, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ct)
}

// Delete handles DELETE /v1/contents/:id.
func (h *ContentHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Svc.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Download handles GET /v1/contents/:id/download.
func (h *ContentHandler) Download(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	ct, err := h.Svc.Download(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, "content", ct.FileName, ct.MimeType, ct.FileData)
}
