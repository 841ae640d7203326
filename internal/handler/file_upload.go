package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/backoffice/internal/service"
)

// FileUploadHandler serves the upload manager.
type FileUploadHandler struct {
	Svc            *service.FileUploadService
	UploadMaxBytes int64
}

// NewFileUploadHandler panics on a nil service.
func NewFileUploadHandler(svc *service.FileUploadService, uploadMax int64) *FileUploadHandler {
	if svc == nil {
		panic("nil service passed to NewFileUploadHandler")
	}
	return &FileUploadHandler{Svc: svc, UploadMaxBytes: uploadMax}
}

// List handles GET /v1/files with the optional `uploaded_by` and `name`.
func (h *FileUploadHandler) List(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	list, err := h.Svc.List(ctx, c.QueryParam("uploaded_by"), c.QueryParam("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items(list))
}

// Get handles GET /v1/files/:id.
func (h *FileUploadHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	f, err := h.Svc.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

// Upload handles POST /v1/files with a multipart `file` and the optional
// description, category and metadata (a JSON object) fields.
func (h *FileUploadHandler) Upload(c echo.Context) error {
	up, err := readUpload(c, "file", h.UploadMaxBytes)
	if err != nil {
		return respondError(c, err)
	}
	meta, err := formMetadata(c, "metadata")
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	f, err := h.Svc.Upload(ctx, service.FileUploadInput{
		FileName:    up.Name,
		FileType:    up.ContentType,
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Metadata:    meta,
		Data:        up.Data,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

// Update handles PUT /v1/files/:id.
func (h *FileUploadHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var patch service.FileUploadPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	f, err := h.Svc.Update(ctx, id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

// SetStatus handles PATCH /v1/files/:id/status with {"status": "APPROVED"}.
func (h *FileUploadHandler) SetStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	f, err := h.Svc.SetStatus(ctx, id, body.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

// Delete handles DELETE /v1/files/:id.
func (h *FileUploadHandler) Delete(c echo.Context) error {
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

// DeleteMany handles DELETE /v1/files with {"ids": [...]}.
func (h *FileUploadHandler) DeleteMany(c echo.Context) error {
	var body struct {
		IDs []uint64 `json:"ids"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	n, err := h.Svc.DeleteMany(ctx, body.IDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}

// Download handles GET /v1/files/:id/download.
func (h *FileUploadHandler) Download(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	f, err := h.Svc.Download(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, "file", f.FileName, f.FileType, f.FileData)
}
