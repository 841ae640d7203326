package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/backoffice/internal/paging"
	"github.com/iliyamo/backoffice/internal/service"
)

// ProductHandler serves the product catalogue.
type ProductHandler struct {
	Svc            *service.ProductService
	UploadMaxBytes int64
}

// NewProductHandler panics on a nil service.
func NewProductHandler(svc *service.ProductService, uploadMax int64) *ProductHandler {
	if svc == nil {
		panic("nil service passed to NewProductHandler")
	}
	return &ProductHandler{Svc: svc, UploadMaxBytes: uploadMax}
}

// List handles GET /v1/products.  `search` and `category` narrow the
// listing; `page`, `size` and `sort` drive the grid.
func (h *ProductHandler) List(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	category := strings.TrimSpace(c.QueryParam("category"))
	search := strings.TrimSpace(c.QueryParam("search"))
	view, err := loadView(ctx, h.Svc.Query(category), paging.FromQuery(c.QueryParams()), search)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// Categories handles GET /v1/products/categories.
func (h *ProductHandler) Categories(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	cats, err := h.Svc.Categories(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items(cats))
}

// Get handles GET /v1/products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	p, err := h.Svc.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /v1/products.
func (h *ProductHandler) Create(c echo.Context) error {
	var in service.ProductInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	p, err := h.Svc.Create(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /v1/products/:id.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var in service.ProductInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	p, err := h.Svc.Update(ctx, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /v1/products/:id.
func (h *ProductHandler) Delete(c echo.Context) error {
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

// AttachFile handles POST /v1/products/:id/file with a multipart `file`.
func (h *ProductHandler) AttachFile(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	up, err := readUpload(c, "file", h.UploadMaxBytes)
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	p, err := h.Svc.AttachFile(ctx, id, up.Name, up.ContentType, up.Data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Download handles GET /v1/products/:id/download and the legacy
// /api/prodotti/download/:id.
func (h *ProductHandler) Download(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	p, err := h.Svc.Download(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, "product", p.FileName, p.FileType, p.FileData)
}
