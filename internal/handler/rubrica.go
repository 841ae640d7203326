package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/backoffice/internal/service"
)

// RubricaHandler serves the address book under /api/rubricas.  Its
// responses follow the older clients: the list is a bare array and writes
// answer with the entry id.
type RubricaHandler struct {
	Service *service.RubricaService
}

func NewRubricaHandler(svc *service.RubricaService) *RubricaHandler {
	if svc == nil {
		panic("nil service passed to NewRubricaHandler")
	}
	return &RubricaHandler{Service: svc}
}

func (h *RubricaHandler) List(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	list, err := h.Service.ListAll(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *RubricaHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	rb, err := h.Service.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rb)
}

// Create handles POST /api/rubricas and answers 201 with the new id.
func (h *RubricaHandler) Create(c echo.Context) error {
	var in service.RubricaInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	id, err := h.Service.Create(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, id)
}

// Update handles PUT /api/rubricas/:id and answers with the id.
func (h *RubricaHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var in service.RubricaInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	got, err := h.Service.Update(ctx, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, got)
}

func (h *RubricaHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Service.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
