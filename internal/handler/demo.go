package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/backoffice/internal/model"
	"github.com/iliyamo/backoffice/internal/service"
)

// DemoHandler serves the showcase features: document search, chatbot, web
// search, product graph and the dashboard counters.
type DemoHandler struct {
	Documents *service.DocumentSearchService
	Chatbot   *service.ChatbotService
	Web       *service.WebSearchService
	Graph     *service.GraphService
	Dashboard *service.DashboardService
}

// DocumentTree handles GET /v1/documents/tree.
func (h *DemoHandler) DocumentTree(c echo.Context) error {
	return c.JSON(http.StatusOK, items(h.Documents.StructureTree()))
}

// DocumentSearch handles POST /v1/documents/search.
func (h *DemoHandler) DocumentSearch(c echo.Context) error {
	var f model.DocumentSearchFilter
	if err := c.Bind(&f); err != nil {
		return badRequest(c, "invalid request body")
	}
	res, err := h.Documents.Search(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Chat handles POST /v1/chat with {"message": "..."}.  The reply arrives
// after the configured typing delay; a client that disconnects cancels it.
func (h *DemoHandler) Chat(c echo.Context) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	msgs, err := h.Chatbot.Reply(c.Request().Context(), body.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": msgs})
}

// WebSearch handles GET /v1/web-search?q=.
func (h *DemoHandler) WebSearch(c echo.Context) error {
	res, err := h.Web.Search(c.QueryParam("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items(res))
}

// ProductGraph handles GET /v1/graph?category=.
func (h *DemoHandler) ProductGraph(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	g, err := h.Graph.Build(ctx, c.QueryParam("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, g)
}

// Summary handles GET /v1/dashboard.
func (h *DemoHandler) Summary(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	d, err := h.Dashboard.Summary(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}
