package router

import "github.com/iliyamo/backoffice/internal/handler"

// RegisterDemo registers the showcase endpoints.  The static document tree
// and the web search results are served through the response cache.
func (a *API) RegisterDemo(h *handler.DemoHandler) {
	g := a.Group
	g.GET("/documents/tree", h.DocumentTree, a.cached()...)
	g.POST("/documents/search", h.DocumentSearch)
	g.POST("/chat", h.Chat)
	g.GET("/web-search", h.WebSearch, a.cached()...)
	g.GET("/graph", h.ProductGraph)
	g.GET("/dashboard", h.Summary)
}
