package router

import "github.com/iliyamo/backoffice/internal/handler"

// RegisterProducts registers the product catalogue.  The download is also
// reachable at the legacy /api/prodotti/download/:id path.
func (a *API) RegisterProducts(h *handler.ProductHandler) {
	g := a.Group
	g.GET("/products", h.List)
	g.GET("/products/categories", h.Categories)
	g.GET("/products/:id", h.Get)
	g.GET("/products/:id/download", h.Download)
	g.POST("/products", h.Create, a.guard("PRODUCT_CREATE")...)
	g.PUT("/products/:id", h.Update, a.guard("PRODUCT_EDIT")...)
	g.POST("/products/:id/file", h.AttachFile, a.guard("PRODUCT_EDIT")...)
	g.DELETE("/products/:id", h.Delete, a.guard("PRODUCT_DELETE")...)

	a.Legacy.GET("/prodotti/download/:id", h.Download)
}

// RegisterContents registers the document archive.
func (a *API) RegisterContents(h *handler.ContentHandler) {
	g := a.Group
	g.GET("/contents", h.List)
	g.GET("/contents/file-types", h.FileTypes)
	g.GET("/contents/:id", h.Get)
	g.GET("/contents/:id/download", h.Download)
	g.POST("/contents", h.Upload, a.guard("FILE_UPLOAD")...)
	g.PUT("/contents/:id", h.Update, a.guard("FILE_MANAGE_METADATA")...)
	g.DELETE("/contents/:id", h.Delete, a.guard("FILE_DELETE")...)
}

// RegisterFiles registers the upload manager.  DELETE on the collection
// removes several uploads at once.
func (a *API) RegisterFiles(h *handler.FileUploadHandler) {
	g := a.Group
	g.GET("/files", h.List)
	g.GET("/files/:id", h.Get)
	g.GET("/files/:id/download", h.Download)
	g.POST("/files", h.Upload, a.guard("FILE_UPLOAD")...)
	g.PUT("/files/:id", h.Update, a.guard("FILE_MANAGE_METADATA")...)
	g.PATCH("/files/:id/status", h.SetStatus, a.guard("FILE_MANAGE_METADATA")...)
	g.DELETE("/files/:id", h.Delete, a.guard("FILE_DELETE")...)
	g.DELETE("/files", h.DeleteMany, a.guard("FILE_DELETE")...)
}

// RegisterRubrica registers the address book on the /api group.  Writes
// are reference-data changes and need SYSTEM_SETTINGS.
func (a *API) RegisterRubrica(h *handler.RubricaHandler) {
	g := a.Legacy
	g.GET("/rubricas", h.List)
	g.GET("/rubricas/:id", h.Get)
	g.POST("/rubricas", h.Create, a.guard("SYSTEM_SETTINGS")...)
	g.PUT("/rubricas/:id", h.Update, a.guard("SYSTEM_SETTINGS")...)
	g.DELETE("/rubricas/:id", h.Delete, a.guard("SYSTEM_SETTINGS")...)
}
