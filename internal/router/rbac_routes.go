package router

import "github.com/iliyamo/backoffice/internal/handler"

// RegisterRBAC registers users, profiles and permissions.  Changing the
// permission catalogue or a profile's grants is a system setting; user
// writes have their own permissions.
func (a *API) RegisterRBAC(h *handler.RBACHandler) {
	g := a.Group

	// ---- Permissions ----
	g.GET("/permissions", h.ListPermissions)
	g.GET("/permissions/categories", h.PermissionCategories)
	g.GET("/permissions/:id", h.GetPermission)
	g.POST("/permissions", h.CreatePermission, a.guard("SYSTEM_SETTINGS")...)
	g.PUT("/permissions/:id", h.UpdatePermission, a.guard("SYSTEM_SETTINGS")...)
	g.DELETE("/permissions/:id", h.DeletePermission, a.guard("SYSTEM_SETTINGS")...)

	// ---- Profiles ----
	g.GET("/profiles", h.ListProfiles)
	g.GET("/profiles/:id", h.GetProfile)
	g.POST("/profiles", h.CreateProfile, a.guard("SYSTEM_SETTINGS")...)
	g.PUT("/profiles/:id", h.UpdateProfile, a.guard("SYSTEM_SETTINGS")...)
	g.PUT("/profiles/:id/permissions", h.SetProfilePermissions, a.guard("SYSTEM_SETTINGS")...)
	g.DELETE("/profiles/:id", h.DeleteProfile, a.guard("SYSTEM_SETTINGS")...)

	// ---- Users ----
	g.GET("/users", h.ListUsers)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/:id/permissions", h.UserPermissions)
	g.POST("/users", h.CreateUser, a.guard("USER_CREATE")...)
	g.PUT("/users/:id", h.UpdateUser, a.guard("USER_EDIT")...)
	g.PUT("/users/:id/profiles", h.SetUserProfiles, a.guard("USER_MANAGE_PROFILES")...)
	g.DELETE("/users/:id", h.DeleteUser, a.guard("USER_DELETE")...)
}
