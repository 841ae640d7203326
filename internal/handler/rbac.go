package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/backoffice/internal/service"
)

// RBACHandler serves users, profiles and permissions.
type RBACHandler struct {
	Users       *service.UserService
	Profiles    *service.ProfileService
	Permissions *service.PermissionService
}

// NewRBACHandler panics if any service is nil.
func NewRBACHandler(users *service.UserService, profiles *service.ProfileService, permissions *service.PermissionService) *RBACHandler {
	if users == nil || profiles == nil || permissions == nil {
		panic("nil service passed to NewRBACHandler")
	}
	return &RBACHandler{Users: users, Profiles: profiles, Permissions: permissions}
}

// ListPermissions handles GET /v1/permissions.  `search` wins over
// `category`, which wins over `active=true`.
func (h *RBACHandler) ListPermissions(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	var (
		list interface{}
		err  error
	)
	switch {
	case strings.TrimSpace(c.QueryParam("search")) != "":
		list, err = h.Permissions.Search(ctx, c.QueryParam("search"))
	case strings.TrimSpace(c.QueryParam("category")) != "":
		list, err = h.Permissions.ListByCategory(ctx, c.QueryParam("category"))
	case queryBool(c, "active"):
		list, err = h.Permissions.ListActive(ctx)
	default:
		list, err = h.Permissions.ListAll(ctx)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": list})
}

// PermissionCategories handles GET /v1/permissions/categories.
func (h *RBACHandler) PermissionCategories(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	cats, err := h.Permissions.Categories(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items(cats))
}

// GetPermission handles GET /v1/permissions/:id.
func (h *RBACHandler) GetPermission(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	p, err := h.Permissions.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// CreatePermission handles POST /v1/permissions.
func (h *RBACHandler) CreatePermission(c echo.Context) error {
	var in service.PermissionInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	p, err := h.Permissions.Create(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdatePermission handles PUT /v1/permissions/:id.
func (h *RBACHandler) UpdatePermission(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var in service.PermissionInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	p, err := h.Permissions.Update(ctx, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// DeletePermission handles DELETE /v1/permissions/:id.
func (h *RBACHandler) DeletePermission(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Permissions.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListProfiles handles GET /v1/profiles with optional `search` or `active=true`.
func (h *RBACHandler) ListProfiles(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	var (
		list interface{}
		err  error
	)
	switch {
	case strings.TrimSpace(c.QueryParam("search")) != "":
		list, err = h.Profiles.Search(ctx, c.QueryParam("search"))
	case queryBool(c, "active"):
		list, err = h.Profiles.ListActive(ctx)
	default:
		list, err = h.Profiles.ListAll(ctx)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": list})
}

// GetProfile handles GET /v1/profiles/:id; the permissions are included.
func (h *RBACHandler) GetProfile(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	p, err := h.Profiles.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// CreateProfile handles POST /v1/profiles.
func (h *RBACHandler) CreateProfile(c echo.Context) error {
	var in service.ProfileInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	p, err := h.Profiles.Create(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdateProfile handles PUT /v1/profiles/:id.
func (h *RBACHandler) UpdateProfile(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var in service.ProfileInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	p, err := h.Profiles.Update(ctx, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// SetProfilePermissions handles PUT /v1/profiles/:id/permissions with
// {"permission_ids": [...]}; the list replaces the current grants.
func (h *RBACHandler) SetProfilePermissions(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var body struct {
		PermissionIDs []uint64 `json:"permission_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	p, err := h.Profiles.SetPermissions(ctx, id, body.PermissionIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteProfile handles DELETE /v1/profiles/:id.
func (h *RBACHandler) DeleteProfile(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Profiles.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListUsers handles GET /v1/users.  `search` wins over `profile_id`, which
// wins over `active=true`.
func (h *RBACHandler) ListUsers(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	var (
		list interface{}
		err  error
	)
	switch {
	case strings.TrimSpace(c.QueryParam("search")) != "":
		list, err = h.Users.Search(ctx, c.QueryParam("search"))
	case c.QueryParam("profile_id") != "":
		pid, perr := strconv.ParseUint(c.QueryParam("profile_id"), 10, 64)
		if perr != nil {
			return badRequest(c, "invalid profile_id")
		}
		list, err = h.Users.ListByProfile(ctx, pid)
	case queryBool(c, "active"):
		list, err = h.Users.ListActive(ctx)
	default:
		list, err = h.Users.ListAll(ctx)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": list})
}

// GetUser handles GET /v1/users/:id; the profiles are included.
func (h *RBACHandler) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	u, err := h.Users.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// CreateUser handles POST /v1/users.
func (h *RBACHandler) CreateUser(c echo.Context) error {
	var in service.UserInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	u, err := h.Users.Create(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

// UpdateUser handles PUT /v1/users/:id.
func (h *RBACHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var in service.UserInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	u, err := h.Users.Update(ctx, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// SetUserProfiles handles PUT /v1/users/:id/profiles with {"profile_ids": [...]}.
func (h *RBACHandler) SetUserProfiles(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var body struct {
		ProfileIDs []uint64 `json:"profile_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	u, err := h.Users.SetProfiles(ctx, id, body.ProfileIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// UserPermissions handles GET /v1/users/:id/permissions: the effective
// permission names granted through the user's active profiles.
func (h *RBACHandler) UserPermissions(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	names, err := h.Users.Permissions(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items(names))
}

// DeleteUser handles DELETE /v1/users/:id.
func (h *RBACHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Users.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
