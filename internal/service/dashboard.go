package service

import (
	"context"

	"github.com/iliyamo/backoffice/internal/model"
)

// DashboardService gathers the entity counters of the landing page.
type DashboardService struct {
	products    *ProductService
	contents    *ContentService
	files       *FileUploadService
	users       *UserService
	profiles    *ProfileService
	permissions *PermissionService
}

func NewDashboardService(products *ProductService, contents *ContentService, files *FileUploadService,
	users *UserService, profiles *ProfileService, permissions *PermissionService) *DashboardService {
	return &DashboardService{products: products, contents: contents, files: files,
		users: users, profiles: profiles, permissions: permissions}
}

// Summary counts every entity.  The first failing count aborts.
func (s *DashboardService) Summary(ctx context.Context) (*model.Dashboard, error) {
	var d model.Dashboard
	counters := []struct {
		dst *int64
		fn  func(context.Context) (int64, error)
	}{
		{&d.Products, s.products.Count},
		{&d.Contents, s.contents.Count},
		{&d.Files, s.files.Count},
		{&d.Users, s.users.Count},
		{&d.ActiveUsers, s.users.CountActive},
		{&d.Profiles, s.profiles.Count},
		{&d.Permissions, s.permissions.Count},
	}
	for _, c := range counters {
		n, err := c.fn(ctx)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return &d, nil
}
