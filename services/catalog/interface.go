// Package catalog manages service categories and the services offered in them.
// Every write returns the freshly re-read list.
package catalog

import (
	"context"

	categoryRepo "bookingadmin/database/repository/category"
	serviceRepo "bookingadmin/database/repository/service"
	"bookingadmin/models"
	"bookingadmin/services/ordering"
)

// NoCategory is shown for services whose category is unset or deleted.
const NoCategory = "None"

type CatalogService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	// SaveCategory updates when the input has an id and inserts otherwise.
	SaveCategory(ctx context.Context, in models.CategoryInput) ([]models.Category, error)
	DeleteCategory(ctx context.Context, id string) ([]models.Category, error)
	SetCategoryActive(ctx context.Context, id string, active bool) ([]models.Category, error)
	MoveCategory(ctx context.Context, id string, dir ordering.Direction) ([]models.Category, error)

	ListServices(ctx context.Context) ([]models.ServiceView, error)
	SaveService(ctx context.Context, in models.ServiceInput) ([]models.ServiceView, error)
	DeleteService(ctx context.Context, id string) ([]models.ServiceView, error)
	SetServiceActive(ctx context.Context, id string, active bool) ([]models.ServiceView, error)
	MoveService(ctx context.Context, id string, dir ordering.Direction) ([]models.ServiceView, error)
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Categories categoryRepo.CategoryRepository
	Services   serviceRepo.ServiceRepository
}
