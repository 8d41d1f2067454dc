package categoryRepo

import (
	"context"

	"bookingadmin/database/docstore"
	"bookingadmin/models"
)

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, category models.Category) (*models.Category, error)
	Update(ctx context.Context, category models.Category) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
	SetOrders(ctx context.Context, orders map[string]int) error
}

type storeCategoryRepo struct {
	store docstore.Store
}

func NewCategoryRepo(store docstore.Store) CategoryRepository {
	return &storeCategoryRepo{store: store}
}
