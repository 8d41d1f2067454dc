package serviceRepo

import (
	"context"

	"bookingadmin/database/docstore"
	"bookingadmin/models"
)

type ServiceRepository interface {
	GetAll(ctx context.Context) ([]models.Service, error)
	GetByID(ctx context.Context, id string) (*models.Service, error)
	Create(ctx context.Context, service models.Service) (*models.Service, error)
	Update(ctx context.Context, service models.Service) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
	SetOrders(ctx context.Context, orders map[string]int) error
}

type storeServiceRepo struct {
	store docstore.Store
}

func NewServiceRepo(store docstore.Store) ServiceRepository {
	return &storeServiceRepo{store: store}
}
