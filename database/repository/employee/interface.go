package employeeRepo

import (
	"context"

	"bookingadmin/database/docstore"
	"bookingadmin/models"
)

type EmployeeRepository interface {
	GetAll(ctx context.Context) ([]models.Employee, error)
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	Create(ctx context.Context, employee models.Employee) (*models.Employee, error)
	Update(ctx context.Context, employee models.Employee) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
	SetServices(ctx context.Context, id string, serviceIDs []string) error
	SetSchedule(ctx context.Context, id string, schedule models.EmployeeSchedule) error
}

type storeEmployeeRepo struct {
	store docstore.Store
}

func NewEmployeeRepo(store docstore.Store) EmployeeRepository {
	return &storeEmployeeRepo{store: store}
}
