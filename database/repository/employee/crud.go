package employeeRepo

import (
	"context"
	"fmt"
	"time"

	"bookingadmin/database/docstore"
	"bookingadmin/models"

	"github.com/google/uuid"
)

// decode leaves Schedule as stored (possibly nil); callers normalize it.
func decode(doc docstore.Document) (models.Employee, error) {
	var e models.Employee
	if err := doc.DataTo(&e); err != nil {
		return e, fmt.Errorf("failed to decode employee %s: %w", doc.ID(), err)
	}
	e.ID = doc.ID()
	e.Active = docstore.BoolField(doc, "active", true)
	if e.Services == nil {
		e.Services = []string{}
	}
	return e, nil
}

func (r *storeEmployeeRepo) GetAll(ctx context.Context) ([]models.Employee, error) {
	docs, err := r.store.List(ctx, docstore.Employees)
	if err != nil {
		return nil, err
	}
	employees := make([]models.Employee, 0, len(docs))
	for _, doc := range docs {
		e, err := decode(doc)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, nil
}

func (r *storeEmployeeRepo) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	doc, err := r.store.Get(ctx, docstore.Employees, id)
	if err != nil {
		return nil, err
	}
	e, err := decode(doc)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *storeEmployeeRepo) Create(ctx context.Context, employee models.Employee) (*models.Employee, error) {
	if employee.ID == "" {
		employee.ID = uuid.New().String()
	}
	if employee.Services == nil {
		employee.Services = []string{}
	}
	now := time.Now().UTC()
	employee.CreatedAt = now
	employee.UpdatedAt = now

	if err := r.store.Create(ctx, docstore.Employees, employee.ID, employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// Update rewrites the profile fields. The schedule is only written through SetSchedule.
func (r *storeEmployeeRepo) Update(ctx context.Context, employee models.Employee) error {
	services := employee.Services
	if services == nil {
		services = []string{}
	}
	return r.store.Update(ctx, docstore.Employees, employee.ID, map[string]interface{}{
		"name":      employee.Name,
		"email":     employee.Email,
		"phone":     employee.Phone,
		"role":      employee.Role,
		"active":    employee.Active,
		"services":  services,
		"updatedAt": time.Now().UTC(),
	})
}

func (r *storeEmployeeRepo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, docstore.Employees, id)
}

func (r *storeEmployeeRepo) SetActive(ctx context.Context, id string, active bool) error {
	return r.store.Update(ctx, docstore.Employees, id, map[string]interface{}{
		"active":    active,
		"updatedAt": time.Now().UTC(),
	})
}

func (r *storeEmployeeRepo) SetServices(ctx context.Context, id string, serviceIDs []string) error {
	if serviceIDs == nil {
		serviceIDs = []string{}
	}
	return r.store.Update(ctx, docstore.Employees, id, map[string]interface{}{
		"services":  serviceIDs,
		"updatedAt": time.Now().UTC(),
	})
}

func (r *storeEmployeeRepo) SetSchedule(ctx context.Context, id string, schedule models.EmployeeSchedule) error {
	return r.store.Update(ctx, docstore.Employees, id, map[string]interface{}{
		"schedule":  schedule,
		"updatedAt": time.Now().UTC(),
	})
}
