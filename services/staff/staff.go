package staff

import (
	"context"
	"fmt"

	employeeRepo "bookingadmin/database/repository/employee"
	serviceRepo "bookingadmin/database/repository/service"
	"bookingadmin/models"
	"bookingadmin/services/schedule"
)

// StaffService manages employees, the services they perform and their schedules.
type StaffService interface {
	List(ctx context.Context) ([]models.EmployeeView, error)
	// Save updates when the input has an id and inserts otherwise; new employees get the
	// default schedule.
	Save(ctx context.Context, in models.EmployeeInput) ([]models.EmployeeView, error)
	Delete(ctx context.Context, id string) ([]models.EmployeeView, error)
	SetActive(ctx context.Context, id string, active bool) ([]models.EmployeeView, error)
	SetServices(ctx context.Context, id string, serviceIDs []string) ([]models.EmployeeView, error)

	GetSchedule(ctx context.Context, id string) (*models.EmployeeSchedule, error)
	ReplaceSchedule(ctx context.Context, id string, s models.EmployeeSchedule) (*models.EmployeeSchedule, error)
	// EditSchedule applies ops to the stored schedule and saves the result. Nothing is saved
	// when an op fails.
	EditSchedule(ctx context.Context, id string, ops []schedule.Op) (*models.EmployeeSchedule, error)
}

// DefaultStaffService is the production implementation.
type DefaultStaffService struct {
	Employees employeeRepo.EmployeeRepository
	Services  serviceRepo.ServiceRepository
}

func (s *DefaultStaffService) List(ctx context.Context) ([]models.EmployeeView, error) {
	employees, err := s.Employees.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	services, err := s.Services.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	names := make(map[string]string, len(services))
	for _, svc := range services {
		names[svc.ID] = svc.Name
	}

	views := make([]models.EmployeeView, 0, len(employees))
	for _, e := range employees {
		sched := schedule.Normalize(e.Schedule)
		e.Schedule = &sched

		serviceNames := make([]string, 0, len(e.Services))
		for _, id := range e.Services {
			if n, ok := names[id]; ok {
				serviceNames = append(serviceNames, n)
			}
		}
		views = append(views, models.EmployeeView{
			Employee:       e,
			ServiceNames:   serviceNames,
			WorkingDays:    schedule.WorkingDaysCount(sched),
			ExceptionCount: schedule.ExceptionsCount(sched),
		})
	}
	return views, nil
}

func (s *DefaultStaffService) Save(ctx context.Context, in models.EmployeeInput) ([]models.EmployeeView, error) {
	if in.ID != "" {
		existing, err := s.Employees.GetByID(ctx, in.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch employee %s: %w", in.ID, err)
		}
		existing.Name = in.Name
		existing.Email = in.Email
		existing.Phone = in.Phone
		existing.Role = in.Role
		if in.Active != nil {
			existing.Active = *in.Active
		}
		if in.Services != nil {
			existing.Services = in.Services
		}
		if err := s.Employees.Update(ctx, *existing); err != nil {
			return nil, fmt.Errorf("failed to update employee %s: %w", in.ID, err)
		}
		return s.List(ctx)
	}

	sched := schedule.DefaultSchedule()
	employee := models.Employee{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Role:     in.Role,
		Active:   in.Active == nil || *in.Active,
		Services: in.Services,
		Schedule: &sched,
	}
	if _, err := s.Employees.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return s.List(ctx)
}

func (s *DefaultStaffService) Delete(ctx context.Context, id string) ([]models.EmployeeView, error) {
	if err := s.Employees.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete employee %s: %w", id, err)
	}
	return s.List(ctx)
}

func (s *DefaultStaffService) SetActive(ctx context.Context, id string, active bool) ([]models.EmployeeView, error) {
	if err := s.Employees.SetActive(ctx, id, active); err != nil {
		return nil, fmt.Errorf("failed to update employee %s: %w", id, err)
	}
	return s.List(ctx)
}

// SetServices replaces the employee's service set. Ids are stored as given, without
// checking that the services exist.
func (s *DefaultStaffService) SetServices(ctx context.Context, id string, serviceIDs []string) ([]models.EmployeeView, error) {
	seen := make(map[string]bool, len(serviceIDs))
	unique := make([]string, 0, len(serviceIDs))
	for _, sid := range serviceIDs {
		if !seen[sid] {
			seen[sid] = true
			unique = append(unique, sid)
		}
	}
	if err := s.Employees.SetServices(ctx, id, unique); err != nil {
		return nil, fmt.Errorf("failed to update services of employee %s: %w", id, err)
	}
	return s.List(ctx)
}
