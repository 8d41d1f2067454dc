package staff

import (
	"context"
	"fmt"

	"bookingadmin/models"
	"bookingadmin/services/schedule"
)

// GetSchedule returns the normalized schedule, exceptions in date order.
func (s *DefaultStaffService) GetSchedule(ctx context.Context, id string) (*models.EmployeeSchedule, error) {
	employee, err := s.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee %s: %w", id, err)
	}
	sched := schedule.NewEditor(employee.Schedule, nil).Schedule()
	return &sched, nil
}

// ReplaceSchedule normalizes and stores a complete schedule sent by the editor screen.
func (s *DefaultStaffService) ReplaceSchedule(ctx context.Context, id string, in models.EmployeeSchedule) (*models.EmployeeSchedule, error) {
	if _, err := s.Employees.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to fetch employee %s: %w", id, err)
	}
	editor := schedule.NewEditor(&in, s.saver(id))
	if err := editor.Save(ctx); err != nil {
		return nil, err
	}
	sched := editor.Schedule()
	return &sched, nil
}

func (s *DefaultStaffService) EditSchedule(ctx context.Context, id string, ops []schedule.Op) (*models.EmployeeSchedule, error) {
	employee, err := s.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employee %s: %w", id, err)
	}
	editor := schedule.NewEditor(employee.Schedule, s.saver(id))
	if err := schedule.ApplyOps(editor, ops); err != nil {
		return nil, err
	}
	if err := editor.Save(ctx); err != nil {
		return nil, err
	}
	sched := editor.Schedule()
	return &sched, nil
}

func (s *DefaultStaffService) saver(id string) schedule.SaveFunc {
	return func(ctx context.Context, sched models.EmployeeSchedule) error {
		if err := s.Employees.SetSchedule(ctx, id, sched); err != nil {
			return fmt.Errorf("failed to save schedule of employee %s: %w", id, err)
		}
		return nil
	}
}
