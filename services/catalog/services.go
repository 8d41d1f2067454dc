package catalog

import (
	"context"
	"fmt"
	"math"
	"sort"

	"bookingadmin/database/docstore"
	"bookingadmin/models"
	"bookingadmin/services/ordering"
)

func serviceID(s models.ServiceView) string { return s.ID }

// ListServices returns services with their category name, sorted by the category's order and
// then by the service's own order. Services without a known category sort last.
func (s *DefaultCatalogService) ListServices(ctx context.Context) ([]models.ServiceView, error) {
	categories, err := s.Categories.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	services, err := s.Services.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	return SortServices(categories, services), nil
}

// SortServices resolves category names and orders the services for display.
func SortServices(categories []models.Category, services []models.Service) []models.ServiceView {
	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	rank := func(v models.ServiceView) int {
		if c, ok := byID[v.CategoryID]; ok {
			return c.Order
		}
		return math.MaxInt
	}

	views := make([]models.ServiceView, 0, len(services))
	for _, svc := range services {
		name := NoCategory
		if c, ok := byID[svc.CategoryID]; ok && c.Name != "" {
			name = c.Name
		}
		views = append(views, models.ServiceView{Service: svc, CategoryName: name})
	}
	sort.SliceStable(views, func(i, j int) bool {
		ri, rj := rank(views[i]), rank(views[j])
		if ri != rj {
			return ri < rj
		}
		return views[i].Order < views[j].Order
	})
	return views
}

func (s *DefaultCatalogService) SaveService(ctx context.Context, in models.ServiceInput) ([]models.ServiceView, error) {
	if in.ID != "" {
		existing, err := s.Services.GetByID(ctx, in.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch service %s: %w", in.ID, err)
		}
		existing.Name = in.Name
		existing.Description = in.Description
		existing.Duration = in.Duration
		existing.Price = in.Price
		existing.CategoryID = in.CategoryID
		if in.Active != nil {
			existing.Active = *in.Active
		}
		if in.Order != nil {
			existing.Order = *in.Order
		}
		if err := s.Services.Update(ctx, *existing); err != nil {
			return nil, fmt.Errorf("failed to update service %s: %w", in.ID, err)
		}
		return s.ListServices(ctx)
	}

	current, err := s.Services.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	service := models.Service{
		Name:        in.Name,
		Description: in.Description,
		Duration:    in.Duration,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		Active:      in.Active == nil || *in.Active,
		Order:       len(current),
	}
	if _, err := s.Services.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return s.ListServices(ctx)
}

func (s *DefaultCatalogService) DeleteService(ctx context.Context, id string) ([]models.ServiceView, error) {
	if err := s.Services.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete service %s: %w", id, err)
	}
	return s.ListServices(ctx)
}

func (s *DefaultCatalogService) SetServiceActive(ctx context.Context, id string, active bool) ([]models.ServiceView, error) {
	if err := s.Services.SetActive(ctx, id, active); err != nil {
		return nil, fmt.Errorf("failed to update service %s: %w", id, err)
	}
	return s.ListServices(ctx)
}

// MoveService reorders within the displayed list and writes every service's position back.
func (s *DefaultCatalogService) MoveService(ctx context.Context, id string, dir ordering.Direction) ([]models.ServiceView, error) {
	services, err := s.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	index := ordering.IndexOf(services, serviceID, id)
	if index < 0 {
		return nil, fmt.Errorf("service %s: %w", id, docstore.ErrNotFound)
	}
	moved, ok := ordering.Move(services, index, dir)
	if !ok {
		return services, nil
	}
	if err := s.Services.SetOrders(ctx, ordering.Resequence(moved, serviceID)); err != nil {
		return nil, fmt.Errorf("failed to reorder services: %w", err)
	}
	return s.ListServices(ctx)
}
