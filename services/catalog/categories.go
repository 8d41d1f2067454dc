package catalog

import (
	"context"
	"fmt"
	"sort"

	"bookingadmin/database/docstore"
	"bookingadmin/models"
	"bookingadmin/services/ordering"
)

func categoryID(c models.Category) string { return c.ID }

// ListCategories returns categories by ascending order.
func (s *DefaultCatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.Categories.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	sort.SliceStable(categories, func(i, j int) bool { return categories[i].Order < categories[j].Order })
	return categories, nil
}

func (s *DefaultCatalogService) SaveCategory(ctx context.Context, in models.CategoryInput) ([]models.Category, error) {
	if in.ID != "" {
		existing, err := s.Categories.GetByID(ctx, in.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch category %s: %w", in.ID, err)
		}
		existing.Name = in.Name
		existing.Description = in.Description
		if in.Active != nil {
			existing.Active = *in.Active
		}
		if in.Order != nil {
			existing.Order = *in.Order
		}
		if err := s.Categories.Update(ctx, *existing); err != nil {
			return nil, fmt.Errorf("failed to update category %s: %w", in.ID, err)
		}
		return s.ListCategories(ctx)
	}

	current, err := s.Categories.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	category := models.Category{
		Name:        in.Name,
		Description: in.Description,
		Active:      in.Active == nil || *in.Active,
		Order:       len(current),
	}
	if _, err := s.Categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return s.ListCategories(ctx)
}

// DeleteCategory leaves services pointing at the deleted id; they show NoCategory.
func (s *DefaultCatalogService) DeleteCategory(ctx context.Context, id string) ([]models.Category, error) {
	if err := s.Categories.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	return s.ListCategories(ctx)
}

func (s *DefaultCatalogService) SetCategoryActive(ctx context.Context, id string, active bool) ([]models.Category, error) {
	if err := s.Categories.SetActive(ctx, id, active); err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", id, err)
	}
	return s.ListCategories(ctx)
}

// MoveCategory swaps the category with its neighbour and rewrites every category's order
// to its new position. Moving past either end changes nothing.
func (s *DefaultCatalogService) MoveCategory(ctx context.Context, id string, dir ordering.Direction) ([]models.Category, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	index := ordering.IndexOf(categories, categoryID, id)
	if index < 0 {
		return nil, fmt.Errorf("category %s: %w", id, docstore.ErrNotFound)
	}
	moved, ok := ordering.Move(categories, index, dir)
	if !ok {
		return categories, nil
	}
	if err := s.Categories.SetOrders(ctx, ordering.Resequence(moved, categoryID)); err != nil {
		return nil, fmt.Errorf("failed to reorder categories: %w", err)
	}
	return s.ListCategories(ctx)
}
