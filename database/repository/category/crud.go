package categoryRepo

import (
	"context"
	"fmt"
	"time"

	"bookingadmin/database/docstore"
	"bookingadmin/models"

	"github.com/google/uuid"
)

func decode(doc docstore.Document) (models.Category, error) {
	var c models.Category
	if err := doc.DataTo(&c); err != nil {
		return c, fmt.Errorf("failed to decode category %s: %w", doc.ID(), err)
	}
	c.ID = doc.ID()
	c.Active = docstore.BoolField(doc, "active", true)
	return c, nil
}

// GetAll returns every category in storage order.
func (r *storeCategoryRepo) GetAll(ctx context.Context) ([]models.Category, error) {
	docs, err := r.store.List(ctx, docstore.Categories)
	if err != nil {
		return nil, err
	}
	categories := make([]models.Category, 0, len(docs))
	for _, doc := range docs {
		c, err := decode(doc)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *storeCategoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	doc, err := r.store.Get(ctx, docstore.Categories, id)
	if err != nil {
		return nil, err
	}
	c, err := decode(doc)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new category; an empty ID is replaced by a fresh UUID.
func (r *storeCategoryRepo) Create(ctx context.Context, category models.Category) (*models.Category, error) {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	if err := r.store.Create(ctx, docstore.Categories, category.ID, category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update rewrites the editable fields of an existing category.
func (r *storeCategoryRepo) Update(ctx context.Context, category models.Category) error {
	return r.store.Update(ctx, docstore.Categories, category.ID, map[string]interface{}{
		"name":        category.Name,
		"description": category.Description,
		"active":      category.Active,
		"order":       category.Order,
		"updatedAt":   time.Now().UTC(),
	})
}

func (r *storeCategoryRepo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, docstore.Categories, id)
}

func (r *storeCategoryRepo) SetActive(ctx context.Context, id string, active bool) error {
	return r.store.Update(ctx, docstore.Categories, id, map[string]interface{}{
		"active":    active,
		"updatedAt": time.Now().UTC(),
	})
}

// SetOrders writes each category's order in one batch. Documents are written independently.
func (r *storeCategoryRepo) SetOrders(ctx context.Context, orders map[string]int) error {
	updates := make(map[string]map[string]interface{}, len(orders))
	for id, order := range orders {
		updates[id] = map[string]interface{}{"order": order}
	}
	return r.store.UpdateMany(ctx, docstore.Categories, updates)
}
