package serviceRepo

import (
	"context"
	"fmt"
	"time"

	"bookingadmin/database/docstore"
	"bookingadmin/models"

	"github.com/google/uuid"
)

func decode(doc docstore.Document) (models.Service, error) {
	var s models.Service
	if err := doc.DataTo(&s); err != nil {
		return s, fmt.Errorf("failed to decode service %s: %w", doc.ID(), err)
	}
	s.ID = doc.ID()
	s.Active = docstore.BoolField(doc, "active", true)
	return s, nil
}

func (r *storeServiceRepo) GetAll(ctx context.Context) ([]models.Service, error) {
	docs, err := r.store.List(ctx, docstore.Services)
	if err != nil {
		return nil, err
	}
	services := make([]models.Service, 0, len(docs))
	for _, doc := range docs {
		s, err := decode(doc)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, nil
}

func (r *storeServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	doc, err := r.store.Get(ctx, docstore.Services, id)
	if err != nil {
		return nil, err
	}
	s, err := decode(doc)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *storeServiceRepo) Create(ctx context.Context, service models.Service) (*models.Service, error) {
	if service.ID == "" {
		service.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	service.CreatedAt = now
	service.UpdatedAt = now

	if err := r.store.Create(ctx, docstore.Services, service.ID, service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *storeServiceRepo) Update(ctx context.Context, service models.Service) error {
	return r.store.Update(ctx, docstore.Services, service.ID, map[string]interface{}{
		"name":        service.Name,
		"description": service.Description,
		"duration":    service.Duration,
		"price":       service.Price,
		"categoryId":  service.CategoryID,
		"active":      service.Active,
		"order":       service.Order,
		"updatedAt":   time.Now().UTC(),
	})
}

func (r *storeServiceRepo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, docstore.Services, id)
}

func (r *storeServiceRepo) SetActive(ctx context.Context, id string, active bool) error {
	return r.store.Update(ctx, docstore.Services, id, map[string]interface{}{
		"active":    active,
		"updatedAt": time.Now().UTC(),
	})
}

func (r *storeServiceRepo) SetOrders(ctx context.Context, orders map[string]int) error {
	updates := make(map[string]map[string]interface{}, len(orders))
	for id, order := range orders {
		updates[id] = map[string]interface{}{"order": order}
	}
	return r.store.UpdateMany(ctx, docstore.Services, updates)
}
