package clientRepo

import (
	"context"
	"fmt"

	"bookingadmin/database/docstore"
	"bookingadmin/models"
)

// ClientRepository reads the clients collection, which legacy bookings reference by clientId.
type ClientRepository interface {
	GetAll(ctx context.Context) (map[string]models.Client, error)
}

type storeClientRepo struct {
	store docstore.Store
}

func NewClientRepo(store docstore.Store) ClientRepository {
	return &storeClientRepo{store: store}
}

// GetAll returns every client keyed by id.
func (r *storeClientRepo) GetAll(ctx context.Context) (map[string]models.Client, error) {
	docs, err := r.store.List(ctx, docstore.Clients)
	if err != nil {
		return nil, err
	}
	clients := make(map[string]models.Client, len(docs))
	for _, doc := range docs {
		var c models.Client
		if err := doc.DataTo(&c); err != nil {
			return nil, fmt.Errorf("failed to decode client %s: %w", doc.ID(), err)
		}
		c.ID = doc.ID()
		clients[c.ID] = c
	}
	return clients, nil
}
