package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"bookingadmin/database/docstore"
)

func decode(doc docstore.Document) (RawBooking, error) {
	data := map[string]interface{}{}
	if err := doc.DataTo(&data); err != nil {
		return RawBooking{}, fmt.Errorf("failed to decode booking %s: %w", doc.ID(), err)
	}
	return RawBooking{ID: doc.ID(), Data: data}, nil
}

func (r *storeBookingRepo) GetAllRaw(ctx context.Context) ([]RawBooking, error) {
	docs, err := r.store.List(ctx, docstore.Bookings)
	if err != nil {
		return nil, err
	}
	bookings := make([]RawBooking, 0, len(docs))
	for _, doc := range docs {
		b, err := decode(doc)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *storeBookingRepo) GetRaw(ctx context.Context, id string) (*RawBooking, error) {
	doc, err := r.store.Get(ctx, docstore.Bookings, id)
	if err != nil {
		return nil, err
	}
	b, err := decode(doc)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateStatus only touches status and updatedAt; the widget-owned fields stay as written.
func (r *storeBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.store.Update(ctx, docstore.Bookings, id, map[string]interface{}{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	})
}

func (r *storeBookingRepo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, docstore.Bookings, id)
}

func (r *storeBookingRepo) Watch(ctx context.Context) (<-chan struct{}, error) {
	return r.store.Watch(ctx, docstore.Bookings)
}
