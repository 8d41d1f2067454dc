package bookingRepo

import (
	"context"

	"bookingadmin/database/docstore"
)

// RawBooking is a booking document as stored. Bookings are written by the booking widget in
// several historical shapes, so they are kept untyped until normalized by the booking service.
type RawBooking struct {
	ID   string
	Data map[string]interface{}
}

type BookingRepository interface {
	GetAllRaw(ctx context.Context) ([]RawBooking, error)
	GetRaw(ctx context.Context, id string) (*RawBooking, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	// Watch signals after every change to the bookings collection.
	Watch(ctx context.Context) (<-chan struct{}, error)
}

type storeBookingRepo struct {
	store docstore.Store
}

func NewBookingRepo(store docstore.Store) BookingRepository {
	return &storeBookingRepo{store: store}
}
