package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	bookingRepo "bookingadmin/database/repository/booking"
	clientRepo "bookingadmin/database/repository/client"
	employeeRepo "bookingadmin/database/repository/employee"
	serviceRepo "bookingadmin/database/repository/service"
	"bookingadmin/models"

	"golang.org/x/sync/errgroup"
)

var ErrInvalidStatus = errors.New("invalid booking status")

// Dashboard is the payload of the dashboard screen and of every realtime push.
type Dashboard struct {
	Stats    models.DashboardStats `json:"stats"`
	Bookings []models.Booking      `json:"bookings"`
}

// BookingService is the admin view over bookings. Bookings are created by the booking widget;
// the admin can only change their status or delete them.
type BookingService interface {
	// List returns every booking, newest first.
	List(ctx context.Context) ([]models.Booking, error)
	// ListByProfessional returns every employee with their bookings grouped by date.
	ListByProfessional(ctx context.Context) ([]models.ProfessionalBookings, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	// UpdateStatus writes the status and returns the booking as re-read from the store.
	UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
	Dashboard(ctx context.Context) (*Dashboard, error)
	// Watch signals after every change to the bookings collection.
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Services  serviceRepo.ServiceRepository
	Employees employeeRepo.EmployeeRepository
	Clients   clientRepo.ClientRepository
	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// lookups loads the services and clients collections concurrently.
func (s *DefaultBookingService) lookups(ctx context.Context) (Lookups, error) {
	var l Lookups
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		services, err := s.Services.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to load services: %w", err)
		}
		l.Services = make(map[string]models.Service, len(services))
		for _, svc := range services {
			l.Services[svc.ID] = svc
		}
		return nil
	})
	g.Go(func() error {
		clients, err := s.Clients.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to load clients: %w", err)
		}
		l.Clients = clients
		return nil
	})
	if err := g.Wait(); err != nil {
		return Lookups{}, err
	}
	return l, nil
}

func (s *DefaultBookingService) List(ctx context.Context) ([]models.Booking, error) {
	var (
		raw []bookingRepo.RawBooking
		l   Lookups
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = s.Bookings.GetAllRaw(gctx)
		if err != nil {
			return fmt.Errorf("failed to load bookings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		l, err = s.lookups(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return normalizeAll(raw, l), nil
}

func normalizeAll(raw []bookingRepo.RawBooking, l Lookups) []models.Booking {
	bookings := make([]models.Booking, 0, len(raw))
	for _, r := range raw {
		bookings = append(bookings, Normalize(r.ID, r.Data, l))
	}
	// Newest first; bookings without createdAt go last.
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings
}

func (s *DefaultBookingService) ListByProfessional(ctx context.Context) ([]models.ProfessionalBookings, error) {
	var (
		employees []models.Employee
		bookings  []models.Booking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.Employees.GetAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		bookings, err = s.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return GroupByProfessional(employees, bookings), nil
}

// GroupByProfessional files each booking under its employee and date, ordered by start time
// within a date. Bookings whose professional is not a known employee are left out.
func GroupByProfessional(employees []models.Employee, bookings []models.Booking) []models.ProfessionalBookings {
	out := make([]models.ProfessionalBookings, len(employees))
	index := make(map[string]int, len(employees))
	for i, e := range employees {
		out[i] = models.ProfessionalBookings{
			ID:       e.ID,
			Name:     e.Name,
			Email:    e.Email,
			Active:   e.Active,
			Bookings: map[string][]models.Booking{},
		}
		index[e.ID] = i
	}
	for _, b := range bookings {
		i, ok := index[b.ProfessionalID]
		if !ok {
			continue
		}
		out[i].Bookings[b.Date] = append(out[i].Bookings[b.Date], b)
	}
	for _, p := range out {
		for _, day := range p.Bookings {
			sort.SliceStable(day, func(a, b int) bool { return startTime(day[a]) < startTime(day[b]) })
		}
	}
	return out
}

func (s *DefaultBookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	var (
		raw *bookingRepo.RawBooking
		l   Lookups
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = s.Bookings.GetRaw(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		l, err = s.lookups(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	b := Normalize(raw.ID, raw.Data, l)
	return &b, nil
}

func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	if !models.ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if err := s.Bookings.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *DefaultBookingService) Delete(ctx context.Context, id string) error {
	return s.Bookings.Delete(ctx, id)
}

func (s *DefaultBookingService) Dashboard(ctx context.Context) (*Dashboard, error) {
	bookings, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Stats: Stats(bookings, s.now()), Bookings: bookings}, nil
}

func (s *DefaultBookingService) Watch(ctx context.Context) (<-chan struct{}, error) {
	return s.Bookings.Watch(ctx)
}

// Stats counts all, pending and today's bookings. Today is the UTC date of now.
func Stats(bookings []models.Booking, now time.Time) models.DashboardStats {
	today := now.UTC().Format(dateLayout)
	stats := models.DashboardStats{TotalBookings: len(bookings)}
	for _, b := range bookings {
		if b.Status == models.StatusPending {
			stats.PendingBookings++
		}
		if b.Date == today {
			stats.TodayBookings++
		}
	}
	return stats
}
