package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookingadmin/database/docstore"
	bookingRepo "bookingadmin/database/repository/booking"
	clientRepo "bookingadmin/database/repository/client"
	employeeRepo "bookingadmin/database/repository/employee"
	serviceRepo "bookingadmin/database/repository/service"
	"bookingadmin/models"
)

var fixedNow = time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*DefaultBookingService, docstore.Store) {
	t.Helper()
	ctx := context.Background()
	store := docstore.NewMemoryStore()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(store.Set(ctx, docstore.Services, "svc-cut", models.Service{Name: "Haircut", Duration: 30, Price: 30}))
	must(store.Set(ctx, docstore.Employees, "emp-1", models.Employee{Name: "John Smith", Active: true}))
	must(store.Set(ctx, docstore.Employees, "emp-2", models.Employee{Name: "Sarah Johnson", Active: true}))
	must(store.Set(ctx, docstore.Clients, "cl-1", models.Client{Name: "Ada Lovelace"}))

	must(store.Set(ctx, docstore.Bookings, "old", map[string]interface{}{
		"employeeId": "emp-1", "date": "2024-06-10", "timeSlot": map[string]interface{}{"start": "14:00", "end": "14:30"},
		"clientId": "cl-1", "serviceId": "svc-cut", "status": "pending",
		"createdAt": fixedNow.Add(-48 * time.Hour),
	}))
	must(store.Set(ctx, docstore.Bookings, "new", map[string]interface{}{
		"employeeId": "emp-1", "date": "2024-06-10", "timeSlot": "09:00 - 09:30",
		"clientName": "Alan Turing", "status": "confirmed",
		"createdAt": fixedNow.Add(-time.Hour),
	}))
	must(store.Set(ctx, docstore.Bookings, "orphan", map[string]interface{}{
		"employeeId": "nobody", "date": "2024-06-11", "time": "10:00",
	}))

	svc := &DefaultBookingService{
		Bookings:  bookingRepo.NewBookingRepo(store),
		Services:  serviceRepo.NewServiceRepo(store),
		Employees: employeeRepo.NewEmployeeRepo(store),
		Clients:   clientRepo.NewClientRepo(store),
		Now:       func() time.Time { return fixedNow },
	}
	return svc, store
}

func TestListNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	bookings, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var ids []string
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	if len(ids) != 3 || ids[0] != "new" || ids[1] != "old" || ids[2] != "orphan" {
		t.Errorf("order = %v, want [new old orphan]", ids)
	}
	if bookings[1].ClientName != "Ada Lovelace" || bookings[1].ServiceName != "Haircut" {
		t.Errorf("references not resolved: %+v", bookings[1])
	}
}

func TestListByProfessional(t *testing.T) {
	svc, _ := newTestService(t)
	pros, err := svc.ListByProfessional(context.Background())
	if err != nil {
		t.Fatalf("ListByProfessional: %v", err)
	}
	if len(pros) != 2 {
		t.Fatalf("got %d professionals, want 2", len(pros))
	}
	day := pros[0].Bookings["2024-06-10"]
	if len(day) != 2 || day[0].ID != "new" || day[1].ID != "old" {
		t.Errorf("emp-1 bookings = %+v, want [new old] by start time", day)
	}
	if len(pros[1].Bookings) != 0 {
		t.Errorf("emp-2 should have no bookings: %+v", pros[1].Bookings)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.UpdateStatus(ctx, "old", models.StatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if b.Status != models.StatusConfirmed || b.UpdatedAt.IsZero() {
		t.Errorf("re-read booking = %+v", b)
	}
	if b.ClientName != "Ada Lovelace" {
		t.Error("status update lost widget-owned fields")
	}

	if _, err := svc.UpdateStatus(ctx, "old", "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("invalid status: got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, "ghost", models.StatusConfirmed); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("missing booking: got %v", err)
	}
}

func TestDeleteAndDashboard(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	d, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	want := models.DashboardStats{TotalBookings: 3, PendingBookings: 2, TodayBookings: 2}
	if d.Stats != want {
		t.Errorf("Stats = %+v, want %+v", d.Stats, want)
	}

	if err := svc.Delete(ctx, "orphan"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, "orphan"); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("Get after delete: %v", err)
	}
	if err := svc.Delete(ctx, "orphan"); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("second Delete: %v", err)
	}
}
