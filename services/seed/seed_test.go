package seed

import (
	"context"
	"testing"

	"bookingadmin/database/docstore"
	"bookingadmin/models"

	"go.uber.org/zap"
)

func TestRunSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	s := NewSeeder(store, zap.NewNop())

	report, err := s.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Categories != 2 || report.Services != 2 || report.Employees != 2 {
		t.Fatalf("report = %+v", report)
	}

	categories, _ := s.Categories.GetAll(ctx)
	services, _ := s.Services.GetAll(ctx)
	employees, _ := s.Employees.GetAll(ctx)

	byName := map[string]string{}
	for _, c := range categories {
		byName[c.Name] = c.ID
	}
	for _, svc := range services {
		want := map[string]string{"Haircut": "Hair Care", "Basic Facial": "Skin Care"}[svc.Name]
		if svc.CategoryID != byName[want] {
			t.Errorf("%s linked to %q, want %s", svc.Name, svc.CategoryID, want)
		}
	}

	for _, e := range employees {
		if len(e.Services) != 1 || e.Schedule == nil {
			t.Fatalf("employee %s not linked: %+v", e.Name, e)
		}
		sat := e.Schedule.WeeklySchedule["saturday"]
		switch e.Name {
		case "John Smith":
			if !sat.IsWorking || sat.TimeSlots[0] != (models.TimeSlot{Start: "10:00", End: "15:00"}) {
				t.Errorf("John saturday = %+v", sat)
			}
		case "Sarah Johnson":
			if sat.IsWorking {
				t.Error("Sarah should be off on saturday")
			}
			if mon := e.Schedule.WeeklySchedule["monday"]; mon.TimeSlots[0].Start != "10:00" {
				t.Errorf("Sarah monday = %+v", mon)
			}
		}
		if sun := e.Schedule.WeeklySchedule["sunday"]; sun.IsWorking || sun.TimeSlots == nil {
			t.Errorf("%s sunday = %+v", e.Name, sun)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	s := NewSeeder(store, zap.NewNop())

	if _, err := s.Run(ctx); err != nil {
		t.Fatal(err)
	}
	report, err := s.Run(ctx)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if !report.Empty() {
		t.Errorf("second run wrote data: %+v", report)
	}
	if len(report.Existing) != 3 {
		t.Errorf("existing = %v", report.Existing)
	}
	categories, _ := s.Categories.GetAll(ctx)
	if len(categories) != 2 {
		t.Errorf("categories = %d", len(categories))
	}
}

func TestRunLeavesExistingCategories(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	s := NewSeeder(store, zap.NewNop())
	if _, err := s.Categories.Create(ctx, models.Category{Name: "Nails"}); err != nil {
		t.Fatal(err)
	}

	report, err := s.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !report.Empty() {
		t.Errorf("seeded despite existing categories: %+v", report)
	}
}
