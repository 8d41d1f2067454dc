package staff

import (
	"context"
	"errors"
	"testing"

	"bookingadmin/database/docstore"
	employeeRepo "bookingadmin/database/repository/employee"
	serviceRepo "bookingadmin/database/repository/service"
	"bookingadmin/models"
	"bookingadmin/services/schedule"
)

func newTestStaff(t *testing.T) (*DefaultStaffService, docstore.Store) {
	t.Helper()
	store := docstore.NewMemoryStore()
	ctx := context.Background()
	if err := store.Set(ctx, docstore.Services, "cut", models.Service{Name: "Haircut"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, docstore.Services, "facial", models.Service{Name: "Basic Facial"}); err != nil {
		t.Fatal(err)
	}
	return &DefaultStaffService{
		Employees: employeeRepo.NewEmployeeRepo(store),
		Services:  serviceRepo.NewServiceRepo(store),
	}, store
}

func TestSaveNewEmployeeGetsDefaultSchedule(t *testing.T) {
	svc, _ := newTestStaff(t)
	list, err := svc.Save(context.Background(), models.EmployeeInput{Name: "John Smith", Role: "Hairstylist", Services: []string{"cut", "gone"}})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d employees", len(list))
	}
	e := list[0]
	if !e.Active || e.WorkingDays != 5 || e.ExceptionCount != 0 {
		t.Errorf("new employee = %+v", e)
	}
	if len(e.ServiceNames) != 1 || e.ServiceNames[0] != "Haircut" {
		t.Errorf("ServiceNames = %v", e.ServiceNames)
	}
}

func TestListNormalizesLegacySchedules(t *testing.T) {
	svc, store := newTestStaff(t)
	ctx := context.Background()
	_ = store.Set(ctx, docstore.Employees, "noschedule", map[string]interface{}{"name": "Legacy"})
	_ = store.Set(ctx, docstore.Employees, "partial", map[string]interface{}{
		"name": "Partial",
		"schedule": map[string]interface{}{
			"weeklySchedule": map[string]interface{}{
				"sunday": map[string]interface{}{"isWorking": true, "timeSlots": []interface{}{map[string]interface{}{"start": "10:00", "end": "12:00"}}},
			},
			"exceptions": []interface{}{
				map[string]interface{}{"id": "x", "startDate": "2024-01-01", "endDate": "2024-01-02"},
			},
		},
	})

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list[0].WorkingDays != 5 || !list[0].Active {
		t.Errorf("employee without schedule = %+v", list[0])
	}
	if list[1].WorkingDays != 1 || list[1].ExceptionCount != 2 {
		t.Errorf("partial schedule counts = %d working, %d exceptions", list[1].WorkingDays, list[1].ExceptionCount)
	}
	if len(list[1].Schedule.WeeklySchedule) != len(models.Weekdays) {
		t.Error("missing weekdays not filled")
	}
}

func TestEditSchedulePersists(t *testing.T) {
	svc, _ := newTestStaff(t)
	ctx := context.Background()
	list, _ := svc.Save(ctx, models.EmployeeInput{Name: "Sarah Johnson"})
	id := list[0].ID

	got, err := svc.EditSchedule(ctx, id, []schedule.Op{
		{Op: schedule.OpToggleDay, Day: "saturday"},
		{Op: schedule.OpAddException, Exception: &schedule.ExceptionInput{Date: "2024-12-25"}},
	})
	if err != nil {
		t.Fatalf("EditSchedule: %v", err)
	}
	if !got.WeeklySchedule["saturday"].IsWorking || len(got.Exceptions) != 1 {
		t.Errorf("returned schedule = %+v", got)
	}

	stored, err := svc.GetSchedule(ctx, id)
	if err != nil {
		t.Fatalf("GetSchedule: %v", err)
	}
	if !stored.WeeklySchedule["saturday"].IsWorking || len(stored.Exceptions) != 1 {
		t.Errorf("stored schedule = %+v", stored)
	}

	_, err = svc.EditSchedule(ctx, id, []schedule.Op{
		{Op: schedule.OpToggleDay, Day: "sunday"},
		{Op: schedule.OpRemoveSlot, Day: "sunday", Index: 9},
	})
	if !errors.Is(err, schedule.ErrSlotIndex) {
		t.Fatalf("failing ops: %v", err)
	}
	stored, _ = svc.GetSchedule(ctx, id)
	if stored.WeeklySchedule["sunday"].IsWorking {
		t.Error("failed op batch was saved")
	}
}

func TestReplaceScheduleAndMissingEmployee(t *testing.T) {
	svc, _ := newTestStaff(t)
	ctx := context.Background()
	list, _ := svc.Save(ctx, models.EmployeeInput{Name: "A"})

	got, err := svc.ReplaceSchedule(ctx, list[0].ID, models.EmployeeSchedule{
		WeeklySchedule: models.WeeklySchedule{"monday": {IsWorking: true, TimeSlots: []models.TimeSlot{{Start: "08:00", End: "09:00"}}}},
		Exceptions:     []models.Exception{{ID: "e2", Date: "2024-02-01"}, {ID: "e1", Date: "2024-01-01"}},
	})
	if err != nil {
		t.Fatalf("ReplaceSchedule: %v", err)
	}
	if schedule.WorkingDaysCount(*got) != 1 || got.Exceptions[0].ID != "e1" {
		t.Errorf("replaced schedule = %+v", got)
	}

	if _, err := svc.GetSchedule(ctx, "nobody"); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("GetSchedule missing: %v", err)
	}
	if _, err := svc.ReplaceSchedule(ctx, "nobody", models.EmployeeSchedule{}); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("ReplaceSchedule missing: %v", err)
	}
}

func TestSetServicesAndActive(t *testing.T) {
	svc, _ := newTestStaff(t)
	ctx := context.Background()
	list, _ := svc.Save(ctx, models.EmployeeInput{Name: "A"})
	id := list[0].ID

	list, err := svc.SetServices(ctx, id, []string{"facial", "cut", "facial"})
	if err != nil {
		t.Fatalf("SetServices: %v", err)
	}
	if len(list[0].Services) != 2 || len(list[0].ServiceNames) != 2 {
		t.Errorf("services = %v / %v", list[0].Services, list[0].ServiceNames)
	}

	list, err = svc.SetActive(ctx, id, false)
	if err != nil || list[0].Active {
		t.Fatalf("SetActive: %v %+v", err, list[0])
	}

	list, err = svc.Delete(ctx, id)
	if err != nil || len(list) != 0 {
		t.Fatalf("Delete: %v %d", err, len(list))
	}
}
