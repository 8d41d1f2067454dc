// Package seed populates an empty store with the sample catalog and staff the booking
// widget needs to render.
package seed

import (
	"context"
	"fmt"

	"bookingadmin/database/docstore"
	categoryRepo "bookingadmin/database/repository/category"
	employeeRepo "bookingadmin/database/repository/employee"
	serviceRepo "bookingadmin/database/repository/service"
	"bookingadmin/models"

	"go.uber.org/zap"
)

// Report lists what a run found and wrote.
type Report struct {
	Existing   []string `json:"existing"`
	Categories int      `json:"categories"`
	Services   int      `json:"services"`
	Employees  int      `json:"employees"`
}

// Empty reports whether the run wrote nothing.
func (r Report) Empty() bool {
	return r.Categories == 0 && r.Services == 0 && r.Employees == 0
}

type hours struct{ start, end string }

type sampleEmployee struct {
	employee models.Employee
	hours    map[string]hours
	service  int
}

var sampleCategories = []models.Category{
	{Name: "Hair Care", Description: "All hair related services", Active: true, Order: 0},
	{Name: "Skin Care", Description: "Facial and skin treatments", Active: true, Order: 1},
}

// Each sample service belongs to the category at the same index.
var sampleServices = []models.Service{
	{Name: "Haircut", Description: "Basic haircut service", Duration: 30, Price: 30, Active: true},
	{Name: "Basic Facial", Description: "Cleansing and moisturizing facial", Duration: 45, Price: 50, Active: true},
}

var sampleEmployees = []sampleEmployee{
	{
		employee: models.Employee{Name: "John Smith", Email: "john@example.com", Phone: "+1234567890", Role: "Hairstylist", Active: true},
		hours: map[string]hours{
			"monday": {"09:00", "17:00"}, "tuesday": {"09:00", "17:00"}, "wednesday": {"09:00", "17:00"},
			"thursday": {"09:00", "17:00"}, "friday": {"09:00", "17:00"}, "saturday": {"10:00", "15:00"},
		},
		service: 0,
	},
	{
		employee: models.Employee{Name: "Sarah Johnson", Email: "sarah@example.com", Phone: "+1234567891", Role: "Esthetician", Active: true},
		hours: map[string]hours{
			"monday": {"10:00", "18:00"}, "tuesday": {"10:00", "18:00"}, "wednesday": {"10:00", "18:00"},
			"thursday": {"10:00", "18:00"}, "friday": {"10:00", "18:00"},
		},
		service: 1,
	},
}

// WeeklyFromHours turns per-day opening hours into a schedule with one slot per working day.
// Days absent from h are off.
func WeeklyFromHours(h map[string]hours) models.EmployeeSchedule {
	weekly := make(models.WeeklySchedule, len(models.Weekdays))
	for _, day := range models.Weekdays {
		ds := models.DaySchedule{TimeSlots: []models.TimeSlot{}}
		if wh, ok := h[day]; ok {
			ds.IsWorking = true
			ds.TimeSlots = []models.TimeSlot{{Start: wh.start, End: wh.end}}
		}
		weekly[day] = ds
	}
	return models.EmployeeSchedule{WeeklySchedule: weekly, Exceptions: []models.Exception{}}
}

// Seeder writes the sample data. Services are only created alongside fresh categories and
// employees alongside fresh services, so existing data is never cross-linked to samples.
type Seeder struct {
	Store      docstore.Store
	Categories categoryRepo.CategoryRepository
	Services   serviceRepo.ServiceRepository
	Employees  employeeRepo.EmployeeRepository
	Logger     *zap.Logger
}

func NewSeeder(store docstore.Store, logger *zap.Logger) *Seeder {
	return &Seeder{
		Store:      store,
		Categories: categoryRepo.NewCategoryRepo(store),
		Services:   serviceRepo.NewServiceRepo(store),
		Employees:  employeeRepo.NewEmployeeRepo(store),
		Logger:     logger,
	}
}

// Run is safe to repeat: a collection that already holds documents is left alone.
func (s *Seeder) Run(ctx context.Context) (*Report, error) {
	report := &Report{Existing: []string{}}
	existing := make(map[string]bool, len(docstore.SeedCollections))
	for _, name := range docstore.SeedCollections {
		ok, err := s.Store.Exists(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to check collection %s: %w", name, err)
		}
		if ok {
			existing[name] = true
			report.Existing = append(report.Existing, name)
		}
	}
	s.Logger.Info("Checked collections", zap.Strings("existing", report.Existing))

	if existing[docstore.Categories] {
		return report, nil
	}
	categoryIDs := make([]string, 0, len(sampleCategories))
	for _, c := range sampleCategories {
		created, err := s.Categories.Create(ctx, c)
		if err != nil {
			return report, fmt.Errorf("failed to create category %s: %w", c.Name, err)
		}
		categoryIDs = append(categoryIDs, created.ID)
		report.Categories++
	}

	if existing[docstore.Services] {
		return report, nil
	}
	serviceIDs := make([]string, 0, len(sampleServices))
	for i, svc := range sampleServices {
		svc.CategoryID = categoryIDs[i]
		created, err := s.Services.Create(ctx, svc)
		if err != nil {
			return report, fmt.Errorf("failed to create service %s: %w", svc.Name, err)
		}
		serviceIDs = append(serviceIDs, created.ID)
		report.Services++
	}

	if existing[docstore.Employees] {
		return report, nil
	}
	for _, sample := range sampleEmployees {
		e := sample.employee
		e.Services = []string{serviceIDs[sample.service]}
		sched := WeeklyFromHours(sample.hours)
		e.Schedule = &sched
		if _, err := s.Employees.Create(ctx, e); err != nil {
			return report, fmt.Errorf("failed to create employee %s: %w", e.Name, err)
		}
		report.Employees++
	}

	s.Logger.Info("Seeded sample data",
		zap.Int("categories", report.Categories),
		zap.Int("services", report.Services),
		zap.Int("employees", report.Employees))
	return report, nil
}
