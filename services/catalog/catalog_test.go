package catalog

import (
	"context"
	"errors"
	"testing"

	"bookingadmin/database/docstore"
	categoryRepo "bookingadmin/database/repository/category"
	serviceRepo "bookingadmin/database/repository/service"
	"bookingadmin/models"
	"bookingadmin/services/ordering"
)

func newTestCatalog() (*DefaultCatalogService, docstore.Store) {
	store := docstore.NewMemoryStore()
	return &DefaultCatalogService{
		Categories: categoryRepo.NewCategoryRepo(store),
		Services:   serviceRepo.NewServiceRepo(store),
	}, store
}

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = name(it)
	}
	return out
}

func categoryName(c models.Category) string { return c.Name }
func serviceName(s models.ServiceView) string { return s.Name }

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSaveCategoryAppendsAndDefaultsActive(t *testing.T) {
	svc, _ := newTestCatalog()
	ctx := context.Background()

	for _, n := range []string{"Hair", "Skin", "Nails"} {
		if _, err := svc.SaveCategory(ctx, models.CategoryInput{Name: n}); err != nil {
			t.Fatalf("SaveCategory(%s): %v", n, err)
		}
	}
	list, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range list {
		if c.Order != i || !c.Active {
			t.Errorf("category %s: order=%d active=%v", c.Name, c.Order, c.Active)
		}
	}

	inactive := false
	list, err = svc.SaveCategory(ctx, models.CategoryInput{ID: list[1].ID, Name: "Skin Care", Active: &inactive})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if list[1].Name != "Skin Care" || list[1].Active || list[1].Order != 1 {
		t.Errorf("updated category = %+v", list[1])
	}

	if _, err := svc.SaveCategory(ctx, models.CategoryInput{ID: "missing", Name: "x"}); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("update missing: got %v", err)
	}
}

func TestLegacyCategoryWithoutActiveIsActive(t *testing.T) {
	svc, store := newTestCatalog()
	ctx := context.Background()
	_ = store.Set(ctx, docstore.Categories, "legacy", map[string]interface{}{"name": "Old", "order": 0})

	list, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || !list[0].Active || list[0].ID != "legacy" {
		t.Errorf("legacy category = %+v", list)
	}
}

func TestMoveCategory(t *testing.T) {
	svc, _ := newTestCatalog()
	ctx := context.Background()
	for _, n := range []string{"A", "B", "C"} {
		_, _ = svc.SaveCategory(ctx, models.CategoryInput{Name: n})
	}
	list, _ := svc.ListCategories(ctx)

	got, err := svc.MoveCategory(ctx, list[0].ID, ordering.Up)
	if err != nil {
		t.Fatalf("move top up: %v", err)
	}
	if !equal(names(got, categoryName), []string{"A", "B", "C"}) {
		t.Errorf("move top up changed order: %v", names(got, categoryName))
	}

	got, err = svc.MoveCategory(ctx, list[2].ID, ordering.Up)
	if err != nil {
		t.Fatalf("move C up: %v", err)
	}
	if !equal(names(got, categoryName), []string{"A", "C", "B"}) {
		t.Errorf("after moving C up: %v", names(got, categoryName))
	}
	for i, c := range got {
		if c.Order != i {
			t.Errorf("%s order = %d, want %d", c.Name, c.Order, i)
		}
	}

	if _, err := svc.MoveCategory(ctx, "missing", ordering.Down); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("move missing: %v", err)
	}
}

func TestSortServices(t *testing.T) {
	categories := []models.Category{
		{ID: "skin", Name: "Skin", Order: 1},
		{ID: "hair", Name: "Hair", Order: 0},
	}
	services := []models.Service{
		{ID: "1", Name: "Facial", CategoryID: "skin", Order: 0},
		{ID: "2", Name: "Orphan", CategoryID: "deleted", Order: 0},
		{ID: "3", Name: "Colour", CategoryID: "hair", Order: 2},
		{ID: "4", Name: "Cut", CategoryID: "hair", Order: 1},
		{ID: "5", Name: "Peel", CategoryID: "skin", Order: 3},
	}
	views := SortServices(categories, services)
	want := []string{"Cut", "Colour", "Facial", "Peel", "Orphan"}
	if got := names(views, serviceName); !equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if views[4].CategoryName != NoCategory || views[0].CategoryName != "Hair" {
		t.Errorf("category names = %q, %q", views[0].CategoryName, views[4].CategoryName)
	}
}

func TestServiceLifecycle(t *testing.T) {
	svc, _ := newTestCatalog()
	ctx := context.Background()
	cats, _ := svc.SaveCategory(ctx, models.CategoryInput{Name: "Hair"})

	for _, n := range []string{"Cut", "Colour"} {
		if _, err := svc.SaveService(ctx, models.ServiceInput{Name: n, Duration: 30, Price: 25, CategoryID: cats[0].ID}); err != nil {
			t.Fatal(err)
		}
	}
	list, _ := svc.ListServices(ctx)
	list, err := svc.MoveService(ctx, list[1].ID, ordering.Up)
	if err != nil {
		t.Fatalf("MoveService: %v", err)
	}
	if !equal(names(list, serviceName), []string{"Colour", "Cut"}) {
		t.Errorf("after move: %v", names(list, serviceName))
	}

	list, err = svc.SetServiceActive(ctx, list[0].ID, false)
	if err != nil || list[0].Active {
		t.Fatalf("SetServiceActive: %v %+v", err, list[0])
	}

	list, err = svc.DeleteService(ctx, list[0].ID)
	if err != nil || len(list) != 1 || list[0].Name != "Cut" {
		t.Fatalf("DeleteService: %v %+v", err, list)
	}

	remaining, err := svc.DeleteCategory(ctx, cats[0].ID)
	if err != nil || len(remaining) != 0 {
		t.Fatalf("DeleteCategory: %v", err)
	}
	views, _ := svc.ListServices(ctx)
	if views[0].CategoryName != NoCategory {
		t.Errorf("service of deleted category shows %q", views[0].CategoryName)
	}
}
