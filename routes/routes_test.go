package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookingadmin/config"
	"bookingadmin/database/docstore"
	bookingRepo "bookingadmin/database/repository/booking"
	categoryRepo "bookingadmin/database/repository/category"
	clientRepo "bookingadmin/database/repository/client"
	employeeRepo "bookingadmin/database/repository/employee"
	serviceRepo "bookingadmin/database/repository/service"
	settingsRepo "bookingadmin/database/repository/settings"
	"bookingadmin/handlers"
	"bookingadmin/i18n"
	"bookingadmin/models"
	"bookingadmin/realtime"
	"bookingadmin/services/auth"
	"bookingadmin/services/booking"
	"bookingadmin/services/calendar"
	"bookingadmin/services/catalog"
	"bookingadmin/services/seed"
	"bookingadmin/services/settings"
	"bookingadmin/services/staff"
	"bookingadmin/tasks"
	"bookingadmin/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type queuedInvites struct {
	sent []tasks.CalendarInvitePayload
}

func (q *queuedInvites) EnqueueCalendarInvite(_ context.Context, p tasks.CalendarInvitePayload) error {
	q.sent = append(q.sent, p)
	return nil
}

type testAPI struct {
	t       *testing.T
	router  *gin.Engine
	store   *docstore.MemoryStore
	token   string
	invites *queuedInvites
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := utils.RegisterValidators(); err != nil {
		t.Fatal(err)
	}
	messages, err := i18n.Load()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	logger := zap.NewNop()
	store := docstore.NewMemoryStore()

	categories := categoryRepo.NewCategoryRepo(store)
	services := serviceRepo.NewServiceRepo(store)
	employees := employeeRepo.NewEmployeeRepo(store)
	settingsStore := settingsRepo.NewSettingsRepo(store)
	bookingService := &booking.DefaultBookingService{
		Bookings:  bookingRepo.NewBookingRepo(store),
		Services:  services,
		Employees: employees,
		Clients:   clientRepo.NewClientRepo(store),
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	authService := &auth.DefaultAuthService{
		AdminEmail:        "admin@example.com",
		AdminPasswordHash: string(hash),
		JWT:               utils.NewJWTManager("test"),
		Tokens:            auth.NewMemoryTokenStore(),
	}
	health := utils.NewHealthMonitor(store, nil, 0)
	health.Check(ctx)
	invites := &queuedInvites{}

	bundle := handlers.NewHandlerBundle(handlers.Services{
		Auth:     authService,
		Catalog:  &catalog.DefaultCatalogService{Categories: categories, Services: services},
		Staff:    &staff.DefaultStaffService{Employees: employees, Services: services},
		Bookings: bookingService,
		Settings: &settings.DefaultSettingsService{Repo: settingsStore},
		Calendar: &calendar.DefaultCalendarService{
			Settings: settingsStore, Employees: employees, Tasks: invites, Messages: messages,
		},
		Seeder:   seed.NewSeeder(store, logger),
		Health:   health,
		Hub:      realtime.NewHub(bookingService, logger),
		Upgrader: realtime.NewUpgrader(nil),
	}, messages, logger)

	router := gin.New()
	RegisterRoutes(router, bundle, &config.Config{AllowedOrigins: "*", DefaultLocale: "en"})

	api := &testAPI{t: t, router: router, store: store, invites: invites}
	w := api.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com", "password": "pw"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	var out struct{ Token string }
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	api.token = out.Token
	return api
}

func (a *testAPI) do(method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func TestAuthRequired(t *testing.T) {
	api := newTestAPI(t)
	api.token = ""
	if w := api.do(http.MethodGet, "/api/categories", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", w.Code)
	}
	if w := api.do(http.MethodGet, "/health", nil); w.Code != http.StatusOK {
		t.Errorf("health = %d %s", w.Code, w.Body.String())
	}
	w := api.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com", "password": "bad"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login = %d", w.Code)
	}
}

func TestLogout(t *testing.T) {
	api := newTestAPI(t)
	if w := api.do(http.MethodPost, "/api/auth/logout", nil); w.Code != http.StatusOK {
		t.Fatalf("logout = %d %s", w.Code, w.Body.String())
	}
	if w := api.do(http.MethodGet, "/api/categories", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("after logout = %d", w.Code)
	}
}

func TestCatalogFlow(t *testing.T) {
	api := newTestAPI(t)
	if w := api.do(http.MethodPost, "/api/admin/bootstrap", nil); w.Code != http.StatusOK {
		t.Fatalf("bootstrap = %d %s", w.Code, w.Body.String())
	}

	cats := decode[[]models.Category](t, api.do(http.MethodGet, "/api/categories", nil))
	if len(cats) != 2 || cats[0].Name != "Hair Care" {
		t.Fatalf("categories = %+v", cats)
	}

	w := api.do(http.MethodPost, "/api/categories/"+cats[0].ID+"/move", map[string]string{"direction": "down"})
	if w.Code != http.StatusOK {
		t.Fatalf("move = %d %s", w.Code, w.Body.String())
	}
	cats = decode[[]models.Category](t, w)
	if cats[0].Name != "Skin Care" || cats[1].Order != 1 {
		t.Errorf("after move = %+v", cats)
	}

	if w := api.do(http.MethodPost, "/api/categories/x/move", map[string]string{"direction": "sideways"}); w.Code != http.StatusBadRequest {
		t.Errorf("bad direction = %d", w.Code)
	}
	if w := api.do(http.MethodPost, "/api/categories/missing/move", map[string]string{"direction": "up"}); w.Code != http.StatusNotFound {
		t.Errorf("unknown id = %d", w.Code)
	}

	// Services are listed in category order, so the facial now comes first.
	svcs := decode[[]models.ServiceView](t, api.do(http.MethodGet, "/api/services", nil))
	if len(svcs) != 2 || svcs[0].Name != "Basic Facial" || svcs[0].CategoryName != "Skin Care" {
		t.Errorf("services = %+v", svcs)
	}

	w = api.do(http.MethodPost, "/api/services", map[string]interface{}{"name": "Beard trim", "duration": 15, "price": 10})
	svcs = decode[[]models.ServiceView](t, w)
	if len(svcs) != 3 || svcs[2].CategoryName != catalog.NoCategory {
		t.Errorf("after insert = %+v", svcs)
	}

	if w := api.do(http.MethodPost, "/api/services", map[string]interface{}{"price": 10}); w.Code != http.StatusBadRequest {
		t.Errorf("missing name = %d", w.Code)
	}
}

func TestStaffScheduleOps(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(http.MethodPost, "/api/staff", map[string]interface{}{"name": "Ana", "email": "ana@example.com"})
	list := decode[[]models.EmployeeView](t, w)
	if len(list) != 1 || list[0].WorkingDays != 5 {
		t.Fatalf("staff = %+v", list)
	}
	id := list[0].ID
	base := "/api/staff/" + id + "/schedule"

	ops := map[string]interface{}{"ops": []map[string]interface{}{
		{"op": "toggleDay", "day": "saturday"},
		{"op": "updateSlot", "day": "saturday", "index": 0, "field": "end", "value": "12:00"},
		{"op": "addException", "exception": map[string]string{"date": "2024-12-25"}},
	}}
	w = api.do(http.MethodPost, base+"/ops", ops)
	if w.Code != http.StatusOK {
		t.Fatalf("ops = %d %s", w.Code, w.Body.String())
	}
	sched := decode[models.EmployeeSchedule](t, api.do(http.MethodGet, base, nil))
	sat := sched.WeeklySchedule["saturday"]
	if !sat.IsWorking || sat.TimeSlots[0].End != "12:00" || len(sched.Exceptions) != 1 {
		t.Errorf("schedule = %+v", sched)
	}

	bad := map[string]interface{}{"ops": []map[string]interface{}{
		{"op": "toggleDay", "day": "sunday"},
		{"op": "removeSlot", "day": "monday", "index": 7},
	}}
	if w := api.do(http.MethodPost, base+"/ops", bad); w.Code != http.StatusBadRequest {
		t.Errorf("out of range = %d %s", w.Code, w.Body.String())
	}
	sched = decode[models.EmployeeSchedule](t, api.do(http.MethodGet, base, nil))
	if sched.WeeklySchedule["sunday"].IsWorking {
		t.Error("failed batch was partially saved")
	}

	invalid := map[string]interface{}{"ops": []map[string]interface{}{{"op": "toggleDay", "day": "funday"}}}
	if w := api.do(http.MethodPost, base+"/ops", invalid); w.Code != http.StatusBadRequest {
		t.Errorf("unknown weekday = %d", w.Code)
	}

	if w := api.do(http.MethodGet, "/api/staff/nobody/schedule", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown employee = %d", w.Code)
	}
}

func TestBookingStatus(t *testing.T) {
	api := newTestAPI(t)
	_ = api.store.Set(context.Background(), docstore.Bookings, "b1", map[string]interface{}{
		"clientName": "Alice", "date": "2024-06-10", "timeSlot": "10:00", "status": "cancelled",
	})

	b := decode[models.Booking](t, api.do(http.MethodGet, "/api/bookings/b1", nil))
	if b.Status != models.StatusCanceled {
		t.Errorf("legacy status = %q", b.Status)
	}

	w := api.do(http.MethodPatch, "/api/bookings/b1/status", map[string]string{"status": "confirmed"}, "Accept-Language", "fr")
	if w.Code != http.StatusOK {
		t.Fatalf("update = %d %s", w.Code, w.Body.String())
	}
	out := decode[struct {
		Message string
		Booking models.Booking
	}](t, w)
	if out.Booking.Status != models.StatusConfirmed || !strings.Contains(out.Message, "Confirmé") {
		t.Errorf("update response = %+v", out)
	}

	if w := api.do(http.MethodPatch, "/api/bookings/b1/status", map[string]string{"status": "lost"}); w.Code != http.StatusBadRequest {
		t.Errorf("bad status = %d", w.Code)
	}
	if w := api.do(http.MethodDelete, "/api/bookings/b1", nil); w.Code != http.StatusOK {
		t.Errorf("delete = %d", w.Code)
	}
	if w := api.do(http.MethodDelete, "/api/bookings/b1", nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete = %d", w.Code)
	}

	dash := decode[booking.Dashboard](t, api.do(http.MethodGet, "/api/dashboard", nil))
	if dash.Stats.TotalBookings != 0 {
		t.Errorf("dashboard = %+v", dash)
	}
}

func TestWidgetSettings(t *testing.T) {
	api := newTestAPI(t)
	cfg := decode[models.WidgetConfig](t, api.do(http.MethodGet, "/api/settings/widget", nil))
	if cfg.Timezone != "Europe/Paris" {
		t.Errorf("defaults = %+v", cfg)
	}

	w := api.do(http.MethodPatch, "/api/settings/widget", map[string]interface{}{"workingHours.start": "08:00", "slotDuration": 45})
	cfg = decode[models.WidgetConfig](t, w)
	if cfg.WorkingHours.Start != "08:00" || cfg.WorkingHours.End != "17:00" || cfg.SlotDuration != 45 {
		t.Errorf("patched = %+v", cfg)
	}

	if w := api.do(http.MethodPatch, "/api/settings/widget", map[string]interface{}{"colour": "red"}); w.Code != http.StatusBadRequest {
		t.Errorf("unknown field = %d", w.Code)
	}

	for _, body := range []map[string]interface{}{
		{"slotDuration": -5},
		{"slotDuration": "long"},
		{"businessEmail": "not-an-email"},
	} {
		if w := api.do(http.MethodPatch, "/api/settings/widget", body); w.Code != http.StatusBadRequest {
			t.Errorf("PATCH %v = %d %s", body, w.Code, w.Body.String())
		}
	}
	if w := api.do(http.MethodPut, "/api/settings/widget", map[string]interface{}{"slotDuration": -5}); w.Code != http.StatusBadRequest {
		t.Errorf("PUT negative slotDuration = %d", w.Code)
	}
	cfg = decode[models.WidgetConfig](t, api.do(http.MethodGet, "/api/settings/widget", nil))
	if cfg.SlotDuration != 45 || cfg.BusinessEmail != "" {
		t.Errorf("rejected patch was stored: %+v", cfg)
	}
}

func TestCalendarLinks(t *testing.T) {
	api := newTestAPI(t)
	list := decode[[]models.EmployeeView](t, api.do(http.MethodPost, "/api/staff", map[string]interface{}{"name": "Ana", "email": "ana@example.com"}))
	id := list[0].ID

	w := api.do(http.MethodGet, "/api/calendar/auth-url/"+id, nil, "Accept-Language", "fr")
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "identifiants") {
		t.Errorf("without credentials = %d %s", w.Code, w.Body.String())
	}

	creds := map[string]interface{}{
		"client_id": "cid", "client_secret": "sec", "redirect_uris": []string{"https://admin.example.com/cb"},
	}
	if w := api.do(http.MethodPut, "/api/settings/calendar/credentials", creds); w.Code != http.StatusOK {
		t.Fatalf("credentials = %d %s", w.Code, w.Body.String())
	}

	w = api.do(http.MethodGet, "/api/calendar/auth-url/"+id+"?redirect=1", nil)
	if w.Code != http.StatusFound || !strings.HasPrefix(w.Header().Get("Location"), "https://accounts.google.com/") {
		t.Errorf("redirect = %d %s", w.Code, w.Header().Get("Location"))
	}

	w = api.do(http.MethodPost, "/api/calendar/invite/"+id, nil)
	if w.Code != http.StatusAccepted || len(api.invites.sent) != 1 || api.invites.sent[0].Email != "ana@example.com" {
		t.Errorf("invite = %d %s", w.Code, w.Body.String())
	}
}

func TestScheduleStub(t *testing.T) {
	api := newTestAPI(t)
	if w := api.do(http.MethodGet, "/api/schedule", nil); w.Code != http.StatusNotImplemented {
		t.Errorf("status = %d", w.Code)
	}
}
