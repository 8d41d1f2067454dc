package handlers

import (
	"bookingadmin/i18n"
	"bookingadmin/realtime"
	"bookingadmin/services/auth"
	"bookingadmin/services/booking"
	"bookingadmin/services/calendar"
	"bookingadmin/services/catalog"
	"bookingadmin/services/seed"
	"bookingadmin/services/settings"
	"bookingadmin/services/staff"
	"bookingadmin/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Services are the dependencies the HTTP layer is built from.
type Services struct {
	Auth     auth.AuthService
	Catalog  catalog.CatalogService
	Staff    staff.StaffService
	Bookings booking.BookingService
	Settings settings.SettingsService
	Calendar calendar.CalendarService
	Seeder   *seed.Seeder
	Health   *utils.HealthMonitor
	Hub      *realtime.Hub
	Upgrader *websocket.Upgrader
}

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Auth     auth.AuthService
	Messages *i18n.Catalog

	AuthHandler      *AuthHandler
	DashboardHandler *DashboardHandler
	CatalogHandler   *CatalogHandler
	StaffHandler     *StaffHandler
	BookingHandler   *BookingHandler
	SettingsHandler  *SettingsHandler
	CalendarHandler  *CalendarHandler
	AdminHandler     *AdminHandler
}

func NewHandlerBundle(svc Services, messages *i18n.Catalog, logger *zap.Logger) *HandlerBundle {
	b := base{Logger: logger, Messages: messages}
	return &HandlerBundle{
		Auth:     svc.Auth,
		Messages: messages,

		AuthHandler:      NewAuthHandler(svc.Auth, b),
		DashboardHandler: NewDashboardHandler(svc.Bookings, svc.Hub, svc.Upgrader, b),
		CatalogHandler:   NewCatalogHandler(svc.Catalog, b),
		StaffHandler:     NewStaffHandler(svc.Staff, b),
		BookingHandler:   NewBookingHandler(svc.Bookings, b),
		SettingsHandler:  NewSettingsHandler(svc.Settings, b),
		CalendarHandler:  NewCalendarHandler(svc.Calendar, b),
		AdminHandler:     NewAdminHandler(svc.Seeder, svc.Health, b),
	}
}
