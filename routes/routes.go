package routes

import (
	"time"

	"bookingadmin/config"
	"bookingadmin/handlers"
	"bookingadmin/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers login (public) and logout (authenticated).
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.AuthHandler.Login)

		api.Use(middleware.JWTAuthAdminMiddleware(hb.Auth, hb.Messages))
		api.POST("/logout", hb.AuthHandler.Logout)
	}
}

// RegisterCatalogRoutes registers the categories and services screens.
func RegisterCatalogRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	categories := api.Group("/categories")
	{
		categories.GET("", hb.CatalogHandler.ListCategories)
		categories.POST("", hb.CatalogHandler.SaveCategory)
		categories.DELETE("/:id", hb.CatalogHandler.DeleteCategory)
		categories.PATCH("/:id/active", hb.CatalogHandler.SetCategoryActive)
		categories.POST("/:id/move", hb.CatalogHandler.MoveCategory)
	}

	services := api.Group("/services")
	{
		services.GET("", hb.CatalogHandler.ListServices)
		services.POST("", hb.CatalogHandler.SaveService)
		services.DELETE("/:id", hb.CatalogHandler.DeleteService)
		services.PATCH("/:id/active", hb.CatalogHandler.SetServiceActive)
		services.POST("/:id/move", hb.CatalogHandler.MoveService)
	}
}

// RegisterStaffRoutes registers the staff screen and the schedule editor.
func RegisterStaffRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	staff := api.Group("/staff")
	{
		staff.GET("", hb.StaffHandler.List)
		staff.POST("", hb.StaffHandler.Save)
		staff.DELETE("/:id", hb.StaffHandler.Delete)
		staff.PATCH("/:id/active", hb.StaffHandler.SetActive)
		staff.PUT("/:id/services", hb.StaffHandler.SetServices)
		staff.GET("/:id/schedule", hb.StaffHandler.GetSchedule)
		staff.PUT("/:id/schedule", hb.StaffHandler.ReplaceSchedule)
		staff.POST("/:id/schedule/ops", hb.StaffHandler.EditSchedule)
	}
}

// RegisterBookingRoutes registers the bookings screens and the dashboard.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/dashboard", hb.DashboardHandler.Get)
	api.GET("/dashboard/ws", hb.DashboardHandler.Stream)

	bookings := api.Group("/bookings")
	{
		bookings.GET("", hb.BookingHandler.List)
		bookings.GET("/by-professional", hb.BookingHandler.ByProfessional)
		bookings.GET("/:id", hb.BookingHandler.Get)
		bookings.PATCH("/:id/status", hb.BookingHandler.UpdateStatus)
		bookings.DELETE("/:id", hb.BookingHandler.Delete)
	}
}

// RegisterSettingsRoutes registers widget configuration, calendar credentials and the
// calendar authorization links.
func RegisterSettingsRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	settings := api.Group("/settings")
	{
		settings.GET("/widget", hb.SettingsHandler.GetWidget)
		settings.PUT("/widget", hb.SettingsHandler.SaveWidget)
		settings.PATCH("/widget", hb.SettingsHandler.PatchWidget)
		settings.GET("/calendar", hb.SettingsHandler.GetCalendar)
		settings.PUT("/calendar/credentials", hb.SettingsHandler.SaveCalendarCredentials)
	}

	calendar := api.Group("/calendar")
	{
		calendar.GET("/auth-url/:employeeId", hb.CalendarHandler.AuthURL)
		calendar.GET("/email-draft/:employeeId", hb.CalendarHandler.EmailDraft)
		calendar.POST("/invite/:employeeId", hb.CalendarHandler.Invite)
	}
}

// RegisterAdminRoutes sets up maintenance endpoints.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.POST("/admin/bootstrap", hb.AdminHandler.Bootstrap)
	api.GET("/schedule", hb.AdminHandler.ScheduleOverview)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.AdminHandler.HealthCheck)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, cfg *config.Config) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length", "Content-Language"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.LocaleMiddleware(hb.Messages, cfg.DefaultLocale))

	RegisterHealthRoute(r, hb)
	RegisterAuthRoutes(r, hb)

	api := r.Group("/api")
	api.Use(middleware.JWTAuthAdminMiddleware(hb.Auth, hb.Messages))
	RegisterCatalogRoutes(api, hb)
	RegisterStaffRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterSettingsRoutes(api, hb)
	RegisterAdminRoutes(api, hb)
}
