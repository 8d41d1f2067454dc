package docstore

// Collection names shared with the booking widget.
const (
	Categories = "serviceCategories"
	Services   = "services"
	Employees  = "employees"
	Bookings   = "bookings"
	Clients    = "clients"
	Config     = "config"
	Settings   = "settings"
)

// Singleton document ids.
const (
	WidgetConfigID     = "widget"
	CalendarSettingsID = "googleCalendar"
)

// SeedCollections are checked by the bootstrap utility, in dependency order.
var SeedCollections = []string{Categories, Services, Employees, Bookings, Clients}
