package models

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
)

// BookingStatuses lists every status an admin may set.
var BookingStatuses = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled}

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s string) bool {
	for _, st := range BookingStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// ClientInfo carries the client details embedded in a booking.
type ClientInfo struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Comments  string `json:"comments,omitempty"`
}

// BookedService is one service line of a booking.
type BookedService struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price,omitempty"`
	Duration int     `json:"duration,omitempty"`
}

// Booking is the normalized view of a booking document, whatever legacy shape it was stored in.
type Booking struct {
	ID             string          `json:"id"`
	ClientName     string          `json:"clientName"`
	ClientEmail    string          `json:"clientEmail,omitempty"`
	ClientPhone    string          `json:"clientPhone,omitempty"`
	ClientComments string          `json:"clientComments,omitempty"`
	ClientInfo     *ClientInfo     `json:"clientInfo,omitempty"`
	ProfessionalID string          `json:"professionalId"`
	Date           string          `json:"date"`
	TimeSlot       *TimeSlot       `json:"timeSlot,omitempty"`
	Time           string          `json:"time"`
	Services       []BookedService `json:"services"`
	ServiceName    string          `json:"serviceName"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt,omitzero"`
	UpdatedAt      time.Time       `json:"updatedAt,omitzero"`
}

// ProfessionalBookings groups one professional's bookings by date.
type ProfessionalBookings struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Email    string               `json:"email,omitempty"`
	Active   bool                 `json:"active"`
	Bookings map[string][]Booking `json:"bookings"`
}

// DashboardStats summarises the booking list.
type DashboardStats struct {
	TotalBookings   int `json:"totalBookings"`
	PendingBookings int `json:"pendingBookings"`
	TodayBookings   int `json:"todayBookings"`
}
