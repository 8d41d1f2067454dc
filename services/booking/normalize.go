package booking

import (
	"strings"

	"bookingadmin/models"
)

const (
	dateLayout     = "2006-01-02"
	UnknownClient  = "Unknown Client"
	UnknownService = "Unknown Service"
	NoTime         = "N/A"

	legacyCanceled = "cancelled"
)

// Lookups resolve the references legacy bookings carry instead of embedded values.
type Lookups struct {
	Services map[string]models.Service
	Clients  map[string]models.Client
}

// clientRecord is one of the shapes a booking stores its client in.
type clientRecord interface {
	details(l Lookups) clientDetails
}

type clientDetails struct {
	name, email, phone string
}

type (
	// clientInfo{firstName,lastName,email,phone,comments}, written by the current widget.
	infoClient struct{ info models.ClientInfo }
	// Top-level clientName, clientEmail and clientPhone.
	namedClient struct{ name, email, phone string }
	// client{name|firstName,...}.
	embeddedClient struct{ name, email, phone string }
	// clientId pointing into the clients collection.
	referencedClient struct{ id string }
	unknownClient    struct{}
)

func (c infoClient) details(Lookups) clientDetails {
	name := strings.TrimSpace(c.info.FirstName + " " + c.info.LastName)
	return clientDetails{name: name, email: c.info.Email, phone: c.info.Phone}
}

func (c namedClient) details(Lookups) clientDetails {
	return clientDetails{name: c.name, email: c.email, phone: c.phone}
}

func (c embeddedClient) details(Lookups) clientDetails {
	return clientDetails{name: c.name, email: c.email, phone: c.phone}
}

func (c referencedClient) details(l Lookups) clientDetails {
	client, ok := l.Clients[c.id]
	if !ok {
		return clientDetails{name: UnknownClient}
	}
	name := client.Name
	if name == "" {
		name = strings.TrimSpace(client.FirstName + " " + client.LastName)
	}
	if name == "" {
		name = UnknownClient
	}
	return clientDetails{name: name, email: client.Email, phone: client.Phone}
}

func (unknownClient) details(Lookups) clientDetails {
	return clientDetails{name: UnknownClient}
}

// parseClient picks the first shape present in precedence order. A clientInfo object with
// neither first nor last name falls through to the next shape.
func parseClient(raw map[string]interface{}) (clientRecord, *models.ClientInfo) {
	var info *models.ClientInfo
	if m, ok := asMap(raw["clientInfo"]); ok {
		info = &models.ClientInfo{
			FirstName: str(m["firstName"]),
			LastName:  str(m["lastName"]),
			Email:     str(m["email"]),
			Phone:     str(m["phone"]),
			Comments:  str(m["comments"]),
		}
		if info.FirstName != "" || info.LastName != "" {
			return infoClient{info: *info}, info
		}
	}
	if name := str(raw["clientName"]); name != "" {
		return namedClient{name: name, email: str(raw["clientEmail"]), phone: str(raw["clientPhone"])}, info
	}
	if m, ok := asMap(raw["client"]); ok {
		name := str(m["name"])
		if name == "" {
			name = str(m["firstName"])
		}
		if name != "" {
			return embeddedClient{name: name, email: str(m["email"]), phone: str(m["phone"])}, info
		}
	}
	if id := str(raw["clientId"]); id != "" {
		return referencedClient{id: id}, info
	}
	return unknownClient{}, info
}

// parseTime handles timeSlot{start,end}, a preformatted timeSlot string and the legacy
// "time" field, in that order.
func parseTime(raw map[string]interface{}) (*models.TimeSlot, string) {
	if m, ok := asMap(raw["timeSlot"]); ok {
		slot := models.TimeSlot{Start: str(m["start"]), End: str(m["end"])}
		if slot.Start != "" && slot.End != "" {
			return &slot, slot.Start + " - " + slot.End
		}
		return nil, NoTime
	}
	if s := str(raw["timeSlot"]); s != "" {
		return nil, s
	}
	if s := str(raw["time"]); s != "" {
		return nil, s
	}
	return nil, NoTime
}

// parseServices reads the services array, falling back to a serviceId reference and then to
// a bare service name.
func parseServices(raw map[string]interface{}, l Lookups) ([]models.BookedService, string) {
	var booked []models.BookedService
	if items, ok := asSlice(raw["services"]); ok {
		for _, item := range items {
			if m, ok := asMap(item); ok {
				booked = append(booked, models.BookedService{
					ID:       str(m["id"]),
					Name:     str(m["name"]),
					Price:    num(m["price"]),
					Duration: int(num(m["duration"])),
				})
				continue
			}
			if id := str(item); id != "" {
				svc := models.BookedService{ID: id}
				if s, ok := l.Services[id]; ok {
					svc.Name, svc.Price, svc.Duration = s.Name, s.Price, s.Duration
				}
				booked = append(booked, svc)
			}
		}
	}
	if len(booked) > 0 {
		var names []string
		for _, s := range booked {
			if s.Name != "" {
				names = append(names, s.Name)
			}
		}
		if len(names) > 0 {
			return booked, strings.Join(names, ", ")
		}
		return booked, UnknownService
	}

	if id := str(raw["serviceId"]); id != "" {
		if s, ok := l.Services[id]; ok && s.Name != "" {
			return []models.BookedService{{ID: id, Name: s.Name, Price: s.Price, Duration: s.Duration}}, s.Name
		}
		return []models.BookedService{{ID: id}}, UnknownService
	}
	if name := str(raw["service"]); name != "" {
		return []models.BookedService{{Name: name}}, name
	}
	return []models.BookedService{}, UnknownService
}

// NormalizeStatus maps a stored status to one of models.BookingStatuses where possible.
// Unrecognized values are kept so an admin can see and correct them.
func NormalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return models.StatusPending
	case legacyCanceled:
		return models.StatusCanceled
	}
	return s
}

// Normalize converts a stored booking document, whatever its shape, to a models.Booking.
func Normalize(id string, raw map[string]interface{}, l Lookups) models.Booking {
	client, info := parseClient(raw)
	details := client.details(l)
	slot, display := parseTime(raw)
	services, serviceName := parseServices(raw, l)

	professional := str(raw["employeeId"])
	if professional == "" {
		professional = str(raw["professionalId"])
	}

	b := models.Booking{
		ID:             id,
		ClientName:     details.name,
		ClientEmail:    details.email,
		ClientPhone:    details.phone,
		ClientInfo:     info,
		ProfessionalID: professional,
		Date:           asDate(raw["date"]),
		TimeSlot:       slot,
		Time:           display,
		Services:       services,
		ServiceName:    serviceName,
		Status:         NormalizeStatus(str(raw["status"])),
		Notes:          str(raw["notes"]),
		CreatedAt:      asTime(raw["createdAt"]),
		UpdatedAt:      asTime(raw["updatedAt"]),
	}
	if info != nil {
		b.ClientComments = info.Comments
	}
	if b.ClientComments == "" {
		b.ClientComments = str(raw["clientComments"])
	}
	return b
}

// startTime is the sort key within a day: the slot start, or the text before " - ".
func startTime(b models.Booking) string {
	if b.TimeSlot != nil {
		return b.TimeSlot.Start
	}
	if b.Time == NoTime {
		return ""
	}
	start, _, _ := strings.Cut(b.Time, "-")
	return strings.TrimSpace(start)
}
