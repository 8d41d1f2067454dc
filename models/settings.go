package models

import "time"

type WorkingHours struct {
	Start string `bson:"start" firestore:"start" json:"start"`
	End   string `bson:"end" firestore:"end" json:"end"`
}

// WidgetConfig is the singleton config/widget document read by the booking widget.
type WidgetConfig struct {
	BusinessName             string       `bson:"businessName" firestore:"businessName" json:"businessName"`
	BusinessEmail            string       `bson:"businessEmail" firestore:"businessEmail" json:"businessEmail" binding:"omitempty,email"`
	BusinessPhone            string       `bson:"businessPhone" firestore:"businessPhone" json:"businessPhone"`
	Timezone                 string       `bson:"timezone" firestore:"timezone" json:"timezone"`
	WorkingHours             WorkingHours `bson:"workingHours" firestore:"workingHours" json:"workingHours"`
	SlotDuration             int          `bson:"slotDuration" firestore:"slotDuration" json:"slotDuration" binding:"gte=0"`
	AllowedDaysInAdvance     int          `bson:"allowedDaysInAdvance" firestore:"allowedDaysInAdvance" json:"allowedDaysInAdvance" binding:"gte=0"`
	RequirePhoneNumber       bool         `bson:"requirePhoneNumber" firestore:"requirePhoneNumber" json:"requirePhoneNumber"`
	RequireEmailConfirmation bool         `bson:"requireEmailConfirmation" firestore:"requireEmailConfirmation" json:"requireEmailConfirmation"`
	CustomCSS                string       `bson:"customCss,omitempty" firestore:"customCss,omitempty" json:"customCss,omitempty"`
}

// DefaultWidgetConfig is served until an admin saves the first configuration.
func DefaultWidgetConfig() WidgetConfig {
	return WidgetConfig{
		Timezone:                 "Europe/Paris",
		WorkingHours:             WorkingHours{Start: "09:00", End: "17:00"},
		SlotDuration:             30,
		AllowedDaysInAdvance:     30,
		RequirePhoneNumber:       true,
		RequireEmailConfirmation: true,
	}
}

// CalendarCredentials are the Google OAuth client credentials entered by an admin.
type CalendarCredentials struct {
	ClientID     string   `bson:"client_id" firestore:"client_id" json:"client_id" binding:"required"`
	ClientSecret string   `bson:"client_secret" firestore:"client_secret" json:"client_secret" binding:"required"`
	RedirectURIs []string `bson:"redirect_uris" firestore:"redirect_uris" json:"redirect_uris" binding:"required,min=1,dive,url"`
}

// CalendarSettings is the singleton settings/googleCalendar document. Tokens are written by the
// external OAuth callback and only passed through here.
type CalendarSettings struct {
	Credentials *CalendarCredentials   `bson:"credentials,omitempty" firestore:"credentials,omitempty" json:"credentials,omitempty"`
	Tokens      map[string]interface{} `bson:"tokens,omitempty" firestore:"tokens,omitempty" json:"tokens,omitempty"`
	UpdatedAt   time.Time              `bson:"updatedAt,omitempty" firestore:"updatedAt,omitempty" json:"updatedAt,omitzero"`
}
