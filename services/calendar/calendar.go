// Package calendar builds the Google Calendar authorization link an employee opens to
// connect their calendar, and delivers it by redirect, mailto draft or queued email.
// Exchanging the returned code for tokens happens elsewhere.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	employeeRepo "bookingadmin/database/repository/employee"
	settingsRepo "bookingadmin/database/repository/settings"
	"bookingadmin/database/docstore"
	"bookingadmin/i18n"
	"bookingadmin/models"
	"bookingadmin/tasks"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
)

var (
	ErrMissingCredentials = errors.New("calendar credentials are not configured")
	ErrNoEmail            = errors.New("employee has no email address")
)

// Scopes requested for every employee.
var Scopes = []string{gcal.CalendarScope, gcal.CalendarEventsScope}

type CalendarService interface {
	AuthURL(ctx context.Context, employeeID string) (string, error)
	// EmailDraft returns a mailto: link whose subject and body carry the authorization link.
	EmailDraft(ctx context.Context, employeeID, locale string) (string, error)
	// SendInvite queues an email with the authorization link and returns the recipient.
	SendInvite(ctx context.Context, employeeID, locale string) (string, error)
}

// DefaultCalendarService is the production implementation.
type DefaultCalendarService struct {
	Settings  settingsRepo.SettingsRepository
	Employees employeeRepo.EmployeeRepository
	Tasks     tasks.Enqueuer
	Messages  *i18n.Catalog
}

// OAuthConfig turns the stored credentials into an oauth2 client config redirecting to the
// first registered URI.
func OAuthConfig(creds *models.CalendarCredentials) (*oauth2.Config, error) {
	if creds == nil || creds.ClientID == "" || len(creds.RedirectURIs) == 0 || creds.RedirectURIs[0] == "" {
		return nil, ErrMissingCredentials
	}
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  creds.RedirectURIs[0],
		Scopes:       Scopes,
		Endpoint:     google.Endpoint,
	}, nil
}

// BuildAuthURL requests offline access with a forced consent prompt so a refresh token is
// always issued. state identifies the employee to the callback.
func BuildAuthURL(creds *models.CalendarCredentials, state string) (string, error) {
	cfg, err := OAuthConfig(creds)
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

func (s *DefaultCalendarService) load(ctx context.Context, employeeID string) (*models.Employee, string, error) {
	employee, err := s.Employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch employee %s: %w", employeeID, err)
	}
	settings, err := s.Settings.GetCalendarSettings(ctx)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, "", ErrMissingCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch calendar settings: %w", err)
	}

	state := employee.Email
	if state == "" {
		state = employee.ID
	}
	link, err := BuildAuthURL(settings.Credentials, state)
	if err != nil {
		return nil, "", err
	}
	return employee, link, nil
}

func (s *DefaultCalendarService) AuthURL(ctx context.Context, employeeID string) (string, error) {
	_, link, err := s.load(ctx, employeeID)
	return link, err
}

func (s *DefaultCalendarService) message(locale string, employee *models.Employee, link string) (string, string) {
	vars := map[string]string{"name": employee.Name, "link": link}
	return s.Messages.T(locale, "calendar.emailSubject", vars), s.Messages.T(locale, "calendar.emailBody", vars)
}

func (s *DefaultCalendarService) EmailDraft(ctx context.Context, employeeID, locale string) (string, error) {
	employee, link, err := s.load(ctx, employeeID)
	if err != nil {
		return "", err
	}
	subject, body := s.message(locale, employee, link)
	return MailtoURL(employee.Email, subject, body), nil
}

func (s *DefaultCalendarService) SendInvite(ctx context.Context, employeeID, locale string) (string, error) {
	employee, link, err := s.load(ctx, employeeID)
	if err != nil {
		return "", err
	}
	if employee.Email == "" {
		return "", ErrNoEmail
	}
	subject, body := s.message(locale, employee, link)
	err = s.Tasks.EnqueueCalendarInvite(ctx, tasks.CalendarInvitePayload{
		EmployeeID: employee.ID,
		Name:       employee.Name,
		Email:      employee.Email,
		Subject:    subject,
		Body:       body,
	})
	if err != nil {
		return "", err
	}
	return employee.Email, nil
}

// MailtoURL builds a mailto: link. Spaces are encoded as %20, which mail clients expect
// where form encoding would use "+".
func MailtoURL(to, subject, body string) string {
	q := url.Values{}
	q.Set("subject", subject)
	q.Set("body", body)
	return "mailto:" + url.PathEscape(to) + "?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}
