package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookingadmin/utils"

	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T) (*DefaultAuthService, *MemoryTokenStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	tokens := NewMemoryTokenStore()
	return &DefaultAuthService{
		AdminEmail:        "admin@example.com",
		AdminPasswordHash: string(hash),
		JWT:               utils.NewJWTManager("test-secret"),
		Tokens:            tokens,
	}, tokens
}

func TestLoginAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuth(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "admin@example.com", "s3cret", nil},
		{"email case and spaces", " Admin@Example.com ", "s3cret", nil},
		{"wrong password", "admin@example.com", "nope", ErrInvalidCredentials},
		{"wrong email", "other@example.com", "s3cret", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.Login(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Login error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			subject, err := svc.Authenticate(ctx, token)
			if err != nil || subject != "admin@example.com" {
				t.Errorf("Authenticate = %q, %v", subject, err)
			}
		})
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuth(t)
	token, err := svc.Login(ctx, "admin@example.com", "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("after logout: %v", err)
	}
}

func TestAuthenticateRejects(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newTestAuth(t)

	if _, err := svc.Authenticate(ctx, "garbage"); !errors.Is(err, utils.ErrInvalidToken) {
		t.Errorf("garbage token: %v", err)
	}

	other, _ := utils.NewJWTManager("other-secret").GenerateToken("admin@example.com", "admin@example.com", time.Hour)
	if _, err := svc.Authenticate(ctx, other); !errors.Is(err, utils.ErrInvalidToken) {
		t.Errorf("foreign signature: %v", err)
	}

	token, _ := svc.Login(ctx, "admin@example.com", "s3cret")
	now := time.Now()
	tokens.now = func() time.Time { return now.Add(2 * SessionTTL) }
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("idle session: %v", err)
	}
}

func TestSecondLoginReplacesSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuth(t)
	first, _ := svc.Login(ctx, "admin@example.com", "s3cret")
	// Tokens issued within the same second are identical; make the second one differ.
	time.Sleep(1100 * time.Millisecond)
	second, _ := svc.Login(ctx, "admin@example.com", "s3cret")
	if first == second {
		t.Skip("tokens identical")
	}
	if _, err := svc.Authenticate(ctx, first); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("first token still live: %v", err)
	}
	if _, err := svc.Authenticate(ctx, second); err != nil {
		t.Errorf("second token: %v", err)
	}
}
