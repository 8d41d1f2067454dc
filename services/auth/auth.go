// Package auth signs the single admin in and out. The admin account comes from
// configuration; tokens are JWTs whose hash must also be present in the token store.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"bookingadmin/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	// TokenLifetime bounds a token regardless of activity.
	TokenLifetime = 24 * time.Hour
	// SessionTTL is the idle timeout, refreshed on every authenticated request.
	SessionTTL = time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionExpired     = errors.New("session expired or revoked")
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	// Authenticate returns the admin email carried by a valid, live token.
	Authenticate(ctx context.Context, token string) (string, error)
}

type DefaultAuthService struct {
	AdminEmail        string
	AdminPasswordHash string
	JWT               *utils.JWTManager
	Tokens            TokenStore
}

func (s *DefaultAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if s.AdminEmail == "" || !strings.EqualFold(strings.TrimSpace(email), s.AdminEmail) {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.AdminPasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.JWT.GenerateToken(s.AdminEmail, s.AdminEmail, TokenLifetime)
	if err != nil {
		utils.GetLogger().Error("Login: failed to sign token", zap.Error(err))
		return "", err
	}
	// A new login replaces any previous session.
	if err := s.Tokens.Save(ctx, s.AdminEmail, utils.HashToken(token), SessionTTL); err != nil {
		return "", err
	}
	return token, nil
}

func (s *DefaultAuthService) Logout(ctx context.Context, token string) error {
	subject, err := s.Authenticate(ctx, token)
	if err != nil {
		return err
	}
	return s.Tokens.Revoke(ctx, subject)
}

func (s *DefaultAuthService) Authenticate(ctx context.Context, token string) (string, error) {
	subject, err := s.JWT.Subject(token)
	if err != nil {
		return "", utils.ErrInvalidToken
	}
	ok, err := s.Tokens.Check(ctx, subject, utils.HashToken(token), SessionTTL)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrSessionExpired
	}
	return subject, nil
}
