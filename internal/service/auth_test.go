package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/botforge/botforge/internal/config"
	"github.com/botforge/botforge/internal/domain"
	"github.com/botforge/botforge/internal/domain/user"
)

func newTestAuth(t *testing.T) (*mockStore, *AuthService) {
	t.Helper()
	store := newMockStore()
	if _, err := store.EnsureRole(context.Background(), user.RoleUser, "regular user"); err != nil {
		t.Fatalf("seed role: %v", err)
	}
	if _, err := store.EnsureRole(context.Background(), user.RoleAdmin, "administrator"); err != nil {
		t.Fatalf("seed role: %v", err)
	}
	cfg := &config.Auth{
		JWTSecret:         "test-secret",
		AccessTokenExpiry: time.Minute,
		BcryptCost:        4, // min cost keeps the tests fast
	}
	return store, NewAuthService(store, cfg)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	_, auth := newTestAuth(t)

	u, err := auth.Register(context.Background(), &user.CreateRequest{
		Email:    "owner@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID == "" {
		t.Error("expected user id to be assigned")
	}
	if u.PasswordHash == "correct horse" {
		t.Error("password must not be stored in plain text")
	}

	resp, err := auth.Login(context.Background(), user.LoginRequest{
		Email:    "owner@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected access token")
	}
	if resp.ExpiresIn != 60 {
		t.Errorf("expires_in = %d, want 60", resp.ExpiresIn)
	}

	claims, err := auth.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != u.ID {
		t.Errorf("claims subject = %q, want %q", claims.UserID, u.ID)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	_, auth := newTestAuth(t)

	if _, err := auth.Register(context.Background(), &user.CreateRequest{
		Email:    "owner@example.com",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := auth.Login(context.Background(), user.LoginRequest{
		Email:    "owner@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	// Unknown email is indistinguishable from a wrong password.
	_, unknownErr := auth.Login(context.Background(), user.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if !errors.Is(unknownErr, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for unknown email, got %v", unknownErr)
	}
}

func TestAuthService_LoginMissingCredentials(t *testing.T) {
	_, auth := newTestAuth(t)

	for _, req := range []user.LoginRequest{
		{},
		{Email: "owner@example.com"},
		{Password: "correct horse"},
	} {
		_, err := auth.Login(context.Background(), req)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Login(%+v): expected ErrValidation, got %v", req, err)
		}
	}
}

func TestAuthService_ValidateTamperedToken(t *testing.T) {
	_, auth := newTestAuth(t)

	if _, err := auth.Register(context.Background(), &user.CreateRequest{
		Email:    "owner@example.com",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	resp, err := auth.Login(context.Background(), user.LoginRequest{
		Email:    "owner@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := auth.ValidateAccessToken(resp.AccessToken + "x"); err == nil {
		t.Error("expected tampered token to be rejected")
	}
	if _, err := auth.ValidateAccessToken("not.a.jwt"); err == nil {
		t.Error("expected malformed token to be rejected")
	}
}

func TestAuthService_ExpiredToken(t *testing.T) {
	store, _ := newTestAuth(t)
	cfg := &config.Auth{
		JWTSecret:         "test-secret",
		AccessTokenExpiry: -time.Minute, // issue already-expired tokens
		BcryptCost:        4,
	}
	auth := NewAuthService(store, cfg)

	if _, err := auth.Register(context.Background(), &user.CreateRequest{
		Email:    "owner@example.com",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	resp, err := auth.Login(context.Background(), user.LoginRequest{
		Email:    "owner@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := auth.ValidateAccessToken(resp.AccessToken); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestAuthService_ResetPassword(t *testing.T) {
	_, auth := newTestAuth(t)

	u, err := auth.Register(context.Background(), &user.CreateRequest{
		Email:    "owner@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := auth.ResetPassword(context.Background(), u.ID, "short"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for short password, got %v", err)
	}

	if err := auth.ResetPassword(context.Background(), u.ID, "new password"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, err := auth.Login(context.Background(), user.LoginRequest{
		Email:    "owner@example.com",
		Password: "correct horse",
	}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Error("old password must stop working after reset")
	}
	if _, err := auth.Login(context.Background(), user.LoginRequest{
		Email:    "owner@example.com",
		Password: "new password",
	}); err != nil {
		t.Errorf("new password should work: %v", err)
	}
}
