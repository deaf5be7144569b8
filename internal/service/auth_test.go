package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Payphone-Digital/property-api/internal/dto"
	apperrors "github.com/Payphone-Digital/property-api/internal/errors"
	"github.com/Payphone-Digital/property-api/internal/model"
)

func newAuthService(t *testing.T) (*AuthService, *memUnitOfWork) {
	t.Helper()
	uow := newMemUnitOfWork()
	jwt := NewJWTService(testJWTConfig())
	return NewAuthService(uow, jwt, 7*24*time.Hour), uow
}

func seedUser(t *testing.T, uow *memUnitOfWork, username, password string, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     "User",
		Role:         model.RoleUser,
		IsActive:     active,
	}
	if err := uow.Repos().Users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestLoginSuccess(t *testing.T) {
	svc, uow := newAuthService(t)
	user := seedUser(t, uow, "alice", "s3cret", true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if resp.UserID != user.ID {
		t.Errorf("UserID = %d, want %d", resp.UserID, user.ID)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected both tokens to be set")
	}

	stored, err := uow.Repos().RefreshTokens.GetByToken(context.Background(), resp.RefreshToken)
	if err != nil {
		t.Fatalf("refresh token was not persisted: %v", err)
	}
	if stored.UserID != user.ID {
		t.Errorf("stored token UserID = %d, want %d", stored.UserID, user.ID)
	}

	refreshed, err := uow.Repos().Users.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if refreshed.LastLoginAt == nil {
		t.Error("expected last login to be recorded")
	}
}

func TestLoginIsCaseInsensitiveOnUsername(t *testing.T) {
	svc, uow := newAuthService(t)
	seedUser(t, uow, "Alice", "s3cret", true)

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "s3cret"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, uow := newAuthService(t)
	seedUser(t, uow, "alice", "s3cret", true)
	seedUser(t, uow, "dormant", "s3cret", false)

	_, unknownErr := svc.Login(context.Background(), &dto.LoginRequest{Username: "nobody", Password: "s3cret"})
	_, wrongPassErr := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "wrong"})
	_, inactiveErr := svc.Login(context.Background(), &dto.LoginRequest{Username: "dormant", Password: "s3cret"})

	for name, err := range map[string]error{
		"unknown user":   unknownErr,
		"wrong password": wrongPassErr,
		"inactive user":  inactiveErr,
	} {
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("%s error = %v, want invalid credentials", name, err)
		}
		// The client-visible message must not reveal which part failed.
		if got := apperrors.GetErrorMessage(err); got != apperrors.ErrInvalidCredentials.Message {
			t.Errorf("%s message = %q, want %q", name, got, apperrors.ErrInvalidCredentials.Message)
		}
	}
}

func TestRegisterCreatesUserAndLogsIn(t *testing.T) {
	svc, uow := newAuthService(t)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username:        "bob",
		Email:           "Bob@Example.com",
		Password:        "s3cret",
		ConfirmPassword: "s3cret",
		FirstName:       "Bob",
		LastName:        "Builder",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if resp.Role != "User" {
		t.Errorf("Role = %q, want the default User", resp.Role)
	}
	if resp.Email != "bob@example.com" {
		t.Errorf("Email = %q, want lowercased", resp.Email)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected the new user to be logged in")
	}

	stored, err := uow.Repos().Users.GetByUsername(context.Background(), "bob")
	if err != nil {
		t.Fatalf("user was not persisted: %v", err)
	}
	if stored.PasswordHash == "s3cret" {
		t.Error("password was stored in the clear")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, uow := newAuthService(t)
	seedUser(t, uow, "alice", "s3cret", true)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username:        "ALICE",
		Email:           "new@example.com",
		Password:        "s3cret",
		ConfirmPassword: "s3cret",
		FirstName:       "A",
		LastName:        "B",
	})
	if !errors.Is(err, apperrors.ErrUsernameExists) {
		t.Errorf("duplicate username error = %v", err)
	}

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Username:        "carol",
		Email:           "alice@example.com",
		Password:        "s3cret",
		ConfirmPassword: "s3cret",
		FirstName:       "A",
		LastName:        "B",
	})
	if !errors.Is(err, apperrors.ErrEmailExists) {
		t.Errorf("duplicate email error = %v", err)
	}

	// Neither attempt should have left a row behind.
	if _, lookupErr := uow.Repos().Users.GetByUsername(context.Background(), "carol"); lookupErr == nil {
		t.Error("failed registration persisted a user")
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, uow := newAuthService(t)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username:        "mallory",
		Email:           "mallory@example.com",
		Password:        "s3cret",
		ConfirmPassword: "s3cret",
		FirstName:       "M",
		LastName:        "L",
		Role:            "Superuser",
	})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("error = %v, want validation failure", err)
	}
	if _, lookupErr := uow.Repos().Users.GetByUsername(context.Background(), "mallory"); lookupErr == nil {
		t.Error("rejected registration persisted a user")
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, uow := newAuthService(t)
	seedUser(t, uow, "alice", "s3cret", true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("refresh must mint a new token")
	}

	old, err := uow.Repos().RefreshTokens.GetByToken(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("old token disappeared: %v", err)
	}
	if !old.IsRevoked {
		t.Error("old token was not revoked")
	}

	// The old token must not be exchangeable a second time.
	if _, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken}); !errors.Is(err, apperrors.ErrInvalidRefreshToken) {
		t.Errorf("reused token error = %v, want invalid refresh token", err)
	}
}

func TestRefreshRejectsUnknownAndExpiredTokens(t *testing.T) {
	svc, uow := newAuthService(t)
	user := seedUser(t, uow, "alice", "s3cret", true)

	if _, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "no-such-token"}); !errors.Is(err, apperrors.ErrInvalidRefreshToken) {
		t.Errorf("unknown token error = %v", err)
	}

	expired := &model.RefreshToken{
		Token:     "expired-token",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if err := uow.Repos().RefreshTokens.Create(context.Background(), expired); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "expired-token"}); !errors.Is(err, apperrors.ErrInvalidRefreshToken) {
		t.Errorf("expired token error = %v", err)
	}
}

func TestRefreshRejectsInactiveUser(t *testing.T) {
	svc, uow := newAuthService(t)
	user := seedUser(t, uow, "alice", "s3cret", true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	deactivated := *user
	deactivated.IsActive = false
	uow.store.mu.Lock()
	uow.store.users[user.ID] = deactivated
	uow.store.mu.Unlock()

	if _, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken}); !errors.Is(err, apperrors.ErrUserInactive) {
		t.Errorf("error = %v, want user inactive", err)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, uow := newAuthService(t)
	seedUser(t, uow, "alice", "s3cret", true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(context.Background(), login.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if err := svc.Logout(context.Background(), login.RefreshToken); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
	if err := svc.Logout(context.Background(), "never-issued"); err != nil {
		t.Fatalf("Logout of unknown token: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken}); !errors.Is(err, apperrors.ErrInvalidRefreshToken) {
		t.Errorf("token usable after logout: %v", err)
	}
}

func TestRevokeAllForUser(t *testing.T) {
	svc, uow := newAuthService(t)
	seedUser(t, uow, "alice", "s3cret", true)
	seedUser(t, uow, "bob", "s3cret", true)

	var tokens []string
	for i := 0; i < 3; i++ {
		login, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "s3cret"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		tokens = append(tokens, login.RefreshToken)
	}
	otherLogin, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "bob", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	alice, err := uow.Repos().Users.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}

	count, err := svc.RevokeAllForUser(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("RevokeAllForUser: %v", err)
	}
	if count != 3 {
		t.Errorf("revoked %d tokens, want 3", count)
	}

	for _, token := range tokens {
		if _, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: token}); !errors.Is(err, apperrors.ErrInvalidRefreshToken) {
			t.Errorf("token %q still usable: %v", token, err)
		}
	}

	// The other user's session is untouched.
	if _, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: otherLogin.RefreshToken}); err != nil {
		t.Errorf("unrelated session was revoked: %v", err)
	}
}
