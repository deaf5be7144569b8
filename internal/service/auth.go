package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Payphone-Digital/property-api/internal/dto"
	apperrors "github.com/Payphone-Digital/property-api/internal/errors"
	"github.com/Payphone-Digital/property-api/internal/model"
	"github.com/Payphone-Digital/property-api/internal/repository"
	ctxutil "github.com/Payphone-Digital/property-api/pkg/context"
	"github.com/Payphone-Digital/property-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService implements login, registration and refresh-token rotation.
type AuthService struct {
	uow        repository.UnitOfWork
	jwt        *JWTService
	refreshTTL time.Duration
	now        func() time.Time
}

func NewAuthService(uow repository.UnitOfWork, jwt *JWTService, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		uow:        uow,
		jwt:        jwt,
		refreshTTL: refreshTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Login verifies credentials and mints an access/refresh token pair.
// User-not-found and wrong-password are deliberately indistinguishable
// to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "AuthService", "Login")

	user, err := s.uow.Repos().Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WarnWithContext(ctx, "login attempt for unknown user").
				String("username", req.Username).
				Log()
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.WarnWithContext(ctx, "login attempt with wrong password").
			Uint("user_id", user.ID).
			Log()
		return nil, apperrors.ErrInvalidCredentials
	}

	// Deactivated accounts fail exactly like bad credentials so the response
	// reveals nothing about account state.
	if !user.IsActive {
		logger.WarnWithContext(ctx, "login attempt for inactive user").
			Uint("user_id", user.ID).
			Log()
		return nil, apperrors.ErrInvalidCredentials
	}

	var resp *dto.AuthResponse
	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		refresh, issueErr := s.issueTokens(ctx, repos, user)
		if issueErr != nil {
			return issueErr
		}
		resp = refresh

		if lastErr := repos.Users.UpdateLastLogin(ctx, user.ID, s.now()); lastErr != nil {
			return apperrors.WrapError(apperrors.ErrInternal, lastErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "user logged in").
		Uint("user_id", user.ID).
		String("role", user.Role.String()).
		Log()

	return resp, nil
}

// Register creates a user and immediately logs them in. Duplicate checks run
// in the same transaction as the insert so a racing registration surfaces as
// a unique-constraint error, not a half-created account.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "AuthService", "Register")

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	role := model.RoleUser
	if req.Role != "" {
		role = model.Role(req.Role)
		// The binding tag already restricts the value; this guards callers
		// that construct the request directly.
		if !role.Valid() {
			return nil, apperrors.WrapError(apperrors.ErrValidation,
				errors.New("unknown role "+req.Role))
		}
	}

	user := &model.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		IsActive:     true,
	}

	var resp *dto.AuthResponse
	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, lookupErr := repos.Users.GetByUsername(ctx, user.Username); lookupErr == nil {
			return apperrors.ErrUsernameExists
		} else if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			return apperrors.WrapError(apperrors.ErrInternal, lookupErr)
		}

		if _, lookupErr := repos.Users.GetByEmail(ctx, user.Email); lookupErr == nil {
			return apperrors.ErrEmailExists
		} else if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			return apperrors.WrapError(apperrors.ErrInternal, lookupErr)
		}

		if createErr := repos.Users.Create(ctx, user); createErr != nil {
			return apperrors.WrapError(apperrors.ErrInternal, createErr)
		}

		tokens, issueErr := s.issueTokens(ctx, repos, user)
		if issueErr != nil {
			return issueErr
		}
		resp = tokens
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "user registered").
		Uint("user_id", user.ID).
		String("username", user.Username).
		Log()

	return resp, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh pair is issued, all in one transaction. Revocation is conditional
// on the token still being live, so two concurrent refreshes with the same
// token cannot both succeed; the loser gets an invalid-token error.
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "AuthService", "Refresh")

	var resp *dto.AuthResponse
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		stored, lookupErr := repos.RefreshTokens.GetByToken(ctx, req.RefreshToken)
		if lookupErr != nil {
			if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
				return apperrors.ErrInvalidRefreshToken
			}
			return apperrors.WrapError(apperrors.ErrInternal, lookupErr)
		}

		if !stored.Usable(s.now()) {
			return apperrors.ErrInvalidRefreshToken
		}

		user, userErr := repos.Users.GetByID(ctx, stored.UserID)
		if userErr != nil {
			if errors.Is(userErr, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserInactive
			}
			return apperrors.WrapError(apperrors.ErrInternal, userErr)
		}
		if !user.IsActive {
			return apperrors.ErrUserInactive
		}

		revoked, revokeErr := repos.RefreshTokens.Revoke(ctx, stored.ID)
		if revokeErr != nil {
			return apperrors.WrapError(apperrors.ErrInternal, revokeErr)
		}
		if !revoked {
			// Someone else rotated this token first.
			return apperrors.ErrInvalidRefreshToken
		}

		tokens, issueErr := s.issueTokens(ctx, repos, user)
		if issueErr != nil {
			return issueErr
		}
		resp = tokens
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "refresh token rotated").
		Uint("user_id", resp.UserID).
		Log()

	return resp, nil
}

// Logout revokes a single refresh token. A token that is unknown, expired or
// already revoked is treated the same as a live one; logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	ctx = ctxutil.WithOperation(ctx, "AuthService", "Logout")

	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		stored, err := repos.RefreshTokens.GetByToken(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return apperrors.WrapError(apperrors.ErrInternal, err)
		}

		if _, err := repos.RefreshTokens.Revoke(ctx, stored.ID); err != nil {
			return apperrors.WrapError(apperrors.ErrInternal, err)
		}

		logger.InfoWithContext(ctx, "refresh token revoked").
			Uint("user_id", stored.UserID).
			Log()
		return nil
	})
}

// RevokeAllForUser kills every live refresh token the user has, across all
// of their sessions.
func (s *AuthService) RevokeAllForUser(ctx context.Context, userID uint) (int64, error) {
	ctx = ctxutil.WithOperation(ctx, "AuthService", "RevokeAllForUser")

	count, err := s.uow.Repos().RefreshTokens.RevokeAllForUser(ctx, userID)
	if err != nil {
		return 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "revoked all refresh tokens for user").
		Uint("user_id", userID).
		Int64("revoked", count).
		Log()

	return count, nil
}

func (s *AuthService) issueTokens(ctx context.Context, repos repository.Repositories, user *model.User) (*dto.AuthResponse, error) {
	accessToken, expiresAt, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	refreshToken, err := s.jwt.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	stored := &model.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.refreshTTL),
	}
	if err := repos.RefreshTokens.Create(ctx, stored); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &dto.AuthResponse{
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.Role.String(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}
