package repository

import (
	"context"

	"github.com/Payphone-Digital/property-api/internal/model"
	ctxutil "github.com/Payphone-Digital/property-api/pkg/context"
	"github.com/Payphone-Digital/property-api/pkg/logger"
	"gorm.io/gorm"
)

type GormRefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *GormRefreshTokenRepository {
	return &GormRefreshTokenRepository{db: db}
}

func (r *GormRefreshTokenRepository) GetByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByToken")

	var refreshToken model.RefreshToken
	result := r.db.WithContext(ctx).Where("token = ?", token).First(&refreshToken)
	if result.Error != nil {
		logger.DebugWithContext(ctx, "Refresh token lookup failed").
			Int("token_length", len(token)).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &refreshToken, nil
}

func (r *GormRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Create")

	result := r.db.WithContext(ctx).Create(token)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to persist refresh token").
			Uint("owner_id", token.UserID).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

// Revoke flips is_revoked only when the token is still active. The
// conditional update resolves concurrent rotations of the same token: the
// loser sees zero affected rows.
func (r *GormRefreshTokenRepository) Revoke(ctx context.Context, id uint) (bool, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "Revoke")

	result := r.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("id = ? AND is_revoked = ?", id, false).
		Update("is_revoked", true)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to revoke refresh token").
			Uint("token_id", id).
			Err(result.Error).
			Log()
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *GormRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uint) (int64, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "RevokeAllForUser")

	result := r.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		Update("is_revoked", true)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to revoke user tokens").
			Uint("user_id", userID).
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	logger.InfoWithContext(ctx, "User tokens revoked").
		Uint("user_id", userID).
		Int64("revoked_count", result.RowsAffected).
		Log()

	return result.RowsAffected, nil
}
