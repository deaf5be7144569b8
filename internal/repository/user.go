package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/property-api/internal/model"
	ctxutil "github.com/Payphone-Digital/property-api/pkg/context"
	"github.com/Payphone-Digital/property-api/pkg/logger"
	"gorm.io/gorm"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByID")

	var user model.User
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	if result.Error != nil {
		logger.DebugWithContext(ctx, "User lookup by id failed").
			Uint("lookup_id", id).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &user, nil
}

// GetByUsername performs a case-insensitive exact match.
func (r *GormUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByUsername")

	var user model.User
	result := r.db.WithContext(ctx).
		Where("LOWER(username) = LOWER(?)", username).
		First(&user)
	if result.Error != nil {
		logger.DebugWithContext(ctx, "User lookup by username failed").
			String("username", username).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &user, nil
}

// GetByEmail performs a case-insensitive exact match.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByEmail")

	var user model.User
	result := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user)
	if result.Error != nil {
		logger.DebugWithContext(ctx, "User lookup by email failed").
			String("email", email).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Create")

	start := time.Now()
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("username", user.Username).
			Duration(time.Since(start)).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "User created").
		String("username", user.Username).
		Uint("created_id", user.ID).
		Duration(time.Since(start)).
		Log()

	return nil
}

func (r *GormUserRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "UpdateLastLogin")

	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("last_login_at", at)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update last login").
			Uint("update_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
