package repository

import (
	"context"

	"github.com/Payphone-Digital/property-api/internal/model"
	ctxutil "github.com/Payphone-Digital/property-api/pkg/context"
	"github.com/Payphone-Digital/property-api/pkg/logger"
	"gorm.io/gorm"
)

type GormPropertyImageRepository struct {
	db *gorm.DB
}

func NewPropertyImageRepository(db *gorm.DB) *GormPropertyImageRepository {
	return &GormPropertyImageRepository{db: db}
}

func (r *GormPropertyImageRepository) GetByID(ctx context.Context, id uint) (*model.PropertyImage, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByID")

	var image model.PropertyImage
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&image)
	if result.Error != nil {
		logger.DebugWithContext(ctx, "Image lookup failed").
			Uint("lookup_id", id).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &image, nil
}

func (r *GormPropertyImageRepository) GetEnabledByPropertyID(ctx context.Context, propertyID uint) ([]model.PropertyImage, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetEnabledByPropertyID")

	var images []model.PropertyImage
	result := r.db.WithContext(ctx).
		Where("property_id = ? AND enabled = ?", propertyID, true).
		Find(&images)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to list property images").
			Uint("parent_id", propertyID).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return images, nil
}

func (r *GormPropertyImageRepository) Create(ctx context.Context, image *model.PropertyImage) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Create")

	result := r.db.WithContext(ctx).Create(image)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to store property image").
			Uint("parent_id", image.PropertyID).
			Int("size_bytes", len(image.File)).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

func (r *GormPropertyImageRepository) SoftDelete(ctx context.Context, id uint) (bool, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "SoftDelete")

	result := r.db.WithContext(ctx).
		Model(&model.PropertyImage{}).
		Where("id = ? AND enabled = ?", id, true).
		Update("enabled", false)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to soft delete image").
			Uint("delete_id", id).
			Err(result.Error).
			Log()
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
