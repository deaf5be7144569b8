package repository

import (
	"context"

	"github.com/Payphone-Digital/property-api/internal/model"
	ctxutil "github.com/Payphone-Digital/property-api/pkg/context"
	"github.com/Payphone-Digital/property-api/pkg/logger"
	"gorm.io/gorm"
)

type GormOwnerRepository struct {
	db *gorm.DB
}

func NewOwnerRepository(db *gorm.DB) *GormOwnerRepository {
	return &GormOwnerRepository{db: db}
}

func (r *GormOwnerRepository) GetByID(ctx context.Context, id uint) (*model.Owner, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByID")

	var owner model.Owner
	result := r.db.WithContext(ctx).
		Preload("Properties").
		Where("id = ?", id).
		First(&owner)
	if result.Error != nil {
		logger.DebugWithContext(ctx, "Owner lookup failed").
			Uint("lookup_id", id).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &owner, nil
}

func (r *GormOwnerRepository) GetAll(ctx context.Context) ([]model.Owner, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetAll")

	var owners []model.Owner
	result := r.db.WithContext(ctx).Preload("Properties").Find(&owners)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to list owners").
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return owners, nil
}

func (r *GormOwnerRepository) Create(ctx context.Context, owner *model.Owner) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Create")

	result := r.db.WithContext(ctx).Create(owner)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create owner").
			String("name", owner.Name).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Owner created").
		String("name", owner.Name).
		Uint("created_id", owner.ID).
		Log()

	return nil
}

func (r *GormOwnerRepository) Update(ctx context.Context, owner *model.Owner) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Update")

	// Save writes every column; the service merged the patch already.
	result := r.db.WithContext(ctx).Omit("Properties").Save(owner)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update owner").
			Uint("update_id", owner.ID).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

// Delete removes the owner row for good. Callers check for enabled
// properties first; the database restricts nothing here because disabled
// property history is allowed to outlive its owner check.
func (r *GormOwnerRepository) Delete(ctx context.Context, id uint) (bool, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "Delete")

	result := r.db.WithContext(ctx).Delete(&model.Owner{}, id)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete owner").
			Uint("delete_id", id).
			Err(result.Error).
			Log()
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *GormOwnerRepository) Exists(ctx context.Context, id uint) (bool, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "Exists")

	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.Owner{}).
		Where("id = ?", id).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (r *GormOwnerRepository) HasEnabledProperties(ctx context.Context, id uint) (bool, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "HasEnabledProperties")

	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.Property{}).
		Where("owner_id = ? AND enabled = ?", id, true).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}
