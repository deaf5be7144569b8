package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/property-api/internal/model"
	ctxutil "github.com/Payphone-Digital/property-api/pkg/context"
	"github.com/Payphone-Digital/property-api/pkg/logger"
	"gorm.io/gorm"
)

type GormPropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

func (r *GormPropertyRepository) GetByID(ctx context.Context, id uint) (*model.Property, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByID")

	var property model.Property
	result := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Images", "enabled = ?", true).
		Preload("Traces").
		Where("id = ?", id).
		First(&property)
	if result.Error != nil {
		logger.DebugWithContext(ctx, "Property lookup failed").
			Uint("lookup_id", id).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &property, nil
}

// GetFiltered applies the conjunctive criteria of the filter, counts the
// whole matching set, then returns one page ordered by name. Enabled is a
// criterion like any other; the handler defaults it to true.
func (r *GormPropertyRepository) GetFiltered(ctx context.Context, filter model.PropertyFilter) ([]model.Property, int64, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetFiltered")

	start := time.Now()
	query := r.db.WithContext(ctx).Model(&model.Property{})

	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Address != "" {
		query = query.Where("address LIKE ?", "%"+filter.Address+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.MinYear != nil {
		query = query.Where("year >= ?", *filter.MinYear)
	}
	if filter.MaxYear != nil {
		query = query.Where("year <= ?", *filter.MaxYear)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Enabled != nil {
		query = query.Where("enabled = ?", *filter.Enabled)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count filtered properties").
			Err(err).
			Log()
		return nil, 0, err
	}

	var properties []model.Property
	err := query.
		Preload("Owner").
		Preload("Images", "enabled = ?", true).
		Order("name ASC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&properties).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch filtered properties").
			Err(err).
			Log()
		return nil, 0, err
	}

	logger.DebugWithContext(ctx, "Filtered properties fetched").
		Int64("total", total).
		Int("returned_count", len(properties)).
		Int("page_number", filter.PageNumber).
		Duration(time.Since(start)).
		Log()

	return properties, total, nil
}

func (r *GormPropertyRepository) Create(ctx context.Context, property *model.Property) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Create")

	result := r.db.WithContext(ctx).
		Omit("Owner", "Images", "Traces").
		Create(property)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create property").
			String("name", property.Name).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Property created").
		String("name", property.Name).
		Uint("created_id", property.ID).
		Log()

	return nil
}

func (r *GormPropertyRepository) Update(ctx context.Context, property *model.Property) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Update")

	result := r.db.WithContext(ctx).
		Omit("Owner", "Images", "Traces").
		Save(property)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update property").
			Uint("update_id", property.ID).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

// SoftDelete sets enabled=false and leaves the row with its children intact.
func (r *GormPropertyRepository) SoftDelete(ctx context.Context, id uint) (bool, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "SoftDelete")

	result := r.db.WithContext(ctx).
		Model(&model.Property{}).
		Where("id = ? AND enabled = ?", id, true).
		Update("enabled", false)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to soft delete property").
			Uint("delete_id", id).
			Err(result.Error).
			Log()
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *GormPropertyRepository) Exists(ctx context.Context, id uint) (bool, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "Exists")

	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.Property{}).
		Where("id = ?", id).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}
