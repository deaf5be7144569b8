package repository

import (
	"context"

	"github.com/Payphone-Digital/property-api/internal/model"
	ctxutil "github.com/Payphone-Digital/property-api/pkg/context"
	"github.com/Payphone-Digital/property-api/pkg/logger"
	"gorm.io/gorm"
)

// GormPropertyTraceRepository is append-only: traces are the immutable
// audit trail, so no update or delete method exists.
type GormPropertyTraceRepository struct {
	db *gorm.DB
}

func NewPropertyTraceRepository(db *gorm.DB) *GormPropertyTraceRepository {
	return &GormPropertyTraceRepository{db: db}
}

func (r *GormPropertyTraceRepository) GetByID(ctx context.Context, id uint) (*model.PropertyTrace, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByID")

	var trace model.PropertyTrace
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&trace)
	if result.Error != nil {
		logger.DebugWithContext(ctx, "Trace lookup failed").
			Uint("lookup_id", id).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &trace, nil
}

func (r *GormPropertyTraceRepository) GetByPropertyID(ctx context.Context, propertyID uint) ([]model.PropertyTrace, error) {
	ctx = ctxutil.WithOperation(ctx, "repository", "GetByPropertyID")

	var traces []model.PropertyTrace
	result := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("date_sale ASC").
		Find(&traces)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to list property traces").
			Uint("parent_id", propertyID).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return traces, nil
}

func (r *GormPropertyTraceRepository) Create(ctx context.Context, trace *model.PropertyTrace) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "Create")

	result := r.db.WithContext(ctx).Create(trace)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to append property trace").
			Uint("parent_id", trace.PropertyID).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}
