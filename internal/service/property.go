package service

import (
	"context"
	"errors"
	"time"

	"github.com/Payphone-Digital/property-api/internal/constants"
	"github.com/Payphone-Digital/property-api/internal/dto"
	apperrors "github.com/Payphone-Digital/property-api/internal/errors"
	"github.com/Payphone-Digital/property-api/internal/model"
	"github.com/Payphone-Digital/property-api/internal/repository"
	ctxutil "github.com/Payphone-Digital/property-api/pkg/context"
	"github.com/Payphone-Digital/property-api/pkg/logger"
	"gorm.io/gorm"
)

// PropertyService holds the property lifecycle: creation writes an audit
// trace, price changes write an audit trace, deletion only flips the
// enabled flag.
type PropertyService struct {
	uow repository.UnitOfWork
	now func() time.Time
}

func NewPropertyService(uow repository.UnitOfWork) *PropertyService {
	return &PropertyService{
		uow: uow,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// GetByID returns one property with its owner, enabled images and traces.
func (s *PropertyService) GetByID(ctx context.Context, id uint) (*dto.PropertyResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "PropertyService", "GetByID")

	property, err := s.uow.Repos().Properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPropertyNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return dto.NewPropertyResponse(property), nil
}

// GetFiltered lists properties matching every supplied criterion, ordered
// by name, with the total match count taken before pagination.
func (s *PropertyService) GetFiltered(ctx context.Context, filter *model.PropertyFilter) (*dto.PagedPropertiesResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "PropertyService", "GetFiltered")

	properties, total, err := s.uow.Repos().Properties.GetFiltered(ctx, *filter)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	items := make([]dto.PropertyResponse, 0, len(properties))
	for i := range properties {
		items = append(items, *dto.NewPropertyResponse(&properties[i]))
	}

	return dto.NewPagedPropertiesResponse(items, total, filter.PageNumber, filter.PageSize), nil
}

// Create inserts a property for an existing owner and records a
// "Property Created" trace at the current price with zero tax, both in
// one transaction.
func (s *PropertyService) Create(ctx context.Context, req *dto.CreatePropertyRequest) (*dto.PropertyResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "PropertyService", "Create")

	property := &model.Property{
		Name:         req.Name,
		Address:      req.Address,
		Price:        req.Price,
		CodeInternal: req.CodeInternal,
		Year:         req.Year,
		OwnerID:      req.OwnerID,
		Enabled:      true,
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		ownerExists, existsErr := repos.Owners.Exists(ctx, req.OwnerID)
		if existsErr != nil {
			return apperrors.WrapError(apperrors.ErrInternal, existsErr)
		}
		if !ownerExists {
			return apperrors.ErrOwnerNotFound
		}

		if createErr := repos.Properties.Create(ctx, property); createErr != nil {
			return apperrors.WrapError(apperrors.ErrInternal, createErr)
		}

		name := model.TracePropertyCreated
		value := property.PriceOrZero()
		tax := 0.0
		trace := &model.PropertyTrace{
			PropertyID: property.ID,
			DateSale:   s.now(),
			Name:       &name,
			Value:      &value,
			Tax:        &tax,
		}
		if traceErr := repos.Traces.Create(ctx, trace); traceErr != nil {
			return apperrors.WrapError(apperrors.ErrInternal, traceErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "property created").
		Uint("property_id", property.ID).
		Uint("owner_id", property.OwnerID).
		Log()

	return s.GetByID(ctx, property.ID)
}

// Update applies a merge patch: only the fields present in the request
// change, everything else keeps its stored value. A supplied price is
// rejected rather than ignored; price moves only through ChangePrice so the
// audit trail stays complete.
func (s *PropertyService) Update(ctx context.Context, id uint, req *dto.UpdatePropertyRequest) (*dto.PropertyResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "PropertyService", "Update")

	if req.Price != nil {
		return nil, apperrors.WrapError(apperrors.ErrValidation,
			errors.New("price can only change through the price operation"))
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		property, getErr := repos.Properties.GetByID(ctx, id)
		if getErr != nil {
			if errors.Is(getErr, gorm.ErrRecordNotFound) {
				return apperrors.ErrPropertyNotFound
			}
			return apperrors.WrapError(apperrors.ErrInternal, getErr)
		}

		if req.Name != nil {
			property.Name = *req.Name
		}
		if req.Address != nil {
			property.Address = *req.Address
		}
		if req.CodeInternal != nil {
			property.CodeInternal = req.CodeInternal
		}
		if req.Year != nil {
			property.Year = req.Year
		}
		if req.Enabled != nil {
			property.Enabled = *req.Enabled
		}
		if req.OwnerID != nil {
			ownerExists, existsErr := repos.Owners.Exists(ctx, *req.OwnerID)
			if existsErr != nil {
				return apperrors.WrapError(apperrors.ErrInternal, existsErr)
			}
			if !ownerExists {
				return apperrors.ErrOwnerNotFound
			}
			property.OwnerID = *req.OwnerID
		}

		if updateErr := repos.Properties.Update(ctx, property); updateErr != nil {
			return apperrors.WrapError(apperrors.ErrInternal, updateErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "property updated").
		Uint("property_id", id).
		Log()

	return s.GetByID(ctx, id)
}

// ChangePrice sets a new price and records a "Price Change" trace carrying
// the new value with zero tax, in one transaction.
func (s *PropertyService) ChangePrice(ctx context.Context, id uint, newPrice float64) (*dto.PropertyResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "PropertyService", "ChangePrice")

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		property, getErr := repos.Properties.GetByID(ctx, id)
		if getErr != nil {
			if errors.Is(getErr, gorm.ErrRecordNotFound) {
				return apperrors.ErrPropertyNotFound
			}
			return apperrors.WrapError(apperrors.ErrInternal, getErr)
		}

		property.Price = &newPrice
		if updateErr := repos.Properties.Update(ctx, property); updateErr != nil {
			return apperrors.WrapError(apperrors.ErrInternal, updateErr)
		}

		name := model.TracePriceChange
		value := newPrice
		tax := 0.0
		trace := &model.PropertyTrace{
			PropertyID: property.ID,
			DateSale:   s.now(),
			Name:       &name,
			Value:      &value,
			Tax:        &tax,
		}
		if traceErr := repos.Traces.Create(ctx, trace); traceErr != nil {
			return apperrors.WrapError(apperrors.ErrInternal, traceErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "property price changed").
		Uint("property_id", id).
		Float64("new_price", newPrice).
		Log()

	return s.GetByID(ctx, id)
}

// Delete disables a property. The row, its images and its traces stay in
// the database.
func (s *PropertyService) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "PropertyService", "Delete")

	disabled, err := s.uow.Repos().Properties.SoftDelete(ctx, id)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !disabled {
		return apperrors.ErrPropertyNotFound
	}

	logger.InfoWithContext(ctx, "property disabled").
		Uint("property_id", id).
		Log()

	return nil
}

// NormalizeFilter clamps pagination to sane bounds and hides disabled rows
// unless the caller asked for them.
func NormalizeFilter(filter *model.PropertyFilter) {
	if filter.Enabled == nil {
		enabled := true
		filter.Enabled = &enabled
	}
	if filter.PageNumber < constants.MinPageNumber {
		filter.PageNumber = constants.DefaultPageNumber
	}
	if filter.PageSize < constants.MinPageSize {
		filter.PageSize = constants.DefaultPageSize
	}
	if filter.PageSize > constants.MaxPageSize {
		filter.PageSize = constants.MaxPageSize
	}
}
