package service

import (
	"context"
	"errors"

	"github.com/Payphone-Digital/property-api/internal/dto"
	apperrors "github.com/Payphone-Digital/property-api/internal/errors"
	"github.com/Payphone-Digital/property-api/internal/model"
	"github.com/Payphone-Digital/property-api/internal/repository"
	ctxutil "github.com/Payphone-Digital/property-api/pkg/context"
	"github.com/Payphone-Digital/property-api/pkg/logger"
	"gorm.io/gorm"
)

// PropertyTraceService records transaction history rows. Traces are
// append-only: there is no update or delete.
type PropertyTraceService struct {
	uow repository.UnitOfWork
}

func NewPropertyTraceService(uow repository.UnitOfWork) *PropertyTraceService {
	return &PropertyTraceService{uow: uow}
}

// GetByProperty lists every trace of a property oldest-first.
func (s *PropertyTraceService) GetByProperty(ctx context.Context, propertyID uint) ([]dto.PropertyTraceResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "PropertyTraceService", "GetByProperty")

	exists, err := s.uow.Repos().Properties.Exists(ctx, propertyID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !exists {
		return nil, apperrors.ErrPropertyNotFound
	}

	traces, err := s.uow.Repos().Traces.GetByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	items := make([]dto.PropertyTraceResponse, 0, len(traces))
	for i := range traces {
		items = append(items, *dto.NewPropertyTraceResponse(&traces[i]))
	}
	return items, nil
}

// GetByID returns a single trace row.
func (s *PropertyTraceService) GetByID(ctx context.Context, id uint) (*dto.PropertyTraceResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "PropertyTraceService", "GetByID")

	trace, err := s.uow.Repos().Traces.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTraceNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return dto.NewPropertyTraceResponse(trace), nil
}

// Create records a manual trace, for sales registered outside the price
// change flow.
func (s *PropertyTraceService) Create(ctx context.Context, propertyID uint, req *dto.CreatePropertyTraceRequest) (*dto.PropertyTraceResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "PropertyTraceService", "Create")

	trace := &model.PropertyTrace{
		PropertyID: propertyID,
		DateSale:   req.DateSale,
		Name:       req.Name,
		Value:      req.Value,
		Tax:        req.Tax,
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		exists, existsErr := repos.Properties.Exists(ctx, propertyID)
		if existsErr != nil {
			return apperrors.WrapError(apperrors.ErrInternal, existsErr)
		}
		if !exists {
			return apperrors.ErrPropertyNotFound
		}

		if createErr := repos.Traces.Create(ctx, trace); createErr != nil {
			return apperrors.WrapError(apperrors.ErrInternal, createErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "property trace recorded").
		Uint("property_id", propertyID).
		Uint("trace_id", trace.ID).
		Log()

	return dto.NewPropertyTraceResponse(trace), nil
}
