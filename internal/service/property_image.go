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

// PropertyImageService attaches image binaries to properties and serves
// them back. Listings only expose enabled images.
type PropertyImageService struct {
	uow repository.UnitOfWork
}

func NewPropertyImageService(uow repository.UnitOfWork) *PropertyImageService {
	return &PropertyImageService{uow: uow}
}

// Add stores an image for an existing property and returns its metadata.
func (s *PropertyImageService) Add(ctx context.Context, propertyID uint, file []byte) (*dto.PropertyImageResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "PropertyImageService", "Add")

	image := &model.PropertyImage{
		PropertyID: propertyID,
		File:       file,
		Enabled:    true,
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		exists, existsErr := repos.Properties.Exists(ctx, propertyID)
		if existsErr != nil {
			return apperrors.WrapError(apperrors.ErrInternal, existsErr)
		}
		if !exists {
			return apperrors.ErrPropertyNotFound
		}

		if createErr := repos.Images.Create(ctx, image); createErr != nil {
			return apperrors.WrapError(apperrors.ErrInternal, createErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "property image stored").
		Uint("property_id", propertyID).
		Uint("image_id", image.ID).
		Int("size_bytes", len(file)).
		Log()

	return dto.NewPropertyImageResponse(image), nil
}

// GetByProperty lists metadata for the enabled images of a property.
func (s *PropertyImageService) GetByProperty(ctx context.Context, propertyID uint) ([]dto.PropertyImageResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "PropertyImageService", "GetByProperty")

	exists, err := s.uow.Repos().Properties.Exists(ctx, propertyID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !exists {
		return nil, apperrors.ErrPropertyNotFound
	}

	images, err := s.uow.Repos().Images.GetEnabledByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	items := make([]dto.PropertyImageResponse, 0, len(images))
	for i := range images {
		items = append(items, *dto.NewPropertyImageResponse(&images[i]))
	}
	return items, nil
}

// GetFile returns the raw bytes of one enabled image.
func (s *PropertyImageService) GetFile(ctx context.Context, id uint) ([]byte, error) {
	ctx = ctxutil.WithOperation(ctx, "PropertyImageService", "GetFile")

	image, err := s.uow.Repos().Images.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrImageNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !image.Enabled {
		return nil, apperrors.ErrImageNotFound
	}

	return image.File, nil
}

// Disable hides an image from listings and downloads without deleting it.
func (s *PropertyImageService) Disable(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "PropertyImageService", "Disable")

	disabled, err := s.uow.Repos().Images.SoftDelete(ctx, id)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !disabled {
		return apperrors.ErrImageNotFound
	}

	logger.InfoWithContext(ctx, "property image disabled").
		Uint("image_id", id).
		Log()

	return nil
}
