package service

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/Payphone-Digital/property-api/internal/dto"
	apperrors "github.com/Payphone-Digital/property-api/internal/errors"
	"github.com/Payphone-Digital/property-api/internal/model"
	"github.com/Payphone-Digital/property-api/internal/repository"
	ctxutil "github.com/Payphone-Digital/property-api/pkg/context"
	"github.com/Payphone-Digital/property-api/pkg/logger"
	"gorm.io/gorm"
)

// OwnerService manages owners. Owners delete hard, but never while they
// still hold enabled properties.
type OwnerService struct {
	uow repository.UnitOfWork
}

func NewOwnerService(uow repository.UnitOfWork) *OwnerService {
	return &OwnerService{uow: uow}
}

func (s *OwnerService) GetAll(ctx context.Context) ([]dto.OwnerResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "OwnerService", "GetAll")

	owners, err := s.uow.Repos().Owners.GetAll(ctx)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	items := make([]dto.OwnerResponse, 0, len(owners))
	for i := range owners {
		items = append(items, *dto.NewOwnerResponse(&owners[i]))
	}
	return items, nil
}

func (s *OwnerService) GetByID(ctx context.Context, id uint) (*dto.OwnerResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "OwnerService", "GetByID")

	owner, err := s.uow.Repos().Owners.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOwnerNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return dto.NewOwnerResponse(owner), nil
}

func (s *OwnerService) Create(ctx context.Context, req *dto.CreateOwnerRequest) (*dto.OwnerResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "OwnerService", "Create")

	photo, err := decodePhoto(req.PhotoBase64)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrValidation, err)
	}

	owner := &model.Owner{
		Name:     req.Name,
		Address:  req.Address,
		Birthday: req.Birthday,
		Photo:    photo,
	}

	if err := s.uow.Repos().Owners.Create(ctx, owner); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "owner created").
		Uint("owner_id", owner.ID).
		Log()

	return dto.NewOwnerResponse(owner), nil
}

// Update applies a merge patch: only the fields present in the request
// change.
func (s *OwnerService) Update(ctx context.Context, id uint, req *dto.UpdateOwnerRequest) (*dto.OwnerResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "OwnerService", "Update")

	var updated *model.Owner
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		owner, getErr := repos.Owners.GetByID(ctx, id)
		if getErr != nil {
			if errors.Is(getErr, gorm.ErrRecordNotFound) {
				return apperrors.ErrOwnerNotFound
			}
			return apperrors.WrapError(apperrors.ErrInternal, getErr)
		}

		if req.Name != nil {
			owner.Name = *req.Name
		}
		if req.Address != nil {
			owner.Address = req.Address
		}
		if req.Birthday != nil {
			owner.Birthday = req.Birthday
		}
		if req.PhotoBase64 != "" {
			photo, decodeErr := decodePhoto(req.PhotoBase64)
			if decodeErr != nil {
				return apperrors.WrapError(apperrors.ErrValidation, decodeErr)
			}
			owner.Photo = photo
		}

		if updateErr := repos.Owners.Update(ctx, owner); updateErr != nil {
			return apperrors.WrapError(apperrors.ErrInternal, updateErr)
		}
		updated = owner
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "owner updated").
		Uint("owner_id", id).
		Log()

	return dto.NewOwnerResponse(updated), nil
}

// Delete removes an owner permanently. The check and the delete share a
// transaction so a property enabled in between cannot be orphaned.
func (s *OwnerService) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "OwnerService", "Delete")

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		hasProperties, checkErr := repos.Owners.HasEnabledProperties(ctx, id)
		if checkErr != nil {
			return apperrors.WrapError(apperrors.ErrInternal, checkErr)
		}
		if hasProperties {
			return apperrors.ErrOwnerHasProperties
		}

		deleted, deleteErr := repos.Owners.Delete(ctx, id)
		if deleteErr != nil {
			return apperrors.WrapError(apperrors.ErrInternal, deleteErr)
		}
		if !deleted {
			return apperrors.ErrOwnerNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.InfoWithContext(ctx, "owner deleted").
		Uint("owner_id", id).
		Log()

	return nil
}

func decodePhoto(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(encoded)
}
