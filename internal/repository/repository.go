package repository

import (
	"context"
	"time"

	"github.com/Payphone-Digital/property-api/internal/model"
)

// Not-found is reported as gorm.ErrRecordNotFound by every implementation so
// services can branch with errors.Is regardless of the backing store.

type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
}

type RefreshTokenRepository interface {
	GetByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	Create(ctx context.Context, token *model.RefreshToken) error
	// Revoke flips is_revoked on a still-active token. It reports false when
	// the row is missing or already revoked, which is how a concurrent
	// rotation loser finds out.
	Revoke(ctx context.Context, id uint) (bool, error)
	RevokeAllForUser(ctx context.Context, userID uint) (int64, error)
}

type OwnerRepository interface {
	GetByID(ctx context.Context, id uint) (*model.Owner, error)
	GetAll(ctx context.Context) ([]model.Owner, error)
	Create(ctx context.Context, owner *model.Owner) error
	Update(ctx context.Context, owner *model.Owner) error
	Delete(ctx context.Context, id uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	HasEnabledProperties(ctx context.Context, id uint) (bool, error)
}

type PropertyRepository interface {
	GetByID(ctx context.Context, id uint) (*model.Property, error)
	GetFiltered(ctx context.Context, filter model.PropertyFilter) ([]model.Property, int64, error)
	Create(ctx context.Context, property *model.Property) error
	Update(ctx context.Context, property *model.Property) error
	SoftDelete(ctx context.Context, id uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type PropertyImageRepository interface {
	GetByID(ctx context.Context, id uint) (*model.PropertyImage, error)
	GetEnabledByPropertyID(ctx context.Context, propertyID uint) ([]model.PropertyImage, error)
	Create(ctx context.Context, image *model.PropertyImage) error
	SoftDelete(ctx context.Context, id uint) (bool, error)
}

type PropertyTraceRepository interface {
	GetByID(ctx context.Context, id uint) (*model.PropertyTrace, error)
	GetByPropertyID(ctx context.Context, propertyID uint) ([]model.PropertyTrace, error)
	Create(ctx context.Context, trace *model.PropertyTrace) error
}

// Repositories bundles every store over one database handle. Inside
// UnitOfWork.Do the bundle is bound to the transaction.
type Repositories struct {
	Users         UserRepository
	RefreshTokens RefreshTokenRepository
	Owners        OwnerRepository
	Properties    PropertyRepository
	Images        PropertyImageRepository
	Traces        PropertyTraceRepository
}

// UnitOfWork runs multi-step writes in a single transaction. Returning an
// error from fn rolls everything back.
type UnitOfWork interface {
	Repos() Repositories
	Do(ctx context.Context, fn func(Repositories) error) error
}
