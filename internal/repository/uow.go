package repository

import (
	"context"

	"gorm.io/gorm"
)

// GormUnitOfWork implements UnitOfWork over gorm's transaction support.
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func reposFor(db *gorm.DB) Repositories {
	return Repositories{
		Users:         NewUserRepository(db),
		RefreshTokens: NewRefreshTokenRepository(db),
		Owners:        NewOwnerRepository(db),
		Properties:    NewPropertyRepository(db),
		Images:        NewPropertyImageRepository(db),
		Traces:        NewPropertyTraceRepository(db),
	}
}

// Repos returns stores running outside any transaction.
func (u *GormUnitOfWork) Repos() Repositories {
	return reposFor(u.db)
}

// Do runs fn with stores bound to one database transaction.
func (u *GormUnitOfWork) Do(ctx context.Context, fn func(Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}
