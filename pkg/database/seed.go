package database

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Payphone-Digital/property-api/config"
	"github.com/Payphone-Digital/property-api/internal/model"
	"github.com/Payphone-Digital/property-api/pkg/logger"
)

// SeedAdminUser creates the initial admin account when the configured
// username does not exist yet. Without a configured password nothing is
// seeded; deployments that manage accounts elsewhere leave it unset.
func SeedAdminUser(db *gorm.DB, cfg config.SeedConfig) error {
	if cfg.AdminPassword == "" {
		return nil
	}

	var existing model.User
	err := db.Where("LOWER(username) = LOWER(?)", cfg.AdminUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := model.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		FirstName:    "System",
		LastName:     "Administrator",
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	logger.Logger.Info("seeded admin user",
		zap.String("username", admin.Username),
	)
	return nil
}
