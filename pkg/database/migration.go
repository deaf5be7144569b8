package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Payphone-Digital/property-api/internal/model"
	"github.com/Payphone-Digital/property-api/pkg/logger"
)

// uniqueIndexStatements enforce case-insensitive uniqueness for user
// lookups, which compare on LOWER(username) and LOWER(email). A plain
// unique column would still admit "Alice" next to "alice".
var uniqueIndexStatements = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_lower ON users (LOWER(username))",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email))",
}

// RunMigrations creates or updates the schema for every entity. Order
// matters: referenced tables first.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Owner{},
		&model.Property{},
		&model.PropertyImage{},
		&model.PropertyTrace{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, stmt := range uniqueIndexStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	logger.Logger.Info("database migrations applied")
	return nil
}
