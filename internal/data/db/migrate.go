package db

import (
	"fmt"

	types "github.com/yungbote/maturity-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// =========================
		// Identity
		// =========================
		&types.Organization{},
		&types.User{},

		// =========================
		// Framework catalog
		// =========================
		&types.Framework{},
		&types.Domain{},
		&types.Gate{},
		&types.Question{},

		// =========================
		// Assessments
		// =========================
		&types.Assessment{},
		&types.Answer{},
		&types.DomainScore{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
