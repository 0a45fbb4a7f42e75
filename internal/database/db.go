package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/recruitbase/recruitbase-api/internal/models"
)

// Connect opens the Postgres pool and runs migrations. The DSN comes
// from the environment; there is no embedded fallback on purpose.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	// Migration: this creates the tables in Postgres automatically
	err = db.AutoMigrate(
		&models.Company{},
		&models.Department{},
		&models.Job{},
		&models.Application{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
