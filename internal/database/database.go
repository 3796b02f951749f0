package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"delulu-backend/internal/models"
)

var DB *gorm.DB

// Connect establishes a connection to the PostgreSQL database
func Connect(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Error),
		DisableForeignKeyConstraintWhenMigrating: true,
		// Normalize driver errors so unique-index violations surface as
		// gorm.ErrDuplicatedKey.
		TranslateError: true,
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info().Msg("Database connection established")
	return nil
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate() error {
	entities := []interface{}{
		&models.User{},
		&models.Delulu{},
		&models.Stake{},
		&models.Claim{},
	}

	for _, entity := range entities {
		if err := DB.AutoMigrate(entity); err != nil {
			return fmt.Errorf("migration failed for %T: %w", entity, err)
		}
	}

	log.Info().Msg("Database migrations completed")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
