package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"delulu-backend/internal/models"
)

// setupTestDB opens a test-scoped in-memory database and migrates the
// schema. cache=shared keeps gorm's pooled connections on the same DB.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Delulu{},
		&models.Stake{},
		&models.Claim{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

const (
	testAddress  = "0x00000000000000000000000000000000000000aa"
	testAddress2 = "0x00000000000000000000000000000000000000bb"
	testAddress3 = "0x00000000000000000000000000000000000000cc"
)

// testTxHash builds a distinct well-formed tx hash per suffix.
func testTxHash(n int) string {
	return fmt.Sprintf("0x%064x", n)
}

// createTestDelulu ingests a delulu with an open staking window.
func createTestDelulu(t *testing.T, svc *DeluluService, onChainID int64, creator string) *models.Delulu {
	t.Helper()

	delulu, err := svc.Create(&models.CreateDeluluRequest{
		OnChainID:          fmt.Sprintf("%d", onChainID),
		ContentHash:        fmt.Sprintf("bafy-test-%d", onChainID),
		CreatorAddress:     creator,
		StakingDeadline:    time.Now().Add(time.Hour),
		ResolutionDeadline: time.Now().Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("failed to create test delulu %d: %v", onChainID, err)
	}
	return delulu
}
