package repositories

import (
	"testing"

	"rentChat/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDb opens a fresh in-memory database per test. Connections are
// capped at one so every query sees the same in-memory instance.
func setupTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying connection: %v", err)
	}
	sqlDb.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Conversation{}, &models.Message{}); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return db
}

func newTestConversation(propertyID, tenantID, landlordID uint) *models.Conversation {
	return &models.Conversation{
		PropertyID:    propertyID,
		PropertyTitle: "Studio near LRT",
		PropertyPrice: 1200,
		TenantID:      tenantID,
		TenantName:    "Aina Rahman",
		LandlordID:    landlordID,
		LandlordName:  "Mr. Tan",
	}
}
