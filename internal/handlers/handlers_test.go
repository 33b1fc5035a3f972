package handlers

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stockpilot/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{}, &models.Item{}, &models.Customer{},
		&models.Invoice{}, &models.InvoiceItem{}, &models.Transaction{}, &models.User{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
