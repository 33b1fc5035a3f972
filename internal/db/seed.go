package db

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stockpilot/backend/internal/models"
)

const (
	seedAdminEmail    = "admin@inventory.com"
	seedAdminPassword = "admin123"
)

// Seed inserts first-run defaults: the fallback "Other" category and a
// single admin account. Both inserts are idempotent. The well-known
// admin password is stored hashed and is expected to be rotated on
// first login.
func Seed(conn *gorm.DB) error {
	var other models.Category
	err := conn.Where("name = ?", "Other").First(&other).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := conn.Create(&models.Category{Name: "Other"}).Error; err != nil {
			return fmt.Errorf("seed category: %w", err)
		}
	} else if err != nil {
		return err
	}

	var userCount int64
	if err := conn.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:    seedAdminEmail,
		Password: string(hash),
		Name:     "Admin User",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := conn.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}
