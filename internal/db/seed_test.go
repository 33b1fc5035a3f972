package db

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stockpilot/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestConnectAndMigrateAutoPath(t *testing.T) {
	// MIGRATIONS unset (or a false value) takes the AutoMigrate path
	// and seeds first-run defaults.
	t.Setenv("MIGRATIONS", "0")
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := ConnectAndMigrate(dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	var users int64
	if err := conn.Model(&models.User{}).Count(&users).Error; err != nil {
		t.Fatalf("users table missing: %v", err)
	}
	if users != 1 {
		t.Fatalf("expected seeded admin, got %d users", users)
	}
}

func TestSeedCreatesDefaults(t *testing.T) {
	conn := setupTestDB(t)
	if err := Seed(conn); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var other models.Category
	if err := conn.Where("name = ?", "Other").First(&other).Error; err != nil {
		t.Fatalf("Other category missing: %v", err)
	}

	var admin models.User
	if err := conn.Where("email = ?", "admin@inventory.com").First(&admin).Error; err != nil {
		t.Fatalf("admin user missing: %v", err)
	}
	if admin.Role != models.RoleAdmin || !admin.IsActive {
		t.Fatalf("unexpected admin account: %+v", admin)
	}
	// Stored hashed, never plaintext.
	if admin.Password == "admin123" {
		t.Fatal("admin password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin123")); err != nil {
		t.Fatalf("admin password does not verify: %v", err)
	}
}

func TestSeedIdempotent(t *testing.T) {
	conn := setupTestDB(t)
	for i := 0; i < 3; i++ {
		if err := Seed(conn); err != nil {
			t.Fatalf("seed pass %d: %v", i, err)
		}
	}
	var categories, users int64
	if err := conn.Model(&models.Category{}).Count(&categories).Error; err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if err := conn.Model(&models.User{}).Count(&users).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if categories != 1 || users != 1 {
		t.Fatalf("seed not idempotent: categories=%d users=%d", categories, users)
	}
}

// Seed must not recreate the admin once any user exists, even a
// different one.
func TestSeedSkipsAdminWhenUsersExist(t *testing.T) {
	conn := setupTestDB(t)
	u := models.User{Email: "existing@b.com", Password: "x", Name: "E", Role: models.RoleUser, IsActive: true}
	if err := conn.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := Seed(conn); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var admins int64
	if err := conn.Model(&models.User{}).Where("email = ?", "admin@inventory.com").Count(&admins).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if admins != 0 {
		t.Fatal("seed created admin despite existing users")
	}
}

func TestResetRestoresSeededState(t *testing.T) {
	conn := setupTestDB(t)
	if err := Seed(conn); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := conn.Create(&models.Item{Name: "Widget", Category: "Other"}).Error; err != nil {
		t.Fatalf("item: %v", err)
	}
	if err := Reset(conn); err != nil {
		t.Fatalf("reset: %v", err)
	}
	var items int64
	if err := conn.Model(&models.Item{}).Count(&items).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if items != 0 {
		t.Fatalf("items survived reset: %d", items)
	}
	var other models.Category
	if err := conn.Where("name = ?", "Other").First(&other).Error; err != nil {
		t.Fatalf("Other category missing after reset: %v", err)
	}
}
