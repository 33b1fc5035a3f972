package repository

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stockpilot/backend/internal/models"
)

type UserRepository struct {
	Repository[models.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{NewRepository[models.User](db)}
}

// FindByEmail looks up an active account. Deactivated users are
// invisible here by design.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ? AND is_active = ?", email, true)
}

// Authenticate verifies the credentials of an active account and
// returns the user, or (nil, nil) when the credentials do not match.
// Rows still carrying a plaintext password from an older install are
// verified by direct comparison and upgraded to a bcrypt hash on the
// spot.
func (r *UserRepository) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, err
	}
	if isPasswordHash(user.Password) {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
			return nil, nil
		}
		return user, nil
	}
	// Legacy plaintext row.
	if user.Password != password {
		return nil, nil
	}
	if hash, herr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); herr == nil {
		if uerr := r.UpdatePassword(ctx, user.ID, string(hash)); uerr == nil {
			user.Password = string(hash)
		}
	}
	return user, nil
}

// UpdatePassword stores an already-hashed password and stamps the
// update time.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hashed string) error {
	return r.Update(ctx, id, map[string]any{
		"password":   hashed,
		"updated_at": time.Now(),
	})
}

// Deactivate disables the account without deleting the row; the user
// disappears from FindByEmail but keeps its history.
func (r *UserRepository) Deactivate(ctx context.Context, id uint) error {
	return r.Update(ctx, id, map[string]any{
		"is_active":  false,
		"updated_at": time.Now(),
	})
}

// HashPassword wraps bcrypt for callers creating users.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isPasswordHash(v string) bool {
	return len(v) > 4 && (v[:4] == "$2a$" || v[:4] == "$2b$" || v[:4] == "$2y$")
}
