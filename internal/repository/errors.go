package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrConstraint marks a rejected write caused by a uniqueness or
	// foreign-key rule. Callers branch on it to name the conflicting
	// field instead of showing a generic failure.
	ErrConstraint = errors.New("constraint violation")

	// ErrNotInitialized is returned when a repository is used before a
	// store connection was supplied.
	ErrNotInitialized = errors.New("store not initialized")
)

// classify maps store-level failures onto the repository error
// taxonomy. gorm translates driver errors when TranslateError is set;
// the string fallback covers sqlite builds where translation misses.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %v", ErrConstraint, err)
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return fmt.Errorf("%w: %v", ErrConstraint, err)
	}
	return err
}
