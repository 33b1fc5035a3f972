package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"stockpilot/backend/internal/models"
)

// Repository provides the uniform CRUD contract shared by every
// entity. Specializations embed it and add the queries that cannot be
// expressed generically (filtering, ordering, composite fetches,
// computed identifiers).
type Repository[T models.Entity] struct {
	db *gorm.DB
}

// NewRepository wires a generic repository to an open store handle.
func NewRepository[T models.Entity](db *gorm.DB) Repository[T] {
	return Repository[T]{db: db}
}

func (r Repository[T]) conn(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, ErrNotInitialized
	}
	return r.db.WithContext(ctx), nil
}

// Create inserts the supplied record and returns the generated id.
// Unset fields take store-defined defaults. Uniqueness and foreign-key
// violations surface as ErrConstraint.
func (r Repository[T]) Create(ctx context.Context, rec *T) (uint, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}
	if err := db.Create(rec).Error; err != nil {
		return 0, classify(err)
	}
	return (*rec).GetID(), nil
}

// FindByID looks up one record by primary key. Absence is reported as
// (nil, nil), never as an error.
func (r Repository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var rec T
	if err := db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, classify(err)
	}
	return &rec, nil
}

// FindAll returns every row, newest first. No pagination: the caller
// receives the full set.
func (r Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var recs []T
	if err := db.Order("id desc").Find(&recs).Error; err != nil {
		return nil, classify(err)
	}
	return recs, nil
}

// Update patches only the supplied columns. Updating a missing id is a
// no-op, not an error.
func (r Repository[T]) Update(ctx context.Context, id uint, fields map[string]any) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	var rec T
	if err := db.Model(&rec).Where("id = ?", id).Updates(fields).Error; err != nil {
		return classify(err)
	}
	return nil
}

// Delete removes the row by id. Dependent rows are not checked or
// cascaded; pre-checks are the caller's responsibility.
func (r Repository[T]) Delete(ctx context.Context, id uint) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	var rec T
	if err := db.Delete(&rec, id).Error; err != nil {
		return classify(err)
	}
	return nil
}

// Count returns the total row count for the entity.
func (r Repository[T]) Count(ctx context.Context) (int64, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}
	var rec T
	var n int64
	if err := db.Model(&rec).Count(&n).Error; err != nil {
		return 0, classify(err)
	}
	return n, nil
}

// first runs a specialized single-row query with the same
// absence-is-nil contract as FindByID.
func (r Repository[T]) first(ctx context.Context, query string, args ...any) (*T, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var rec T
	if err := db.Where(query, args...).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, classify(err)
	}
	return &rec, nil
}
