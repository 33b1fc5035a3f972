package repository

import (
	"context"

	"gorm.io/gorm"

	"stockpilot/backend/internal/models"
)

type CustomerRepository struct {
	Repository[models.Customer]
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{NewRepository[models.Customer](db)}
}

// Search matches the query as a case-insensitive substring of name,
// email, or phone.
func (r *CustomerRepository) Search(ctx context.Context, query string) ([]models.Customer, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	like := "%" + lowered(query) + "%"
	var customers []models.Customer
	err = db.Where("lower(name) LIKE ? OR lower(email) LIKE ? OR lower(phone) LIKE ?", like, like, like).
		Order("name").Find(&customers).Error
	if err != nil {
		return nil, classify(err)
	}
	return customers, nil
}
