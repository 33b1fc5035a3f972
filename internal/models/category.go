package models

import "time"

// Category backs the item category picker. Names are unique; items
// reference a category by name, not by id, so deleting one must be
// pre-checked by the caller against referencing items.
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (c Category) GetID() uint { return c.ID }
