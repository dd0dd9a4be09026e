package models

import (
	"github.com/pkg/errors"
)

type CategoryMetadata struct {
	ID        CategoryID `json:"id" goqu:"skipinsert,skipupdate" db:"category_id"`
	CreatedAt Time       `json:"created_at" goqu:"skipupdate" db:"category_created_at"`
}

// Category classifies lost posts, e.g. "wallet" or "phone".
type Category struct {
	CategoryMetadata
	Name string `json:"name" db:"category_name"`
}

func NewCategory(now Time, name string) *Category {
	return &Category{
		CategoryMetadata: CategoryMetadata{CreatedAt: now},
		Name:             name,
	}
}

func (m *Category) GetKind() ResourceKind {
	return CategoryResourceKind
}

func (m *Category) GetCreatedAt() Time {
	return m.CreatedAt
}

func (m *Category) GetID() ResourceID {
	return m.ID.ResourceID
}

func (m *Category) SetID(id ResourceID) {
	m.ID = CategoryIDFromResourceID(id)
}

func (m *Category) Validate() error {
	if m.Name == "" {
		return errors.New("error name must be set")
	}
	return nil
}
