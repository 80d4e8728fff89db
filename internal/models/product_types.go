package models

import (
	"errors"
	"time"
)

// Status is shared by products and categories.
type Status string

const (
	StatusActive      Status = "active"
	StatusDraft       Status = "draft"
	StatusDeactivated Status = "deactivated"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusDraft, StatusDeactivated:
		return Status(s), nil
	}
	return "", errors.New("unknown status: " + s)
}

// Product is the model for the 'products' table.
type Product struct {
	ID          int64   `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	Description string  `json:"description" db:"description"`
	Slug        string  `json:"slug" db:"slug"`
	Status      Status  `json:"status" db:"status"`
	Stock       int     `json:"stock" db:"stock"`
	Price       float64 `json:"price" db:"price"`
	Image       string  `json:"image,omitempty" db:"image"`
	CreatedBy   *int64  `json:"createdBy,omitempty" db:"created_by"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Joins (populated from the product_categories table, not stored inline)
	Categories []Category `json:"categories" db:"-"`
}
