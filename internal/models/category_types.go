package models

import "time"

// Category is the model for the 'categories' table. Parent is self-referential
// and forms a tree; nothing here prevents a caller from introducing a cycle,
// callers must avoid them.
type Category struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Slug        string `json:"slug" db:"slug"`
	Status      Status `json:"status" db:"status"`
	ParentID    *int64 `json:"parentId,omitempty" db:"parent_id"`
	CoverImage  string `json:"coverImage,omitempty" db:"cover_image"`
	CreatedBy   *int64 `json:"createdBy,omitempty" db:"created_by"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Joins (populated manually; an absent parent stays null in JSON)
	Parent   *Category `json:"parent,omitempty" db:"-"`
	Products []Product `json:"products,omitempty" db:"-"`
}
