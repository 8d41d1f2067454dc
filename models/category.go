package models

import "time"

// Category groups services for display; Order is a display rank among sibling categories.
type Category struct {
	ID          string    `bson:"id" firestore:"id" json:"id,omitempty"`
	Name        string    `bson:"name" firestore:"name" json:"name" binding:"required"`
	Description string    `bson:"description" firestore:"description" json:"description"`
	Active      bool      `bson:"active" firestore:"active" json:"active"`
	Order       int       `bson:"order" firestore:"order" json:"order"`
	CreatedAt   time.Time `bson:"createdAt,omitempty" firestore:"createdAt,omitempty" json:"createdAt,omitzero"`
	UpdatedAt   time.Time `bson:"updatedAt,omitempty" firestore:"updatedAt,omitempty" json:"updatedAt,omitzero"`
}

// CategoryInput is the upsert payload of the categories screen. A nil Order keeps
// the stored rank on update and appends on insert.
type CategoryInput struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
	Order       *int   `json:"order"`
}
