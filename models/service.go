package models

import "time"

// Service is a bookable offering. CategoryID is a soft reference; nothing enforces it.
type Service struct {
	ID          string    `bson:"id" firestore:"id" json:"id,omitempty"`
	Name        string    `bson:"name" firestore:"name" json:"name"`
	Description string    `bson:"description" firestore:"description" json:"description"`
	Duration    int       `bson:"duration" firestore:"duration" json:"duration"` // minutes
	Price       float64   `bson:"price" firestore:"price" json:"price"`
	CategoryID  string    `bson:"categoryId" firestore:"categoryId" json:"categoryId"`
	Active      bool      `bson:"active" firestore:"active" json:"active"`
	Order       int       `bson:"order" firestore:"order" json:"order"`
	CreatedAt   time.Time `bson:"createdAt,omitempty" firestore:"createdAt,omitempty" json:"createdAt,omitzero"`
	UpdatedAt   time.Time `bson:"updatedAt,omitempty" firestore:"updatedAt,omitempty" json:"updatedAt,omitzero"`
}

// ServiceView is a Service row with its category name resolved.
type ServiceView struct {
	Service
	CategoryName string `json:"categoryName"`
}

// ServiceInput is the upsert payload of the services screen.
type ServiceInput struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Duration    int     `json:"duration" binding:"gte=0"`
	Price       float64 `json:"price" binding:"gte=0"`
	CategoryID  string  `json:"categoryId"`
	Active      *bool   `json:"active"`
	Order       *int    `json:"order"`
}
