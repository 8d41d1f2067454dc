package models

import "time"

// Employee is a professional who performs services. Services holds Service ids.
type Employee struct {
	ID        string            `bson:"id" firestore:"id" json:"id,omitempty"`
	Name      string            `bson:"name" firestore:"name" json:"name"`
	Email     string            `bson:"email,omitempty" firestore:"email,omitempty" json:"email,omitempty"`
	Phone     string            `bson:"phone,omitempty" firestore:"phone,omitempty" json:"phone,omitempty"`
	Role      string            `bson:"role" firestore:"role" json:"role"`
	Active    bool              `bson:"active" firestore:"active" json:"active"`
	Services  []string          `bson:"services" firestore:"services" json:"services"`
	Schedule  *EmployeeSchedule `bson:"schedule,omitempty" firestore:"schedule,omitempty" json:"schedule,omitempty"`
	CreatedAt time.Time         `bson:"createdAt,omitempty" firestore:"createdAt,omitempty" json:"createdAt,omitzero"`
	UpdatedAt time.Time         `bson:"updatedAt,omitempty" firestore:"updatedAt,omitempty" json:"updatedAt,omitzero"`
}

// EmployeeView is the staff grid row.
type EmployeeView struct {
	Employee
	ServiceNames   []string `json:"serviceNames"`
	WorkingDays    int      `json:"workingDays"`
	ExceptionCount int      `json:"exceptionCount"`
}

// EmployeeInput is the upsert payload of the staff screen.
type EmployeeInput struct {
	ID       string   `json:"id"`
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"omitempty,email"`
	Phone    string   `json:"phone"`
	Role     string   `json:"role"`
	Active   *bool    `json:"active"`
	Services []string `json:"services"`
}
