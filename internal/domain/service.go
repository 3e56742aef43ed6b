package domain

import "time"

// Service is a billable offering (haircut, shave, ...). DurationMinutes
// is nullable: rows created by early schema versions never set it.
type Service struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name" validate:"required"`
	Price           float64   `json:"price" validate:"gte=0" gorm:"type:decimal(10,2)"`
	DurationMinutes *int      `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Service) TableName() string { return "services" }
