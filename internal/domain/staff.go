package domain

import "time"

// Staff is a barber. Specialty is a free-text label, not an enum.
type Staff struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Specialty string    `json:"specialty,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Staff) TableName() string { return "staff" }
