package domain

import "time"

// Appointment books one barber for one half-hour slot. Date and Time are
// stored as text ("2006-01-02" / "15:04") to stay compatible with the
// legacy single-file store.
//
// The composite unique index is the double-booking guard: slot checking
// and insertion race otherwise, so the store itself enforces one
// appointment per barber per slot and the engine maps the violation to
// ErrSlotTaken.
type Appointment struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id" validate:"required" gorm:"index"`
	StaffID   int64     `json:"staff_id" validate:"required" gorm:"uniqueIndex:idx_no_double_booking"`
	ServiceID int64     `json:"service_id" validate:"required" gorm:"index"`
	Date      string    `json:"date" validate:"required" gorm:"uniqueIndex:idx_no_double_booking"`
	Time      string    `json:"time" validate:"required" gorm:"uniqueIndex:idx_no_double_booking"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Appointment) TableName() string { return "appointments" }

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)
