package schedule

import (
	"context"

	"barbershop/internal/domain"
	"barbershop/internal/repository"
)

// AppointmentRepository defines the ledger operations the engine needs.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateSchedule(ctx context.Context, id int64, date, timeOfDay string) error
	Delete(ctx context.Context, id int64) error
	BookedTimes(ctx context.Context, staffID int64, date string) ([]string, error)
	GetAgenda(ctx context.Context, date string, staffID int64) ([]repository.AgendaEntry, error)
}

// ReferenceChecker answers whether a row with the given id exists. The
// legacy schema has no storage-level foreign keys, so the engine checks
// references itself at creation time.
type ReferenceChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// EventPublisher receives agenda change notifications. Publishing is
// best-effort; a failed publish never fails the booking.
type EventPublisher interface {
	PublishAgendaEvent(ev AgendaEvent)
}

type AgendaEvent struct {
	Type          string `json:"type"`
	AppointmentID int64  `json:"appointment_id"`
	StaffID       int64  `json:"staff_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

const (
	EventCreated     = "appointment_created"
	EventRescheduled = "appointment_rescheduled"
	EventCancelled   = "appointment_cancelled"
)
