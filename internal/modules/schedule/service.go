package schedule

import (
	"context"
	"errors"
	"strings"
	"time"

	"barbershop/internal/domain"
	"barbershop/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// The bookable day is a fixed half-hour grid from 08:00 to 19:00
// inclusive: 23 candidate slots.
const (
	gridOpen     = "08:00"
	gridClose    = "19:00"
	slotMinutes  = 30
	gridSlotsLen = 23
)

type Service struct {
	appointments AppointmentRepository
	clients      ReferenceChecker
	staff        ReferenceChecker
	services     ReferenceChecker
	events       EventPublisher
	now          func() time.Time
}

func NewService(
	appointments AppointmentRepository,
	clients ReferenceChecker,
	staff ReferenceChecker,
	services ReferenceChecker,
	events EventPublisher,
) *Service {
	return &Service{
		appointments: appointments,
		clients:      clients,
		staff:        staff,
		services:     services,
		events:       events,
		now:          time.Now,
	}
}

// SlotGrid returns the full candidate grid, ascending.
func SlotGrid() []string {
	start, _ := time.Parse(domain.TimeLayout, gridOpen)
	end, _ := time.Parse(domain.TimeLayout, gridClose)

	slots := make([]string, 0, gridSlotsLen)
	for t := start; !t.After(end); t = t.Add(slotMinutes * time.Minute) {
		slots = append(slots, t.Format(domain.TimeLayout))
	}
	return slots
}

func onGrid(timeOfDay string) bool {
	for _, s := range SlotGrid() {
		if s == timeOfDay {
			return true
		}
	}
	return false
}

// AvailableSlots returns the grid minus the times already booked for
// the given barber on the given date, ascending. An empty result means
// the day is fully booked, not an error.
func (s *Service) AvailableSlots(ctx context.Context, staffID int64, date string) ([]string, error) {
	if staffID == 0 || date == "" {
		return nil, ErrMissingField
	}
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, ErrValidation
	}

	booked, err := s.appointments.BookedTimes(ctx, staffID, date)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}

	free := make([]string, 0, gridSlotsLen)
	for _, slot := range SlotGrid() {
		if !taken[slot] {
			free = append(free, slot)
		}
	}
	return free, nil
}

// CreateAppointment validates and books a slot. The availability check
// and the insert are not two steps: the unique index on
// (staff_id, date, time) makes the insert itself the conflict check, so
// two concurrent bookings of the same slot cannot both succeed.
func (s *Service) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*domain.Appointment, error) {
	if req.ClientID == 0 || req.StaffID == 0 || req.ServiceID == 0 || req.Date == "" || req.Time == "" {
		return nil, ErrMissingField
	}
	if _, err := time.Parse(domain.DateLayout, req.Date); err != nil {
		return nil, ErrValidation
	}
	if !onGrid(req.Time) {
		return nil, ErrValidation
	}
	// Enforced at commit time, not only in the form: "today or later"
	// relative to the booking moment. ISO dates compare lexically.
	if req.Date < s.now().Format(domain.DateLayout) {
		return nil, ErrPastDate
	}

	for _, ref := range []struct {
		checker ReferenceChecker
		id      int64
	}{
		{s.clients, req.ClientID},
		{s.staff, req.StaffID},
		{s.services, req.ServiceID},
	} {
		ok, err := ref.checker.Exists(ctx, ref.id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUnknownReference
		}
	}

	a := &domain.Appointment{
		ClientID:  req.ClientID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
	}

	if err := s.appointments.Create(ctx, a); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	if s.events != nil {
		s.events.PublishAgendaEvent(AgendaEvent{
			Type:          EventCreated,
			AppointmentID: a.ID,
			StaffID:       a.StaffID,
			Date:          a.Date,
			Time:          a.Time,
		})
	}

	return a, nil
}

// Reschedule moves an appointment to a new date/time, re-validating
// slot availability against the target slot.
func (s *Service) Reschedule(ctx context.Context, id int64, req RescheduleRequest) (*domain.Appointment, error) {
	if req.Date == "" || req.Time == "" {
		return nil, ErrMissingField
	}
	if _, err := time.Parse(domain.DateLayout, req.Date); err != nil {
		return nil, ErrValidation
	}
	if !onGrid(req.Time) {
		return nil, ErrValidation
	}

	if err := s.appointments.UpdateSchedule(ctx, id, req.Date, req.Time); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if isDuplicateKey(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishAgendaEvent(AgendaEvent{
			Type:          EventRescheduled,
			AppointmentID: a.ID,
			StaffID:       a.StaffID,
			Date:          a.Date,
			Time:          a.Time,
		})
	}

	return a, nil
}

func (s *Service) CancelAppointment(ctx context.Context, id int64) error {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if s.events != nil {
		s.events.PublishAgendaEvent(AgendaEvent{
			Type:          EventCancelled,
			AppointmentID: a.ID,
			StaffID:       a.StaffID,
			Date:          a.Date,
			Time:          a.Time,
		})
	}

	return nil
}

// Agenda lists appointments with joined names. Empty date means the
// whole ledger; staffID 0 means all barbers.
func (s *Service) Agenda(ctx context.Context, date string, staffID int64) ([]repository.AgendaEntry, error) {
	if date != "" {
		if _, err := time.Parse(domain.DateLayout, date); err != nil {
			return nil, ErrValidation
		}
	}
	return s.appointments.GetAgenda(ctx, date, staffID)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// the pure-Go sqlite driver's errors are not translated by gorm
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
