package repository

import (
	"context"
	"strings"

	"barbershop/internal/domain"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// AgendaEntry is one row of the joined appointment listing.
type AgendaEntry struct {
	ID          int64   `json:"id"`
	ClientName  string  `json:"client_name"`
	StaffName   string  `json:"staff_name"`
	ServiceName string  `json:"service_name"`
	Price       float64 `json:"price"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
}

// RevenueFilters narrows aggregation queries. Zero values mean "no
// filter"; From/To are inclusive calendar dates ("2006-01-02").
type RevenueFilters struct {
	From     string
	To       string
	StaffID  int64
	ClientID int64
}

type StaffRevenueRow struct {
	StaffID    int64   `json:"staff_id"`
	StaffName  string  `json:"staff_name"`
	Revenue    float64 `json:"revenue"`
	VisitCount int64   `json:"visit_count"`
}

type PeriodRevenueRow struct {
	Bucket     string  `json:"bucket"`
	Revenue    float64 `json:"revenue"`
	VisitCount int64   `json:"visit_count"`
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateSchedule moves an appointment to a new date/time. The unique
// index on (staff_id, date, time) still applies, so a conflicting move
// surfaces as a duplicate-key error.
func (r *AppointmentRepository) UpdateSchedule(ctx context.Context, id int64, date, timeOfDay string) error {
	tx := r.db.WithContext(ctx).Model(&domain.Appointment{}).Where("id = ?", id).Updates(map[string]any{
		"date": date,
		"time": timeOfDay,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Appointment{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// BookedTimes returns the occupied "HH:MM" values for one barber on one
// date, ascending.
func (r *AppointmentRepository) BookedTimes(ctx context.Context, staffID int64, date string) ([]string, error) {
	var times []string
	tx := r.db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("staff_id = ? AND date = ?", staffID, date).
		Order("time").
		Pluck("time", &times)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return times, nil
}

// GetAgenda lists appointments joined with client/staff/service names,
// ordered by date then time. An empty date lists the whole ledger.
func (r *AppointmentRepository) GetAgenda(ctx context.Context, date string, staffID int64) ([]AgendaEntry, error) {
	q := `
SELECT a.id, c.name AS client_name, f.name AS staff_name, s.name AS service_name,
       s.price, a.date, a.time
FROM appointments a
JOIN clients c ON a.client_id = c.id
JOIN staff f ON a.staff_id = f.id
JOIN services s ON a.service_id = s.id`

	var conds []string
	var args []any
	if date != "" {
		conds = append(conds, "a.date = ?")
		args = append(args, date)
	}
	if staffID > 0 {
		conds = append(conds, "a.staff_id = ?")
		args = append(args, staffID)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY a.date, a.time"

	var rows []AgendaEntry
	tx := r.db.WithContext(ctx).Raw(q, args...).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func revenueConds(f RevenueFilters) (string, []any) {
	var conds []string
	var args []any
	if f.From != "" {
		conds = append(conds, "a.date >= ?")
		args = append(args, f.From)
	}
	if f.To != "" {
		conds = append(conds, "a.date <= ?")
		args = append(args, f.To)
	}
	if f.StaffID > 0 {
		conds = append(conds, "a.staff_id = ?")
		args = append(args, f.StaffID)
	}
	if f.ClientID > 0 {
		conds = append(conds, "a.client_id = ?")
		args = append(args, f.ClientID)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// SumRevenue totals joined service prices over the filtered ledger.
// There is no separate revenue table; the figure is always recomputed.
func (r *AppointmentRepository) SumRevenue(ctx context.Context, f RevenueFilters) (float64, error) {
	where, args := revenueConds(f)
	q := `
SELECT COALESCE(SUM(s.price), 0)
FROM appointments a
JOIN services s ON a.service_id = s.id` + where

	var total float64
	tx := r.db.WithContext(ctx).Raw(q, args...).Scan(&total)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return total, nil
}

func (r *AppointmentRepository) RevenueByStaff(ctx context.Context, f RevenueFilters) ([]StaffRevenueRow, error) {
	where, args := revenueConds(f)
	q := `
SELECT f.id AS staff_id, f.name AS staff_name,
       COALESCE(SUM(s.price), 0) AS revenue, COUNT(a.id) AS visit_count
FROM appointments a
JOIN services s ON a.service_id = s.id
JOIN staff f ON a.staff_id = f.id` + where + `
GROUP BY f.id, f.name
ORDER BY revenue DESC, f.id`

	var rows []StaffRevenueRow
	tx := r.db.WithContext(ctx).Raw(q, args...).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// RevenueByPeriod buckets revenue by a date prefix: 10 chars for days,
// 7 for months, 4 for years. substr works on both SQLite and Postgres
// because date is a TEXT column.
func (r *AppointmentRepository) RevenueByPeriod(ctx context.Context, prefixLen int, f RevenueFilters) ([]PeriodRevenueRow, error) {
	where, args := revenueConds(f)
	q := `
SELECT substr(a.date, 1, ?) AS bucket,
       COALESCE(SUM(s.price), 0) AS revenue, COUNT(a.id) AS visit_count
FROM appointments a
JOIN services s ON a.service_id = s.id` + where + `
GROUP BY bucket
ORDER BY bucket DESC`

	var rows []PeriodRevenueRow
	tx := r.db.WithContext(ctx).Raw(q, append([]any{prefixLen}, args...)...).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// CountBetween counts appointments with from <= date <= to.
func (r *AppointmentRepository) CountBetween(ctx context.Context, from, to string) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("date >= ? AND date <= ?", from, to).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}
