package revenue

import (
	"context"
	"math"
	"time"

	"barbershop/internal/domain"
	"barbershop/internal/repository"
)

// The shop keeps half of every service price; the performing barber
// gets the other half. Fixed policy, not configurable per service.
const staffShareRate = 0.5

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// prefix lengths into "2006-01-02"
var granularityPrefix = map[Granularity]int{
	GranularityDay:   10,
	GranularityMonth: 7,
	GranularityYear:  4,
}

type Service struct {
	ledger AppointmentLedger
	now    func() time.Time
}

func NewService(ledger AppointmentLedger) *Service {
	return &Service{ledger: ledger, now: time.Now}
}

func validateFilters(f repository.RevenueFilters) error {
	for _, d := range []string{f.From, f.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(domain.DateLayout, d); err != nil {
			return ErrValidation
		}
	}
	return nil
}

// TotalRevenue sums joined service prices over the filtered ledger.
// An empty match yields 0, not an error.
func (s *Service) TotalRevenue(ctx context.Context, f repository.RevenueFilters) (float64, error) {
	if err := validateFilters(f); err != nil {
		return 0, err
	}
	total, err := s.ledger.SumRevenue(ctx, f)
	if err != nil {
		return 0, err
	}
	return round2(total), nil
}

// RevenueByStaff groups the filtered ledger by barber, ordered revenue
// descending with staff id as tiebreak. The entries sum to
// TotalRevenue for the same filter.
func (s *Service) RevenueByStaff(ctx context.Context, f repository.RevenueFilters) ([]StaffRevenueReport, error) {
	if err := validateFilters(f); err != nil {
		return nil, err
	}
	rows, err := s.ledger.RevenueByStaff(ctx, f)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, r := range rows {
		total += r.Revenue
	}

	out := make([]StaffRevenueReport, 0, len(rows))
	for _, r := range rows {
		rep := StaffRevenueReport{
			StaffID:    r.StaffID,
			StaffName:  r.StaffName,
			Revenue:    round2(r.Revenue),
			VisitCount: r.VisitCount,
		}
		if total > 0 {
			rep.ShareOfTotal = r.Revenue / total
		}
		if r.VisitCount > 0 {
			rep.AvgPerVisit = round2(r.Revenue / float64(r.VisitCount))
		}
		out = append(out, rep)
	}
	return out, nil
}

// RevenueByPeriod buckets revenue by day, month or year, most recent
// bucket first.
func (s *Service) RevenueByPeriod(ctx context.Context, g Granularity, f repository.RevenueFilters) ([]PeriodRevenueReport, error) {
	prefixLen, ok := granularityPrefix[g]
	if !ok {
		return nil, ErrInvalidGranularity
	}
	if err := validateFilters(f); err != nil {
		return nil, err
	}

	rows, err := s.ledger.RevenueByPeriod(ctx, prefixLen, f)
	if err != nil {
		return nil, err
	}

	out := make([]PeriodRevenueReport, 0, len(rows))
	for _, r := range rows {
		out = append(out, PeriodRevenueReport{
			Period:     r.Bucket,
			Revenue:    round2(r.Revenue),
			VisitCount: r.VisitCount,
		})
	}
	return out, nil
}

// PayoutSplit computes the 50/50 division of the filtered gross.
// StaffShare is derived as gross minus the rounded business share so
// the two always add up to gross exactly.
func (s *Service) PayoutSplit(ctx context.Context, f repository.RevenueFilters) (*PayoutReport, error) {
	if err := validateFilters(f); err != nil {
		return nil, err
	}
	gross, err := s.ledger.SumRevenue(ctx, f)
	if err != nil {
		return nil, err
	}

	gross = round2(gross)
	business := round2(gross * (1 - staffShareRate))
	return &PayoutReport{
		Gross:         gross,
		BusinessShare: business,
		StaffShare:    round2(gross - business),
	}, nil
}

// DashboardSummary recomputes the headline counters on every call.
func (s *Service) DashboardSummary(ctx context.Context) (*Summary, error) {
	now := s.now()
	today := now.Format(domain.DateLayout)

	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the week
	}
	weekStart := now.AddDate(0, 0, -(weekday - 1)).Format(domain.DateLayout)
	weekEnd := now.AddDate(0, 0, 7-weekday).Format(domain.DateLayout)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	visitsToday, err := s.ledger.CountBetween(ctx, today, today)
	if err != nil {
		return nil, err
	}
	visitsWeek, err := s.ledger.CountBetween(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	visitsMonth, err := s.ledger.CountBetween(ctx, monthStart.Format(domain.DateLayout), monthEnd.Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}
	total, err := s.ledger.SumRevenue(ctx, repository.RevenueFilters{})
	if err != nil {
		return nil, err
	}

	return &Summary{
		VisitsToday:     visitsToday,
		VisitsThisWeek:  visitsWeek,
		VisitsThisMonth: visitsMonth,
		TotalRevenue:    round2(total),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
