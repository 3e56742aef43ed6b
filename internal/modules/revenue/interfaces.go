package revenue

import (
	"context"

	"barbershop/internal/repository"
)

// AppointmentLedger is the read-only slice of the store the aggregator
// works over. Every figure is recomputed from the appointment rows at
// call time; no revenue is stored independently.
type AppointmentLedger interface {
	SumRevenue(ctx context.Context, f repository.RevenueFilters) (float64, error)
	RevenueByStaff(ctx context.Context, f repository.RevenueFilters) ([]repository.StaffRevenueRow, error)
	RevenueByPeriod(ctx context.Context, prefixLen int, f repository.RevenueFilters) ([]repository.PeriodRevenueRow, error)
	CountBetween(ctx context.Context, from, to string) (int64, error)
}
