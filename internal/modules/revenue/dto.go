package revenue

// StaffRevenueReport is one barber's aggregated performance. Derived
// ratios are defined as 0 when their denominator is 0.
type StaffRevenueReport struct {
	StaffID      int64   `json:"staff_id"`
	StaffName    string  `json:"staff_name"`
	Revenue      float64 `json:"revenue"`
	VisitCount   int64   `json:"visit_count"`
	ShareOfTotal float64 `json:"share_of_total"`
	AvgPerVisit  float64 `json:"avg_per_visit"`
}

type PeriodRevenueReport struct {
	Period     string  `json:"period"`
	Revenue    float64 `json:"revenue"`
	VisitCount int64   `json:"visit_count"`
}

// PayoutReport is the fixed 50/50 split between the shop and staff.
// BusinessShare + StaffShare always equals Gross.
type PayoutReport struct {
	Gross         float64 `json:"gross"`
	BusinessShare float64 `json:"business_share"`
	StaffShare    float64 `json:"staff_share"`
}

// Summary is the dashboard headline: visit counts for today, the
// current week (Monday-based) and the current month, plus all-time
// gross revenue.
type Summary struct {
	VisitsToday     int64   `json:"visits_today"`
	VisitsThisWeek  int64   `json:"visits_this_week"`
	VisitsThisMonth int64   `json:"visits_this_month"`
	TotalRevenue    float64 `json:"total_revenue"`
}
