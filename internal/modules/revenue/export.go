package revenue

import (
	"context"

	"barbershop/internal/repository"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX renders the revenue report as a spreadsheet: one sheet per
// view (by staff, by month, payout). Pure formatting over the same
// aggregates the JSON endpoints return.
func (s *Service) ExportXLSX(ctx context.Context, f repository.RevenueFilters) (*excelize.File, error) {
	byStaff, err := s.RevenueByStaff(ctx, f)
	if err != nil {
		return nil, err
	}
	byMonth, err := s.RevenueByPeriod(ctx, GranularityMonth, f)
	if err != nil {
		return nil, err
	}
	payout, err := s.PayoutSplit(ctx, f)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()

	const staffSheet = "Revenue by staff"
	if err := file.SetSheetName("Sheet1", staffSheet); err != nil {
		return nil, err
	}
	setRow(file, staffSheet, 1, "Staff ID", "Name", "Revenue", "Visits", "Share of total", "Avg per visit")
	for i, r := range byStaff {
		setRow(file, staffSheet, i+2, r.StaffID, r.StaffName, r.Revenue, r.VisitCount, r.ShareOfTotal, r.AvgPerVisit)
	}

	const monthSheet = "Revenue by month"
	if _, err := file.NewSheet(monthSheet); err != nil {
		return nil, err
	}
	setRow(file, monthSheet, 1, "Month", "Revenue", "Visits")
	for i, r := range byMonth {
		setRow(file, monthSheet, i+2, r.Period, r.Revenue, r.VisitCount)
	}

	const payoutSheet = "Payout"
	if _, err := file.NewSheet(payoutSheet); err != nil {
		return nil, err
	}
	setRow(file, payoutSheet, 1, "Gross", "Business share", "Staff share")
	setRow(file, payoutSheet, 2, payout.Gross, payout.BusinessShare, payout.StaffShare)

	return file, nil
}

func setRow(file *excelize.File, sheet string, row int, values ...any) {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			continue
		}
		_ = file.SetCellValue(sheet, cell, v)
	}
}
