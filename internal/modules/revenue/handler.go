package revenue

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"barbershop/internal/pkg/response"
	"barbershop/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/revenue/total", h.GetTotal)
	rg.GET("/revenue/by-staff", h.GetByStaff)
	rg.GET("/revenue/by-period", h.GetByPeriod)
	rg.GET("/revenue/payout", h.GetPayout)
	rg.GET("/revenue/export", h.Export)
	rg.GET("/dashboard/summary", h.GetSummary)
}

func filtersFromQuery(c *gin.Context) repository.RevenueFilters {
	var f repository.RevenueFilters
	f.From = c.Query("from")
	f.To = c.Query("to")
	f.StaffID, _ = strconv.ParseInt(c.Query("staff_id"), 10, 64)
	f.ClientID, _ = strconv.ParseInt(c.Query("client_id"), 10, 64)
	return f
}

func (h *Handler) GetTotal(c *gin.Context) {
	total, err := h.service.TotalRevenue(c.Request.Context(), filtersFromQuery(c))
	if err != nil {
		handleRevenueError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"total": total})
}

func (h *Handler) GetByStaff(c *gin.Context) {
	reports, err := h.service.RevenueByStaff(c.Request.Context(), filtersFromQuery(c))
	if err != nil {
		handleRevenueError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"staff": reports})
}

func (h *Handler) GetByPeriod(c *gin.Context) {
	g := Granularity(c.DefaultQuery("granularity", string(GranularityMonth)))

	buckets, err := h.service.RevenueByPeriod(c.Request.Context(), g, filtersFromQuery(c))
	if err != nil {
		handleRevenueError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"granularity": g, "buckets": buckets})
}

func (h *Handler) GetPayout(c *gin.Context) {
	payout, err := h.service.PayoutSplit(c.Request.Context(), filtersFromQuery(c))
	if err != nil {
		handleRevenueError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payout": payout})
}

func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.service.DashboardSummary(c.Request.Context())
	if err != nil {
		handleRevenueError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// Export handles GET /revenue/export and streams an xlsx download.
func (h *Handler) Export(c *gin.Context) {
	file, err := h.service.ExportXLSX(c.Request.Context(), filtersFromQuery(c))
	if err != nil {
		handleRevenueError(c, err)
		return
	}

	filename := fmt.Sprintf("revenue-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func handleRevenueError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date filter")
	case ErrInvalidGranularity:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Granularity must be day, month or year")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
