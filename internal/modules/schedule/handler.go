package schedule

import (
	"net/http"
	"strconv"

	"barbershop/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/schedule/slots", h.GetAvailableSlots)
	rg.GET("/schedule/agenda", h.GetAgenda)
	rg.POST("/appointments", h.CreateAppointment)
	rg.PATCH("/appointments/:id", h.Reschedule)
	rg.DELETE("/appointments/:id", h.CancelAppointment)
}

// GetAvailableSlots handles GET /schedule/slots?staff_id=&date=
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	staffID, _ := strconv.ParseInt(c.Query("staff_id"), 10, 64)
	date := c.Query("date")

	slots, err := h.service.AvailableSlots(c.Request.Context(), staffID, date)
	if err != nil {
		handleScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"staff_id":     staffID,
		"date":         date,
		"slots":        slots,
		"fully_booked": len(slots) == 0,
	})
}

// GetAgenda handles GET /schedule/agenda?date=&staff_id=
func (h *Handler) GetAgenda(c *gin.Context) {
	staffID, _ := strconv.ParseInt(c.Query("staff_id"), 10, 64)
	date := c.Query("date")

	entries, err := h.service.Agenda(c.Request.Context(), date, staffID)
	if err != nil {
		handleScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointments": entries})
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.CreateAppointment(c.Request.Context(), req)
	if err != nil {
		handleScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"appointment": a})
}

func (h *Handler) Reschedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid appointment ID")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.Reschedule(c.Request.Context(), id, req)
	if err != nil {
		handleScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointment": a})
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid appointment ID")
		return
	}

	if err := h.service.CancelAppointment(c.Request.Context(), id); err != nil {
		handleScheduleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func handleScheduleError(c *gin.Context, err error) {
	switch err {
	case ErrMissingField:
		response.Error(c, http.StatusBadRequest, "MISSING_FIELD", "A required field is missing")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date or time")
	case ErrPastDate:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Date must be today or later")
	case ErrUnknownReference:
		response.Error(c, http.StatusBadRequest, "UNKNOWN_REFERENCE", "Client, staff or service does not exist")
	case ErrSlotTaken:
		response.Error(c, http.StatusConflict, "SLOT_TAKEN", "The slot is no longer available")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
