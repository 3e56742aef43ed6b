package schedule

// CreateAppointmentRequest carries the form fields of a new booking.
// Field presence is validated by the engine itself so that an absent
// field maps to the MISSING_FIELD error code, not a bind failure.
type CreateAppointmentRequest struct {
	ClientID  int64  `json:"client_id"`
	StaffID   int64  `json:"staff_id"`
	ServiceID int64  `json:"service_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// RescheduleRequest moves an existing appointment. Only date and time
// are mutable; the client/staff/service triple is fixed at creation.
type RescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}
