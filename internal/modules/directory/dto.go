package directory

type CreateClientRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

type UpdateClientRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

type CreateStaffRequest struct {
	Name      string `json:"name" validate:"required"`
	Specialty string `json:"specialty"`
}

type UpdateStaffRequest struct {
	Name      string `json:"name" validate:"required"`
	Specialty string `json:"specialty"`
}

type CreateServiceRequest struct {
	Name            string  `json:"name" validate:"required"`
	Price           float64 `json:"price" validate:"gte=0"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
}

type UpdateServiceRequest struct {
	Name            string  `json:"name" validate:"required"`
	Price           float64 `json:"price" validate:"gte=0"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
}
