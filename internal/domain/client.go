package domain

import "time"

// Client is a shop customer. The ledger allows duplicate names, phones
// and emails; the surrogate id is the only identity.
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Client) TableName() string { return "clients" }
