package domain

import "time"

type UserRole string

const (
	RoleOwner     UserRole = "owner"
	RoleReception UserRole = "reception"
)

// User is a login account for the management UI. Passwords are stored
// as bcrypt hashes only.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username" validate:"required" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
