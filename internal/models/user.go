package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents an account role.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleCouple Role = "couple"
)

// User represents a dashboard account. Each couple account is linked to
// exactly one couple via CoupleID; admin accounts have no couple link.
type User struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	FullName  string     `json:"full_name"`
	Role      Role       `json:"role"`
	CoupleID  *uuid.UUID `json:"couple_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// UserPublic is User without sensitive fields for API responses.
type UserPublic struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      Role       `json:"role"`
	CoupleID  *uuid.UUID `json:"couple_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToPublic converts User to UserPublic.
func (u *User) ToPublic() UserPublic {
	return UserPublic{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CoupleID:  u.CoupleID,
		CreatedAt: u.CreatedAt,
	}
}
