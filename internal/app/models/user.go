package models

import (
	"time"
)

// RoleType represents a user's role in the system
type RoleType string

const (
	RoleStudent   RoleType = "student"
	RoleFaculty   RoleType = "faculty"
	RoleAdmin     RoleType = "admin"
	RolePlacement RoleType = "placement"
)

// ValidRole reports whether the given role is one of the known roles.
func ValidRole(role RoleType) bool {
	switch role {
	case RoleStudent, RoleFaculty, RoleAdmin, RolePlacement:
		return true
	}
	return false
}

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Name        string     `json:"name" db:"name" example:"John Doe"`
	Email       string     `json:"email" db:"email" example:"john@campus.edu"`
	Password    string     `json:"-" db:"password"` // Hashed; empty when the account is federated
	RoleType    RoleType   `json:"role" db:"role_type" example:"student"`
	GoogleID    *string    `json:"-" db:"google_id"` // Set when the account was created via Google sign-in
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	CGPA        *float64   `json:"cgpa,omitempty" db:"cgpa" example:"8.4"`
	Degree      *string    `json:"degree,omitempty" db:"degree" example:"B.Tech"`
	Batch       *string    `json:"batch,omitempty" db:"batch" example:"2025"`
	Skills      []string   `json:"skills,omitempty" db:"skills"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}

// IsFederated reports whether the user signed up through an external identity
// provider, in which case no local password is stored.
func (u *User) IsFederated() bool {
	return u.GoogleID != nil && *u.GoogleID != ""
}

// RefreshToken defines a persisted refresh token based on the 'refresh_tokens' table
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
