package dto

import "github.com/kaanaktas/campushub/internal/app/models"

// RegisterRequest is the payload for POST /auth/register
type RegisterRequest struct {
	Name     string   `json:"name" binding:"required,min=2,max=100"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Role     string   `json:"role" binding:"omitempty,oneof=student faculty admin placement"`
	CGPA     *float64 `json:"cgpa" binding:"omitempty,gte=0,lte=10"`
	Degree   *string  `json:"degree"`
	Batch    *string  `json:"batch"`
	Skills   []string `json:"skills"`
}

// LoginRequest is the payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest is the payload for POST /auth/refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair.
type TokenResponse struct {
	AccessToken      string       `json:"accessToken"`
	RefreshToken     string       `json:"refreshToken"`
	ExpiresIn        int          `json:"expiresIn"`        // Seconds until the access token expires
	RefreshExpiresIn int          `json:"refreshExpiresIn"` // Seconds until the refresh token expires
	User             *models.User `json:"user"`
}
