package dtos

import "time"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=job_seeker employer"`

	// Job seeker profile fields
	FullName  string   `json:"full_name"`
	Headline  string   `json:"headline"`
	Skills    []string `json:"skills"`
	ResumeURL string   `json:"resume_url"`

	// Employer profile fields
	CompanyName string `json:"company_name"`
	Website     string `json:"website"`
	About       string `json:"about"`

	// Shared
	Location string  `json:"location"`
	Lat      float64 `json:"lat" binding:"omitempty,latitude"`
	Lng      float64 `json:"lng" binding:"omitempty,longitude"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
}
