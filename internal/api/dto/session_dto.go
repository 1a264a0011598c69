package dto

import "time"

// AdminLoginRequest carries the fixed credential pair.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

// SessionResponse returns the granted role and its bearer token.
type SessionResponse struct {
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GateStateResponse exposes the transient login failure message; it reads as
// empty once the failure window has elapsed.
type GateStateResponse struct {
	Error string `json:"error"`
}
