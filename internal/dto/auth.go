package dto

import "time"

// LoginRequest defines the credentials payload for password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// GoogleExchangeCodeRequest carries the OAuth authorization code sent by the
// frontend after the Google consent redirect.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
