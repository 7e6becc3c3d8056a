package domain

import "time"

// User represents an administrative user of the ledger backend.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	// AuthProvider is "local" for password logins, "google" for OAuth users.
	AuthProvider string `json:"authProvider"`
	Email        string `json:"email,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete marker
}
