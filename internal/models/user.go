package models

import "time"

// User is the persistence shape of a user row.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	AuthProvider string `db:"auth_provider"`
	Email        string `db:"email"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
