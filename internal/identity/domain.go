package identity

import "time"

// User is an account that can authenticate and hold a role. The ID is the
// short username used throughout the audit trail (e.g. "srodriguez").
type User struct {
	ID           string
	Email        string
	Name         string
	Role         string
	Region       string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
