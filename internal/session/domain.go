package session

import "time"

// DefaultTTL is the fixed validity window for new sessions.
const DefaultTTL = 8 * time.Hour

// Session is an issued login session. Rows are never deleted; expiry and
// logout only flip IsActive, so the record stays available for audit.
type Session struct {
	ID        string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Region    string    `json:"region"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IPAddress string    `json:"ip_address,omitempty"`
	IsActive  bool      `json:"is_active"`
}

// Expired reports whether the session's validity window has elapsed.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
