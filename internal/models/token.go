package models

import "time"

// RefreshToken is one persisted refresh session. A token is spent either
// by rotation, which sets Revoked on use, or by passing ExpiresAt.
type RefreshToken struct {
	ID        string     `db:"id" json:"id"`
	UserID    string     `db:"user_id" json:"user_id"`
	Token     string     `db:"token" json:"token"`
	IPAddress string     `db:"ip_address" json:"ip_address"`
	UserAgent string     `db:"user_agent" json:"user_agent"`
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	Revoked   bool       `db:"revoked" json:"revoked"`
	RevokedAt *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
}

// Usable reports whether the token can still be exchanged at the given time.
func (t *RefreshToken) Usable(at time.Time) bool {
	return t != nil && !t.Revoked && at.Before(t.ExpiresAt)
}
