package model

import "time"

// RefreshToken is refresh token model entity
type RefreshToken struct {
	ID          string
	UserID      string
	Fingerprint string
	ExpiresIn   int
	CreatedAt   time.Time
}

// Expired reports whether the token is expired at the provided moment
func (r *RefreshToken) Expired(now time.Time) bool {
	return r.CreatedAt.Add(time.Duration(r.ExpiresIn) * time.Second).Before(now)
}
