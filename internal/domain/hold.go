package domain

import "time"

// Hold is a short-lived, token-scoped soft reservation of slot capacity.
// It keeps a slot from being oversold while a customer is mid-checkout.
// A token owns at most one hold at a time; reselecting a slot replaces
// the previous hold. Holds expire automatically and are purged lazily on
// read, with a periodic sweep as an optimization.
type Hold struct {
	ID        int64
	SlotDate  time.Time
	SlotKey   string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired returns true once the hold no longer counts toward usage
func (h *Hold) IsExpired(now time.Time) bool {
	return !h.ExpiresAt.After(now)
}
