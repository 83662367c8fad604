package domain

import "time"

// Record is an issued OTP (otp_codes table). The plain code is never stored, only CodeHash.
// Several unconsumed records may exist for one phone; the consume predicate selects by hash.
type Record struct {
	ID          string
	PhoneNumber string
	CodeHash    string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	Consumed    bool
	ConsumedAt  *time.Time
}

// Usable reports whether r could still be consumed at now. Expiry is exclusive: a record is dead
// at ExpiresAt.
func (r *Record) Usable(now time.Time) bool {
	return !r.Consumed && now.Before(r.ExpiresAt)
}
