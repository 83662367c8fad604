package repository

import (
	"context"
	"time"

	"github.com/Rollin-123/belafrica-node-sub000/internal/otp/domain"
)

// Repository persists OTP records.
type Repository interface {
	// Create inserts r. r.ID must be set.
	Create(ctx context.Context, r *domain.Record) error
	// Consume atomically marks the record matching (phone, codeHash, unconsumed, expires_at > now)
	// consumed and reports whether one was found. It is a single conditional write: of two
	// concurrent calls for the same record exactly one returns true.
	Consume(ctx context.Context, phone, codeHash string, now time.Time) (bool, error)
	// FindUnexpiredByPhone returns the newest unconsumed, unexpired record for phone, or nil.
	FindUnexpiredByPhone(ctx context.Context, phone string, now time.Time) (*domain.Record, error)
	// DeleteExpiredBefore removes records that expired before cutoff and returns how many.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = 10 * time.Minute
