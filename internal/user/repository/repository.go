package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Rollin-123/belafrica-node-sub000/internal/user/domain"
)

// ErrAlreadyComplete is returned by CompleteProfile when the phone already holds a completed identity.
var ErrAlreadyComplete = errors.New("profile already complete")

// Repository defines persistence for identity records.
type Repository interface {
	// GetByID returns the user for id, or nil if not found.
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByPhone returns the user for phone, or nil if not found.
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	// CompleteProfile stores the profile for phone and marks it complete in one atomic write.
	// newID is used only when no row exists yet. Returns ErrAlreadyComplete if the identity was
	// already complete.
	CompleteProfile(ctx context.Context, newID, phone string, p domain.Profile, now time.Time) (*domain.User, error)
}
