// Package devotp keeps the latest OTP per phone number in memory so local clients can fetch it
// through DevService instead of receiving an SMS. It is never wired in production.
package devotp

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/logging"
)

const cleanupInterval = time.Minute

// Store holds plain codes by phone number for dev-only retrieval.
type Store interface {
	Put(ctx context.Context, phone, code string, expiresAt time.Time)
	// Get returns the latest code for phone; ok is false when missing or expired.
	Get(ctx context.Context, phone string) (code string, expiresAt time.Time, ok bool)
}

type entry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore is a go-cache backed Store. It also implements otp.Deliverer, so the issuer can
// deliver into it directly.
type MemoryStore struct {
	c    *gocache.Cache
	ttl  time.Duration
	nowF func() time.Time
}

// NewMemoryStore returns a store whose delivered codes live for ttl, matching the OTP expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		c:    gocache.New(ttl, cleanupInterval),
		ttl:  ttl,
		nowF: func() time.Time { return time.Now().UTC() },
	}
}

// Put stores code for phone until expiresAt, replacing any earlier code.
func (s *MemoryStore) Put(ctx context.Context, phone, code string, expiresAt time.Time) {
	d := expiresAt.Sub(s.nowF())
	if d <= 0 {
		s.c.Delete(phone)
		return
	}
	s.c.Set(phone, entry{code: code, expiresAt: expiresAt}, d)
}

// Get returns the code for phone if present and not expired.
func (s *MemoryStore) Get(ctx context.Context, phone string) (string, time.Time, bool) {
	v, ok := s.c.Get(phone)
	if !ok {
		return "", time.Time{}, false
	}
	e := v.(entry)
	if !e.expiresAt.After(s.nowF()) {
		s.c.Delete(phone)
		return "", time.Time{}, false
	}
	return e.code, e.expiresAt, true
}

// Deliver records code for destination instead of sending it.
func (s *MemoryStore) Deliver(ctx context.Context, destination, code string) error {
	s.Put(ctx, destination, code, s.nowF().Add(s.ttl))
	log.Info().Str("phone", logging.MaskPhone(destination)).Msg("dev otp stored; fetch it with DevService.GetOTP")
	return nil
}
