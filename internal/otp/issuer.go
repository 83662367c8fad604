package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Rollin-123/belafrica-node-sub000/internal/otp/domain"
	"github.com/Rollin-123/belafrica-node-sub000/internal/otp/repository"
	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/apperr"
	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/logging"
)

var (
	// ErrDelivery is wrapped when the out-of-band channel fails. The record stays persisted but the
	// caller cannot assume the user received a code.
	ErrDelivery = errors.New("otp: delivery failed")
	// ErrInvalidCode is wrapped when no unconsumed, unexpired record matches the submitted code.
	ErrInvalidCode = errors.New("otp: no matching usable code")
)

// Deliverer hands a code to the user outside the request/response cycle.
type Deliverer interface {
	Deliver(ctx context.Context, destination, code string) error
}

// Issued is the result of a successful issuance. Code must only reach the Deliverer.
type Issued struct {
	PhoneNumber string
	Code        string
	ExpiresAt   time.Time
}

// Issuer creates, stores and delivers codes and consumes them exactly once.
type Issuer struct {
	repo      repository.Repository
	deliverer Deliverer
	rand      io.Reader
	now       func() time.Time
	ttl       time.Duration
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithClock sets the time source used for createdAt and the expiry check.
func WithClock(now func() time.Time) Option { return func(i *Issuer) { i.now = now } }

// WithRand sets the randomness source for code digits.
func WithRand(r io.Reader) Option { return func(i *Issuer) { i.rand = r } }

// NewIssuer returns an Issuer storing records in repo and delivering through deliverer.
func NewIssuer(repo repository.Repository, deliverer Deliverer, opts ...Option) *Issuer {
	i := &Issuer{
		repo:      repo,
		deliverer: deliverer,
		rand:      rand.Reader,
		now:       func() time.Time { return time.Now().UTC() },
		ttl:       repository.DefaultTTL,
	}
	for _, o := range opts {
		o(i)
	}
	return i
}

// Issue generates a code for phone, persists its hash with a ten minute expiry and delivers it.
// Earlier outstanding codes for the phone are left untouched.
func (i *Issuer) Issue(ctx context.Context, phone string) (*Issued, error) {
	code, err := GenerateCode(i.rand)
	if err != nil {
		return nil, fmt.Errorf("otp: generate: %w", err)
	}
	now := i.now()
	rec := &domain.Record{
		ID:          uuid.NewString(),
		PhoneNumber: phone,
		CodeHash:    HashCode(code),
		CreatedAt:   now,
		ExpiresAt:   now.Add(i.ttl),
	}
	if err := i.repo.Create(ctx, rec); err != nil {
		return nil, apperr.Dependency("could not create a verification code, try again later", err)
	}
	if err := i.deliverer.Deliver(ctx, phone, code); err != nil {
		log.Warn().Err(err).Str("phone", logging.MaskPhone(phone)).Str("otp_id", rec.ID).Msg("otp delivery failed")
		return nil, apperr.Dependency("could not send the verification code, request a new one", fmt.Errorf("%w: %v", ErrDelivery, err))
	}
	return &Issued{PhoneNumber: phone, Code: code, ExpiresAt: rec.ExpiresAt}, nil
}

// Consume marks the record matching (phone, code) consumed with one conditional write. A wrong,
// expired or already used code is a KindAuth error; the three cases are not told apart.
func (i *Issuer) Consume(ctx context.Context, phone, code string) error {
	ok, err := i.repo.Consume(ctx, phone, HashCode(code), i.now())
	if err != nil {
		return apperr.Dependency("could not verify the code, try again later", err)
	}
	if !ok {
		return apperr.Auth("code is invalid or expired, request a new one", ErrInvalidCode)
	}
	return nil
}

// Sweep deletes records that expired more than retention ago.
func (i *Issuer) Sweep(ctx context.Context, retention time.Duration) (int64, error) {
	return i.repo.DeleteExpiredBefore(ctx, i.now().Add(-retention))
}
