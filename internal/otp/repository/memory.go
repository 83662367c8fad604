package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Rollin-123/belafrica-node-sub000/internal/otp/domain"
)

// MemoryRepository is a mutex-guarded Repository for tests and single-process tooling.
// Consume holds the lock across find-and-flip, matching the atomicity of the SQL version.
type MemoryRepository struct {
	mu      sync.Mutex
	records []*domain.Record
}

// NewMemoryRepository returns an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Create(ctx context.Context, r *domain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.records = append(m.records, &cp)
	return nil
}

func (m *MemoryRepository) Consume(ctx context.Context, phone, codeHash string, now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *domain.Record
	for _, r := range m.records {
		if r.PhoneNumber != phone || r.CodeHash != codeHash || !r.Usable(now) {
			continue
		}
		if best == nil || r.CreatedAt.After(best.CreatedAt) {
			best = r
		}
	}
	if best == nil {
		return false, nil
	}
	best.Consumed = true
	t := now
	best.ConsumedAt = &t
	return true, nil
}

func (m *MemoryRepository) FindUnexpiredByPhone(ctx context.Context, phone string, now time.Time) (*domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *domain.Record
	for _, r := range m.records {
		if r.PhoneNumber == phone && r.Usable(now) && (best == nil || r.CreatedAt.After(best.CreatedAt)) {
			best = r
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (m *MemoryRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.records[:0]
	var n int64
	for _, r := range m.records {
		if r.ExpiresAt.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return n, nil
}

// Len returns the number of stored records.
func (m *MemoryRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
