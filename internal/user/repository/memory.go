package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Rollin-123/belafrica-node-sub000/internal/user/domain"
)

// MemoryRepository keeps users in a map keyed by phone. Used by tests.
type MemoryRepository struct {
	mu      sync.Mutex
	byPhone map[string]*domain.User
}

// NewMemoryRepository returns an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byPhone: make(map[string]*domain.User)}
}

func (m *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byPhone {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byPhone[phone]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryRepository) CompleteProfile(ctx context.Context, newID, phone string, p domain.Profile, now time.Time) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byPhone[phone]
	if ok && u.ProfileComplete {
		return nil, ErrAlreadyComplete
	}
	if !ok {
		u = &domain.User{ID: newID, PhoneNumber: phone, CreatedAt: now}
		m.byPhone[phone] = u
	}
	u.Pseudo = p.Pseudo
	u.CountryName = p.CountryName
	u.NationalityName = p.NationalityName
	u.Community = p.Community
	u.ProfileComplete = true
	u.UpdatedAt = now
	cp := *u
	return &cp, nil
}
