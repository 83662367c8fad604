package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Rollin-123/belafrica-node-sub000/internal/message/domain"
)

// MemoryRepository keeps messages in memory. Used by tests.
type MemoryRepository struct {
	mu       sync.Mutex
	messages []*domain.Message
}

// NewMemoryRepository returns an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Create(ctx context.Context, msg *domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *msg
	m.messages = append(m.messages, &cp)
	return nil
}

func (m *MemoryRepository) ListByConversation(ctx context.Context, conversationID string, limit int) ([]*domain.Message, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Message
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			cp := *msg
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Put stores msg as-is, bypassing encryption. Used to plant corrupt envelopes in tests.
func (m *MemoryRepository) Put(msg *domain.Message) {
	_ = m.Create(context.Background(), msg)
}
