package repository

import (
	"context"

	"github.com/Rollin-123/belafrica-node-sub000/internal/message/domain"
)

// DefaultListLimit applies when a caller asks for zero messages.
const DefaultListLimit = 50

// Repository defines persistence for message envelopes.
type Repository interface {
	Create(ctx context.Context, m *domain.Message) error
	// ListByConversation returns up to limit messages, newest first.
	ListByConversation(ctx context.Context, conversationID string, limit int) ([]*domain.Message, error)
}
