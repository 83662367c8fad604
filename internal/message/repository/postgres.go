package repository

import (
	"context"
	"database/sql"

	"github.com/Rollin-123/belafrica-node-sub000/internal/message/domain"
)

const (
	insertMessage = `INSERT INTO messages (id, conversation_id, sender_id, envelope, created_at)
VALUES ($1, $2, $3, $4, $5)`

	listMessagesByConversation = `SELECT id, conversation_id, sender_id, envelope, created_at
FROM messages WHERE conversation_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a message repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists the message. The message must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, m *domain.Message) error {
	_, err := r.db.ExecContext(ctx, insertMessage, m.ID, m.ConversationID, m.SenderID, m.Envelope, m.CreatedAt)
	return err
}

// ListByConversation returns the newest messages of the conversation.
func (r *PostgresRepository) ListByConversation(ctx context.Context, conversationID string, limit int) ([]*domain.Message, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := r.db.QueryContext(ctx, listMessagesByConversation, conversationID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Message
	for rows.Next() {
		m := &domain.Message{}
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Envelope, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
