package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Rollin-123/belafrica-node-sub000/internal/envelope"
	"github.com/Rollin-123/belafrica-node-sub000/internal/message/domain"
	"github.com/Rollin-123/belafrica-node-sub000/internal/message/repository"
	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/apperr"
	"github.com/Rollin-123/belafrica-node-sub000/internal/telemetry"
)

// Decrypt failure kinds, used for logs and the decrypt-failure counter.
const (
	FailureMalformed      = "malformed"
	FailureAuthentication = "authentication"
	FailureDerivation     = "derivation"
)

// Cipher seals and opens envelopes. *envelope.Cipher implements it.
type Cipher interface {
	Encrypt(plaintext, conversationSecret string) (string, error)
	Decrypt(encoded, conversationSecret string) (string, error)
}

// MessageService encrypts message content with the conversation id as the shared secret and
// stores only envelopes.
type MessageService struct {
	cipher  Cipher
	repo    repository.Repository
	metrics *telemetry.Metrics
	now     func() time.Time
}

// NewMessageService returns a MessageService. metrics may be nil.
func NewMessageService(c Cipher, repo repository.Repository, metrics *telemetry.Metrics) *MessageService {
	return &MessageService{cipher: c, repo: repo, metrics: metrics, now: func() time.Time { return time.Now().UTC() }}
}

// Encrypt returns the envelope of plaintext for the conversation.
func (s *MessageService) Encrypt(ctx context.Context, plaintext, conversationID string) (string, error) {
	enc, err := s.cipher.Encrypt(plaintext, conversationID)
	if err != nil {
		if errors.Is(err, envelope.ErrEmptySecret) {
			return "", apperr.Validation("conversationId is required")
		}
		return "", apperr.Crypto("encryption failed", err)
	}
	return enc, nil
}

// Decrypt opens an envelope. Corruption and authentication failures are logged apart but both
// surface as KindCrypto without partial plaintext.
func (s *MessageService) Decrypt(ctx context.Context, encoded, conversationID string) (string, error) {
	pt, err := s.cipher.Decrypt(encoded, conversationID)
	if err != nil {
		if errors.Is(err, envelope.ErrEmptySecret) {
			return "", apperr.Validation("conversationId is required")
		}
		s.decryptFailed(ctx, "", err)
		return "", apperr.Crypto("decryption failed", err)
	}
	return pt, nil
}

// Send encrypts content and stores the envelope as a message from senderID.
func (s *MessageService) Send(ctx context.Context, senderID, conversationID, content string) (*domain.Decrypted, error) {
	enc, err := s.Encrypt(ctx, content, conversationID)
	if err != nil {
		return nil, err
	}
	m := domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Envelope:       enc,
		CreatedAt:      s.now(),
	}
	if err := s.repo.Create(ctx, &m); err != nil {
		return nil, apperr.Dependency("could not store the message, try again later", err)
	}
	return &domain.Decrypted{Message: m, Content: content}, nil
}

// List returns the newest messages of the conversation, decrypted. A row that fails to open
// is returned with Undecryptable set instead of failing the whole listing.
func (s *MessageService) List(ctx context.Context, conversationID string, limit int) ([]*domain.Decrypted, error) {
	rows, err := s.repo.ListByConversation(ctx, conversationID, limit)
	if err != nil {
		return nil, apperr.Dependency("could not load messages, try again later", err)
	}
	out := make([]*domain.Decrypted, 0, len(rows))
	for _, m := range rows {
		d := &domain.Decrypted{Message: *m}
		pt, err := s.cipher.Decrypt(m.Envelope, conversationID)
		if err != nil {
			s.decryptFailed(ctx, m.ID, err)
			d.Undecryptable = true
		} else {
			d.Content = pt
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *MessageService) decryptFailed(ctx context.Context, messageID string, err error) {
	kind := FailureDerivation
	switch {
	case errors.Is(err, envelope.ErrMalformed):
		kind = FailureMalformed
		log.Warn().Str("message_id", messageID).Str("failure", kind).Msg("envelope is corrupt")
	case errors.Is(err, envelope.ErrAuthentication):
		kind = FailureAuthentication
		log.Warn().Str("message_id", messageID).Str("failure", kind).Msg("envelope failed authentication")
	default:
		log.Error().Err(err).Str("message_id", messageID).Msg("envelope key derivation failed")
	}
	s.metrics.DecryptFailure(ctx, kind)
}
