// Package handler exposes message encryption and envelope storage as belafrica.message.v1.MessageService.
package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	messagev1 "github.com/Rollin-123/belafrica-node-sub000/api/message/v1"
	"github.com/Rollin-123/belafrica-node-sub000/internal/message/domain"
	"github.com/Rollin-123/belafrica-node-sub000/internal/message/service"
	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/validation"
	"github.com/Rollin-123/belafrica-node-sub000/internal/server/interceptors"
)

// Server implements MessageService. Every method requires a Permanent token, enforced by the
// auth interceptor.
type Server struct {
	messagev1.UnimplementedMessageServiceServer
	messages *service.MessageService
	validate *validation.Validator
}

// NewServer returns a MessageService server backed by messages.
func NewServer(messages *service.MessageService) *Server {
	return &Server{messages: messages, validate: validation.New()}
}

func (s *Server) EncryptMessage(ctx context.Context, req *messagev1.EncryptMessageRequest) (*messagev1.EncryptMessageResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	enc, err := s.messages.Encrypt(ctx, req.Plaintext, req.ConversationID)
	if err != nil {
		return nil, err
	}
	return &messagev1.EncryptMessageResponse{Envelope: enc}, nil
}

func (s *Server) DecryptMessage(ctx context.Context, req *messagev1.DecryptMessageRequest) (*messagev1.DecryptMessageResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	pt, err := s.messages.Decrypt(ctx, req.Envelope, req.ConversationID)
	if err != nil {
		return nil, err
	}
	return &messagev1.DecryptMessageResponse{Plaintext: pt}, nil
}

// SendMessage stores content for the authenticated sender. Conversation membership is not
// checked: any Permanent token holder may post to any conversation id, so the id acts as a
// shared secret between participants.
func (s *Server) SendMessage(ctx context.Context, req *messagev1.SendMessageRequest) (*messagev1.SendMessageResponse, error) {
	userID, ok := interceptors.GetUserID(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing or invalid authorization")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	m, err := s.messages.Send(ctx, userID, req.ConversationID, req.Content)
	if err != nil {
		return nil, err
	}
	return &messagev1.SendMessageResponse{Message: toMessage(m)}, nil
}

// ListMessages returns the decrypted history of a conversation, newest first. As with
// SendMessage, the caller's membership in the conversation is not checked.
func (s *Server) ListMessages(ctx context.Context, req *messagev1.ListMessagesRequest) (*messagev1.ListMessagesResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	list, err := s.messages.List(ctx, req.ConversationID, req.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]*messagev1.Message, len(list))
	for i, m := range list {
		out[i] = toMessage(m)
	}
	return &messagev1.ListMessagesResponse{Messages: out}, nil
}

func toMessage(m *domain.Decrypted) *messagev1.Message {
	return &messagev1.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		Undecryptable:  m.Undecryptable,
		CreatedAt:      m.CreatedAt,
	}
}
