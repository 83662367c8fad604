// Package messagev1 declares belafrica.message.v1.MessageService: envelope encryption of message
// content keyed by the conversation identifier, and storage of envelopes in place of plaintext.
package messagev1

import "time"

type EncryptMessageRequest struct {
	Plaintext      string `json:"plaintext" validate:"max=65536"`
	ConversationID string `json:"conversationId" validate:"required,max=128"`
}

type EncryptMessageResponse struct {
	Envelope string `json:"envelope"`
}

type DecryptMessageRequest struct {
	Envelope       string `json:"envelope" validate:"required"`
	ConversationID string `json:"conversationId" validate:"required,max=128"`
}

type DecryptMessageResponse struct {
	Plaintext string `json:"plaintext"`
}

type SendMessageRequest struct {
	ConversationID string `json:"conversationId" validate:"required,max=128"`
	Content        string `json:"content" validate:"required,max=65536"`
}

type SendMessageResponse struct {
	Message *Message `json:"message"`
}

type ListMessagesRequest struct {
	ConversationID string `json:"conversationId" validate:"required,max=128"`
	Limit          int    `json:"limit" validate:"min=0,max=200"`
}

type ListMessagesResponse struct {
	Messages []*Message `json:"messages"`
}

// Message is a stored message with its content decrypted. Undecryptable is set, and Content left
// empty, when the stored envelope fails to open.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Content        string    `json:"content"`
	Undecryptable  bool      `json:"undecryptable,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
