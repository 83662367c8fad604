package domain

import "time"

// Message is a stored message. Only the envelope is persisted; the plaintext never reaches the store.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Envelope       string
	CreatedAt      time.Time
}

// Decrypted is a stored message after an attempt to open its envelope. Content is empty when
// Undecryptable is set.
type Decrypted struct {
	Message
	Content       string
	Undecryptable bool
}
