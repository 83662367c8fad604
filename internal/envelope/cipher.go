package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// ErrAuthentication is returned when the GCM tag does not verify: the envelope was
// tampered with or the conversation secret is wrong. No plaintext is returned.
var ErrAuthentication = errors.New("envelope: authentication failed")

// Cipher encrypts and decrypts message content for a conversation.
// It is safe for concurrent use.
type Cipher struct {
	rand io.Reader
}

// NewCipher returns a Cipher drawing salts and nonces from crypto/rand.
func NewCipher() *Cipher {
	return &Cipher{rand: rand.Reader}
}

// Encrypt seals plaintext under a key derived from conversationSecret and a fresh salt,
// and returns the base64 envelope. Empty plaintext is valid.
func (c *Cipher) Encrypt(plaintext, conversationSecret string) (string, error) {
	if conversationSecret == "" {
		return "", ErrEmptySecret
	}
	env := &Envelope{}
	if _, err := io.ReadFull(c.rand, env.Salt[:]); err != nil {
		return "", fmt.Errorf("envelope: salt: %w", err)
	}
	if _, err := io.ReadFull(c.rand, env.IV[:]); err != nil {
		return "", fmt.Errorf("envelope: iv: %w", err)
	}
	key, err := DeriveKey(conversationSecret, env.Salt[:])
	if err != nil {
		return "", err
	}
	if err := seal(key, env, []byte(plaintext)); err != nil {
		return "", err
	}
	return env.Encode(), nil
}

// Decrypt opens an envelope produced by Encrypt. It returns ErrMalformed for undecodable or
// truncated input and ErrAuthentication for a tag mismatch.
func (c *Cipher) Decrypt(encoded, conversationSecret string) (string, error) {
	if conversationSecret == "" {
		return "", ErrEmptySecret
	}
	env, err := Decode(encoded)
	if err != nil {
		return "", err
	}
	key, err := DeriveKey(conversationSecret, env.Salt[:])
	if err != nil {
		return "", err
	}
	pt, err := open(key, env)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDerivation, err)
	}
	gcm, err := cipher.NewGCMWithTagSize(block, TagSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDerivation, err)
	}
	return gcm, nil
}

// seal fills env.Tag and env.Ciphertext. GCM appends the tag to the ciphertext; the envelope
// stores it ahead of the ciphertext instead.
func seal(key []byte, env *Envelope, plaintext []byte) error {
	gcm, err := newGCM(key)
	if err != nil {
		return err
	}
	sealed := gcm.Seal(nil, env.IV[:], plaintext, nil)
	n := len(sealed) - TagSize
	env.Ciphertext = sealed[:n]
	copy(env.Tag[:], sealed[n:])
	return nil
}

func open(key []byte, env *Envelope) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	sealed := make([]byte, 0, len(env.Ciphertext)+TagSize)
	sealed = append(sealed, env.Ciphertext...)
	sealed = append(sealed, env.Tag[:]...)
	pt, err := gcm.Open(nil, env.IV[:], sealed, nil)
	if err != nil {
		return nil, ErrAuthentication
	}
	if pt == nil {
		pt = []byte{}
	}
	return pt, nil
}
