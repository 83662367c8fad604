package envelope

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KDFIterations is fixed; changing it makes every stored envelope undecryptable.
	KDFIterations = 100000
	// KeySize is the AES-256 key length.
	KeySize = 32
)

var (
	// ErrEmptySecret is returned when the conversation secret is empty. It is a caller error.
	ErrEmptySecret = errors.New("envelope: empty conversation secret")
	// ErrDerivation is returned when a key cannot be derived.
	ErrDerivation = errors.New("envelope: key derivation failed")
)

// DeriveKey derives the 32-byte conversation key from secret and a 16-byte salt using
// PBKDF2-HMAC-SHA256. The result is deterministic for a given (secret, salt); only the salt
// is ever persisted.
func DeriveKey(secret string, salt []byte) ([]byte, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt is %d bytes, want %d", ErrDerivation, len(salt), SaltSize)
	}
	key := pbkdf2.Key([]byte(secret), salt, KDFIterations, KeySize, sha256.New)
	if len(key) != KeySize {
		return nil, ErrDerivation
	}
	return key, nil
}
