// Package envelope implements per-conversation message encryption: PBKDF2 key derivation,
// AES-256-GCM sealing, and the salt‖iv‖tag‖ciphertext envelope transported as base64.
//
// The byte layout is shared with stored data and other implementations and must not change:
//
//	offset 0  16 bytes  salt
//	offset 16 12 bytes  iv (GCM nonce)
//	offset 28 16 bytes  auth tag
//	offset 44 ...       ciphertext
package envelope

import (
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	SaltSize = 16
	IVSize   = 12
	TagSize  = 16

	ivOffset         = SaltSize
	tagOffset        = ivOffset + IVSize
	ciphertextOffset = tagOffset + TagSize
)

// HeaderSize is the fixed prefix preceding the ciphertext.
const HeaderSize = ciphertextOffset

// ErrMalformed is returned when the envelope cannot be decoded or is shorter than HeaderSize.
// It indicates storage/format corruption, not tampering.
var ErrMalformed = errors.New("envelope: malformed")

// Envelope is the decoded form of an encrypted message.
type Envelope struct {
	Salt       [SaltSize]byte
	IV         [IVSize]byte
	Tag        [TagSize]byte
	Ciphertext []byte
}

// Bytes returns salt‖iv‖tag‖ciphertext.
func (e *Envelope) Bytes() []byte {
	out := make([]byte, 0, HeaderSize+len(e.Ciphertext))
	out = append(out, e.Salt[:]...)
	out = append(out, e.IV[:]...)
	out = append(out, e.Tag[:]...)
	return append(out, e.Ciphertext...)
}

// Encode returns the standard base64 encoding of Bytes.
func (e *Envelope) Encode() string {
	return base64.StdEncoding.EncodeToString(e.Bytes())
}

// Parse splits raw envelope bytes at the fixed offsets. The ciphertext may be empty.
func Parse(raw []byte) (*Envelope, error) {
	if len(raw) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformed, len(raw), HeaderSize)
	}
	e := &Envelope{}
	copy(e.Salt[:], raw[:ivOffset])
	copy(e.IV[:], raw[ivOffset:tagOffset])
	copy(e.Tag[:], raw[tagOffset:ciphertextOffset])
	e.Ciphertext = append([]byte(nil), raw[ciphertextOffset:]...)
	return e, nil
}

// Decode base64-decodes s and parses it.
func Decode(s string) (*Envelope, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Parse(raw)
}
