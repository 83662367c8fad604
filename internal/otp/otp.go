// Package otp issues single-use six-digit codes, persists their hashes with a ten minute expiry,
// and hands the plain code to an out-of-band delivery channel.
package otp

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// CodeLength is the fixed number of digits. Leading zeros are kept ("004215" is valid).
const CodeLength = 6

// rejectAbove is the largest multiple of 10 that fits in a byte; bytes at or above it are
// redrawn so every digit is uniform over 0-9.
const rejectAbove = 250

// GenerateCode returns a CodeLength numeric code whose digits are drawn independently and
// uniformly from r (crypto/rand.Reader in production).
func GenerateCode(r io.Reader) (string, error) {
	out := make([]byte, 0, CodeLength)
	buf := make([]byte, CodeLength)
	for len(out) < CodeLength {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= rejectAbove {
				continue
			}
			out = append(out, '0'+b%10)
			if len(out) == CodeLength {
				break
			}
		}
	}
	return string(out), nil
}

// HashCode returns the hex SHA-256 of code. Only hashes are stored.
func HashCode(code string) string {
	h := sha256.Sum256([]byte(code))
	return hex.EncodeToString(h[:])
}
