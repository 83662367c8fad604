package envelope

import (
	"bytes"
	"errors"
	"testing"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0x42}, SaltSize)
	k1, err := DeriveKey("conversation-1", salt)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	k2, err := DeriveKey("conversation-1", salt)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if len(k1) != KeySize {
		t.Fatalf("key length = %d, want %d", len(k1), KeySize)
	}
	if !bytes.Equal(k1, k2) {
		t.Error("same secret and salt must derive the same key")
	}
}

func TestDeriveKey_InputsMatter(t *testing.T) {
	saltA := bytes.Repeat([]byte{0x01}, SaltSize)
	saltB := bytes.Repeat([]byte{0x02}, SaltSize)
	ka, _ := DeriveKey("conversation-1", saltA)
	kb, _ := DeriveKey("conversation-1", saltB)
	kc, _ := DeriveKey("conversation-2", saltA)
	if bytes.Equal(ka, kb) {
		t.Error("different salts must derive different keys")
	}
	if bytes.Equal(ka, kc) {
		t.Error("different secrets must derive different keys")
	}
}

func TestDeriveKey_Errors(t *testing.T) {
	if _, err := DeriveKey("", make([]byte, SaltSize)); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("empty secret: err = %v, want ErrEmptySecret", err)
	}
	for _, n := range []int{0, 8, 15, 17, 32} {
		k, err := DeriveKey("s", make([]byte, n))
		if !errors.Is(err, ErrDerivation) {
			t.Errorf("salt %d bytes: err = %v, want ErrDerivation", n, err)
		}
		if k != nil {
			t.Errorf("salt %d bytes: partial key returned", n)
		}
	}
}
