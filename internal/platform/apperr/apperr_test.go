package apperr

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToStatus_Mapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"validation", Validation("bad"), codes.InvalidArgument},
		{"not found", NotFound("missing"), codes.NotFound},
		{"auth", Auth("expired", nil), codes.Unauthenticated},
		{"fraud", FraudSuspicion("mismatch"), codes.PermissionDenied},
		{"dependency", Dependency("down", errors.New("dial tcp")), codes.Unavailable},
		{"crypto", Crypto("decryption failed", nil), codes.InvalidArgument},
		{"rate limited", New(KindRateLimited, "slow down"), codes.ResourceExhausted},
		{"conflict", New(KindConflict, "done"), codes.AlreadyExists},
		{"plain error", errors.New("boom"), codes.Internal},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := status.Code(ToStatus(tc.err))
			if got != tc.want {
				t.Errorf("code = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestToStatus_HidesCause(t *testing.T) {
	err := Dependency("geolocation unavailable", errors.New("dial tcp 10.0.0.1:80: i/o timeout"))
	st, _ := status.FromError(ToStatus(err))
	if st.Message() != "geolocation unavailable" {
		t.Errorf("message = %q, want caller-safe message only", st.Message())
	}
	st, _ = status.FromError(ToStatus(errors.New("pq: relation users does not exist")))
	if st.Message() != "internal error" {
		t.Errorf("message = %q, want %q", st.Message(), "internal error")
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	sentinel := errors.New("tag mismatch")
	err := fmt.Errorf("decrypt message m1: %w", Crypto("decryption failed", sentinel))
	if KindOf(err) != KindCrypto {
		t.Errorf("KindOf = %v, want crypto", KindOf(err))
	}
	if !errors.Is(err, sentinel) {
		t.Error("cause should stay reachable through errors.Is")
	}
	if KindOf(errors.New("x")) != KindUnknown {
		t.Error("plain error should be unknown")
	}
	if Is(nil, KindAuth) {
		t.Error("nil error has no kind")
	}
}
