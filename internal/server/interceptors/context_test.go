package interceptors

import (
	"context"
	"testing"
)

func TestWithIdentity(t *testing.T) {
	ctx := WithIdentity(context.Background(), "user-1", "+33612345678")
	if v, ok := GetUserID(ctx); !ok || v != "user-1" {
		t.Errorf("GetUserID = %q, %v", v, ok)
	}
	if v, ok := GetPhoneNumber(ctx); !ok || v != "+33612345678" {
		t.Errorf("GetPhoneNumber = %q, %v", v, ok)
	}
}

func TestGetUserID_Missing(t *testing.T) {
	if v, ok := GetUserID(context.Background()); ok || v != "" {
		t.Errorf("GetUserID = %q, %v; want \"\", false", v, ok)
	}
	if _, ok := GetUserID(WithIdentity(context.Background(), "", "")); ok {
		t.Error("empty user id must not count as set")
	}
}
