package engine

import (
	"context"
	"testing"
)

func newEvaluator(t *testing.T) *OPAEvaluator {
	t.Helper()
	e, err := NewOPAEvaluator(context.Background(), "")
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	return e
}

func TestOPAEvaluator_HealthCheck(t *testing.T) {
	if err := newEvaluator(t).HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}

func TestOPAEvaluator_EvaluateGeo(t *testing.T) {
	e := newEvaluator(t)
	tests := []struct {
		name       string
		in         GeoInput
		wantAllow  bool
		wantReason string
	}{
		{"exact match", GeoInput{"BY", "+375", []string{"BY"}}, true, ReasonCountryMatch},
		{"second of several", GeoInput{"US", "+1", []string{"CA", "US"}}, true, ReasonCountryMatch},
		{"case and space insensitive", GeoInput{" kz ", "+7", []string{"RU", "Kz"}}, true, ReasonCountryMatch},
		{"mismatch", GeoInput{"FR", "+375", []string{"BY"}}, false, ReasonCountryMismatch},
		{"empty allow list", GeoInput{"FR", "+33", nil}, false, ReasonCountryMismatch},
		{"unresolved", GeoInput{"", "+33", []string{"FR"}}, false, ReasonUnresolvedCountry},
		{"blank allowed entry never matches blank detection", GeoInput{"  ", "+33", []string{" "}}, false, ReasonUnresolvedCountry},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.EvaluateGeo(context.Background(), tc.in)
			if err != nil {
				t.Fatalf("EvaluateGeo: %v", err)
			}
			if got.Allowed != tc.wantAllow || got.Reason != tc.wantReason {
				t.Errorf("got %+v, want allowed=%v reason=%q", got, tc.wantAllow, tc.wantReason)
			}
		})
	}
}

func TestNewOPAEvaluator_InvalidPolicy(t *testing.T) {
	if _, err := NewOPAEvaluator(context.Background(), "package broken\nallow if {"); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestNewOPAEvaluator_CustomPolicy(t *testing.T) {
	const denyAll = `package belafrica.geo

default allow := false

default reason := "maintenance"
`
	e, err := NewOPAEvaluator(context.Background(), denyAll)
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	got, err := e.EvaluateGeo(context.Background(), GeoInput{"FR", "+33", []string{"FR"}})
	if err != nil {
		t.Fatalf("EvaluateGeo: %v", err)
	}
	if got.Allowed || got.Reason != "maintenance" {
		t.Errorf("got %+v", got)
	}
	if err := e.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck should fail when a matching country is denied")
	}
}
