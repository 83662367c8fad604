package security

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newProvider(t *testing.T) *TokenProvider {
	t.Helper()
	p, err := NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	return p
}

func TestTokenProvider_TemporaryRoundTrip(t *testing.T) {
	p := newProvider(t)
	phone := "+33612345678"

	tok, exp, err := p.IssueTemporary(phone)
	if err != nil {
		t.Fatalf("IssueTemporary: %v", err)
	}
	if tok == "" {
		t.Fatal("empty token")
	}
	if d := time.Until(exp); d < 14*time.Minute || d > 15*time.Minute {
		t.Errorf("temporary ttl = %v, want ~15m", d)
	}
	got, err := p.ValidateTemporary(tok)
	if err != nil {
		t.Fatalf("ValidateTemporary: %v", err)
	}
	if got.PhoneNumber != phone {
		t.Errorf("PhoneNumber = %q, want %q", got.PhoneNumber, phone)
	}
}

func TestTokenProvider_PermanentRoundTrip(t *testing.T) {
	p := newProvider(t)
	tok, exp, err := p.IssuePermanent("user-1", "+375291234567")
	if err != nil {
		t.Fatalf("IssuePermanent: %v", err)
	}
	if d := time.Until(exp); d < 6*24*time.Hour {
		t.Errorf("permanent ttl = %v, want 7d", d)
	}
	got, err := p.ValidatePermanent(tok)
	if err != nil {
		t.Fatalf("ValidatePermanent: %v", err)
	}
	if got.UserID != "user-1" || got.PhoneNumber != "+375291234567" {
		t.Errorf("got %+v", got)
	}
}

func TestTokenProvider_DiscriminatorIsChecked(t *testing.T) {
	p := newProvider(t)
	temp, _, err := p.IssueTemporary("+33612345678")
	if err != nil {
		t.Fatalf("IssueTemporary: %v", err)
	}
	perm, _, err := p.IssuePermanent("user-1", "+33612345678")
	if err != nil {
		t.Fatalf("IssuePermanent: %v", err)
	}

	if _, err := p.ValidateTemporary(perm); !errors.Is(err, ErrWrongTokenType) {
		t.Errorf("permanent token as temporary: err = %v, want ErrWrongTokenType", err)
	}
	if _, err := p.ValidatePermanent(temp); !errors.Is(err, ErrWrongTokenType) {
		t.Errorf("temporary token as permanent: err = %v, want ErrWrongTokenType", err)
	}
}

func TestTokenProvider_MissingDiscriminatorRejected(t *testing.T) {
	p := newProvider(t)
	now := time.Now().UTC()
	claims := IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "+33612345678",
			Issuer:    TestIssuer,
			Audience:  jwt.ClaimStrings{TestAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		PhoneNumber: "+33612345678",
	}
	tok, err := p.sign(claims)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := p.ValidateTemporary(tok); !errors.Is(err, ErrWrongTokenType) {
		t.Errorf("ValidateTemporary: err = %v, want ErrWrongTokenType", err)
	}
	if _, err := p.ValidatePermanent(tok); !errors.Is(err, ErrWrongTokenType) {
		t.Errorf("ValidatePermanent: err = %v, want ErrWrongTokenType", err)
	}
}

func TestTokenProvider_ExpiryBoundary(t *testing.T) {
	p := newProvider(t)
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p.WithClock(func() time.Time { return issued })
	tok, exp, err := p.IssueTemporary("+33612345678")
	if err != nil {
		t.Fatalf("IssueTemporary: %v", err)
	}

	p.WithClock(func() time.Time { return exp.Add(-time.Second) })
	if _, err := p.ValidateTemporary(tok); err != nil {
		t.Errorf("one second before expiry: %v", err)
	}
	p.WithClock(func() time.Time { return exp })
	if _, err := p.ValidateTemporary(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("at expiry: err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenProvider_RejectsForeignTokens(t *testing.T) {
	p := newProvider(t)
	tok, _, err := p.IssuePermanent("user-1", "+33612345678")
	if err != nil {
		t.Fatalf("IssuePermanent: %v", err)
	}

	other := NewTokenProvider(p.privateKey, p.publicKey, "someone-else", TestAudience, time.Minute, time.Hour)
	if _, err := other.ValidatePermanent(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("issuer mismatch: err = %v, want ErrInvalidToken", err)
	}
	other = NewTokenProvider(p.privateKey, p.publicKey, TestIssuer, "another-api", time.Minute, time.Hour)
	if _, err := other.ValidatePermanent(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("audience mismatch: err = %v, want ErrInvalidToken", err)
	}

	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	forger := NewTokenProvider(ecKey, &ecKey.PublicKey, TestIssuer, TestAudience, time.Minute, time.Hour)
	forged, _, err := forger.IssuePermanent("user-1", "+33612345678")
	if err != nil {
		t.Fatalf("forger IssuePermanent: %v", err)
	}
	if _, err := p.ValidatePermanent(forged); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign key: err = %v, want ErrInvalidToken", err)
	}

	for _, bad := range []string{"", "invalid-token", tok + "x"} {
		if _, err := p.ValidatePermanent(bad); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ValidatePermanent(%q): err = %v, want ErrInvalidToken", bad, err)
		}
	}
}

func TestTokenProvider_ES256(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	p := NewTokenProvider(key, &key.PublicKey, "iss", "aud", 15*time.Minute, 7*24*time.Hour)
	tok, _, err := p.IssueTemporary("+79161234567")
	if err != nil {
		t.Fatalf("IssueTemporary: %v", err)
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(tok, &IdentityClaims{})
	if err != nil {
		t.Fatalf("ParseUnverified: %v", err)
	}
	if parsed.Method.Alg() != "ES256" {
		t.Errorf("alg = %s, want ES256", parsed.Method.Alg())
	}
	if _, err := p.ValidateTemporary(tok); err != nil {
		t.Errorf("ValidateTemporary: %v", err)
	}
}
