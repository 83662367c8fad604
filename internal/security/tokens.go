package security

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, expired, badly signed or from another issuer/audience.
	ErrInvalidToken = errors.New("invalid token")
	// ErrWrongTokenType is returned when a validly signed token carries the other discriminator value.
	ErrWrongTokenType = errors.New("wrong token type")
)

// IdentityClaims are the claims of both identity token variants. Temp is the discriminator:
// true for a Temporary token, false for a Permanent one. A token without the claim is neither.
type IdentityClaims struct {
	jwt.RegisteredClaims
	PhoneNumber string `json:"phoneNumber"`
	Temp        *bool  `json:"temp"`
}

// Temporary is a verified Temporary token. Subject is the phone number that passed OTP.
type Temporary struct {
	PhoneNumber string
	ExpiresAt   time.Time
}

// Permanent is a verified Permanent token.
type Permanent struct {
	UserID      string
	PhoneNumber string
	ExpiresAt   time.Time
}

// TokenProvider issues and validates Temporary and Permanent identity tokens with one RS256 or ES256 key pair.
type TokenProvider struct {
	privateKey   crypto.Signer
	publicKey    crypto.PublicKey
	issuer       string
	audience     string
	tempTTL      time.Duration
	permanentTTL time.Duration
	now          func() time.Time
}

// NewTokenProvider returns a TokenProvider that signs with privateKey and verifies with publicKey.
func NewTokenProvider(privateKey crypto.Signer, publicKey crypto.PublicKey, issuer, audience string, tempTTL, permanentTTL time.Duration) *TokenProvider {
	return &TokenProvider{
		privateKey:   privateKey,
		publicKey:    publicKey,
		issuer:       issuer,
		audience:     audience,
		tempTTL:      tempTTL,
		permanentTTL: permanentTTL,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the issuance clock. Used by tests.
func (p *TokenProvider) WithClock(now func() time.Time) *TokenProvider {
	p.now = now
	return p
}

// IssueTemporary issues the short-lived token that authorizes profile completion for phone.
func (p *TokenProvider) IssueTemporary(phone string) (token string, expiresAt time.Time, err error) {
	return p.issue(phone, phone, true, p.tempTTL)
}

// IssuePermanent issues the session token for a fully registered identity.
func (p *TokenProvider) IssuePermanent(userID, phone string) (token string, expiresAt time.Time, err error) {
	return p.issue(userID, phone, false, p.permanentTTL)
}

func (p *TokenProvider) issue(subject, phone string, temp bool, ttl time.Duration) (string, time.Time, error) {
	jti, err := generateJTI()
	if err != nil {
		return "", time.Time{}, err
	}
	now := p.now()
	expiresAt := now.Add(ttl)
	claims := IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   subject,
			Issuer:    p.issuer,
			Audience:  jwt.ClaimStrings{p.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		PhoneNumber: phone,
		Temp:        &temp,
	}
	token, err := p.sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (p *TokenProvider) sign(claims jwt.Claims) (string, error) {
	var method jwt.SigningMethod
	switch p.privateKey.Public().(type) {
	case *rsa.PublicKey:
		method = jwt.SigningMethodRS256
	case *ecdsa.PublicKey:
		method = jwt.SigningMethodES256
	default:
		return "", ErrInvalidToken
	}
	t := jwt.NewWithClaims(method, claims)
	return t.SignedString(p.privateKey)
}

// ValidateTemporary accepts only a token whose discriminator is present and true.
func (p *TokenProvider) ValidateTemporary(tokenString string) (*Temporary, error) {
	claims, err := p.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Temp == nil || !*claims.Temp {
		return nil, ErrWrongTokenType
	}
	if claims.Subject == "" || claims.Subject != claims.PhoneNumber {
		return nil, ErrInvalidToken
	}
	return &Temporary{PhoneNumber: claims.PhoneNumber, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// ValidatePermanent accepts only a token whose discriminator is present and false.
func (p *TokenProvider) ValidatePermanent(tokenString string) (*Permanent, error) {
	claims, err := p.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Temp == nil || *claims.Temp {
		return nil, ErrWrongTokenType
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &Permanent{UserID: claims.Subject, PhoneNumber: claims.PhoneNumber, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// parse verifies signature, algorithm family, exp, iss and aud.
func (p *TokenProvider) parse(tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodRSA:
			if _, ok := p.publicKey.(*rsa.PublicKey); ok {
				return p.publicKey, nil
			}
		case *jwt.SigningMethodECDSA:
			if _, ok := p.publicKey.(*ecdsa.PublicKey); ok {
				return p.publicKey, nil
			}
		}
		return nil, ErrInvalidToken
	},
		jwt.WithIssuer(p.issuer),
		jwt.WithAudience(p.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func generateJTI() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
