// Package handler exposes the identity escalation as belafrica.auth.v1.AuthService.
package handler

import (
	"context"

	authv1 "github.com/Rollin-123/belafrica-node-sub000/api/auth/v1"
	"github.com/Rollin-123/belafrica-node-sub000/internal/identity/domain"
	"github.com/Rollin-123/belafrica-node-sub000/internal/identity/service"
	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/validation"
	"github.com/Rollin-123/belafrica-node-sub000/internal/server/interceptors"
	userdomain "github.com/Rollin-123/belafrica-node-sub000/internal/user/domain"
)

// AuthServer implements AuthService. Requests are validated here; the service sees only
// well-formed input.
type AuthServer struct {
	authv1.UnimplementedAuthServiceServer
	auth     *service.AuthService
	validate *validation.Validator
	proxies  *interceptors.TrustedProxies
}

// Option configures an AuthServer.
type Option func(*AuthServer)

// WithTrustedProxies sets the proxies whose x-forwarded-for entries are believed when
// resolving the caller's source IP. Without it only the transport peer is used.
func WithTrustedProxies(p *interceptors.TrustedProxies) Option {
	return func(s *AuthServer) { s.proxies = p }
}

// NewAuthServer returns a new Auth gRPC server backed by auth.
func NewAuthServer(auth *service.AuthService, opts ...Option) *AuthServer {
	s := &AuthServer{auth: auth, validate: validation.New()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// RequestOTP runs the geo gate for the caller's IP and sends a code to the phone.
func (s *AuthServer) RequestOTP(ctx context.Context, req *authv1.RequestOTPRequest) (*authv1.RequestOTPResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	res, err := s.auth.RequestOTP(ctx, req.PhoneNumber, req.CountryCode, interceptors.SourceIP(ctx, s.proxies))
	if err != nil {
		return nil, err
	}
	return &authv1.RequestOTPResponse{OK: true, ExpiresAt: res.ExpiresAt}, nil
}

// VerifyOTP consumes the code and returns a Temporary token, or a Permanent token for a
// registered phone.
func (s *AuthServer) VerifyOTP(ctx context.Context, req *authv1.VerifyOTPRequest) (*authv1.VerifyOTPResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	res, err := s.auth.VerifyOTP(ctx, req.PhoneNumber, req.Code)
	if err != nil {
		return nil, err
	}
	out := &authv1.VerifyOTPResponse{OK: true, ExpiresAt: res.ExpiresAt}
	switch res.Stage {
	case domain.StageProfileComplete:
		out.Stage = authv1.StageProfileComplete
		out.PermanentToken = res.PermanentToken
		out.Identity = toIdentity(res.User)
	default:
		out.Stage = authv1.StageOTPVerified
		out.TempToken = res.TempToken
	}
	return out, nil
}

// CompleteProfile exchanges a Temporary token and profile fields for a Permanent token.
func (s *AuthServer) CompleteProfile(ctx context.Context, req *authv1.CompleteProfileRequest) (*authv1.CompleteProfileResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	res, err := s.auth.CompleteProfile(ctx, req.TempToken, userdomain.Profile{
		Pseudo:          req.Pseudo,
		CountryName:     req.CountryName,
		NationalityName: req.NationalityName,
		Community:       req.Community,
	})
	if err != nil {
		return nil, err
	}
	return &authv1.CompleteProfileResponse{
		OK:             true,
		PermanentToken: res.PermanentToken,
		ExpiresAt:      res.ExpiresAt,
		Identity:       toIdentity(res.User),
	}, nil
}

// ValidateSession reports whether a Permanent token still maps to a complete identity.
func (s *AuthServer) ValidateSession(ctx context.Context, req *authv1.ValidateSessionRequest) (*authv1.ValidateSessionResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	res, err := s.auth.ValidateSession(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	return &authv1.ValidateSessionResponse{Valid: true, ExpiresAt: res.ExpiresAt, Identity: toIdentity(res.User)}, nil
}

func toIdentity(u *userdomain.User) *authv1.Identity {
	if u == nil {
		return nil
	}
	return &authv1.Identity{
		ID:              u.ID,
		PhoneNumber:     u.PhoneNumber,
		Pseudo:          u.Pseudo,
		CountryName:     u.CountryName,
		NationalityName: u.NationalityName,
		Community:       u.Community,
		ProfileComplete: u.ProfileComplete,
		CreatedAt:       u.CreatedAt,
	}
}
