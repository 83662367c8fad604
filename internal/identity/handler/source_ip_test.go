package handler

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"

	authv1 "github.com/Rollin-123/belafrica-node-sub000/api/auth/v1"
	"github.com/Rollin-123/belafrica-node-sub000/internal/devotp"
	"github.com/Rollin-123/belafrica-node-sub000/internal/geo"
	"github.com/Rollin-123/belafrica-node-sub000/internal/identity/service"
	"github.com/Rollin-123/belafrica-node-sub000/internal/otp"
	otprepo "github.com/Rollin-123/belafrica-node-sub000/internal/otp/repository"
	"github.com/Rollin-123/belafrica-node-sub000/internal/policy/engine"
	"github.com/Rollin-123/belafrica-node-sub000/internal/security"
	"github.com/Rollin-123/belafrica-node-sub000/internal/server/interceptors"
	userrepo "github.com/Rollin-123/belafrica-node-sub000/internal/user/repository"
)

const (
	byIP    = "198.51.100.10"
	frIP    = "198.51.100.20"
	proxyIP = "10.0.0.7"
	byPhone = "+375291234567"
)

type staticResolver map[string]string

func (s staticResolver) Resolve(ctx context.Context, ip string) (string, error) {
	cc, ok := s[ip]
	if !ok {
		return "", geo.ErrLookup
	}
	return cc, nil
}

func newGeoServer(t *testing.T, trusted ...string) *AuthServer {
	t.Helper()
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	policy, err := engine.NewOPAEvaluator(context.Background(), "")
	if err != nil {
		t.Fatalf("NewOPAEvaluator: %v", err)
	}
	proxies, err := interceptors.ParseTrustedProxies(trusted)
	if err != nil {
		t.Fatalf("ParseTrustedProxies: %v", err)
	}
	svc := service.NewAuthService(service.Deps{
		OTP:    otp.NewIssuer(otprepo.NewMemoryRepository(), devotp.NewMemoryStore(otprepo.DefaultTTL)),
		Gate:   geo.NewGate(staticResolver{byIP: "BY", frIP: "FR", proxyIP: "BY"}, geo.DefaultTable(), policy, false),
		Users:  userrepo.NewMemoryRepository(),
		Tokens: tokens,
	})
	return NewAuthServer(svc, WithTrustedProxies(proxies))
}

func fromPeer(ip string, forwardedFor ...string) context.Context {
	ctx := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.ParseIP(ip), Port: 40000}})
	for _, f := range forwardedFor {
		ctx = metadata.NewIncomingContext(ctx, metadata.Pairs("x-forwarded-for", f))
	}
	return ctx
}

func TestAuthServer_RequestOTP_SourceIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		ctx     context.Context
		want    codes.Code
	}{
		{"peer matches claimed country", nil, fromPeer(byIP), codes.OK},
		{"peer in another country", nil, fromPeer(frIP), codes.PermissionDenied},
		{"forged header from untrusted peer", nil, fromPeer(frIP, byIP), codes.PermissionDenied},
		{"forged header with trusted list but untrusted peer", []string{"10.0.0.0/8"}, fromPeer(frIP, byIP), codes.PermissionDenied},
		{"trusted proxy forwards real client", []string{"10.0.0.0/8"}, fromPeer(proxyIP, byIP), codes.OK},
		{"client-written leftmost entry ignored", []string{"10.0.0.0/8"}, fromPeer(proxyIP, byIP+", "+frIP), codes.PermissionDenied},
		{"chained trusted proxies skipped", []string{"10.0.0.0/8"}, fromPeer(proxyIP, frIP+", "+byIP+", 10.0.0.3"), codes.OK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newGeoServer(t, tc.trusted...)
			_, err := srv.RequestOTP(tc.ctx, &authv1.RequestOTPRequest{PhoneNumber: byPhone, CountryCode: "+375"})
			if code(err) != tc.want {
				t.Errorf("code = %v (%v), want %v", code(err), err, tc.want)
			}
		})
	}
}
