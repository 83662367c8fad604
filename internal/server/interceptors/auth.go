package interceptors

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/Rollin-123/belafrica-node-sub000/internal/security"
)

const bearerPrefix = "bearer "

// PermanentValidator validates a Permanent token. *security.TokenProvider implements it.
type PermanentValidator interface {
	ValidatePermanent(token string) (*security.Permanent, error)
}

// AuthUnary returns a unary server interceptor that requires a Bearer Permanent token on every
// method not in publicMethods and puts the user id and phone in context. A Temporary token is
// rejected here even though it carries a valid signature.
func AuthUnary(tokens PermanentValidator, publicMethods map[string]bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}
		token := extractBearer(ctx)
		if token == "" {
			return nil, status.Error(codes.Unauthenticated, "missing or invalid authorization")
		}
		claims, err := tokens.ValidatePermanent(token)
		if err != nil {
			if errors.Is(err, security.ErrWrongTokenType) {
				log.Info().Str("event", "auth_failed").Str("method", info.FullMethod).Msg("temporary token presented to protected method")
			}
			return nil, status.Error(codes.Unauthenticated, "missing or invalid authorization")
		}
		return handler(WithIdentity(ctx, claims.UserID, claims.PhoneNumber), req)
	}
}

// extractBearer returns the Bearer token from ctx metadata, or "" if missing or malformed.
func extractBearer(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return ""
	}
	v := strings.TrimSpace(vals[0])
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
