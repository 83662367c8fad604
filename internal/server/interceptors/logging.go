package interceptors

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/apperr"
)

// LoggingUnary logs one line per RPC and converts domain errors to gRPC status errors.
// Internal and unavailable outcomes log at error level with the cause; client mistakes at info.
func LoggingUnary(skipMethods map[string]bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		stErr := apperr.ToStatus(err)
		if skipMethods[info.FullMethod] && err == nil {
			return resp, nil
		}
		var ev *zerolog.Event
		code := status.Code(stErr)
		switch code {
		case codes.OK:
			ev = log.Debug()
		case codes.Internal, codes.Unavailable, codes.Unknown, codes.DeadlineExceeded:
			ev = log.Error().Err(err)
		default:
			ev = log.Info().Str("error", stErr.Error())
		}
		ev.Str("method", info.FullMethod).
			Str("code", code.String()).
			Str("kind", apperr.KindOf(err).String()).
			Dur("duration", time.Since(start)).
			Msg("grpc request")
		return resp, stErr
	}
}
