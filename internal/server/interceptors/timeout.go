package interceptors

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// TimeoutUnary applies d as the deadline of every RPC whose context has none, so store,
// delivery and geolocation calls made on its behalf are bounded.
func TimeoutUnary(d time.Duration) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if d <= 0 {
			return handler(ctx, req)
		}
		if _, ok := ctx.Deadline(); ok {
			return handler(ctx, req)
		}
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return handler(ctx, req)
	}
}
