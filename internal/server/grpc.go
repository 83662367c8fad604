// Package server assembles the gRPC server: interceptor chain, stats handler and service registration.
package server

import (
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	authv1 "github.com/Rollin-123/belafrica-node-sub000/api/auth/v1"
	devv1 "github.com/Rollin-123/belafrica-node-sub000/api/dev/v1"
	messagev1 "github.com/Rollin-123/belafrica-node-sub000/api/message/v1"
	"github.com/Rollin-123/belafrica-node-sub000/internal/audit"
	healthhandler "github.com/Rollin-123/belafrica-node-sub000/internal/health/handler"
	identityhandler "github.com/Rollin-123/belafrica-node-sub000/internal/identity/handler"
	identityservice "github.com/Rollin-123/belafrica-node-sub000/internal/identity/service"
	messagehandler "github.com/Rollin-123/belafrica-node-sub000/internal/message/handler"
	messageservice "github.com/Rollin-123/belafrica-node-sub000/internal/message/service"
	"github.com/Rollin-123/belafrica-node-sub000/internal/server/interceptors"
	"github.com/Rollin-123/belafrica-node-sub000/internal/telemetry"
)

// DefaultRequestTimeout applies when Deps.RequestTimeout is zero.
const DefaultRequestTimeout = 15 * time.Second

// Deps holds service dependencies for gRPC handlers and interceptors.
type Deps struct {
	// Auth backs AuthService. If nil, AuthService is not registered.
	Auth *identityservice.AuthService
	// Messages backs MessageService. If nil, MessageService is not registered.
	Messages *messageservice.MessageService
	// Tokens validates Permanent tokens for protected methods. Required when Messages is set.
	Tokens interceptors.PermanentValidator
	// AuditLogger records one row per authenticated RPC. If nil, no RPCs are audited.
	AuditLogger audit.AuditLogger
	// Events receives grpc_request events. If nil, none are emitted.
	Events telemetry.EventEmitter
	// HealthPinger is used for readiness (e.g. *sql.DB). If nil, the DB ping is skipped.
	HealthPinger healthhandler.Pinger
	// HealthPolicyChecker is used for readiness (e.g. OPA evaluator). If nil, the policy check is skipped.
	HealthPolicyChecker healthhandler.PolicyChecker
	// DevOTPHandler is the dev-only DevService (GetOTP). If nil, DevService is not registered.
	DevOTPHandler devv1.DevServiceServer
	// TrustedProxies are the proxies whose x-forwarded-for entries decide the RequestOTP source IP.
	// If nil, the transport peer is used.
	TrustedProxies *interceptors.TrustedProxies
	// RequestTimeout is the deadline for RPCs that arrive without one.
	RequestTimeout time.Duration
}

// healthMethods are excluded from request logging, audit and telemetry.
var healthMethods = map[string]bool{
	healthpb.Health_Check_FullMethodName: true,
	healthpb.Health_Watch_FullMethodName: true,
}

// PublicMethods returns the methods that do not require a Permanent token: the registration
// flow itself (a Temporary token is checked by CompleteProfile), session re-entry, dev OTP lookup and health.
func PublicMethods() map[string]bool {
	m := map[string]bool{
		authv1.AuthService_RequestOTP_FullMethodName:      true,
		authv1.AuthService_VerifyOTP_FullMethodName:       true,
		authv1.AuthService_CompleteProfile_FullMethodName: true,
		authv1.AuthService_ValidateSession_FullMethodName: true,
		devv1.DevService_GetOTP_FullMethodName:            true,
	}
	for k := range healthMethods {
		m[k] = true
	}
	return m
}

// NewServer returns a *grpc.Server with the otelgrpc stats handler and the interceptor chain
// timeout, logging, auth, audit, telemetry. Services are registered with RegisterServices.
func NewServer(deps Deps, opts ...grpc.ServerOption) *grpc.Server {
	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	chain := grpc.ChainUnaryInterceptor(
		interceptors.TimeoutUnary(timeout),
		interceptors.LoggingUnary(healthMethods),
		interceptors.AuthUnary(deps.Tokens, PublicMethods()),
		interceptors.AuditUnary(deps.AuditLogger, healthMethods),
		interceptors.TelemetryUnary(deps.Events, healthMethods),
	)
	all := append([]grpc.ServerOption{grpc.StatsHandler(otelgrpc.NewServerHandler()), chain}, opts...)
	s := grpc.NewServer(all...)
	RegisterServices(s, deps)
	return s
}

// RegisterServices registers every configured service with s.
//
//   - AuthService    → internal/identity/handler
//   - MessageService → internal/message/handler
//   - DevService     → internal/devotp/handler (dev delivery mode only)
//   - Health         → internal/health/handler
func RegisterServices(s grpc.ServiceRegistrar, deps Deps) {
	if deps.Auth != nil {
		authv1.RegisterAuthServiceServer(s, identityhandler.NewAuthServer(deps.Auth, identityhandler.WithTrustedProxies(deps.TrustedProxies)))
	}
	if deps.Messages != nil {
		messagev1.RegisterMessageServiceServer(s, messagehandler.NewServer(deps.Messages))
	}
	if deps.DevOTPHandler != nil {
		devv1.RegisterDevServiceServer(s, deps.DevOTPHandler)
	}
	healthpb.RegisterHealthServer(s, healthhandler.NewServer(deps.HealthPinger, deps.HealthPolicyChecker))
}
