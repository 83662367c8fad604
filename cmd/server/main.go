package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	rdb "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Rollin-123/belafrica-node-sub000/internal/audit"
	auditrepo "github.com/Rollin-123/belafrica-node-sub000/internal/audit/repository"
	"github.com/Rollin-123/belafrica-node-sub000/internal/config"
	"github.com/Rollin-123/belafrica-node-sub000/internal/db"
	"github.com/Rollin-123/belafrica-node-sub000/internal/devotp"
	devotphandler "github.com/Rollin-123/belafrica-node-sub000/internal/devotp/handler"
	"github.com/Rollin-123/belafrica-node-sub000/internal/envelope"
	"github.com/Rollin-123/belafrica-node-sub000/internal/geo"
	identityservice "github.com/Rollin-123/belafrica-node-sub000/internal/identity/service"
	messagerepo "github.com/Rollin-123/belafrica-node-sub000/internal/message/repository"
	messageservice "github.com/Rollin-123/belafrica-node-sub000/internal/message/service"
	"github.com/Rollin-123/belafrica-node-sub000/internal/otp"
	otprepo "github.com/Rollin-123/belafrica-node-sub000/internal/otp/repository"
	"github.com/Rollin-123/belafrica-node-sub000/internal/otp/sms"
	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/logging"
	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/ratelimit"
	"github.com/Rollin-123/belafrica-node-sub000/internal/policy/engine"
	"github.com/Rollin-123/belafrica-node-sub000/internal/security"
	"github.com/Rollin-123/belafrica-node-sub000/internal/server"
	"github.com/Rollin-123/belafrica-node-sub000/internal/server/interceptors"
	"github.com/Rollin-123/belafrica-node-sub000/internal/telemetry"
	telemetryotel "github.com/Rollin-123/belafrica-node-sub000/internal/telemetry/otel"
	userrepo "github.com/Rollin-123/belafrica-node-sub000/internal/user/repository"
)

const serviceName = "belafrica-node"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	providers, err := telemetryotel.NewProviders(ctx, telemetryotel.Options{
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
		ServiceName: serviceName,
		Environment: cfg.Env,
		GeoBypass:   cfg.GeoBypass,
		DevOTP:      cfg.OTPReturnToClient,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("telemetry")
	}
	providers.SetGlobal()
	metrics, err := telemetry.NewMetrics(providers.MeterProvider.Meter(serviceName))
	if err != nil {
		log.Fatal().Err(err).Msg("metrics")
	}
	events := telemetryotel.NewEventEmitter(providers.LoggerProvider)

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db")
	}
	defer conn.Close()

	signer, pub, err := security.LoadKeyPair(cfg.JWTPrivateKey, cfg.JWTPublicKey)
	if err != nil {
		log.Fatal().Err(err).Msg("jwt keys")
	}
	tokens := security.NewTokenProvider(signer, pub, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTempTTL, cfg.JWTPermanentTTL)

	policy, err := engine.NewOPAEvaluator(ctx, "")
	if err != nil {
		log.Fatal().Err(err).Msg("policy engine")
	}

	table := geo.DefaultTable()
	if cfg.PhoneCountryTable != "" {
		if table, err = geo.LoadTable(cfg.PhoneCountryTable); err != nil {
			log.Fatal().Err(err).Str("path", cfg.PhoneCountryTable).Msg("phone country table")
		}
		log.Info().Str("path", cfg.PhoneCountryTable).Strs("dial_codes", table.DialCodes()).Msg("phone country table loaded")
	}
	resolver := geo.NewCachingResolver(geo.NewIPAPIClient(cfg.GeoLookupURL, cfg.GeoLookupTimeout), cfg.GeoCacheTTL)
	gate := geo.NewGate(resolver, table, policy, cfg.GeoBypass)
	if cfg.GeoBypass {
		log.Warn().Msg("geo gate bypassed: OTP requests are not checked against the caller's location")
	}

	proxies, err := interceptors.ParseTrustedProxies(cfg.TrustedProxyList())
	if err != nil {
		log.Fatal().Err(err).Msg("TRUSTED_PROXIES")
	}

	phoneLimiter, ipLimiter := newLimiters(ctx, cfg)

	var deliverer otp.Deliverer
	var devHandler *devotphandler.Server
	if cfg.OTPReturnToClient {
		store := devotp.NewMemoryStore(otprepo.DefaultTTL)
		deliverer = store
		devHandler = devotphandler.NewServer(store)
		log.Warn().Msg("dev OTP delivery enabled: codes are served by DevService, no SMS is sent")
	} else {
		if cfg.SMSLocalAPIKey == "" {
			log.Fatal().Msg("SMS_LOCAL_API_KEY is required unless OTP_RETURN_TO_CLIENT is set")
		}
		deliverer = sms.NewSMSLocalClient(cfg.SMSLocalAPIKey, cfg.SMSLocalBaseURL, cfg.SMSLocalSender)
	}

	auditLogger := audit.NewLogger(auditrepo.NewPostgresRepository(conn), interceptors.ClientIP)

	auth := identityservice.NewAuthService(identityservice.Deps{
		OTP:          otp.NewIssuer(otprepo.NewPostgresRepository(conn), deliverer),
		Gate:         gate,
		Users:        userrepo.NewPostgresRepository(conn),
		Tokens:       tokens,
		PhoneLimiter: phoneLimiter,
		IPLimiter:    ipLimiter,
		Audit:        auditLogger,
		Events:       events,
		Metrics:      metrics,
	})
	messages := messageservice.NewMessageService(envelope.NewCipher(), messagerepo.NewPostgresRepository(conn), metrics)

	deps := server.Deps{
		Auth:                auth,
		Messages:            messages,
		Tokens:              tokens,
		AuditLogger:         auditLogger,
		Events:              events,
		HealthPinger:        conn,
		HealthPolicyChecker: policy,
		TrustedProxies:      proxies,
		RequestTimeout:      cfg.RequestTimeout,
	}
	if devHandler != nil {
		deps.DevOTPHandler = devHandler
	}
	s := server.NewServer(deps)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
	go func() {
		log.Info().Str("addr", cfg.GRPCAddr).Msg("gRPC server listening")
		if err := s.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("serve")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down gRPC server")
	s.GracefulStop()
	time.Sleep(telemetry.ShutdownDrainDuration)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("telemetry shutdown")
	}
	log.Info().Msg("gRPC server stopped")
}

// newLimiters returns the per-phone and per-IP OTP limiters, shared through Redis when configured.
func newLimiters(ctx context.Context, cfg *config.Config) (phone, ip ratelimit.Limiter) {
	if !cfg.RedisEnabled() {
		return ratelimit.NewMemoryLimiter(cfg.OTPRateLimit, cfg.OTPRateWindow),
			ratelimit.NewMemoryLimiter(cfg.OTPRateLimit, cfg.OTPRateWindow)
	}
	client := rdb.NewClient(&rdb.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable at startup; OTP rate limiting fails open until it recovers")
	}
	return ratelimit.NewRedisLimiter(client, "otp:", cfg.OTPRateLimit, cfg.OTPRateWindow),
		ratelimit.NewRedisLimiter(client, "otp:", cfg.OTPRateLimit, cfg.OTPRateWindow)
}
