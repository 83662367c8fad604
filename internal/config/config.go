// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// MinPermanentTTL and MaxPermanentTTL bound the Permanent token lifetime.
	MinPermanentTTL = 7 * 24 * time.Hour
	MaxPermanentTTL = 30 * 24 * time.Hour

	envProduction = "production"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// GRPCAddr is the address the gRPC server listens on (e.g. :8080).
	GRPCAddr string `mapstructure:"GRPC_ADDR"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`

	// JWTPrivateKey is the PEM-encoded private key (RSA or ECDSA) or path to file.
	JWTPrivateKey string `mapstructure:"JWT_PRIVATE_KEY"`
	// JWTPublicKey is the PEM-encoded public key or path to file; must pair with JWTPrivateKey.
	JWTPublicKey string `mapstructure:"JWT_PUBLIC_KEY"`
	JWTIssuer    string `mapstructure:"JWT_ISSUER"`
	JWTAudience  string `mapstructure:"JWT_AUDIENCE"`
	// JWTTempTTL is the Temporary token lifetime.
	JWTTempTTL time.Duration `mapstructure:"JWT_TEMP_TTL"`
	// JWTPermanentTTL is the Permanent token lifetime, within [MinPermanentTTL, MaxPermanentTTL].
	JWTPermanentTTL time.Duration `mapstructure:"JWT_PERMANENT_TTL"`

	// SMSLocalAPIKey is the API key for SMS Local. Required unless OTPReturnToClient is set.
	SMSLocalAPIKey  string `mapstructure:"SMS_LOCAL_API_KEY"`
	SMSLocalSender  string `mapstructure:"SMS_LOCAL_SENDER"`
	SMSLocalBaseURL string `mapstructure:"SMS_LOCAL_BASE_URL"`
	// OTPReturnToClient keeps codes in memory for DevService instead of sending SMS. Rejected in production.
	OTPReturnToClient bool `mapstructure:"OTP_RETURN_TO_CLIENT"`
	// OTPRateLimit is the number of OTP requests allowed per phone, and per IP, in OTPRateWindow.
	OTPRateLimit  int           `mapstructure:"OTP_RATE_LIMIT"`
	OTPRateWindow time.Duration `mapstructure:"OTP_RATE_WINDOW"`
	// OTPSweepInterval and OTPRetention drive the worker's cleanup of expired codes.
	OTPSweepInterval time.Duration `mapstructure:"OTP_SWEEP_INTERVAL"`
	OTPRetention     time.Duration `mapstructure:"OTP_RETENTION"`

	// GeoBypass disables the geo-consistency gate. Rejected in production.
	GeoBypass        bool          `mapstructure:"GEO_BYPASS"`
	GeoLookupURL     string        `mapstructure:"GEO_LOOKUP_URL"`
	GeoLookupTimeout time.Duration `mapstructure:"GEO_LOOKUP_TIMEOUT"`
	GeoCacheTTL      time.Duration `mapstructure:"GEO_CACHE_TTL"`
	// PhoneCountryTable is an optional YAML file replacing the built-in dial code table.
	PhoneCountryTable string `mapstructure:"PHONE_COUNTRY_TABLE"`

	// TrustedProxies is a comma-separated list of proxy IPs or CIDRs whose x-forwarded-for entries
	// are believed when resolving the RequestOTP source IP. Empty means only the transport peer counts.
	TrustedProxies string `mapstructure:"TRUSTED_PROXIES"`

	// RedisAddr enables the shared rate limiter; empty means in-process limiting.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// RequestTimeout is applied to RPCs that arrive without a deadline.
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	// OTLPEndpoint is the OpenTelemetry collector (host:port or URL); empty disables export.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key, which also makes AutomaticEnv values visible to Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("GRPC_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("APP_ENV", "")
	v.SetDefault("JWT_PRIVATE_KEY", "")
	v.SetDefault("JWT_PUBLIC_KEY", "")
	v.SetDefault("JWT_ISSUER", "belafrica-auth")
	v.SetDefault("JWT_AUDIENCE", "belafrica-api")
	v.SetDefault("JWT_TEMP_TTL", "15m")
	v.SetDefault("JWT_PERMANENT_TTL", "168h")
	v.SetDefault("SMS_LOCAL_API_KEY", "")
	v.SetDefault("SMS_LOCAL_SENDER", "")
	v.SetDefault("SMS_LOCAL_BASE_URL", "https://app.smslocal.in/api/smsapi")
	v.SetDefault("OTP_RETURN_TO_CLIENT", false)
	v.SetDefault("OTP_RATE_LIMIT", 5)
	v.SetDefault("OTP_RATE_WINDOW", "10m")
	v.SetDefault("OTP_SWEEP_INTERVAL", "5m")
	v.SetDefault("OTP_RETENTION", "24h")
	v.SetDefault("GEO_BYPASS", false)
	v.SetDefault("GEO_LOOKUP_URL", "http://ip-api.com/json/")
	v.SetDefault("GEO_LOOKUP_TIMEOUT", "3s")
	v.SetDefault("GEO_CACHE_TTL", "10m")
	v.SetDefault("PHONE_COUNTRY_TABLE", "")
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REQUEST_TIMEOUT", "15s")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Validate checks ranges and the options that must never be enabled in production.
func (c *Config) Validate() error {
	if c.GRPCAddr == "" {
		return errors.New("config: GRPC_ADDR must be set")
	}
	if c.IsProduction() {
		if c.OTPReturnToClient {
			return errors.New("config: OTP_RETURN_TO_CLIENT must not be true when APP_ENV=production")
		}
		if c.GeoBypass {
			return errors.New("config: GEO_BYPASS must not be true when APP_ENV=production")
		}
	}
	if c.JWTTempTTL <= 0 {
		return errors.New("config: JWT_TEMP_TTL must be positive")
	}
	if c.JWTPermanentTTL < MinPermanentTTL || c.JWTPermanentTTL > MaxPermanentTTL {
		return fmt.Errorf("config: JWT_PERMANENT_TTL must be between %s and %s", MinPermanentTTL, MaxPermanentTTL)
	}
	if c.OTPRateLimit <= 0 || c.OTPRateWindow <= 0 {
		return errors.New("config: OTP_RATE_LIMIT and OTP_RATE_WINDOW must be positive")
	}
	if c.OTPSweepInterval <= 0 || c.OTPRetention < 0 {
		return errors.New("config: OTP_SWEEP_INTERVAL must be positive and OTP_RETENTION not negative")
	}
	if c.GeoLookupTimeout <= 0 {
		return errors.New("config: GEO_LOOKUP_TIMEOUT must be positive")
	}
	if c.GeoCacheTTL <= 0 {
		return errors.New("config: GEO_CACHE_TTL must be positive")
	}
	return nil
}

// IsProduction reports whether APP_ENV is production (case-insensitive).
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), envProduction)
}

// RedisEnabled reports whether a shared Redis rate limiter is configured.
func (c *Config) RedisEnabled() bool {
	return strings.TrimSpace(c.RedisAddr) != ""
}

// TrustedProxyList returns the entries of TrustedProxies, trimmed, without blanks.
func (c *Config) TrustedProxyList() []string {
	if c == nil || c.TrustedProxies == "" {
		return nil
	}
	parts := strings.Split(c.TrustedProxies, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
