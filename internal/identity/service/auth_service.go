package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	auditdomain "github.com/Rollin-123/belafrica-node-sub000/internal/audit/domain"
	"github.com/Rollin-123/belafrica-node-sub000/internal/geo"
	"github.com/Rollin-123/belafrica-node-sub000/internal/identity/domain"
	"github.com/Rollin-123/belafrica-node-sub000/internal/otp"
	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/apperr"
	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/logging"
	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/ratelimit"
	"github.com/Rollin-123/belafrica-node-sub000/internal/security"
	"github.com/Rollin-123/belafrica-node-sub000/internal/telemetry"
	telemetrydomain "github.com/Rollin-123/belafrica-node-sub000/internal/telemetry/domain"
	userdomain "github.com/Rollin-123/belafrica-node-sub000/internal/user/domain"
	userrepo "github.com/Rollin-123/belafrica-node-sub000/internal/user/repository"
)

const auditResource = "auth"

// OTPIssuer issues codes and consumes them exactly once. *otp.Issuer implements it.
type OTPIssuer interface {
	Issue(ctx context.Context, phone string) (*otp.Issued, error)
	Consume(ctx context.Context, phone, code string) error
}

// GeoGate checks caller location against the claimed dial code. *geo.Gate implements it.
type GeoGate interface {
	Check(ctx context.Context, claimedDialCode, sourceIP string) (geo.Decision, error)
}

// UserRepo is the minimal identity-record repository needed by the auth service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	GetByPhone(ctx context.Context, phone string) (*userdomain.User, error)
	CompleteProfile(ctx context.Context, newID, phone string, p userdomain.Profile, now time.Time) (*userdomain.User, error)
}

// AuditLogger records security-relevant events. Best-effort.
type AuditLogger interface {
	LogEvent(ctx context.Context, userID, subject, action, resource, metadata string)
}

// Deps holds the collaborators of AuthService. OTP, Gate, Users and Tokens are required.
type Deps struct {
	OTP          OTPIssuer
	Gate         GeoGate
	Users        UserRepo
	Tokens       *security.TokenProvider
	PhoneLimiter ratelimit.Limiter
	IPLimiter    ratelimit.Limiter
	Audit        AuditLogger
	Events       telemetry.EventEmitter
	Metrics      *telemetry.Metrics
	Now          func() time.Time
}

// RequestResult is the outcome of a successful RequestOTP.
type RequestResult struct {
	ExpiresAt time.Time
}

// VerifyResult is the outcome of VerifyOTP. TempToken is set at StageOTPVerified; PermanentToken
// and User at StageProfileComplete.
type VerifyResult struct {
	Stage          domain.Stage
	TempToken      string
	PermanentToken string
	ExpiresAt      time.Time
	User           *userdomain.User
}

// SessionResult is a completed identity with its Permanent token.
type SessionResult struct {
	PermanentToken string
	ExpiresAt      time.Time
	User           *userdomain.User
}

// AuthService drives the escalation Unverified -> OtpPending -> OtpVerified -> ProfileComplete.
type AuthService struct {
	otp          OTPIssuer
	gate         GeoGate
	users        UserRepo
	tokens       *security.TokenProvider
	phoneLimiter ratelimit.Limiter
	ipLimiter    ratelimit.Limiter
	audit        AuditLogger
	events       telemetry.EventEmitter
	metrics      *telemetry.Metrics
	now          func() time.Time
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(d Deps) *AuthService {
	now := d.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &AuthService{
		otp:          d.OTP,
		gate:         d.Gate,
		users:        d.Users,
		tokens:       d.Tokens,
		phoneLimiter: d.PhoneLimiter,
		ipLimiter:    d.IPLimiter,
		audit:        d.Audit,
		events:       d.Events,
		metrics:      d.Metrics,
		now:          now,
	}
}

// RequestOTP rate-limits the caller, runs the geo gate and issues a code for phone.
// A geo mismatch is returned as KindFraudSuspicion and never folded into another kind.
func (s *AuthService) RequestOTP(ctx context.Context, phone, dialCode, sourceIP string) (*RequestResult, error) {
	phone = strings.TrimSpace(phone)
	dialCode = strings.TrimSpace(dialCode)
	if !strings.HasPrefix(phone, dialCode) {
		s.metrics.OTPRequest(ctx, "rejected")
		return nil, apperr.Validation("phone number does not match the country code")
	}
	masked := logging.MaskPhone(phone)

	if err := s.checkLimit(ctx, s.phoneLimiter, "phone:"+phone); err != nil {
		log.Info().Str("event", "otp_rate_limited").Str("phone", masked).Msg("per-phone limit reached")
		return nil, err
	}
	if sourceIP != "" && sourceIP != "unknown" {
		if err := s.checkLimit(ctx, s.ipLimiter, "ip:"+sourceIP); err != nil {
			log.Info().Str("event", "otp_rate_limited").Str("ip", sourceIP).Msg("per-ip limit reached")
			return nil, err
		}
	}

	decision, err := s.gate.Check(ctx, dialCode, sourceIP)
	s.metrics.GeoDecision(ctx, decision.Allowed, decision.Reason)
	if err != nil {
		if apperr.Is(err, apperr.KindFraudSuspicion) {
			s.reportFraud(ctx, masked, sourceIP, decision)
			s.metrics.OTPRequest(ctx, "fraud")
			return nil, err
		}
		if apperr.Is(err, apperr.KindValidation) {
			s.metrics.OTPRequest(ctx, "rejected")
		} else {
			s.metrics.OTPRequest(ctx, "failed")
		}
		log.Warn().Err(err).Str("phone", masked).Str("reason", decision.Reason).Msg("geo gate did not pass")
		return nil, err
	}

	issued, err := s.otp.Issue(ctx, phone)
	if err != nil {
		s.metrics.OTPRequest(ctx, "failed")
		return nil, err
	}
	s.metrics.OTPRequest(ctx, "issued")
	log.Info().Str("event", "otp_requested").Str("phone", masked).Str("geo_reason", decision.Reason).Msg("otp issued")
	s.record(ctx, "", masked, auditdomain.ActionOTPRequested, telemetrydomain.EventOTPRequested,
		map[string]string{"geo_reason": decision.Reason, "detected_country": decision.DetectedCountryCode})
	return &RequestResult{ExpiresAt: issued.ExpiresAt}, nil
}

// VerifyOTP consumes the code. A phone that already owns a complete profile gets a Permanent
// token straight away; any other phone gets a Temporary token for CompleteProfile.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, code string) (*VerifyResult, error) {
	phone = strings.TrimSpace(phone)
	masked := logging.MaskPhone(phone)
	if err := s.otp.Consume(ctx, phone, code); err != nil {
		if apperr.Is(err, apperr.KindAuth) {
			s.authFailed(ctx, "", masked, "otp_rejected")
		}
		return nil, err
	}

	u, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		return nil, apperr.Dependency("could not load your profile, try again later", err)
	}
	if u != nil && u.ProfileComplete {
		token, exp, err := s.tokens.IssuePermanent(u.ID, u.PhoneNumber)
		if err != nil {
			return nil, err
		}
		log.Info().Str("event", "otp_verified").Str("phone", masked).Str("user_id", u.ID).Msg("registered identity signed in")
		s.record(ctx, u.ID, masked, auditdomain.ActionOTPVerified, telemetrydomain.EventOTPVerified,
			map[string]string{"stage": string(domain.StageProfileComplete)})
		return &VerifyResult{Stage: domain.StageProfileComplete, PermanentToken: token, ExpiresAt: exp, User: u}, nil
	}

	token, exp, err := s.tokens.IssueTemporary(phone)
	if err != nil {
		return nil, err
	}
	log.Info().Str("event", "otp_verified").Str("phone", masked).Msg("phone verified, profile pending")
	s.record(ctx, "", masked, auditdomain.ActionOTPVerified, telemetrydomain.EventOTPVerified,
		map[string]string{"stage": string(domain.StageOTPVerified)})
	return &VerifyResult{Stage: domain.StageOTPVerified, TempToken: token, ExpiresAt: exp}, nil
}

// CompleteProfile accepts only a Temporary token, stores the profile and marks the identity
// complete in one write, then issues the Permanent token. A second completion for the same
// phone is KindConflict, so a Temporary token authorizes at most one completion.
func (s *AuthService) CompleteProfile(ctx context.Context, tempToken string, p userdomain.Profile) (*SessionResult, error) {
	claims, err := s.tokens.ValidateTemporary(tempToken)
	if err != nil {
		s.authFailed(ctx, "", "", "temp_token_rejected")
		if errors.Is(err, security.ErrWrongTokenType) {
			return nil, apperr.Auth("a temporary token is required", err)
		}
		return nil, apperr.Auth("token is invalid or expired, verify your phone again", err)
	}
	masked := logging.MaskPhone(claims.PhoneNumber)
	if err := p.Validate(); err != nil {
		return nil, apperr.Validation(err.Error())
	}

	u, err := s.users.CompleteProfile(ctx, uuid.NewString(), claims.PhoneNumber, p, s.now())
	if err != nil {
		if errors.Is(err, userrepo.ErrAlreadyComplete) {
			return nil, apperr.Wrap(apperr.KindConflict, "profile already completed, sign in again", err)
		}
		return nil, apperr.Dependency("could not save your profile, try again later", err)
	}
	token, exp, err := s.tokens.IssuePermanent(u.ID, u.PhoneNumber)
	if err != nil {
		return nil, err
	}
	log.Info().Str("event", "profile_completed").Str("phone", masked).Str("user_id", u.ID).Msg("profile completed")
	s.record(ctx, u.ID, masked, auditdomain.ActionProfileCompleted, telemetrydomain.EventProfileCompleted,
		map[string]string{"community": u.Community})
	return &SessionResult{PermanentToken: token, ExpiresAt: exp, User: u}, nil
}

// ValidateSession accepts only a Permanent token whose identity is still complete.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*SessionResult, error) {
	claims, err := s.tokens.ValidatePermanent(token)
	if err != nil {
		return nil, apperr.Auth("session is invalid or expired", err)
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperr.Dependency("could not load your profile, try again later", err)
	}
	if u == nil || !u.ProfileComplete {
		return nil, apperr.Auth("session is invalid or expired", nil)
	}
	return &SessionResult{PermanentToken: token, ExpiresAt: claims.ExpiresAt, User: u}, nil
}

// checkLimit fails open when the limiter backend errors.
func (s *AuthService) checkLimit(ctx context.Context, l ratelimit.Limiter, key string) error {
	if l == nil {
		return nil
	}
	res, err := l.Allow(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
		return nil
	}
	if !res.Allowed {
		s.metrics.OTPRequest(ctx, "rate_limited")
		return apperr.New(apperr.KindRateLimited, "too many code requests, try again later")
	}
	return nil
}

func (s *AuthService) reportFraud(ctx context.Context, masked, sourceIP string, d geo.Decision) {
	log.Warn().
		Str("event", "fraud_suspected").
		Str("phone", masked).
		Str("ip", sourceIP).
		Str("claimed_dial_code", d.ClaimedPhoneCountryCode).
		Str("detected_country", d.DetectedCountryCode).
		Str("reason", d.Reason).
		Msg("geo mismatch on otp request")
	s.record(ctx, "", masked, auditdomain.ActionFraudSuspected, telemetrydomain.EventFraudSuspected,
		map[string]string{"claimed": d.ClaimedPhoneCountryCode, "detected": d.DetectedCountryCode, "reason": d.Reason})
}

func (s *AuthService) authFailed(ctx context.Context, userID, masked, reason string) {
	log.Info().Str("event", "auth_failed").Str("phone", masked).Str("reason", reason).Msg("authentication failed")
	if s.audit != nil {
		s.audit.LogEvent(ctx, userID, masked, auditdomain.ActionAuthFailed, auditResource, reason)
	}
}

func (s *AuthService) record(ctx context.Context, userID, masked, action, eventType string, meta map[string]string) {
	metaJSON, _ := json.Marshal(meta)
	if s.audit != nil {
		s.audit.LogEvent(ctx, userID, masked, action, auditResource, string(metaJSON))
	}
	telemetry.EmitAsync(s.events, ctx, &telemetrydomain.Event{
		Type:      eventType,
		Source:    "auth_service",
		UserID:    userID,
		Subject:   masked,
		Metadata:  metaJSON,
		CreatedAt: s.now(),
	})
}
