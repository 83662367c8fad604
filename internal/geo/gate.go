package geo

import (
	"context"
	"strings"

	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/apperr"
	"github.com/Rollin-123/belafrica-node-sub000/internal/policy/engine"
)

// Decision reasons produced by the gate itself; policy reasons come from engine.
const (
	ReasonBypass             = "bypass"
	ReasonUnsupportedCountry = "unsupported_country"
	ReasonLookupFailed       = "lookup_failed"
	ReasonPolicyError        = "policy_error"
)

// Decision is the per-request outcome. It is never persisted.
type Decision struct {
	DetectedCountryCode     string
	ClaimedPhoneCountryCode string
	Allowed                 bool
	Reason                  string
}

// Gate checks that a caller's IP country is consistent with their phone dial code.
type Gate struct {
	resolver Resolver
	table    *Table
	policy   engine.GeoEvaluator
	bypass   bool
}

// NewGate returns a gate. With bypass set every check passes without touching the resolver.
func NewGate(resolver Resolver, table *Table, policy engine.GeoEvaluator, bypass bool) *Gate {
	return &Gate{resolver: resolver, table: table, policy: policy, bypass: bypass}
}

// Check returns the decision and, when not allowed, a classified error:
// KindValidation for an unknown dial code, KindDependency when the IP cannot be resolved or the
// policy cannot be evaluated, KindFraudSuspicion on a country mismatch.
func (g *Gate) Check(ctx context.Context, claimedDialCode, sourceIP string) (Decision, error) {
	claimedDialCode = strings.TrimSpace(claimedDialCode)
	d := Decision{ClaimedPhoneCountryCode: claimedDialCode}
	if g.bypass {
		d.Allowed = true
		d.Reason = ReasonBypass
		return d, nil
	}

	allowed, ok := g.table.Lookup(claimedDialCode)
	if !ok {
		d.Reason = ReasonUnsupportedCountry
		return d, apperr.Validation("unsupported country")
	}

	detected, err := g.resolver.Resolve(ctx, sourceIP)
	if err != nil {
		d.Reason = ReasonLookupFailed
		return d, apperr.Dependency("could not verify your location, try again later", err)
	}
	d.DetectedCountryCode = strings.ToUpper(strings.TrimSpace(detected))

	res, err := g.policy.EvaluateGeo(ctx, engine.GeoInput{
		DetectedCountry:  d.DetectedCountryCode,
		ClaimedDialCode:  claimedDialCode,
		AllowedCountries: allowed,
	})
	if err != nil {
		d.Reason = ReasonPolicyError
		return d, apperr.Dependency("could not verify your location, try again later", err)
	}
	d.Allowed = res.Allowed
	d.Reason = res.Reason
	if !d.Allowed {
		return d, apperr.FraudSuspicion("phone number country does not match your location")
	}
	return d, nil
}
