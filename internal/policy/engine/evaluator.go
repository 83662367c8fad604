// Package engine evaluates the geo-consistency decision with an embedded OPA Rego policy.
package engine

import "context"

// GeoInput is the policy input for one OTP request.
type GeoInput struct {
	// DetectedCountry is the ISO code resolved from the caller IP.
	DetectedCountry string
	// ClaimedDialCode is the phone country code the caller claims, e.g. "+375".
	ClaimedDialCode string
	// AllowedCountries are the ISO codes the dial code maps to.
	AllowedCountries []string
}

// GeoResult is the policy verdict. Reason is a short machine-readable label.
type GeoResult struct {
	Allowed bool
	Reason  string
}

// Policy reasons.
const (
	ReasonCountryMatch      = "country_match"
	ReasonCountryMismatch   = "country_mismatch"
	ReasonUnresolvedCountry = "unresolved_country"
)

// GeoEvaluator decides whether a detected country is consistent with a claimed dial code.
type GeoEvaluator interface {
	EvaluateGeo(ctx context.Context, in GeoInput) (GeoResult, error)
}
