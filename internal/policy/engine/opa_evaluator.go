package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"
)

const geoPolicyModule = "belafrica_geo.rego"

// DefaultGeoPolicy allows a request only when the detected country, compared trimmed and
// case-insensitively, is one of the countries the dial code maps to. Anything else denies.
const DefaultGeoPolicy = `package belafrica.geo

default allow := false

default reason := "country_mismatch"

detected := upper(trim_space(input.detected_country))

allow if {
	detected != ""
	some c in input.allowed_countries
	upper(trim_space(c)) == detected
}

reason := "country_match" if allow

reason := "unresolved_country" if detected == ""
`

const geoQuery = "allowed = data.belafrica.geo.allow; reason = data.belafrica.geo.reason"

// ErrNoResult is returned when the policy produces no decision. Callers must treat it as a deny.
var ErrNoResult = errors.New("policy: query returned no result")

// OPAEvaluator evaluates the geo policy with a query prepared once at construction.
type OPAEvaluator struct {
	query rego.PreparedEvalQuery
}

// NewOPAEvaluator compiles policy (DefaultGeoPolicy when empty) and prepares the decision query.
func NewOPAEvaluator(ctx context.Context, policy string) (*OPAEvaluator, error) {
	if policy == "" {
		policy = DefaultGeoPolicy
	}
	compiler, err := ast.CompileModules(map[string]string{geoPolicyModule: policy})
	if err != nil {
		return nil, fmt.Errorf("compile geo policy: %w", err)
	}
	pq, err := rego.New(
		rego.Query(geoQuery),
		rego.Compiler(compiler),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare geo policy: %w", err)
	}
	return &OPAEvaluator{query: pq}, nil
}

// EvaluateGeo runs the prepared query. Any evaluation problem is returned as an error and the
// result is a deny.
func (e *OPAEvaluator) EvaluateGeo(ctx context.Context, in GeoInput) (GeoResult, error) {
	allowed := make([]interface{}, 0, len(in.AllowedCountries))
	for _, c := range in.AllowedCountries {
		allowed = append(allowed, c)
	}
	input := map[string]interface{}{
		"detected_country":  in.DetectedCountry,
		"claimed_dial_code": in.ClaimedDialCode,
		"allowed_countries": allowed,
	}
	rs, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return GeoResult{Reason: ReasonCountryMismatch}, fmt.Errorf("eval geo policy: %w", err)
	}
	if len(rs) == 0 {
		return GeoResult{Reason: ReasonCountryMismatch}, ErrNoResult
	}
	ok, isBool := rs[0].Bindings["allowed"].(bool)
	reason, isString := rs[0].Bindings["reason"].(string)
	if !isBool || !isString {
		return GeoResult{Reason: ReasonCountryMismatch}, ErrNoResult
	}
	return GeoResult{Allowed: ok, Reason: reason}, nil
}

// HealthCheck evaluates a known-good and a known-bad input through the prepared query.
func (e *OPAEvaluator) HealthCheck(ctx context.Context) error {
	res, err := e.EvaluateGeo(ctx, GeoInput{DetectedCountry: "FR", ClaimedDialCode: "+33", AllowedCountries: []string{"FR"}})
	if err != nil {
		return err
	}
	if !res.Allowed {
		return fmt.Errorf("policy self check: matching country denied")
	}
	res, err = e.EvaluateGeo(ctx, GeoInput{DetectedCountry: "FR", ClaimedDialCode: "+375", AllowedCountries: []string{"BY"}})
	if err != nil {
		return err
	}
	if res.Allowed {
		return fmt.Errorf("policy self check: mismatching country allowed")
	}
	return nil
}
