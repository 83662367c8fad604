package telemetry

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the domain counters. A nil *Metrics records nothing.
type Metrics struct {
	otpRequests     metric.Int64Counter
	geoDecisions    metric.Int64Counter
	decryptFailures metric.Int64Counter
}

// NewMetrics registers the counters on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	otpRequests, err := meter.Int64Counter("otp_requests_total",
		metric.WithDescription("OTP issuance attempts by result"))
	if err != nil {
		return nil, err
	}
	geoDecisions, err := meter.Int64Counter("geo_decisions_total",
		metric.WithDescription("Geo-consistency gate decisions"))
	if err != nil {
		return nil, err
	}
	decryptFailures, err := meter.Int64Counter("message_decrypt_failures_total",
		metric.WithDescription("Envelopes that failed to decrypt, by failure kind"))
	if err != nil {
		return nil, err
	}
	return &Metrics{otpRequests: otpRequests, geoDecisions: geoDecisions, decryptFailures: decryptFailures}, nil
}

// OTPRequest counts one requestOtp outcome ("issued", "rate_limited", "rejected", "fraud", "failed").
func (m *Metrics) OTPRequest(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.otpRequests.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// GeoDecision counts one gate decision.
func (m *Metrics) GeoDecision(ctx context.Context, allowed bool, reason string) {
	if m == nil {
		return
	}
	m.geoDecisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("allowed", strconv.FormatBool(allowed)),
		attribute.String("reason", reason),
	))
}

// DecryptFailure counts one failed decryption; kind is "malformed" or "authentication".
func (m *Metrics) DecryptFailure(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.decryptFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
