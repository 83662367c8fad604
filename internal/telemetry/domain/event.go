package domain

import "time"

// Event is a best-effort domain event exported as an OTel log record.
type Event struct {
	Type      string
	Source    string
	UserID    string
	Subject   string // masked phone when no user exists yet
	Metadata  []byte // JSON
	CreatedAt time.Time
}

// Event types emitted by the services.
const (
	EventOTPRequested     = "otp_requested"
	EventOTPVerified      = "otp_verified"
	EventProfileCompleted = "profile_completed"
	EventFraudSuspected   = "fraud_suspected"
	EventGRPCRequest      = "grpc_request"
)
