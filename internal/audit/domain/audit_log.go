package domain

import "time"

// AuditLog represents an audit event. Subject carries the masked phone for events that
// precede an identity (OTP request and verification); UserID is set once one exists.
type AuditLog struct {
	ID        string
	UserID    string
	Subject   string
	Action    string
	Resource  string
	IP        string
	Metadata  string
	CreatedAt time.Time
}

// Actions written by the identity flow.
const (
	ActionOTPRequested     = "otp_requested"
	ActionOTPVerified      = "otp_verified"
	ActionProfileCompleted = "profile_completed"
	ActionFraudSuspected   = "fraud_suspected"
	ActionAuthFailed       = "auth_failed"
)
