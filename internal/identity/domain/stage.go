package domain

// Stage is a position in the identity escalation. Transitions only move forward one step;
// ProfileComplete is terminal and re-enterable through a fresh OTP verification.
type Stage string

const (
	StageUnverified      Stage = "unverified"
	StageOTPPending      Stage = "otp_pending"
	StageOTPVerified     Stage = "otp_verified"
	StageProfileComplete Stage = "profile_complete"
)
