// Package authv1 declares belafrica.auth.v1.AuthService: the phone OTP flow that escalates an
// anonymous caller to a Temporary and then a Permanent identity token.
package authv1

import "time"

// Stage values reported by VerifyOTP.
const (
	StageOTPVerified     = "otp_verified"
	StageProfileComplete = "profile_complete"
)

type RequestOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
	CountryCode string `json:"countryCode" validate:"required,dialcode"`
}

type RequestOTPResponse struct {
	OK        bool      `json:"ok"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
}

// VerifyOTPResponse carries TempToken when Stage is StageOTPVerified, and PermanentToken plus
// Identity when the phone already belongs to a complete profile.
type VerifyOTPResponse struct {
	OK             bool      `json:"ok"`
	Stage          string    `json:"stage"`
	TempToken      string    `json:"tempToken,omitempty"`
	PermanentToken string    `json:"permanentToken,omitempty"`
	ExpiresAt      time.Time `json:"expiresAt"`
	Identity       *Identity `json:"identity,omitempty"`
}

type CompleteProfileRequest struct {
	TempToken       string `json:"tempToken" validate:"required"`
	Pseudo          string `json:"pseudo" validate:"required,min=2,max=50"`
	CountryName     string `json:"countryName" validate:"required,max=100"`
	NationalityName string `json:"nationalityName" validate:"required,max=100"`
	Community       string `json:"community" validate:"required,max=150"`
}

type CompleteProfileResponse struct {
	OK             bool      `json:"ok"`
	PermanentToken string    `json:"permanentToken"`
	ExpiresAt      time.Time `json:"expiresAt"`
	Identity       *Identity `json:"identity"`
}

type ValidateSessionRequest struct {
	Token string `json:"token" validate:"required"`
}

type ValidateSessionResponse struct {
	Valid     bool      `json:"valid"`
	ExpiresAt time.Time `json:"expiresAt"`
	Identity  *Identity `json:"identity,omitempty"`
}

// Identity is a registered user as exposed to API callers.
type Identity struct {
	ID              string    `json:"id"`
	PhoneNumber     string    `json:"phoneNumber"`
	Pseudo          string    `json:"pseudo"`
	CountryName     string    `json:"countryName"`
	NationalityName string    `json:"nationalityName"`
	Community       string    `json:"community"`
	ProfileComplete bool      `json:"profileComplete"`
	CreatedAt       time.Time `json:"createdAt"`
}
