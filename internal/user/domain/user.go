package domain

import (
	"errors"
	"strings"
	"time"
)

// User is an identity record keyed by phone number. It only exists once a profile was completed
// for a verified phone; ProfileComplete is the terminal escalation state.
type User struct {
	ID              string
	PhoneNumber     string
	Pseudo          string
	CountryName     string
	NationalityName string
	Community       string
	ProfileComplete bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Profile holds the fields submitted at profile completion.
type Profile struct {
	Pseudo          string
	CountryName     string
	NationalityName string
	Community       string
}

// Validate returns an error describing the first missing field.
func (p Profile) Validate() error {
	switch {
	case strings.TrimSpace(p.Pseudo) == "":
		return errors.New("pseudo is required")
	case strings.TrimSpace(p.CountryName) == "":
		return errors.New("countryName is required")
	case strings.TrimSpace(p.NationalityName) == "":
		return errors.New("nationalityName is required")
	case strings.TrimSpace(p.Community) == "":
		return errors.New("community is required")
	}
	return nil
}
