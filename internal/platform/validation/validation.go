// Package validation validates request structs at the transport boundary.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Rollin-123/belafrica-node-sub000/internal/platform/apperr"
)

var dialCodeRE = regexp.MustCompile(`^\+[1-9][0-9]{0,3}$`)

// Validator wraps go-playground/validator with the project's custom tags.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the "dialcode" tag registered (e.g. "+33", "+375").
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("dialcode", func(fl validator.FieldLevel) bool {
		return dialCodeRE.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Struct validates s and returns a KindValidation error naming the first invalid field.
func (val *Validator) Struct(s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.Validation(describe(fe))
	}
	return apperr.Validation("invalid request")
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "e164":
		return fmt.Sprintf("%s must be an international phone number (e.g. +33612345678)", field)
	case "dialcode":
		return fmt.Sprintf("%s must be a dial code such as +33", field)
	case "len":
		return fmt.Sprintf("%s must be %s characters", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain digits only", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, fe.Param(), unit(fe))
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, fe.Param(), unit(fe))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func unit(fe validator.FieldError) string {
	if fe.Kind() == reflect.String {
		return " characters"
	}
	return ""
}
