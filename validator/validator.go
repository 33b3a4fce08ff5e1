// Package validator provides input validation for the application
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

var (
	// ErrEmptyString is returned when a string parameter is empty
	ErrEmptyString = errors.New("string cannot be empty")
	// ErrInvalidID is returned when an identifier contains characters outside the ID alphabet
	ErrInvalidID = errors.New("invalid id")
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]+$`)
	idPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// FieldErrors maps form fields to user-facing messages
type FieldErrors struct {
	Fields map[string]string `json:"fields"`
}

// Error lists the failing fields in name order
func (e *FieldErrors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg for field, keeping the first message per field
func (e *FieldErrors) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Err returns e as an error, or nil when no field failed
func (e *FieldErrors) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// AsFieldErrors unwraps err into *FieldErrors
func AsFieldErrors(err error) (*FieldErrors, bool) {
	var fe *FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Validator wraps go-playground/validator with field error conversion.
// It is safe for concurrent use
type Validator struct {
	v *playground.Validate
}

// New creates a validator that reports JSON field names and knows the "phone" tag
func New() *Validator {
	v := playground.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("phone", func(fl playground.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register phone validation: %v", err))
	}

	return &Validator{v: v}
}

// Struct validates s and returns *FieldErrors on failure
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := &FieldErrors{}
	for _, e := range verrs {
		fe.Add(fieldPath(e), friendlyMessage(e))
	}
	return fe.Err()
}

// fieldPath drops the top-level struct name from the namespace
func fieldPath(e playground.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return e.Field()
}

func friendlyMessage(e playground.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	case "url", "uri":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	default:
		return "is invalid"
	}
}

// IsPhone reports whether s is digits with an optional leading plus
func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidateNonEmpty validates that a string is not empty
func ValidateNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyString
	}
	return nil
}

// ValidateID validates an opaque identifier taken from a URL
func ValidateID(id string) error {
	if id == "" {
		return ErrEmptyString
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
