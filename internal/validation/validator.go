// Package validation wraps go-playground/validator with the field rules of the
// catalogue and converts failures into field-keyed domain errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"

	domainerrors "github.com/yamdb/yamdb-server/internal/errors"
)

const (
	// MinYear is the earliest accepted title year.
	MinYear = 1000

	// ReservedUsername is the alias of the self-service profile route.
	ReservedUsername = "me"
)

var (
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

	fold = cases.Fold()
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock overrides the clock used by the notfuture rule.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// New creates a validator with the custom rules registered:
//
//	slug        letters, digits, hyphen and underscore
//	username    letters, digits and @.+-_
//	notreserved anything but "me" in any case
//	notfuture   an integer year no later than the current one
func New(opts ...Option) *Validator {
	val := &Validator{
		v:   validator.New(validator.WithRequiredStructEnabled()),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(val)
	}

	// Use JSON tag names in error messages
	val.v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		if i := strings.IndexByte(name, ','); i >= 0 {
			name = name[:i]
		}
		if name == "-" {
			return fld.Name
		}
		return name
	})

	mustRegister(val.v, "slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	mustRegister(val.v, "username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	mustRegister(val.v, "notreserved", func(fl validator.FieldLevel) bool {
		return !IsReservedUsername(fl.Field().String())
	})
	mustRegister(val.v, "notfuture", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(val.now().Year())
	})

	return val
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// IsReservedUsername reports whether name collides with the profile alias.
func IsReservedUsername(name string) bool {
	return fold.String(strings.TrimSpace(name)) == ReservedUsername
}

// Validate validates a struct and returns a domain error.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// CurrentYear returns the year on the validator's clock.
func (v *Validator) CurrentYear() int {
	return v.now().Year()
}

// formatError converts validator errors to domain errors.
func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		field := e.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if _, seen := fieldErrors[field]; seen {
			continue
		}
		fieldErrors[field] = v.friendlyMessage(e)
	}

	return domainerrors.ValidationWithDetails("validation failed", fieldErrors)
}

//nolint:gocyclo // Switch statement covering validation tags is intentionally exhaustive.
func (v *Validator) friendlyMessage(e validator.FieldError) string {
	numeric := isNumeric(e.Kind())

	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min", "gte":
		if numeric {
			return "must be greater than or equal to " + e.Param()
		}
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max", "lte":
		if numeric {
			return "must be less than or equal to " + e.Param()
		}
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "oneof":
		return "must be one of: " + e.Param()
	case "slug":
		return "may contain only letters, digits, hyphens and underscores"
	case "username":
		return "may contain only letters, digits and @/./+/-/_"
	case "notreserved":
		return fmt.Sprintf("%q cannot be used as a username", ReservedUsername)
	case "notfuture":
		return "must not be later than " + strconv.Itoa(v.CurrentYear())
	default:
		return "is invalid"
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
