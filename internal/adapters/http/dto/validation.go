package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
)

var (
	// ErrValidation wraps struct-tag and Validate() failures.
	ErrValidation = errors.New("validation failed")

	// ErrBinding wraps JSON and query decoding failures.
	ErrBinding = errors.New("binding failed")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// chartValidators check chart option strings with the same parsers the
// chart service uses, so a bad option is reported per field at bind time.
var chartValidators = map[string]validator.Func{
	"uuid":        validateUUID,
	"notempty":    validateNotEmpty,
	"period":      parsesWith(domain.ParsePeriod),
	"body":        parsesWith(domain.ParseBody),
	"housesystem": parsesWith(domain.ParseHouseSystem),
	"zodiac":      parsesWith(domain.ParseZodiacMode),
}

// Validator returns the shared validator. Field errors carry JSON names.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}

			return name
		})

		for tag, fn := range chartValidators {
			if err := validate.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("registering %s validator: %v", tag, err))
			}
		}
	})

	return validate
}

// Validate checks struct tags.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// Validatable is implemented by requests with rules beyond struct tags.
type Validatable interface {
	Validate() error
}

// ValidateAll checks struct tags, then the value's own Validate method.
func ValidateAll(v any) error {
	if err := Validate(v); err != nil {
		return err
	}

	if vv, ok := v.(Validatable); ok {
		if err := vv.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	return nil
}

// BindAndValidate decodes the JSON body into v and validates it.
func BindAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return ValidateAll(v)
}

// BindQueryAndValidate decodes the query string into v and validates it.
func BindQueryAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return ValidateAll(v)
}

// IsValidationError reports whether err carries field-level failures.
func IsValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

// ValidationErrors maps JSON field names to messages. Slice elements are
// reported under the slice's name.
func ValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return out
	}

	for _, fe := range verrs {
		name, _, _ := strings.Cut(fe.Field(), "[")
		out[name] = validationMessage(fe)
	}

	return out
}

var validationMessages = map[string]string{
	"required":         "this field is required",
	"required_without": "is required when {param} is not set",
	"excluded_with":    "must not be set together with {param}",
	"uuid":             "must be a valid UUID",
	"notempty":         "must not be empty",
	"unique":           "must not contain duplicates",
	"gte":              "must be greater than or equal to {param}",
	"lte":              "must be less than or equal to {param}",
	"oneof":            "must be one of: {param}",
	"period":           "must be AM or PM",
	"body":             "must be a supported body",
	"housesystem":      "must be Placidus, Porphyry, Equal or Whole Sign",
	"zodiac":           "must be tropical or sidereal",
}

func validationMessage(fe validator.FieldError) string {
	tag, param := fe.Tag(), fe.Param()

	if tag == "min" || tag == "max" {
		unit := ""
		switch fe.Kind() {
		case reflect.String:
			unit = " characters"
		case reflect.Slice:
			unit = " items"
		default:
		}

		if tag == "min" {
			return "must be at least " + param + unit
		}

		return "must be at most " + param + unit
	}

	if msg, ok := validationMessages[tag]; ok {
		return strings.ReplaceAll(msg, "{param}", param)
	}

	return "failed validation: " + tag
}

// parsesWith adapts a domain parser into a validator. Empty values pass;
// pair with required where needed.
func parsesWith[T any](parse func(string) (T, error)) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}

		_, err := parse(s)

		return err == nil
	}
}

func validateUUID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}

	_, err := uuid.Parse(s)

	return err == nil
}

func validateNotEmpty(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
