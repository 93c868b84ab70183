package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
)

// validate reports fields by their koanf keys so messages name what the
// operator wrote in YAML or APP_ variables.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}

		return name
	})

	// Chart defaults must parse the same way request options do, so a bad
	// house system stops startup instead of the first chart.
	for tag, parse := range map[string]func(string) error{
		"housesystem": func(s string) error { _, err := domain.ParseHouseSystem(s); return err },
		"body":        func(s string) error { _, err := domain.ParseBody(s); return err },
	} {
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return parse(fl.Field().String()) == nil
		})
		if err != nil {
			panic(fmt.Sprintf("registering %s validator: %v", tag, err))
		}
	}

	return v
}

// Validate checks the loaded configuration. The service refuses to start
// on the first failure and lists every offending key.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	lines := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		lines = append(lines, describe(fe))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(lines, "\n  "))
}

var messages = map[string]string{
	"required":      "is required",
	"required_if":   "is required when %s",
	"required_with": "is required when %s is set",
	"min":           "must be at least %s",
	"max":           "must be at most %s",
	"oneof":         "must be one of: %s",
	"url":           "must be a valid URL",
	"hostname_port": "must be host:port",
	"unique":        "must not contain duplicates",
	"ltefield":      "must not exceed %s",
	"housesystem":   "must name a house system (P, O, E, W or their names)",
	"body":          "must name a supported body",
}

func describe(fe validator.FieldError) string {
	field := keyPath(fe.Namespace())

	msg, ok := messages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}

	if strings.Contains(msg, "%s") {
		param := fe.Param()
		if fe.Tag() != "oneof" {
			param = strings.ToLower(param)
		}
		msg = fmt.Sprintf(msg, param)
	}

	return field + " " + msg
}

// keyPath turns "Config.chart.bodies[2]" into "chart.bodies[2]".
func keyPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}

	return rest
}
