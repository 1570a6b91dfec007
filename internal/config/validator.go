package config

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"filesentry/internal/errorwrapper"
)

// ValidateConfig performs validation on the GlobalConfig structure.
// Configuration errors are the only fatal startup condition, so every
// problem is reported here rather than discovered mid-run.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	// Register custom validation for HH:mm time-of-day values
	_ = validate.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true // required is enforced separately
		}
		_, err := ParseTimeOfDay(value)
		return err == nil
	})

	// Register custom validation for console log verbosity
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		level := strings.ToLower(fl.Field().String())
		switch level {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	if err := validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			first := validationErrors[0]
			return errorwrapper.NewValidationError(first.Namespace(), first.Value(), "failed '"+first.Tag()+"' validation")
		}
		return errorwrapper.WrapError(err, "config validation failed")
	}

	return nil
}
