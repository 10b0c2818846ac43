package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/raywall/onet-interest-profiler/errs"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza as validações estruturais declaradas nas tags.
// Falhas são reportadas como *errs.ConfigurationError.
func (cv *ConfigValidator) Validate(cfg *Config) error {
	err := cv.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return &errs.ConfigurationError{Key: "config", Reason: err.Error()}
	}

	var errMsgs []string
	for _, e := range validationErrors {
		errMsgs = append(errMsgs, fmt.Sprintf("campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
	}
	return &errs.ConfigurationError{
		Key:    validationErrors[0].Namespace(),
		Reason: strings.Join(errMsgs, "; "),
	}
}
