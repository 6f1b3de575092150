package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// configValidate is the validator instance for Config. Initialized in init()
// with the key-name mapping and the remote URL rule.
var configValidate *validator.Validate

func init() {
	configValidate = validator.New(validator.WithRequiredStructEnabled())

	// Report problems with the document's key names instead of Go field names.
	configValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	configValidate.RegisterStructValidation(validateRepository, Config{})
}

// validateRepository requires an absolute http(s) URL in remote mode. In
// local mode the value is a file path and is checked when the snapshot loads.
func validateRepository(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)
	if cfg.RepoMode != ModeRemote || cfg.RepositoryURL == "" {
		return
	}
	u, err := url.Parse(cfg.RepositoryURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		sl.ReportError(cfg.RepositoryURL, "repository_url", "RepositoryURL", "registry_url", "")
	}
}

// Validate checks cfg against the configuration rules and returns an *Error
// naming every violated rule.
func Validate(path string, cfg *Config) error {
	err := configValidate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Path: path, Problems: []string{err.Error()}}
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return newError(path, problems)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: required parameter is missing or empty", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s: invalid value %q, allowed values: %s", fe.Field(), fe.Value(), strings.Join(strings.Fields(fe.Param()), ", "))
	case "gte":
		return fmt.Sprintf("%s: must not be negative, got %v", fe.Field(), fe.Value())
	case "registry_url":
		return fmt.Sprintf("%s: remote mode needs an absolute http(s) URL, got %q", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s: failed %q validation", fe.Field(), fe.Tag())
	}
}
