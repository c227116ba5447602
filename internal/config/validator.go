package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

var validOutputs = map[string]bool{
	"":     true,
	"text": true,
	"json": true,
	"yaml": true,
}

// Validate checks the configuration and returns a *ValidationErrors listing
// every problem, or nil.
func (c *Config) Validate() error {
	errs := &ValidationErrors{}

	if c.Target != "" {
		u, err := url.Parse(c.Target)
		switch {
		case err != nil:
			errs.Add("target", fmt.Sprintf("invalid URL: %v", err))
		case u.Scheme != "http" && u.Scheme != "https":
			errs.Add("target", "scheme must be http or https")
		case u.Host == "":
			errs.Add("target", "host is required")
		}
	}

	if c.Timeout < 0 {
		errs.Add("timeout", "must not be negative")
	}

	for key := range c.Headers {
		if strings.TrimSpace(key) == "" {
			errs.Add("headers", "header name cannot be empty")
		}
	}

	if !validOutputs[strings.ToLower(c.Output)] {
		errs.Add("output", fmt.Sprintf("unknown output format: %s", c.Output))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
