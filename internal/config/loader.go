package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the client settings read from a config file
type Config struct {
	// Target is the scheme and host requests are sent to
	Target string `json:"target,omitempty" yaml:"target,omitempty"`

	// Timeout bounds a single request (e.g. "10s")
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// Headers are sent with every request and override the built-in defaults
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	// NoDefaultHeaders drops the built-in Accept/Content-Type/language headers
	NoDefaultHeaders bool `json:"noDefaultHeaders,omitempty" yaml:"noDefaultHeaders,omitempty"`

	// UserAgent replaces the synthesized User-Agent
	UserAgent string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`

	// Output is the default output format: text, json or yaml
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Timeout: Duration(30 * time.Second),
		Output:  "text",
	}
}

// LoadConfig loads a configuration file.
//
// The file format is determined by extension:
//   - .yaml, .yml -> YAML
//   - .json -> JSON
//
// Unset fields keep the values from Default.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config, err := ParseConfig(data, path)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

// ParseConfig parses configuration data. The format is taken from the
// extension of path and defaults to YAML.
func ParseConfig(data []byte, path string) (*Config, error) {
	config := Default()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config (unknown format %s): %w", ext, err)
		}
	}

	return config, nil
}

// Duration is a time.Duration written as a string such as "30s"
type Duration time.Duration

// ParseDurationString parses "30s", "1m30s" or a bare number of seconds.
func ParseDurationString(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(s)
	if err == nil {
		return d, nil
	}

	var seconds int
	if _, err := fmt.Sscanf(s, "%d", &seconds); err == nil && fmt.Sprint(seconds) == s {
		return time.Duration(seconds) * time.Second, nil
	}

	return 0, fmt.Errorf("invalid duration format: %s", s)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// plain numbers are seconds
		var seconds int64
		if err := json.Unmarshal(b, &seconds); err != nil {
			return fmt.Errorf("invalid duration: %s", b)
		}
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}

	dur, err := ParseDurationString(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	dur, err := ParseDurationString(value.Value)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// String returns the duration as a string.
func (d Duration) String() string {
	return time.Duration(d).String()
}
