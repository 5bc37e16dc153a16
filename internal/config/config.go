// Package config holds the groceries client settings and the on-disk
// configuration store (.groceries.yml).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Defaults for the client settings.
const (
	DefaultConfigFile = ".groceries.yml"
	DefaultTokenFile  = ".token"
	DefaultTimeout    = 10 * time.Second
	DefaultRateBurst  = 1
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Settings is the resolved runtime configuration for a single invocation.
// It is assembled from flags, GROCERIES_* environment variables and the
// config file, then passed explicitly to every component.
type Settings struct {
	ConfigFile  string
	TokenFile   string
	Timeout     time.Duration
	LogLevel    string
	LogFormat   string
	Output      string
	RateLimit   float64 // requests per second, 0 disables limiting
	RateBurst   int
	Pushgateway string
}

// ApplyDefaults fills zero values with their defaults.
func (s *Settings) ApplyDefaults() {
	if s.ConfigFile == "" {
		s.ConfigFile = DefaultConfigFile
	}
	if s.TokenFile == "" {
		s.TokenFile = DefaultTokenFile
	}
	if s.Timeout == 0 {
		s.Timeout = DefaultTimeout
	}
	if s.Output == "" {
		s.Output = OutputText
	}
	if s.RateBurst == 0 {
		s.RateBurst = DefaultRateBurst
	}
}

// Validate reports every invalid setting at once.
func (s *Settings) Validate() error {
	var errs []error

	if s.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative (got %s)", s.Timeout))
	}
	switch s.Output {
	case OutputText, OutputJSON:
	default:
		errs = append(errs, fmt.Errorf("output must be one of: text, json (got %q)", s.Output))
	}
	if s.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate-limit must not be negative (got %g)", s.RateLimit))
	}
	if s.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("rate-burst must be at least 1 (got %d)", s.RateBurst))
	}
	if s.Pushgateway != "" {
		if u, err := url.Parse(s.Pushgateway); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("pushgateway must be an absolute URL (got %q)", s.Pushgateway))
		}
	}

	return errors.Join(errs...)
}
