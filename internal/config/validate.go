package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.Service.URL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("service.url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("service.url: scheme must be http or https, got %q", u.Scheme))
	case u.Host == "":
		errs = append(errs, errors.New("service.url: missing host"))
	}

	if c.Service.Timeout < 0 {
		errs = append(errs, errors.New("service.timeout: must not be negative"))
	}

	seen := make(map[string]bool, len(c.Permissions))
	for i, p := range c.Permissions {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Errorf("permissions[%d]: empty id", i))
			continue
		}
		if seen[p] {
			errs = append(errs, fmt.Errorf("permissions[%d]: duplicate id %q", i, p))
		}
		seen[p] = true
	}

	for id, w := range c.Server.Rules {
		if w < 0 {
			errs = append(errs, fmt.Errorf("server.rules.%s: weight must not be negative", id))
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}
