package config

import (
	"errors"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapgate/pkg/discovery"
	"github.com/leapstack-labs/leapgate/pkg/lint"
)

// Validate checks if the configuration is valid. Every returned error wraps
// lint.ErrConfiguration. Rule and reporter names are checked later, against
// the registries that know them.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Extension) == "" {
		errs = append(errs, lint.ConfigErrorf("extension is required"))
	}
	if c.Root == "" {
		errs = append(errs, lint.ConfigErrorf("root is required"))
	}
	if len(c.Reporters) == 0 {
		errs = append(errs, lint.ConfigErrorf("at least one reporter is required"))
	}
	if c.Workers < 0 {
		errs = append(errs, lint.ConfigErrorf("workers must not be negative, got %d", c.Workers))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, lint.ConfigErrorf("max_depth must not be negative, got %d", c.MaxDepth))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, lint.ConfigErrorf("log_format must be text or json, got %q", c.LogFormat))
	}
	names := make([]string, 0, len(c.Severity))
	for name := range c.Severity {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := c.Severity[name]
		if _, ok := lint.ParseSeverity(value); !ok {
			errs = append(errs, lint.ConfigErrorf("invalid severity %q for rule %s (expected error or warning)", value, name))
		}
	}
	if err := discovery.ValidatePatterns(c.Ignore); err != nil {
		errs = append(errs, lint.ConfigErrorf("%v", err))
	}

	return errors.Join(errs...)
}
