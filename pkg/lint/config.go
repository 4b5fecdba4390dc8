package lint

import "sort"

// Config controls which rules make up the active rule set and their severity.
type Config struct {
	// Rules lists rule names in execution order. Empty means every
	// registered rule, in registration order.
	Rules []string

	// DisabledRules contains rule names to skip
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]Severity
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig(rules ...string) *Config {
	return &Config{
		Rules:             rules,
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]Severity),
	}
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(name string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[name]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(name string, defaultSeverity Severity) Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[name]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// Disable disables a rule by name.
func (c *Config) Disable(name string) *Config {
	c.DisabledRules[name] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(name string, severity Severity) *Config {
	c.SeverityOverrides[name] = severity
	return c
}

// referencedNames returns every rule name the config mentions, sorted.
func (c *Config) referencedNames() []string {
	if c == nil {
		return nil
	}
	set := make(map[string]bool)
	for _, n := range c.Rules {
		set[n] = true
	}
	for n := range c.DisabledRules {
		set[n] = true
	}
	for n := range c.SeverityOverrides {
		set[n] = true
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
