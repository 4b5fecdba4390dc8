package lint

import "fmt"

// Registry is an immutable catalogue of rules keyed by name.
//
// It is built once, explicitly, and then only read, so it needs no locking
// and can be shared by every worker.
type Registry struct {
	rules map[string]Rule
	order []string // registration order
}

// NewRegistry builds a registry from rules. Empty or duplicate names are
// configuration errors.
func NewRegistry(rules ...Rule) (*Registry, error) {
	r := &Registry{
		rules: make(map[string]Rule, len(rules)),
		order: make([]string, 0, len(rules)),
	}
	for _, rule := range rules {
		name := rule.Name()
		if name == "" {
			return nil, ConfigErrorf("rule with empty name")
		}
		if _, dup := r.rules[name]; dup {
			return nil, ConfigErrorf("rule %q registered twice", name)
		}
		r.rules[name] = rule
		r.order = append(r.order, name)
	}
	return r, nil
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.order)
}

// Names returns all rule names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Lookup returns the rule registered under name, or a *RuleNotFoundError.
func (r *Registry) Lookup(name string) (Rule, error) {
	if rule, ok := r.rules[name]; ok {
		return rule, nil
	}
	return nil, &RuleNotFoundError{Name: name, Suggestions: Suggest(name, r.order)}
}

// Resolve maps names to rules, preserving order. Repeated names keep their
// first position. The first unknown name aborts resolution.
func (r *Registry) Resolve(names []string) ([]Rule, error) {
	seen := make(map[string]bool, len(names))
	rules := make([]Rule, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		rule, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		seen[name] = true
		rules = append(rules, rule)
	}
	return rules, nil
}

// Build resolves the active rule set described by cfg: its rule list (or
// every rule), minus disabled rules, with severity overrides applied.
// Every name cfg mentions must be registered.
func (r *Registry) Build(cfg *Config) ([]Rule, error) {
	for _, name := range cfg.referencedNames() {
		if _, err := r.Lookup(name); err != nil {
			return nil, err
		}
	}

	names := r.order
	if cfg != nil && len(cfg.Rules) > 0 {
		names = cfg.Rules
	}

	resolved, err := r.Resolve(names)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve rule set: %w", err)
	}

	rules := make([]Rule, 0, len(resolved))
	for _, rule := range resolved {
		if cfg.IsDisabled(rule.Name()) {
			continue
		}
		rules = append(rules, WithSeverity(rule, cfg.GetSeverity(rule.Name(), rule.DefaultSeverity())))
	}
	return rules, nil
}

// Infos returns documentation metadata for every rule in registration order.
func (r *Registry) Infos() []RuleInfo {
	infos := make([]RuleInfo, 0, len(r.order))
	for _, name := range r.order {
		infos = append(infos, GetRuleInfo(r.rules[name]))
	}
	return infos
}
