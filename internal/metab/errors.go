package metab

import "fmt"

// ConfigurationError reports a malformed kinetic configuration, such as a
// referenced metabolite with no corresponding constant.
type ConfigurationError struct {
	Enzyme string
	Field  string
	Name   string
}

func (e *ConfigurationError) Error() string {
	if e.Enzyme != "" {
		return fmt.Sprintf("enzyme %s: missing or invalid %s for %q", e.Enzyme, e.Field, e.Name)
	}
	return fmt.Sprintf("missing or invalid %s for %q", e.Field, e.Name)
}

// InvalidParameterError reports a call with an out-of-range or unrecognized
// argument (negative time step, unknown regulation action).
type InvalidParameterError struct {
	Param string
	Value any
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %v", e.Param, e.Value)
}

// ReactionBlockedError reports that a reaction could not proceed: zero
// effective rate or insufficient substrate. Callers should treat this as
// normal control flow, not a fatal condition.
type ReactionBlockedError struct {
	Reaction string
	Reason   string
}

func (e *ReactionBlockedError) Error() string {
	return fmt.Sprintf("reaction %s blocked: %s", e.Reaction, e.Reason)
}

// UnknownMetaboliteError reports access to a metabolite that was never
// registered with the store.
type UnknownMetaboliteError struct {
	Name string
}

func (e *UnknownMetaboliteError) Error() string {
	return fmt.Sprintf("unknown metabolite: %s", e.Name)
}
