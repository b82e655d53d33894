package lint

import (
	"fmt"
)

// PluginErrorKind classifies external-rule failures.
type PluginErrorKind uint8

const (
	// PluginMalformedInput: the serialized tree could not be decoded on
	// the far side of the boundary.
	PluginMalformedInput PluginErrorKind = iota
	// PluginLoadError: the external module failed to load or evaluate.
	PluginLoadError
	// PluginRuntimeFault: the entry point faulted during execution;
	// diagnostics reported before the fault are still kept.
	PluginRuntimeFault
)

func (k PluginErrorKind) String() string {
	switch k {
	case PluginMalformedInput:
		return "malformed input"
	case PluginLoadError:
		return "load error"
	case PluginRuntimeFault:
		return "runtime fault"
	}
	return "unknown"
}

// PluginError is a recoverable failure of one external rule's invocation.
// The run driver collects these and proceeds with the remaining rules;
// native rule faults are defects and are allowed to abort the whole run.
type PluginError struct {
	RuleCode string
	Kind     PluginErrorKind
	Err      error
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %q: %s: %v", e.RuleCode, e.Kind, e.Err)
}

func (e *PluginError) Unwrap() error {
	return e.Err
}
