package plugin

// Descriptor identifies one external rule module and the sandbox runtime
// that will execute it. Descriptors are immutable configuration and safe to
// share across goroutines; all mutable state lives in the per-invocation
// environment.
type Descriptor struct {
	// Path is the plugin module, resolvable by the runtime (a file path or
	// a URL the runtime understands).
	Path string

	// Runner is the sandbox command prefix. The host appends the bootstrap
	// script path and Path to it. Empty means DefaultRunner.
	Runner []string

	// Codes selects which of the module's registered rules run. Empty means
	// every rule the module registers; a code no rule registered is a no-op.
	Codes []string
}

// DefaultRunner executes the bootstrap under deno with read-only ambient
// permissions, which is all importing the plugin module needs.
func DefaultRunner() []string {
	return []string{"deno", "run", "--quiet", "--allow-read"}
}
