package mediate

import "time"

// Config holds configuration for the Mediator.
type Config struct {
	// DefaultTimeout is the execution deadline applied to each dispatch.
	// Zero means no deadline.
	DefaultTimeout time.Duration

	// ContinueOnError controls notification fan-out when a handler
	// fails. When false, Publish stops at the first error. When true,
	// every handler runs and the errors are joined.
	ContinueOnError bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultTimeout:  0,
		ContinueOnError: false,
	}
}
