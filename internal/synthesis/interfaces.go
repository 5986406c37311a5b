package synthesis

// Phase defines the interface for a synthesis phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Synthesize declares this phase's resources into ctx.Stack.
	Synthesize(ctx *Context) error
}

// Logger is the minimal printf-style logging interface.
type Logger interface {
	Printf(format string, v ...any)
}
