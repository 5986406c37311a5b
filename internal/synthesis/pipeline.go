package synthesis

import (
	"fmt"
	"time"
)

// Pipeline runs phases in a fixed order.
type Pipeline struct {
	Phases []Phase
}

// NewPipeline creates a pipeline from the given phases.
func NewPipeline(phases ...Phase) *Pipeline {
	return &Pipeline{Phases: phases}
}

// Run executes all phases sequentially and stops at the first failure.
func (p *Pipeline) Run(ctx *Context) error {
	return RunPhases(ctx, p.Phases)
}

// RunPhases executes all synthesis phases sequentially.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting synthesis with %d phases...", len(phases))

	for i, phase := range phases {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("synthesis canceled before %s phase: %w", phase.Name(), err)
		}

		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		LogPhaseStart(ctx.Observer, name)

		if err := runPhase(ctx, phase); err != nil {
			LogPhaseFailed(ctx.Observer, name, err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		LogPhaseComplete(ctx.Observer, name, time.Since(phaseStart))
	}

	ctx.Observer.Printf("Synthesis completed in %v (%d resources)",
		time.Since(start).Round(time.Millisecond), ctx.Declared())
	return nil
}

// runPhase runs one phase. Construct errors raised by the CDK surface as
// panics and are returned as errors.
func runPhase(ctx *Context, phase Phase) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return phase.Synthesize(ctx)
}
