package stack

import (
	"context"
	"fmt"
	"sort"

	"github.com/aiostack/aiostack/internal/cfn"
	"github.com/aiostack/aiostack/internal/config"
	"github.com/aiostack/aiostack/internal/synthesis"
	"github.com/aiostack/aiostack/internal/synthesis/compute"
	"github.com/aiostack/aiostack/internal/synthesis/dns"
	"github.com/aiostack/aiostack/internal/synthesis/infrastructure"
)

// Synthesizer runs the synthesis phases for one config.
type Synthesizer struct {
	config   *config.Config
	observer synthesis.Observer

	// Phases
	infraProvisioner   *infrastructure.Provisioner
	computeProvisioner *compute.Provisioner
	dnsProvisioner     *dns.Provisioner
}

// NewSynthesizer creates a synthesizer. A nil observer logs to the standard logger.
func NewSynthesizer(cfg *config.Config, observer synthesis.Observer) *Synthesizer {
	return &Synthesizer{
		config:             cfg,
		observer:           observer,
		infraProvisioner:   infrastructure.NewProvisioner(),
		computeProvisioner: compute.NewProvisioner(),
		dnsProvisioner:     dns.NewProvisioner(),
	}
}

// Phases returns the phases in execution order.
func (s *Synthesizer) Phases() []synthesis.Phase {
	return []synthesis.Phase{
		s.infraProvisioner,
		s.computeProvisioner,
		s.dnsProvisioner,
	}
}

// Synthesize builds the stack, synthesizes it and returns the template with
// the server handle. The cloud assembly is discarded afterwards.
func (s *Synthesizer) Synthesize(ctx context.Context) (*cfn.Template, *synthesis.ServerHandle, error) {
	if s.config == nil {
		return nil, nil, fmt.Errorf("config is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("synthesis canceled: %w", err)
	}

	observer := s.observer
	if observer == nil {
		observer = synthesis.NewConsoleObserver()
	}
	sCtx, err := synthesis.NewContext(ctx, s.config, observer.WithFields(map[string]string{
		"deployment": s.config.Name,
	}))
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := sCtx.Close(); err != nil {
			observer.Printf("failed to remove cloud assembly: %v", err)
		}
	}()

	if err := synthesis.NewPipeline(s.Phases()...).Run(sCtx); err != nil {
		return nil, nil, err
	}

	tpl, err := sCtx.Synth()
	if err != nil {
		return nil, nil, err
	}
	return tpl, sCtx.State.Server, nil
}

// Synthesize is a shorthand for NewSynthesizer(cfg, observer).Synthesize(ctx).
func Synthesize(ctx context.Context, cfg *config.Config, observer synthesis.Observer) (*cfn.Template, *synthesis.ServerHandle, error) {
	return NewSynthesizer(cfg, observer).Synthesize(ctx)
}

// TypeCount is the number of resources of one type in a template.
type TypeCount struct {
	Type  string
	Count int
}

// Summarize counts resources per type, sorted by type.
func Summarize(tpl *cfn.Template) []TypeCount {
	counts := make(map[string]int)
	for _, r := range tpl.Resources {
		counts[r.Type]++
	}

	summary := make([]TypeCount, 0, len(counts))
	for t, n := range counts {
		summary = append(summary, TypeCount{Type: t, Count: n})
	}
	sort.Slice(summary, func(i, j int) bool { return summary[i].Type < summary[j].Type })
	return summary
}
