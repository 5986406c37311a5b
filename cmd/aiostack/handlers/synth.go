package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/aiostack/aiostack/internal/cfn"
	"github.com/aiostack/aiostack/internal/config"
	"github.com/aiostack/aiostack/internal/stack"
	"github.com/aiostack/aiostack/internal/synthesis"
)

// Factory function variables for synth - can be replaced in tests.
var (
	// synthesize builds the template for a config.
	synthesize = stack.Synthesize

	// writeFile writes data to a file (for testing injection).
	writeFile = os.WriteFile

	// stdout receives templates written to "-" and command summaries.
	stdout io.Writer = os.Stdout

	// newObserver creates the observer synthesis logs to.
	newObserver = func(verbose bool) synthesis.Observer {
		if verbose {
			return synthesis.NewConsoleObserver()
		}
		return synthesis.NewLoggerObserver(log.New(io.Discard, "", 0))
	}
)

// SynthOptions configures the synth command.
type SynthOptions struct {
	ConfigPath string
	OutputPath string // empty or "-" writes to stdout
	Format     string
	Verbose    bool
}

// Synth synthesizes the template for a config and writes it to a file or stdout.
func Synth(ctx context.Context, opts SynthOptions) error {
	format, err := cfn.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	tpl, handle, data, err := synthesizeTemplate(ctx, cfg, format, opts.Verbose)
	if err != nil {
		return err
	}

	if opts.OutputPath == "" || opts.OutputPath == "-" {
		_, err := stdout.Write(data)
		return err
	}

	if err := writeFile(opts.OutputPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}

	summary := synthSummary{
		Name:     cfg.Name,
		Output:   opts.OutputPath,
		Counts:   stack.Summarize(tpl),
		Handle:   handle,
		Records:  recordNames(tpl),
		Existing: cfg.Network.UsesExistingNetwork(),
	}
	if isInteractiveTTY() {
		fmt.Fprint(stdout, renderSynthSummary(summary))
	} else {
		fmt.Fprint(stdout, plainSynthSummary(summary))
	}
	return nil
}

// synthesizeTemplate runs synthesis and encodes the result.
func synthesizeTemplate(ctx context.Context, cfg *config.Config, format cfn.Format, verbose bool) (*cfn.Template, *synthesis.ServerHandle, []byte, error) {
	tpl, handle, err := synthesize(ctx, cfg, newObserver(verbose))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("synthesis failed: %w", err)
	}

	data, err := tpl.Encode(format)
	if err != nil {
		return nil, nil, nil, err
	}
	return tpl, handle, data, nil
}
