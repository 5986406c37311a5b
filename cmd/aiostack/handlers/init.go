package handlers

import (
	"context"
	"fmt"

	"github.com/aiostack/aiostack/internal/config"
	"github.com/aiostack/aiostack/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// runWizard runs the interactive wizard.
	runWizard = wizard.RunWizard

	// buildConfig converts wizard answers to a config.
	buildConfig = wizard.BuildConfig

	// writeConfig writes the config to a file.
	writeConfig = config.WriteFile
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Fprintf(stdout, "Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := buildConfig(result)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "aiostack - all-in-one application server on AWS")
	fmt.Fprintln(stdout, "===============================================")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "This wizard creates a server configuration with sensible defaults.")
	fmt.Fprintln(stdout)
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Configuration saved!")
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  File: %s\n", outputPath)
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Server Summary")
	fmt.Fprintln(stdout, "--------------")
	fmt.Fprintf(stdout, "  Name:          %s\n", cfg.Name)
	fmt.Fprintf(stdout, "  Instance Type: %s\n", cfg.Server.InstanceType)
	fmt.Fprintf(stdout, "  Key Pair:      %s\n", cfg.Server.KeyPairName)
	if cfg.Network.UsesExistingNetwork() {
		fmt.Fprintf(stdout, "  Network:       %s / %s\n", cfg.Network.Existing.VPCID, cfg.Network.Existing.SubnetID)
	} else {
		fmt.Fprintf(stdout, "  Network:       new VPC %s\n", cfg.Network.CIDR)
	}
	for _, rec := range cfg.Records {
		fmt.Fprintf(stdout, "  Records:       %s, www.%s\n", rec.Domain, rec.Domain)
	}
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Next Steps")
	fmt.Fprintln(stdout, "----------")
	fmt.Fprintf(stdout, "  1. Review %s if needed (user_data, inline_policies)\n", outputPath)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "  2. Synthesize the template:")
	fmt.Fprintf(stdout, "     aiostack synth -c %s -o template.json\n", outputPath)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "  3. Deploy it with CloudFormation:")
	fmt.Fprintln(stdout, "     aws cloudformation deploy --template-file template.json \\")
	fmt.Fprintf(stdout, "       --stack-name %s --capabilities CAPABILITY_IAM\n", cfg.Name)
	fmt.Fprintln(stdout)
}
