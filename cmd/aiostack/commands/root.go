// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing
// and flag binding. Command execution is delegated to handler functions in the
// handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the aiostack CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "aiostack",
		Short:         "Synthesize an all-in-one AWS server as a CloudFormation template",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(Init())
	cmd.AddCommand(Synth())
	cmd.AddCommand(Publish())

	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
