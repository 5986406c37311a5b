package commands

import (
	"github.com/spf13/cobra"

	"github.com/aiostack/aiostack/cmd/aiostack/handlers"
)

// Synth returns the command that renders a configuration as a template.
//
// Flags:
//
//	--config, -c: Path to configuration file (default: aiostack.yaml)
//	--output, -o: Template destination, "-" for stdout
//	--format: json or yaml
//	--verbose, -v: Log synthesis phases to stderr
func Synth() *cobra.Command {
	var opts handlers.SynthOptions

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize the CloudFormation template",
		Long: `Synthesize the CloudFormation template for a server configuration.

The template declares the network (or references an existing one), the
security group, the elastic IP, the instance with its role and user data,
and the DNS records of the configured domains. Nothing is deployed.

Examples:
  # Print the template for aiostack.yaml
  aiostack synth

  # Write YAML to a file
  aiostack synth -c prod.yaml -o template.yaml --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Synth(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: aiostack.yaml)")
	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "-", "Template output path, - for stdout")
	cmd.Flags().StringVar(&opts.Format, "format", "json", "Template format (json or yaml)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log synthesis progress to stderr")

	return cmd
}
