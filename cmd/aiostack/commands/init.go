package commands

import (
	"github.com/spf13/cobra"

	"github.com/aiostack/aiostack/cmd/aiostack/handlers"
)

// Init returns the command for interactively creating a server configuration.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a server configuration",
		Long: `Interactively create a server configuration file.

The wizard asks for:

  - Deployment name
  - EC2 key pair and instance type
  - Artifact bucket the server may read (optional)
  - Network: a new VPC or an existing VPC and subnet
  - Domain for the bare and www records (optional)

User data commands and inline policies can be added to the file afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "aiostack.yaml", "Output file path")

	return cmd
}
