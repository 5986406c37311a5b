package commands

import (
	"github.com/spf13/cobra"

	"github.com/aiostack/aiostack/cmd/aiostack/handlers"
)

// Publish returns the command that uploads the synthesized template to S3.
//
// Credentials come from the standard AWS chain (environment, shared config,
// instance role). --profile selects a shared config profile.
func Publish() *cobra.Command {
	var opts handlers.PublishOptions

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the template to an S3 bucket",
		Long: `Synthesize the template and upload it to an S3 bucket.

The printed TemplateURL can be passed to 'aws cloudformation create-stack
--template-url', which accepts templates larger than the inline limit.

Examples:
  aiostack publish --bucket my-templates
  aiostack publish -c prod.yaml --bucket my-templates --key prod/aio.json
  aiostack publish --bucket my-templates --create-bucket --region eu-west-1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Publish(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: aiostack.yaml)")
	cmd.Flags().StringVar(&opts.Bucket, "bucket", "", "Destination bucket")
	cmd.Flags().StringVar(&opts.Key, "key", "", "Object key (default: <name>/template.<format>)")
	cmd.Flags().StringVar(&opts.Region, "region", "", "AWS region (default: from the AWS config chain)")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "AWS shared config profile")
	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "Custom S3 endpoint (path-style)")
	cmd.Flags().StringVar(&opts.Format, "format", "json", "Template format (json or yaml)")
	cmd.Flags().BoolVar(&opts.CreateBucket, "create-bucket", false, "Create the bucket if it does not exist")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log synthesis progress to stderr")

	_ = cmd.MarkFlagRequired("bucket")

	return cmd
}
