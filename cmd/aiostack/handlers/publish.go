package handlers

import (
	"context"
	"fmt"

	"github.com/aiostack/aiostack/internal/cfn"
	"github.com/aiostack/aiostack/internal/platform/s3"
)

// ObjectStore is the subset of the S3 client publish needs.
type ObjectStore interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	CreateBucket(ctx context.Context, bucket string) error
	PutObject(ctx context.Context, bucket, key, contentType string, data []byte) error
	ObjectURL(bucket, key string) string
}

// Factory function variables for publish - can be replaced in tests.
var (
	// newObjectStore creates the S3 client.
	newObjectStore = func(ctx context.Context, opts s3.Options) (ObjectStore, error) {
		return s3.NewClient(ctx, opts)
	}
)

// PublishOptions configures the publish command.
type PublishOptions struct {
	ConfigPath   string
	Bucket       string
	Key          string // defaults to <name>/template.<ext>
	Region       string
	Profile      string
	Endpoint     string
	Format       string
	CreateBucket bool
	Verbose      bool
}

// Publish synthesizes the template and uploads it to S3, printing the URL
// CloudFormation reads it from.
func Publish(ctx context.Context, opts PublishOptions) error {
	if opts.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}

	format, err := cfn.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	_, _, data, err := synthesizeTemplate(ctx, cfg, format, opts.Verbose)
	if err != nil {
		return err
	}

	store, err := newObjectStore(ctx, s3.Options{
		Region:   opts.Region,
		Profile:  opts.Profile,
		Endpoint: opts.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("failed to create S3 client: %w", err)
	}

	if err := ensureBucket(ctx, store, opts.Bucket, opts.CreateBucket); err != nil {
		return err
	}

	key := opts.Key
	if key == "" {
		key = templateKey(cfg.Name, format)
	}

	if err := store.PutObject(ctx, opts.Bucket, key, contentType(format), data); err != nil {
		return fmt.Errorf("failed to upload template: %w", err)
	}

	fmt.Fprintf(stdout, "Template for %s uploaded (%d bytes)\n", cfg.Name, len(data))
	fmt.Fprintf(stdout, "TemplateURL: %s\n", store.ObjectURL(opts.Bucket, key))
	return nil
}

// ensureBucket checks that the bucket exists, creating it when allowed.
func ensureBucket(ctx context.Context, store ObjectStore, bucket string, create bool) error {
	exists, err := store.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if !create {
		return fmt.Errorf("bucket %s does not exist (use --create-bucket to create it)", bucket)
	}
	if err := store.CreateBucket(ctx, bucket); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Created bucket %s\n", bucket)
	return nil
}

// templateKey is the default object key of a deployment's template.
func templateKey(name string, format cfn.Format) string {
	return fmt.Sprintf("%s/template.%s", name, format)
}

func contentType(format cfn.Format) string {
	if format == cfn.FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}
