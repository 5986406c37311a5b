package synthesis

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/aiostack/aiostack/internal/cfn"
	"github.com/aiostack/aiostack/internal/config"
	"github.com/aiostack/aiostack/internal/util/labels"
)

// State holds the shared results of synthesis phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Network results (populated by infrastructure phase). Tokens for a
	// self-built network, literal IDs for an existing one.
	VPCID    *string
	SubnetID *string

	// NetworkReady is what the instance must wait for before launching
	// (the default route of a self-built network). Nil when the network
	// already exists.
	NetworkReady awscdk.CfnResource

	// SecurityGroup and ElasticIP are set by the infrastructure phase.
	SecurityGroup awsec2.CfnSecurityGroup
	ElasticIP     awsec2.CfnEIP

	// Server is set by the compute phase.
	Server *ServerHandle
}

// Context wraps all dependencies and state needed for a synthesis phase.
// Resources are declared as constructs directly under Stack, so construct
// IDs are the template's logical IDs.
type Context struct {
	context.Context
	Config   *config.Config
	App      awscdk.App
	Stack    awscdk.Stack
	State    *State
	Observer Observer

	outdir   string
	declared int
}

// NewContext creates a synthesis context around an empty stack. The cloud
// assembly is written to a private temporary directory; call Close to
// remove it.
func NewContext(ctx context.Context, cfg *config.Config, observer Observer) (*Context, error) {
	if cfg == nil || cfg.Name == "" {
		return nil, fmt.Errorf("deployment name is required")
	}
	if observer == nil {
		observer = NewConsoleObserver()
	}

	outdir, err := os.MkdirTemp("", "aiostack-assembly-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create assembly directory: %w", err)
	}

	app := awscdk.NewApp(&awscdk.AppProps{
		Outdir:             jsii.String(outdir),
		AnalyticsReporting: jsii.Bool(false),
		TreeMetadata:       jsii.Bool(false),
		Context: &map[string]interface{}{
			"aws:cdk:enable-path-metadata": false,
		},
	})
	stack := awscdk.NewStack(app, jsii.String(cfg.Name), &awscdk.StackProps{
		StackName:   jsii.String(cfg.Name),
		Description: jsii.String(TemplateDescription(cfg.Name)),
		Synthesizer: awscdk.NewDefaultStackSynthesizer(&awscdk.DefaultStackSynthesizerProps{
			GenerateBootstrapVersionRule: jsii.Bool(false),
		}),
	})
	stack.TemplateOptions().SetTemplateFormatVersion(jsii.String(cfn.FormatVersion))

	return &Context{
		Context:  ctx,
		Config:   cfg,
		App:      app,
		Stack:    stack,
		State:    &State{},
		Observer: observer,
		outdir:   outdir,
	}, nil
}

// TemplateDescription is the description written into every template.
func TemplateDescription(name string) string {
	return "All-in-one application server " + name + " (aiostack)"
}

// Reserve checks that id is a free logical ID in the stack.
func (c *Context) Reserve(id string) error {
	if id == "" {
		return fmt.Errorf("logical ID must not be empty")
	}
	if c.Stack.Node().TryFindChild(jsii.String(id)) != nil {
		return fmt.Errorf("duplicate logical ID %q", id)
	}
	return nil
}

// Declare creates a resource construct under id and reports it to the
// observer. A taken id fails without touching the stack.
func Declare[T any](c *Context, phase, resourceType, id string, build func(scope constructs.Construct, id *string) T) (T, error) {
	var zero T
	if err := c.Reserve(id); err != nil {
		LogResourceFailed(c.Observer, phase, resourceType, id, err)
		return zero, err
	}

	resource := build(c.Stack, jsii.String(id))
	c.declared++
	LogResourceDeclared(c.Observer, phase, resourceType, id)
	return resource, nil
}

// Declared returns the number of resources declared so far.
func (c *Context) Declared() int {
	return c.declared
}

// Tags builds the tags of a resource: the deployment's own tags first, then
// the standard aiostack tags.
func (c *Context) Tags(component, name string) *[]*awscdk.CfnTag {
	m := labels.NewLabelBuilder(c.Config.Name).
		Merge(c.Config.Tags).
		WithComponent(component).
		WithName(name).
		Build()

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tags := make([]*awscdk.CfnTag, 0, len(keys))
	for _, k := range keys {
		tags = append(tags, &awscdk.CfnTag{Key: jsii.String(k), Value: jsii.String(m[k])})
	}
	return &tags
}

// Synth synthesizes the cloud assembly and returns the stack's template.
func (c *Context) Synth() (tpl *cfn.Template, err error) {
	defer func() {
		if r := recover(); r != nil {
			tpl, err = nil, fmt.Errorf("failed to synthesize stack: %v", r)
		}
	}()

	assembly := c.App.Synth(nil)
	artifact := assembly.GetStackArtifact(c.Stack.ArtifactId())

	data, err := os.ReadFile(*artifact.TemplateFullPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read synthesized template: %w", err)
	}
	return cfn.Parse(data)
}

// Close removes the cloud assembly directory.
func (c *Context) Close() error {
	return os.RemoveAll(c.outdir)
}
