package testing

import (
	"maps"
	"slices"

	"github.com/aiostack/aiostack/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder with sensible defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: config.Config{
			Name: "test-aio",
			Server: config.ServerConfig{
				KeyPairName:    "test-key",
				InstanceType:   config.DefaultInstanceType,
				ImageParameter: config.DefaultImageParameter,
			},
			Network: config.NetworkConfig{
				CIDR: config.DefaultVPCCIDR,
			},
		},
	}
}

// WithName sets the deployment name.
func (b *ConfigBuilder) WithName(name string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Name = name
	return nb
}

// WithKeyPair sets the key pair name.
func (b *ConfigBuilder) WithKeyPair(name string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Server.KeyPairName = name
	return nb
}

// WithInstanceType sets the instance type.
func (b *ConfigBuilder) WithInstanceType(instanceType string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Server.InstanceType = instanceType
	return nb
}

// WithUserData appends user data commands.
func (b *ConfigBuilder) WithUserData(commands ...string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Server.UserData = append(nb.cfg.Server.UserData, commands...)
	return nb
}

// WithInlinePolicy adds an inline policy allowing actions on resources.
func (b *ConfigBuilder) WithInlinePolicy(name string, actions, resources []string) *ConfigBuilder {
	nb := b.clone()
	if nb.cfg.Server.InlinePolicies == nil {
		nb.cfg.Server.InlinePolicies = make(map[string]config.PolicyDocument)
	}
	nb.cfg.Server.InlinePolicies[name] = config.PolicyDocument{
		Statements: []config.PolicyStatement{{
			Effect:    config.EffectAllow,
			Actions:   actions,
			Resources: resources,
		}},
	}
	return nb
}

// WithArtifactBucket sets the artifact bucket.
func (b *ConfigBuilder) WithArtifactBucket(bucket string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Server.ArtifactBucket = bucket
	return nb
}

// WithExistingNetwork places the server in an existing VPC and subnet.
func (b *ConfigBuilder) WithExistingNetwork(vpcID, subnetID string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Network = config.NetworkConfig{
		Existing: &config.ExistingNetwork{VPCID: vpcID, SubnetID: subnetID},
	}
	return nb
}

// WithApp adds an application. manage turns on record management for the server.
func (b *ConfigBuilder) WithApp(id string, port int, manage bool, domains ...string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Server.ManageRecords = nb.cfg.Server.ManageRecords || manage
	nb.cfg.Server.Apps = append(nb.cfg.Server.Apps, config.Application{
		ID:      id,
		Domains: domains,
		Port:    port,
	})
	return nb
}

// WithRecord adds a record definition.
func (b *ConfigBuilder) WithRecord(rec config.RecordConfig) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Records = append(nb.cfg.Records, rec)
	return nb
}

// WithTag adds a deployment-wide tag.
func (b *ConfigBuilder) WithTag(key, value string) *ConfigBuilder {
	nb := b.clone()
	if nb.cfg.Tags == nil {
		nb.cfg.Tags = make(map[string]string)
	}
	nb.cfg.Tags[key] = value
	return nb
}

// Build returns the constructed config.
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.clone().cfg
	return &cfg
}

// clone creates a deep copy of the builder for immutability.
func (b *ConfigBuilder) clone() *ConfigBuilder {
	newCfg := b.cfg
	newCfg.Server.UserData = slices.Clone(b.cfg.Server.UserData)
	newCfg.Records = slices.Clone(b.cfg.Records)
	if b.cfg.Server.InlinePolicies != nil {
		newCfg.Server.InlinePolicies = maps.Clone(b.cfg.Server.InlinePolicies)
	}
	if len(b.cfg.Server.Apps) > 0 {
		newCfg.Server.Apps = make([]config.Application, len(b.cfg.Server.Apps))
		for i, app := range b.cfg.Server.Apps {
			app.Domains = slices.Clone(app.Domains)
			newCfg.Server.Apps[i] = app
		}
	}
	if b.cfg.Tags != nil {
		newCfg.Tags = maps.Clone(b.cfg.Tags)
	}
	if b.cfg.Network.Existing != nil {
		existing := *b.cfg.Network.Existing
		newCfg.Network.Existing = &existing
	}
	return &ConfigBuilder{cfg: newCfg}
}
