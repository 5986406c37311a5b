package config

import "sort"

// Config is the complete description of one all-in-one server deployment.
type Config struct {
	// Name identifies the deployment in tags and the template description.
	Name string `yaml:"name"`

	Server  ServerConfig   `yaml:"server"`
	Network NetworkConfig  `yaml:"network,omitempty"`
	Records []RecordConfig `yaml:"records,omitempty"`

	// Tags are added to every taggable resource of the deployment.
	Tags map[string]string `yaml:"tags,omitempty"`
}

// ServerConfig describes the compute instance and everything attached to it.
type ServerConfig struct {
	// KeyPairName references an EC2 key pair that already exists in the account.
	KeyPairName string `yaml:"key_pair_name"`

	// InstanceType is an EC2 instance type, e.g. "t4g.small".
	InstanceType string `yaml:"instance_type,omitempty"`

	// UserData commands run in order between the OS update and the
	// CloudWatch agent install.
	UserData []string `yaml:"user_data,omitempty"`

	// InlinePolicies are attached to the instance role, keyed by policy name.
	InlinePolicies map[string]PolicyDocument `yaml:"inline_policies,omitempty"`

	// ImageParameter is the SSM parameter path resolved to the AMI at deploy time.
	ImageParameter string `yaml:"image_parameter,omitempty"`

	// ArtifactBucket, when set, grants the instance read access to the bucket.
	ArtifactBucket string `yaml:"artifact_bucket,omitempty"`

	// ManageRecords makes the server definition declare one A record per
	// application domain.
	ManageRecords bool          `yaml:"manage_records,omitempty"`
	Apps          []Application `yaml:"apps,omitempty"`
}

// PolicyDocument is an inline IAM policy.
type PolicyDocument struct {
	Statements []PolicyStatement `yaml:"statements"`
}

// PolicyStatement is one statement of an inline policy.
type PolicyStatement struct {
	Sid       string   `yaml:"sid,omitempty"`
	Effect    string   `yaml:"effect,omitempty"`
	Actions   []string `yaml:"actions"`
	Resources []string `yaml:"resources,omitempty"`
}

// Application is a publicly reachable app hosted on the server.
type Application struct {
	ID      string   `yaml:"id"`
	Domains []string `yaml:"domains"`
	Port    int      `yaml:"port,omitempty"`
}

// NetworkConfig selects between a self-built network and an existing one.
type NetworkConfig struct {
	// CIDR is the VPC range of the self-built network.
	CIDR string `yaml:"cidr,omitempty"`

	// Existing, when set, places the server in a network managed elsewhere.
	Existing *ExistingNetwork `yaml:"existing,omitempty"`
}

// ExistingNetwork references a pre-built VPC and one of its public subnets.
type ExistingNetwork struct {
	VPCID    string `yaml:"vpc_id"`
	SubnetID string `yaml:"subnet_id"`
}

// RecordConfig asks for the bare and www records of a domain.
type RecordConfig struct {
	Domain string `yaml:"domain"`

	// HostedZoneID and HostedZoneName select the zone explicitly. When both
	// are empty the domain itself is used as the zone name.
	HostedZoneID   string `yaml:"hosted_zone_id,omitempty"`
	HostedZoneName string `yaml:"hosted_zone_name,omitempty"`
}

// PolicyNames returns the inline policy names in sorted order.
func (s ServerConfig) PolicyNames() []string {
	names := make([]string, 0, len(s.InlinePolicies))
	for name := range s.InlinePolicies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UsesExistingNetwork reports whether the server is placed in a caller-provided network.
func (n NetworkConfig) UsesExistingNetwork() bool {
	return n.Existing != nil
}

// ApplyDefaults fills unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Server.InstanceType == "" {
		c.Server.InstanceType = DefaultInstanceType
	}
	if c.Server.ImageParameter == "" {
		c.Server.ImageParameter = DefaultImageParameter
	}
	if c.Network.CIDR == "" && c.Network.Existing == nil {
		c.Network.CIDR = DefaultVPCCIDR
	}
	for i := range c.Server.InlinePolicies {
		doc := c.Server.InlinePolicies[i]
		for j := range doc.Statements {
			if doc.Statements[j].Effect == "" {
				doc.Statements[j].Effect = EffectAllow
			}
		}
	}
}

// Policy statement effects.
const (
	EffectAllow = "Allow"
	EffectDeny  = "Deny"
)
