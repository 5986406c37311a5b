package config

// DefaultConfigFile is the config file looked up when no path is given.
const DefaultConfigFile = "aiostack.yaml"

// Defaults applied by [Config.ApplyDefaults].
const (
	DefaultName = "aio-server"

	// DefaultInstanceType is the smallest general purpose Graviton size.
	DefaultInstanceType = "t4g.small"

	// DefaultImageParameter is the SSM public parameter tracking the latest
	// Amazon Linux 2023 release for arm64.
	DefaultImageParameter = "/aws/service/ami-amazon-linux-latest/al2023-ami-kernel-default-arm64"

	DefaultVPCCIDR = "10.0.0.0/16"
)

// SubnetPrefixExtension is the number of mask bits added to the VPC range
// to size the public subnet (/16 -> /24).
const SubnetPrefixExtension = 8

// VPC prefix lengths accepted for a self-built network. AWS subnets cannot be
// smaller than /28, which bounds the VPC at /20 with an 8 bit extension.
const (
	MinVPCPrefix = 16
	MaxVPCPrefix = 20
)

// Tag limits enforced by EC2 and IAM.
const (
	MaxTagKeyLength   = 128
	MaxTagValueLength = 256

	// ReservedTagPrefix marks the tag keys aiostack writes itself.
	ReservedTagPrefix = "aiostack:"
)
