package wizard

import (
	"strings"

	"github.com/aiostack/aiostack/internal/config"
)

// BuildConfig converts wizard answers into a configuration with defaults applied.
func BuildConfig(result *WizardResult) *config.Config {
	cfg := &config.Config{
		Name: result.Name,
		Server: config.ServerConfig{
			KeyPairName:    strings.TrimSpace(result.KeyPairName),
			InstanceType:   result.InstanceType,
			ArtifactBucket: strings.TrimSpace(result.ArtifactBucket),
		},
	}

	if result.NetworkMode == NetworkExisting {
		cfg.Network.Existing = &config.ExistingNetwork{
			VPCID:    result.VPCID,
			SubnetID: result.SubnetID,
		}
	} else {
		cfg.Network.CIDR = result.VPCCIDR
	}

	if domain := strings.TrimSpace(result.Domain); domain != "" {
		cfg.Records = []config.RecordConfig{{Domain: strings.ToLower(domain)}}
	}

	cfg.ApplyDefaults()
	return cfg
}
