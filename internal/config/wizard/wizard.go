package wizard

import (
	"context"
	"fmt"

	"github.com/aiostack/aiostack/internal/config"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	// Identity
	Name        string
	KeyPairName string

	// Server
	InstanceType   string
	ArtifactBucket string

	// Network
	NetworkMode string // "new" or "existing"
	VPCCIDR     string
	VPCID       string
	SubnetID    string

	// Records (optional)
	Domain string
}

// RunWizard runs the interactive configuration wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		Name:         config.DefaultName,
		InstanceType: config.DefaultInstanceType,
		NetworkMode:  NetworkNew,
		VPCCIDR:      config.DefaultVPCCIDR,
	}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}

	if err := runServerGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	if err := runNetworkGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}

	if err := runRecordsGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("records: %w", err)
	}

	return result, nil
}
