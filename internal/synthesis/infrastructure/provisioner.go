package infrastructure

import (
	"github.com/aiostack/aiostack/internal/synthesis"
)

const phase = "infrastructure"

// Provisioner declares network, security group and elastic IP resources.
type Provisioner struct{}

// NewProvisioner creates a new infrastructure provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the synthesis.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Synthesize implements the synthesis.Phase interface.
func (p *Provisioner) Synthesize(ctx *synthesis.Context) error {
	// 1. Network
	if err := p.ProvisionNetwork(ctx); err != nil {
		return err
	}

	// 2. Security group
	if err := p.ProvisionSecurityGroup(ctx); err != nil {
		return err
	}

	// 3. Elastic IP
	return p.ProvisionElasticIP(ctx)
}
