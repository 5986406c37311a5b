package compute

import (
	"errors"

	"github.com/aiostack/aiostack/internal/synthesis"
	"github.com/aiostack/aiostack/internal/util/naming"
)

const phase = "compute"

// ErrInfrastructureMissing is returned when the compute phase runs before
// the infrastructure phase recorded its results.
var ErrInfrastructureMissing = errors.New("security group, subnet and elastic IP must be declared before the instance")

// Provisioner declares the instance and everything attached to it.
type Provisioner struct{}

// NewProvisioner creates a new compute provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the synthesis.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Synthesize implements the synthesis.Phase interface.
func (p *Provisioner) Synthesize(ctx *synthesis.Context) error {
	state := ctx.State
	if state.SecurityGroup == nil || state.ElasticIP == nil || state.SubnetID == nil {
		return ErrInfrastructureMissing
	}

	// 1. Image parameter
	image, err := p.ProvisionImageParameter(ctx)
	if err != nil {
		return err
	}

	// 2. Role and instance profile
	role, profile, err := p.ProvisionRole(ctx)
	if err != nil {
		return err
	}

	// 3. Instance
	instance, err := p.ProvisionInstance(ctx, image, role, profile)
	if err != nil {
		return err
	}

	// 4. Elastic IP association
	if err := p.ProvisionAddressAssociation(ctx, instance); err != nil {
		return err
	}

	// 5. Exports
	if err := p.ProvisionOutputs(ctx, instance); err != nil {
		return err
	}

	state.Server = &synthesis.ServerHandle{
		InstanceID:      naming.Instance,
		SecurityGroupID: naming.SecurityGroup,
		ElasticIPID:     naming.ElasticIP,
		Instance:        instance,
		SecurityGroup:   state.SecurityGroup,
		ElasticIP:       state.ElasticIP,
	}
	ctx.Observer.Printf("[%s] Server %s ready for record definitions", phase, ctx.Config.Name)
	return nil
}
