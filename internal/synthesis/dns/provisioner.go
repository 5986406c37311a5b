package dns

import (
	"errors"
	"fmt"

	"github.com/aiostack/aiostack/internal/synthesis"
	"github.com/aiostack/aiostack/internal/util/naming"
)

const phase = "dns"

// ErrNoServer is returned when records are requested before the compute
// phase published a server handle.
var ErrNoServer = errors.New("no server handle to point records at")

// Provisioner declares application records and record definitions.
type Provisioner struct{}

// NewProvisioner creates a new DNS provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the synthesis.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Synthesize implements the synthesis.Phase interface.
func (p *Provisioner) Synthesize(ctx *synthesis.Context) error {
	if ctx.State.Server == nil {
		return ErrNoServer
	}
	handle := *ctx.State.Server

	if err := p.ProvisionAppRecords(ctx, handle); err != nil {
		return err
	}

	for _, rec := range ctx.Config.Records {
		if err := DeclareRecords(ctx, handle, rec); err != nil {
			return err
		}
	}
	return nil
}

// ProvisionAppRecords declares one A record per application domain when the
// server manages its records. Applications listed without record management
// are reported and skipped.
func (p *Provisioner) ProvisionAppRecords(ctx *synthesis.Context, handle synthesis.ServerHandle) error {
	server := ctx.Config.Server
	if len(server.Apps) == 0 {
		return nil
	}
	if !server.ManageRecords {
		synthesis.LogValidationWarning(ctx.Observer, phase,
			fmt.Sprintf("%d apps configured but manage_records is off; no app records declared", len(server.Apps)))
		return nil
	}

	for _, app := range server.Apps {
		if len(app.Domains) == 0 {
			return fmt.Errorf("app %q has no domains", app.ID)
		}
		zone, err := InferZone(app.Domains[0])
		if err != nil {
			return fmt.Errorf("app %q: %w", app.ID, err)
		}
		for _, domain := range app.Domains {
			id := naming.AppRecord(app.ID, domain)
			if err := declareRecord(ctx, id, zone, FQDN(domain), handle); err != nil {
				return fmt.Errorf("failed to declare record %s for app %q: %w", domain, app.ID, err)
			}
		}
	}
	return nil
}
