package compute

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/jsii-runtime-go"

	"github.com/aiostack/aiostack/internal/synthesis"
	"github.com/aiostack/aiostack/internal/util/naming"
)

// ProvisionOutputs exports the elastic IP and instance ID. Export names are
// global per account and region, so one server per region.
func (p *Provisioner) ProvisionOutputs(ctx *synthesis.Context, instance awsec2.CfnInstance) error {
	outputs := []struct {
		id          string
		description string
		value       *string
		export      string
	}{
		{naming.OutputElasticIP, "Elastic IP of the AIO Server", ctx.State.ElasticIP.Ref(), naming.ExportElasticIP},
		{naming.OutputInstanceID, "Instance ID of the AIO Server", instance.Ref(), naming.ExportInstanceID},
	}

	for _, o := range outputs {
		if err := ctx.Reserve(o.id); err != nil {
			return fmt.Errorf("failed to declare output: %w", err)
		}
		awscdk.NewCfnOutput(ctx.Stack, jsii.String(o.id), &awscdk.CfnOutputProps{
			Description: jsii.String(o.description),
			Value:       o.value,
			ExportName:  jsii.String(o.export),
		})
	}
	return nil
}
