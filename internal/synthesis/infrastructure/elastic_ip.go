package infrastructure

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/aiostack/aiostack/internal/cfn"
	"github.com/aiostack/aiostack/internal/synthesis"
	"github.com/aiostack/aiostack/internal/util/labels"
	"github.com/aiostack/aiostack/internal/util/naming"
)

// ProvisionElasticIP declares the VPC-scoped elastic IP. The compute phase
// associates it with the instance.
func (p *Provisioner) ProvisionElasticIP(ctx *synthesis.Context) error {
	name := ctx.Config.Name

	eip, err := synthesis.Declare(ctx, phase, cfn.TypeEIP, naming.ElasticIP,
		func(scope constructs.Construct, id *string) awsec2.CfnEIP {
			return awsec2.NewCfnEIP(scope, id, &awsec2.CfnEIPProps{
				Domain: jsii.String("vpc"),
				Tags:   ctx.Tags(labels.ComponentAddress, naming.Resource(name, "eip")),
			})
		})
	if err != nil {
		return fmt.Errorf("failed to declare elastic IP: %w", err)
	}
	ctx.State.ElasticIP = eip
	return nil
}
