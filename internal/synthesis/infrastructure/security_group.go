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

// Web ports admitted from anywhere. Nothing else is reachable from outside;
// administrative access goes through Session Manager.
const (
	PortHTTP  = 80
	PortHTTPS = 443
)

// ProvisionSecurityGroup declares the server's security group.
func (p *Provisioner) ProvisionSecurityGroup(ctx *synthesis.Context) error {
	name := ctx.Config.Name
	ctx.Observer.Printf("[%s] Declaring security group %s...", phase, naming.Resource(name, "sg"))

	sg, err := synthesis.Declare(ctx, phase, cfn.TypeSecurityGroup, naming.SecurityGroup,
		func(scope constructs.Construct, id *string) awsec2.CfnSecurityGroup {
			return awsec2.NewCfnSecurityGroup(scope, id, &awsec2.CfnSecurityGroupProps{
				GroupDescription:     jsii.String("Security group for the AIO server " + name),
				VpcId:                ctx.State.VPCID,
				SecurityGroupIngress: buildIngressRules(),
				SecurityGroupEgress: &[]interface{}{
					&awsec2.CfnSecurityGroup_EgressProperty{
						CidrIp:      jsii.String(anyIPv4),
						Description: jsii.String("Allow all outbound traffic by default"),
						IpProtocol:  jsii.String("-1"),
					},
				},
				Tags: ctx.Tags(labels.ComponentFirewall, naming.Resource(name, "sg")),
			})
		})
	if err != nil {
		return fmt.Errorf("failed to declare security group: %w", err)
	}
	ctx.State.SecurityGroup = sg
	return nil
}

// buildIngressRules returns the HTTP and HTTPS rules.
func buildIngressRules() *[]interface{} {
	rules := make([]interface{}, 0, 2)
	for _, r := range []struct {
		port int
		desc string
	}{
		{PortHTTP, "Allow HTTP from anywhere"},
		{PortHTTPS, "Allow HTTPS from anywhere"},
	} {
		rules = append(rules, &awsec2.CfnSecurityGroup_IngressProperty{
			CidrIp:      jsii.String(anyIPv4),
			Description: jsii.String(r.desc),
			FromPort:    jsii.Number(r.port),
			IpProtocol:  jsii.String("tcp"),
			ToPort:      jsii.Number(r.port),
		})
	}
	return &rules
}
