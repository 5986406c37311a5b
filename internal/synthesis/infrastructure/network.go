package infrastructure

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/aiostack/aiostack/internal/cfn"
	"github.com/aiostack/aiostack/internal/synthesis"
	"github.com/aiostack/aiostack/internal/util/labels"
	"github.com/aiostack/aiostack/internal/util/naming"
)

const anyIPv4 = "0.0.0.0/0"

// ProvisionNetwork declares the public network or records the existing one.
func (p *Provisioner) ProvisionNetwork(ctx *synthesis.Context) error {
	netCfg := ctx.Config.Network

	if netCfg.UsesExistingNetwork() {
		ctx.Observer.Printf("[%s] Using existing VPC %s (subnet %s)", phase, netCfg.Existing.VPCID, netCfg.Existing.SubnetID)
		ctx.State.VPCID = jsii.String(netCfg.Existing.VPCID)
		ctx.State.SubnetID = jsii.String(netCfg.Existing.SubnetID)
		ctx.State.NetworkReady = nil
		return nil
	}

	subnetCIDR, err := netCfg.PublicSubnetCIDR()
	if err != nil {
		return fmt.Errorf("failed to calculate public subnet: %w", err)
	}
	ctx.Observer.Printf("[%s] Declaring VPC %s with public subnet %s", phase, netCfg.CIDR, subnetCIDR)

	name := ctx.Config.Name
	tags := func(component string) *[]*awscdk.CfnTag {
		return ctx.Tags(labels.ComponentNetwork, naming.Resource(name, component))
	}

	vpc, err := synthesis.Declare(ctx, phase, cfn.TypeVPC, naming.VPC,
		func(scope constructs.Construct, id *string) awsec2.CfnVPC {
			return awsec2.NewCfnVPC(scope, id, &awsec2.CfnVPCProps{
				CidrBlock:          jsii.String(netCfg.CIDR),
				EnableDnsHostnames: jsii.Bool(true),
				EnableDnsSupport:   jsii.Bool(true),
				InstanceTenancy:    jsii.String("default"),
				Tags:               tags("vpc"),
			})
		})
	if err != nil {
		return fmt.Errorf("failed to declare network: %w", err)
	}

	igw, err := synthesis.Declare(ctx, phase, cfn.TypeInternetGateway, naming.InternetGateway,
		func(scope constructs.Construct, id *string) awsec2.CfnInternetGateway {
			return awsec2.NewCfnInternetGateway(scope, id, &awsec2.CfnInternetGatewayProps{
				Tags: tags("igw"),
			})
		})
	if err != nil {
		return fmt.Errorf("failed to declare network: %w", err)
	}

	attachment, err := synthesis.Declare(ctx, phase, cfn.TypeVPCGatewayAttachment, naming.VPCGatewayAttachment,
		func(scope constructs.Construct, id *string) awsec2.CfnVPCGatewayAttachment {
			return awsec2.NewCfnVPCGatewayAttachment(scope, id, &awsec2.CfnVPCGatewayAttachmentProps{
				VpcId:             vpc.Ref(),
				InternetGatewayId: igw.Ref(),
			})
		})
	if err != nil {
		return fmt.Errorf("failed to declare network: %w", err)
	}

	subnet, err := synthesis.Declare(ctx, phase, cfn.TypeSubnet, naming.PublicSubnet,
		func(scope constructs.Construct, id *string) awsec2.CfnSubnet {
			return awsec2.NewCfnSubnet(scope, id, &awsec2.CfnSubnetProps{
				VpcId:               vpc.Ref(),
				CidrBlock:           jsii.String(subnetCIDR),
				AvailabilityZone:    awscdk.Fn_Select(jsii.Number(0), awscdk.Fn_GetAzs(jsii.String(""))),
				MapPublicIpOnLaunch: jsii.Bool(true),
				Tags:                tags("public"),
			})
		})
	if err != nil {
		return fmt.Errorf("failed to declare network: %w", err)
	}

	routeTable, err := synthesis.Declare(ctx, phase, cfn.TypeRouteTable, naming.PublicRouteTable,
		func(scope constructs.Construct, id *string) awsec2.CfnRouteTable {
			return awsec2.NewCfnRouteTable(scope, id, &awsec2.CfnRouteTableProps{
				VpcId: vpc.Ref(),
				Tags:  tags("public"),
			})
		})
	if err != nil {
		return fmt.Errorf("failed to declare network: %w", err)
	}

	_, err = synthesis.Declare(ctx, phase, cfn.TypeSubnetRouteTableAssociation, naming.PublicRouteAssociation,
		func(scope constructs.Construct, id *string) awsec2.CfnSubnetRouteTableAssociation {
			return awsec2.NewCfnSubnetRouteTableAssociation(scope, id, &awsec2.CfnSubnetRouteTableAssociationProps{
				RouteTableId: routeTable.Ref(),
				SubnetId:     subnet.Ref(),
			})
		})
	if err != nil {
		return fmt.Errorf("failed to declare network: %w", err)
	}

	route, err := synthesis.Declare(ctx, phase, cfn.TypeRoute, naming.PublicDefaultRoute,
		func(scope constructs.Construct, id *string) awsec2.CfnRoute {
			return awsec2.NewCfnRoute(scope, id, &awsec2.CfnRouteProps{
				RouteTableId:         routeTable.Ref(),
				DestinationCidrBlock: jsii.String(anyIPv4),
				GatewayId:            igw.Ref(),
			})
		})
	if err != nil {
		return fmt.Errorf("failed to declare network: %w", err)
	}
	// The route needs the gateway attached to the VPC first.
	route.AddDependency(attachment)

	ctx.State.VPCID = vpc.Ref()
	ctx.State.SubnetID = subnet.Ref()
	ctx.State.NetworkReady = route
	return nil
}
