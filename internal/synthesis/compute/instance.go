package compute

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/aiostack/aiostack/internal/cfn"
	"github.com/aiostack/aiostack/internal/synthesis"
	"github.com/aiostack/aiostack/internal/util/labels"
	"github.com/aiostack/aiostack/internal/util/naming"
)

// Boot volume settings. The volume outlives the instance.
const (
	BootDevice     = "/dev/xvda"
	BootVolumeSize = 20
	BootVolumeType = "gp3"
)

// ProvisionImageParameter declares the parameter the engine resolves to the
// latest image ID.
func (p *Provisioner) ProvisionImageParameter(ctx *synthesis.Context) (awscdk.CfnParameter, error) {
	if err := ctx.Reserve(naming.ImageParameter); err != nil {
		return nil, fmt.Errorf("failed to declare image parameter: %w", err)
	}
	return awscdk.NewCfnParameter(ctx.Stack, jsii.String(naming.ImageParameter), &awscdk.CfnParameterProps{
		Type:        jsii.String(cfn.TypeImageIDParameter),
		Default:     jsii.String(ctx.Config.Server.ImageParameter),
		Description: jsii.String("SSM parameter resolving to the server image"),
	}), nil
}

// ProvisionInstance declares the instance. It launches after the role
// exists and, for a self-built network, after the default route.
func (p *Provisioner) ProvisionInstance(ctx *synthesis.Context, image awscdk.CfnParameter, role awsiam.CfnRole, profile awsiam.CfnInstanceProfile) (awsec2.CfnInstance, error) {
	server := ctx.Config.Server
	ctx.Observer.Printf("[%s] Declaring %s instance with %d user data commands", phase, server.InstanceType, len(server.UserData))

	instance, err := synthesis.Declare(ctx, phase, cfn.TypeInstance, naming.Instance,
		func(scope constructs.Construct, id *string) awsec2.CfnInstance {
			return awsec2.NewCfnInstance(scope, id, &awsec2.CfnInstanceProps{
				BlockDeviceMappings: &[]interface{}{BootVolume()},
				IamInstanceProfile:  profile.Ref(),
				ImageId:             image.ValueAsString(),
				InstanceType:        jsii.String(server.InstanceType),
				KeyName:             jsii.String(server.KeyPairName),
				SecurityGroupIds:    &[]*string{ctx.State.SecurityGroup.AttrGroupId()},
				SubnetId:            ctx.State.SubnetID,
				UserData:            awscdk.Fn_Base64(jsii.String(BuildUserData(server.UserData))),
				Tags:                ctx.Tags(labels.ComponentCompute, ctx.Config.Name),
			})
		})
	if err != nil {
		return nil, fmt.Errorf("failed to declare instance: %w", err)
	}

	instance.AddDependency(role)
	if ctx.State.NetworkReady != nil {
		instance.AddDependency(ctx.State.NetworkReady)
	}
	return instance, nil
}

// BootVolume returns the root volume mapping.
func BootVolume() *awsec2.CfnInstance_BlockDeviceMappingProperty {
	return &awsec2.CfnInstance_BlockDeviceMappingProperty{
		DeviceName: jsii.String(BootDevice),
		Ebs: &awsec2.CfnInstance_EbsProperty{
			DeleteOnTermination: jsii.Bool(false),
			Encrypted:           jsii.Bool(true),
			VolumeSize:          jsii.Number(BootVolumeSize),
			VolumeType:          jsii.String(BootVolumeType),
		},
	}
}

// ProvisionAddressAssociation binds the elastic IP to the instance.
func (p *Provisioner) ProvisionAddressAssociation(ctx *synthesis.Context, instance awsec2.CfnInstance) error {
	_, err := synthesis.Declare(ctx, phase, cfn.TypeEIPAssociation, naming.ElasticIPAssociation,
		func(scope constructs.Construct, id *string) awsec2.CfnEIPAssociation {
			return awsec2.NewCfnEIPAssociation(scope, id, &awsec2.CfnEIPAssociationProps{
				AllocationId: ctx.State.ElasticIP.AttrAllocationId(),
				InstanceId:   instance.Ref(),
			})
		})
	if err != nil {
		return fmt.Errorf("failed to associate elastic IP: %w", err)
	}
	return nil
}
