package compute

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/aiostack/aiostack/internal/cfn"
	"github.com/aiostack/aiostack/internal/config"
	"github.com/aiostack/aiostack/internal/synthesis"
	"github.com/aiostack/aiostack/internal/util/labels"
	"github.com/aiostack/aiostack/internal/util/naming"
)

// IAM constants.
const (
	PolicyVersion = "2012-10-17"
	EC2Service    = "ec2.amazonaws.com"

	// ArtifactBucketPolicy is the inline policy granting read access to the
	// artifact bucket.
	ArtifactBucketPolicy = "ArtifactBucketRead"
)

// ManagedPolicies are attached to every instance role: Session Manager
// access and the CloudWatch agent.
var ManagedPolicies = []string{
	"AmazonSSMManagedInstanceCore",
	"CloudWatchAgentServerPolicy",
}

// ProvisionRole declares the instance role and the instance profile wrapping it.
func (p *Provisioner) ProvisionRole(ctx *synthesis.Context) (awsiam.CfnRole, awsiam.CfnInstanceProfile, error) {
	policies, err := buildInlinePolicies(ctx.Config.Server)
	if err != nil {
		return nil, nil, err
	}
	var inline interface{}
	if len(policies) > 0 {
		inline = &policies
	}

	managed := make([]*string, 0, len(ManagedPolicies))
	for _, name := range ManagedPolicies {
		managed = append(managed, awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String(name)).ManagedPolicyArn())
	}

	role, err := synthesis.Declare(ctx, phase, cfn.TypeRole, naming.Role,
		func(scope constructs.Construct, id *string) awsiam.CfnRole {
			return awsiam.NewCfnRole(scope, id, &awsiam.CfnRoleProps{
				AssumeRolePolicyDocument: trustPolicy(),
				ManagedPolicyArns:        &managed,
				Policies:                 inline,
				Tags:                     ctx.Tags(labels.ComponentCompute, naming.Resource(ctx.Config.Name, "role")),
			})
		})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to declare instance role: %w", err)
	}

	profile, err := synthesis.Declare(ctx, phase, cfn.TypeInstanceProfile, naming.InstanceProfile,
		func(scope constructs.Construct, id *string) awsiam.CfnInstanceProfile {
			return awsiam.NewCfnInstanceProfile(scope, id, &awsiam.CfnInstanceProfileProps{
				Roles: &[]*string{role.Ref()},
			})
		})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to declare instance profile: %w", err)
	}
	return role, profile, nil
}

// trustPolicy lets EC2 assume the role.
func trustPolicy() map[string]interface{} {
	return map[string]interface{}{
		"Version": PolicyVersion,
		"Statement": []interface{}{
			map[string]interface{}{
				"Effect":    config.EffectAllow,
				"Principal": map[string]interface{}{"Service": EC2Service},
				"Action":    "sts:AssumeRole",
			},
		},
	}
}

// buildInlinePolicies converts the configured inline policies, sorted by
// name, and appends the artifact bucket policy when a bucket is set.
func buildInlinePolicies(server config.ServerConfig) ([]interface{}, error) {
	policies := make([]interface{}, 0, len(server.InlinePolicies)+1)
	for _, name := range server.PolicyNames() {
		policies = append(policies, &awsiam.CfnRole_PolicyProperty{
			PolicyName:     jsii.String(name),
			PolicyDocument: convertPolicyDocument(server.InlinePolicies[name]),
		})
	}

	if server.ArtifactBucket != "" {
		if _, exists := server.InlinePolicies[ArtifactBucketPolicy]; exists {
			return nil, fmt.Errorf("inline policy %q conflicts with the artifact bucket policy", ArtifactBucketPolicy)
		}
		policies = append(policies, artifactBucketPolicy(server.ArtifactBucket))
	}
	return policies, nil
}

func convertPolicyDocument(doc config.PolicyDocument) awsiam.PolicyDocument {
	statements := make([]awsiam.PolicyStatement, 0, len(doc.Statements))
	for _, s := range doc.Statements {
		props := &awsiam.PolicyStatementProps{
			Effect:  effect(s.Effect),
			Actions: jsii.Strings(s.Actions...),
		}
		if s.Sid != "" {
			props.Sid = jsii.String(s.Sid)
		}
		if len(s.Resources) > 0 {
			props.Resources = jsii.Strings(s.Resources...)
		}
		statements = append(statements, awsiam.NewPolicyStatement(props))
	}
	return awsiam.NewPolicyDocument(&awsiam.PolicyDocumentProps{Statements: &statements})
}

func effect(e string) awsiam.Effect {
	if e == config.EffectDeny {
		return awsiam.Effect_DENY
	}
	return awsiam.Effect_ALLOW
}

func artifactBucketPolicy(bucket string) *awsiam.CfnRole_PolicyProperty {
	bucketARN := func(suffix string) *string {
		return awscdk.Fn_Join(jsii.String(""), &[]*string{
			jsii.String("arn:"),
			awscdk.Aws_PARTITION(),
			jsii.String(":s3:::" + bucket + suffix),
		})
	}

	read := awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Effect:    awsiam.Effect_ALLOW,
		Actions:   jsii.Strings("s3:GetObject", "s3:ListBucket"),
		Resources: &[]*string{bucketARN(""), bucketARN("/*")},
	})
	return &awsiam.CfnRole_PolicyProperty{
		PolicyName: jsii.String(ArtifactBucketPolicy),
		PolicyDocument: awsiam.NewPolicyDocument(&awsiam.PolicyDocumentProps{
			Statements: &[]awsiam.PolicyStatement{read},
		}),
	}
}
