package compute

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiostack/aiostack/internal/cfn"
	"github.com/aiostack/aiostack/internal/config"
	"github.com/aiostack/aiostack/internal/synthesis"
	"github.com/aiostack/aiostack/internal/synthesis/infrastructure"
	testutil "github.com/aiostack/aiostack/internal/testing"
	"github.com/aiostack/aiostack/internal/util/labels"
	"github.com/aiostack/aiostack/internal/util/naming"
)

// newComputeContext returns a context on which the infrastructure phase
// already ran.
func newComputeContext(t *testing.T, cfg *config.Config) (*synthesis.Context, *testutil.RecordingObserver) {
	t.Helper()
	ctx, observer := testutil.NewSynthesisContext(t, cfg)
	require.NoError(t, infrastructure.NewProvisioner().Synthesize(ctx))
	return ctx, observer
}

// synthesizeServer runs the compute phase and renders the template.
func synthesizeServer(t *testing.T, cfg *config.Config) (*synthesis.Context, *cfn.Template) {
	t.Helper()
	ctx, _ := newComputeContext(t, cfg)
	require.NoError(t, NewProvisioner().Synthesize(ctx))
	return ctx, testutil.Synth(t, ctx)
}

func TestProvisioner_Name(t *testing.T) {
	assert.Equal(t, "compute", NewProvisioner().Name())
}

func TestSynthesize_RequiresInfrastructure(t *testing.T) {
	ctx, _ := testutil.NewSynthesisContext(t, testutil.NewConfigBuilder().Build())

	err := NewProvisioner().Synthesize(ctx)
	assert.True(t, errors.Is(err, ErrInfrastructureMissing))
	assert.Zero(t, ctx.Declared())
}

func TestSynthesize_DeclaresServer(t *testing.T) {
	ctx, tpl := synthesizeServer(t, testutil.NewConfigBuilder().Build())

	assert.Equal(t, []string{naming.Instance}, tpl.ResourcesOfType(cfn.TypeInstance))
	assert.Equal(t, []string{naming.Role}, tpl.ResourcesOfType(cfn.TypeRole))
	assert.Equal(t, []string{naming.InstanceProfile}, tpl.ResourcesOfType(cfn.TypeInstanceProfile))
	assert.Equal(t, []string{naming.ElasticIPAssociation}, tpl.ResourcesOfType(cfn.TypeEIPAssociation))
	assert.Len(t, tpl.Outputs, 2)

	require.NotNil(t, ctx.State.Server)
	handle := ctx.State.Server
	assert.Equal(t, naming.Instance, handle.InstanceID)
	assert.Equal(t, naming.SecurityGroup, handle.SecurityGroupID)
	assert.Equal(t, naming.ElasticIP, handle.ElasticIPID)
	assert.Equal(t, testutil.Ref(naming.ElasticIP), testutil.Resolve(ctx, handle.PublicAddress()))
	assert.Equal(t, testutil.Ref(naming.Instance), testutil.Resolve(ctx, handle.Instance.Ref()))
}

func TestProvisionImageParameter(t *testing.T) {
	cfg := testutil.NewConfigBuilder().Build()
	cfg.Server.ImageParameter = "/aws/service/ami-amazon-linux-latest/al2023-ami-kernel-default-x86_64"
	ctx, _ := newComputeContext(t, cfg)

	_, err := NewProvisioner().ProvisionImageParameter(ctx)
	require.NoError(t, err)

	param := testutil.Synth(t, ctx).Parameters[naming.ImageParameter]
	assert.Equal(t, cfn.TypeImageIDParameter, param.Type)
	assert.Equal(t, cfg.Server.ImageParameter, param.Default)

	_, err = NewProvisioner().ProvisionImageParameter(ctx)
	assert.ErrorContains(t, err, "duplicate logical ID")
}

func TestProvisionInstance(t *testing.T) {
	cfg := testutil.NewConfigBuilder().
		WithKeyPair("ops-key").
		WithInstanceType("t4g.medium").
		Build()
	_, tpl := synthesizeServer(t, cfg)

	inst := testutil.MustProperties(t, tpl, naming.Instance)
	assert.Equal(t, "t4g.medium", inst["InstanceType"])
	assert.Equal(t, "ops-key", inst["KeyName"])
	assert.Equal(t, testutil.Ref(naming.ImageParameter), inst["ImageId"])
	assert.Equal(t, testutil.Ref(naming.InstanceProfile), inst["IamInstanceProfile"])
	assert.Equal(t, testutil.Ref(naming.PublicSubnet), inst["SubnetId"])
	assert.Equal(t, []any{testutil.GetAtt(naming.SecurityGroup, "GroupId")}, inst["SecurityGroupIds"])
	assert.Contains(t, inst["Tags"], testutil.Tag(labels.KeyName, "test-aio"))

	mappings, ok := inst["BlockDeviceMappings"].([]any)
	require.True(t, ok)
	require.Len(t, mappings, 1)
	vol := mappings[0].(map[string]any)
	assert.Equal(t, "/dev/xvda", vol["DeviceName"])
	assert.Equal(t, map[string]any{
		"VolumeSize":          float64(20),
		"VolumeType":          "gp3",
		"Encrypted":           true,
		"DeleteOnTermination": false,
	}, vol["Ebs"])

	assert.Equal(t, []string{naming.Role, naming.PublicDefaultRoute}, tpl.Resources[naming.Instance].DependsOn)
}

func TestProvisionInstance_ExistingNetwork(t *testing.T) {
	cfg := testutil.NewConfigBuilder().WithExistingNetwork("vpc-1", "subnet-1").Build()
	_, tpl := synthesizeServer(t, cfg)

	inst := testutil.MustProperties(t, tpl, naming.Instance)
	assert.Equal(t, "subnet-1", inst["SubnetId"])
	assert.Equal(t, []string{naming.Role}, tpl.Resources[naming.Instance].DependsOn)
}

func TestBuildUserData(t *testing.T) {
	tests := []struct {
		name     string
		commands []string
		want     []string
	}{
		{
			name:     "no commands",
			commands: nil,
			want: []string{
				"#!/bin/bash",
				"dnf update -y",
				"dnf install -y amazon-cloudwatch-agent",
				`echo "UserData complete"`,
			},
		},
		{
			name:     "commands keep their order",
			commands: []string{"dnf install -y docker", "systemctl enable --now docker", "docker run -d app"},
			want: []string{
				"#!/bin/bash",
				"dnf update -y",
				"dnf install -y docker",
				"systemctl enable --now docker",
				"docker run -d app",
				"dnf install -y amazon-cloudwatch-agent",
				`echo "UserData complete"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildUserData(tt.commands)
			assert.Equal(t, tt.want, strings.Split(got, "\n"))
		})
	}
}

func TestProvisionInstance_UserDataEncoded(t *testing.T) {
	_, tpl := synthesizeServer(t, testutil.NewConfigBuilder().WithUserData("echo hi").Build())

	inst := testutil.MustProperties(t, tpl, naming.Instance)
	data, err := json.Marshal(inst["UserData"])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `{"Fn::Base64":"#!/bin/bash\ndnf update -y\necho hi\n`))
}

func TestProvisionRole(t *testing.T) {
	cfg := testutil.NewConfigBuilder().
		WithInlinePolicy("ZetaAccess", []string{"sqs:SendMessage"}, []string{"*"}).
		WithInlinePolicy("AlphaAccess", []string{"ssm:GetParameter"}, []string{"arn:aws:ssm:*:*:parameter/app/*"}).
		Build()
	ctx, _ := newComputeContext(t, cfg)

	_, _, err := NewProvisioner().ProvisionRole(ctx)
	require.NoError(t, err)
	tpl := testutil.Synth(t, ctx)

	role := testutil.MustProperties(t, tpl, naming.Role)

	trust := role["AssumeRolePolicyDocument"].(map[string]any)
	assert.Equal(t, PolicyVersion, trust["Version"])
	stmt := trust["Statement"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"Service": "ec2.amazonaws.com"}, stmt["Principal"])
	assert.Equal(t, "sts:AssumeRole", stmt["Action"])

	managed, err := json.Marshal(role["ManagedPolicyArns"])
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"Fn::Join": ["", ["arn:", {"Ref": "AWS::Partition"}, ":iam::aws:policy/AmazonSSMManagedInstanceCore"]]},
		{"Fn::Join": ["", ["arn:", {"Ref": "AWS::Partition"}, ":iam::aws:policy/CloudWatchAgentServerPolicy"]]}
	]`, string(managed))

	policies := role["Policies"].([]any)
	require.Len(t, policies, 2)
	alpha := policies[0].(map[string]any)
	assert.Equal(t, "AlphaAccess", alpha["PolicyName"])
	assert.Equal(t, "ZetaAccess", policies[1].(map[string]any)["PolicyName"])

	doc := alpha["PolicyDocument"].(map[string]any)
	assert.Equal(t, PolicyVersion, doc["Version"])
	inline := doc["Statement"].([]any)[0].(map[string]any)
	assert.Equal(t, "Allow", inline["Effect"])
	assert.Equal(t, "ssm:GetParameter", inline["Action"])
	assert.Equal(t, "arn:aws:ssm:*:*:parameter/app/*", inline["Resource"])

	profile := testutil.MustProperties(t, tpl, naming.InstanceProfile)
	assert.Equal(t, []any{testutil.Ref(naming.Role)}, profile["Roles"])
}

func TestProvisionRole_NoInlinePolicies(t *testing.T) {
	ctx, _ := newComputeContext(t, testutil.NewConfigBuilder().Build())

	_, _, err := NewProvisioner().ProvisionRole(ctx)
	require.NoError(t, err)

	role := testutil.MustProperties(t, testutil.Synth(t, ctx), naming.Role)
	assert.NotContains(t, role, "Policies")
}

func TestProvisionRole_ArtifactBucket(t *testing.T) {
	ctx, _ := newComputeContext(t, testutil.NewConfigBuilder().WithArtifactBucket("my-artifacts").Build())

	_, _, err := NewProvisioner().ProvisionRole(ctx)
	require.NoError(t, err)

	role := testutil.MustProperties(t, testutil.Synth(t, ctx), naming.Role)
	policies := role["Policies"].([]any)
	require.Len(t, policies, 1)
	policy := policies[0].(map[string]any)
	assert.Equal(t, ArtifactBucketPolicy, policy["PolicyName"])

	stmt := policy["PolicyDocument"].(map[string]any)["Statement"].([]any)[0].(map[string]any)
	assert.ElementsMatch(t, []any{"s3:GetObject", "s3:ListBucket"}, stmt["Action"])

	data, err := json.Marshal(stmt["Resource"])
	require.NoError(t, err)
	assert.Contains(t, string(data), `":s3:::my-artifacts"`)
	assert.Contains(t, string(data), `":s3:::my-artifacts/*"`)
	assert.Contains(t, string(data), `"AWS::Partition"`)
}

func TestProvisionRole_ArtifactBucketConflict(t *testing.T) {
	cfg := testutil.NewConfigBuilder().
		WithArtifactBucket("my-artifacts").
		WithInlinePolicy(ArtifactBucketPolicy, []string{"s3:*"}, []string{"*"}).
		Build()
	ctx, _ := newComputeContext(t, cfg)

	_, _, err := NewProvisioner().ProvisionRole(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicts with the artifact bucket policy")
}

func TestProvisionAddressAssociation(t *testing.T) {
	_, tpl := synthesizeServer(t, testutil.NewConfigBuilder().Build())

	assoc := testutil.MustProperties(t, tpl, naming.ElasticIPAssociation)
	assert.Equal(t, testutil.GetAtt(naming.ElasticIP, "AllocationId"), assoc["AllocationId"])
	assert.Equal(t, testutil.Ref(naming.Instance), assoc["InstanceId"])
}

func TestProvisionOutputs(t *testing.T) {
	ctx, tpl := synthesizeServer(t, testutil.NewConfigBuilder().Build())

	eip := tpl.Outputs["AIOServerElasticIp"]
	assert.Equal(t, "Elastic IP of the AIO Server", eip.Description)
	assert.Equal(t, testutil.Ref(naming.ElasticIP), eip.Value)
	require.NotNil(t, eip.Export)
	assert.Equal(t, "AIOServerEip", eip.Export.Name)

	id := tpl.Outputs["AIOServerInstanceId"]
	assert.Equal(t, "Instance ID of the AIO Server", id.Description)
	assert.Equal(t, testutil.Ref(naming.Instance), id.Value)
	require.NotNil(t, id.Export)
	assert.Equal(t, "AIOServerInstanceId", id.Export.Name)

	err := NewProvisioner().ProvisionOutputs(ctx, ctx.State.Server.Instance)
	assert.ErrorContains(t, err, "duplicate logical ID")
}
