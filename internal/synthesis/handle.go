package synthesis

import "github.com/aws/aws-cdk-go/awscdk/v2/awsec2"

// ServerHandle is what a server definition hands to downstream definitions.
// The ID fields are logical IDs; the constructs resolve to deploy-time
// values when referenced.
type ServerHandle struct {
	InstanceID      string
	SecurityGroupID string
	ElasticIPID     string

	Instance      awsec2.CfnInstance
	SecurityGroup awsec2.CfnSecurityGroup
	ElasticIP     awsec2.CfnEIP
}

// PublicAddress resolves to the elastic IP address. It survives instance
// replacement, unlike the instance's own public IP.
func (h ServerHandle) PublicAddress() *string {
	return h.ElasticIP.Ref()
}
