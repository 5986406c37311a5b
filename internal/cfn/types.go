package cfn

// Resource type names.
const (
	TypeVPC                         = "AWS::EC2::VPC"
	TypeInternetGateway             = "AWS::EC2::InternetGateway"
	TypeVPCGatewayAttachment        = "AWS::EC2::VPCGatewayAttachment"
	TypeSubnet                      = "AWS::EC2::Subnet"
	TypeRouteTable                  = "AWS::EC2::RouteTable"
	TypeRoute                       = "AWS::EC2::Route"
	TypeSubnetRouteTableAssociation = "AWS::EC2::SubnetRouteTableAssociation"
	TypeSecurityGroup               = "AWS::EC2::SecurityGroup"
	TypeInstance                    = "AWS::EC2::Instance"
	TypeEIP                         = "AWS::EC2::EIP"
	TypeEIPAssociation              = "AWS::EC2::EIPAssociation"
	TypeRole                        = "AWS::IAM::Role"
	TypeInstanceProfile             = "AWS::IAM::InstanceProfile"
	TypeRecordSet                   = "AWS::Route53::RecordSet"

	// TypeImageIDParameter resolves an SSM public parameter to an AMI ID.
	TypeImageIDParameter = "AWS::SSM::Parameter::Value<AWS::EC2::Image::Id>"
)
