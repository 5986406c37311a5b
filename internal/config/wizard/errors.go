package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errNameRequired    = errors.New("name is required")
	errNameInvalid     = errors.New("name must be 1-63 alphanumeric characters or hyphens, starting with alphanumeric")
	errKeyPairRequired = errors.New("key pair name is required")
	errCIDRRequired    = errors.New("CIDR is required")
	errCIDRInvalid     = errors.New("invalid CIDR format (expected: x.x.x.x/xx)")
	errVPCIDInvalid    = errors.New("VPC ID must look like vpc-0123abcd")
	errSubnetIDInvalid = errors.New("subnet ID must look like subnet-0123abcd")
)
