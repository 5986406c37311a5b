package wizard

import "github.com/charmbracelet/huh"

// InstanceTypeOption represents an EC2 instance type offered by the wizard.
type InstanceTypeOption struct {
	Value       string
	Description string
}

// InstanceTypes contains the Graviton burstable sizes suited to a single
// application server.
var InstanceTypes = []InstanceTypeOption{
	{Value: "t4g.micro", Description: "2 vCPU, 1GB RAM"},
	{Value: "t4g.small", Description: "2 vCPU, 2GB RAM (default)"},
	{Value: "t4g.medium", Description: "2 vCPU, 4GB RAM"},
	{Value: "t4g.large", Description: "2 vCPU, 8GB RAM"},
	{Value: "t4g.xlarge", Description: "4 vCPU, 16GB RAM"},
}

// Network placement choices.
const (
	NetworkNew      = "new"
	NetworkExisting = "existing"
)

// NetworkOptions contains the network placement choices.
var NetworkOptions = []huh.Option[string]{
	huh.NewOption("Create a new VPC (Recommended)", NetworkNew),
	huh.NewOption("Use an existing VPC and public subnet", NetworkExisting),
}

// InstanceTypesToOptions converts InstanceTypes to huh options.
func InstanceTypesToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(InstanceTypes))
	for i, it := range InstanceTypes {
		opts[i] = huh.NewOption(it.Value+" - "+it.Description, it.Value)
	}
	return opts
}
