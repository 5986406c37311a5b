package labels

// Standard tag keys for declared resources.
const (
	// KeyName is the tag the AWS console displays as the resource name.
	KeyName = "Name"

	// KeyDeployment identifies which deployment a resource belongs to
	KeyDeployment = "aiostack:deployment"

	// KeyComponent identifies the part of the server a resource implements
	KeyComponent = "aiostack:component"

	// KeyManagedBy identifies the management system
	KeyManagedBy = "aiostack:managed-by"
)

// Component values
const (
	ComponentNetwork  = "network"
	ComponentFirewall = "firewall"
	ComponentCompute  = "compute"
	ComponentAddress  = "address"
)

// ManagedByAIOStack is the default KeyManagedBy value.
const ManagedByAIOStack = "aiostack"

// LabelBuilder provides a fluent interface for building resource tags.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a new label builder with the deployment name pre-set.
func NewLabelBuilder(deployment string) *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyDeployment: deployment,
			KeyManagedBy:  ManagedByAIOStack,
		},
	}
}

// WithName sets the Name tag.
func (lb *LabelBuilder) WithName(name string) *LabelBuilder {
	lb.labels[KeyName] = name
	return lb
}

// WithComponent adds a component tag (e.g., "network", "compute").
func (lb *LabelBuilder) WithComponent(component string) *LabelBuilder {
	lb.labels[KeyComponent] = component
	return lb
}

// Merge adds all labels from the provided map. Later With calls win over
// merged keys.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	for k, v := range extra {
		lb.labels[k] = v
	}
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	result := make(map[string]string, len(lb.labels))
	for k, v := range lb.labels {
		result[k] = v
	}
	return result
}
