// Package labels provides consistent tagging for declared AWS resources.
//
// All tags use the aiostack: key prefix and follow a builder pattern for
// constructing tag sets with deployment name, component and manager
// identification.
package labels
