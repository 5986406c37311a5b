// Package synthesis provides shared types, interfaces, and orchestration for
// template synthesis.
//
// # Subpackages
//
//   - infrastructure/: Network, Security Group, Elastic IP
//   - compute/: Role, Instance Profile, Instance, Outputs
//   - dns/: Route 53 records for applications and record definitions
//
// # Core Types
//
// Context carries configuration, the CDK app and stack being built, state
// and observer. Declare adds a resource construct under its logical ID and
// Synth renders the stack to a template.
// Phase defines a synthesis step with Name() and Synthesize() methods.
// State accumulates references produced by each phase (network, security
// group, elastic IP, server handle).
package synthesis
