// Package stack assembles the complete template of one all-in-one server.
//
// The Synthesizer runs the synthesis phases in order over a shared context:
//  1. Infrastructure - Network, security group, elastic IP
//  2. Compute - Image parameter, role, instance, address association, outputs
//  3. DNS - Managed application records, then record definitions
//
// # Usage
//
//	tpl, handle, err := stack.Synthesize(ctx, cfg, observer)
//
// Each phase declares AWS CDK L1 constructs on one stack; the app is then
// synthesized into a throwaway cloud assembly and the stack's template is
// read back. The CDK runs on the jsii runtime, so Node.js must be on PATH.
// The same config always yields the same template bytes.
package stack
