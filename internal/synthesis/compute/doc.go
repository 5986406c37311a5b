// Package compute declares the server instance and its identity.
//
// The compute phase declares the image parameter, the instance role and
// profile, the instance with its boot volume and user data, the elastic IP
// association and the stack outputs. It relies on the security group,
// subnet and elastic IP recorded in the synthesis state by the
// infrastructure phase and publishes a ServerHandle for record definitions.
package compute
