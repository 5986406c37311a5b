// Package config defines the aiostack configuration model.
//
// A [Config] describes one all-in-one server (instance size, key pair,
// user data, inline IAM policies), the network it lives in, and the DNS
// records that should point at it. It is loaded from YAML with [LoadFile],
// which applies defaults and validates what can be checked locally. Anything
// that can only be verified against the AWS account (key pair existence,
// hosted zones, instance type availability) is left to CloudFormation.
package config
