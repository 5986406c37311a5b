// Package infrastructure declares the network perimeter of the server.
//
// It declares either a single-AZ public network (VPC, internet gateway,
// public subnet and its default route) or reuses an existing VPC and subnet,
// then the security group admitting web traffic and the elastic IP that
// carries the server's stable public address.
package infrastructure
