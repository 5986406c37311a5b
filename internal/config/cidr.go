package config

import (
	"encoding/binary"
	"fmt"
	"net"
)

// CIDRSubnet calculates a subnet address given a network address, a netmask size increase, and a subnet number.
// This mimics the behavior of Terraform's cidrsubnet function.
//
// Note: Only IPv4 addresses are supported. IPv6 addresses will return an error.
func CIDRSubnet(prefix string, newbits int, netnum int) (string, error) {
	_, network, err := net.ParseCIDR(prefix)
	if err != nil {
		return "", fmt.Errorf("invalid CIDR prefix: %w", err)
	}

	if network.IP.To4() == nil {
		return "", fmt.Errorf("only IPv4 addresses are supported, got IPv6: %s", prefix)
	}

	maskSize, totalBits := network.Mask.Size()
	newMaskSize := maskSize + newbits

	if newMaskSize > totalBits {
		return "", fmt.Errorf("prefix extension of %d bits is too large for %s", newbits, prefix)
	}

	maxSubnets := 1 << newbits
	if netnum >= maxSubnets {
		return "", fmt.Errorf("subnet number %d exceeds max subnets %d", netnum, maxSubnets)
	}

	ipInt := uintFromIP(network.IP.To4())
	subnetSize := 1 << (totalBits - newMaskSize)
	// #nosec G115
	ipInt += uint64(netnum * subnetSize)

	return fmt.Sprintf("%s/%d", ipFromUint(ipInt).String(), newMaskSize), nil
}

// PublicSubnetCIDR returns the CIDR of the single public subnet carved out of
// the VPC range: the first block with SubnetPrefixExtension more mask bits.
func (n NetworkConfig) PublicSubnetCIDR() (string, error) {
	return CIDRSubnet(n.CIDR, SubnetPrefixExtension, 0)
}

// uintFromIP converts an IPv4 address to uint64.
func uintFromIP(ip net.IP) uint64 {
	if len(ip) == 16 {
		if ip4 := ip.To4(); ip4 != nil {
			return uint64(binary.BigEndian.Uint32(ip4))
		}
		return 0
	}
	return uint64(binary.BigEndian.Uint32(ip))
}

// ipFromUint converts a uint64 value back to an IPv4 address.
func ipFromUint(val uint64) net.IP {
	ip := make(net.IP, 4)
	// #nosec G115
	binary.BigEndian.PutUint32(ip, uint32(val))
	return ip
}
