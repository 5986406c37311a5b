package naming

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// Logical IDs of the fixed server resources.
const (
	ImageParameter       = "LatestImageId"
	SecurityGroup        = "SecurityGroup"
	Role                 = "InstanceRole"
	InstanceProfile      = "InstanceProfile"
	Instance             = "Instance"
	ElasticIP            = "Eip"
	ElasticIPAssociation = "EipAssociation"

	VPC                    = "Vpc"
	InternetGateway        = "InternetGateway"
	VPCGatewayAttachment   = "VpcGatewayAttachment"
	PublicSubnet           = "PublicSubnet1"
	PublicRouteTable       = "PublicSubnet1RouteTable"
	PublicRouteAssociation = "PublicSubnet1RouteTableAssociation"
	PublicDefaultRoute     = "PublicSubnet1DefaultRoute"
)

// Stack outputs and their global export names.
const (
	OutputElasticIP  = "AIOServerElasticIp"
	OutputInstanceID = "AIOServerInstanceId"

	ExportElasticIP  = "AIOServerEip"
	ExportInstanceID = "AIOServerInstanceId"
)

// LogicalID joins parts into a PascalCase alphanumeric identifier.
// Non-alphanumeric characters act as word separators.
func LogicalID(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		upperNext := true
		for _, r := range part {
			if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
				upperNext = true
				continue
			}
			if upperNext {
				r = unicode.ToUpper(r)
				upperNext = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// maxStem bounds the readable part of a derived logical ID so that the
// whole ID stays within the 255 characters CloudFormation accepts.
const maxStem = 200

// Record is the logical ID of the bare-domain A record of a record definition.
func Record(domain string) string {
	return derived("ARecord", domain)
}

// WWWRecord is the logical ID of the www A record of a record definition.
func WWWRecord(domain string) string {
	return derived("WWWARecord", domain)
}

// AppRecord is the logical ID of an application record declared by the server itself.
func AppRecord(appID, domain string) string {
	return derived("AppRecord", appID, domain)
}

// derived builds a readable logical ID from parts and appends a digest of
// the exact parts. LogicalID alone is not injective ("my-site.com" and
// "my.site.com" share a stem); the digest keeps distinct inputs apart.
func derived(prefix string, parts ...string) string {
	stem := prefix + LogicalID(parts...)
	if len(stem) > maxStem {
		stem = stem[:maxStem]
	}
	return stem + digest(parts...)
}

// digest is a short stable hash of parts. Parts are compared
// case-insensitively and without a trailing dot, like DNS names.
func digest(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(strings.ToLower(strings.TrimSuffix(p, "."))))
		h.Write([]byte{0})
	}
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil))[:8])
}

// Resource is the Name tag value for a component of a deployment.
func Resource(deployment, component string) string {
	return fmt.Sprintf("%s-%s", deployment, component)
}
