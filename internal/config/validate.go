package config

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"
)

// Sentinel validation errors.
var (
	ErrMissingKeyPair = errors.New("server.key_pair_name is required")
	ErrNoDomains      = errors.New("application has no domains")
)

var (
	// instanceTypeRegex checks the family.size shape, e.g. t4g.small or m7g.2xlarge.
	instanceTypeRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*\.[a-z0-9]+$`)

	// nameRegex limits deployment names to valid CloudFormation stack names.
	nameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]{0,62}$`)

	// domainLabelRegex matches one DNS label.
	domainLabelRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?$`)
)

// Validate checks the configuration for errors that can be detected without
// talking to AWS.
func (c *Config) Validate() error {
	if !nameRegex.MatchString(c.Name) {
		return fmt.Errorf("invalid name %q: must start with a letter and hold at most 63 letters, digits or hyphens", c.Name)
	}

	if err := c.validateServer(); err != nil {
		return fmt.Errorf("server validation failed: %w", err)
	}

	if err := c.validateNetwork(); err != nil {
		return fmt.Errorf("network validation failed: %w", err)
	}

	if err := c.validateRecords(); err != nil {
		return fmt.Errorf("record validation failed: %w", err)
	}

	if err := c.validateTags(); err != nil {
		return fmt.Errorf("tag validation failed: %w", err)
	}

	return nil
}

func (c *Config) validateServer() error {
	s := &c.Server
	if strings.TrimSpace(s.KeyPairName) == "" {
		return ErrMissingKeyPair
	}
	if !instanceTypeRegex.MatchString(s.InstanceType) {
		return fmt.Errorf("invalid instance_type %q", s.InstanceType)
	}
	if !strings.HasPrefix(s.ImageParameter, "/") {
		return fmt.Errorf("image_parameter %q must be an SSM parameter path", s.ImageParameter)
	}

	for _, name := range s.PolicyNames() {
		if err := validatePolicy(name, s.InlinePolicies[name]); err != nil {
			return err
		}
	}

	seenApps := make(map[string]bool)
	for i, app := range s.Apps {
		if app.ID == "" {
			return fmt.Errorf("apps[%d]: id is required", i)
		}
		if seenApps[app.ID] {
			return fmt.Errorf("apps[%d]: duplicate id %q", i, app.ID)
		}
		seenApps[app.ID] = true

		if len(app.Domains) == 0 {
			return fmt.Errorf("app %q: %w", app.ID, ErrNoDomains)
		}
		for _, d := range app.Domains {
			if err := ValidateDomain(d); err != nil {
				return fmt.Errorf("app %q: %w", app.ID, err)
			}
		}
		if app.Port < 0 || app.Port > 65535 {
			return fmt.Errorf("app %q: port %d out of range", app.ID, app.Port)
		}
	}
	return nil
}

func validatePolicy(name string, doc PolicyDocument) error {
	if len(doc.Statements) == 0 {
		return fmt.Errorf("inline policy %q has no statements", name)
	}
	for i, st := range doc.Statements {
		if st.Effect != EffectAllow && st.Effect != EffectDeny {
			return fmt.Errorf("inline policy %q statement %d: invalid effect %q", name, i, st.Effect)
		}
		if len(st.Actions) == 0 {
			return fmt.Errorf("inline policy %q statement %d: no actions", name, i)
		}
	}
	return nil
}

func (c *Config) validateNetwork() error {
	n := &c.Network
	if n.Existing != nil {
		if n.Existing.VPCID == "" || n.Existing.SubnetID == "" {
			return fmt.Errorf("existing network requires both vpc_id and subnet_id")
		}
		return nil
	}

	ip, ipNet, err := net.ParseCIDR(n.CIDR)
	if err != nil {
		return fmt.Errorf("invalid cidr %q: %w", n.CIDR, err)
	}
	if ip.To4() == nil {
		return fmt.Errorf("cidr %q must be IPv4", n.CIDR)
	}
	if !ip.Equal(ipNet.IP) {
		return fmt.Errorf("cidr %q is not a network address (did you mean %s?)", n.CIDR, ipNet.String())
	}
	prefix, _ := ipNet.Mask.Size()
	if prefix < MinVPCPrefix || prefix > MaxVPCPrefix {
		return fmt.Errorf("cidr %q: prefix must be between /%d and /%d", n.CIDR, MinVPCPrefix, MaxVPCPrefix)
	}
	return nil
}

func (c *Config) validateRecords() error {
	seen := make(map[string]bool)
	for i, r := range c.Records {
		if err := ValidateDomain(r.Domain); err != nil {
			return fmt.Errorf("records[%d]: %w", i, err)
		}
		key := strings.ToLower(r.Domain)
		if seen[key] {
			return fmt.Errorf("records[%d]: duplicate domain %q", i, r.Domain)
		}
		seen[key] = true
	}
	return nil
}

func (c *Config) validateTags() error {
	for k, v := range c.Tags {
		switch {
		case k == "" || len(k) > MaxTagKeyLength:
			return fmt.Errorf("tag key %q must be 1-%d characters", k, MaxTagKeyLength)
		case strings.HasPrefix(strings.ToLower(k), "aws:"):
			return fmt.Errorf("tag key %q uses the reserved aws: prefix", k)
		case strings.HasPrefix(k, ReservedTagPrefix) || k == "Name":
			return fmt.Errorf("tag key %q is set by aiostack", k)
		case len(v) > MaxTagValueLength:
			return fmt.Errorf("tag %q: value longer than %d characters", k, MaxTagValueLength)
		}
	}
	return nil
}

// ValidateDomain checks that d is a plausible fully qualified domain name
// without a trailing dot.
func ValidateDomain(d string) error {
	if d == "" {
		return fmt.Errorf("domain must not be empty")
	}
	if len(d) > 253 {
		return fmt.Errorf("domain %q is too long", d)
	}
	labels := strings.Split(strings.ToLower(d), ".")
	if len(labels) < 2 {
		return fmt.Errorf("domain %q must have at least two labels", d)
	}
	for _, label := range labels {
		if !domainLabelRegex.MatchString(label) {
			return fmt.Errorf("domain %q has invalid label %q", d, label)
		}
	}
	return nil
}
