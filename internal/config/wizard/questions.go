package wizard

import (
	"context"
	"net"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/aiostack/aiostack/internal/config"
)

var (
	// nameRegex mirrors the deployment name rule enforced by config.Validate.
	nameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]{0,62}$`)

	vpcIDRegex    = regexp.MustCompile(`^vpc-[0-9a-f]{8,17}$`)
	subnetIDRegex = regexp.MustCompile(`^subnet-[0-9a-f]{8,17}$`)
)

// runIdentityGroup prompts for the deployment name and key pair.
func runIdentityGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description("Used in resource tags and the template description").
				Placeholder(config.DefaultName).
				Value(&result.Name).
				Validate(validateName),
			huh.NewInput().
				Title("Key Pair Name").
				Description("An EC2 key pair that already exists in the target region").
				Placeholder("my-key").
				Value(&result.KeyPairName).
				Validate(validateKeyPair),
		).Title("Identity"),
	).RunWithContext(ctx)
}

// runServerGroup prompts for the instance type and artifact bucket.
func runServerGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Instance Type").
				Description("ARM (Graviton) sizes match the default arm64 image").
				Options(InstanceTypesToOptions()...).
				Value(&result.InstanceType),
			huh.NewInput().
				Title("Artifact Bucket (Optional)").
				Description("S3 bucket the server may read deployment artifacts from").
				Placeholder("leave empty for none").
				Value(&result.ArtifactBucket),
		).Title("Server"),
	).RunWithContext(ctx)
}

// runNetworkGroup prompts for network placement.
func runNetworkGroup(ctx context.Context, result *WizardResult) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Network").
				Description("Where the server is placed").
				Options(NetworkOptions...).
				Value(&result.NetworkMode),
		).Title("Network"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	if result.NetworkMode == NetworkExisting {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("VPC ID").
					Placeholder("vpc-0123456789abcdef0").
					Value(&result.VPCID).
					Validate(validateVPCID),
				huh.NewInput().
					Title("Public Subnet ID").
					Description("Must route 0.0.0.0/0 through an internet gateway").
					Placeholder("subnet-0123456789abcdef0").
					Value(&result.SubnetID).
					Validate(validateSubnetID),
			).Title("Existing Network"),
		).RunWithContext(ctx)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("VPC CIDR").
				Description("A /24 public subnet is carved from the start of this range").
				Placeholder(config.DefaultVPCCIDR).
				Value(&result.VPCCIDR).
				Validate(validateCIDR),
		).Title("New Network"),
	).RunWithContext(ctx)
}

// runRecordsGroup prompts for an optional domain.
func runRecordsGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Domain (Optional)").
				Description("Declares <domain> and www.<domain> A records in the hosted zone of the same name").
				Placeholder("example.com (or leave empty)").
				Value(&result.Domain).
				Validate(validateOptionalDomain),
		).Title("DNS Records"),
	).RunWithContext(ctx)
}

func validateName(s string) error {
	if s == "" {
		return errNameRequired
	}
	if !nameRegex.MatchString(s) {
		return errNameInvalid
	}
	return nil
}

func validateKeyPair(s string) error {
	if strings.TrimSpace(s) == "" {
		return errKeyPairRequired
	}
	return nil
}

func validateCIDR(s string) error {
	if s == "" {
		return errCIDRRequired
	}
	if _, _, err := net.ParseCIDR(s); err != nil {
		return errCIDRInvalid
	}
	return nil
}

func validateVPCID(s string) error {
	if !vpcIDRegex.MatchString(s) {
		return errVPCIDInvalid
	}
	return nil
}

func validateSubnetID(s string) error {
	if !subnetIDRegex.MatchString(s) {
		return errSubnetIDInvalid
	}
	return nil
}

func validateOptionalDomain(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return config.ValidateDomain(strings.TrimSpace(s))
}
