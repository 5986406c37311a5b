package dns

import (
	"fmt"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/aiostack/aiostack/internal/config"
)

// Zone identifies a hosted zone. Exactly one field is set.
type Zone struct {
	ID   string
	Name string
}

// String renders the zone for log lines.
func (z Zone) String() string {
	if z.ID != "" {
		return z.ID
	}
	return z.Name
}

// ResolveZone picks the zone of a record definition: the explicit ID, else
// the explicit name, else the domain itself.
func ResolveZone(rec config.RecordConfig) Zone {
	switch {
	case rec.HostedZoneID != "":
		return Zone{ID: rec.HostedZoneID}
	case rec.HostedZoneName != "":
		return Zone{Name: FQDN(rec.HostedZoneName)}
	default:
		return Zone{Name: FQDN(rec.Domain)}
	}
}

// InferZone guesses the hosted zone of domain by dropping its leftmost
// label, so "api.dev.example.com" maps to "dev.example.com.". When that
// would leave the public suffix or less, the registrable domain (eTLD+1) is
// used instead: "app.example.co.uk" and "example.co.uk" both map to
// "example.co.uk.".
func InferZone(domain string) (Zone, error) {
	name := strings.ToLower(strings.TrimSuffix(domain, "."))
	registrable, err := publicsuffix.EffectiveTLDPlusOne(name)
	if err != nil {
		return Zone{}, fmt.Errorf("failed to infer hosted zone for %q: %w", domain, err)
	}

	if _, parent, ok := strings.Cut(name, "."); ok {
		if parent == registrable || strings.HasSuffix(parent, "."+registrable) {
			return Zone{Name: FQDN(parent)}, nil
		}
	}
	return Zone{Name: FQDN(registrable)}, nil
}

// FQDN returns domain with exactly one trailing dot.
func FQDN(domain string) string {
	return strings.TrimSuffix(domain, ".") + "."
}
