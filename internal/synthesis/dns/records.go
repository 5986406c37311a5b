package dns

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/aiostack/aiostack/internal/cfn"
	"github.com/aiostack/aiostack/internal/config"
	"github.com/aiostack/aiostack/internal/synthesis"
	"github.com/aiostack/aiostack/internal/util/naming"
)

// Record settings shared by every declared record.
const (
	RecordType = "A"
	RecordTTL  = "60"
)

// DeclareRecords declares the bare and www A records for rec.Domain, both
// pointing at the server's elastic IP.
func DeclareRecords(ctx *synthesis.Context, handle synthesis.ServerHandle, rec config.RecordConfig) error {
	zone := ResolveZone(rec)
	ctx.Observer.Printf("[%s] Declaring records for %s in zone %s", phase, rec.Domain, zone)

	records := []struct {
		id   string
		name string
	}{
		{naming.Record(rec.Domain), FQDN(rec.Domain)},
		{naming.WWWRecord(rec.Domain), FQDN("www." + rec.Domain)},
	}
	for _, r := range records {
		if err := declareRecord(ctx, r.id, zone, r.name, handle); err != nil {
			return fmt.Errorf("failed to declare record %s: %w", r.name, err)
		}
	}
	return nil
}

func declareRecord(ctx *synthesis.Context, id string, zone Zone, name string, handle synthesis.ServerHandle) error {
	props := &awsroute53.CfnRecordSetProps{
		Name:            jsii.String(name),
		Type:            jsii.String(RecordType),
		Ttl:             jsii.String(RecordTTL),
		ResourceRecords: &[]*string{handle.PublicAddress()},
	}
	if zone.ID != "" {
		props.HostedZoneId = jsii.String(zone.ID)
	} else {
		props.HostedZoneName = jsii.String(zone.Name)
	}

	_, err := synthesis.Declare(ctx, phase, cfn.TypeRecordSet, id,
		func(scope constructs.Construct, id *string) awsroute53.CfnRecordSet {
			return awsroute53.NewCfnRecordSet(scope, id, props)
		})
	return err
}
