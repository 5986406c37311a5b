package dns

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiostack/aiostack/internal/cfn"
	"github.com/aiostack/aiostack/internal/config"
	"github.com/aiostack/aiostack/internal/synthesis"
	testutil "github.com/aiostack/aiostack/internal/testing"
	"github.com/aiostack/aiostack/internal/util/naming"
)

// newDNSContext returns a context holding a server handle backed by a
// declared elastic IP.
func newDNSContext(t *testing.T, cfg *config.Config) (*synthesis.Context, *testutil.RecordingObserver) {
	t.Helper()
	ctx, observer := testutil.NewSynthesisContext(t, cfg)
	eip := awsec2.NewCfnEIP(ctx.Stack, jsii.String(naming.ElasticIP), &awsec2.CfnEIPProps{Domain: jsii.String("vpc")})
	ctx.State.Server = &synthesis.ServerHandle{ElasticIPID: naming.ElasticIP, ElasticIP: eip}
	return ctx, observer
}

func TestProvisioner_Name(t *testing.T) {
	assert.Equal(t, "dns", NewProvisioner().Name())
}

func TestResolveZone(t *testing.T) {
	tests := []struct {
		name string
		rec  config.RecordConfig
		want Zone
	}{
		{"domain as zone", config.RecordConfig{Domain: "example.com"}, Zone{Name: "example.com."}},
		{"explicit name", config.RecordConfig{Domain: "shop.example.com", HostedZoneName: "example.com"}, Zone{Name: "example.com."}},
		{"explicit name with dot", config.RecordConfig{Domain: "shop.example.com", HostedZoneName: "example.com."}, Zone{Name: "example.com."}},
		{"id wins over name", config.RecordConfig{Domain: "example.com", HostedZoneID: "Z123", HostedZoneName: "example.com"}, Zone{ID: "Z123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveZone(tt.rec))
		})
	}
}

func TestInferZone(t *testing.T) {
	tests := []struct {
		domain  string
		want    string
		wantErr bool
	}{
		{"example.com", "example.com.", false},
		{"app.example.com", "example.com.", false},
		{"api.dev.example.com", "dev.example.com.", false},
		{"deep.app.example.com.", "app.example.com.", false},
		{"app.example.co.uk", "example.co.uk.", false},
		{"example.co.uk", "example.co.uk.", false},
		{"App.Example.COM", "example.com.", false},
		{"com", "", true},
		{"co.uk", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			zone, err := InferZone(tt.domain)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Zone{Name: tt.want}, zone)
		})
	}
}

func TestDeclareRecords_DefaultZone(t *testing.T) {
	ctx, _ := newDNSContext(t, testutil.NewConfigBuilder().Build())

	require.NoError(t, DeclareRecords(ctx, *ctx.State.Server, config.RecordConfig{Domain: "example.com"}))
	tpl := testutil.Synth(t, ctx)

	bareID, wwwID := naming.Record("example.com"), naming.WWWRecord("example.com")
	assert.Equal(t, []string{bareID, wwwID}, tpl.ResourcesOfType(cfn.TypeRecordSet))

	bare := testutil.MustProperties(t, tpl, bareID)
	assert.Equal(t, "example.com.", bare["Name"])
	assert.Equal(t, "A", bare["Type"])
	assert.Equal(t, "60", bare["TTL"])
	assert.Equal(t, "example.com.", bare["HostedZoneName"])
	assert.NotContains(t, bare, "HostedZoneId")
	assert.Equal(t, []any{testutil.Ref(naming.ElasticIP)}, bare["ResourceRecords"])

	www := testutil.MustProperties(t, tpl, wwwID)
	assert.Equal(t, "www.example.com.", www["Name"])
	assert.Equal(t, "60", www["TTL"])
	assert.Equal(t, []any{testutil.Ref(naming.ElasticIP)}, www["ResourceRecords"])
}

func TestDeclareRecords_ExplicitZoneID(t *testing.T) {
	ctx, _ := newDNSContext(t, testutil.NewConfigBuilder().Build())

	rec := config.RecordConfig{Domain: "shop.example.com", HostedZoneID: "Z0123456789"}
	require.NoError(t, DeclareRecords(ctx, *ctx.State.Server, rec))

	bare := testutil.MustProperties(t, testutil.Synth(t, ctx), naming.Record("shop.example.com"))
	assert.Equal(t, "Z0123456789", bare["HostedZoneId"])
	assert.NotContains(t, bare, "HostedZoneName")
	assert.Equal(t, "shop.example.com.", bare["Name"])
}

func TestDeclareRecords_Duplicate(t *testing.T) {
	ctx, _ := newDNSContext(t, testutil.NewConfigBuilder().Build())
	rec := config.RecordConfig{Domain: "example.com"}

	require.NoError(t, DeclareRecords(ctx, *ctx.State.Server, rec))
	err := DeclareRecords(ctx, *ctx.State.Server, rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to declare record example.com.")
}

func TestDeclareRecords_SeparatorVariantsDoNotCollide(t *testing.T) {
	ctx, _ := newDNSContext(t, testutil.NewConfigBuilder().Build())

	require.NoError(t, DeclareRecords(ctx, *ctx.State.Server, config.RecordConfig{Domain: "my-site.com"}))
	require.NoError(t, DeclareRecords(ctx, *ctx.State.Server, config.RecordConfig{Domain: "my.site.com"}))

	tpl := testutil.Synth(t, ctx)
	assert.Len(t, tpl.ResourcesOfType(cfn.TypeRecordSet), 4)
	assert.Equal(t, "my-site.com.", testutil.MustProperties(t, tpl, naming.Record("my-site.com"))["Name"])
	assert.Equal(t, "my.site.com.", testutil.MustProperties(t, tpl, naming.Record("my.site.com"))["Name"])
}

func TestSynthesize_RequiresServer(t *testing.T) {
	ctx, _ := testutil.NewSynthesisContext(t, testutil.NewConfigBuilder().Build())
	assert.ErrorIs(t, NewProvisioner().Synthesize(ctx), ErrNoServer)
}

func TestSynthesize_RecordDefinitions(t *testing.T) {
	cfg := testutil.NewConfigBuilder().
		WithRecord(config.RecordConfig{Domain: "example.com"}).
		WithRecord(config.RecordConfig{Domain: "example.org", HostedZoneName: "example.org"}).
		Build()
	ctx, _ := newDNSContext(t, cfg)

	require.NoError(t, NewProvisioner().Synthesize(ctx))
	assert.Len(t, testutil.Synth(t, ctx).ResourcesOfType(cfn.TypeRecordSet), 4)
}

func TestSynthesize_ManagedAppRecords(t *testing.T) {
	cfg := testutil.NewConfigBuilder().
		WithApp("shop", 3000, true, "shop.example.co.uk", "store.example.co.uk").
		WithApp("blog", 4000, true, "blog.example.com").
		Build()
	ctx, observer := newDNSContext(t, cfg)

	require.NoError(t, NewProvisioner().Synthesize(ctx))
	tpl := testutil.Synth(t, ctx)

	storeID := naming.AppRecord("shop", "store.example.co.uk")
	blogID := naming.AppRecord("blog", "blog.example.com")
	assert.ElementsMatch(t, []string{
		blogID,
		naming.AppRecord("shop", "shop.example.co.uk"),
		storeID,
	}, tpl.ResourcesOfType(cfn.TypeRecordSet))

	store := testutil.MustProperties(t, tpl, storeID)
	assert.Equal(t, "store.example.co.uk.", store["Name"])
	assert.Equal(t, "example.co.uk.", store["HostedZoneName"])
	assert.Equal(t, []any{testutil.Ref(naming.ElasticIP)}, store["ResourceRecords"])

	blog := testutil.MustProperties(t, tpl, blogID)
	assert.Equal(t, "example.com.", blog["HostedZoneName"])

	assert.Empty(t, observer.EventsOfType(synthesis.EventValidationWarning))
}

func TestSynthesize_AppIDBoundariesDoNotCollide(t *testing.T) {
	cfg := testutil.NewConfigBuilder().
		WithApp("a-b", 80, true, "x.com").
		WithApp("a", 80, true, "b.x.com").
		Build()
	ctx, _ := newDNSContext(t, cfg)

	require.NoError(t, NewProvisioner().Synthesize(ctx))
	assert.Len(t, testutil.Synth(t, ctx).ResourcesOfType(cfn.TypeRecordSet), 2)
}

func TestSynthesize_UnmanagedAppsWarn(t *testing.T) {
	cfg := testutil.NewConfigBuilder().
		WithApp("shop", 3000, false, "shop.example.com").
		Build()
	ctx, observer := newDNSContext(t, cfg)

	require.NoError(t, NewProvisioner().Synthesize(ctx))

	assert.Zero(t, ctx.Declared())
	warnings := observer.EventsOfType(synthesis.EventValidationWarning)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "manage_records is off")
}

func TestSynthesize_AppZoneInferenceFails(t *testing.T) {
	cfg := testutil.NewConfigBuilder().WithApp("bad", 80, true, "localhost").Build()
	ctx, _ := newDNSContext(t, cfg)

	err := NewProvisioner().Synthesize(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `app "bad"`)
}
