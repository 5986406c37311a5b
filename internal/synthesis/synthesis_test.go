package synthesis

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiostack/aiostack/internal/cfn"
	"github.com/aiostack/aiostack/internal/config"
)

// MockObserver is a test implementation of Observer that records events.
type MockObserver struct {
	events   []Event
	messages []string
}

func (m *MockObserver) Printf(format string, _ ...any) {
	m.messages = append(m.messages, format)
}

func (m *MockObserver) Event(event Event) {
	m.events = append(m.events, event)
}

func (m *MockObserver) WithFields(_ map[string]string) Observer {
	return m
}

// phaseFunc adapts a function to the Phase interface.
type phaseFunc struct {
	name string
	fn   func(*Context) error
}

func (p phaseFunc) Name() string                  { return p.name }
func (p phaseFunc) Synthesize(ctx *Context) error { return p.fn(ctx) }

func newTestContext(t *testing.T) (*Context, *MockObserver) {
	t.Helper()
	observer := &MockObserver{}
	ctx, err := NewContext(context.Background(), &config.Config{Name: "test-aio"}, observer)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx, observer
}

func declareEIP(t *testing.T, ctx *Context, id string) (awsec2.CfnEIP, error) {
	t.Helper()
	return Declare(ctx, "test", cfn.TypeEIP, id, func(scope constructs.Construct, id *string) awsec2.CfnEIP {
		return awsec2.NewCfnEIP(scope, id, &awsec2.CfnEIPProps{Domain: jsii.String("vpc")})
	})
}

func TestNewContext(t *testing.T) {
	ctx, _ := newTestContext(t)

	require.NotNil(t, ctx.Stack)
	require.NotNil(t, ctx.State)
	assert.Nil(t, ctx.State.Server)
	assert.Zero(t, ctx.Declared())

	tpl, err := ctx.Synth()
	require.NoError(t, err)
	assert.Equal(t, cfn.FormatVersion, tpl.AWSTemplateFormatVersion)
	assert.Equal(t, "All-in-one application server test-aio (aiostack)", tpl.Description)
	assert.Empty(t, tpl.Parameters, "no bootstrap parameter")
}

func TestNewContext_DefaultObserver(t *testing.T) {
	ctx, err := NewContext(context.Background(), &config.Config{Name: "x"}, nil)
	require.NoError(t, err)
	defer ctx.Close()
	assert.IsType(t, &ConsoleObserver{}, ctx.Observer)
}

func TestNewContext_RequiresName(t *testing.T) {
	_, err := NewContext(context.Background(), &config.Config{}, nil)
	assert.Error(t, err)

	_, err = NewContext(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestContext_CloseRemovesAssembly(t *testing.T) {
	ctx, err := NewContext(context.Background(), &config.Config{Name: "x"}, &MockObserver{})
	require.NoError(t, err)

	_, err = ctx.Synth()
	require.NoError(t, err)
	require.DirExists(t, ctx.outdir)

	require.NoError(t, ctx.Close())
	assert.NoDirExists(t, ctx.outdir)
}

func TestDeclare(t *testing.T) {
	ctx, observer := newTestContext(t)

	eip, err := declareEIP(t, ctx, "Eip")
	require.NoError(t, err)
	require.NotNil(t, eip)
	assert.Equal(t, 1, ctx.Declared())
	require.Len(t, observer.events, 1)
	assert.Equal(t, EventResourceDeclared, observer.events[0].Type)
	assert.Equal(t, "Eip", observer.events[0].Resource)

	_, err = declareEIP(t, ctx, "Eip")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate logical ID")
	assert.Equal(t, 1, ctx.Declared())
	require.Len(t, observer.events, 2)
	assert.Equal(t, EventResourceFailed, observer.events[1].Type)

	_, err = declareEIP(t, ctx, "")
	assert.Error(t, err)

	tpl, err := ctx.Synth()
	require.NoError(t, err)
	assert.Equal(t, []string{"Eip"}, tpl.ResourcesOfType(cfn.TypeEIP))
}

func TestContext_Tags(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.Config.Tags = map[string]string{"team": "web", "cost-center": "42"}

	var got []string
	for _, tag := range *ctx.Tags("compute", "test-aio-role") {
		got = append(got, *tag.Key+"="+*tag.Value)
	}
	assert.Equal(t, []string{
		"Name=test-aio-role",
		"aiostack:component=compute",
		"aiostack:deployment=test-aio",
		"aiostack:managed-by=aiostack",
		"cost-center=42",
		"team=web",
	}, got)
}

func TestServerHandle_PublicAddress(t *testing.T) {
	ctx, _ := newTestContext(t)
	eip, err := declareEIP(t, ctx, "Eip")
	require.NoError(t, err)

	h := ServerHandle{ElasticIPID: "Eip", ElasticIP: eip}
	assert.Equal(t, map[string]any{"Ref": "Eip"}, ctx.Stack.Resolve(h.PublicAddress()))
}

func TestPipeline_Run_RecoversConstructPanics(t *testing.T) {
	ctx, _ := newTestContext(t)

	err := NewPipeline(phaseFunc{"compute", func(_ *Context) error { panic("invalid construct") }}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compute phase failed: invalid construct")
}

func TestPipeline_Run_Order(t *testing.T) {
	ctx, observer := newTestContext(t)
	var executed []string

	pipeline := NewPipeline(
		phaseFunc{"infrastructure", func(_ *Context) error { executed = append(executed, "infrastructure"); return nil }},
		phaseFunc{"compute", func(_ *Context) error { executed = append(executed, "compute"); return nil }},
		phaseFunc{"dns", func(_ *Context) error { executed = append(executed, "dns"); return nil }},
	)

	require.NoError(t, pipeline.Run(ctx))
	assert.Equal(t, []string{"infrastructure", "compute", "dns"}, executed)

	var started, completed int
	for _, e := range observer.events {
		switch e.Type {
		case EventPhaseStarted:
			started++
		case EventPhaseCompleted:
			completed++
		}
	}
	assert.Equal(t, 3, started)
	assert.Equal(t, 3, completed)
}

func TestPipeline_Run_StopsAtFailure(t *testing.T) {
	ctx, observer := newTestContext(t)
	boom := errors.New("boom")
	ranAfter := false

	err := RunPhases(ctx, []Phase{
		phaseFunc{"compute", func(_ *Context) error { return boom }},
		phaseFunc{"dns", func(_ *Context) error { ranAfter = true; return nil }},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "compute phase failed")
	assert.False(t, ranAfter)
	assert.Equal(t, EventPhaseFailed, observer.events[len(observer.events)-1].Type)
}

func TestPipeline_Run_Canceled(t *testing.T) {
	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	ctx, err := NewContext(cctx, &config.Config{Name: "x"}, &MockObserver{})
	require.NoError(t, err)
	defer ctx.Close()

	err = NewPipeline(phaseFunc{"infrastructure", func(_ *Context) error { return nil }}).Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatEvent(t *testing.T) {
	got := FormatEvent(Event{
		Type:     EventResourceDeclared,
		Phase:    "compute",
		Resource: "Instance",
		Message:  "AWS::EC2::Instance declared",
		Fields:   map[string]string{"type": "AWS::EC2::Instance", "deployment": "aio"},
	})
	assert.Equal(t,
		"resource.declared [compute] resource=Instance AWS::EC2::Instance declared (deployment=aio, type=AWS::EC2::Instance)",
		got)
}

func TestConsoleObserver_WritesToLogger(t *testing.T) {
	var buf bytes.Buffer
	observer := NewLoggerObserver(log.New(&buf, "", 0))

	observer.WithFields(map[string]string{"deployment": "aio"}).Event(Event{
		Type:      EventValidationWarning,
		Phase:     "dns",
		Message:   "apps ignored",
		Timestamp: time.Unix(0, 0),
	})
	observer.Printf("hello %s", "world")

	out := buf.String()
	assert.Contains(t, out, "validation.warning [dns] apps ignored (deployment=aio)")
	assert.Contains(t, out, "hello world")
}
