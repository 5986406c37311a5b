package testing

import (
	"context"
	"testing"
	"time"

	"github.com/aiostack/aiostack/internal/cfn"
	"github.com/aiostack/aiostack/internal/config"
	"github.com/aiostack/aiostack/internal/synthesis"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// NewSynthesisContext creates a synthesis context backed by a recording
// observer. The assembly directory is removed when the test ends.
func NewSynthesisContext(t *testing.T, cfg *config.Config) (*synthesis.Context, *RecordingObserver) {
	t.Helper()
	observer := NewRecordingObserver()
	ctx, err := synthesis.NewContext(TestContext(t), cfg, observer)
	if err != nil {
		t.Fatalf("failed to create synthesis context: %v", err)
	}
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx, observer
}

// Synth synthesizes the context's stack, failing the test on error.
func Synth(t *testing.T, ctx *synthesis.Context) *cfn.Template {
	t.Helper()
	tpl, err := ctx.Synth()
	if err != nil {
		t.Fatalf("failed to synthesize: %v", err)
	}
	return tpl
}

// MustProperties returns the properties of a declared resource, failing the
// test when the resource is missing.
func MustProperties(t *testing.T, tpl *cfn.Template, logicalID string) map[string]any {
	t.Helper()
	res, ok := tpl.Resources[logicalID]
	if !ok {
		t.Fatalf("resource %q not declared", logicalID)
	}
	return res.Properties
}

// Resolve renders a token, such as a construct reference, into its
// template form.
func Resolve(ctx *synthesis.Context, v any) any {
	return ctx.Stack.Resolve(v)
}

// Ref is the template form of a reference to a logical ID.
func Ref(logicalID string) map[string]any {
	return map[string]any{"Ref": logicalID}
}

// GetAtt is the template form of an attribute reference.
func GetAtt(logicalID, attribute string) map[string]any {
	return map[string]any{"Fn::GetAtt": []any{logicalID, attribute}}
}

// Tag is the template form of a resource tag.
func Tag(key, value string) map[string]any {
	return map[string]any{"Key": key, "Value": value}
}
