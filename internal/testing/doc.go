// Package testing provides test utilities, builders, and fixtures for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for creating test configurations
//   - RecordingObserver: Observer that keeps every event for assertions
//   - NewSynthesisContext: Context wired with a fresh template and observer
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithKeyPair("ops").
//	    WithUserData("dnf install -y nginx").
//	    Build()
//
//	ctx, observer := testing.NewSynthesisContext(t, cfg)
package testing
