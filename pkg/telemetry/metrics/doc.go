// Package metrics exposes Prometheus metrics for the loading pipeline.
//
// Metrics are registered against an injected registry so tests and multiple
// components never collide on the default global registry.
package metrics
