// Package metrics defines Prometheus metrics for container name derivation
// and validation requests served by the CLI and HTTP service.
package metrics
