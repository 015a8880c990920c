/*
Package observability provides Prometheus instrumentation for pattern matching.

Collectors are registered on a caller-supplied prometheus.Registerer so tests and
embedders can keep them off the global registry.
*/
package observability
