/*
Package observability turns engine lifecycle hooks into Prometheus metrics
and structured log records.

Both are plain domain.LifecycleHooks values, so they compose with
LifecycleHooks.Merge and with any hooks supplied by the caller.
*/
package observability
