/*
Package observability turns engine lifecycle events into Prometheus metrics.

Metrics exposes its collectors as domain.LifecycleHooks, so wiring it into an
engine is a single option:

	m := observability.NewMetrics(prometheus.NewRegistry())
	eng := engine.NewManager[string, string](engine.WithLifecycleHooks(m.Hooks()))
*/
package observability
