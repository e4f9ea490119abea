package main

import (
	"context"
	"log/slog"

	"github.com/aretw0/automata"
	httpadapter "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// newEngine builds an engine from the loaded configuration; opts override it.
// When metrics are enabled the operational endpoint serves until ctx is done.
func newEngine[I, O any](ctx context.Context, a *app, opts ...automata.Option) (*automata.Engine[I, O], error) {
	var reg *prometheus.Registry
	all := []automata.Option{automata.WithConfig(a.cfg)}
	if a.cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		all = append(all, automata.WithMetrics(reg))
	}
	all = append(all, opts...)

	eng, err := automata.New[I, O](all...)
	if err != nil {
		return nil, err
	}

	if reg != nil {
		var handlerOpts []httpadapter.Option
		if r := eng.Registry(); r != nil {
			handlerOpts = append(handlerOpts, httpadapter.WithRegistry(r))
		}
		addr := a.cfg.Metrics.Addr
		go func() {
			if err := httpadapter.Serve(ctx, addr, httpadapter.NewHandler(reg, handlerOpts...)); err != nil {
				slog.Error("Metrics endpoint failed", "addr", addr, "err", err)
			}
		}()
		a.printer.Info("metrics on %s/metrics", addr)
	}
	return eng, nil
}
