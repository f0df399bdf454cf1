package experiment

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/satlab/sat/dpll"
)

// counters aggregates solver metrics across a whole experiment run,
// labeled per strategy, in the Prometheus data model.
type counters struct {
	registry *prometheus.Registry
	search   *prometheus.CounterVec
	solved   *prometheus.CounterVec
}

func newCounters() *counters {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &counters{
		registry: reg,
		search: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sat",
			Subsystem: "experiment",
			Name:      "search_events_total",
			Help:      "Search counters accumulated over all solved instances.",
		}, []string{"strategy", "counter"}),
		solved: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sat",
			Subsystem: "experiment",
			Name:      "instances_total",
			Help:      "Instances solved, by strategy and outcome.",
		}, []string{"strategy", "result"}),
	}
}

func (c *counters) observe(strategy string, status dpll.Status, m dpll.Metrics) {
	c.search.WithLabelValues(strategy, "decisions").Add(float64(m.Decisions))
	c.search.WithLabelValues(strategy, "backtracks").Add(float64(m.Backtracks))
	c.search.WithLabelValues(strategy, "conflicts").Add(float64(m.Conflicts))
	c.search.WithLabelValues(strategy, "propagations").Add(float64(m.Propagations))
	c.search.WithLabelValues(strategy, "unit_clauses_resolved").Add(float64(m.UnitClausesResolved))
	c.solved.WithLabelValues(strategy, status.String()).Inc()
}

// handler serves the counters in the Prometheus exposition format.
func (c *counters) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
	return mux
}

// serve exposes the counters on addr/metrics until ctx is done.
func (c *counters) serve(ctx context.Context, addr string, log logrus.FieldLogger) {
	srv := &http.Server{Addr: addr, Handler: c.handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Warn("metrics endpoint failed")
		}
	}()
}
