package experiment

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerAggregatesCounters(t *testing.T) {
	dir := writeInstances(t)
	cfg := &Config{
		Strategies: []string{"jw2"},
		Instances:  filepath.Join(dir, "*.cnf"),
		ResultsDir: t.TempDir(),
	}
	runner, err := NewRunner(cfg, quietLogger())
	require.NoError(t, err)
	require.NoError(t, runner.Run(context.Background()))

	// sat.cnf costs one decision and one propagated unit; unsat.cnf is a
	// pure unit cascade ending in a conflict.
	search := runner.counters.search
	assert.Equal(t, 1.0, testutil.ToFloat64(search.WithLabelValues("jw2", "decisions")))
	assert.Equal(t, 0.0, testutil.ToFloat64(search.WithLabelValues("jw2", "backtracks")))
	assert.Equal(t, 1.0, testutil.ToFloat64(search.WithLabelValues("jw2", "conflicts")))
	assert.Equal(t, 2.0, testutil.ToFloat64(search.WithLabelValues("jw2", "propagations")))
	assert.Equal(t, 2.0, testutil.ToFloat64(search.WithLabelValues("jw2", "unit_clauses_resolved")))

	solved := runner.counters.solved
	assert.Equal(t, 1.0, testutil.ToFloat64(solved.WithLabelValues("jw2", "SAT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(solved.WithLabelValues("jw2", "UNSAT")))
}

func TestRunnerServesMetrics(t *testing.T) {
	dir := writeInstances(t)

	// Reserve a loopback port for the endpoint.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	cfg := &Config{
		Strategies:  []string{"jw2"},
		Instances:   filepath.Join(dir, "*.cnf"),
		ResultsDir:  t.TempDir(),
		MetricsAddr: addr,
	}
	runner, err := NewRunner(cfg, quietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, runner.Run(ctx))

	// The endpoint outlives Run; poll until the listener is up.
	body := scrapeMetrics(t, fmt.Sprintf("http://%s/metrics", addr))
	assert.Contains(t, body, `sat_experiment_search_events_total{counter="decisions",strategy="jw2"} 1`)
	assert.Contains(t, body, `sat_experiment_search_events_total{counter="unit_clauses_resolved",strategy="jw2"} 2`)
	assert.Contains(t, body, `sat_experiment_instances_total{result="SAT",strategy="jw2"} 1`)
	assert.Contains(t, body, `sat_experiment_instances_total{result="UNSAT",strategy="jw2"} 1`)
}

func scrapeMetrics(t *testing.T, url string) string {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(url)
		if err == nil {
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)
			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			return string(raw)
		}
		if time.Now().After(deadline) {
			t.Fatalf("metrics endpoint never came up: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}
}
