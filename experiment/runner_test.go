package experiment

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func writeInstances(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	instances := map[string]string{
		"sat.cnf":   "p cnf 2 2\n1 2 0\n-1 2 0\n",
		"unsat.cnf": "p cnf 1 2\n1 0\n-1 0\n",
	}
	for name, body := range instances {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestRunnerWritesResults(t *testing.T) {
	dir := writeInstances(t)
	resultsDir := t.TempDir()
	cfg := &Config{
		Strategies: []string{"first", "jw2"},
		Instances:  filepath.Join(dir, "*.cnf"),
		ResultsDir: resultsDir,
	}
	runner, err := NewRunner(cfg, quietLogger())
	require.NoError(t, err)
	require.NoError(t, runner.Run(context.Background()))

	for _, strategy := range cfg.Strategies {
		raw, err := os.ReadFile(filepath.Join(resultsDir, strategy+".json"))
		require.NoError(t, err, strategy)

		var results []Result
		require.NoError(t, json.Unmarshal(raw, &results))
		require.Len(t, results, 2)
		// glob results are reported in instance-name order
		assert.Equal(t, "sat.cnf", results[0].Puzzle)
		assert.True(t, results[0].Satisfiable)
		assert.Equal(t, "unsat.cnf", results[1].Puzzle)
		assert.False(t, results[1].Satisfiable)
		assert.Equal(t, uint64(1), results[1].Metrics.Conflicts)

		// the metrics record shape is a contract with downstream tools
		var rawResults []map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &rawResults))
		var metrics map[string]uint64
		require.NoError(t, json.Unmarshal(rawResults[0]["metrics"], &metrics))
		for _, key := range []string{"decisions", "backtracks", "conflicts", "propagations", "unit_clauses_resolved"} {
			assert.Contains(t, metrics, key)
		}
	}
}

func TestRunnerParallel(t *testing.T) {
	dir := writeInstances(t)
	cfg := &Config{
		Strategies:  []string{"dlis"},
		Instances:   filepath.Join(dir, "*.cnf"),
		ResultsDir:  t.TempDir(),
		Parallelism: 4,
		Iterative:   true,
	}
	runner, err := NewRunner(cfg, quietLogger())
	require.NoError(t, err)
	assert.NoError(t, runner.Run(context.Background()))
}

func TestRunnerNoInstances(t *testing.T) {
	cfg := &Config{
		Instances:  filepath.Join(t.TempDir(), "*.cnf"),
		ResultsDir: t.TempDir(),
	}
	runner, err := NewRunner(cfg, quietLogger())
	require.NoError(t, err)
	assert.Error(t, runner.Run(context.Background()))
}

func TestRunnerCancelled(t *testing.T) {
	dir := writeInstances(t)
	cfg := &Config{
		Instances:  filepath.Join(dir, "*.cnf"),
		ResultsDir: t.TempDir(),
	}
	runner, err := NewRunner(cfg, quietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, runner.Run(ctx))
}
