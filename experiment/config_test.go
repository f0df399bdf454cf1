package experiment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satlab/sat/dpll"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
strategies:
  - jw2
  - dlis
instances: "puzzles/*.cnf"
results_dir: results
parallelism: 4
iterative: true
metrics_addr: "localhost:9090"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"jw2", "dlis"}, cfg.Strategies)
	assert.Equal(t, "puzzles/*.cnf", cfg.Instances)
	assert.Equal(t, "results", cfg.ResultsDir)
	assert.Equal(t, 4, cfg.Parallelism)
	assert.True(t, cfg.Iterative)
	assert.Equal(t, "localhost:9090", cfg.MetricsAddr)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
instances: "puzzles/*.cnf"
results_dir: results
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, dpll.Strategies(), cfg.Strategies, "defaults to every strategy")
	assert.Equal(t, 1, cfg.Parallelism)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown strategy", "strategies: [vsids]\ninstances: '*.cnf'\nresults_dir: out\n"},
		{"missing instances", "results_dir: out\n"},
		{"missing results dir", "instances: '*.cnf'\n"},
		{"negative parallelism", "instances: '*.cnf'\nresults_dir: out\nparallelism: -2\n"},
		{"not yaml", "{finally:::\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, test.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
