package experiment

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"

	"github.com/satlab/sat/dpll"
)

// A Config describes one batch experiment: which strategies to compare,
// which instances to run them on, and where the per-strategy result files
// go.
type Config struct {
	// Strategies are the branching strategy names to compare. Defaults
	// to every supported strategy.
	Strategies []string `yaml:"strategies"`
	// Instances is a glob matching the CNF files to solve.
	Instances string `yaml:"instances"`
	// ResultsDir receives one <strategy>.json file per strategy.
	ResultsDir string `yaml:"results_dir"`
	// Parallelism bounds how many instances are solved at once within
	// one strategy. Each instance still gets its own single-threaded
	// solver. Defaults to 1.
	Parallelism int `yaml:"parallelism"`
	// Iterative switches the solvers to the explicit-stack engine, for
	// instance sets whose search depth is unknown.
	Iterative bool `yaml:"iterative"`
	// MetricsAddr, when set, exposes aggregate solver counters on
	// <addr>/metrics in the Prometheus text format for long runs.
	MetricsAddr string `yaml:"metrics_addr"`
}

// LoadConfig reads a Config from a YAML file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read config %q", path)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrapf(err, "could not parse config %q", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %q", path)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Strategies) == 0 {
		c.Strategies = dpll.Strategies()
	}
	for _, name := range c.Strategies {
		if _, err := dpll.NewBrancher(name); err != nil {
			return err
		}
	}
	if c.Instances == "" {
		return errors.New("instances glob is required")
	}
	if c.ResultsDir == "" {
		return errors.New("results_dir is required")
	}
	if c.Parallelism == 0 {
		c.Parallelism = 1
	}
	if c.Parallelism < 0 {
		return errors.Errorf("parallelism must be positive, got %d", c.Parallelism)
	}
	return nil
}
