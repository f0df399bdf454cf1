// Package experiment runs branching strategies against a common set of
// CNF instances and writes per-strategy JSON result files whose metrics
// records are consumed by downstream statistics and plotting tools.
package experiment

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/satlab/sat/dimacs"
	"github.com/satlab/sat/dpll"
)

// A Result is the outcome of solving one instance with one strategy.
// The JSON keys are fixed for downstream consumers.
type Result struct {
	Puzzle      string       `json:"puzzle"`
	Metrics     dpll.Metrics `json:"metrics"`
	Satisfiable bool         `json:"satisfiable"`
}

// A Runner executes one experiment described by a Config.
type Runner struct {
	cfg      *Config
	log      logrus.FieldLogger
	counters *counters
}

// NewRunner validates the configuration, in particular that every
// strategy name is supported, and returns a runner for it.
func NewRunner(cfg *Config, log logrus.FieldLogger) (*Runner, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{cfg: cfg, log: log, counters: newCounters()}, nil
}

// Run solves every instance with every configured strategy and writes one
// result file per strategy. Instances of one strategy may be solved
// concurrently; results are always reported in instance-name order.
// Cancelling ctx stops the run between instances: a solve call that
// already started runs to completion.
func (r *Runner) Run(ctx context.Context) error {
	files, err := filepath.Glob(r.cfg.Instances)
	if err != nil {
		return errors.Wrapf(err, "bad instances glob %q", r.cfg.Instances)
	}
	if len(files) == 0 {
		return errors.Errorf("no instances match %q", r.cfg.Instances)
	}
	sort.Strings(files)
	if err := os.MkdirAll(r.cfg.ResultsDir, 0o755); err != nil {
		return errors.Wrap(err, "could not create results dir")
	}
	if r.cfg.MetricsAddr != "" {
		// Tied to the caller's ctx, not to Run: the endpoint stays
		// scrapeable after the last instance until the caller shuts down.
		r.counters.serve(ctx, r.cfg.MetricsAddr, r.log)
	}

	for _, strategy := range r.cfg.Strategies {
		if err := r.runStrategy(ctx, strategy, files); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runStrategy(ctx context.Context, strategy string, files []string) error {
	log := r.log.WithField("strategy", strategy)
	log.WithField("instances", len(files)).Info("running experiments")
	start := time.Now()

	results := make([]Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Parallelism)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.solveInstance(strategy, file)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sat := 0
	for _, res := range results {
		if res.Satisfiable {
			sat++
		}
	}
	out := filepath.Join(r.cfg.ResultsDir, strategy+".json")
	if err := writeResults(out, results); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"sat":     sat,
		"unsat":   len(files) - sat,
		"elapsed": time.Since(start).Round(time.Millisecond).String(),
		"results": out,
	}).Info("strategy done")
	return nil
}

func (r *Runner) solveInstance(strategy, file string) (Result, error) {
	f, err := dimacs.ParseCNFFile(file)
	if err != nil {
		return Result{}, err
	}
	brancher, err := dpll.NewBrancher(strategy)
	if err != nil {
		return Result{}, err
	}
	s := dpll.New(f, brancher)
	s.Iterative = r.cfg.Iterative
	status := s.Solve()
	r.counters.observe(strategy, status, s.Stats)
	r.log.WithFields(logrus.Fields{
		"instance":  filepath.Base(file),
		"status":    status.String(),
		"decisions": s.Stats.Decisions,
	}).Debug("instance solved")
	return Result{
		Puzzle:      filepath.Base(file),
		Metrics:     s.Stats,
		Satisfiable: status == dpll.Sat,
	}, nil
}

func writeResults(path string, results []Result) error {
	raw, err := json.MarshalIndent(results, "", "    ")
	if err != nil {
		return errors.Wrap(err, "could not encode results")
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return errors.Wrapf(err, "could not write %q", path)
	}
	return nil
}
