package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/satlab/sat/dimacs"
	"github.com/satlab/sat/dpll"
)

// Exit codes follow the SAT competition convention.
const (
	exitSat   = 10
	exitUnsat = 20
)

func newSolveCmd() *cobra.Command {
	var (
		strategy  string
		verbose   bool
		iterative bool
		timeout   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "solve file.cnf",
		Short: "Decide satisfiability of a DIMACS CNF problem",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(runSolve(args[0], strategy, verbose, iterative, timeout))
		},
	}
	cmd.Flags().StringVarP(&strategy, "strategy", "s", dpll.StrategyJWTwoSided,
		fmt.Sprintf("branching strategy, one of %v", dpll.Strategies()))
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print search statistics")
	cmd.Flags().BoolVar(&iterative, "iterative", false, "use the explicit-stack engine instead of recursion")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "abort if no answer after this duration (0 = none)")
	return cmd
}

func runSolve(path, strategy string, verbose, iterative bool, timeout time.Duration) int {
	brancher, err := dpll.NewBrancher(strategy)
	if err != nil {
		log.Fatal(err)
	}
	f, err := dimacs.ParseCNFFile(path)
	if err != nil {
		log.Fatal(err)
	}
	s := dpll.New(f, brancher)
	s.Iterative = iterative
	if verbose {
		fmt.Printf("c solving %s\n", path)
		fmt.Printf("c nb clauses   : %d\n", len(f))
		fmt.Printf("c nb variables : %d\n", f.MaxVar())
		fmt.Printf("c strategy     : %s\n", brancher.Name())
	}

	status := solveWithTimeout(s, timeout)

	if verbose {
		fmt.Printf("c nb decisions: %d\nc nb backtracks: %d\nc nb conflicts: %d\n",
			s.Stats.Decisions, s.Stats.Backtracks, s.Stats.Conflicts)
		fmt.Printf("c nb propagations: %d\nc nb unit clauses resolved: %d\n",
			s.Stats.Propagations, s.Stats.UnitClausesResolved)
	}
	if status == dpll.Sat {
		color.Green("SATISFIABLE")
		if err := dimacs.WriteSolution(os.Stdout, s.Assignment()); err != nil {
			log.Fatal(err)
		}
		return exitSat
	}
	color.Red("UNSATISFIABLE")
	return exitUnsat
}

// solveWithTimeout layers a deadline over the solver. The search itself
// has no internal checkpoint, so on timeout the only option is to abort
// the whole process.
func solveWithTimeout(s *dpll.Solver, timeout time.Duration) dpll.Status {
	if timeout <= 0 {
		return s.Solve()
	}
	done := make(chan dpll.Status, 1)
	go func() { done <- s.Solve() }()
	select {
	case status := <-done:
		return status
	case <-time.After(timeout):
		log.Fatalf("no answer after %s, giving up", timeout)
		return dpll.Indet
	}
}
