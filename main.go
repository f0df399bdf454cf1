package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "sat",
		Short: "A DPLL SAT solver with pluggable branching heuristics",
		Long: `sat solves Boolean satisfiability problems in DIMACS CNF format using
plain DPLL search. It can also encode sudoku puzzles to CNF and run batch
experiments comparing branching heuristics.`,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().Bool("debug", false, "enable debug logging")
	root.AddCommand(newSolveCmd(), newEncodeCmd(), newExperimentCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
