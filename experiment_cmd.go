package main

import (
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/satlab/sat/experiment"
)

func newExperimentCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "experiment",
		Short: "Compare branching strategies over a set of CNF instances",
		Long: `experiment solves every instance with every configured strategy and
writes one JSON result file per strategy, suitable for statistical
comparison and plotting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := experiment.LoadConfig(configPath)
			if err != nil {
				return err
			}
			runner, err := experiment.NewRunner(cfg, log.StandardLogger())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runner.Run(ctx)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the experiment config (YAML)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}
