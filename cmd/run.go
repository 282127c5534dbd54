package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inventory-sim/inventory-sim/sim"
)

var csvRuns bool

// runCmd evaluates one (s, S) policy over N Monte Carlo replications.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one (s, S) policy through the Monte Carlo estimator",
	Run: func(cmd *cobra.Command, args []string) {
		spec := loadScenario()
		cfg := spec.Config()
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}

		ctx, cancel := commandContext()
		defer cancel()

		logrus.Infof("Simulating policy (s=%d, S=%d) over %.0f days x %d replications",
			cfg.ReorderPoint, cfg.OrderUpTo, cfg.Horizon, spec.Replications)
		startTime := time.Now()

		est := &sim.Estimator{Config: &cfg, Replications: spec.Replications, Workers: workers}
		agg, runs, err := est.Run(ctx)
		if err != nil {
			logrus.Fatalf("Estimation failed: %v", err)
		}

		if csvRuns {
			if err := sim.WriteRunsCSV(os.Stdout, runs); err != nil {
				logrus.Fatalf("CSV export failed: %v", err)
			}
			return
		}
		agg.Print()
		logrus.Infof("Estimation complete in %s", time.Since(startTime))
	},
}

func init() {
	f := runCmd.Flags()
	f.IntVar(&reorderPoint, "reorder-point", 10, "Reorder point s")
	f.IntVar(&orderUpTo, "order-up-to", 60, "Order-up-to level S")
	f.BoolVar(&csvRuns, "csv-runs", false, "Write per-replication results as CSV to stdout")
	rootCmd.AddCommand(runCmd)
}
