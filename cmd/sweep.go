package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inventory-sim/inventory-sim/sim"
)

var (
	csvGrid         bool
	sweepReorders   []int
	sweepOrderUpTos []int
	minServiceLevel float64
)

// sweepCmd runs the grid optimizer over (s, S) candidates.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Optimize (s, S) over a candidate grid under a service-level constraint",
	Run: func(cmd *cobra.Command, args []string) {
		spec := loadScenario()
		cfg := spec.Config()

		grid := &sim.GridSearch{
			Base:            &cfg,
			ReorderPoints:   sweepReorders,
			OrderUpTos:      sweepOrderUpTos,
			MinServiceLevel: minServiceLevel,
			Replications:    spec.Replications,
			Workers:         workers,
		}
		if spec.Optimize != nil {
			grid.ReorderPoints = spec.Optimize.ReorderPoints
			grid.OrderUpTos = spec.Optimize.OrderUpTos
			grid.MinServiceLevel = spec.Optimize.MinServiceLevel
		}

		ctx, cancel := commandContext()
		defer cancel()

		startTime := time.Now()
		res, err := grid.Run(ctx)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}

		if csvGrid {
			if err := sim.WriteGridCSV(os.Stdout, res); err != nil {
				logrus.Fatalf("CSV export failed: %v", err)
			}
			return
		}
		res.Print()
		logrus.Infof("Sweep complete in %s", time.Since(startTime))
	},
}

func init() {
	f := sweepCmd.Flags()
	f.IntSliceVar(&sweepReorders, "reorder-points", nil, "Candidate s values")
	f.IntSliceVar(&sweepOrderUpTos, "order-up-to", nil, "Candidate S values")
	f.Float64Var(&minServiceLevel, "min-service", 0.95, "Service-level feasibility threshold")
	f.BoolVar(&csvGrid, "csv-grid", false, "Write the full grid surface as CSV to stdout")
	rootCmd.AddCommand(sweepCmd)
}
