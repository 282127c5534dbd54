package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inventory-sim/inventory-sim/sim"
)

var (
	csvCompare   bool
	demandSpike  float64
	leadTimeMult float64
)

// compareCmd stresses one (s, S) policy: baseline, demand spike, and
// lead-time disruption, estimated side by side.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare one (s, S) policy under baseline, demand-spike, and lead-time-disruption scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		spec := loadScenario()
		cfg := spec.Config()
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}
		if spec.Compare != nil {
			demandSpike = spec.Compare.DemandSpikePct
			leadTimeMult = spec.Compare.LeadTimeMultiplier
		}

		ctx, cancel := commandContext()
		defer cancel()

		logrus.Infof("Comparing policy (s=%d, S=%d): demand +%g%%, lead time x%g, %d replications each",
			cfg.ReorderPoint, cfg.OrderUpTo, demandSpike, leadTimeMult, spec.Replications)
		startTime := time.Now()

		cmp := &sim.ScenarioComparison{
			Base:               &cfg,
			DemandSpikePct:     demandSpike,
			LeadTimeMultiplier: leadTimeMult,
			Replications:       spec.Replications,
			Workers:            workers,
		}
		res, err := cmp.Run(ctx)
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}

		if csvCompare {
			if err := sim.WriteComparisonCSV(os.Stdout, res); err != nil {
				logrus.Fatalf("CSV export failed: %v", err)
			}
			return
		}
		res.Print()
		logrus.Infof("Comparison complete in %s", time.Since(startTime))
	},
}

func init() {
	f := compareCmd.Flags()
	f.IntVar(&reorderPoint, "reorder-point", 10, "Reorder point s")
	f.IntVar(&orderUpTo, "order-up-to", 60, "Order-up-to level S")
	f.Float64Var(&demandSpike, "demand-spike", 30, "Demand spike percentage applied to the arrival rate")
	f.Float64Var(&leadTimeMult, "lead-mult", 1.5, "Multiplier applied to both lead-time parameters")
	f.BoolVar(&csvCompare, "csv-compare", false, "Write scenario comparison as CSV to stdout")
	rootCmd.AddCommand(compareCmd)
}
