package cmd

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inventory-sim/inventory-sim/sim"
	"github.com/inventory-sim/inventory-sim/sim/demand"
)

var (
	// CLI flags shared by run and sweep
	scenarioPath    string  // YAML scenario file; overrides the individual flags below
	horizonDays     float64 // Simulation horizon in days
	demandRate      float64 // Demand units per day
	leadTimeDist    string  // Lead time distribution: uniform or normal
	leadTimeA       float64 // Uniform min / normal mean (days)
	leadTimeB       float64 // Uniform max / normal std dev (days)
	stockoutMode    string  // backorder or lost_sale
	holdingCost     float64 // Holding cost per unit-day
	stockoutPenalty float64 // Stockout penalty per unit (lost_sale) or unit-day (backorder)
	fixedOrderCost  float64 // Fixed cost per order placed
	reorderPoint    int     // s
	orderUpTo       int     // S
	replications    int     // Monte Carlo replication count
	seed            int64   // Base seed; replication i uses seed+i
	workers         int     // Worker pool size (0 = GOMAXPROCS)
	timeout         time.Duration
	logLevel        string
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "invsim",
	Short: "Discrete-event simulator and optimizer for (s, S) inventory policies",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScenario resolves the scenario: the YAML file when given, the
// individual flags otherwise.
func loadScenario() *sim.ScenarioSpec {
	if scenarioPath != "" {
		spec, err := sim.LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("Loading scenario %s failed: %v", scenarioPath, err)
		}
		return spec
	}
	spec := &sim.ScenarioSpec{
		HorizonDays:     horizonDays,
		DemandRate:      demandRate,
		LeadTime:        demand.LeadTimeSpec{Dist: leadTimeDist, A: leadTimeA, B: leadTimeB},
		StockoutMode:    stockoutMode,
		HoldingCost:     holdingCost,
		StockoutPenalty: stockoutPenalty,
		FixedOrderCost:  fixedOrderCost,
		Replications:    replications,
		Seed:            seed,
	}
	spec.Policy.ReorderPoint = reorderPoint
	spec.Policy.OrderUpTo = orderUpTo
	return spec
}

// commandContext returns the caller-level timeout context for a command.
func commandContext() (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&scenarioPath, "scenario", "", "Scenario YAML file (overrides individual flags)")
	pf.Float64Var(&horizonDays, "horizon", 365, "Simulation horizon in days")
	pf.Float64Var(&demandRate, "demand-rate", 20, "Demand rate in units/day")
	pf.StringVar(&leadTimeDist, "lead-dist", "uniform", "Lead time distribution: uniform or normal")
	pf.Float64Var(&leadTimeA, "lead-a", 1, "Lead time min (uniform) or mean (normal), days")
	pf.Float64Var(&leadTimeB, "lead-b", 5, "Lead time max (uniform) or std dev (normal), days")
	pf.StringVar(&stockoutMode, "stockout-mode", "backorder", "Stockout handling: backorder or lost_sale")
	pf.Float64Var(&holdingCost, "holding-cost", 1, "Holding cost per unit-day")
	pf.Float64Var(&stockoutPenalty, "stockout-penalty", 20, "Stockout penalty per unit (lost_sale) or unit-day (backorder)")
	pf.Float64Var(&fixedOrderCost, "fixed-order-cost", 50, "Fixed cost per order placed")
	pf.IntVar(&replications, "replications", 80, "Monte Carlo replication count")
	pf.Int64Var(&seed, "seed", 42, "Base random seed")
	pf.IntVar(&workers, "workers", 0, "Worker pool size (0 = GOMAXPROCS)")
	pf.DurationVar(&timeout, "timeout", 0, "Overall wall-clock timeout (0 = none)")
}
