package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Flat CSV export: one row per run or per grid cell, for external
// consumers (spreadsheets, plotting). Writers receive an io.Writer so
// commands can pipe to stdout or a file.

var runHeader = []string{
	"seed", "service_level", "total_cost", "holding_cost", "stockout_cost",
	"ordering_cost", "total_demand", "immediate_fills", "orders_placed",
	"avg_on_hand", "ending_on_hand", "ending_backorders",
}

// WriteRunsCSV writes one row per replication.
func WriteRunsCSV(w io.Writer, runs []RunResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(runHeader); err != nil {
		return fmt.Errorf("writing run CSV header: %w", err)
	}
	for i := range runs {
		r := &runs[i]
		row := []string{
			strconv.FormatInt(r.Seed, 10),
			formatFloat(r.ServiceLevel()),
			formatFloat(r.TotalCost),
			formatFloat(r.HoldingCost),
			formatFloat(r.StockoutCost),
			formatFloat(r.OrderingCost),
			strconv.Itoa(r.TotalDemand),
			strconv.Itoa(r.ImmediateFills),
			strconv.Itoa(r.OrdersPlaced),
			formatFloat(r.AvgOnHand),
			strconv.Itoa(r.EndingOnHand),
			strconv.Itoa(r.EndingBackorders),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing run CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var gridHeader = []string{
	"s", "S", "replications", "service_mean", "service_ci_low", "service_ci_high",
	"cost_mean", "cost_ci_low", "cost_ci_high",
	"mean_holding_cost", "mean_stockout_cost", "mean_ordering_cost", "best",
}

// WriteGridCSV writes one row per evaluated grid cell, flagging the
// selected optimum so the full cost/service surface round-trips.
func WriteGridCSV(w io.Writer, res *PolicyGridResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(gridHeader); err != nil {
		return fmt.Errorf("writing grid CSV header: %w", err)
	}
	for i := range res.Cells {
		c := &res.Cells[i]
		best := "false"
		if res.Best != nil && res.Best.ReorderPoint == c.ReorderPoint && res.Best.OrderUpTo == c.OrderUpTo {
			best = "true"
		}
		row := []string{
			strconv.Itoa(c.ReorderPoint),
			strconv.Itoa(c.OrderUpTo),
			strconv.Itoa(c.Replications),
			formatFloat(c.ServiceMean),
			formatFloat(c.ServiceLow),
			formatFloat(c.ServiceHigh),
			formatFloat(c.CostMean),
			formatFloat(c.CostLow),
			formatFloat(c.CostHigh),
			formatFloat(c.MeanHoldingCost),
			formatFloat(c.MeanStockoutCost),
			formatFloat(c.MeanOrderingCost),
			best,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing grid CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var comparisonHeader = []string{
	"scenario", "s", "S", "replications",
	"service_mean", "service_ci_low", "service_ci_high",
	"cost_mean", "cost_ci_low", "cost_ci_high",
	"mean_holding_cost", "mean_stockout_cost", "mean_ordering_cost",
}

// WriteComparisonCSV writes one row per scenario, baseline first.
func WriteComparisonCSV(w io.Writer, res *ComparisonResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(comparisonHeader); err != nil {
		return fmt.Errorf("writing comparison CSV header: %w", err)
	}
	for i := range res.Scenarios {
		sc := &res.Scenarios[i]
		row := []string{
			sc.Name,
			strconv.Itoa(sc.ReorderPoint),
			strconv.Itoa(sc.OrderUpTo),
			strconv.Itoa(sc.Replications),
			formatFloat(sc.ServiceMean),
			formatFloat(sc.ServiceLow),
			formatFloat(sc.ServiceHigh),
			formatFloat(sc.CostMean),
			formatFloat(sc.CostLow),
			formatFloat(sc.CostHigh),
			formatFloat(sc.MeanHoldingCost),
			formatFloat(sc.MeanStockoutCost),
			formatFloat(sc.MeanOrderingCost),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing comparison CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
