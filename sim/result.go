package sim

import "fmt"

// RunResult is the immutable outcome of one simulation run.
// TotalCost is always the exact sum of the three components.
type RunResult struct {
	HoldingCost  float64
	StockoutCost float64
	OrderingCost float64
	TotalCost    float64

	TotalDemand    int
	ImmediateFills int
	OrdersPlaced   int
	AvgOnHand      float64 // time-weighted average on-hand inventory

	EndingOnHand     int
	EndingBackorders int
	Seed             int64
}

// ServiceLevel returns the fill rate: the fraction of demand units
// satisfied immediately from on-hand stock. A run that saw no demand
// counts as perfect service.
func (r *RunResult) ServiceLevel() float64 {
	if r.TotalDemand == 0 {
		return 1.0
	}
	return float64(r.ImmediateFills) / float64(r.TotalDemand)
}

// AggregateEstimate summarizes N replications of one (s, S) policy.
// Confidence intervals are 95%, using a Student-t critical value for
// small N and the normal approximation otherwise (see confidenceHalfWidth).
type AggregateEstimate struct {
	ReorderPoint int // s
	OrderUpTo    int // S
	Replications int

	ServiceMean float64
	ServiceLow  float64
	ServiceHigh float64

	CostMean float64
	CostLow  float64
	CostHigh float64

	MeanHoldingCost  float64
	MeanStockoutCost float64
	MeanOrderingCost float64
	MeanOrdersPlaced float64
}

// ServiceCIWidth returns the width of the service-level confidence interval.
func (a *AggregateEstimate) ServiceCIWidth() float64 {
	return a.ServiceHigh - a.ServiceLow
}

// CostCIWidth returns the width of the total-cost confidence interval.
func (a *AggregateEstimate) CostCIWidth() float64 {
	return a.CostHigh - a.CostLow
}

// Print displays the aggregate estimate at the end of a run command.
func (a *AggregateEstimate) Print() {
	fmt.Println("=== Policy Estimate ===")
	fmt.Printf("Policy (s, S)        : (%d, %d)\n", a.ReorderPoint, a.OrderUpTo)
	fmt.Printf("Replications         : %d\n", a.Replications)
	fmt.Printf("Service level        : %.4f  [%.4f, %.4f]\n", a.ServiceMean, a.ServiceLow, a.ServiceHigh)
	fmt.Printf("Total cost           : %.2f  [%.2f, %.2f]\n", a.CostMean, a.CostLow, a.CostHigh)
	fmt.Printf("  holding            : %.2f\n", a.MeanHoldingCost)
	fmt.Printf("  stockout           : %.2f\n", a.MeanStockoutCost)
	fmt.Printf("  ordering           : %.2f\n", a.MeanOrderingCost)
	fmt.Printf("Orders per run       : %.2f\n", a.MeanOrdersPlaced)
}

// PolicyGridResult is the full optimizer sweep: every evaluated (s, S)
// cell plus the selected optimum. Best is nil when no candidate met the
// service-level threshold, which is a valid outcome, not an error.
type PolicyGridResult struct {
	Cells []AggregateEstimate
	Best  *AggregateEstimate
}

// Feasible reports whether any evaluated policy met the threshold.
func (g *PolicyGridResult) Feasible() bool {
	return g.Best != nil
}

// Print displays the sweep outcome.
func (g *PolicyGridResult) Print() {
	fmt.Println("=== Policy Sweep ===")
	fmt.Printf("Cells evaluated      : %d\n", len(g.Cells))
	if g.Best == nil {
		fmt.Println("No feasible policy found: no candidate met the service-level threshold")
		return
	}
	fmt.Printf("Best policy (s, S)   : (%d, %d)\n", g.Best.ReorderPoint, g.Best.OrderUpTo)
	fmt.Printf("Service level        : %.4f  [%.4f, %.4f]\n", g.Best.ServiceMean, g.Best.ServiceLow, g.Best.ServiceHigh)
	fmt.Printf("Total cost           : %.2f  [%.2f, %.2f]\n", g.Best.CostMean, g.Best.CostLow, g.Best.CostHigh)
}
