package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// newSimulatorFunc builds each replication's simulator. Package-level so
// tests can inject construction failures.
var newSimulatorFunc = NewSimulator

// ErrInsufficientReplications is returned when fewer than two replications
// are requested: the sample standard deviation is undefined below that.
var ErrInsufficientReplications = errors.New("insufficient replications: need at least 2")

// tDistThreshold is the replication count at or above which the normal
// approximation (1.96) replaces the Student-t critical value.
const tDistThreshold = 30

// Estimator runs a SimulationConfig template N times with derived seeds
// and aggregates the outcomes into an AggregateEstimate.
//
// Replications are independent: each owns its InventoryState and random
// stream, so they fan out over a bounded worker pool. Results are written
// by replication index, which keeps the aggregation deterministic
// regardless of completion order.
type Estimator struct {
	Config       *SimulationConfig
	Replications int
	// Workers bounds the pool; 0 means GOMAXPROCS.
	Workers int
}

// Run executes the replications and returns the aggregate plus the raw
// per-run results for optional export. The context is checked between
// replications only; a single run is short and deterministic, so there is
// no mid-run cancellation.
func (e *Estimator) Run(ctx context.Context) (*AggregateEstimate, []RunResult, error) {
	if e.Replications < 2 {
		return nil, nil, fmt.Errorf("%w, got %d", ErrInsufficientReplications, e.Replications)
	}
	if err := e.Config.Validate(); err != nil {
		return nil, nil, err
	}

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > e.Replications {
		workers = e.Replications
	}

	results := make([]RunResult, e.Replications)
	indexes := make(chan int)
	runErrs := make(chan error, e.Replications)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				cfg := e.Config.WithSeed(ReplicationSeed(e.Config.Seed, i))
				s, err := newSimulatorFunc(&cfg)
				if err != nil {
					// A zero-value result must never reach the
					// aggregate; the failure is returned instead.
					runErrs <- fmt.Errorf("replication %d: %w", i, err)
					continue
				}
				results[i] = *s.Run()
			}
		}()
	}

	var ctxErr error
feed:
	for i := 0; i < e.Replications; i++ {
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()
	close(runErrs)

	if ctxErr != nil {
		return nil, nil, ctxErr
	}
	if err := <-runErrs; err != nil {
		return nil, nil, err
	}

	agg := aggregate(e.Config, results)
	return agg, results, nil
}

// aggregate computes the mean and 95% confidence interval over the
// collected runs for service level and total cost.
func aggregate(cfg *SimulationConfig, runs []RunResult) *AggregateEstimate {
	n := len(runs)
	services := make([]float64, n)
	costs := make([]float64, n)
	var holding, stockout, ordering, orders float64
	for i := range runs {
		services[i] = runs[i].ServiceLevel()
		costs[i] = runs[i].TotalCost
		holding += runs[i].HoldingCost
		stockout += runs[i].StockoutCost
		ordering += runs[i].OrderingCost
		orders += float64(runs[i].OrdersPlaced)
	}

	serviceMean := stat.Mean(services, nil)
	costMean := stat.Mean(costs, nil)
	serviceHalf := confidenceHalfWidth(services)
	costHalf := confidenceHalfWidth(costs)

	return &AggregateEstimate{
		ReorderPoint:     cfg.ReorderPoint,
		OrderUpTo:        cfg.OrderUpTo,
		Replications:     n,
		ServiceMean:      serviceMean,
		ServiceLow:       serviceMean - serviceHalf,
		ServiceHigh:      serviceMean + serviceHalf,
		CostMean:         costMean,
		CostLow:          costMean - costHalf,
		CostHigh:         costMean + costHalf,
		MeanHoldingCost:  holding / float64(n),
		MeanStockoutCost: stockout / float64(n),
		MeanOrderingCost: ordering / float64(n),
		MeanOrdersPlaced: orders / float64(n),
	}
}

// confidenceHalfWidth returns the 95% confidence half-width
// crit * sd / sqrt(n) of the sample mean.
//
// Critical value: Student-t with n-1 degrees of freedom for n < 30,
// the 1.96 normal approximation otherwise.
func confidenceHalfWidth(sample []float64) float64 {
	n := len(sample)
	sd := stat.StdDev(sample, nil)
	return criticalValue(n) * sd / math.Sqrt(float64(n))
}

func criticalValue(n int) float64 {
	if n >= tDistThreshold {
		return 1.96
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	return t.Quantile(0.975)
}
