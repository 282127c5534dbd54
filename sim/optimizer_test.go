package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventory-sim/inventory-sim/sim/demand"
)

// sweepBase is a scenario where the cost/service trade-off clearly
// separates the grid: s=5 starves service on small order-up-to levels,
// s=50 reorders constantly under a heavy fixed order cost, and large S
// values pile up holding cost. (10, 60) is the cheap feasible pocket.
func sweepBase() SimulationConfig {
	return SimulationConfig{
		DemandRate:      5,
		LeadTime:        demand.LeadTimeSpec{Dist: "uniform", A: 1, B: 3},
		Stockout:        StockoutLostSale,
		HoldingCostRate: 1,
		StockoutPenalty: 20,
		FixedOrderCost:  200,
		Horizon:         90,
		Seed:            42,
	}
}

func TestGridSearch_SelectsKnownBestPolicy(t *testing.T) {
	if testing.Short() {
		t.Skip("full grid sweep in short mode")
	}
	base := sweepBase()
	grid := &GridSearch{
		Base:            &base,
		ReorderPoints:   []int{5, 10, 50},
		OrderUpTos:      []int{20, 60, 100},
		MinServiceLevel: 0.93,
		Replications:    60,
		Workers:         4,
	}
	res, err := grid.Run(context.Background())
	require.NoError(t, err)
	require.True(t, res.Feasible())

	assert.Equal(t, 10, res.Best.ReorderPoint)
	assert.Equal(t, 60, res.Best.OrderUpTo)
	assert.GreaterOrEqual(t, res.Best.ServiceMean, 0.93)

	// The optimum must actually be minimal among feasible cells.
	for _, c := range res.Cells {
		if c.ServiceMean >= 0.93 {
			assert.LessOrEqual(t, res.Best.CostMean, c.CostMean,
				"cell (s=%d, S=%d) undercuts the selected best", c.ReorderPoint, c.OrderUpTo)
		}
	}
}

func TestGridSearch_ExposesFullSurfaceAndSkipsNonPolicies(t *testing.T) {
	base := sweepBase()
	grid := &GridSearch{
		Base:            &base,
		ReorderPoints:   []int{5, 50},
		OrderUpTos:      []int{20, 60},
		MinServiceLevel: 0,
		Replications:    5,
	}
	res, err := grid.Run(context.Background())
	require.NoError(t, err)

	// (50, 20) violates S > s and is not a policy; the other three are.
	require.Len(t, res.Cells, 3)
	for _, c := range res.Cells {
		assert.Greater(t, c.OrderUpTo, c.ReorderPoint)
		assert.Equal(t, 5, c.Replications)
	}
}

func TestGridSearch_UnachievableThresholdMeansNoFeasiblePolicy(t *testing.T) {
	base := sweepBase()
	grid := &GridSearch{
		Base:            &base,
		ReorderPoints:   []int{10},
		OrderUpTos:      []int{60},
		MinServiceLevel: 1.01, // above any achievable fill rate
		Replications:    10,
	}
	res, err := grid.Run(context.Background())
	require.NoError(t, err, "an empty feasible set is a result, not a failure")
	assert.False(t, res.Feasible())
	assert.Nil(t, res.Best)
	assert.Len(t, res.Cells, 1, "the surface is still reported")
}

func TestGridSearch_Deterministic(t *testing.T) {
	base := sweepBase()
	mk := func(workers int) *PolicyGridResult {
		grid := &GridSearch{
			Base:            &base,
			ReorderPoints:   []int{5, 10},
			OrderUpTos:      []int{30, 60},
			MinServiceLevel: 0.5,
			Replications:    8,
			Workers:         workers,
		}
		res, err := grid.Run(context.Background())
		require.NoError(t, err)
		return res
	}
	assert.Equal(t, mk(1), mk(4), "cell concurrency must not change any estimate")
}

func TestGridSearch_ValidatesInputs(t *testing.T) {
	base := sweepBase()

	empty := &GridSearch{Base: &base, Replications: 10}
	_, err := empty.Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	tooFew := &GridSearch{Base: &base, ReorderPoints: []int{5}, OrderUpTos: []int{20}, Replications: 1}
	_, err = tooFew.Run(context.Background())
	assert.ErrorIs(t, err, ErrInsufficientReplications)

	bad := sweepBase()
	bad.DemandRate = -1
	badGrid := &GridSearch{Base: &bad, ReorderPoints: []int{5}, OrderUpTos: []int{20}, Replications: 10}
	_, err = badGrid.Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestGridCellSeed_DistinctAcrossCells(t *testing.T) {
	seen := make(map[int64]bool)
	for _, s := range []int{5, 10, 50} {
		for _, S := range []int{20, 60, 100} {
			seed := GridCellSeed(42, s, S)
			assert.False(t, seen[seed], "seed collision for (s=%d, S=%d)", s, S)
			seen[seed] = true
		}
	}
}
