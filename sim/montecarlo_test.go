package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimator_InsufficientReplications(t *testing.T) {
	cfg := validConfig()
	for _, n := range []int{-1, 0, 1} {
		est := &Estimator{Config: &cfg, Replications: n}
		agg, runs, err := est.Run(context.Background())
		assert.ErrorIs(t, err, ErrInsufficientReplications, "n=%d", n)
		assert.Nil(t, agg, "no partial result on n=%d", n)
		assert.Nil(t, runs)
	}
}

func TestEstimator_InvalidConfigRejectedBeforeRuns(t *testing.T) {
	cfg := validConfig()
	cfg.OrderUpTo = cfg.ReorderPoint
	est := &Estimator{Config: &cfg, Replications: 10}
	_, _, err := est.Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestEstimator_DeterministicAggregate(t *testing.T) {
	cfg := validConfig()
	cfg.Horizon = 60

	est1 := &Estimator{Config: &cfg, Replications: 32, Workers: 4}
	agg1, runs1, err := est1.Run(context.Background())
	require.NoError(t, err)

	// Different worker count, same seeds: the aggregate must not move.
	est2 := &Estimator{Config: &cfg, Replications: 32, Workers: 1}
	agg2, runs2, err := est2.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, agg1, agg2, "aggregation must be independent of worker scheduling")
	assert.Equal(t, runs1, runs2)
}

func TestEstimator_ReplicationSeedsAreDistinct(t *testing.T) {
	cfg := validConfig()
	cfg.Horizon = 60
	est := &Estimator{Config: &cfg, Replications: 8}
	_, runs, err := est.Run(context.Background())
	require.NoError(t, err)

	seen := make(map[int64]bool)
	for _, r := range runs {
		assert.False(t, seen[r.Seed], "replication seed %d reused", r.Seed)
		seen[r.Seed] = true
	}
}

func TestEstimator_CIWidthShrinksWithReplications(t *testing.T) {
	if testing.Short() {
		t.Skip("3000 replications in short mode")
	}
	cfg := validConfig()
	cfg.Horizon = 60

	small := &Estimator{Config: &cfg, Replications: 30}
	aggSmall, _, err := small.Run(context.Background())
	require.NoError(t, err)

	large := &Estimator{Config: &cfg, Replications: 3000}
	aggLarge, _, err := large.Run(context.Background())
	require.NoError(t, err)

	assert.Less(t, aggLarge.CostCIWidth(), aggSmall.CostCIWidth(),
		"cost CI must tighten as replications grow 30 → 3000")
	assert.Less(t, aggLarge.ServiceCIWidth(), aggSmall.ServiceCIWidth(),
		"service CI must tighten as replications grow 30 → 3000")
}

func TestEstimator_EstimateBracketsMean(t *testing.T) {
	cfg := validConfig()
	cfg.Horizon = 60
	est := &Estimator{Config: &cfg, Replications: 50}
	agg, _, err := est.Run(context.Background())
	require.NoError(t, err)

	assert.LessOrEqual(t, agg.CostLow, agg.CostMean)
	assert.GreaterOrEqual(t, agg.CostHigh, agg.CostMean)
	assert.LessOrEqual(t, agg.ServiceLow, agg.ServiceMean)
	assert.GreaterOrEqual(t, agg.ServiceHigh, agg.ServiceMean)
	assert.InDelta(t, agg.CostMean,
		agg.MeanHoldingCost+agg.MeanStockoutCost+agg.MeanOrderingCost, 1e-9,
		"mean cost components must sum to the mean total")
}

func TestEstimator_CancelledContext(t *testing.T) {
	cfg := validConfig()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	est := &Estimator{Config: &cfg, Replications: 100}
	_, _, err := est.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCriticalValue_TBelow30NormalAbove(t *testing.T) {
	// t(9 dof, 97.5%) ≈ 2.262: wider than the normal approximation.
	assert.InDelta(t, 2.262, criticalValue(10), 0.01)
	assert.Greater(t, criticalValue(29), 1.96)
	assert.Equal(t, 1.96, criticalValue(30))
	assert.Equal(t, 1.96, criticalValue(3000))
}

func TestEstimator_ReplicationFailureSurfaced(t *testing.T) {
	orig := newSimulatorFunc
	defer func() { newSimulatorFunc = orig }()

	cfg := validConfig()
	cfg.Horizon = 10
	boom := errors.New("simulator construction failed")
	failSeed := ReplicationSeed(cfg.Seed, 3)
	newSimulatorFunc = func(c *SimulationConfig) (*Simulator, error) {
		if c.Seed == failSeed {
			return nil, boom
		}
		return NewSimulator(c)
	}

	est := &Estimator{Config: &cfg, Replications: 8, Workers: 2}
	agg, runs, err := est.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, agg, "a failed replication must not fold a zero-value run into the aggregate")
	assert.Nil(t, runs)
}
