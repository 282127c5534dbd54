package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comparisonBase() SimulationConfig {
	return sweepBase().WithPolicy(10, 60)
}

func TestScenarioComparison_ScenariosMatchStandaloneEstimates(t *testing.T) {
	base := comparisonBase()
	cmp := &ScenarioComparison{
		Base:               &base,
		DemandSpikePct:     100,
		LeadTimeMultiplier: 3,
		Replications:       20,
		Workers:            2,
	}
	res, err := cmp.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Scenarios, 3)

	// Each scenario must be exactly the estimate of its derived config:
	// baseline at the base seed, doubled demand at seed+1000, tripled
	// lead-time parameters at seed+2000.
	baseline := base
	spiked := base
	spiked.DemandRate = 10
	spiked.Seed = base.Seed + 1000
	disrupted := base
	disrupted.LeadTime.A = 3
	disrupted.LeadTime.B = 9
	disrupted.Seed = base.Seed + 2000

	for i, cfg := range []SimulationConfig{baseline, spiked, disrupted} {
		est := &Estimator{Config: &cfg, Replications: 20, Workers: 2}
		agg, _, err := est.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, *agg, res.Scenarios[i].AggregateEstimate, "scenario %q", res.Scenarios[i].Name)
	}

	assert.Equal(t, "baseline", res.Scenarios[0].Name)
	assert.Equal(t, "demand +100%", res.Scenarios[1].Name)
	assert.Equal(t, "lead time x3", res.Scenarios[2].Name)
}

func TestScenarioComparison_StressDegradesService(t *testing.T) {
	base := comparisonBase()
	cmp := &ScenarioComparison{
		Base:               &base,
		DemandSpikePct:     100,
		LeadTimeMultiplier: 3,
		Replications:       40,
	}
	res, err := cmp.Run(context.Background())
	require.NoError(t, err)

	baseline := res.Scenarios[0]
	spike := res.Scenarios[1]
	disruption := res.Scenarios[2]

	assert.Less(t, spike.ServiceMean, baseline.ServiceMean)
	assert.Less(t, disruption.ServiceMean, baseline.ServiceMean)
	assert.Greater(t, spike.CostMean, baseline.CostMean)
}

func TestScenarioComparison_Deterministic(t *testing.T) {
	base := comparisonBase()
	run := func(workers int) *ComparisonResult {
		cmp := &ScenarioComparison{
			Base:               &base,
			DemandSpikePct:     30,
			LeadTimeMultiplier: 1.5,
			Replications:       15,
			Workers:            workers,
		}
		res, err := cmp.Run(context.Background())
		require.NoError(t, err)
		return res
	}
	assert.Equal(t, run(1), run(4))
}

func TestScenarioComparison_Validation(t *testing.T) {
	base := comparisonBase()

	cmp := &ScenarioComparison{Base: &base, DemandSpikePct: 30, LeadTimeMultiplier: 1.5, Replications: 1}
	_, err := cmp.Run(context.Background())
	assert.ErrorIs(t, err, ErrInsufficientReplications)

	cmp = &ScenarioComparison{Base: &base, DemandSpikePct: -5, LeadTimeMultiplier: 1.5, Replications: 10}
	_, err = cmp.Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	cmp = &ScenarioComparison{Base: &base, DemandSpikePct: 30, LeadTimeMultiplier: 0.5, Replications: 10}
	_, err = cmp.Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	bad := base
	bad.OrderUpTo = 0
	cmp = &ScenarioComparison{Base: &bad, DemandSpikePct: 30, LeadTimeMultiplier: 1.5, Replications: 10}
	_, err = cmp.Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestScenarioComparison_CancelledContext(t *testing.T) {
	base := comparisonBase()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmp := &ScenarioComparison{Base: &base, DemandSpikePct: 30, LeadTimeMultiplier: 1.5, Replications: 10}
	_, err := cmp.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
