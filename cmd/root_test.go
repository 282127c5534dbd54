package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventory-sim/inventory-sim/sim"
)

func TestLoadScenario_FlagDefaultsProduceValidConfig(t *testing.T) {
	// GIVEN the registered flag defaults (no scenario file)
	scenarioPath = ""
	require.NoError(t, rootCmd.PersistentFlags().Parse(nil))

	spec := loadScenario()
	spec.Policy.ReorderPoint = 10
	spec.Policy.OrderUpTo = 60

	// THEN they must validate as a runnable configuration
	cfg := spec.Config()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, sim.StockoutBackorder, cfg.Stockout)
	assert.Equal(t, 365.0, cfg.Horizon)
	assert.Equal(t, int64(42), cfg.Seed)
}
