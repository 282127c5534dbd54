package sim

import (
	"errors"
	"fmt"

	"github.com/inventory-sim/inventory-sim/sim/demand"
)

// ErrInvalidConfiguration is the sentinel wrapped by all Validate failures.
// Detected eagerly before any simulated time advances, never mid-run.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// StockoutMode selects how unmet demand is handled.
type StockoutMode string

const (
	// StockoutBackorder carries unmet demand forward; on-hand may go
	// negative, representing outstanding backorders, and the stockout
	// penalty accrues per unit per day of backorder.
	StockoutBackorder StockoutMode = "backorder"

	// StockoutLostSale drops unmet demand; on-hand never goes negative
	// and the stockout penalty is charged once per lost unit.
	StockoutLostSale StockoutMode = "lost_sale"
)

// SimulationConfig holds the immutable parameters of one scenario.
// Callers must not mutate it after a run starts; the engine, estimator,
// and optimizer only ever read it.
type SimulationConfig struct {
	ReorderPoint int // s: reorder when inventory position falls to or below this
	OrderUpTo    int // S: replenish the position up to this level

	DemandRate float64             // units per day (Poisson process)
	LeadTime   demand.LeadTimeSpec // replenishment lead-time distribution

	Stockout StockoutMode

	HoldingCostRate float64 // per unit on hand per day
	StockoutPenalty float64 // per unit (lost_sale) or per unit-day (backorder)
	FixedOrderCost  float64 // per order placed

	Horizon float64 // simulated days
	Seed    int64
}

// Validate checks every invariant the engine relies on. All entry points
// (NewSimulator, Estimator.Run, GridSearch.Run) call it before any work.
func (c *SimulationConfig) Validate() error {
	if c.ReorderPoint < 0 {
		return fmt.Errorf("%w: reorder point s must be >= 0, got %d", ErrInvalidConfiguration, c.ReorderPoint)
	}
	if c.OrderUpTo <= c.ReorderPoint {
		return fmt.Errorf("%w: order-up-to level S must exceed reorder point s, got S=%d s=%d",
			ErrInvalidConfiguration, c.OrderUpTo, c.ReorderPoint)
	}
	if c.DemandRate <= 0 {
		return fmt.Errorf("%w: demand rate must be positive, got %f", ErrInvalidConfiguration, c.DemandRate)
	}
	if err := c.LeadTime.Validate(); err != nil {
		return fmt.Errorf("%w: lead time: %v", ErrInvalidConfiguration, err)
	}
	switch c.Stockout {
	case StockoutBackorder, StockoutLostSale:
	default:
		return fmt.Errorf("%w: unknown stockout mode %q; valid: backorder, lost_sale",
			ErrInvalidConfiguration, c.Stockout)
	}
	if c.HoldingCostRate < 0 {
		return fmt.Errorf("%w: holding cost rate must be >= 0, got %f", ErrInvalidConfiguration, c.HoldingCostRate)
	}
	if c.StockoutPenalty < 0 {
		return fmt.Errorf("%w: stockout penalty must be >= 0, got %f", ErrInvalidConfiguration, c.StockoutPenalty)
	}
	if c.FixedOrderCost < 0 {
		return fmt.Errorf("%w: fixed order cost must be >= 0, got %f", ErrInvalidConfiguration, c.FixedOrderCost)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %f", ErrInvalidConfiguration, c.Horizon)
	}
	return nil
}

// WithPolicy returns a copy of the config with a different (s, S) pair.
// The receiver is not modified.
func (c SimulationConfig) WithPolicy(s, S int) SimulationConfig {
	c.ReorderPoint = s
	c.OrderUpTo = S
	return c
}

// WithSeed returns a copy of the config with a different seed.
func (c SimulationConfig) WithSeed(seed int64) SimulationConfig {
	c.Seed = seed
	return c
}
