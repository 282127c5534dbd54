// sim/simulator.go
package sim

import (
	"container/heap"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inventory-sim/inventory-sim/sim/demand"
)

// EventQueue implements heap.Interface and orders events by timestamp.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []Event

func (eq EventQueue) Len() int           { return len(eq) }
func (eq EventQueue) Less(i, j int) bool { return eq[i].Timestamp() < eq[j].Timestamp() }
func (eq EventQueue) Swap(i, j int)      { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(Event))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Simulator is the core object that holds simulation time, inventory state,
// and the event loop for one run.
//
// Invariant: the queue holds at most two live events, the next demand
// arrival (always present, regenerated one at a time) and at most one
// order arrival (single outstanding order). A third event would mean a
// duplicated demand stream or a second concurrent order.
type Simulator struct {
	Clock   float64
	Horizon float64
	// EventQueue holds the pending demand arrival and, at most, one order arrival
	EventQueue EventQueue
	Config     *SimulationConfig
	State      *InventoryState

	rng       *rand.Rand
	arrivals  demand.ArrivalSampler
	leadTimes demand.LeadTimeSampler

	// run accumulators, finalized into a RunResult
	holdingCost    float64
	stockoutCost   float64
	orderingCost   float64
	totalDemand    int
	immediateFills int
	ordersPlaced   int
	onHandIntegral float64 // ∫ max(OnHand, 0) dt, for time-weighted average inventory

	// High-water marks for the engine's structural invariants (two live
	// events, one open order). Instrumentation for invariant checks, not
	// part of the run's reported metrics.
	peakQueueDepth int
	peakOpenOrders int
}

// NewSimulator validates the config and builds a run-ready simulator with
// its own seeded random stream.
func NewSimulator(cfg *SimulationConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	leadTimes, err := demand.NewLeadTimeSampler(cfg.LeadTime)
	if err != nil {
		// Covered by cfg.Validate; defensive
		return nil, err
	}
	return &Simulator{
		Horizon:    cfg.Horizon,
		EventQueue: make(EventQueue, 0, 2),
		Config:     cfg,
		State:      NewInventoryState(cfg),
		rng:        newRunRNG(cfg.Seed),
		arrivals:   demand.NewPoissonArrivals(cfg.DemandRate),
		leadTimes:  leadTimes,
	}, nil
}

// Schedule pushes an event into the simulator's EventQueue. More than two
// live events means a scheduling bug, so the bound is checked here.
func (sim *Simulator) Schedule(ev Event) {
	heap.Push(&sim.EventQueue, ev)
	if len(sim.EventQueue) > sim.peakQueueDepth {
		sim.peakQueueDepth = len(sim.EventQueue)
	}
	if len(sim.EventQueue) > 2 {
		logrus.Warnf("event queue depth %d exceeds the two-event bound at t=%.4f", len(sim.EventQueue), sim.Clock)
	}
}

// Run executes the event loop until the horizon and returns the finalized
// RunResult. Deterministic for a fixed config and seed.
func (sim *Simulator) Run() *RunResult {
	sim.prime()
	for !sim.step() {
	}
	logrus.Debugf("[%.4f days] simulation ended", sim.Clock)
	return sim.finalize()
}

// prime schedules the first demand arrival and runs the initial reorder
// check, a no-op in the usual case because the run starts fully stocked
// at S.
func (sim *Simulator) prime() {
	sim.Schedule(&DemandArrivalEvent{time: sim.arrivals.NextInterarrival(sim.rng)})
	sim.maybeReorder(0)
}

// step advances the clock to the next pending event, accrues time-weighted
// costs for the elapsed interval, and dispatches the event. Returns true
// once the horizon is reached.
func (sim *Simulator) step() bool {
	if len(sim.EventQueue) == 0 {
		return true
	}
	ev := heap.Pop(&sim.EventQueue).(Event)
	t := ev.Timestamp()
	if t >= sim.Horizon {
		// Accrue costs for the tail interval, then stop.
		sim.accrue(sim.Horizon - sim.Clock)
		sim.Clock = sim.Horizon
		return true
	}
	sim.accrue(t - sim.Clock)
	sim.Clock = t
	ev.Execute(sim)
	return false
}

// accrue charges time-weighted costs for an elapsed interval: holding cost
// while on-hand is positive and, in backorder mode, the per-unit-day
// stockout penalty while backorders are outstanding.
func (sim *Simulator) accrue(dt float64) {
	if dt <= 0 {
		return
	}
	if onHand := sim.State.OnHand; onHand > 0 {
		sim.holdingCost += float64(onHand) * sim.Config.HoldingCostRate * dt
		sim.onHandIntegral += float64(onHand) * dt
	}
	if bo := sim.State.Backorders(); bo > 0 {
		sim.stockoutCost += float64(bo) * sim.Config.StockoutPenalty * dt
	}
}

func (sim *Simulator) handleDemandArrival(now float64) {
	sim.totalDemand++
	if sim.State.OnDemandArrival() {
		sim.immediateFills++
	} else if sim.Config.Stockout == StockoutLostSale {
		// Lost sale: one-off penalty per unfilled unit. Backorder-mode
		// penalties are time-weighted and charged in accrue instead.
		sim.stockoutCost += sim.Config.StockoutPenalty
	}

	// Regenerate the demand stream before the reorder check so the RNG
	// draw order is stable: interarrival first, then lead time.
	sim.Schedule(&DemandArrivalEvent{time: now + sim.arrivals.NextInterarrival(sim.rng)})
	sim.maybeReorder(now)
}

func (sim *Simulator) handleOrderArrival(now float64) {
	sim.State.OnOrderArrival()
	// Demand during the lead time may have pulled the position back below
	// s while no second order could be placed; reorder immediately if so.
	sim.maybeReorder(now)
}

// maybeReorder applies the (s, S) rule: when the inventory position is at
// or below s and no order is outstanding, order up to S.
func (sim *Simulator) maybeReorder(now float64) {
	if sim.State.OrderPending || sim.State.Position() > sim.Config.ReorderPoint {
		return
	}
	qty := sim.Config.OrderUpTo - sim.State.Position()
	if qty <= 0 {
		return
	}
	due := now + sim.leadTimes.NextLeadTime(sim.rng)
	sim.State.PlaceOrder(qty, due)
	sim.ordersPlaced++
	sim.orderingCost += sim.Config.FixedOrderCost
	if sim.peakOpenOrders < 1 {
		sim.peakOpenOrders = 1
	}
	sim.Schedule(&OrderArrivalEvent{time: due, Qty: qty})
	logrus.Debugf(">> Order placed: %d units at %.4f days, due %.4f", qty, now, due)
}

func (sim *Simulator) finalize() *RunResult {
	r := &RunResult{
		HoldingCost:      sim.holdingCost,
		StockoutCost:     sim.stockoutCost,
		OrderingCost:     sim.orderingCost,
		TotalCost:        sim.holdingCost + sim.stockoutCost + sim.orderingCost,
		TotalDemand:      sim.totalDemand,
		ImmediateFills:   sim.immediateFills,
		OrdersPlaced:     sim.ordersPlaced,
		AvgOnHand:        sim.onHandIntegral / sim.Horizon,
		EndingOnHand:     sim.State.OnHand,
		EndingBackorders: sim.State.Backorders(),
		Seed:             sim.Config.Seed,
	}
	return r
}
