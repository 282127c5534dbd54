package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event has a Timestamp (in simulated days) and an Execute method
// that advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// DemandArrivalEvent represents the arrival of one unit of customer demand.
// Exactly one is live at any time: consuming it schedules the next.
type DemandArrivalEvent struct {
	time float64
}

// Timestamp returns the scheduled time of the DemandArrivalEvent.
func (e *DemandArrivalEvent) Timestamp() float64 {
	return e.time
}

// Execute consumes one unit of demand, regenerates the next arrival, and
// runs the reorder check.
func (e *DemandArrivalEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< Demand arrival at %.4f days", e.time)
	sim.handleDemandArrival(e.time)
}

// OrderArrivalEvent represents the receipt of the single outstanding
// replenishment order.
type OrderArrivalEvent struct {
	time float64
	Qty  int
}

// Timestamp returns the scheduled time of the OrderArrivalEvent.
func (e *OrderArrivalEvent) Timestamp() float64 {
	return e.time
}

// Execute receives the outstanding order into on-hand stock and runs the
// reorder check again, since demand during the lead time may have pulled
// the position back below s.
func (e *OrderArrivalEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< Order arrival: %d units at %.4f days", e.Qty, e.time)
	sim.handleOrderArrival(e.time)
}
