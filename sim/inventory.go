package sim

// InventoryState tracks stock for one SKU during a single run. Owned
// exclusively by that run's Simulator; never shared across replications.
//
// In backorder mode OnHand may go negative, the magnitude being the count
// of outstanding backorders. In lost-sale mode OnHand never drops below
// zero. At most one replenishment order is outstanding at any time: a
// documented simplifying business rule, not an optimization.
type InventoryState struct {
	OnHand       int
	OnOrderQty   int     // 0 or the single outstanding replenishment quantity
	OrderDue     float64 // meaningful only while OrderPending
	OrderPending bool

	backorders bool // true in backorder mode
}

// NewInventoryState starts a run fully stocked at the order-up-to level.
func NewInventoryState(cfg *SimulationConfig) *InventoryState {
	return &InventoryState{
		OnHand:     cfg.OrderUpTo,
		backorders: cfg.Stockout == StockoutBackorder,
	}
}

// Position returns the inventory position: on-hand plus on-order minus
// backorders. A negative OnHand already nets out backorders, so the sum
// is the position in both modes.
func (st *InventoryState) Position() int {
	return st.OnHand + st.OnOrderQty
}

// Backorders returns the current count of outstanding backorders.
func (st *InventoryState) Backorders() int {
	if st.OnHand < 0 {
		return -st.OnHand
	}
	return 0
}

// OnDemandArrival consumes one unit of demand. Returns true if the unit
// was filled immediately from on-hand stock. In backorder mode an
// unfilled unit pushes OnHand negative; in lost-sale mode it is dropped.
func (st *InventoryState) OnDemandArrival() bool {
	if st.OnHand > 0 {
		st.OnHand--
		return true
	}
	if st.backorders {
		st.OnHand--
	}
	return false
}

// OnOrderArrival receives the outstanding order into on-hand stock and
// clears the pending flag. Adding to a negative OnHand nets out
// outstanding backorders before stock becomes available again.
// Returns the received quantity.
func (st *InventoryState) OnOrderArrival() int {
	qty := st.OnOrderQty
	st.OnHand += qty
	st.OnOrderQty = 0
	st.OrderPending = false
	st.OrderDue = 0
	return qty
}

// PlaceOrder records the single outstanding replenishment. Callers must
// check OrderPending first; the engine only places an order when none is
// outstanding.
func (st *InventoryState) PlaceOrder(qty int, due float64) {
	st.OnOrderQty = qty
	st.OrderDue = due
	st.OrderPending = true
}
