package models

import "time"

// Customer is a guest working through one visit: enter, wait for a
// waiter, order, wait for food, eat, leave. All cross-agent references
// are IDs resolved through the registries, never pointers.
type Customer struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	State    string   `json:"state"`
	Location Location `json:"location"`
	Speed    float64  `json:"speed"` // metres per second

	TableNumber    int    `json:"table_number"` // 0 = none
	CurrentOrder   *Order `json:"current_order,omitempty"`
	WaiterID       string `json:"waiter_id,omitempty"` // claimed-by, single owner
	FoodInDelivery bool   `json:"food_in_delivery"`

	PreferredTypes []string `json:"preferred_types,omitempty"`

	ArrivedAt        time.Time `json:"arrived_at"`
	PatienceDeadline time.Time `json:"patience_deadline"`
	OrderingUntil    time.Time `json:"ordering_until"`
	EatingUntil      time.Time `json:"eating_until"`
	Satisfied        bool      `json:"satisfied"`

	Movement *MovementTask `json:"movement,omitempty"`
}

// AssignWaiter claims the customer for one waiter. First caller wins;
// later callers must observe the claim and skip.
func (c *Customer) AssignWaiter(waiterID string) bool {
	if c == nil || waiterID == "" || c.WaiterID != "" {
		return false
	}
	c.WaiterID = waiterID
	return true
}

// ReleaseWaiter clears the claim if waiterID holds it.
func (c *Customer) ReleaseWaiter(waiterID string) {
	if c != nil && c.WaiterID == waiterID {
		c.WaiterID = ""
	}
}

// ClearWaiterAssignment unconditionally drops the waiter claim. Used on
// the customer's own exit paths, where whoever held the claim must
// notice on their next validity check.
func (c *Customer) ClearWaiterAssignment() {
	if c != nil {
		c.WaiterID = ""
	}
}

func (c *Customer) IsWaiterAssigned() bool {
	return c != nil && c.WaiterID != ""
}

// Departed reports whether the customer is on the way out and no longer
// valid as a work target.
func (c *Customer) Departed() bool {
	return c == nil || c.State == CustomerStateLeaving
}
