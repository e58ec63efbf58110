package models

import "time"

// Order is one customer's request for a dish. The customer that placed
// it owns the record; the waiter or chef currently working on it only
// holds a claim by ID.
type Order struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customer_id"`
	FoodType      string    `json:"food_type"`
	Price         float64   `json:"price"`
	Status        string    `json:"status"`
	PlacedAt      time.Time `json:"placed_at"`
	ClaimedByChef string    `json:"claimed_by_chef,omitempty"`
}

// orderStatusNext is the only legal forward path. There are no skip
// transitions; pending food must pass through preparation, pickup and
// delivery before it counts as fulfilled.
var orderStatusNext = map[string]string{
	OrderStatusNone:          OrderStatusPending,
	OrderStatusPending:       OrderStatusInPreparation,
	OrderStatusInPreparation: OrderStatusReady,
	OrderStatusReady:         OrderStatusInDelivery,
	OrderStatusInDelivery:    OrderStatusFulfilled,
}

// AdvanceTo moves the order one step along the lifecycle. It returns
// false and leaves the order untouched if the requested status is not
// the immediate successor of the current one.
func (o *Order) AdvanceTo(status string) bool {
	if o == nil || orderStatusNext[o.Status] != status {
		return false
	}
	o.Status = status
	return true
}

// ClaimByChef reserves the order for one chef. First caller wins; a
// losing chef must observe the claim and keep scanning.
func (o *Order) ClaimByChef(chefID string) bool {
	if o == nil || chefID == "" || o.ClaimedByChef != "" {
		return false
	}
	o.ClaimedByChef = chefID
	return true
}

// ReleaseChefClaim clears the chef claim if chefID holds it.
func (o *Order) ReleaseChefClaim(chefID string) {
	if o != nil && o.ClaimedByChef == chefID {
		o.ClaimedByChef = ""
	}
}

// Requeue returns a claimed order to the pending pool after a cooking
// failure so another chef can pick it up. This is the explicit recovery
// path; AdvanceTo never moves backwards.
func (o *Order) Requeue(chefID string) {
	if o == nil || o.ClaimedByChef != chefID {
		return
	}
	o.ClaimedByChef = ""
	if o.Status == OrderStatusInPreparation {
		o.Status = OrderStatusPending
	}
}

// FailDelivery returns an in-delivery order to the pending pool so the
// kitchen can cook a replacement after the carried food was lost.
func (o *Order) FailDelivery() {
	if o != nil && o.Status == OrderStatusInDelivery {
		o.Status = OrderStatusPending
	}
}
