package models

import "time"

// Waiter serves the floor: it discovers waiting customers or ready
// food, claims one unit of work, executes the leg, and returns to its
// post. At most one of HeldFood and ReservedFoodID is ever set.
type Waiter struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	State    string   `json:"state"`
	Location Location `json:"location"`
	Speed    float64  `json:"speed"`
	IdlePost Location `json:"idle_post"`

	CustomerID     string    `json:"customer_id,omitempty"` // claimed customer
	OrderID        string    `json:"order_id,omitempty"`    // order being shepherded
	HeldFood       *FoodItem `json:"held_food,omitempty"`
	ReservedFoodID string    `json:"reserved_food_id,omitempty"`

	CounterDeadline time.Time `json:"counter_deadline"` // waiting-at-pass timeout

	Movement *MovementTask `json:"movement,omitempty"`
}
