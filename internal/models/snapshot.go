package models

import "time"

// WorldSnapshot captures everything needed to resume a service
// mid-task: agent states, positions, claims by ID, and deadlines. A
// restored world ticks on with the same externally observable
// behaviour.
type WorldSnapshot struct {
	Time         time.Time          `json:"time"`
	Funds        float64            `json:"funds"`
	Served       int                `json:"served"`
	Lost         int                `json:"lost"`
	Customers    []CustomerSnapshot `json:"customers"`
	Waiters      []WaiterSnapshot   `json:"waiters"`
	Chefs        []ChefSnapshot     `json:"chefs"`
	Tables       []Table            `json:"tables"`
	Stations     []StationSnapshot  `json:"stations"`
	CounterItems []FoodItem         `json:"counter_items"`
}

type CustomerSnapshot struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	State            string        `json:"state"`
	Location         Location      `json:"location"`
	Speed            float64       `json:"speed"`
	TableNumber      int           `json:"table_number"`
	Order            *Order        `json:"order,omitempty"`
	WaiterID         string        `json:"waiter_id,omitempty"`
	FoodInDelivery   bool          `json:"food_in_delivery"`
	PreferredTypes   []string      `json:"preferred_types,omitempty"`
	ArrivedAt        time.Time     `json:"arrived_at"`
	PatienceDeadline time.Time     `json:"patience_deadline"`
	OrderingUntil    time.Time     `json:"ordering_until"`
	EatingUntil      time.Time     `json:"eating_until"`
	Satisfied        bool          `json:"satisfied"`
	Movement         *MovementTask `json:"movement,omitempty"`
}

type WaiterSnapshot struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	State           string        `json:"state"`
	Location        Location      `json:"location"`
	Speed           float64       `json:"speed"`
	IdlePost        Location      `json:"idle_post"`
	CustomerID      string        `json:"customer_id,omitempty"`
	OrderID         string        `json:"order_id,omitempty"`
	HeldFood        *FoodItem     `json:"held_food,omitempty"`
	ReservedFoodID  string        `json:"reserved_food_id,omitempty"`
	CounterDeadline time.Time     `json:"counter_deadline"`
	Movement        *MovementTask `json:"movement,omitempty"`
}

type ChefSnapshot struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	State      string        `json:"state"`
	Location   Location      `json:"location"`
	Speed      float64       `json:"speed"`
	IdlePost   Location      `json:"idle_post"`
	CustomerID string        `json:"customer_id,omitempty"`
	StationID  string        `json:"station_id,omitempty"`
	Food       *FoodItem     `json:"food,omitempty"`
	Movement   *MovementTask `json:"movement,omitempty"`
}

type StationSnapshot struct {
	ID       string              `json:"id"`
	Spec     StationSpec         `json:"spec"`
	Location Location            `json:"location"`
	Slots    []StationSlotRecord `json:"slots"`
}

type StationSlotRecord struct {
	Food    FoodItem  `json:"food"`
	Cooking bool      `json:"cooking"`
	DoneAt  time.Time `json:"done_at"`
}
