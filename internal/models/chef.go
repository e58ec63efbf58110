package models

// Chef works the kitchen: it discovers unclaimed pending orders, claims
// one, cooks at a station, and deposits the plate on the pass counter.
type Chef struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	State    string   `json:"state"`
	Location Location `json:"location"`
	Speed    float64  `json:"speed"`
	IdlePost Location `json:"idle_post"`

	CustomerID string    `json:"customer_id,omitempty"` // customer whose order is claimed
	StationID  string    `json:"station_id,omitempty"`
	Food       *FoodItem `json:"food,omitempty"` // carried plate, if any

	Movement *MovementTask `json:"movement,omitempty"`
}
