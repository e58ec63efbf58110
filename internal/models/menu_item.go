package models

// MenuItem describes one dish on the menu. Name doubles as the food
// type carried by orders and food items.
type MenuItem struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	BasePrice      float64 `json:"base_price"`
	PrepComplexity float64 `json:"prep_complexity"`
	StationKind    string  `json:"station_kind"`
}
