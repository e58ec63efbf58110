package models

// FoodItem is one plated dish moving from a station to a table. The
// reservation is advisory: any waiter may attempt it, exactly one
// succeeds, and there is no preemption.
type FoodItem struct {
	ID           string `json:"id"`
	FoodType     string `json:"food_type"`
	CookingState string `json:"cooking_state"`
	OrderID      string `json:"order_id,omitempty"`
	ReservedBy   string `json:"reserved_by,omitempty"` // waiter ID
}

// Reserve marks the item for pickup by one waiter. First caller wins.
func (f *FoodItem) Reserve(waiterID string) bool {
	if f == nil || waiterID == "" || f.ReservedBy != "" {
		return false
	}
	f.ReservedBy = waiterID
	return true
}

// ReleaseReservation clears the reservation if waiterID holds it.
func (f *FoodItem) ReleaseReservation(waiterID string) {
	if f != nil && f.ReservedBy == waiterID {
		f.ReservedBy = ""
	}
}

func (f *FoodItem) IsReserved() bool {
	return f != nil && f.ReservedBy != ""
}
