package models

// Table is a seating resource with a single occupancy slot. There is no
// queueing or reservation beyond direct assignment.
type Table struct {
	Number     int      `json:"number"`
	Location   Location `json:"location"`
	OccupantID string   `json:"occupant_id,omitempty"`
}

// Assign seats a customer. It fails if the table is already occupied;
// the occupant must be released before the table can be reassigned.
func (t *Table) Assign(customerID string) bool {
	if t == nil || customerID == "" || t.OccupantID != "" {
		return false
	}
	t.OccupantID = customerID
	return true
}

// Release clears the occupant.
func (t *Table) Release() {
	if t != nil {
		t.OccupantID = ""
	}
}

func (t *Table) Available() bool {
	return t != nil && t.OccupantID == ""
}
