package simulator

import (
	"github.com/ckarenz/floorsim/internal/models"
)

// CustomerRegistry tracks everyone currently on the floor. Lookups by
// ID return nil once a customer is pruned, which is exactly the signal
// the staff validity checks key off.
type CustomerRegistry struct {
	byID    map[string]*models.Customer
	ordered []*models.Customer // arrival order
}

func NewCustomerRegistry() *CustomerRegistry {
	return &CustomerRegistry{byID: make(map[string]*models.Customer)}
}

func (r *CustomerRegistry) Add(c *models.Customer) {
	if c == nil || c.ID == "" {
		return
	}
	if _, ok := r.byID[c.ID]; ok {
		return
	}
	r.byID[c.ID] = c
	r.ordered = append(r.ordered, c)
}

// Get returns the customer or nil if they have left the floor.
func (r *CustomerRegistry) Get(id string) *models.Customer {
	return r.byID[id]
}

func (r *CustomerRegistry) Remove(id string) {
	if _, ok := r.byID[id]; !ok {
		return
	}
	delete(r.byID, id)
	for i, c := range r.ordered {
		if c.ID == id {
			r.ordered = append(r.ordered[:i], r.ordered[i+1:]...)
			break
		}
	}
}

// All returns the customers in arrival order.
func (r *CustomerRegistry) All() []*models.Customer {
	out := make([]*models.Customer, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// InState returns customers currently in the given state, in arrival
// order, so longest-waiting customers are considered first.
func (r *CustomerRegistry) InState(state string) []*models.Customer {
	var out []*models.Customer
	for _, c := range r.ordered {
		if c.State == state {
			out = append(out, c)
		}
	}
	return out
}

func (r *CustomerRegistry) Len() int {
	return len(r.ordered)
}

func (s *Simulator) waiterByID(id string) *models.Waiter {
	for _, w := range s.Waiters {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func (s *Simulator) chefByID(id string) *models.Chef {
	for _, c := range s.Chefs {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *Simulator) tableByNumber(n int) *models.Table {
	for _, t := range s.Tables {
		if t.Number == n {
			return t
		}
	}
	return nil
}

func (s *Simulator) stationByID(id string) *models.Station {
	for _, st := range s.Stations {
		if st.ID == id {
			return st
		}
	}
	return nil
}

func (s *Simulator) menuItemByType(foodType string) *models.MenuItem {
	return s.Menu[foodType]
}
