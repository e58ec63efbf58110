package models

// DefaultCounterCapacity is how many plates the pass counter holds when
// the config does not say otherwise.
const DefaultCounterCapacity = 5

// PassCounter is the bounded hand-off buffer between the kitchen and
// the floor. Chefs deposit finished food; waiters collect it through a
// reservation made earlier, or clear plates whose customer has left.
type PassCounter struct {
	Location Location
	Capacity int
	items    []*FoodItem
}

func NewPassCounter(loc Location, capacity int) *PassCounter {
	if capacity <= 0 {
		capacity = DefaultCounterCapacity
	}
	return &PassCounter{Location: loc, Capacity: capacity}
}

// Deposit places a plate on the pass. It fails when the counter is at
// capacity; the caller keeps the item and retries.
func (c *PassCounter) Deposit(food *FoodItem) bool {
	if c == nil || food == nil || len(c.items) >= c.Capacity {
		return false
	}
	c.items = append(c.items, food)
	return true
}

// TakeReservedFor removes and returns exactly the item the given waiter
// reserved, or nil if it is gone. Reservations keep a second waiter
// from intercepting a plate between scan and pickup.
func (c *PassCounter) TakeReservedFor(waiterID string) *FoodItem {
	if c == nil {
		return nil
	}
	for i, item := range c.items {
		if item.ReservedBy == waiterID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return item
		}
	}
	return nil
}

// PeekReservedFor returns the reserved item without removing it.
func (c *PassCounter) PeekReservedFor(waiterID string) *FoodItem {
	if c == nil {
		return nil
	}
	for _, item := range c.items {
		if item.ReservedBy == waiterID {
			return item
		}
	}
	return nil
}

// CountByType counts every item of the given type on the pass, reserved
// or not. The chef's duplicate-prevention rule reads this.
func (c *PassCounter) CountByType(foodType string) int {
	if c == nil {
		return 0
	}
	n := 0
	for _, item := range c.items {
		if item.FoodType == foodType {
			n++
		}
	}
	return n
}

// Remove takes a specific item off the pass by ID, e.g. to dispose of
// food whose customer has left.
func (c *PassCounter) Remove(foodID string) *FoodItem {
	if c == nil {
		return nil
	}
	for i, item := range c.items {
		if item.ID == foodID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return item
		}
	}
	return nil
}

func (c *PassCounter) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Items returns a copy of the current contents, oldest first.
func (c *PassCounter) Items() []*FoodItem {
	if c == nil {
		return nil
	}
	out := make([]*FoodItem, len(c.items))
	copy(out, c.items)
	return out
}
