package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func readyItem(id, foodType string) *FoodItem {
	return &FoodItem{ID: id, FoodType: foodType, CookingState: FoodStateReady}
}

func TestCounterCapacity(t *testing.T) {
	c := NewPassCounter(Location{}, 2)

	assert.True(t, c.Deposit(readyItem("f1", "ribeye")))
	assert.True(t, c.Deposit(readyItem("f2", "ribeye")))
	assert.False(t, c.Deposit(readyItem("f3", "ribeye")), "deposit at capacity must fail")
	assert.Equal(t, 2, c.Len())

	c.Remove("f1")
	assert.True(t, c.Deposit(readyItem("f3", "ribeye")), "freed slot accepts again")
}

func TestCounterReservedPlateOnlyForHolder(t *testing.T) {
	c := NewPassCounter(Location{}, 5)
	a := readyItem("f1", "risotto")
	c.Deposit(a)
	c.Deposit(readyItem("f2", "risotto"))

	assert.True(t, a.Reserve("waiter-1"))

	assert.Nil(t, c.TakeReservedFor("waiter-2"), "reservation belongs to waiter-1")
	assert.Equal(t, a, c.PeekReservedFor("waiter-1"))
	assert.Equal(t, a, c.TakeReservedFor("waiter-1"))
	assert.Nil(t, c.PeekReservedFor("waiter-1"))
	assert.Equal(t, 1, c.Len())
}

func TestCounterReservationFirstWins(t *testing.T) {
	item := readyItem("f1", "carbonara")

	assert.True(t, item.Reserve("waiter-1"))
	assert.False(t, item.Reserve("waiter-2"))

	item.ReleaseReservation("waiter-2")
	assert.True(t, item.IsReserved(), "only the holder can release")
	item.ReleaseReservation("waiter-1")
	assert.False(t, item.IsReserved())
}

func TestCounterCountByTypeIncludesReserved(t *testing.T) {
	c := NewPassCounter(Location{}, 5)
	a := readyItem("f1", "margherita")
	a.Reserve("waiter-1")
	c.Deposit(a)
	c.Deposit(readyItem("f2", "margherita"))
	c.Deposit(readyItem("f3", "ribeye"))

	assert.Equal(t, 2, c.CountByType("margherita"))
	assert.Equal(t, 1, c.CountByType("ribeye"))
	assert.Equal(t, 0, c.CountByType("risotto"))
}

func TestCounterRemoveByID(t *testing.T) {
	c := NewPassCounter(Location{}, 5)
	c.Deposit(readyItem("f1", "ribeye"))
	c.Deposit(readyItem("f2", "margherita"))

	got := c.Remove("f1")
	assert.Equal(t, "f1", got.ID)
	assert.Nil(t, c.Remove("f1"), "already gone")
	assert.Equal(t, 1, c.Len())
}
