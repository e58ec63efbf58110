package simulator

import (
	"testing"
	"time"

	"github.com/ckarenz/floorsim/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestSim()
	s.Funds = 321.5
	s.Served = 4
	s.Lost = 2
	s.advance(45 * time.Minute)

	// a customer mid-visit with a claimed order
	c := seatCustomer(s, 3)
	order := placeOrder(s, c, "carbonara")
	order.Status = models.OrderStatusInPreparation
	chef := s.Chefs[0]
	assert.True(t, order.ClaimByChef(chef.ID))
	chef.CustomerID = c.ID
	chef.State = models.ChefStateCooking

	// the plate cooking on a station
	station := s.findStationFor("carbonara")
	food := &models.FoodItem{ID: "plate-1", FoodType: "carbonara", CookingState: models.FoodStateRaw, OrderID: order.ID}
	assert.True(t, station.Accept(food, s.CurrentTime, s.cookDuration(station)))
	assert.True(t, station.StartCooking("plate-1", s.CurrentTime, s.cookDuration(station)))
	chef.StationID = station.ID
	chef.Food = food

	// a reserved plate on the pass and the waiter walking to it
	w := s.Waiters[0]
	other := seatCustomer(s, 7)
	otherOrder := placeOrder(s, other, "margherita")
	plate := readyPlate(s, otherOrder)
	assert.True(t, other.AssignWaiter(w.ID))
	assert.True(t, plate.Reserve(w.ID))
	w.CustomerID = other.ID
	w.OrderID = otherOrder.ID
	w.ReservedFoodID = plate.ID
	w.State = models.WaiterStateMovingToCounter
	w.Movement = models.NewMovementTask(s.Counter.Location)

	snap := s.TakeSnapshot()

	restored := NewSimulator(testConfig())
	restored.RestoreSnapshot(&snap)

	assert.Equal(t, s.CurrentTime, restored.CurrentTime)
	assert.Equal(t, 321.5, restored.Funds)
	assert.Equal(t, 4, restored.Served)
	assert.Equal(t, 2, restored.Lost)

	rc := restored.Customers.Get(c.ID)
	assert.NotNil(t, rc)
	assert.Equal(t, models.CustomerStateWaitingForFood, rc.State)
	assert.Equal(t, chef.ID, rc.CurrentOrder.ClaimedByChef, "chef claim survives the round trip")
	assert.Equal(t, c.ID, restored.tableByNumber(3).OccupantID)

	rw := restored.waiterByID(w.ID)
	assert.NotNil(t, rw)
	assert.Equal(t, models.WaiterStateMovingToCounter, rw.State)
	assert.Equal(t, plate.ID, rw.ReservedFoodID)
	restoredPlate := restored.Counter.PeekReservedFor(w.ID)
	assert.NotNil(t, restoredPlate, "reservation on the pass survives")
	assert.Equal(t, plate.ID, restoredPlate.ID)

	rchef := restored.chefByID(chef.ID)
	assert.NotNil(t, rchef)
	assert.Equal(t, models.ChefStateCooking, rchef.State)
	rstation := restored.stationByID(station.ID)
	assert.NotNil(t, rstation)
	assert.Equal(t, 1, rstation.Occupancy())
	assert.Same(t, rstation.Slots[0].Food, rchef.Food,
		"chef handle and station slot must share one plate")

	// the restored kitchen keeps cooking where it left off
	restored.advance(restored.cookDuration(rstation) + time.Second)
	restored.updateStation(rstation)
	assert.Equal(t, models.FoodStateReady, rchef.Food.CookingState)
}

func TestSnapshotRestoreIntoFreshWorldIsRunnable(t *testing.T) {
	s := newTestSim()
	c := seatCustomer(s, 1)
	placeOrder(s, c, "caesar_salad")

	snap := s.TakeSnapshot()
	restored := NewSimulator(testConfig())
	restored.RestoreSnapshot(&snap)

	assert.Equal(t, 1, restored.EventQueue.Len(), "arrivals keep flowing after a resume")

	// a few ticks must not panic or corrupt state
	for i := 0; i < 20; i++ {
		restored.Tick()
	}
	assert.NotNil(t, restored.Customers.Get(c.ID))
}
