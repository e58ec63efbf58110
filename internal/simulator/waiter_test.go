package simulator

import (
	"testing"
	"time"

	"github.com/ckarenz/floorsim/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestWaiterClaimIsExclusive(t *testing.T) {
	s := newTestSim()
	c := seatCustomer(s, 1)
	w1, w2 := s.Waiters[0], s.Waiters[1]

	assert.True(t, s.waiterScan(w1))
	assert.Equal(t, w1.ID, c.WaiterID)
	assert.Equal(t, models.WaiterStateMovingToTable, w1.State)

	assert.False(t, s.waiterScan(w2), "claimed customer is invisible to later scans")
	assert.Equal(t, models.WaiterStateIdle, w2.State)
}

func TestWaiterTakesOrderAfterPause(t *testing.T) {
	s := newTestSim()
	c := seatCustomer(s, 1)
	w := s.Waiters[0]

	assert.True(t, c.AssignWaiter(w.ID))
	w.CustomerID = c.ID
	w.Location = c.Location
	w.State = models.WaiterStateTakingOrder
	c.State = models.CustomerStateOrdering
	c.OrderingUntil = s.CurrentTime.Add(s.Config.OrderTakingTime)

	s.updateWaiter(w)
	assert.Equal(t, models.WaiterStateTakingOrder, w.State, "order taking takes time")
	assert.Nil(t, c.CurrentOrder)

	s.advance(s.Config.OrderTakingTime)
	s.updateWaiter(w)

	assert.NotNil(t, c.CurrentOrder)
	assert.Equal(t, models.OrderStatusPending, c.CurrentOrder.Status)
	assert.Equal(t, models.CustomerStateWaitingForFood, c.State)
	assert.Equal(t, models.WaiterStateMovingToCounter, w.State)
	assert.Equal(t, c.CurrentOrder.ID, w.OrderID)
}

func TestWaiterTakesNearbyOrderBeforeCounterTrip(t *testing.T) {
	s := newTestSim()
	first := seatCustomer(s, 1)
	second := seatCustomer(s, 5) // one row over, inside the work radius
	w := s.Waiters[0]

	assert.True(t, first.AssignWaiter(w.ID))
	w.CustomerID = first.ID
	w.Location = first.Location
	w.State = models.WaiterStateTakingOrder
	first.State = models.CustomerStateOrdering
	first.OrderingUntil = s.CurrentTime

	s.updateWaiter(w)

	assert.NotNil(t, first.CurrentOrder)
	assert.Empty(t, first.WaiterID, "finished customer is released")
	assert.Equal(t, second.ID, w.CustomerID, "neighbouring customer claimed next")
	assert.Equal(t, models.WaiterStateMovingToTable, w.State)
}

func TestWaiterPrefersReadyFoodOverNewOrders(t *testing.T) {
	s := newTestSim()
	eater := seatCustomer(s, 1)
	order := placeOrder(s, eater, "margherita")
	plate := readyPlate(s, order)
	seatCustomer(s, 5)
	w := s.Waiters[0]

	assert.True(t, s.waiterScan(w))

	assert.Equal(t, models.WaiterStateMovingToCounter, w.State)
	assert.Equal(t, plate.ID, w.ReservedFoodID)
	assert.Equal(t, w.ID, plate.ReservedBy)
	assert.Equal(t, w.ID, eater.WaiterID)
}

func TestSinglePlateGetsSingleDelivery(t *testing.T) {
	s := newTestSim()
	eater := seatCustomer(s, 1)
	order := placeOrder(s, eater, "carbonara")
	plate := readyPlate(s, order)
	w1, w2 := s.Waiters[0], s.Waiters[1]

	assert.True(t, s.waiterScan(w1))
	assert.False(t, s.waiterScan(w2), "reserved plate and claimed customer leave no work")

	assert.Equal(t, w1.ID, plate.ReservedBy)
	assert.Equal(t, models.WaiterStateIdle, w2.State)
	assert.Empty(t, w2.ReservedFoodID)
}

func TestWaiterCounterWaitTimesOut(t *testing.T) {
	s := newTestSim()
	c := seatCustomer(s, 1)
	order := placeOrder(s, c, "ribeye")
	w := s.Waiters[0]

	assert.True(t, c.AssignWaiter(w.ID))
	w.CustomerID = c.ID
	w.OrderID = order.ID
	w.Location = s.Counter.Location
	w.State = models.WaiterStateWaitingForFood
	w.CounterDeadline = s.CurrentTime.Add(s.Config.CounterWaitTimeout)

	s.updateWaiter(w)
	assert.Equal(t, models.WaiterStateWaitingForFood, w.State)

	s.advance(s.Config.CounterWaitTimeout + time.Second)
	s.updateWaiter(w)

	assert.Equal(t, models.WaiterStateIdle, w.State)
	assert.Empty(t, w.OrderID)
	assert.Empty(t, c.WaiterID, "customer released for another waiter")
	assert.Equal(t, models.OrderStatusPending, order.Status, "the order itself survives")
}

func TestWaiterPicksUpPlateWhileWaiting(t *testing.T) {
	s := newTestSim()
	c := seatCustomer(s, 1)
	order := placeOrder(s, c, "risotto")
	w := s.Waiters[0]

	assert.True(t, c.AssignWaiter(w.ID))
	w.CustomerID = c.ID
	w.OrderID = order.ID
	w.Location = s.Counter.Location
	w.State = models.WaiterStateWaitingForFood
	w.CounterDeadline = s.CurrentTime.Add(s.Config.CounterWaitTimeout)

	// the kitchen lands the plate mid-wait
	order.Status = models.OrderStatusInPreparation
	plate := &models.FoodItem{ID: "plate-1", FoodType: "risotto", CookingState: models.FoodStateReady, OrderID: order.ID}
	s.Counter.Deposit(plate)
	order.Status = models.OrderStatusReady

	s.updateWaiter(w)

	assert.Equal(t, models.WaiterStateDelivering, w.State)
	assert.Equal(t, plate, w.HeldFood)
	assert.Equal(t, models.OrderStatusInDelivery, order.Status)
	assert.True(t, c.FoodInDelivery)
	assert.Equal(t, 0, s.Counter.Len())
}

func TestWaiterDeliversAndCollectsPayment(t *testing.T) {
	s := newTestSim()
	c := seatCustomer(s, 1)
	order := placeOrder(s, c, "margherita")
	order.Status = models.OrderStatusInDelivery
	w := s.Waiters[0]

	assert.True(t, c.AssignWaiter(w.ID))
	w.CustomerID = c.ID
	w.OrderID = order.ID
	w.HeldFood = &models.FoodItem{ID: "plate-1", FoodType: "margherita", CookingState: models.FoodStateReady, OrderID: order.ID}
	w.Location = c.Location
	w.Movement = models.NewMovementTask(c.Location)
	w.State = models.WaiterStateDelivering
	c.FoodInDelivery = true
	fundsBefore := s.Funds

	s.updateWaiter(w)

	assert.Equal(t, models.OrderStatusFulfilled, order.Status)
	assert.Equal(t, models.CustomerStateEating, c.State)
	assert.False(t, c.FoodInDelivery)
	assert.Equal(t, fundsBefore+order.Price, s.Funds)
	assert.Nil(t, w.HeldFood)
	assert.Empty(t, c.WaiterID)
	assert.Equal(t, models.WaiterStateReturning, w.State)
}

func TestUnreachableTableFailsDeliveryBackToPending(t *testing.T) {
	s := newTestSim()
	s.Mover = blockedMover{}
	c := seatCustomer(s, 1)
	order := placeOrder(s, c, "ribeye")
	order.Status = models.OrderStatusInDelivery
	w := s.Waiters[0]

	assert.True(t, c.AssignWaiter(w.ID))
	w.CustomerID = c.ID
	w.OrderID = order.ID
	w.HeldFood = &models.FoodItem{ID: "plate-1", FoodType: "ribeye", CookingState: models.FoodStateReady, OrderID: order.ID}
	w.Movement = models.NewMovementTask(c.Location)
	w.State = models.WaiterStateDelivering
	c.FoodInDelivery = true

	deadline := s.CurrentTime.Add(time.Minute)
	for w.State == models.WaiterStateDelivering && s.CurrentTime.Before(deadline) {
		s.updateWaiter(w)
		s.advance(s.Config.TickInterval)
	}

	assert.Equal(t, models.WaiterStateIdle, w.State)
	assert.Nil(t, w.HeldFood, "the plate is wasted")
	assert.Equal(t, models.OrderStatusPending, order.Status, "kitchen will cook a replacement")
	assert.False(t, c.FoodInDelivery)
	assert.Empty(t, c.WaiterID)
	elapsed := s.CurrentTime.Sub(testStart)
	assert.True(t, elapsed >= 10*time.Second, "retry budget spent before giving up, took %s", elapsed)
}

func TestOrderPlacementDoesNotRenewPatience(t *testing.T) {
	s := newTestSim()
	c := seatCustomer(s, 1)
	deadline := c.PatienceDeadline
	w := s.Waiters[0]

	assert.True(t, c.AssignWaiter(w.ID))
	w.CustomerID = c.ID
	w.Location = c.Location
	w.State = models.WaiterStateTakingOrder
	c.State = models.CustomerStateOrdering
	c.OrderingUntil = s.CurrentTime.Add(s.Config.OrderTakingTime)

	s.advance(s.Config.OrderTakingTime)
	s.updateWaiter(w)

	assert.Equal(t, models.CustomerStateWaitingForFood, c.State)
	assert.Equal(t, deadline, c.PatienceDeadline, "patience runs from seating, not per phase")

	s.advance(s.Config.CustomerPatience)
	s.updateCustomer(c)
	assert.Equal(t, models.CustomerStateLeaving, c.State)
}

func TestOrphanPlateServesMatchingOrder(t *testing.T) {
	s := newTestSim()
	leaver := seatCustomer(s, 1)
	goneOrder := placeOrder(s, leaver, "carbonara")
	plate := readyPlate(s, goneOrder)
	s.customerLeave(leaver, false, "test")
	leaver.Movement = nil
	s.pruneDepartedCustomers()

	stayer := seatCustomer(s, 2)
	order := placeOrder(s, stayer, "carbonara")
	w := s.Waiters[0]

	assert.True(t, s.waiterScan(w))

	assert.Equal(t, order.ID, plate.OrderID, "plate rebinds to the surviving order")
	assert.Equal(t, models.OrderStatusReady, order.Status)
	assert.Equal(t, w.ID, plate.ReservedBy)
	assert.Equal(t, w.ID, stayer.WaiterID)
	assert.Equal(t, models.WaiterStateMovingToCounter, w.State)
	assert.Equal(t, 1, s.Counter.Len(), "nothing binned when the plate can be rehomed")
}

func TestWaiterAtCounterAdoptsOrphanPlate(t *testing.T) {
	s := newTestSim()
	leaver := seatCustomer(s, 1)
	goneOrder := placeOrder(s, leaver, "risotto")
	plate := readyPlate(s, goneOrder)
	s.customerLeave(leaver, false, "test")
	leaver.Movement = nil
	s.pruneDepartedCustomers()

	c := seatCustomer(s, 2)
	order := placeOrder(s, c, "risotto")
	w := s.Waiters[0]
	assert.True(t, c.AssignWaiter(w.ID))
	w.CustomerID = c.ID
	w.OrderID = order.ID
	w.Location = s.Counter.Location
	w.State = models.WaiterStateWaitingForFood
	w.CounterDeadline = s.CurrentTime.Add(s.Config.CounterWaitTimeout)

	s.updateWaiter(w)

	assert.Equal(t, models.WaiterStateDelivering, w.State)
	assert.Equal(t, plate, w.HeldFood)
	assert.Equal(t, order.ID, plate.OrderID)
	assert.Equal(t, models.OrderStatusInDelivery, order.Status)
	assert.True(t, c.FoodInDelivery)
	assert.Equal(t, 0, s.Counter.Len())
}

func TestWaiterDisposesPlateForDepartedCustomer(t *testing.T) {
	s := newTestSim()
	c := seatCustomer(s, 1)
	order := placeOrder(s, c, "carbonara")
	readyPlate(s, order)
	w := s.Waiters[0]

	s.customerLeave(c, false, "test")
	c.Movement = nil
	s.pruneDepartedCustomers()

	assert.False(t, s.waiterScan(w), "orphaned plate is not deliverable work")
	assert.Equal(t, 0, s.Counter.Len(), "orphaned plate is binned during the scan")
}
