package simulator

import (
	"github.com/ckarenz/floorsim/internal/eventbus"
	"github.com/ckarenz/floorsim/internal/models"
	"github.com/lucsky/cuid"
)

// updateWaiter runs one evaluation of the waiter state machine. Every
// state that resumes after a walk or a wait re-checks that its claims
// still hold before acting; a stale claim means the work unit evaporated
// and the waiter recovers to idle.
func (s *Simulator) updateWaiter(w *models.Waiter) {
	switch w.State {
	case models.WaiterStateIdle:
		if !s.waiterScan(w) && w.Location.DistanceTo(w.IdlePost) > 0.1 {
			w.Movement = models.NewMovementTask(w.IdlePost)
			s.setWaiterState(w, models.WaiterStateReturning)
		}

	case models.WaiterStateMovingToTable:
		customer := s.Customers.Get(w.CustomerID)
		if customer.Departed() || customer.WaiterID != w.ID {
			s.waiterAbandon(w)
			return
		}
		switch s.advanceMovement(w.Movement, &w.Location, w.Speed) {
		case moveArrived:
			w.Movement = nil
			customer.OrderingUntil = s.CurrentTime.Add(s.Config.OrderTakingTime)
			s.setCustomerState(customer, models.CustomerStateOrdering)
			s.setWaiterState(w, models.WaiterStateTakingOrder)
		case moveAbandoned:
			s.waiterAbandon(w)
		}

	case models.WaiterStateTakingOrder:
		customer := s.Customers.Get(w.CustomerID)
		if customer.Departed() || customer.WaiterID != w.ID {
			s.waiterAbandon(w)
			return
		}
		if s.CurrentTime.Before(customer.OrderingUntil) {
			return
		}
		s.takeOrder(w, customer)

	case models.WaiterStateMovingToCounter:
		if !s.waiterCounterTripValid(w) {
			s.waiterAbandon(w)
			return
		}
		switch s.advanceMovement(w.Movement, &w.Location, w.Speed) {
		case moveArrived:
			w.Movement = nil
			if w.ReservedFoodID != "" {
				s.waiterPickUpReserved(w)
			} else {
				w.CounterDeadline = s.CurrentTime.Add(s.Config.CounterWaitTimeout)
				s.setWaiterState(w, models.WaiterStateWaitingForFood)
			}
		case moveAbandoned:
			s.waiterAbandon(w)
		}

	case models.WaiterStateWaitingForFood:
		order := s.orderByID(w.OrderID)
		if order == nil {
			s.waiterAbandon(w) // customer left, order gone with them
			return
		}
		for _, item := range s.Counter.Items() {
			if item.OrderID == w.OrderID && item.CookingState == models.FoodStateReady && !item.IsReserved() {
				s.Counter.Remove(item.ID)
				s.waiterStartDelivery(w, item, order)
				return
			}
		}
		// a ready plate stranded by a departed customer can stand in for
		// the same dish, as long as no chef is already cooking this order
		if order.Status == models.OrderStatusPending && order.ClaimedByChef == "" {
			for _, item := range s.Counter.Items() {
				if item.FoodType == order.FoodType && item.CookingState == models.FoodStateReady &&
					!item.IsReserved() && s.plateOrphaned(item) {
					s.adoptPlateForOrder(item, order)
					s.Counter.Remove(item.ID)
					s.waiterStartDelivery(w, item, order)
					return
				}
			}
		}
		if !s.CurrentTime.Before(w.CounterDeadline) {
			// plate never came; leave the order for a later pickup run
			if customer := s.Customers.Get(w.CustomerID); customer != nil {
				customer.ReleaseWaiter(w.ID)
			}
			w.CustomerID = ""
			w.OrderID = ""
			s.setWaiterState(w, models.WaiterStateIdle)
		}

	case models.WaiterStateDelivering:
		customer := s.Customers.Get(w.CustomerID)
		if customer.Departed() || customer.WaiterID != w.ID {
			s.waiterFailDelivery(w, "customer_left_during_delivery")
			return
		}
		switch s.advanceMovement(w.Movement, &w.Location, w.Speed) {
		case moveArrived:
			w.Movement = nil
			s.waiterDeliver(w, customer)
		case moveAbandoned:
			s.waiterFailDelivery(w, "table_unreachable")
		}

	case models.WaiterStateReturning:
		if s.waiterScan(w) {
			return
		}
		switch s.advanceMovement(w.Movement, &w.Location, w.Speed) {
		case moveArrived, moveAbandoned:
			w.Movement = nil
			s.setWaiterState(w, models.WaiterStateIdle)
		}
	}
}

// waiterScan is the idle work search. Ready plates on the pass take
// priority over new orders; both claims are check-and-set, and losing
// either race just means scanning on.
func (s *Simulator) waiterScan(w *models.Waiter) bool {
	for _, item := range s.Counter.Items() {
		if item.CookingState != models.FoodStateReady || item.IsReserved() {
			continue
		}
		order := s.orderByID(item.OrderID)
		if s.plateOrphaned(item) {
			if order = s.rehomePlate(item); order == nil {
				s.disposeCounterItem(w, item, "customer_left")
				continue
			}
		}
		customer := s.Customers.Get(order.CustomerID)
		if customer.FoodInDelivery || customer.IsWaiterAssigned() {
			continue
		}
		if !customer.AssignWaiter(w.ID) {
			continue
		}
		if !item.Reserve(w.ID) {
			customer.ReleaseWaiter(w.ID)
			continue
		}
		w.CustomerID = customer.ID
		w.OrderID = order.ID
		w.ReservedFoodID = item.ID
		w.Movement = models.NewMovementTask(s.Counter.Location)
		s.setWaiterState(w, models.WaiterStateMovingToCounter)
		return true
	}

	var target *models.Customer
	targetDist := 0.0
	for _, customer := range s.Customers.InState(models.CustomerStateWaitingForWaiter) {
		if customer.IsWaiterAssigned() {
			continue
		}
		d := w.Location.DistanceTo(customer.Location)
		if target == nil || d < targetDist {
			target, targetDist = customer, d
		}
	}
	if target != nil && target.AssignWaiter(w.ID) {
		w.CustomerID = target.ID
		w.Movement = models.NewMovementTask(target.Location)
		s.setWaiterState(w, models.WaiterStateMovingToTable)
		return true
	}
	return false
}

// takeOrder finishes the order-taking pause: the order enters the
// pending pool and the waiter either grabs a neighbouring customer or
// heads to the pass to wait for the plate.
func (s *Simulator) takeOrder(w *models.Waiter, customer *models.Customer) {
	item := s.chooseDish(customer)
	if item == nil {
		// nothing on the menu; treat as a lost sale
		customer.ReleaseWaiter(w.ID)
		w.CustomerID = ""
		s.customerLeave(customer, false, "nothing_to_order")
		s.setWaiterState(w, models.WaiterStateIdle)
		return
	}

	order := &models.Order{
		ID:         cuid.New(),
		CustomerID: customer.ID,
		FoodType:   item.Name,
		Price:      s.Pricing.Price(item),
		Status:     models.OrderStatusNone,
		PlacedAt:   s.CurrentTime,
	}
	order.AdvanceTo(models.OrderStatusPending)
	customer.CurrentOrder = order
	// patience keeps running from seating; placing the order does not
	// renew it
	s.setCustomerState(customer, models.CustomerStateWaitingForFood)
	s.emitOrder(OrderLifecycleEvent{
		BaseEvent: s.orderBase("order_placed", order, w.ID),
		OrderID:   order.ID,
		FoodType:  order.FoodType,
		Status:    order.Status,
		Price:     order.Price,
	}, eventbus.TypeOrderPlaced)

	// neighbouring customer still waiting? take their order too before
	// walking all the way to the pass
	if next := s.nearbyWaitingCustomer(w); next != nil && next.AssignWaiter(w.ID) {
		customer.ReleaseWaiter(w.ID)
		w.CustomerID = next.ID
		w.OrderID = ""
		w.Movement = models.NewMovementTask(next.Location)
		s.setWaiterState(w, models.WaiterStateMovingToTable)
		return
	}

	w.OrderID = order.ID
	w.Movement = models.NewMovementTask(s.Counter.Location)
	s.setWaiterState(w, models.WaiterStateMovingToCounter)
}

func (s *Simulator) chooseDish(customer *models.Customer) *models.MenuItem {
	for _, t := range customer.PreferredTypes {
		if item := s.menuItemByType(t); item != nil {
			return item
		}
	}
	types := s.menuTypes()
	if len(types) == 0 {
		return nil
	}
	return s.menuItemByType(types[s.Rng.Intn(len(types))])
}

func (s *Simulator) nearbyWaitingCustomer(w *models.Waiter) *models.Customer {
	for _, customer := range s.Customers.InState(models.CustomerStateWaitingForWaiter) {
		if customer.IsWaiterAssigned() {
			continue
		}
		if w.Location.DistanceTo(customer.Location) <= s.Config.NearbyWorkRadius {
			return customer
		}
	}
	return nil
}

// waiterCounterTripValid re-checks the claims backing a walk to the
// pass: the customer must still be seated and claimed, and a reserved
// plate must still exist.
func (s *Simulator) waiterCounterTripValid(w *models.Waiter) bool {
	customer := s.Customers.Get(w.CustomerID)
	if customer.Departed() || customer.WaiterID != w.ID {
		return false
	}
	if w.ReservedFoodID != "" && s.Counter.PeekReservedFor(w.ID) == nil {
		return false
	}
	return true
}

func (s *Simulator) waiterPickUpReserved(w *models.Waiter) {
	item := s.Counter.TakeReservedFor(w.ID)
	w.ReservedFoodID = ""
	if item == nil {
		s.waiterAbandon(w)
		return
	}
	order := s.orderByID(w.OrderID)
	if order == nil {
		s.disposeHeldFood(w, item, "customer_left")
		s.waiterAbandon(w)
		return
	}
	s.waiterStartDelivery(w, item, order)
}

// waiterStartDelivery puts the plate in hand and the order in delivery,
// then walks it out to the table.
func (s *Simulator) waiterStartDelivery(w *models.Waiter, item *models.FoodItem, order *models.Order) {
	item.ReleaseReservation(w.ID)
	w.HeldFood = item
	w.ReservedFoodID = ""
	order.AdvanceTo(models.OrderStatusInDelivery)
	customer := s.Customers.Get(order.CustomerID)
	if customer == nil {
		s.waiterFailDelivery(w, "customer_left")
		return
	}
	customer.FoodInDelivery = true
	if customer.WaiterID == "" {
		customer.AssignWaiter(w.ID)
	}
	w.CustomerID = customer.ID
	w.OrderID = order.ID
	s.emitService(ServiceEvent{
		BaseEvent:   s.serviceBase("food_picked_up", w),
		OrderID:     order.ID,
		FoodID:      item.ID,
		FoodType:    item.FoodType,
		TableNumber: customer.TableNumber,
	}, eventbus.TypeFoodPickedUp)
	table := s.tableByNumber(customer.TableNumber)
	if table == nil {
		s.waiterFailDelivery(w, "table_missing")
		return
	}
	w.Movement = models.NewMovementTask(table.Location)
	s.setWaiterState(w, models.WaiterStateDelivering)
}

// waiterDeliver completes the visit's food leg: the order fulfils, the
// till takes the payment, and the customer starts eating.
func (s *Simulator) waiterDeliver(w *models.Waiter, customer *models.Customer) {
	item := w.HeldFood
	order := s.orderByID(w.OrderID)
	w.HeldFood = nil
	if order == nil || item == nil {
		s.waiterAbandon(w)
		return
	}
	order.AdvanceTo(models.OrderStatusFulfilled)
	customer.FoodInDelivery = false
	customer.EatingUntil = s.CurrentTime.Add(s.Config.EatingTime)
	s.setCustomerState(customer, models.CustomerStateEating)
	s.creditFunds(order.Price, "order_payment", order.ID)
	s.emitService(ServiceEvent{
		BaseEvent:   s.serviceBase("food_delivered", w),
		OrderID:     order.ID,
		FoodID:      item.ID,
		FoodType:    item.FoodType,
		TableNumber: customer.TableNumber,
	}, eventbus.TypeFoodDelivered)
	s.emitOrder(OrderLifecycleEvent{
		BaseEvent: s.orderBase("order_fulfilled", order, w.ID),
		OrderID:   order.ID,
		FoodType:  order.FoodType,
		Status:    order.Status,
		Price:     order.Price,
	}, eventbus.TypeFoodDelivered)
	customer.ReleaseWaiter(w.ID)
	w.CustomerID = ""
	w.OrderID = ""
	w.Movement = models.NewMovementTask(w.IdlePost)
	s.setWaiterState(w, models.WaiterStateReturning)
}

// waiterFailDelivery handles a plate that can no longer reach its
// customer: the food is wasted and, if the customer is still seated,
// the order goes back to pending for the kitchen to cook again.
func (s *Simulator) waiterFailDelivery(w *models.Waiter, reason string) {
	if item := w.HeldFood; item != nil {
		s.disposeHeldFood(w, item, reason)
		w.HeldFood = nil
	}
	if order := s.orderByID(w.OrderID); order != nil {
		order.FailDelivery()
		s.emitOrder(OrderLifecycleEvent{
			BaseEvent: s.orderBase("delivery_failed", order, w.ID),
			OrderID:   order.ID,
			FoodType:  order.FoodType,
			Status:    order.Status,
			Price:     order.Price,
		}, eventbus.TypeFoodDiscarded)
		if customer := s.Customers.Get(order.CustomerID); customer != nil {
			customer.FoodInDelivery = false
		}
	}
	s.waiterAbandon(w)
}

// waiterAbandon releases everything the waiter holds and recovers to
// idle. Safe to call from any state.
func (s *Simulator) waiterAbandon(w *models.Waiter) {
	if customer := s.Customers.Get(w.CustomerID); customer != nil {
		customer.ReleaseWaiter(w.ID)
	}
	if w.ReservedFoodID != "" {
		if item := s.Counter.PeekReservedFor(w.ID); item != nil {
			item.ReleaseReservation(w.ID)
		}
		w.ReservedFoodID = ""
	}
	if item := w.HeldFood; item != nil {
		s.disposeHeldFood(w, item, "delivery_abandoned")
		w.HeldFood = nil
	}
	w.CustomerID = ""
	w.OrderID = ""
	w.Movement = nil
	s.setWaiterState(w, models.WaiterStateIdle)
}

// plateOrphaned reports whether the customer behind a plate on the pass
// is gone: either pruned from the registry or already walking out.
func (s *Simulator) plateOrphaned(item *models.FoodItem) bool {
	order := s.orderByID(item.OrderID)
	return order == nil || s.Customers.Get(order.CustomerID).Departed()
}

// rehomePlate rebinds an orphaned plate to another customer still
// waiting on a pending, unclaimed order of the same dish. Nil means
// nobody on the floor wants it and the plate should be binned.
func (s *Simulator) rehomePlate(item *models.FoodItem) *models.Order {
	for _, customer := range s.Customers.InState(models.CustomerStateWaitingForFood) {
		if customer.FoodInDelivery || customer.IsWaiterAssigned() {
			continue
		}
		order := customer.CurrentOrder
		if order == nil || order.Status != models.OrderStatusPending || order.ClaimedByChef != "" {
			continue
		}
		if order.FoodType != item.FoodType {
			continue
		}
		s.adoptPlateForOrder(item, order)
		return order
	}
	return nil
}

// adoptPlateForOrder points an orphaned plate at a pending order of the
// same dish. The order jumps straight through preparation: the food
// already exists and nothing needs cooking.
func (s *Simulator) adoptPlateForOrder(item *models.FoodItem, order *models.Order) {
	item.OrderID = order.ID
	order.AdvanceTo(models.OrderStatusInPreparation)
	order.AdvanceTo(models.OrderStatusReady)
	s.emitOrder(OrderLifecycleEvent{
		BaseEvent: s.orderBase("order_ready", order, ""),
		OrderID:   order.ID,
		FoodType:  order.FoodType,
		Status:    order.Status,
		Price:     order.Price,
	}, eventbus.TypeOrderReady)
}

func (s *Simulator) disposeCounterItem(w *models.Waiter, item *models.FoodItem, reason string) {
	s.Counter.Remove(item.ID)
	s.emitService(ServiceEvent{
		BaseEvent: s.serviceBase("food_discarded", w),
		OrderID:   item.OrderID,
		FoodID:    item.ID,
		FoodType:  item.FoodType,
		Detail:    reason,
	}, eventbus.TypeFoodDiscarded)
}

func (s *Simulator) disposeHeldFood(w *models.Waiter, item *models.FoodItem, reason string) {
	s.emitService(ServiceEvent{
		BaseEvent: s.serviceBase("food_discarded", w),
		OrderID:   item.OrderID,
		FoodID:    item.ID,
		FoodType:  item.FoodType,
		Detail:    reason,
	}, eventbus.TypeFoodDiscarded)
}

func (s *Simulator) serviceBase(eventType string, w *models.Waiter) BaseEvent {
	base := NewBaseEvent(eventType, s.CurrentTime)
	base.WaiterID = w.ID
	base.CustomerID = w.CustomerID
	return base
}

func (s *Simulator) orderBase(eventType string, order *models.Order, waiterID string) BaseEvent {
	base := NewBaseEvent(eventType, s.CurrentTime)
	base.CustomerID = order.CustomerID
	base.WaiterID = waiterID
	return base
}
