package simulator

import (
	"time"

	"github.com/ckarenz/floorsim/internal/eventbus"
	"github.com/ckarenz/floorsim/internal/models"
	"github.com/lucsky/cuid"
)

// updateChef runs one evaluation of the chef state machine: find an
// unclaimed pending order worth cooking, cook it at a station, and walk
// the plate to the pass. The claim on the order is re-validated after
// every walk and every wait; a customer who left takes the claim's
// validity with them.
func (s *Simulator) updateChef(c *models.Chef) {
	switch c.State {
	case models.ChefStateIdle:
		if s.chefScan(c) {
			return
		}
		if c.Movement != nil {
			switch s.advanceMovement(c.Movement, &c.Location, c.Speed) {
			case moveArrived, moveAbandoned:
				c.Movement = nil
			}
		}

	case models.ChefStateMovingToStation:
		if s.chefOrder(c) == nil {
			s.chefAbandon(c, false)
			return
		}
		switch s.advanceMovement(c.Movement, &c.Location, c.Speed) {
		case moveArrived:
			c.Movement = nil
			s.chefLoadStation(c)
		case moveAbandoned:
			s.chefAbandon(c, true)
		}

	case models.ChefStateCooking:
		s.chefCook(c)

	case models.ChefStateMovingToCounter:
		if s.chefOrder(c) == nil {
			s.chefAbandon(c, false)
			return
		}
		switch s.advanceMovement(c.Movement, &c.Location, c.Speed) {
		case moveArrived:
			c.Movement = nil
			s.setChefState(c, models.ChefStatePlacingFood)
		case moveAbandoned:
			s.chefAbandon(c, true)
		}

	case models.ChefStatePlacingFood:
		s.chefPlaceFood(c)
	}
}

// chefScan looks for a pending order worth cooking. An order qualifies
// when its customer is still waiting, nobody has claimed it, the plates
// of its type already staged or in flight do not cover pending demand,
// a station can take it, and the till can cover the ingredients.
func (s *Simulator) chefScan(c *models.Chef) bool {
	for _, customer := range s.Customers.InState(models.CustomerStateWaitingForFood) {
		order := customer.CurrentOrder
		if order == nil || customer.FoodInDelivery {
			continue
		}
		if order.Status != models.OrderStatusPending || order.ClaimedByChef != "" {
			continue
		}
		// plates already on the pass, on a station or in a chef's hands
		// cover pending demand for this type; cooking another would
		// waste ingredients
		if s.platesOfType(order.FoodType) >= s.pendingOrdersOfType(order.FoodType) {
			continue
		}
		station := s.findStationFor(order.FoodType)
		if station == nil {
			continue
		}
		if !order.ClaimByChef(c.ID) {
			continue
		}
		item := s.menuItemByType(order.FoodType)
		cost := s.Pricing.IngredientCost(item)
		if !s.debitFunds(cost, "ingredient_purchase", order.ID) {
			order.ReleaseChefClaim(c.ID)
			s.reportShortfall(c, order, cost)
			return false
		}
		order.AdvanceTo(models.OrderStatusInPreparation)
		c.CustomerID = customer.ID
		c.StationID = station.ID
		c.Food = &models.FoodItem{
			ID:           cuid.New(),
			FoodType:     order.FoodType,
			CookingState: models.FoodStateRaw,
			OrderID:      order.ID,
		}
		c.Movement = models.NewMovementTask(station.Location)
		s.setChefState(c, models.ChefStateMovingToStation)
		s.emitOrder(OrderLifecycleEvent{
			BaseEvent: s.orderBase("order_claimed", order, ""),
			OrderID:   order.ID,
			FoodType:  order.FoodType,
			Status:    order.Status,
			Price:     order.Price,
		}, eventbus.TypeCookingStarted)
		return true
	}
	return false
}

// reportShortfall surfaces an economic refusal without spamming one
// event per chef per tick while the till stays empty.
func (s *Simulator) reportShortfall(c *models.Chef, order *models.Order, cost float64) {
	if s.CurrentTime.Sub(s.lastShortfall) < 10*time.Second {
		return
	}
	s.lastShortfall = s.CurrentTime
	s.emitKitchen(KitchenEvent{
		BaseEvent: s.chefBase("cooking_refused", c),
		OrderID:   order.ID,
		FoodType:  order.FoodType,
		Detail:    "insufficient_funds",
	}, eventbus.TypeCookingRefused)
}

func (s *Simulator) findStationFor(foodType string) *models.Station {
	for _, station := range s.Stations {
		if station.CanAccept(foodType) {
			return station
		}
	}
	return nil
}

// cookDuration is the station's base time scaled by kitchen upgrades.
func (s *Simulator) cookDuration(station *models.Station) time.Duration {
	d := station.Spec.CookDuration
	if m := s.Pricing.CookingSpeedMultiplier(); m > 0 {
		d = time.Duration(float64(d) / m)
	}
	return d
}

// chefLoadStation puts the raw item on the station the chef walked to.
// If that station filled up during the walk, any other accepting
// station will do; with nowhere to cook, the order goes back to
// pending.
func (s *Simulator) chefLoadStation(c *models.Chef) {
	station := s.stationByID(c.StationID)
	if station == nil || !station.Accept(c.Food, s.CurrentTime, s.cookDuration(station)) {
		if alt := s.findStationFor(c.Food.FoodType); alt != nil {
			c.StationID = alt.ID
			c.Movement = models.NewMovementTask(alt.Location)
			return
		}
		s.chefAbandon(c, true)
		return
	}
	if c.Food.CookingState == models.FoodStateCooking {
		s.emitCookingStarted(c, station)
	}
	s.setChefState(c, models.ChefStateCooking)
}

// chefCook supervises the station until the plate is done. Staged raw
// food is fired as soon as the station frees up; a burnt plate is
// binned and the order requeued for another attempt.
func (s *Simulator) chefCook(c *models.Chef) {
	order := s.chefOrder(c)
	station := s.stationByID(c.StationID)
	if station == nil {
		s.chefAbandon(c, true)
		return
	}
	if order == nil {
		// customer gone; pull whatever is on the station and bin it
		if item := station.Take(c.Food.ID); item != nil {
			s.emitFoodDiscarded(c, item, "customer_left")
		}
		c.Food = nil
		s.chefAbandon(c, false)
		return
	}

	if c.Food.CookingState == models.FoodStateRaw {
		if station.StartCooking(c.Food.ID, s.CurrentTime, s.cookDuration(station)) {
			s.emitCookingStarted(c, station)
		}
		return
	}

	if !station.IsDone(c.Food.ID, s.CurrentTime) {
		return
	}

	item := station.Take(c.Food.ID)
	if item == nil {
		s.chefAbandon(c, true)
		return
	}
	if item.CookingState == models.FoodStateBurnt {
		s.emitKitchen(KitchenEvent{
			BaseEvent: s.chefBase("food_burnt", c),
			OrderID:   order.ID,
			FoodID:    item.ID,
			FoodType:  item.FoodType,
			StationID: station.ID,
		}, eventbus.TypeFoodDiscarded)
		order.Requeue(c.ID)
		c.Food = nil
		c.CustomerID = ""
		c.StationID = ""
		c.Movement = models.NewMovementTask(c.IdlePost)
		s.setChefState(c, models.ChefStateIdle)
		return
	}
	c.Food = item
	c.Movement = models.NewMovementTask(s.Counter.Location)
	s.setChefState(c, models.ChefStateMovingToCounter)
}

// chefPlaceFood deposits the finished plate on the pass. A full counter
// is not an error: the chef stands there and retries every tick until a
// slot frees up or the customer gives up waiting.
func (s *Simulator) chefPlaceFood(c *models.Chef) {
	order := s.chefOrder(c)
	if order == nil {
		if c.Food != nil {
			s.emitFoodDiscarded(c, c.Food, "customer_left")
			c.Food = nil
		}
		s.chefAbandon(c, false)
		return
	}
	if !s.Counter.Deposit(c.Food) {
		return // counter full, retry next tick
	}
	order.AdvanceTo(models.OrderStatusReady)
	order.ReleaseChefClaim(c.ID)
	s.emitKitchen(KitchenEvent{
		BaseEvent: s.chefBase("food_placed", c),
		OrderID:   order.ID,
		FoodID:    c.Food.ID,
		FoodType:  c.Food.FoodType,
	}, eventbus.TypeOrderReady)
	s.emitOrder(OrderLifecycleEvent{
		BaseEvent: s.orderBase("order_ready", order, ""),
		OrderID:   order.ID,
		FoodType:  order.FoodType,
		Status:    order.Status,
		Price:     order.Price,
	}, eventbus.TypeOrderReady)
	c.Food = nil
	c.CustomerID = ""
	c.StationID = ""
	c.Movement = models.NewMovementTask(c.IdlePost)
	s.setChefState(c, models.ChefStateIdle)
}

// chefOrder resolves the order behind the chef's claim. Nil means the
// claim is stale: the customer left or someone requeued the order.
func (s *Simulator) chefOrder(c *models.Chef) *models.Order {
	customer := s.Customers.Get(c.CustomerID)
	if customer.Departed() || customer.CurrentOrder == nil {
		return nil
	}
	order := customer.CurrentOrder
	if order.ClaimedByChef != c.ID {
		return nil
	}
	return order
}

// chefAbandon drops everything and recovers to idle. With requeue set
// the claimed order returns to the pending pool; without it the claim
// is simply released.
func (s *Simulator) chefAbandon(c *models.Chef, requeue bool) {
	if order := s.chefOrder(c); order != nil {
		if requeue {
			order.Requeue(c.ID)
		} else {
			order.ReleaseChefClaim(c.ID)
		}
	}
	if c.Food != nil {
		s.emitFoodDiscarded(c, c.Food, "cooking_abandoned")
		c.Food = nil
	}
	c.CustomerID = ""
	c.StationID = ""
	c.Movement = models.NewMovementTask(c.IdlePost)
	s.setChefState(c, models.ChefStateIdle)
}

func (s *Simulator) emitCookingStarted(c *models.Chef, station *models.Station) {
	s.emitKitchen(KitchenEvent{
		BaseEvent: s.chefBase("cooking_started", c),
		OrderID:   c.Food.OrderID,
		FoodID:    c.Food.ID,
		FoodType:  c.Food.FoodType,
		StationID: station.ID,
	}, eventbus.TypeCookingStarted)
}

func (s *Simulator) emitFoodDiscarded(c *models.Chef, item *models.FoodItem, reason string) {
	s.emitKitchen(KitchenEvent{
		BaseEvent: s.chefBase("food_discarded", c),
		OrderID:   item.OrderID,
		FoodID:    item.ID,
		FoodType:  item.FoodType,
		Detail:    reason,
	}, eventbus.TypeFoodDiscarded)
}

func (s *Simulator) chefBase(eventType string, c *models.Chef) BaseEvent {
	base := NewBaseEvent(eventType, s.CurrentTime)
	base.ChefID = c.ID
	base.CustomerID = c.CustomerID
	return base
}
