package simulator

import (
	"github.com/ckarenz/floorsim/internal/eventbus"
	"github.com/ckarenz/floorsim/internal/models"
)

// updateCustomer runs one evaluation of the customer state machine:
// enter, claim a table, wait for service, order, wait for food, eat,
// leave. Patience timers fire on the waiting states; an expired timer
// always ends in departure, and whoever held a claim on the customer
// finds out through their own validity check.
func (s *Simulator) updateCustomer(c *models.Customer) {
	switch c.State {
	case models.CustomerStateEntering:
		s.customerEnter(c)

	case models.CustomerStateWaitingForWaiter:
		if !s.CurrentTime.Before(c.PatienceDeadline) {
			s.customerLeave(c, false, "gave_up_waiting_for_waiter")
		}

	case models.CustomerStateOrdering:
		// the claiming waiter drives this state; if the waiter walked
		// away the customer goes back to waiting on the original clock
		if !c.IsWaiterAssigned() {
			s.setCustomerState(c, models.CustomerStateWaitingForWaiter)
		}

	case models.CustomerStateWaitingForFood:
		if c.FoodInDelivery {
			return // plate is on its way, patience no longer applies
		}
		if !s.CurrentTime.Before(c.PatienceDeadline) {
			s.customerLeave(c, false, "gave_up_waiting_for_food")
		}

	case models.CustomerStateEating:
		if !s.CurrentTime.Before(c.EatingUntil) {
			c.Satisfied = true
			s.customerLeave(c, true, "finished_meal")
		}

	case models.CustomerStateLeaving:
		switch s.advanceMovement(c.Movement, &c.Location, c.Speed) {
		case moveArrived, moveAbandoned:
			c.Movement = nil // pruned at end of tick
		}
	}
}

// customerEnter claims a table and walks to it. A full floor means an
// immediate unsatisfied departure; there is no queueing.
func (s *Simulator) customerEnter(c *models.Customer) {
	if c.TableNumber == 0 {
		table := s.findAvailableTable()
		if table == nil || !table.Assign(c.ID) {
			s.customerLeave(c, false, "no_free_table")
			return
		}
		c.TableNumber = table.Number
		c.Movement = models.NewMovementTask(table.Location)
	}

	switch s.advanceMovement(c.Movement, &c.Location, c.Speed) {
	case moveArrived:
		c.Movement = nil
		c.PatienceDeadline = s.CurrentTime.Add(s.Config.CustomerPatience)
		s.setCustomerState(c, models.CustomerStateWaitingForWaiter)
		s.emitCustomer(CustomerVisitEvent{
			BaseEvent:   s.customerBase("customer_seated", c),
			TableNumber: c.TableNumber,
		}, eventbus.TypeCustomerSeated)
	case moveAbandoned:
		if table := s.tableByNumber(c.TableNumber); table != nil {
			table.Release()
		}
		c.TableNumber = 0
		s.customerLeave(c, false, "table_unreachable")
	}
}

// customerLeave ends the visit. Claims held on this customer are
// dropped unconditionally; any staff mid-task toward them must notice
// on their next check. The table itself is released at prune, after the
// customer has physically gone.
func (s *Simulator) customerLeave(c *models.Customer, satisfied bool, reason string) {
	c.Satisfied = satisfied
	c.ClearWaiterAssignment()
	if satisfied {
		s.Served++
	} else {
		s.Lost++
	}
	s.emitCustomer(CustomerVisitEvent{
		BaseEvent:   s.customerBase("customer_left", c),
		TableNumber: c.TableNumber,
		Satisfied:   satisfied,
		Reason:      reason,
		WaitedFor:   int64(s.CurrentTime.Sub(c.ArrivedAt).Seconds()),
	}, eventbus.TypeCustomerLeft)
	c.Movement = models.NewMovementTask(s.Entrance)
	s.setCustomerState(c, models.CustomerStateLeaving)
}
