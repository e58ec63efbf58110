package simulator

import (
	"github.com/ckarenz/floorsim/internal/models"
)

// TakeSnapshot captures the whole world: agents with their claims and
// deadlines, table occupancy, station slots and the pass contents. The
// result restores to a simulator whose next tick behaves exactly like
// the original's would have.
func (s *Simulator) TakeSnapshot() models.WorldSnapshot {
	snap := models.WorldSnapshot{
		Time:   s.CurrentTime,
		Funds:  s.Funds,
		Served: s.Served,
		Lost:   s.Lost,
	}

	for _, c := range s.Customers.All() {
		snap.Customers = append(snap.Customers, models.CustomerSnapshot{
			ID:               c.ID,
			Name:             c.Name,
			State:            c.State,
			Location:         c.Location,
			Speed:            c.Speed,
			TableNumber:      c.TableNumber,
			Order:            c.CurrentOrder,
			WaiterID:         c.WaiterID,
			FoodInDelivery:   c.FoodInDelivery,
			PreferredTypes:   c.PreferredTypes,
			ArrivedAt:        c.ArrivedAt,
			PatienceDeadline: c.PatienceDeadline,
			OrderingUntil:    c.OrderingUntil,
			EatingUntil:      c.EatingUntil,
			Satisfied:        c.Satisfied,
			Movement:         c.Movement,
		})
	}
	for _, w := range s.Waiters {
		snap.Waiters = append(snap.Waiters, models.WaiterSnapshot{
			ID:              w.ID,
			Name:            w.Name,
			State:           w.State,
			Location:        w.Location,
			Speed:           w.Speed,
			IdlePost:        w.IdlePost,
			CustomerID:      w.CustomerID,
			OrderID:         w.OrderID,
			HeldFood:        w.HeldFood,
			ReservedFoodID:  w.ReservedFoodID,
			CounterDeadline: w.CounterDeadline,
			Movement:        w.Movement,
		})
	}
	for _, c := range s.Chefs {
		snap.Chefs = append(snap.Chefs, models.ChefSnapshot{
			ID:         c.ID,
			Name:       c.Name,
			State:      c.State,
			Location:   c.Location,
			Speed:      c.Speed,
			IdlePost:   c.IdlePost,
			CustomerID: c.CustomerID,
			StationID:  c.StationID,
			Food:       c.Food,
			Movement:   c.Movement,
		})
	}
	for _, t := range s.Tables {
		snap.Tables = append(snap.Tables, *t)
	}
	for _, st := range s.Stations {
		stationSnap := models.StationSnapshot{
			ID:       st.ID,
			Spec:     st.Spec,
			Location: st.Location,
		}
		for _, slot := range st.Slots {
			if slot.Food == nil {
				continue
			}
			stationSnap.Slots = append(stationSnap.Slots, models.StationSlotRecord{
				Food:    *slot.Food,
				Cooking: slot.Cooking,
				DoneAt:  slot.DoneAt,
			})
		}
		snap.Stations = append(snap.Stations, stationSnap)
	}
	for _, item := range s.Counter.Items() {
		snap.CounterItems = append(snap.CounterItems, *item)
	}

	return snap
}

// RestoreSnapshot replaces the current world with a saved one. The
// floor layout, menu and pass location come from the live config; only
// mutable state is taken from the snapshot.
func (s *Simulator) RestoreSnapshot(snap *models.WorldSnapshot) {
	if snap == nil {
		return
	}
	if len(s.Tables) == 0 {
		s.initializeFloor()
	}

	s.CurrentTime = snap.Time
	s.EndTime = snap.Time.Add(s.Config.ServiceHours)
	s.Funds = snap.Funds
	s.Served = snap.Served
	s.Lost = snap.Lost

	s.Customers = NewCustomerRegistry()
	for i := range snap.Customers {
		cs := snap.Customers[i]
		s.Customers.Add(&models.Customer{
			ID:               cs.ID,
			Name:             cs.Name,
			State:            cs.State,
			Location:         cs.Location,
			Speed:            cs.Speed,
			TableNumber:      cs.TableNumber,
			CurrentOrder:     cs.Order,
			WaiterID:         cs.WaiterID,
			FoodInDelivery:   cs.FoodInDelivery,
			PreferredTypes:   cs.PreferredTypes,
			ArrivedAt:        cs.ArrivedAt,
			PatienceDeadline: cs.PatienceDeadline,
			OrderingUntil:    cs.OrderingUntil,
			EatingUntil:      cs.EatingUntil,
			Satisfied:        cs.Satisfied,
			Movement:         cs.Movement,
		})
	}

	s.Waiters = nil
	for i := range snap.Waiters {
		ws := snap.Waiters[i]
		s.Waiters = append(s.Waiters, &models.Waiter{
			ID:              ws.ID,
			Name:            ws.Name,
			State:           ws.State,
			Location:        ws.Location,
			Speed:           ws.Speed,
			IdlePost:        ws.IdlePost,
			CustomerID:      ws.CustomerID,
			OrderID:         ws.OrderID,
			HeldFood:        ws.HeldFood,
			ReservedFoodID:  ws.ReservedFoodID,
			CounterDeadline: ws.CounterDeadline,
			Movement:        ws.Movement,
		})
	}

	s.Chefs = nil
	for i := range snap.Chefs {
		cs := snap.Chefs[i]
		s.Chefs = append(s.Chefs, &models.Chef{
			ID:         cs.ID,
			Name:       cs.Name,
			State:      cs.State,
			Location:   cs.Location,
			Speed:      cs.Speed,
			IdlePost:   cs.IdlePost,
			CustomerID: cs.CustomerID,
			StationID:  cs.StationID,
			Food:       cs.Food,
			Movement:   cs.Movement,
		})
	}

	s.Tables = nil
	for i := range snap.Tables {
		t := snap.Tables[i]
		s.Tables = append(s.Tables, &t)
	}

	s.Stations = nil
	for i := range snap.Stations {
		ss := snap.Stations[i]
		station := models.NewStation(ss.ID, ss.Spec, ss.Location)
		for j := range ss.Slots {
			rec := ss.Slots[j]
			food := rec.Food
			station.Slots = append(station.Slots, &models.StationSlot{
				Food:    &food,
				Cooking: rec.Cooking,
				DoneAt:  rec.DoneAt,
			})
		}
		s.Stations = append(s.Stations, station)
	}

	s.Counter = models.NewPassCounter(s.Counter.Location, s.Counter.Capacity)
	for i := range snap.CounterItems {
		item := snap.CounterItems[i]
		s.Counter.Deposit(&item)
	}

	// a cooking chef's plate lives in a station slot; relink the chef's
	// handle to that same item so station updates stay visible
	for _, chef := range s.Chefs {
		if chef.Food == nil || chef.StationID == "" {
			continue
		}
		if station := s.stationByID(chef.StationID); station != nil {
			for _, slot := range station.Slots {
				if slot.Food != nil && slot.Food.ID == chef.Food.ID {
					chef.Food = slot.Food
				}
			}
		}
	}

	s.EventQueue = models.NewEventQueue()
	s.scheduleNextArrival()
	if s.store != nil && s.Config.SnapshotInterval > 0 {
		s.EventQueue.Enqueue(&models.Event{
			Time: s.CurrentTime.Add(s.Config.SnapshotInterval),
			Type: models.EventTakeSnapshot,
		})
	}
}
