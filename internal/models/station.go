package models

import "time"

// StationSpec is the capability descriptor that distinguishes station
// kinds: which food types they accept, whether accepted food starts
// cooking on its own, how long a cook takes, and how many plates fit.
// Station variants are configuration, not subtypes.
type StationSpec struct {
	Kind          string        `json:"kind" mapstructure:"kind"`
	AcceptedTypes []string      `json:"accepted_types" mapstructure:"accepted_types"`
	AutoCook      bool          `json:"auto_cook" mapstructure:"auto_cook"`
	CookDuration  time.Duration `json:"cook_duration" mapstructure:"cook_duration"`
	Capacity      int           `json:"capacity" mapstructure:"capacity"`
}

func (spec StationSpec) Accepts(foodType string) bool {
	if len(spec.AcceptedTypes) == 0 {
		return true
	}
	for _, t := range spec.AcceptedTypes {
		if t == foodType {
			return true
		}
	}
	return false
}

// StationSlot holds one item being prepared.
type StationSlot struct {
	Food    *FoodItem `json:"food"`
	Cooking bool      `json:"cooking"`
	DoneAt  time.Time `json:"done_at"`
}

// Station is a cooking location. At most one slot cooks at a time; the
// rest stage raw or finished plates.
type Station struct {
	ID       string      `json:"id"`
	Spec     StationSpec `json:"spec"`
	Location Location    `json:"location"`
	Slots    []*StationSlot
}

func NewStation(id string, spec StationSpec, loc Location) *Station {
	if spec.Capacity <= 0 {
		spec.Capacity = 1
	}
	return &Station{ID: id, Spec: spec, Location: loc}
}

// CanAccept reports whether a raw item of the given type could be
// placed here right now.
func (s *Station) CanAccept(foodType string) bool {
	return s != nil && s.Spec.Accepts(foodType) && len(s.Slots) < s.Spec.Capacity
}

// Accept places a raw item on the station. Auto-cook stations start
// cooking immediately; manual ones wait for StartCooking. The duration
// is the effective cook time after speed upgrades.
func (s *Station) Accept(food *FoodItem, now time.Time, duration time.Duration) bool {
	if s == nil || food == nil || !s.CanAccept(food.FoodType) {
		return false
	}
	if food.CookingState != FoodStateRaw {
		return false
	}
	slot := &StationSlot{Food: food}
	if s.Spec.AutoCook && !s.busyCooking() {
		food.CookingState = FoodStateCooking
		slot.Cooking = true
		slot.DoneAt = now.Add(duration)
	}
	s.Slots = append(s.Slots, slot)
	return true
}

// StartCooking fires a staged raw item on a manual station. It fails if
// another slot is already cooking or the item is not in its raw state.
func (s *Station) StartCooking(foodID string, now time.Time, duration time.Duration) bool {
	if s == nil || s.busyCooking() {
		return false
	}
	for _, slot := range s.Slots {
		if slot.Food != nil && slot.Food.ID == foodID {
			if slot.Food.CookingState != FoodStateRaw {
				return false
			}
			slot.Food.CookingState = FoodStateCooking
			slot.Cooking = true
			slot.DoneAt = now.Add(duration)
			return true
		}
	}
	return false
}

// IsDone reports whether the given item has finished cooking.
func (s *Station) IsDone(foodID string, now time.Time) bool {
	slot := s.findSlot(foodID)
	if slot == nil || slot.Food == nil {
		return false
	}
	if slot.Food.CookingState == FoodStateReady || slot.Food.CookingState == FoodStateBurnt {
		return true
	}
	return slot.Cooking && !now.Before(slot.DoneAt)
}

// Update advances cooking state: cooking flips to ready at DoneAt, and
// ready food left past the burn margin flips to burnt.
func (s *Station) Update(now time.Time, burnMargin time.Duration) {
	if s == nil {
		return
	}
	for _, slot := range s.Slots {
		if slot.Food == nil || !slot.Cooking {
			continue
		}
		switch slot.Food.CookingState {
		case FoodStateCooking:
			if !now.Before(slot.DoneAt) {
				slot.Food.CookingState = FoodStateReady
			}
		case FoodStateReady:
			if burnMargin > 0 && !now.Before(slot.DoneAt.Add(burnMargin)) {
				slot.Food.CookingState = FoodStateBurnt
			}
		}
	}
}

// Take removes the given item from the station and returns it.
func (s *Station) Take(foodID string) *FoodItem {
	if s == nil {
		return nil
	}
	for i, slot := range s.Slots {
		if slot.Food != nil && slot.Food.ID == foodID {
			s.Slots = append(s.Slots[:i], s.Slots[i+1:]...)
			return slot.Food
		}
	}
	return nil
}

func (s *Station) Occupancy() int {
	if s == nil {
		return 0
	}
	return len(s.Slots)
}

func (s *Station) busyCooking() bool {
	for _, slot := range s.Slots {
		if slot.Cooking && slot.Food != nil && slot.Food.CookingState == FoodStateCooking {
			return true
		}
	}
	return false
}

func (s *Station) findSlot(foodID string) *StationSlot {
	if s == nil {
		return nil
	}
	for _, slot := range s.Slots {
		if slot.Food != nil && slot.Food.ID == foodID {
			return slot
		}
	}
	return nil
}
