package simulator

import (
	"time"

	"github.com/ckarenz/floorsim/internal/models"
)

// Mover decides how agents walk the floor. The default mover treats the
// whole floor as walkable; tests substitute movers with blocked regions.
type Mover interface {
	// Step advances from towards to at the given speed over dt and
	// reports whether the target was reached this step.
	Step(from, to models.Location, speed float64, dt time.Duration) (models.Location, bool)
	// Reachable reports whether the target can currently be reached.
	Reachable(to models.Location) bool
}

// FloorMover walks straight lines on an open rectangular floor.
type FloorMover struct {
	Width float64
	Depth float64
}

func (m FloorMover) Step(from, to models.Location, speed float64, dt time.Duration) (models.Location, bool) {
	dist := from.DistanceTo(to)
	stride := speed * dt.Seconds()
	if stride >= dist || dist == 0 {
		return to, true
	}
	frac := stride / dist
	return models.Location{
		X: from.X + (to.X-from.X)*frac,
		Y: from.Y + (to.Y-from.Y)*frac,
	}, false
}

func (m FloorMover) Reachable(to models.Location) bool {
	if m.Width <= 0 || m.Depth <= 0 {
		return true
	}
	return to.X >= 0 && to.X <= m.Width && to.Y >= 0 && to.Y <= m.Depth
}

type moveStatus int

const (
	moveInProgress moveStatus = iota
	moveArrived
	moveAbandoned
)

// advanceMovement progresses one agent's movement task by one tick.
// Unreachable targets are retried on a fixed spacing; once the retry
// budget is spent the task is abandoned and the caller must recover.
func (s *Simulator) advanceMovement(task *models.MovementTask, loc *models.Location, speed float64) moveStatus {
	if task == nil {
		return moveArrived
	}
	if !s.Mover.Reachable(task.Target) {
		if s.CurrentTime.Before(task.NextAttempt) {
			return moveInProgress
		}
		task.Attempts++
		if task.Attempts > s.Config.MoveRetryMax {
			return moveAbandoned
		}
		task.NextAttempt = s.CurrentTime.Add(s.Config.MoveRetrySpacing)
		return moveInProgress
	}
	next, arrived := s.Mover.Step(*loc, task.Target, speed, s.Config.TickInterval)
	*loc = next
	if arrived {
		return moveArrived
	}
	return moveInProgress
}
