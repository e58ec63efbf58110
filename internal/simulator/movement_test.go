package simulator

import (
	"testing"
	"time"

	"github.com/ckarenz/floorsim/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFloorMoverStepsTowardTarget(t *testing.T) {
	m := &FloorMover{Width: 30, Depth: 20}

	loc, arrived := m.Step(models.Location{X: 0, Y: 0}, models.Location{X: 10, Y: 0}, 2, time.Second)
	assert.False(t, arrived)
	assert.InDelta(t, 2.0, loc.X, 1e-9)

	loc, arrived = m.Step(models.Location{X: 9.5, Y: 0}, models.Location{X: 10, Y: 0}, 2, time.Second)
	assert.True(t, arrived, "final stride snaps to the target")
	assert.Equal(t, models.Location{X: 10, Y: 0}, loc)
}

func TestFloorMoverReachability(t *testing.T) {
	m := &FloorMover{Width: 30, Depth: 20}

	assert.True(t, m.Reachable(models.Location{X: 15, Y: 10}))
	assert.False(t, m.Reachable(models.Location{X: 31, Y: 10}))
	assert.False(t, m.Reachable(models.Location{X: -1, Y: 5}))
}

func TestMovementRetryBudget(t *testing.T) {
	s := newTestSim()
	s.Mover = blockedMover{}
	loc := models.Location{X: 5, Y: 5}
	task := models.NewMovementTask(models.Location{X: 20, Y: 10})

	var status moveStatus
	deadline := s.CurrentTime.Add(time.Minute)
	for s.CurrentTime.Before(deadline) {
		status = s.advanceMovement(task, &loc, 1.6)
		if status == moveAbandoned {
			break
		}
		s.advance(s.Config.TickInterval)
	}

	assert.Equal(t, moveAbandoned, status)
	assert.Equal(t, models.Location{X: 5, Y: 5}, loc, "no progress toward an unreachable target")
	elapsed := s.CurrentTime.Sub(testStart)
	assert.True(t, elapsed >= 10*time.Second && elapsed < 12*time.Second,
		"five retries two seconds apart before abandoning, took %s", elapsed)
}

func TestMovementRetriesAreSpacedOut(t *testing.T) {
	s := newTestSim()
	s.Mover = blockedMover{}
	loc := models.Location{}
	task := models.NewMovementTask(models.Location{X: 99, Y: 99})

	s.advanceMovement(task, &loc, 1.6)
	assert.Equal(t, 1, task.Attempts)

	s.advance(s.Config.TickInterval)
	s.advanceMovement(task, &loc, 1.6)
	assert.Equal(t, 1, task.Attempts, "no second attempt inside the retry spacing")

	s.advance(s.Config.MoveRetrySpacing)
	s.advanceMovement(task, &loc, 1.6)
	assert.Equal(t, 2, task.Attempts)
}
