package models

import (
	"math"
	"time"
)

// Location is a position on the restaurant floor, in metres from the
// south-west corner.
type Location struct {
	X float64 `json:"x" parquet:"name=x,type=DOUBLE"`
	Y float64 `json:"y" parquet:"name=y,type=DOUBLE"`
}

func (l Location) DistanceTo(other Location) float64 {
	return math.Hypot(other.X-l.X, other.Y-l.Y)
}

// MovementTask is a resumable walk toward a target, polled each tick.
// Attempts and NextAttempt track the bounded retry budget used when the
// target turns out to be unreachable.
type MovementTask struct {
	Target      Location  `json:"target"`
	Attempts    int       `json:"attempts"`
	NextAttempt time.Time `json:"next_attempt"` // zero means retry immediately
}

func NewMovementTask(target Location) *MovementTask {
	return &MovementTask{Target: target}
}
