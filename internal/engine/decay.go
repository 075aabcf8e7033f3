package engine

import "time"

const (
	// StartPoints is awarded the moment a feat is started.
	StartPoints = 100

	// MinPoints is the floor the decay never goes below.
	MinPoints = 10

	// DecayStep is how much elapsed time costs one point.
	DecayStep = time.Second
)

// Decay returns the points a feat started at startedAt is worth at now:
// one point lost per whole DecayStep, clamped at MinPoints.
func Decay(startedAt, now time.Time) int {
	elapsed := now.Sub(startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	pts := StartPoints - int(elapsed/DecayStep)
	if pts < MinPoints {
		return MinPoints
	}
	return pts
}
