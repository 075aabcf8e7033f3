package engine

// Level is a named milestone unlocked once the point total reaches Threshold.
type Level struct {
	Name        string
	Icon        string
	Threshold   int
	Achievement string
}

// LevelFor returns the index of the highest level whose threshold is <= points.
// Levels must be ordered by ascending threshold. Falls back to the lowest level.
func LevelFor(levels []Level, points int) int {
	for i := len(levels) - 1; i >= 0; i-- {
		if points >= levels[i].Threshold {
			return i
		}
	}
	return 0
}

// PointsToNext returns how many points are missing to reach the level after the
// one points currently falls in. ok is false on the top level.
func PointsToNext(levels []Level, points int) (missing int, ok bool) {
	cur := LevelFor(levels, points)
	if cur+1 >= len(levels) {
		return 0, false
	}
	missing = levels[cur+1].Threshold - points
	if missing < 0 {
		missing = 0
	}
	return missing, true
}
