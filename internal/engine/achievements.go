package engine

// Achievement is a level's unlock message together with whether it is earned.
type Achievement struct {
	Level  Level
	Index  int
	Earned bool
}

// Achievements lists every level's achievement, marking those reached at points.
func Achievements(levels []Level, points int) []Achievement {
	// The current level and everything below it are earned. The lowest level
	// is always earned, even when points are negative.
	cur := LevelFor(levels, points)
	out := make([]Achievement, 0, len(levels))
	for i, l := range levels {
		out = append(out, Achievement{Level: l, Index: i, Earned: i <= cur})
	}
	return out
}

// CountEarned returns how many achievements are earned.
func CountEarned(list []Achievement) int {
	n := 0
	for _, a := range list {
		if a.Earned {
			n++
		}
	}
	return n
}
