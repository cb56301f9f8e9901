// Package progression holds the pure XP and level arithmetic. It has no
// persistence; callers load a user's counters, apply deltas here, and write
// the result back inside their own transaction.
package progression

// XPPerLevel is the fixed width of every level band.
const XPPerLevel = 100

// State is a user's progression counters.
type State struct {
	XP          int
	Level       int
	XPThisMonth int
}

// Award is the result of applying an XP delta.
type Award struct {
	State          State
	Delta          int
	LeveledUp      bool
	XPForNextLevel int
}

// LevelFor derives the level from lifetime XP. Negative XP is treated as 0.
func LevelFor(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// XPForNextLevel is the XP still needed to reach the next level boundary.
func XPForNextLevel(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return LevelFor(xp)*XPPerLevel - xp
}

// Apply adds delta XP to s and recomputes the level. Negative deltas are
// ignored; XP never decreases through awards.
func Apply(s State, delta int) Award {
	if delta < 0 {
		delta = 0
	}
	before := LevelFor(s.XP)
	next := State{
		XP:          s.XP + delta,
		XPThisMonth: s.XPThisMonth + delta,
	}
	next.Level = LevelFor(next.XP)
	return Award{
		State:          next,
		Delta:          delta,
		LeveledUp:      next.Level > before,
		XPForNextLevel: XPForNextLevel(next.XP),
	}
}
