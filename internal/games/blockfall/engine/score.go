package engine

// LinesPerLevel is how many cleared lines advance the level by one.
const LinesPerLevel = 10

// Stats holds the score counters. All three only ever grow during a game.
type Stats struct {
	Score int
	Lines int
	Level int
}

// LevelForLines derives the level from total cleared lines.
func LevelForLines(lines int) int {
	if lines < 0 {
		lines = 0
	}
	return lines/LinesPerLevel + 1
}

// LineClearBonus is 50 * lines^2 * level, or 0 when nothing was cleared.
func LineClearBonus(lines, level int) int {
	if lines <= 0 {
		return 0
	}
	return 50 * lines * lines * level
}

// Tracker accumulates score, lines and level for one game.
type Tracker struct {
	stats Stats
}

// NewTracker returns a tracker at score 0, lines 0, level 1.
func NewTracker() *Tracker {
	t := &Tracker{}
	t.Reset()
	return t
}

// AddScore adds delta to the score. Non-positive deltas are ignored.
func (t *Tracker) AddScore(delta int) {
	if delta <= 0 {
		return
	}
	t.stats.Score += delta
}

// AddLines adds n cleared lines and recomputes the level.
// It reports whether the level went up.
func (t *Tracker) AddLines(n int) bool {
	if n <= 0 {
		return false
	}
	t.stats.Lines += n
	level := LevelForLines(t.stats.Lines)
	if level > t.stats.Level {
		t.stats.Level = level
		return true
	}
	return false
}

// Reset returns all counters to their initial values.
func (t *Tracker) Reset() {
	t.stats = Stats{Score: 0, Lines: 0, Level: 1}
}

// Stats returns a copy of the counters.
func (t *Tracker) Stats() Stats {
	return t.stats
}
