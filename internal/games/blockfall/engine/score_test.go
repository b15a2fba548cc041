package engine_test

import (
	"testing"

	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

func TestLineClearBonus(t *testing.T) {
	tests := []struct {
		lines, level, expected int
	}{
		{0, 1, 0},
		{-1, 5, 0},
		{1, 1, 50},
		{2, 1, 200},
		{3, 1, 450},
		{4, 1, 800},
		{4, 10, 8000},
		{2, 3, 600},
	}

	for _, tc := range tests {
		if got := engine.LineClearBonus(tc.lines, tc.level); got != tc.expected {
			t.Errorf("LineClearBonus(%d, %d) = %d, expected %d", tc.lines, tc.level, got, tc.expected)
		}
	}
}

func TestLevelForLines(t *testing.T) {
	tests := []struct {
		lines, expected int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{19, 2},
		{25, 3},
		{-4, 1},
	}

	for _, tc := range tests {
		if got := engine.LevelForLines(tc.lines); got != tc.expected {
			t.Errorf("LevelForLines(%d) = %d, expected %d", tc.lines, got, tc.expected)
		}
	}
}

func TestTracker(t *testing.T) {
	tr := engine.NewTracker()
	if s := tr.Stats(); s != (engine.Stats{Score: 0, Lines: 0, Level: 1}) {
		t.Fatalf("initial stats = %+v", s)
	}

	tr.AddScore(120)
	tr.AddScore(-50) // ignored
	tr.AddScore(0)
	if s := tr.Stats(); s.Score != 120 {
		t.Errorf("score = %d, expected 120", s.Score)
	}

	if tr.AddLines(9) {
		t.Error("9 lines should not level up")
	}
	if !tr.AddLines(1) {
		t.Error("10th line should level up")
	}
	if tr.AddLines(0) || tr.AddLines(-3) {
		t.Error("non-positive line counts should be ignored")
	}
	if s := tr.Stats(); s.Lines != 10 || s.Level != 2 {
		t.Errorf("stats = %+v, expected 10 lines at level 2", s)
	}

	tr.Reset()
	if s := tr.Stats(); s != (engine.Stats{Score: 0, Lines: 0, Level: 1}) {
		t.Errorf("stats after Reset = %+v", s)
	}
}
