package engine_test

import (
	"testing"

	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

func TestCatalogStates(t *testing.T) {
	expected := map[engine.Kind]int{
		engine.KindI: 2,
		engine.KindJ: 4,
		engine.KindL: 4,
		engine.KindO: 1,
		engine.KindS: 2,
		engine.KindT: 4,
		engine.KindZ: 2,
	}

	if len(engine.Kinds()) != engine.KindCount {
		t.Fatalf("Kinds() returned %d kinds, expected %d", len(engine.Kinds()), engine.KindCount)
	}

	for _, k := range engine.Kinds() {
		if got := k.States(); got != expected[k] {
			t.Errorf("%s has %d states, expected %d", k, got, expected[k])
		}
	}
}

func TestCatalogShapesUseKindID(t *testing.T) {
	for _, k := range engine.Kinds() {
		for r := 0; r < k.States(); r++ {
			s := k.Shape(r)
			cells := s.Cells()
			if len(cells) != 4 {
				t.Errorf("%s rotation %d has %d cells, expected 4", k, r, len(cells))
			}
			for _, c := range cells {
				if s[c.Y][c.X] != k.Cell() {
					t.Errorf("%s rotation %d has cell %d at %v, expected %d", k, r, s[c.Y][c.X], c, k.Cell())
				}
			}
		}
	}
}

func TestRotationWraps(t *testing.T) {
	for _, k := range engine.Kinds() {
		n := k.States()
		if k.Shape(n) != k.Shape(0) {
			t.Errorf("%s: Shape(%d) should wrap to Shape(0)", k, n)
		}
		if k.Shape(-1) != k.Shape(n-1) {
			t.Errorf("%s: Shape(-1) should wrap to the last state", k)
		}
		if k.NextRotation(n-1) != 0 {
			t.Errorf("%s: NextRotation(%d) = %d, expected 0", k, n-1, k.NextRotation(n-1))
		}
	}
}

func TestInvalidKind(t *testing.T) {
	if engine.KindNone.Valid() {
		t.Error("KindNone should not be valid")
	}
	if engine.KindNone.States() != 0 {
		t.Error("KindNone should have no states")
	}
	if !engine.KindNone.Shape(0).IsEmpty() {
		t.Error("KindNone shape should be empty")
	}
	if engine.Kind(42).String() != "-" {
		t.Errorf("unexpected name for invalid kind: %q", engine.Kind(42).String())
	}
}
