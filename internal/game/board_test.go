package game

import "testing"

func allPlains() TerrainCard {
	return TerrainCard{Top: Plains, Right: Plains, Bottom: Plains, Left: Plains}
}

func mustAdd(t *testing.T, b *Board, card *PlacedCard) {
	t.Helper()
	if err := b.Add(card); err != nil {
		t.Fatalf("Add(%+v) failed: %v", card, err)
	}
}

func TestDirectionBetween(t *testing.T) {
	from := Coord{X: 2, Y: 2}
	tests := []struct {
		to   Coord
		dir  Direction
		ok   bool
	}{
		{Coord{X: 2, Y: 1}, DirUp, true},
		{Coord{X: 3, Y: 2}, DirRight, true},
		{Coord{X: 2, Y: 3}, DirDown, true},
		{Coord{X: 1, Y: 2}, DirLeft, true},
		{Coord{X: 3, Y: 3}, 0, false}, // diagonal
		{Coord{X: 2, Y: 2}, 0, false}, // same tile
		{Coord{X: 4, Y: 2}, 0, false}, // two steps
	}
	for _, tc := range tests {
		dir, ok := DirectionBetween(from, tc.to)
		if ok != tc.ok || (ok && dir != tc.dir) {
			t.Errorf("DirectionBetween(%v, %v) = %v, %v; want %v, %v",
				from, tc.to, dir, ok, tc.dir, tc.ok)
		}
	}
}

func TestEntryEdge(t *testing.T) {
	terrain := TerrainCard{Top: Plains, Right: Forest, Bottom: Mountain, Left: Forest}
	tests := []struct {
		dir  Direction
		want EdgeType
	}{
		{DirRight, Forest},  // attacker west of target, crosses its left edge
		{DirLeft, Forest},   // attacker east, crosses right edge
		{DirDown, Plains},   // attacker north, crosses top edge
		{DirUp, Mountain},   // attacker south, crosses bottom edge
	}
	for _, tc := range tests {
		if got := terrain.EntryEdge(tc.dir); got != tc.want {
			t.Errorf("EntryEdge(%v) = %s, want %s", tc.dir, got, tc.want)
		}
	}
}

func TestFrontierEmptyBoard(t *testing.T) {
	b := NewBoard()
	frontier := b.Frontier()
	if len(frontier) != 1 || frontier[0] != Origin {
		t.Fatalf("empty board frontier = %v, want [%v]", frontier, Origin)
	}
}

func TestFrontierExcludesOccupiedAndDiagonals(t *testing.T) {
	b := NewBoard()
	mustAdd(t, b, &PlacedCard{ID: 1, Owner: 1, Pos: Origin, Terrain: allPlains()})
	mustAdd(t, b, &PlacedCard{ID: 2, Owner: 2, Pos: Coord{X: 1, Y: 0}, Terrain: allPlains()})

	frontier := b.Frontier()
	want := map[Coord]bool{
		{X: -1, Y: 0}: true,
		{X: 0, Y: -1}: true,
		{X: 0, Y: 1}:  true,
		{X: 1, Y: -1}: true,
		{X: 1, Y: 1}:  true,
		{X: 2, Y: 0}:  true,
	}
	if len(frontier) != len(want) {
		t.Fatalf("frontier = %v, want %d spots", frontier, len(want))
	}
	for _, pos := range frontier {
		if !want[pos] {
			t.Errorf("unexpected frontier spot %v", pos)
		}
		if _, occupied := b.At(pos); occupied {
			t.Errorf("frontier includes occupied spot %v", pos)
		}
	}
}

func TestAddRejectsNonAdjacent(t *testing.T) {
	b := NewBoard()
	if err := b.Add(&PlacedCard{ID: 1, Pos: Coord{X: 5, Y: 5}, Terrain: allPlains()}); err != ErrInvalidPlacement {
		t.Fatalf("first card off origin: err = %v, want ErrInvalidPlacement", err)
	}
	mustAdd(t, b, &PlacedCard{ID: 1, Pos: Origin, Terrain: allPlains()})
	if err := b.Add(&PlacedCard{ID: 2, Pos: Coord{X: 1, Y: 1}, Terrain: allPlains()}); err != ErrInvalidPlacement {
		t.Fatalf("diagonal placement: err = %v, want ErrInvalidPlacement", err)
	}
	if err := b.Add(&PlacedCard{ID: 2, Pos: Origin, Terrain: allPlains()}); err != ErrInvalidPlacement {
		t.Fatalf("occupied placement: err = %v, want ErrInvalidPlacement", err)
	}
	if err := b.Add(&PlacedCard{ID: 1, Pos: Coord{X: 1, Y: 0}, Terrain: allPlains()}); err != ErrDuplicateCardID {
		t.Fatalf("duplicate id: err = %v, want ErrDuplicateCardID", err)
	}
}

func TestRevealMonotonic(t *testing.T) {
	b := NewBoard()
	unit := NewUnit(Infantry, 1)
	mustAdd(t, b, &PlacedCard{ID: 1, Owner: 1, Pos: Origin, Unit: &unit, Terrain: allPlains()})

	card, err := b.Reveal(1)
	if err != nil {
		t.Fatalf("Reveal failed: %v", err)
	}
	if !card.Revealed {
		t.Fatal("card not revealed after Reveal")
	}
	// Revealing again must be a no-op, never a reset.
	if _, err := b.Reveal(1); err != nil {
		t.Fatalf("second Reveal failed: %v", err)
	}
	if !card.Revealed {
		t.Fatal("revealed flag reverted")
	}
	if _, err := b.Reveal(99); err != ErrUnknownCardID {
		t.Fatalf("Reveal(99) err = %v, want ErrUnknownCardID", err)
	}
}
