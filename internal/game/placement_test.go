package game

import (
	"math/rand"
	"testing"
)

func TestAutoPlaceAlternationAndAdjacency(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	p1 := GeneratePool(rng)
	p2 := GeneratePool(rng)

	steps, err := AutoPlace(p1, p2, rng)
	if err != nil {
		t.Fatalf("AutoPlace failed: %v", err)
	}
	if len(steps) != TotalPlacements {
		t.Fatalf("got %d steps, want %d", len(steps), TotalPlacements)
	}
	if steps[0].Pos != Origin {
		t.Errorf("first placement at %v, want origin", steps[0].Pos)
	}
	for i, s := range steps {
		wantPlayer := 1 + i%2
		if s.Player != wantPlayer {
			t.Errorf("step %d placed by player %d, want %d", i, s.Player, wantPlayer)
		}
		if s.CardID != i+1 {
			t.Errorf("step %d card id %d, want %d", i, s.CardID, i+1)
		}
	}

	// Replaying the steps must produce a connected board.
	b := NewBoard()
	for _, s := range steps {
		unit := s.Unit
		if err := b.Add(&PlacedCard{ID: s.CardID, Owner: s.Player, Pos: s.Pos, Unit: &unit, Terrain: s.Terrain}); err != nil {
			t.Fatalf("replaying step %+v failed: %v", s, err)
		}
	}
}

func TestPlacementLocalValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	pool := GeneratePool(rng)
	p := NewPlacement(NewBoard(), 1, pool)

	unit, terrain, _ := pool.Next()

	if _, err := p.Place(2, unit, terrain, Origin); err != ErrNotYourUnit {
		t.Fatalf("placing for remote player: err = %v, want ErrNotYourUnit", err)
	}
	if _, err := p.Place(1, unit, terrain, Coord{X: 3, Y: 3}); err != ErrInvalidPlacement {
		t.Fatalf("off-frontier placement: err = %v, want ErrInvalidPlacement", err)
	}
	if _, err := p.Place(1, NewUnit(Tank, 9), terrain, Origin); err != ErrNotInPool {
		t.Fatalf("foreign unit: err = %v, want ErrNotInPool", err)
	}

	card, err := p.Place(1, unit, terrain, Origin)
	if err != nil {
		t.Fatalf("legal placement failed: %v", err)
	}
	if card.ID != 1 || card.Owner != 1 || card.Revealed {
		t.Errorf("placed card = %+v, want id 1, owner 1, unrevealed", card)
	}
	if p.Turn() != 2 {
		t.Errorf("turn after placement = %d, want 2", p.Turn())
	}
	// Now it is the other player's placement turn.
	if _, err := p.PlaceNext(Coord{X: 1, Y: 0}); err != ErrNotYourTurn {
		t.Fatalf("out-of-turn placement: err = %v, want ErrNotYourTurn", err)
	}
}

func TestPlacementRemoteInterleaving(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	localPool := GeneratePool(rng)
	remotePool := GeneratePool(rng)
	p := NewPlacement(NewBoard(), 1, localPool)

	spots := []Coord{
		Origin,
		{X: 1, Y: 0},
		{X: 0, Y: 1},
		{X: 1, Y: 1},
	}
	for i := 0; i < len(spots); i++ {
		if i%2 == 0 {
			card, err := p.PlaceNext(spots[i])
			if err != nil {
				t.Fatalf("local placement %d failed: %v", i, err)
			}
			if card.ID != i+1 {
				t.Errorf("local card id = %d, want %d", card.ID, i+1)
			}
		} else {
			u := remotePool.Units[i/2]
			tr := remotePool.Terrains[i/2]
			card, err := p.ApplyRemote(2, u, tr, spots[i], i+1)
			if err != nil {
				t.Fatalf("remote placement %d failed: %v", i, err)
			}
			if card.ID != i+1 {
				t.Errorf("remote card id = %d, want %d", card.ID, i+1)
			}
		}
	}
	if p.Placed() != 4 {
		t.Errorf("placed = %d, want 4", p.Placed())
	}

	// Remote placement out of turn means the boards diverged.
	if _, err := p.ApplyRemote(2, remotePool.Units[2], remotePool.Terrains[2], Coord{X: 2, Y: 0}, 5); err != ErrNotYourTurn {
		t.Fatalf("out-of-turn remote: err = %v, want ErrNotYourTurn", err)
	}
}

func TestPlacementDoneAfterSixteen(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	localPool := GeneratePool(rng)
	remotePool := GeneratePool(rng)
	p := NewPlacement(NewBoard(), 1, localPool)

	remoteIdx := 0
	for !p.Done() {
		frontier := p.LegalSpots()
		if len(frontier) == 0 {
			t.Fatal("frontier unexpectedly empty")
		}
		pos := frontier[rng.Intn(len(frontier))]
		if p.Turn() == 1 {
			if _, err := p.PlaceNext(pos); err != nil {
				t.Fatalf("local placement failed: %v", err)
			}
		} else {
			u := remotePool.Units[remoteIdx]
			tr := remotePool.Terrains[remoteIdx]
			if _, err := p.ApplyRemote(2, u, tr, pos, p.Placed()+1); err != nil {
				t.Fatalf("remote placement failed: %v", err)
			}
			remoteIdx++
		}
	}
	if p.Placed() != TotalPlacements {
		t.Errorf("placed = %d, want %d", p.Placed(), TotalPlacements)
	}
	if p.LocalPool().Remaining() != 0 {
		t.Errorf("local pool remaining = %d, want 0", p.LocalPool().Remaining())
	}
}
