package game

import (
	"testing"

	"tilefront/internal/config"
)

func testWeights() config.BotWeights {
	return config.BotWeights{
		WWin:         10000,
		WCapture:     300,
		WCommandSafe: 150,
		WAdvance:     40,
		WRevealRisk:  25,
	}
}

func TestBotPrefersWinningCapture(t *testing.T) {
	b := buildBoard(t, []cardSpec{
		{id: 1, owner: 1, kind: Artillery, num: 1, pos: Origin, terrain: allPlains()},
		{id: 2, owner: 2, kind: MobileCommand, num: 1, pos: Coord{X: 1, Y: 0}, terrain: allPlains()},
		{id: 3, vacant: true, pos: Coord{X: 0, Y: 1}, terrain: allPlains()},
	})
	// The command is revealed, so the bot may act on what it sees.
	if _, err := b.Reveal(2); err != nil {
		t.Fatalf("Reveal failed: %v", err)
	}
	g := NewGame(b)

	action, err := FindBestBotAction(g, 1, testWeights())
	if err != nil {
		t.Fatalf("FindBestBotAction failed: %v", err)
	}
	if action.SelectID != 1 || action.TargetID != 2 {
		t.Fatalf("bot chose %+v, want the command capture 1 -> 2", action)
	}
}

func TestBotSkipsBlockedTargets(t *testing.T) {
	mountainRing := TerrainCard{Top: Mountain, Right: Mountain, Bottom: Mountain, Left: Forest}
	b := buildBoard(t, []cardSpec{
		{id: 1, owner: 1, kind: Tank, num: 1, pos: Origin, terrain: allPlains()},
		{id: 2, owner: 2, kind: Infantry, num: 1, pos: Coord{X: 1, Y: 0}, terrain: mountainRing},
		{id: 3, vacant: true, pos: Coord{X: 0, Y: 1}, terrain: allPlains()},
	})
	g := NewGame(b)

	action, err := FindBestBotAction(g, 1, testWeights())
	if err != nil {
		t.Fatalf("FindBestBotAction failed: %v", err)
	}
	if action.TargetID == 2 {
		t.Fatal("bot picked a terrain-blocked target")
	}
	if action.SelectID != 1 || action.TargetID != 3 {
		t.Fatalf("bot chose %+v, want the open move 1 -> 3", action)
	}
}

func TestBotNoLegalActions(t *testing.T) {
	sealed := TerrainCard{Top: Mountain, Right: Mountain, Bottom: Mountain, Left: Mountain}
	b := buildBoard(t, []cardSpec{
		{id: 1, owner: 1, kind: Tank, num: 1, pos: Origin, terrain: allPlains()},
		{id: 2, vacant: true, pos: Coord{X: 1, Y: 0}, terrain: sealed},
	})
	g := NewGame(b)

	if _, err := FindBestBotAction(g, 1, testWeights()); err == nil {
		t.Fatal("expected an error with no legal actions")
	}
}
