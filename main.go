package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"tilefront/internal/config"
	"tilefront/internal/game"
	"tilefront/internal/session"
	"tilefront/internal/transport"
)

// Local terminal game against the CPU. Two full sessions run over an
// in-process loopback channel, so the whole sync protocol is
// exercised even offline.
func main() {
	cfg := config.Load()

	a, b := transport.NewLoopbackPair()
	human := session.New(session.RoleInitiator, a, "You")
	cpu := session.New(session.RoleResponder, b, "CPU")
	a.SetReceiver(func(frame []byte) {
		if err := human.HandleFrame(frame); err != nil {
			fmt.Println("sync failure:", err)
			os.Exit(1)
		}
	})
	b.SetReceiver(func(frame []byte) {
		if err := cpu.HandleFrame(frame); err != nil {
			fmt.Println("sync failure:", err)
			os.Exit(1)
		}
	})

	if err := cpu.Start(); err != nil {
		fmt.Println("failed to start:", err)
		os.Exit(1)
	}
	if err := human.Start(); err != nil {
		fmt.Println("failed to start:", err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("Placement: enter a spot as \"x y\", or \"auto\" to finish placement randomly.")
	autoAll := false
	for human.Phase() == session.PhasePlacement {
		if human.PlacementTurn() == human.LocalPlayer() {
			printBoard(human.Snapshot())
			fmt.Printf("Spots: %v\n", human.LegalSpots())
			if unit, terrain, ok := nextPair(human); ok {
				fmt.Printf("Placing %s (atk %d def %d) on %s\n",
					unit.Kind, unit.Attack, unit.Defense, terrainLine(terrain))
			}
			if autoAll {
				if _, err := human.AutoPlaceTurn(); err != nil {
					fmt.Println("placement failed:", err)
					os.Exit(1)
				}
				continue
			}
			fmt.Print("> ")
			line, _ := reader.ReadString('\n')
			line = strings.TrimSpace(line)
			if line == "auto" {
				autoAll = true
				continue
			}
			pos, ok := parseCoord(line)
			if !ok {
				fmt.Println("Enter two integers, e.g. 0 1")
				continue
			}
			if _, err := human.PlaceNext(pos); err != nil {
				fmt.Println("Invalid placement:", err)
			}
		} else {
			if _, err := cpu.AutoPlaceTurn(); err != nil {
				fmt.Println("cpu placement failed:", err)
				os.Exit(1)
			}
		}
	}

	fmt.Println("\nGameplay: enter \"fx fy tx ty\" to act with the unit at (fx,fy) on (tx,ty).")
	for human.Phase() == session.PhaseGameplay {
		if human.Turn() == human.LocalPlayer() {
			printBoard(human.Snapshot())
			fmt.Print("> ")
			line, _ := reader.ReadString('\n')
			parts := strings.Fields(line)
			if len(parts) != 4 {
				fmt.Println("Need four integers: fx fy tx ty")
				continue
			}
			from, ok1 := parseCoord(parts[0] + " " + parts[1])
			to, ok2 := parseCoord(parts[2] + " " + parts[3])
			if !ok1 || !ok2 {
				fmt.Println("Need four integers: fx fy tx ty")
				continue
			}
			if err := actAt(human, from, to); err != nil {
				fmt.Println("Invalid action:", err)
			}
		} else {
			out, err := cpu.PlayBotTurn(cfg.Weights)
			if err != nil {
				fmt.Println("cpu has no moves:", err)
				os.Exit(1)
			}
			describe(cpu, out)
		}
	}

	printBoard(human.Snapshot())
	fmt.Println("\nGame over!")
	fmt.Println(human.Snapshot().WinMessage)
}

func actAt(s *session.Session, from, to game.Coord) error {
	fromCard, ok := s.Board().At(from)
	if !ok {
		return game.ErrInvalidPlacement
	}
	toCard, ok := s.Board().At(to)
	if !ok {
		return game.ErrNotAdjacent
	}
	if err := s.SelectUnit(fromCard.ID); err != nil {
		return err
	}
	if _, err := s.ResolveTarget(toCard.ID); err != nil {
		s.Deselect()
		return err
	}
	return nil
}

func nextPair(s *session.Session) (game.UnitInstance, game.TerrainCard, bool) {
	snap := s.Snapshot()
	if len(snap.RemainingUnits) == 0 || len(snap.RemainingTerrains) == 0 {
		return game.UnitInstance{}, game.TerrainCard{}, false
	}
	return snap.RemainingUnits[0], snap.RemainingTerrains[0], true
}

func describe(s *session.Session, out *game.Outcome) {
	attacker, _ := s.Board().ByID(out.AttackerID)
	target, _ := s.Board().ByID(out.TargetID)
	if out.Kind == game.OutcomeMove {
		fmt.Printf("CPU moves (%d,%d) -> (%d,%d)\n",
			attacker.Pos.X, attacker.Pos.Y, target.Pos.X, target.Pos.Y)
		return
	}
	result := "loses"
	if out.AttackerWon {
		result = "wins"
	}
	fmt.Printf("CPU attacks (%d,%d) and %s (%s %d/%d defeated)\n",
		target.Pos.X, target.Pos.Y, result,
		out.Defeated.Unit.Kind, out.Defeated.Unit.Attack, out.Defeated.Unit.Defense)
}

func parseCoord(line string) (game.Coord, bool) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return game.Coord{}, false
	}
	x, err1 := strconv.Atoi(parts[0])
	y, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return game.Coord{}, false
	}
	return game.Coord{X: x, Y: y}, true
}

func terrainLine(t game.TerrainCard) string {
	return fmt.Sprintf("terrain[top=%s right=%s bottom=%s left=%s]",
		t.Top, t.Right, t.Bottom, t.Left)
}

var kindGlyphs = map[game.UnitKind]string{
	game.MobileCommand: "C",
	game.Tank:          "T",
	game.Infantry:      "I",
	game.Artillery:     "A",
	game.SpecialOps:    "S",
}

func printBoard(snap session.Snapshot) {
	if len(snap.Tiles) == 0 {
		return
	}
	minX, minY := snap.Tiles[0].X, snap.Tiles[0].Y
	maxX, maxY := minX, minY
	byPos := map[game.Coord]session.TileView{}
	for _, t := range snap.Tiles {
		byPos[game.Coord{X: t.X, Y: t.Y}] = t
		if t.X < minX {
			minX = t.X
		}
		if t.X > maxX {
			maxX = t.X
		}
		if t.Y < minY {
			minY = t.Y
		}
		if t.Y > maxY {
			maxY = t.Y
		}
	}
	fmt.Println()
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			tile, ok := byPos[game.Coord{X: x, Y: y}]
			switch {
			case !ok:
				fmt.Print("  .  ")
			case !tile.Occupied:
				fmt.Print(" [ ] ")
			case tile.Unit == nil:
				fmt.Printf(" [?%d]", tile.Owner)
			default:
				fmt.Printf(" [%s%d]", kindGlyphs[tile.Unit.Kind], tile.Owner)
			}
		}
		fmt.Println()
	}
	fmt.Println()
}
