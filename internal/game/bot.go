package game

import (
	"errors"

	"tilefront/internal/config"
)

// BotAction is a fully specified turn for the CPU opponent: select
// the unit on SelectID, then resolve against TargetID.
type BotAction struct {
	SelectID int
	TargetID int
	Score    int
}

// FindBestBotAction scores every legal select-and-target pair for the
// player and returns the best one. Scoring favors winning captures,
// then safe captures, then advances toward the nearest enemy, and
// penalizes exposing hidden units for nothing.
func FindBestBotAction(g *Game, player int, w config.BotWeights) (BotAction, error) {
	actions := legalBotActions(g, player)
	if len(actions) == 0 {
		return BotAction{}, errors.New("no legal actions available")
	}

	best := actions[0]
	best.Score = scoreBotAction(g, player, best, w)
	for _, a := range actions[1:] {
		if s := scoreBotAction(g, player, a, w); s > best.Score {
			a.Score = s
			best = a
		}
	}
	return best, nil
}

func legalBotActions(g *Game, player int) []BotAction {
	var out []BotAction
	for _, card := range g.board.Tiles() {
		if card.Unit == nil || card.Owner != player {
			continue
		}
		for _, npos := range card.Pos.Neighbors() {
			target, ok := g.board.At(npos)
			if !ok {
				continue
			}
			dir, _ := DirectionBetween(card.Pos, target.Pos)
			if !CanTraverse(card.Unit.Kind, target.Terrain.EntryEdge(dir)) {
				continue
			}
			if target.Unit != nil && target.Owner == player {
				continue
			}
			out = append(out, BotAction{SelectID: card.ID, TargetID: target.ID})
		}
	}
	return out
}

func scoreBotAction(g *Game, player int, a BotAction, w config.BotWeights) int {
	attacker, _ := g.board.ByID(a.SelectID)
	target, _ := g.board.ByID(a.TargetID)
	score := 0

	if target.Unit != nil {
		dir, _ := DirectionBetween(attacker.Pos, target.Pos)
		defense := target.Unit.Defense + DefenseBonus(target.Terrain.EntryEdge(dir))
		if attacker.Unit.Attack > defense {
			if target.Revealed && target.Unit.Kind == MobileCommand {
				return w.WWin
			}
			score += w.WCapture
		} else {
			// Losing attack: only the defeated list grows.
			score -= w.WCapture
		}
	} else {
		score += w.WAdvance * advanceGain(g, player, attacker.Pos, target.Pos)
	}

	if attacker.Unit.Kind == MobileCommand {
		score -= w.WCommandSafe
	}
	if !attacker.Revealed {
		score -= w.WRevealRisk
	}
	return score
}

// advanceGain is positive when the move shrinks the Manhattan
// distance to the nearest enemy unit.
func advanceGain(g *Game, player int, from, to Coord) int {
	before := nearestEnemyDistance(g, player, from)
	after := nearestEnemyDistance(g, player, to)
	if before < 0 || after < 0 {
		return 0
	}
	return before - after
}

func nearestEnemyDistance(g *Game, player int, pos Coord) int {
	best := -1
	for _, card := range g.board.Tiles() {
		if card.Unit == nil || card.Owner == player {
			continue
		}
		d := abs(card.Pos.X-pos.X) + abs(card.Pos.Y-pos.Y)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
