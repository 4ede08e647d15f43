package game

import "fmt"

// checkWin evaluates the win conditions after a capture, against the
// board as it stands with the defeated unit already removed. Command
// capture takes precedence; otherwise the elimination rule applies
// when the loser has no fighting units left but still holds their
// command.
func (g *Game) checkWin(defeated DefeatedUnit) (winner int, msg string, over bool) {
	opponent := otherPlayer(defeated.Owner)

	if defeated.Unit.Kind == MobileCommand {
		return opponent, fmt.Sprintf("player %d captured the enemy mobile command", opponent), true
	}

	combatants := 0
	hasCommand := false
	for _, card := range g.board.Tiles() {
		if card.Unit == nil || card.Owner != defeated.Owner {
			continue
		}
		if card.Unit.Kind == MobileCommand {
			hasCommand = true
		} else {
			combatants++
		}
	}
	if combatants == 0 && hasCommand {
		return opponent, fmt.Sprintf("player %d eliminated every enemy combat unit", opponent), true
	}
	return 0, "", false
}
