package game

// DefeatedUnit archives a captured unit. Once here the instance never
// returns to the board.
type DefeatedUnit struct {
	Owner int          `json:"owner"`
	Unit  UnitInstance `json:"unit"`
}

type OutcomeKind byte

const (
	OutcomeMove   OutcomeKind = 0
	OutcomeAttack OutcomeKind = 1
)

// Outcome is the full result of a resolved target action. It carries
// everything the other peer needs to apply the same board mutation
// without recomputing combat.
type Outcome struct {
	Kind             OutcomeKind
	AttackerID       int
	TargetID         int
	RevealedDefender bool // defender was hidden and is now revealed
	AttackerWon      bool
	Defeated         DefeatedUnit // zero value on a plain move
	NextPlayer       int
	GameOver         bool
	Winner           int
	WinMessage       string
}

// Game is the gameplay-phase engine for one peer: the replicated
// board plus turn ownership, current selection and the defeated list.
type Game struct {
	board    *Board
	turn     int
	selected int // card id, 0 when nothing is selected
	defeated []DefeatedUnit
	over     bool
	winner   int
	winMsg   string
}

// NewGame starts the gameplay phase on a fully placed board. Player 1
// always moves first.
func NewGame(board *Board) *Game {
	return &Game{board: board, turn: 1}
}

func (g *Game) Board() *Board            { return g.board }
func (g *Game) Turn() int                { return g.turn }
func (g *Game) Selected() int            { return g.selected }
func (g *Game) Over() bool               { return g.over }
func (g *Game) Winner() int              { return g.winner }
func (g *Game) WinMessage() string       { return g.winMsg }
func (g *Game) Defeated() []DefeatedUnit { return g.defeated }

// SelectUnit selects one of the acting player's units, revealing it
// if it was hidden. Selecting the already selected tile deselects it.
// revealed reports whether a reveal happened, so the caller knows to
// notify the peer; the reveal itself is never retracted even if the
// unit is deselected afterwards.
func (g *Game) SelectUnit(player, cardID int) (revealed bool, err error) {
	if g.over {
		return false, ErrWrongPhase
	}
	if player != g.turn {
		return false, ErrNotYourTurn
	}
	card, ok := g.board.ByID(cardID)
	if !ok {
		return false, ErrUnknownCardID
	}
	if card.Unit == nil {
		return false, ErrEmptyTile
	}
	if card.Owner != player {
		return false, ErrNotYourUnit
	}
	if g.selected == cardID {
		g.selected = 0
		return false, nil
	}
	revealed = !card.Revealed
	card.Revealed = true
	g.selected = cardID
	return revealed, nil
}

// Deselect drops the current selection. Pure local-state rollback; no
// peer-visible effect.
func (g *Game) Deselect() { g.selected = 0 }

// ResolveTarget resolves the selected unit against an adjacent target
// tile: a move onto empty terrain or an attack on an enemy unit.
// Defender wins ties. On success the selection is cleared and the
// turn flips to the non-acting player unless the game ended.
func (g *Game) ResolveTarget(player, targetID int) (*Outcome, error) {
	if g.over {
		return nil, ErrWrongPhase
	}
	if player != g.turn {
		return nil, ErrNotYourTurn
	}
	if g.selected == 0 {
		return nil, ErrNoSelection
	}
	attacker, ok := g.board.ByID(g.selected)
	if !ok {
		return nil, ErrUnknownCardID
	}
	target, ok := g.board.ByID(targetID)
	if !ok {
		return nil, ErrUnknownCardID
	}

	dir, adjacent := DirectionBetween(attacker.Pos, target.Pos)
	if !adjacent {
		return nil, ErrNotAdjacent
	}
	entry := target.Terrain.EntryEdge(dir)
	if !CanTraverse(attacker.Unit.Kind, entry) {
		return nil, ErrTerrainBlocked
	}

	if target.Unit == nil {
		out := &Outcome{
			Kind:       OutcomeMove,
			AttackerID: attacker.ID,
			TargetID:   target.ID,
			NextPlayer: otherPlayer(player),
		}
		g.applyMove(attacker, target)
		g.turn = out.NextPlayer
		g.selected = 0
		return out, nil
	}
	if target.Owner == player {
		return nil, ErrOwnUnitTarget
	}

	out := &Outcome{
		Kind:             OutcomeAttack,
		AttackerID:       attacker.ID,
		TargetID:         target.ID,
		RevealedDefender: !target.Revealed,
	}
	target.Revealed = true

	attackValue := attacker.Unit.Attack
	defenseValue := target.Unit.Defense + DefenseBonus(entry)
	out.AttackerWon = attackValue > defenseValue

	if out.AttackerWon {
		out.Defeated = DefeatedUnit{Owner: target.Owner, Unit: *target.Unit}
		g.defeated = append(g.defeated, out.Defeated)
		g.applyMove(attacker, target)
	} else {
		out.Defeated = DefeatedUnit{Owner: attacker.Owner, Unit: *attacker.Unit}
		g.defeated = append(g.defeated, out.Defeated)
		attacker.Unit = nil
		attacker.Owner = 0
	}

	if winner, msg, over := g.checkWin(out.Defeated); over {
		g.over = true
		g.winner = winner
		g.winMsg = msg
		out.GameOver = true
		out.Winner = winner
		out.WinMessage = msg
	} else {
		g.turn = otherPlayer(player)
	}
	out.NextPlayer = otherPlayer(player)
	g.selected = 0
	return out, nil
}

// applyMove transfers the attacker's unit onto the target tile. The
// vacated tile keeps its terrain and stays revealed as visibly empty.
func (g *Game) applyMove(from, to *PlacedCard) {
	to.Unit = from.Unit
	to.Owner = from.Owner
	to.Revealed = true
	from.Unit = nil
	from.Owner = 0
}

// ApplyRemoteMove applies a move outcome computed by the other peer.
func (g *Game) ApplyRemoteMove(attackerID, targetID, nextPlayer int) error {
	attacker, ok := g.board.ByID(attackerID)
	if !ok {
		return ErrUnknownCardID
	}
	target, ok := g.board.ByID(targetID)
	if !ok {
		return ErrUnknownCardID
	}
	if attacker.Unit == nil || target.Unit != nil {
		return ErrEmptyTile
	}
	g.applyMove(attacker, target)
	g.turn = nextPlayer
	return nil
}

// ApplyRemoteAttack applies an attack outcome verbatim: no combat
// math is recomputed, so both peers agree even if their local
// derivations could ever diverge.
func (g *Game) ApplyRemoteAttack(attackerID, targetID int, attackerWon bool, defeated DefeatedUnit, nextPlayer int, gameOver bool, winner int, winMsg string) error {
	attacker, ok := g.board.ByID(attackerID)
	if !ok {
		return ErrUnknownCardID
	}
	target, ok := g.board.ByID(targetID)
	if !ok {
		return ErrUnknownCardID
	}
	if attacker.Unit == nil || target.Unit == nil {
		return ErrEmptyTile
	}
	attacker.Revealed = true
	target.Revealed = true
	g.defeated = append(g.defeated, defeated)
	if attackerWon {
		g.applyMove(attacker, target)
	} else {
		attacker.Unit = nil
		attacker.Owner = 0
	}
	if gameOver {
		g.over = true
		g.winner = winner
		g.winMsg = winMsg
	} else {
		g.turn = nextPlayer
	}
	return nil
}
