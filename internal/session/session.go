// Package session owns one peer's copy of the game: phase, turn
// ownership, the replicated board, and the rule that local actions
// are validated and computed here while inbound messages carry
// already-computed outcomes to apply verbatim.
package session

import (
	"fmt"
	"math/rand"
	"time"

	"tilefront/internal/config"
	"tilefront/internal/game"
	"tilefront/internal/protocol"
	"tilefront/internal/transport"
)

// Phase advances monotonically; no phase ever reverts. Disconnected
// is terminal from anywhere.
type Phase int

const (
	PhaseConnecting Phase = iota
	PhasePlacement
	PhaseGameplay
	PhaseGameOver
	PhaseDisconnected
)

func (p Phase) String() string {
	switch p {
	case PhaseConnecting:
		return "connecting"
	case PhasePlacement:
		return "placement"
	case PhaseGameplay:
		return "gameplay"
	case PhaseGameOver:
		return "gameover"
	case PhaseDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// Role is fixed at connection time. The initiator generates both
// pools, transmits setup, and owns placement turn one.
type Role int

const (
	RoleInitiator Role = iota
	RoleResponder
)

// ProtocolError means the two peers can no longer agree on the board.
// There is no resync mechanism; the session is dead.
type ProtocolError struct {
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("game state out of sync: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("game state out of sync: %s", e.Reason)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// Session is one peer's game. Not safe for concurrent use: callers
// must feed it one inbound frame or one local action at a time, which
// is the model the protocol assumes anyway.
type Session struct {
	role        Role
	localPlayer int
	localName   string
	remoteName  string

	tr  transport.Transport
	rng *rand.Rand

	phase     Phase
	board     *game.Board
	placement *game.Placement
	play      *game.Game

	fatal error
}

func New(role Role, tr transport.Transport, localName string) *Session {
	localPlayer := 1
	if role == RoleResponder {
		localPlayer = 2
	}
	return &Session{
		role:        role,
		localPlayer: localPlayer,
		localName:   localName,
		tr:          tr,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		phase:       PhaseConnecting,
		board:       game.NewBoard(),
	}
}

// SeedRNG replaces the pool-generation source, for deterministic
// setups.
func (s *Session) SeedRNG(seed int64) { s.rng = rand.New(rand.NewSource(seed)) }

func (s *Session) Role() Role        { return s.role }
func (s *Session) LocalPlayer() int  { return s.localPlayer }
func (s *Session) Phase() Phase      { return s.phase }
func (s *Session) Fatal() error      { return s.fatal }
func (s *Session) Board() *game.Board { return s.board }

// Start begins the game once the channel is up. The initiator
// generates both players' shuffled pools and transmits the
// responder's; the responder only announces its name and waits for
// setup. Pool generation happens exactly here and never again — the
// receiving side must not re-derive it or the boards diverge
// immediately.
func (s *Session) Start() error {
	if s.phase != PhaseConnecting {
		return game.ErrWrongPhase
	}
	if err := s.send(protocol.DisplayName{Name: s.localName}); err != nil {
		return err
	}
	if s.role != RoleInitiator {
		return nil
	}
	localPool := game.GeneratePool(s.rng)
	remotePool := game.GeneratePool(s.rng)
	s.placement = game.NewPlacement(s.board, s.localPlayer, localPool)
	if err := s.send(protocol.Setup{
		Units:         remotePool.Units,
		Terrains:      remotePool.Terrains,
		InitiatorName: s.localName,
	}); err != nil {
		return err
	}
	s.phase = PhasePlacement
	return nil
}

// PlacementTurn reports whose placement turn it is.
func (s *Session) PlacementTurn() int {
	if s.placement == nil {
		return 0
	}
	return s.placement.Turn()
}

// LegalSpots is the current placement frontier.
func (s *Session) LegalSpots() []game.Coord {
	if s.placement == nil {
		return nil
	}
	return s.placement.LegalSpots()
}

// PlaceNext places the local player's next shuffled pair at pos and
// transmits the outcome.
func (s *Session) PlaceNext(pos game.Coord) (*game.PlacedCard, error) {
	if err := s.usable(PhasePlacement); err != nil {
		return nil, err
	}
	card, err := s.placement.PlaceNext(pos)
	if err != nil {
		return nil, err
	}
	return card, s.afterLocalPlacement(card)
}

// Place places a specific pair from the local pool at pos and
// transmits the outcome.
func (s *Session) Place(unit game.UnitInstance, terrain game.TerrainCard, pos game.Coord) (*game.PlacedCard, error) {
	if err := s.usable(PhasePlacement); err != nil {
		return nil, err
	}
	card, err := s.placement.Place(s.localPlayer, unit, terrain, pos)
	if err != nil {
		return nil, err
	}
	return card, s.afterLocalPlacement(card)
}

// AutoPlaceTurn places the next pair on a uniformly random frontier
// spot. Instant-setup helper for front-ends and the CPU player.
func (s *Session) AutoPlaceTurn() (*game.PlacedCard, error) {
	if err := s.usable(PhasePlacement); err != nil {
		return nil, err
	}
	spots := s.placement.LegalSpots()
	if len(spots) == 0 {
		return nil, s.die("empty placement frontier", game.ErrEmptyFrontier)
	}
	return s.PlaceNext(spots[s.rng.Intn(len(spots))])
}

func (s *Session) afterLocalPlacement(card *game.PlacedCard) error {
	err := s.send(protocol.Placement{
		Owner:      card.Owner,
		Unit:       *card.Unit,
		Terrain:    card.Terrain,
		X:          card.Pos.X,
		Y:          card.Pos.Y,
		CardID:     card.ID,
		NextPlayer: s.placement.Turn(),
	})
	if err != nil {
		return err
	}
	s.maybeEnterGameplay()
	return nil
}

func (s *Session) maybeEnterGameplay() {
	if s.placement != nil && s.placement.Done() && s.phase == PhasePlacement {
		s.phase = PhaseGameplay
		s.play = game.NewGame(s.board)
	}
}

// Turn reports whose gameplay turn it is.
func (s *Session) Turn() int {
	if s.play == nil {
		return 0
	}
	return s.play.Turn()
}

// Selected reports the locally selected card id, 0 if none.
func (s *Session) Selected() int {
	if s.play == nil {
		return 0
	}
	return s.play.Selected()
}

// SelectUnit selects one of the local player's units. A reveal, if
// one happens, is transmitted immediately and never retracted even if
// the unit is deselected afterwards.
func (s *Session) SelectUnit(cardID int) error {
	if err := s.usable(PhaseGameplay); err != nil {
		return err
	}
	revealed, err := s.play.SelectUnit(s.localPlayer, cardID)
	if err != nil {
		return err
	}
	if revealed {
		return s.send(protocol.Reveal{CardID: cardID})
	}
	return nil
}

// Deselect clears the local selection. No message is sent: the peer
// never learned of the selection, only of any reveal.
func (s *Session) Deselect() {
	if s.play != nil {
		s.play.Deselect()
	}
}

// ResolveTarget resolves the selected unit against the target tile
// and transmits the computed outcome.
func (s *Session) ResolveTarget(targetID int) (*game.Outcome, error) {
	if err := s.usable(PhaseGameplay); err != nil {
		return nil, err
	}
	out, err := s.play.ResolveTarget(s.localPlayer, targetID)
	if err != nil {
		return nil, err
	}
	if out.Kind == game.OutcomeMove {
		if err := s.send(protocol.Move{
			AttackerID: out.AttackerID,
			TargetID:   out.TargetID,
			NextPlayer: out.NextPlayer,
		}); err != nil {
			return out, err
		}
		return out, nil
	}
	if out.RevealedDefender {
		if err := s.send(protocol.Reveal{CardID: out.TargetID}); err != nil {
			return out, err
		}
	}
	if err := s.send(protocol.AttackResult{
		AttackerID:  out.AttackerID,
		TargetID:    out.TargetID,
		AttackerWon: out.AttackerWon,
		Defeated:    out.Defeated,
		NextPlayer:  out.NextPlayer,
		GameOver:    out.GameOver,
		Winner:      out.Winner,
		WinMessage:  out.WinMessage,
	}); err != nil {
		return out, err
	}
	if out.GameOver {
		s.phase = PhaseGameOver
	}
	return out, nil
}

// PlayBotTurn picks and plays the best scored action for the local
// player. Used by the CPU opponent in local play.
func (s *Session) PlayBotTurn(w config.BotWeights) (*game.Outcome, error) {
	if err := s.usable(PhaseGameplay); err != nil {
		return nil, err
	}
	action, err := game.FindBestBotAction(s.play, s.localPlayer, w)
	if err != nil {
		return nil, err
	}
	if err := s.SelectUnit(action.SelectID); err != nil {
		return nil, err
	}
	return s.ResolveTarget(action.TargetID)
}

// SetDisplayName updates and transmits the cosmetic display name.
func (s *Session) SetDisplayName(name string) error {
	s.localName = name
	return s.send(protocol.DisplayName{Name: name})
}

func (s *Session) LocalName() string  { return s.localName }
func (s *Session) RemoteName() string { return s.remoteName }

// HandleFrame processes one inbound frame from the transport. Any
// returned *ProtocolError is fatal: the session accepts nothing
// further.
func (s *Session) HandleFrame(frame []byte) error {
	if s.fatal != nil {
		return s.fatal
	}
	if s.phase == PhaseDisconnected {
		return game.ErrWrongPhase
	}
	msg, err := protocol.Decode(frame)
	if err != nil {
		return s.die("undecodable message", err)
	}
	switch m := msg.(type) {
	case protocol.Setup:
		return s.handleSetup(m)
	case protocol.Placement:
		return s.handlePlacement(m)
	case protocol.Reveal:
		return s.handleReveal(m)
	case protocol.Move:
		return s.handleMove(m)
	case protocol.AttackResult:
		return s.handleAttackResult(m)
	case protocol.DisplayName:
		s.remoteName = m.Name
		return nil
	default:
		return s.die(fmt.Sprintf("unhandled message kind %q", msg.Kind()), nil)
	}
}

func (s *Session) handleSetup(m protocol.Setup) error {
	if s.role != RoleResponder {
		return s.die("setup received by initiator", nil)
	}
	if s.phase != PhaseConnecting {
		return s.die("setup received twice", nil)
	}
	if len(m.Units) != game.UnitsPerPlayer || len(m.Terrains) != game.UnitsPerPlayer {
		return s.die("setup pools have wrong size", nil)
	}
	pool := game.Pool{Units: m.Units, Terrains: m.Terrains}
	s.placement = game.NewPlacement(s.board, s.localPlayer, pool)
	if m.InitiatorName != "" {
		s.remoteName = m.InitiatorName
	}
	s.phase = PhasePlacement
	return nil
}

func (s *Session) handlePlacement(m protocol.Placement) error {
	if s.phase != PhasePlacement {
		return s.die("placement outside placement phase", nil)
	}
	pos := game.Coord{X: m.X, Y: m.Y}
	if _, err := s.placement.ApplyRemote(m.Owner, m.Unit, m.Terrain, pos, m.CardID); err != nil {
		return s.die("inapplicable placement", err)
	}
	if m.NextPlayer != s.placement.Turn() {
		return s.die("placement turn mismatch", nil)
	}
	s.maybeEnterGameplay()
	return nil
}

func (s *Session) handleReveal(m protocol.Reveal) error {
	if s.phase != PhaseGameplay {
		return s.die("reveal outside gameplay phase", nil)
	}
	if _, err := s.board.Reveal(m.CardID); err != nil {
		return s.die("reveal of unknown card", err)
	}
	return nil
}

func (s *Session) handleMove(m protocol.Move) error {
	if s.phase != PhaseGameplay {
		return s.die("move outside gameplay phase", nil)
	}
	if err := s.play.ApplyRemoteMove(m.AttackerID, m.TargetID, m.NextPlayer); err != nil {
		return s.die("inapplicable move", err)
	}
	return nil
}

func (s *Session) handleAttackResult(m protocol.AttackResult) error {
	if s.phase != PhaseGameplay {
		return s.die("attack result outside gameplay phase", nil)
	}
	err := s.play.ApplyRemoteAttack(m.AttackerID, m.TargetID, m.AttackerWon,
		m.Defeated, m.NextPlayer, m.GameOver, m.Winner, m.WinMessage)
	if err != nil {
		return s.die("inapplicable attack result", err)
	}
	if m.GameOver {
		s.phase = PhaseGameOver
	}
	return nil
}

// HandleDisconnect moves the session to the terminal Disconnected
// phase. A finished game stays finished.
func (s *Session) HandleDisconnect() {
	if s.phase != PhaseGameOver {
		s.phase = PhaseDisconnected
	}
}

func (s *Session) usable(want Phase) error {
	if s.fatal != nil {
		return s.fatal
	}
	if s.phase != want {
		return game.ErrWrongPhase
	}
	return nil
}

func (s *Session) send(m protocol.Message) error {
	frame, err := protocol.Encode(m)
	if err != nil {
		return err
	}
	return s.tr.Send(frame)
}

func (s *Session) die(reason string, err error) error {
	s.fatal = &ProtocolError{Reason: reason, Err: err}
	return s.fatal
}
