// Package protocol defines the closed message vocabulary two peers
// exchange over the reliable-ordered channel. Every message is a
// tagged envelope; receivers handle the union exhaustively and treat
// unknown variants as a desync rather than ignoring them.
package protocol

import (
	"encoding/json"
	"fmt"

	"tilefront/internal/game"
)

type Kind string

const (
	KindSetup        Kind = "setup"
	KindPlacement    Kind = "placement"
	KindReveal       Kind = "reveal"
	KindMove         Kind = "move"
	KindAttackResult Kind = "attackResult"
	KindDisplayName  Kind = "displayName"
)

type envelope struct {
	Type Kind            `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Message is one wire payload. Kind identifies the envelope tag.
type Message interface {
	Kind() Kind
}

// Setup is sent exactly once, by the initiator, right after the
// channel opens. It carries the receiver's shuffled pools; the
// receiver adopts them verbatim instead of rolling its own, which is
// what keeps the two boards convergent.
type Setup struct {
	Units         []game.UnitInstance `json:"units"`
	Terrains      []game.TerrainCard  `json:"terrains"`
	InitiatorName string              `json:"initiatorName,omitempty"`
}

func (Setup) Kind() Kind { return KindSetup }

// Placement is one placement outcome. CardID was assigned by the
// originating peer and must not be regenerated.
type Placement struct {
	Owner      int               `json:"owner"`
	Unit       game.UnitInstance `json:"unit"`
	Terrain    game.TerrainCard  `json:"terrain"`
	X          int               `json:"x"`
	Y          int               `json:"y"`
	CardID     int               `json:"cardId"`
	NextPlayer int               `json:"nextPlayer"`
}

func (Placement) Kind() Kind { return KindPlacement }

// Reveal marks a hidden unit as publicly known, either on selection
// or when attacked. Never retracted.
type Reveal struct {
	CardID int `json:"cardId"`
}

func (Reveal) Kind() Kind { return KindReveal }

// Move is one uncontested movement outcome.
type Move struct {
	AttackerID int `json:"attackerId"`
	TargetID   int `json:"targetId"`
	NextPlayer int `json:"nextPlayer"`
}

func (Move) Kind() Kind { return KindMove }

// AttackResult is the resolved outcome of an attack, not the raw
// action: the receiver applies it without recomputing combat math.
type AttackResult struct {
	AttackerID  int               `json:"attackerId"`
	TargetID    int               `json:"targetId"`
	AttackerWon bool              `json:"attackerWon"`
	Defeated    game.DefeatedUnit `json:"defeated"`
	NextPlayer  int               `json:"nextPlayer"`
	GameOver    bool              `json:"gameOver"`
	Winner      int               `json:"winner,omitempty"`
	WinMessage  string            `json:"winMessage,omitempty"`
}

func (AttackResult) Kind() Kind { return KindAttackResult }

// DisplayName is cosmetic only; it has no effect on the rules.
type DisplayName struct {
	Name string `json:"name"`
}

func (DisplayName) Kind() Kind { return KindDisplayName }

// Encode wraps a message in its tagged envelope.
func Encode(m Message) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Type: m.Kind(), Data: data})
}

// Decode parses an envelope into its concrete message. An unknown
// tag is an error: silently dropping it would hide a desync.
func Decode(raw []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("malformed envelope: %w", err)
	}
	var (
		msg Message
		err error
	)
	switch env.Type {
	case KindSetup:
		var m Setup
		err = json.Unmarshal(env.Data, &m)
		msg = m
	case KindPlacement:
		var m Placement
		err = json.Unmarshal(env.Data, &m)
		msg = m
	case KindReveal:
		var m Reveal
		err = json.Unmarshal(env.Data, &m)
		msg = m
	case KindMove:
		var m Move
		err = json.Unmarshal(env.Data, &m)
		msg = m
	case KindAttackResult:
		var m AttackResult
		err = json.Unmarshal(env.Data, &m)
		msg = m
	case KindDisplayName:
		var m DisplayName
		err = json.Unmarshal(env.Data, &m)
		msg = m
	default:
		return nil, fmt.Errorf("unknown message type %q", env.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("malformed %s payload: %w", env.Type, err)
	}
	return msg, nil
}
