package game

import "errors"

// Validation errors: the attempted action is rejected, nothing is
// mutated and nothing goes on the wire.
var (
	ErrInvalidPlacement = errors.New("illegal placement spot")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrNotYourUnit      = errors.New("tile is not your unit")
	ErrEmptyTile        = errors.New("tile holds no unit")
	ErrNotAdjacent      = errors.New("target is not adjacent")
	ErrTerrainBlocked   = errors.New("unit cannot cross that terrain edge")
	ErrOwnUnitTarget    = errors.New("target holds your own unit")
	ErrWrongPhase       = errors.New("operation not valid in this phase")
	ErrNotInPool        = errors.New("card is not in the remaining pool")
	ErrNoSelection      = errors.New("no unit selected")
)

// Consistency errors: the two boards can no longer agree. Fatal to
// the session.
var (
	ErrUnknownCardID   = errors.New("unknown card id")
	ErrDuplicateCardID = errors.New("duplicate card id")
	ErrEmptyFrontier   = errors.New("placement frontier is empty")
)
