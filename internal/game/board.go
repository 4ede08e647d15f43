package game

import "sort"

// Coord addresses a tile on the unbounded grid. Y grows downward so
// "down" means y+1, matching the placement origin at (0,0).
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Origin is the only legal spot for the very first placement.
var Origin = Coord{X: 0, Y: 0}

type Direction byte

const (
	DirUp    Direction = 0 // y-1
	DirRight Direction = 1 // x+1
	DirDown  Direction = 2 // y+1
	DirLeft  Direction = 3 // x-1
)

var dirSteps = [4]Coord{
	DirUp:    {X: 0, Y: -1},
	DirRight: {X: 1, Y: 0},
	DirDown:  {X: 0, Y: 1},
	DirLeft:  {X: -1, Y: 0},
}

// Neighbors returns the four orthogonal neighbors in DirUp, DirRight,
// DirDown, DirLeft order.
func (c Coord) Neighbors() [4]Coord {
	var out [4]Coord
	for d, step := range dirSteps {
		out[d] = Coord{X: c.X + step.X, Y: c.Y + step.Y}
	}
	return out
}

// DirectionBetween returns the orthogonal direction from one coord to
// an adjacent coord. ok is false unless the coords are exactly one
// grid step apart on one axis.
func DirectionBetween(from, to Coord) (Direction, bool) {
	dx, dy := to.X-from.X, to.Y-from.Y
	switch {
	case dx == 0 && dy == -1:
		return DirUp, true
	case dx == 1 && dy == 0:
		return DirRight, true
	case dx == 0 && dy == 1:
		return DirDown, true
	case dx == -1 && dy == 0:
		return DirLeft, true
	}
	return 0, false
}

// EntryEdge returns which of the target's edges faces an attacker
// moving in direction d: moving right crosses the target's left edge,
// moving down its top edge, and so on.
func (t TerrainCard) EntryEdge(d Direction) EdgeType {
	switch d {
	case DirUp:
		return t.Bottom
	case DirRight:
		return t.Left
	case DirDown:
		return t.Top
	default:
		return t.Right
	}
}

// PlacedCard is a terrain card on the board, optionally carrying a
// unit. Unit is nil once the unit has vacated or been defeated; the
// terrain stays forever. Revealed never reverts to false.
type PlacedCard struct {
	ID       int           `json:"id"`
	Owner    int           `json:"owner"` // owner of the unit; 0 once vacated
	Pos      Coord         `json:"pos"`
	Unit     *UnitInstance `json:"unit,omitempty"`
	Terrain  TerrainCard   `json:"terrain"`
	Revealed bool          `json:"revealed"`
}

// Board is one peer's copy of the shared grid. Peers converge only
// through the message stream; there is no shared memory.
type Board struct {
	tiles map[Coord]*PlacedCard
	byID  map[int]*PlacedCard
}

func NewBoard() *Board {
	return &Board{
		tiles: make(map[Coord]*PlacedCard),
		byID:  make(map[int]*PlacedCard),
	}
}

func (b *Board) At(pos Coord) (*PlacedCard, bool) {
	c, ok := b.tiles[pos]
	return c, ok
}

func (b *Board) ByID(id int) (*PlacedCard, bool) {
	c, ok := b.byID[id]
	return c, ok
}

func (b *Board) Size() int { return len(b.tiles) }

// Add puts a card on the board. The spot must be unoccupied, the id
// unused, and — except for the first card — orthogonally adjacent to
// at least one placed card.
func (b *Board) Add(card *PlacedCard) error {
	if _, ok := b.tiles[card.Pos]; ok {
		return ErrInvalidPlacement
	}
	if _, ok := b.byID[card.ID]; ok {
		return ErrDuplicateCardID
	}
	if len(b.tiles) == 0 {
		if card.Pos != Origin {
			return ErrInvalidPlacement
		}
	} else if !b.hasNeighbor(card.Pos) {
		return ErrInvalidPlacement
	}
	b.tiles[card.Pos] = card
	b.byID[card.ID] = card
	return nil
}

func (b *Board) hasNeighbor(pos Coord) bool {
	for _, n := range pos.Neighbors() {
		if _, ok := b.tiles[n]; ok {
			return true
		}
	}
	return false
}

// Frontier is the set of legal placement spots: the unoccupied
// orthogonal neighbors of occupied tiles, or just the origin when the
// board is empty. Sorted for deterministic iteration.
func (b *Board) Frontier() []Coord {
	if len(b.tiles) == 0 {
		return []Coord{Origin}
	}
	seen := make(map[Coord]struct{})
	for pos := range b.tiles {
		for _, n := range pos.Neighbors() {
			if _, occupied := b.tiles[n]; occupied {
				continue
			}
			seen[n] = struct{}{}
		}
	}
	out := make([]Coord, 0, len(seen))
	for pos := range seen {
		out = append(out, pos)
	}
	sortCoords(out)
	return out
}

// Tiles returns every placed card ordered by id.
func (b *Board) Tiles() []*PlacedCard {
	out := make([]*PlacedCard, 0, len(b.byID))
	for _, c := range b.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Reveal marks a card's unit as publicly known. One-way: there is no
// way to hide a card again.
func (b *Board) Reveal(id int) (*PlacedCard, error) {
	c, ok := b.byID[id]
	if !ok {
		return nil, ErrUnknownCardID
	}
	c.Revealed = true
	return c, nil
}

func sortCoords(cs []Coord) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Y != cs[j].Y {
			return cs[i].Y < cs[j].Y
		}
		return cs[i].X < cs[j].X
	})
}
