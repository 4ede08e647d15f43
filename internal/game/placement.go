package game

import "math/rand"

// TotalPlacements is how many pair placements end the placement
// phase: both armies in full.
const TotalPlacements = 2 * UnitsPerPlayer

// Placement drives the alternating setup phase for one peer. Only the
// local player's pool is tracked; the opponent's placements arrive as
// outcomes over the wire and are applied verbatim.
type Placement struct {
	board       *Board
	localPlayer int
	pool        *Pool
	turn        int
	placed      int
	nextID      int
}

func NewPlacement(board *Board, localPlayer int, pool Pool) *Placement {
	return &Placement{
		board:       board,
		localPlayer: localPlayer,
		pool:        &pool,
		turn:        1, // player 1 always places first
		placed:      0,
		nextID:      1,
	}
}

func (p *Placement) Turn() int         { return p.turn }
func (p *Placement) Placed() int       { return p.placed }
func (p *Placement) Done() bool        { return p.placed >= TotalPlacements }
func (p *Placement) LocalPool() *Pool  { return p.pool }
func (p *Placement) LegalSpots() []Coord { return p.board.Frontier() }

// Place validates and applies a placement by the local player. The
// card id is assigned here (placement order, 1-based) and must travel
// with the outcome so the peer does not regenerate it.
func (p *Placement) Place(player int, unit UnitInstance, terrain TerrainCard, pos Coord) (*PlacedCard, error) {
	if player != p.localPlayer {
		return nil, ErrNotYourUnit
	}
	if player != p.turn {
		return nil, ErrNotYourTurn
	}
	if !p.legalSpot(pos) {
		return nil, ErrInvalidPlacement
	}
	if !p.pool.Contains(unit, terrain) {
		return nil, ErrNotInPool
	}
	card := &PlacedCard{
		ID:      p.nextID,
		Owner:   player,
		Pos:     pos,
		Unit:    &unit,
		Terrain: terrain,
	}
	if err := p.board.Add(card); err != nil {
		return nil, err
	}
	// Board accepted the card; consuming the pool cannot fail now.
	_ = p.pool.Consume(unit, terrain)
	p.nextID++
	p.advance()
	return card, nil
}

// PlaceNext places the local player's next shuffled pair at pos.
func (p *Placement) PlaceNext(pos Coord) (*PlacedCard, error) {
	unit, terrain, ok := p.pool.Next()
	if !ok {
		return nil, ErrNotInPool
	}
	return p.Place(p.localPlayer, unit, terrain, pos)
}

// ApplyRemote applies a placement computed by the other peer. The
// card id comes from the wire. A spot that is not on the frontier or
// an owner out of turn means the boards have diverged, which the
// caller must treat as fatal.
func (p *Placement) ApplyRemote(owner int, unit UnitInstance, terrain TerrainCard, pos Coord, id int) (*PlacedCard, error) {
	if owner == p.localPlayer || owner != p.turn {
		return nil, ErrNotYourTurn
	}
	if !p.legalSpot(pos) {
		return nil, ErrInvalidPlacement
	}
	card := &PlacedCard{
		ID:      id,
		Owner:   owner,
		Pos:     pos,
		Unit:    &unit,
		Terrain: terrain,
	}
	if err := p.board.Add(card); err != nil {
		return nil, err
	}
	if id >= p.nextID {
		p.nextID = id + 1
	}
	p.advance()
	return card, nil
}

func (p *Placement) legalSpot(pos Coord) bool {
	for _, s := range p.board.Frontier() {
		if s == pos {
			return true
		}
	}
	return false
}

func (p *Placement) advance() {
	p.placed++
	p.turn = otherPlayer(p.turn)
}

// AutoStep is one simulated placement produced by AutoPlace.
type AutoStep struct {
	Player  int
	Unit    UnitInstance
	Terrain TerrainCard
	Pos     Coord
	CardID  int
}

// AutoPlace simulates all 16 alternating placements from both full
// pools, picking a frontier spot uniformly at random each turn. An
// empty frontier cannot happen with correct adjacency bookkeeping, so
// it is reported as a fatal consistency error rather than skipped.
func AutoPlace(p1, p2 Pool, rng *rand.Rand) ([]AutoStep, error) {
	board := NewBoard()
	pools := map[int]*Pool{1: &p1, 2: &p2}
	steps := make([]AutoStep, 0, TotalPlacements)
	turn := 1
	for i := 0; i < TotalPlacements; i++ {
		frontier := board.Frontier()
		if len(frontier) == 0 {
			return nil, ErrEmptyFrontier
		}
		pos := frontier[rng.Intn(len(frontier))]
		pool := pools[turn]
		unit, terrain, ok := pool.Next()
		if !ok {
			return nil, ErrNotInPool
		}
		_ = pool.Consume(unit, terrain)
		id := i + 1
		if err := board.Add(&PlacedCard{ID: id, Owner: turn, Pos: pos, Unit: &unit, Terrain: terrain}); err != nil {
			return nil, err
		}
		steps = append(steps, AutoStep{Player: turn, Unit: unit, Terrain: terrain, Pos: pos, CardID: id})
		turn = otherPlayer(turn)
	}
	return steps, nil
}

func otherPlayer(p int) int {
	if p == 1 {
		return 2
	}
	return 1
}
