package game

// EdgeType classifies one side of a terrain card. The edge facing an
// incoming unit decides whether the move is possible and whether the
// defender gets a terrain bonus.
type EdgeType byte

const (
	Plains   EdgeType = 0 // open ground, passable by everything
	Forest   EdgeType = 1 // infantry-only, +1 defense when attacked through it
	Mountain EdgeType = 2 // infantry-only, no bonus
)

func (e EdgeType) String() string {
	switch e {
	case Plains:
		return "plains"
	case Forest:
		return "forest"
	case Mountain:
		return "mountain"
	}
	return "unknown"
}

type UnitKind byte

const (
	MobileCommand UnitKind = 0
	Tank          UnitKind = 1
	Infantry      UnitKind = 2
	Artillery     UnitKind = 3
	SpecialOps    UnitKind = 4
)

func (k UnitKind) String() string {
	switch k {
	case MobileCommand:
		return "mobile-command"
	case Tank:
		return "tank"
	case Infantry:
		return "infantry"
	case Artillery:
		return "artillery"
	case SpecialOps:
		return "special-ops"
	}
	return "unknown"
}

// UnitInstance is one concrete unit in a player's army. Num makes it
// unique among units of the same kind for one owner. Instances are
// created once at game start and never recreated.
type UnitInstance struct {
	Kind    UnitKind `json:"kind"`
	Num     int      `json:"num"`
	Attack  int      `json:"attack"`
	Defense int      `json:"defense"`
}

type unitSpec struct {
	attack  int
	defense int
	count   int
	allTerr bool // may cross Forest and Mountain edges
}

// kindOrder fixes the catalog iteration order for pool generation.
var kindOrder = []UnitKind{MobileCommand, Tank, Infantry, Artillery, SpecialOps}

var unitSpecs = map[UnitKind]unitSpec{
	MobileCommand: {attack: 1, defense: 1, count: 1},
	Tank:          {attack: 4, defense: 4, count: 2},
	Infantry:      {attack: 3, defense: 3, count: 3, allTerr: true},
	Artillery:     {attack: 5, defense: 2, count: 1},
	SpecialOps:    {attack: 4, defense: 2, count: 1, allTerr: true},
}

// UnitsPerPlayer is the fixed army size each side places.
const UnitsPerPlayer = 8

// NewUnit builds the catalog instance for a kind with a 1-based
// instance number.
func NewUnit(kind UnitKind, num int) UnitInstance {
	spec := unitSpecs[kind]
	return UnitInstance{Kind: kind, Num: num, Attack: spec.attack, Defense: spec.defense}
}

// CanTraverse reports whether a unit of the given kind may enter a
// tile through an edge of the given type.
func CanTraverse(kind UnitKind, edge EdgeType) bool {
	if edge == Plains {
		return true
	}
	return unitSpecs[kind].allTerr
}

// DefenseBonus is the extra defense a unit gets when attacked through
// an edge of the given type.
func DefenseBonus(edge EdgeType) int {
	if edge == Forest {
		return 1
	}
	return 0
}

// TerrainCard is one terrain tile: four independently typed edges.
// Terrain never moves or changes once placed.
type TerrainCard struct {
	Top    EdgeType `json:"top"`
	Right  EdgeType `json:"right"`
	Bottom EdgeType `json:"bottom"`
	Left   EdgeType `json:"left"`
}

// terrainLayouts are the 8 fixed layouts both players draw from.
// Every layout keeps at least one Plains edge so no tile is ever
// sealed off from Plains-only units on all sides.
var terrainLayouts = [UnitsPerPlayer]TerrainCard{
	{Top: Plains, Right: Plains, Bottom: Plains, Left: Plains},
	{Top: Plains, Right: Forest, Bottom: Plains, Left: Forest},
	{Top: Forest, Right: Plains, Bottom: Forest, Left: Plains},
	{Top: Plains, Right: Plains, Bottom: Forest, Left: Mountain},
	{Top: Mountain, Right: Plains, Bottom: Plains, Left: Forest},
	{Top: Forest, Right: Mountain, Bottom: Plains, Left: Plains},
	{Top: Plains, Right: Forest, Bottom: Mountain, Left: Plains},
	{Top: Mountain, Right: Plains, Bottom: Forest, Left: Mountain},
}

// TerrainLayouts returns a copy of the fixed layout set.
func TerrainLayouts() []TerrainCard {
	out := make([]TerrainCard, len(terrainLayouts))
	copy(out, terrainLayouts[:])
	return out
}
