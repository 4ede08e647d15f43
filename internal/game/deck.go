package game

import "math/rand"

// Pool is one player's consumable supply of unit/terrain pairs,
// already shuffled. Entry i of each list forms the i-th pair placed.
type Pool struct {
	Units    []UnitInstance `json:"units"`
	Terrains []TerrainCard  `json:"terrains"`
}

// GeneratePool builds the fixed 8-unit multiset and the 8 terrain
// layouts and shuffles each independently. Only the setup-issuing
// peer calls this; the other side adopts the transmitted pools
// verbatim so both boards stay identical.
func GeneratePool(rng *rand.Rand) Pool {
	units := make([]UnitInstance, 0, UnitsPerPlayer)
	for _, kind := range kindOrder {
		for n := 1; n <= unitSpecs[kind].count; n++ {
			units = append(units, NewUnit(kind, n))
		}
	}
	rng.Shuffle(len(units), func(i, j int) {
		units[i], units[j] = units[j], units[i]
	})

	terrains := TerrainLayouts()
	rng.Shuffle(len(terrains), func(i, j int) {
		terrains[i], terrains[j] = terrains[j], terrains[i]
	})

	return Pool{Units: units, Terrains: terrains}
}

// Remaining reports how many pairs are left to place.
func (p *Pool) Remaining() int { return len(p.Units) }

// Contains reports whether the pair is still available.
func (p *Pool) Contains(unit UnitInstance, terrain TerrainCard) bool {
	return indexOfUnit(p.Units, unit) >= 0 && indexOfTerrain(p.Terrains, terrain) >= 0
}

// Consume removes the pair from the pool.
func (p *Pool) Consume(unit UnitInstance, terrain TerrainCard) error {
	ui := indexOfUnit(p.Units, unit)
	ti := indexOfTerrain(p.Terrains, terrain)
	if ui < 0 || ti < 0 {
		return ErrNotInPool
	}
	p.Units = append(p.Units[:ui], p.Units[ui+1:]...)
	p.Terrains = append(p.Terrains[:ti], p.Terrains[ti+1:]...)
	return nil
}

// Next peeks at the head pair without consuming it.
func (p *Pool) Next() (UnitInstance, TerrainCard, bool) {
	if len(p.Units) == 0 || len(p.Terrains) == 0 {
		return UnitInstance{}, TerrainCard{}, false
	}
	return p.Units[0], p.Terrains[0], true
}

func indexOfUnit(units []UnitInstance, u UnitInstance) int {
	for i, v := range units {
		if v == u {
			return i
		}
	}
	return -1
}

func indexOfTerrain(terrains []TerrainCard, t TerrainCard) int {
	for i, v := range terrains {
		if v == t {
			return i
		}
	}
	return -1
}
