package session

import "tilefront/internal/game"

// UnitView is the revealed-or-owned summary of a tile's unit.
type UnitView struct {
	Kind    game.UnitKind `json:"kind"`
	Num     int           `json:"num"`
	Attack  int           `json:"attack"`
	Defense int           `json:"defense"`
}

// TileView is one board tile as the local observer may see it. Unit
// is nil unless the tile is revealed or owned by the observer;
// Occupied still tells the renderer whether something hidden sits
// there.
type TileView struct {
	ID       int              `json:"id"`
	Owner    int              `json:"owner"`
	X        int              `json:"x"`
	Y        int              `json:"y"`
	Revealed bool             `json:"revealed"`
	Occupied bool             `json:"occupied"`
	Terrain  game.TerrainCard `json:"terrain"`
	Unit     *UnitView        `json:"unit,omitempty"`
}

// Snapshot is the full read-only view handed to a rendering layer
// after every mutation. The remaining pool is the observer's own;
// the opponent's pool contents are never exposed here.
type Snapshot struct {
	Phase             Phase               `json:"phase"`
	Role              Role                `json:"role"`
	LocalPlayer       int                 `json:"localPlayer"`
	LocalName         string              `json:"localName"`
	RemoteName        string              `json:"remoteName"`
	PlacementTurn     int                 `json:"placementTurn,omitempty"`
	Turn              int                 `json:"turn,omitempty"`
	SelectedCardID    int                 `json:"selectedCardId,omitempty"`
	Tiles             []TileView          `json:"tiles"`
	RemainingUnits    []game.UnitInstance `json:"remainingUnits,omitempty"`
	RemainingTerrains []game.TerrainCard  `json:"remainingTerrains,omitempty"`
	Defeated          []game.DefeatedUnit `json:"defeated,omitempty"`
	Winner            int                 `json:"winner,omitempty"`
	WinMessage        string              `json:"winMessage,omitempty"`
}

// Snapshot builds the observer-scoped view of the session. Hidden
// enemy units stay hidden: fog of war is enforced here, not in the
// renderer.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:       s.phase,
		Role:        s.role,
		LocalPlayer: s.localPlayer,
		LocalName:   s.localName,
		RemoteName:  s.remoteName,
	}
	if s.placement != nil && !s.placement.Done() {
		snap.PlacementTurn = s.placement.Turn()
		pool := s.placement.LocalPool()
		snap.RemainingUnits = append([]game.UnitInstance(nil), pool.Units...)
		snap.RemainingTerrains = append([]game.TerrainCard(nil), pool.Terrains...)
	}
	if s.play != nil {
		snap.Turn = s.play.Turn()
		snap.SelectedCardID = s.play.Selected()
		snap.Defeated = append([]game.DefeatedUnit(nil), s.play.Defeated()...)
		snap.Winner = s.play.Winner()
		snap.WinMessage = s.play.WinMessage()
	}
	for _, card := range s.board.Tiles() {
		tile := TileView{
			ID:       card.ID,
			Owner:    card.Owner,
			X:        card.Pos.X,
			Y:        card.Pos.Y,
			Revealed: card.Revealed,
			Occupied: card.Unit != nil,
			Terrain:  card.Terrain,
		}
		if card.Unit != nil && (card.Revealed || card.Owner == s.localPlayer) {
			tile.Unit = &UnitView{
				Kind:    card.Unit.Kind,
				Num:     card.Unit.Num,
				Attack:  card.Unit.Attack,
				Defense: card.Unit.Defense,
			}
		}
		snap.Tiles = append(snap.Tiles, tile)
	}
	return snap
}
