package encoding

import (
	"sort"

	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/building"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/gamemap"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/unit"
)

type placedUnit struct {
	Position gamemap.Vector `json:"v"`
	Unit     unit.Plain     `json:"u"`
}

type placedBuilding struct {
	Position gamemap.Vector `json:"v"`
	Building building.Plain `json:"b"`
}

type snapshot struct {
	Units     []placedUnit     `json:"units"`
	Buildings []placedBuilding `json:"buildings"`
}

// StateHash hashes the persisted shape of every entity on the map. Input
// order does not matter as long as positions are unique; Map.Units and
// Map.Buildings already return them sorted.
func StateHash(units []gamemap.Placed[unit.Unit], buildings []gamemap.Placed[building.Building]) (string, error) {
	s := snapshot{
		Units:     make([]placedUnit, 0, len(units)),
		Buildings: make([]placedBuilding, 0, len(buildings)),
	}
	for _, p := range sortPlaced(units) {
		s.Units = append(s.Units, placedUnit{Position: p.Position, Unit: p.Value.ToPlain()})
	}
	for _, p := range sortPlaced(buildings) {
		s.Buildings = append(s.Buildings, placedBuilding{Position: p.Position, Building: p.Value.ToPlain()})
	}
	return ContentHash(s)
}

// MapHash is StateHash over the entities of m.
func MapHash(m *gamemap.Map) (string, error) {
	return StateHash(m.Units(), m.Buildings())
}

func sortPlaced[T any](placed []gamemap.Placed[T]) []gamemap.Placed[T] {
	out := append([]gamemap.Placed[T](nil), placed...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position.Less(out[j].Position) })
	return out
}
