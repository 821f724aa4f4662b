package skill

import (
	"sort"

	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
)

// UnlockedUnits returns the units made buildable by the skill sets, in id
// order.
func UnlockedUnits(skills, active Set) []catalog.UnitID {
	seen := map[catalog.UnitID]bool{}
	for kind, set := range [2]Set{Regular: skills, Power: active} {
		for _, s := range set.skills {
			for _, id := range unitUnlocks[kind][s] {
				seen[id] = true
			}
		}
	}
	out := make([]catalog.UnitID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CanBuildUnit reports whether the player may buy info: it must be buildable
// by default or unlocked, and not blocked by any skill.
func CanBuildUnit(info *catalog.UnitInfo, skills, active Set) bool {
	if blocked(info.ID, skills.Union(active)) {
		return false
	}
	if info.Buildable {
		return true
	}
	for _, id := range UnlockedUnits(skills, active) {
		if id == info.ID {
			return true
		}
	}
	return false
}

// UnlockedBuildings returns the buildings made buildable by skills.
func UnlockedBuildings(skills Set) []catalog.BuildingID {
	seen := map[catalog.BuildingID]bool{}
	for _, s := range skills.skills {
		for _, id := range buildingUnlocks[s] {
			seen[id] = true
		}
	}
	out := make([]catalog.BuildingID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CanBuildBuilding reports whether the player may construct info.
func CanBuildBuilding(info *catalog.BuildingInfo, skills Set) bool {
	if info.HQ || info.IsStructure() {
		return false
	}
	if info.Buildable {
		return true
	}
	for _, id := range UnlockedBuildings(skills) {
		if id == info.ID {
			return true
		}
	}
	return false
}
