package skill

import (
	"math"

	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
)

// AttackEffect sums the attack bonus of the unlocked set and, independently,
// of the active set for subject.
func AttackEffect(skills, active Set, subject Subject) Percent {
	return attackTables[Regular].sum(skills, subject) + attackTables[Power].sum(active, subject)
}

// DefenseEffect sums the defense bonus of the unlocked and active sets.
func DefenseEffect(skills, active Set, subject Subject) Percent {
	return defenseTables[Regular].sum(skills, subject) + defenseTables[Power].sum(active, subject)
}

// UnitCostModifier sums the unit cost percentage of both sets.
func UnitCostModifier(skills, active Set) Percent {
	return sumFlat(costModifiers[Regular], skills) + sumFlat(costModifiers[Power], active)
}

// CounterAttackEffect sums the counter attack damage bonus.
func CounterAttackEffect(skills, active Set) Percent {
	return sumFlat(counterAttackModifiers[Regular], skills) + sumFlat(counterAttackModifiers[Power], active)
}

// PoisonEffect sums the bonus applied to damage against poisoned units.
func PoisonEffect(skills, active Set) Percent {
	return sumFlat(poisonModifiers[Regular], skills) + sumFlat(poisonModifiers[Power], active)
}

func sumFlat(table map[Skill]Percent, set Set) Percent {
	switch len(set.skills) {
	case 0:
		return 0
	case 1:
		return table[set.skills[0]]
	}
	var total Percent
	for _, s := range set.skills {
		total += table[s]
	}
	return total
}

// UnitCost resolves the price of info for a player. A blocking skill makes
// the unit unbuildable at +Inf. Otherwise the cheapest override (or the
// catalog cost) is scaled by the cost modifier, rounded to four decimals and
// then rounded up.
func UnitCost(info *catalog.UnitInfo, skills, active Set) float64 {
	if skills.Len() == 0 && active.Len() == 0 {
		return float64(info.Cost)
	}
	all := skills.Union(active)
	if blocked(info.ID, all) {
		return math.Inf(1)
	}
	base, found := 0, false
	for _, s := range all.skills {
		if cost, ok := unitCostOverrides[s][info.ID]; ok && (!found || cost < base) {
			base, found = cost, true
		}
	}
	if !found {
		base = info.Cost
	}
	value := float64(base) * Multiplier(UnitCostModifier(skills, active))
	return math.Ceil(math.Round(value*10000) / 10000)
}

func blocked(unit catalog.UnitID, set Set) bool {
	for _, s := range set.skills {
		for _, id := range unitBlocks[s] {
			if id == unit {
				return true
			}
		}
	}
	return false
}

// BuildingCost resolves the price of a building: HQs always cost their
// catalog price, a zombie outbreak makes shelters free, and otherwise the
// cheapest override wins over the catalog price.
func BuildingCost(info *catalog.BuildingInfo, skills Set) float64 {
	if info.HQ {
		return float64(info.Cost)
	}
	if info.ID == catalog.Shelter && skills.Has(BuyUnitZombieDefenseDecreaseMajor) {
		return 0
	}
	if skills.Len() == 0 {
		return float64(info.Cost)
	}
	base, found := 0, false
	for _, s := range skills.skills {
		if cost, ok := buildingCostOverrides[s][info.ID]; ok && (!found || cost < base) {
			base, found = cost, true
		}
	}
	if !found {
		return float64(info.Cost)
	}
	return float64(base)
}

// UnitRange resolves the attack range. Power overrides are checked before
// regular ones and the first match in code order wins; without an override
// the catalog range applies. ok is false for units without a ranged attack.
func UnitRange(info *catalog.UnitInfo, skills, active Set) (catalog.Range, bool) {
	for _, s := range active.skills {
		if r, ok := rangeOverrides[Power][s][info.ID]; ok {
			return r, true
		}
	}
	for _, s := range skills.skills {
		if r, ok := rangeOverrides[Regular][s][info.ID]; ok {
			return r, true
		}
	}
	return info.DefaultRange()
}

// UnitRadius resolves the movement radius. Bonuses of matching power skills
// are summed; the regular table is only consulted when no power skill
// matches.
func UnitRadius(info *catalog.UnitInfo, skills, active Set) int {
	if bonus, ok := radiusSum(radiusBonuses[Power], active, info); ok {
		return max(0, info.Radius+bonus)
	}
	if bonus, ok := radiusSum(radiusBonuses[Regular], skills, info); ok {
		return max(0, info.Radius+bonus)
	}
	return info.Radius
}

func radiusSum(table map[Skill]RadiusBonus, set Set, info *catalog.UnitInfo) (int, bool) {
	total, matched := 0, false
	for _, s := range set.skills {
		if v, ok := table[s].value(info); ok {
			total += v
			matched = true
		}
	}
	return total, matched
}

// HasAbility reports whether info has ability, either from the catalog or
// granted by a skill.
func HasAbility(info *catalog.UnitInfo, ability catalog.Ability, skills, active Set) bool {
	if info.HasAbility(ability) {
		return true
	}
	for kind, set := range [2]Set{Regular: skills, Power: active} {
		for _, s := range set.skills {
			for _, granted := range abilityGrants[kind][s][info.ID] {
				if granted == ability {
					return true
				}
			}
		}
	}
	return false
}
