package skill

import (
	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
)

// AttackTable returns the attack contribution of s for descriptions.
func AttackTable(s Skill, kind Kind) EffectTable {
	return attackTables[checkKind("skill.AttackTable", kind)][s].clone()
}

// DefenseTable returns the defense contribution of s for descriptions.
func DefenseTable(s Skill, kind Kind) EffectTable {
	return defenseTables[checkKind("skill.DefenseTable", kind)][s].clone()
}

// CostTable is one skill's influence on unit prices.
type CostTable struct {
	Modifier  Percent
	Overrides map[catalog.UnitID]int
	Blocks    []catalog.UnitID
}

// Empty reports whether the table has no effect.
func (t CostTable) Empty() bool {
	return t.Modifier == 0 && len(t.Overrides) == 0 && len(t.Blocks) == 0
}

// CostTableOf returns the unit cost effects of s. Overrides and blocks are
// always on and reported for the regular kind only.
func CostTableOf(s Skill, kind Kind) CostTable {
	table := CostTable{Modifier: costModifiers[checkKind("skill.CostTableOf", kind)][s]}
	if kind != Regular {
		return table
	}
	if overrides := unitCostOverrides[s]; len(overrides) > 0 {
		table.Overrides = make(map[catalog.UnitID]int, len(overrides))
		for id, cost := range overrides {
			table.Overrides[id] = cost
		}
	}
	if blocks := unitBlocks[s]; len(blocks) > 0 {
		table.Blocks = append([]catalog.UnitID(nil), blocks...)
	}
	return table
}

// RadiusTable returns the movement radius bonus of s.
func RadiusTable(s Skill, kind Kind) RadiusBonus {
	bonus := radiusBonuses[checkKind("skill.RadiusTable", kind)][s]
	out := RadiusBonus{}
	if len(bonus.Movement) > 0 {
		out.Movement = make(map[catalog.MovementTypeID]int, len(bonus.Movement))
		for id, v := range bonus.Movement {
			out.Movement[id] = v
		}
	}
	if len(bonus.Units) > 0 {
		out.Units = make(map[catalog.UnitID]int, len(bonus.Units))
		for id, v := range bonus.Units {
			out.Units[id] = v
		}
	}
	return out
}

// RangeTable returns the range overrides of s.
func RangeTable(s Skill, kind Kind) map[catalog.UnitID]catalog.Range {
	overrides := rangeOverrides[checkKind("skill.RangeTable", kind)][s]
	if len(overrides) == 0 {
		return nil
	}
	out := make(map[catalog.UnitID]catalog.Range, len(overrides))
	for id, r := range overrides {
		out[id] = r
	}
	return out
}

// UnitUnlocksOf returns the units unlocked by s.
func UnitUnlocksOf(s Skill, kind Kind) []catalog.UnitID {
	return append([]catalog.UnitID(nil), unitUnlocks[checkKind("skill.UnitUnlocksOf", kind)][s]...)
}

// BuildingUnlocksOf returns the buildings unlocked by s.
func BuildingUnlocksOf(s Skill) []catalog.BuildingID {
	return append([]catalog.BuildingID(nil), buildingUnlocks[s]...)
}

// CounterAttackOf returns the counter attack bonus of s.
func CounterAttackOf(s Skill, kind Kind) Percent {
	return counterAttackModifiers[checkKind("skill.CounterAttackOf", kind)][s]
}

// PoisonOf returns the poison damage bonus of s.
func PoisonOf(s Skill, kind Kind) Percent {
	return poisonModifiers[checkKind("skill.PoisonOf", kind)][s]
}

// checkKind panics on a Kind other than Regular or Power.
func checkKind(function string, kind Kind) Kind {
	if kind != Regular && kind != Power {
		panic(apperrors.Unreachable(function, int(kind)))
	}
	return kind
}
