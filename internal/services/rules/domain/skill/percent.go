package skill

import (
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
)

// Percent is a modifier in whole percentage points.
type Percent int

// Fraction returns p as a fraction, 10 -> 0.1.
func (p Percent) Fraction() float64 {
	return float64(p) / 100
}

// Multiplier returns 1 + sum(ps)/100. Summing happens on integers, so the
// order of ps never changes the result.
func Multiplier(ps ...Percent) float64 {
	var sum Percent
	for _, p := range ps {
		sum += p
	}
	return 1 + sum.Fraction()
}

// Kind selects the always-on table or the power table of a skill.
type Kind int

const (
	Regular Kind = iota
	Power
)

func (k Kind) String() string {
	if k == Power {
		return "power"
	}
	return "regular"
}

// Subject is the entity an effect is evaluated for. Every field is
// optional; absent fields only disable the bonuses keyed on them.
type Subject struct {
	Unit   *catalog.UnitInfo
	Tile   *catalog.TileInfo
	Leader bool
}

// TileEffect is a terrain-dependent bonus. Movement 0 matches any unit.
type TileEffect struct {
	Group    catalog.TileGroup
	Movement catalog.MovementTypeID
	Value    Percent
}

// EffectTable is one skill's contribution to a percentage category.
type EffectTable struct {
	Flat     Percent
	Units    map[catalog.UnitID]Percent
	Movement map[catalog.MovementTypeID]Percent
	Tiles    []TileEffect
	Leader   Percent
}

// Empty reports whether the table contributes nothing.
func (t EffectTable) Empty() bool {
	return t.Flat == 0 && len(t.Units) == 0 && len(t.Movement) == 0 && len(t.Tiles) == 0 && t.Leader == 0
}

func (t EffectTable) value(subject Subject) Percent {
	v := t.Flat
	if subject.Unit != nil {
		v += t.Units[subject.Unit.ID]
		v += t.Movement[subject.Unit.Movement]
	}
	if subject.Tile != nil {
		for _, effect := range t.Tiles {
			if effect.Group != subject.Tile.Group {
				continue
			}
			if effect.Movement != 0 && (subject.Unit == nil || subject.Unit.Movement != effect.Movement) {
				continue
			}
			v += effect.Value
		}
	}
	if subject.Leader {
		v += t.Leader
	}
	return v
}

func (t EffectTable) clone() EffectTable {
	out := EffectTable{Flat: t.Flat, Leader: t.Leader}
	if len(t.Units) > 0 {
		out.Units = make(map[catalog.UnitID]Percent, len(t.Units))
		for id, v := range t.Units {
			out.Units[id] = v
		}
	}
	if len(t.Movement) > 0 {
		out.Movement = make(map[catalog.MovementTypeID]Percent, len(t.Movement))
		for id, v := range t.Movement {
			out.Movement[id] = v
		}
	}
	if len(t.Tiles) > 0 {
		out.Tiles = append([]TileEffect(nil), t.Tiles...)
	}
	return out
}

type effectTables map[Skill]EffectTable

// sum aggregates the table over set. The size switch is a fast path and
// must agree with the general loop.
func (tables effectTables) sum(set Set, subject Subject) Percent {
	switch len(set.skills) {
	case 0:
		return 0
	case 1:
		return tables[set.skills[0]].value(subject)
	}
	var total Percent
	for _, s := range set.skills {
		total += tables[s].value(subject)
	}
	return total
}
