// Package skill aggregates player skills into numeric rules modifiers.
//
// Every query is a pure function of a player's unlocked and active skill
// sets. Percentages are integer points so that sums are exact and order
// independent; callers convert with Multiplier at the last step.
package skill

import (
	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
)

// Skill is a stable skill code. Codes are persisted and never renumbered.
type Skill int

const (
	AttackIncreaseMinor Skill = iota + 1
	DefenseIncreaseMinor
	AttackIncreaseMajorDefenseDecreaseMinor
	DecreaseUnitCostAttackAndDefenseDecreaseMinor
	UnitAbilitySniperImmediateAction
	MovementIncreaseGroundUnitDefenseDecrease
	UnitInfantryForestAttackAndDefenseIncrease
	BuyUnitCannon
	DecreaseUnitCostAttackAndDefenseDecreaseMajor
	AttackAndDefenseIncreaseHard
	AttackAndDefenseDecreaseEasy
	ArtilleryRangeIncrease
	BuyUnitZombieDefenseDecreaseMajor
	BuyUnitBazookaBear
	ShipIncreaseAttackAndRange
	CounterAttackPower
	PoisonDamageIncrease
	UnlockPowerStation
	LeaderAttackIncrease
	HealVehiclesAttackDecrease
	maxSkill
)

// All returns every declared skill in code order.
func All() []Skill {
	out := make([]Skill, 0, maxSkill-1)
	for s := AttackIncreaseMinor; s < maxSkill; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is a declared skill code.
func (s Skill) Valid() bool {
	return s >= AttackIncreaseMinor && s < maxSkill
}

// Group buckets skills for selection screens.
type Group int

const (
	GroupAttack Group = iota + 1
	GroupDefense
	GroupSpecial
	GroupAI
	GroupUnlock
)

// Config is the acquisition metadata of a skill.
type Config struct {
	// Charges is the number of charge units spent to activate the power.
	Charges int
	// Cost is the price in the skill shop.
	Cost            int
	Group           Group
	RequiresCrystal bool
}

// ConfigOf returns the metadata of s. An undeclared code panics.
func ConfigOf(s Skill) Config {
	switch s {
	case AttackIncreaseMinor:
		return Config{Charges: 3, Cost: 300, Group: GroupAttack}
	case DefenseIncreaseMinor:
		return Config{Charges: 3, Cost: 300, Group: GroupDefense}
	case AttackIncreaseMajorDefenseDecreaseMinor:
		return Config{Charges: 4, Cost: 500, Group: GroupAttack}
	case DecreaseUnitCostAttackAndDefenseDecreaseMinor:
		return Config{Charges: 3, Cost: 400, Group: GroupSpecial}
	case UnitAbilitySniperImmediateAction:
		return Config{Charges: 2, Cost: 400, Group: GroupSpecial}
	case MovementIncreaseGroundUnitDefenseDecrease:
		return Config{Charges: 4, Cost: 500, Group: GroupSpecial}
	case UnitInfantryForestAttackAndDefenseIncrease:
		return Config{Charges: 3, Cost: 400, Group: GroupAttack}
	case BuyUnitCannon:
		return Config{Charges: 5, Cost: 1000, Group: GroupUnlock}
	case DecreaseUnitCostAttackAndDefenseDecreaseMajor:
		return Config{Charges: 4, Cost: 800, Group: GroupSpecial}
	case AttackAndDefenseIncreaseHard:
		return Config{Charges: 6, Group: GroupAI}
	case AttackAndDefenseDecreaseEasy:
		return Config{Charges: 6, Group: GroupAI}
	case ArtilleryRangeIncrease:
		return Config{Charges: 4, Cost: 600, Group: GroupAttack}
	case BuyUnitZombieDefenseDecreaseMajor:
		return Config{Charges: 5, Cost: 1000, Group: GroupUnlock}
	case BuyUnitBazookaBear:
		return Config{Charges: 5, Cost: 1200, Group: GroupUnlock, RequiresCrystal: true}
	case ShipIncreaseAttackAndRange:
		return Config{Charges: 4, Cost: 600, Group: GroupAttack}
	case CounterAttackPower:
		return Config{Charges: 3, Cost: 500, Group: GroupDefense}
	case PoisonDamageIncrease:
		return Config{Charges: 3, Cost: 500, Group: GroupAttack, RequiresCrystal: true}
	case UnlockPowerStation:
		return Config{Charges: 2, Cost: 700, Group: GroupUnlock}
	case LeaderAttackIncrease:
		return Config{Charges: 3, Cost: 400, Group: GroupAttack}
	case HealVehiclesAttackDecrease:
		return Config{Charges: 2, Cost: 300, Group: GroupSpecial}
	default:
		panic(apperrors.Unreachable("skill.ConfigOf", s))
	}
}

// EffectCategory is the primary modifier category a skill contributes to.
type EffectCategory int

const (
	CategoryAttack EffectCategory = iota + 1
	CategoryDefense
	CategoryCost
	CategoryMovement
	CategoryRange
	CategoryUnlock
	CategoryAbility
	CategoryCombat
	CategoryLeader
)

// CategoryOf classifies s. An undeclared code panics.
func CategoryOf(s Skill) EffectCategory {
	switch s {
	case AttackIncreaseMinor,
		AttackIncreaseMajorDefenseDecreaseMinor,
		UnitInfantryForestAttackAndDefenseIncrease,
		AttackAndDefenseIncreaseHard,
		AttackAndDefenseDecreaseEasy,
		ShipIncreaseAttackAndRange,
		HealVehiclesAttackDecrease:
		return CategoryAttack
	case DefenseIncreaseMinor:
		return CategoryDefense
	case DecreaseUnitCostAttackAndDefenseDecreaseMinor,
		DecreaseUnitCostAttackAndDefenseDecreaseMajor:
		return CategoryCost
	case MovementIncreaseGroundUnitDefenseDecrease:
		return CategoryMovement
	case ArtilleryRangeIncrease:
		return CategoryRange
	case BuyUnitCannon,
		BuyUnitZombieDefenseDecreaseMajor,
		BuyUnitBazookaBear,
		UnlockPowerStation:
		return CategoryUnlock
	case UnitAbilitySniperImmediateAction:
		return CategoryAbility
	case CounterAttackPower,
		PoisonDamageIncrease:
		return CategoryCombat
	case LeaderAttackIncrease:
		return CategoryLeader
	default:
		panic(apperrors.Unreachable("skill.CategoryOf", s))
	}
}
