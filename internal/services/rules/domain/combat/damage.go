// Package combat turns an attacker, a defender, a weapon and the modifiers
// in play into a damage value.
package combat

import (
	"math"
	"sort"

	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/building"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/skill"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/unit"
)

// MinDamage is the least damage any hit deals.
const MinDamage = 5

// Defender is the part of a unit or building that combat reads.
type Defender struct {
	Type     catalog.EntityType
	Defense  int
	Health   int
	Shielded bool
	Poisoned bool
}

func DefenderFromUnit(u unit.Unit) Defender {
	return Defender{
		Type:     u.Info().Type,
		Defense:  u.Info().Defense,
		Health:   u.Health(),
		Shielded: u.Shield(),
		Poisoned: u.IsPoisoned(),
	}
}

func DefenderFromBuilding(b building.Building) Defender {
	return Defender{
		Type:    b.Info().Type,
		Defense: b.Info().Defense,
		Health:  b.Health(),
	}
}

// CalculateDamage returns the raw damage of one hit. Flat weapons ignore
// every modifier. The result is not rounded.
func CalculateDamage(
	attacker unit.Unit,
	defender Defender,
	weapon catalog.Weapon,
	attackerCover, defenderCover int,
	attackStatus, defenseStatus float64,
	luck float64,
) float64 {
	base := float64(weapon.DamageAgainst(defender.Type))
	if weapon.FlatDamage {
		return math.Max(MinDamage, base)
	}

	health := 0.666*(float64(attacker.Health())/unit.MaxHealth) + 0.334
	offense := 0.0
	if !defender.Shielded {
		offense = base * attackStatus
	}
	defense := float64(defender.Defense) * defenseStatus

	return math.Max(MinDamage,
		health*offense*coverFactor(attacker.Info().Type, attackerCover, 400)*luck-
			defense*coverFactor(defender.Type, defenderCover, 100))
}

func coverFactor(t catalog.EntityType, cover int, scale float64) float64 {
	if t.CoverExempt() {
		return 1
	}
	return 1 + float64(cover)/scale
}

// AttackWeapon picks the strongest weapon of u that damages target and has
// ammunition left. Ties keep catalog order.
func AttackWeapon(u unit.Unit, target catalog.EntityType) (catalog.Weapon, bool) {
	weapons := append([]catalog.Weapon(nil), u.Info().Weapons()...)
	if len(weapons) == 1 {
		w := weapons[0]
		return w, w.DamageAgainst(target) > 0 && u.HasAmmoFor(w)
	}
	sort.SliceStable(weapons, func(i, j int) bool {
		return weapons[i].DamageAgainst(target) > weapons[j].DamageAgainst(target)
	})
	for _, w := range weapons {
		if w.DamageAgainst(target) > 0 && u.HasAmmoFor(w) {
			return w, true
		}
	}
	return catalog.Weapon{}, false
}

// Input collects everything Resolve needs. The late modifiers are applied
// after rounding the base damage up.
type Input struct {
	Attacker      unit.Unit
	Defender      Defender
	Weapon        catalog.Weapon
	AttackerCover int
	DefenderCover int
	AttackStatus  float64
	DefenseStatus float64
	Luck          float64

	DamageModifier skill.Percent
	// PoisonBonus only applies when the defender is poisoned.
	PoisonBonus   skill.Percent
	CounterAttack bool
	CounterBonus  skill.Percent
	ClampToHealth bool
}

// Resolve returns the damage of a hit as an integer.
func Resolve(in Input) int {
	damage := math.Ceil(CalculateDamage(
		in.Attacker, in.Defender, in.Weapon,
		in.AttackerCover, in.DefenderCover,
		in.AttackStatus, in.DefenseStatus, in.Luck,
	))
	late := []skill.Percent{in.DamageModifier}
	if in.Defender.Poisoned {
		late = append(late, in.PoisonBonus)
	}
	if in.CounterAttack {
		late = append(late, in.CounterBonus)
	}
	for _, modifier := range late {
		if modifier != 0 {
			damage = math.Ceil(math.Round(damage*skill.Multiplier(modifier)*10000) / 10000)
		}
	}
	result := int(damage)
	if in.ClampToHealth && result > in.Defender.Health {
		result = in.Defender.Health
	}
	return result
}
