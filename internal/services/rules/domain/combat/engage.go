package combat

import (
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/gamemap"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/skill"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/status"
)

// Prediction is the outcome of one hit on the map.
type Prediction struct {
	Weapon   string
	Damage   int
	Defender Defender
}

// Predict resolves a hit of the unit at from against the unit or building at
// to. ok is false when there is no attacker, no target or no usable weapon.
func Predict(m *gamemap.Map, from, to gamemap.Vector, luck float64, counter bool) (Prediction, bool) {
	attacker, ok := m.UnitAt(from)
	if !ok {
		return Prediction{}, false
	}
	var (
		defender      Defender
		defenseStatus float64
	)
	if u, ok := m.UnitAt(to); ok {
		defender = DefenderFromUnit(u)
		defenseStatus = status.DefenseStatusEffect(m, u, to)
	} else if b, ok := m.BuildingAt(to); ok {
		defender = DefenderFromBuilding(b)
		defenseStatus = status.DefenseStatusEffect(m, b, to)
	} else {
		return Prediction{}, false
	}

	weapon, ok := AttackWeapon(attacker, defender.Type)
	if !ok {
		return Prediction{}, false
	}

	var skills, active skill.Set
	if p, ok := m.PlayerOf(attacker.Player()); ok {
		skills, active = p.Skills(), p.ActiveSkills()
	}
	damage := Resolve(Input{
		Attacker:      attacker,
		Defender:      defender,
		Weapon:        weapon,
		AttackerCover: status.Cover(m, from, attacker.Info().Type),
		DefenderCover: status.Cover(m, to, defender.Type),
		AttackStatus:  status.AttackStatusEffect(m, attacker, from),
		DefenseStatus: defenseStatus,
		Luck:          luck,
		PoisonBonus:   skill.PoisonEffect(skills, active),
		CounterAttack: counter,
		CounterBonus:  skill.CounterAttackEffect(skills, active),
		ClampToHealth: true,
	})
	return Prediction{Weapon: weapon.Name, Damage: damage, Defender: defender}, true
}
