// Package status folds every modifier source that applies to an entity on
// the map into the attack and defense multipliers used by combat.
package status

import (
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/building"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/gamemap"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/player"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/skill"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/unit"
)

const (
	// LeaderStatusEffect is the flat bonus of a leader unit, applied to both
	// attack and defense.
	LeaderStatusEffect skill.Percent = 5
	// PoisonStatusEffect is the attack penalty of a poisoned unit.
	PoisonStatusEffect skill.Percent = -10
	// BuildingCover is added to the tile cover of a field with a building.
	BuildingCover = 10
)

// Entity is anything that can be attacked: a unit or a building.
type Entity interface {
	Player() player.ID
}

// AttackStatusEffect returns the attack multiplier of u standing at
// position.
func AttackStatusEffect(m *gamemap.Map, u unit.Unit, position gamemap.Vector) float64 {
	skills, active, crystal := playerSkills(m, u.Player())
	tile, _ := m.TileInfo(position)
	subject := skill.Subject{Unit: u.Info(), Tile: tile, Leader: u.IsLeader()}

	total := skill.AttackEffect(skills, active, subject) + skill.CrystalAttack(crystal)
	if u.IsLeader() {
		total += LeaderStatusEffect
	}
	if aura, ok := strongestAura(m, u.Player(), position); ok {
		total += skill.Percent(aura.Attack)
	}
	if u.IsPoisoned() {
		total += PoisonStatusEffect
	}
	return skill.Multiplier(total)
}

// DefenseStatusEffect returns the defense multiplier of entity at position.
// Buildings only receive the flat skill and crystal bonuses of their owner.
func DefenseStatusEffect(m *gamemap.Map, entity Entity, position gamemap.Vector) float64 {
	skills, active, crystal := playerSkills(m, entity.Player())
	total := skill.CrystalDefense(crystal)

	switch e := entity.(type) {
	case unit.Unit:
		tile, _ := m.TileInfo(position)
		subject := skill.Subject{Unit: e.Info(), Tile: tile, Leader: e.IsLeader()}
		total += skill.DefenseEffect(skills, active, subject)
		if e.IsLeader() {
			total += LeaderStatusEffect
		}
		if aura, ok := strongestAura(m, e.Player(), position); ok {
			total += skill.Percent(aura.Defense)
		}
	case building.Building:
		total += skill.DefenseEffect(skills, active, skill.Subject{})
	}
	return skill.Multiplier(total)
}

// Cover returns the cover an entity of type t enjoys at position.
func Cover(m *gamemap.Map, position gamemap.Vector, t catalog.EntityType) int {
	if t.CoverExempt() {
		return 0
	}
	tile, ok := m.TileInfo(position)
	if !ok {
		return 0
	}
	cover := tile.Cover
	if _, ok := m.BuildingAt(position); ok {
		cover += BuildingCover
	}
	return cover
}

func playerSkills(m *gamemap.Map, owner player.ID) (skill.Set, skill.Set, skill.Crystal) {
	p, ok := m.PlayerOf(owner)
	if !ok {
		return skill.Set{}, skill.Set{}, 0
	}
	return p.Skills(), p.ActiveSkills(), p.Crystal()
}

// strongestAura picks the aura with the highest combined bonus among the
// friendly buildings in range of position. Auras do not stack.
func strongestAura(m *gamemap.Map, owner player.ID, position gamemap.Vector) (catalog.Aura, bool) {
	if owner == player.Neutral {
		return catalog.Aura{}, false
	}
	var best catalog.Aura
	found := false
	for _, placed := range m.Buildings() {
		info := placed.Value.Info()
		if info.Aura == nil || !info.HasBehavior(catalog.BehaviorAura) {
			continue
		}
		if placed.Value.IsNeutral() || !m.MatchesTeam(owner, placed.Value.Player()) {
			continue
		}
		if placed.Position.Distance(position) > info.Aura.Radius {
			continue
		}
		if !found || info.Aura.Attack+info.Aura.Defense > best.Attack+best.Defense {
			best, found = *info.Aura, true
		}
	}
	return best, found
}
