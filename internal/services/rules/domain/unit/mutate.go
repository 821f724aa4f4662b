package unit

import (
	"math"

	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/player"
)

// SetHealth returns a copy with health clamped to [0, MaxHealth].
func (u Unit) SetHealth(health int) Unit {
	u.health = clampHealth(health)
	return u
}

// ModifyHealth returns a copy with health changed by delta and clamped.
func (u Unit) ModifyHealth(delta int) Unit {
	return u.SetHealth(saturatingAdd(u.health, delta))
}

// SetFuel returns a copy with fuel clamped to [0, catalog fuel].
func (u Unit) SetFuel(fuel int) Unit {
	u.fuel = min(max(0, fuel), u.info.Fuel)
	return u
}

// SubtractFuel returns a copy with amount fuel spent.
func (u Unit) SubtractFuel(amount int) Unit {
	if amount == math.MinInt {
		return u.SetFuel(math.MaxInt)
	}
	return u.SetFuel(saturatingAdd(u.fuel, -amount))
}

// saturatingAdd returns a+b, stopping at the int bounds instead of wrapping.
func saturatingAdd(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

// Refill returns a copy with full fuel and ammunition.
func (u Unit) Refill() Unit {
	u.fuel = u.info.Fuel
	u.ammo = u.info.DefaultAmmo()
	return u
}

// SetAmmo returns a copy with the supply of a limited weapon set, clamped to
// the weapon's capacity. Unlimited or unknown weapons are ignored.
func (u Unit) SetAmmo(weapon catalog.WeaponID, supply int) Unit {
	w, ok := u.info.Weapon(weapon)
	if !ok || !w.Limited() {
		return u
	}
	ammo := copyAmmo(u.ammo)
	ammo[weapon] = min(max(0, supply), w.Supply)
	u.ammo = ammo
	return u
}

// ConsumeAmmo returns a copy with one round of weapon spent.
func (u Unit) ConsumeAmmo(weapon catalog.WeaponID) Unit {
	supply, ok := u.ammo[weapon]
	if !ok {
		return u
	}
	return u.SetAmmo(weapon, supply-1)
}

// Move marks the unit as moved and aborts a capture in progress.
func (u Unit) Move() Unit {
	u.moved = true
	u.capturing = false
	return u
}

func (u Unit) Capture() Unit {
	u.capturing = true
	return u
}

func (u Unit) StopCapture() Unit {
	u.capturing = false
	return u
}

// Rescue marks the unit as being rescued by player.
func (u Unit) Rescue(by player.ID) Unit {
	u.rescuedBy = by
	return u
}

func (u Unit) StopBeingRescued() Unit {
	u.rescuedBy = player.Neutral
	return u
}

// Unfold deploys a unit with the unfold ability. Other units are returned
// unchanged.
func (u Unit) Unfold() Unit {
	if !u.info.HasAbility(catalog.AbilityUnfold) {
		return u
	}
	u.unfolded = true
	u.capturing = false
	return u
}

// Fold packs an unfolded unit and cancels any capture.
func (u Unit) Fold() Unit {
	if !u.info.HasAbility(catalog.AbilityUnfold) {
		return u
	}
	u.unfolded = false
	u.capturing = false
	return u
}

// Complete marks the unit as done for the turn.
func (u Unit) Complete() Unit {
	u.completed = true
	u.moved = true
	return u
}

// Recover clears the turn flags of the unit and of everything it carries.
func (u Unit) Recover() Unit {
	u.moved = false
	u.completed = false
	u.transports = mapTransports(u.transports, (*TransportedUnit).recover)
	return u
}

// Load returns a copy carrying t. Capacity is the caller's concern; units
// without a transport configuration are returned unchanged.
func (u Unit) Load(t *TransportedUnit) Unit {
	if u.transports == nil || t == nil {
		return u
	}
	transports := make([]*TransportedUnit, 0, len(u.transports)+1)
	transports = append(transports, u.transports...)
	u.transports = append(transports, t)
	return u
}

// Drop returns a copy without t, matched by identity.
func (u Unit) Drop(t *TransportedUnit) Unit {
	if u.transports == nil {
		return u
	}
	transports := make([]*TransportedUnit, 0, len(u.transports))
	for _, candidate := range u.transports {
		if candidate != t {
			transports = append(transports, candidate)
		}
	}
	u.transports = transports
	return u
}

// SetPlayer transfers the unit and its passengers to owner.
func (u Unit) SetPlayer(owner player.ID) Unit {
	u.player = owner
	u.transports = mapTransports(u.transports, func(t *TransportedUnit) *TransportedUnit {
		return t.setPlayer(owner)
	})
	return u
}

func (u Unit) SetLabel(label player.ID) Unit {
	u.label, u.hasLabel = label, true
	return u
}

// RemoveLabel clears the label of the unit and its passengers.
func (u Unit) RemoveLabel() Unit {
	u.label, u.hasLabel = 0, false
	u.transports = mapTransports(u.transports, (*TransportedUnit).removeLabel)
	return u
}

func (u Unit) SetName(name int) Unit {
	u.name, u.hasName = name, true
	return u
}

func (u Unit) RemoveName() Unit {
	u.name, u.hasName = 0, false
	return u
}

func (u Unit) SetBehavior(behavior AIBehavior) Unit {
	u.behavior = behavior
	return u
}

func (u Unit) SetStatusEffect(status StatusEffect) Unit {
	u.status = status
	return u
}

func (u Unit) SetShield(shield bool) Unit {
	u.shield = shield
	return u
}

// MaybeConvert turns the unit and its passengers into target, keeping
// health, owner, cargo and identity. Turn flags survive unless the
// conversion counts as recovery. A nil target leaves the unit unchanged.
func (u Unit) MaybeConvert(target *catalog.UnitInfo, recover bool) Unit {
	if target == nil {
		return u
	}
	converted := New(target, u.player)
	converted.health = u.health
	converted.label, converted.hasLabel = u.label, u.hasLabel
	converted.name, converted.hasName = u.name, u.hasName
	converted.behavior = u.behavior
	converted.status = u.status
	converted.shield = u.shield
	converted.rescuedBy = u.rescuedBy
	if !recover {
		converted.moved = u.moved
		converted.completed = u.completed
	}
	if converted.transports != nil || len(u.transports) > 0 {
		converted.transports = mapTransports(u.transports, func(t *TransportedUnit) *TransportedUnit {
			return t.maybeConvert(target, recover)
		})
	}
	return converted
}

// ToTransported reduces the unit to its carried shape.
func (u Unit) ToTransported() *TransportedUnit {
	return &TransportedUnit{
		info:       u.info,
		health:     u.health,
		player:     u.player,
		fuel:       u.fuel,
		ammo:       copyAmmo(u.ammo),
		transports: u.Transports(),
		moved:      u.moved,
		status:     u.status,
		shield:     u.shield,
		label:      u.label,
		hasLabel:   u.hasLabel,
		name:       u.name,
		hasName:    u.hasName,
		behavior:   u.behavior,
	}
}

func mapTransports(transports []*TransportedUnit, fn func(*TransportedUnit) *TransportedUnit) []*TransportedUnit {
	if transports == nil {
		return nil
	}
	out := make([]*TransportedUnit, len(transports))
	for i, t := range transports {
		out[i] = fn(t)
	}
	return out
}
