package unit

import (
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/player"
)

// TransportedUnit is the reduced shape of a unit while it is carried. It
// has no capture, unfold, completion or rescue state. Carriers hold
// pointers and compare them by identity; the pointee is never modified.
type TransportedUnit struct {
	info       *catalog.UnitInfo
	health     int
	player     player.ID
	fuel       int
	ammo       map[catalog.WeaponID]int
	transports []*TransportedUnit
	moved      bool
	status     StatusEffect
	shield     bool
	label      player.ID
	hasLabel   bool
	name       int
	hasName    bool
	behavior   AIBehavior
}

func (t *TransportedUnit) Info() *catalog.UnitInfo {
	return t.info
}

func (t *TransportedUnit) Health() int {
	return t.health
}

func (t *TransportedUnit) Player() player.ID {
	return t.player
}

func (t *TransportedUnit) IsMoved() bool {
	return t.moved
}

// Transports returns the nested passengers.
func (t *TransportedUnit) Transports() []*TransportedUnit {
	if t.transports == nil {
		return nil
	}
	return append([]*TransportedUnit{}, t.transports...)
}

// Deploy expands the carried shape into a full unit. Heavy equipment cannot
// act on the turn it is dropped.
func (t *TransportedUnit) Deploy() Unit {
	u := t.expand()
	u.moved = t.moved || t.info.HasAbility(catalog.AbilityHeavyEquipment)
	return u
}

func (t *TransportedUnit) clone() *TransportedUnit {
	c := *t
	return &c
}

func (t *TransportedUnit) recover() *TransportedUnit {
	c := t.clone()
	c.moved = false
	c.transports = mapTransports(t.transports, (*TransportedUnit).recover)
	return c
}

func (t *TransportedUnit) setPlayer(owner player.ID) *TransportedUnit {
	c := t.clone()
	c.player = owner
	c.transports = mapTransports(t.transports, func(n *TransportedUnit) *TransportedUnit {
		return n.setPlayer(owner)
	})
	return c
}

func (t *TransportedUnit) removeLabel() *TransportedUnit {
	c := t.clone()
	c.label, c.hasLabel = 0, false
	c.transports = mapTransports(t.transports, (*TransportedUnit).removeLabel)
	return c
}

func (t *TransportedUnit) maybeConvert(target *catalog.UnitInfo, recover bool) *TransportedUnit {
	u := t.expand().MaybeConvert(target, recover)
	return u.ToTransported()
}

// expand is Deploy without the heavy equipment rule.
func (t *TransportedUnit) expand() Unit {
	return Unit{
		info:       t.info,
		health:     t.health,
		player:     t.player,
		fuel:       t.fuel,
		ammo:       copyAmmo(t.ammo),
		transports: t.Transports(),
		moved:      t.moved,
		status:     t.status,
		shield:     t.shield,
		label:      t.label,
		hasLabel:   t.hasLabel,
		name:       t.name,
		hasName:    t.hasName,
		behavior:   t.behavior,
	}
}
