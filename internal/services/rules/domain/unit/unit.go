// Package unit models unit instances on the map as immutable values.
package unit

import (
	"sort"

	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/player"
)

// MaxHealth is the health of a fresh unit.
const MaxHealth = 100

// AIBehavior is a hint for computer-controlled owners.
type AIBehavior int

const (
	BehaviorAttack AIBehavior = iota + 1
	BehaviorDefense
	BehaviorAdaptive
	BehaviorStay
	BehaviorPassive
)

// StatusEffect is a persistent condition on a unit.
type StatusEffect int

const (
	StatusNone StatusEffect = iota
	StatusPoison
)

// Unit is a unit instance. Every mutator returns an updated copy and never
// touches the receiver.
type Unit struct {
	info       *catalog.UnitInfo
	health     int
	player     player.ID
	fuel       int
	ammo       map[catalog.WeaponID]int
	transports []*TransportedUnit

	moved     bool
	capturing bool
	unfolded  bool
	completed bool
	rescuedBy player.ID

	status   StatusEffect
	shield   bool
	label    player.ID
	hasLabel bool
	name     int
	hasName  bool
	behavior AIBehavior
}

// Option customizes a unit at creation.
type Option func(*Unit)

func WithHealth(health int) Option {
	return func(u *Unit) { u.health = clampHealth(health) }
}

func WithFuel(fuel int) Option {
	return func(u *Unit) { u.fuel = min(max(0, fuel), u.info.Fuel) }
}

func WithName(name int) Option {
	return func(u *Unit) { u.name, u.hasName = name, true }
}

func WithLabel(label player.ID) Option {
	return func(u *Unit) { u.label, u.hasLabel = label, true }
}

func WithBehavior(behavior AIBehavior) Option {
	return func(u *Unit) { u.behavior = behavior }
}

func WithStatusEffect(status StatusEffect) Option {
	return func(u *Unit) { u.status = status }
}

func WithShield(shield bool) Option {
	return func(u *Unit) { u.shield = shield }
}

func WithMoved() Option {
	return func(u *Unit) { u.moved = true }
}

// WithTransports loads passengers. It is ignored for non-carriers.
func WithTransports(transports ...*TransportedUnit) Option {
	return func(u *Unit) {
		if u.transports != nil {
			u.transports = append(u.transports, transports...)
		}
	}
}

// New creates a unit of info owned by owner at full health, fuel and ammo.
func New(info *catalog.UnitInfo, owner player.ID, opts ...Option) Unit {
	u := Unit{
		info:   info,
		health: MaxHealth,
		player: owner,
		fuel:   info.Fuel,
		ammo:   info.DefaultAmmo(),
	}
	if info.Transport != nil {
		u.transports = []*TransportedUnit{}
	}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

// Create looks up id in cat and creates a unit. An unknown id is an error.
func Create(cat *catalog.Catalog, id catalog.UnitID, owner player.ID, opts ...Option) (Unit, error) {
	info, err := cat.RequireUnit(id)
	if err != nil {
		return Unit{}, err
	}
	return New(info, owner, opts...), nil
}

func (u Unit) Info() *catalog.UnitInfo {
	return u.info
}

func (u Unit) ID() catalog.UnitID {
	return u.info.ID
}

func (u Unit) Health() int {
	return u.health
}

func (u Unit) Player() player.ID {
	return u.player
}

func (u Unit) Fuel() int {
	return u.fuel
}

// Ammo returns the remaining supply of a limited weapon.
func (u Unit) Ammo(weapon catalog.WeaponID) (int, bool) {
	supply, ok := u.ammo[weapon]
	return supply, ok
}

// AmmoMap returns a copy of the ammunition map, nil when no weapon is
// limited.
func (u Unit) AmmoMap() map[catalog.WeaponID]int {
	return copyAmmo(u.ammo)
}

// Transports returns the loaded units. It is nil for non-carriers.
func (u Unit) Transports() []*TransportedUnit {
	if u.transports == nil {
		return nil
	}
	return append([]*TransportedUnit{}, u.transports...)
}

func (u Unit) IsMoved() bool {
	return u.moved
}

func (u Unit) IsCapturing() bool {
	return u.capturing
}

func (u Unit) IsUnfolded() bool {
	return u.unfolded
}

func (u Unit) IsCompleted() bool {
	return u.completed
}

// RescuedBy returns the player rescuing this unit.
func (u Unit) RescuedBy() (player.ID, bool) {
	return u.rescuedBy, u.rescuedBy != player.Neutral
}

func (u Unit) IsBeingRescued() bool {
	return u.rescuedBy != player.Neutral
}

func (u Unit) StatusEffect() StatusEffect {
	return u.status
}

func (u Unit) IsPoisoned() bool {
	return u.status == StatusPoison
}

func (u Unit) Shield() bool {
	return u.shield
}

func (u Unit) Label() (player.ID, bool) {
	return u.label, u.hasLabel
}

func (u Unit) Name() (int, bool) {
	return u.name, u.hasName
}

func (u Unit) Behavior() AIBehavior {
	return u.behavior
}

func (u Unit) IsDead() bool {
	return u.health <= 0
}

// IsLeader reports whether the unit holds the leader name slot of its type.
func (u Unit) IsLeader() bool {
	return u.hasName && u.info.LeaderName != 0 && u.name == u.info.LeaderName
}

// IsTransportingUnits reports whether any unit is loaded.
func (u Unit) IsTransportingUnits() bool {
	return len(u.transports) > 0
}

// CanLoad reports whether other fits into this carrier right now.
func (u Unit) CanLoad(other *catalog.UnitInfo) bool {
	return u.info.CanTransportType(other) && len(u.transports) < u.info.Transport.Limit
}

// HasAmmoFor reports whether weapon can fire.
func (u Unit) HasAmmoFor(weapon catalog.Weapon) bool {
	if !weapon.Limited() {
		return true
	}
	return u.ammo[weapon.ID] > 0
}

func clampHealth(health int) int {
	return min(MaxHealth, max(0, health))
}

func copyAmmo(ammo map[catalog.WeaponID]int) map[catalog.WeaponID]int {
	if ammo == nil {
		return nil
	}
	out := make(map[catalog.WeaponID]int, len(ammo))
	for id, supply := range ammo {
		out[id] = supply
	}
	return out
}

func sortedAmmo(ammo map[catalog.WeaponID]int) [][2]int {
	if len(ammo) == 0 {
		return nil
	}
	out := make([][2]int, 0, len(ammo))
	for id, supply := range ammo {
		out = append(out, [2]int{int(id), supply})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
