package catalog

import "slices"

// Range is an inclusive attack distance interval.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// TransportConfig describes what a carrier may load.
type TransportConfig struct {
	Limit int          `json:"limit"`
	Types []EntityType `json:"types"`
}

// UnitInfo is the static definition of a unit type.
//
// LeaderName is the name slot that marks an instance as the leader of its
// owner; zero means the unit type has no leader.
type UnitInfo struct {
	ID         UnitID           `json:"id"`
	Name       string           `json:"name"`
	Type       EntityType       `json:"type"`
	Movement   MovementTypeID   `json:"movement"`
	Cost       int              `json:"cost"`
	Defense    int              `json:"defense"`
	Fuel       int              `json:"fuel"`
	Vision     int              `json:"vision"`
	Radius     int              `json:"radius"`
	Range      *Range           `json:"range,omitempty"`
	WeaponIDs  []WeaponID       `json:"weapons,omitempty"`
	Abilities  Abilities        `json:"abilities"`
	Transport  *TransportConfig `json:"transport,omitempty"`
	Buildable  bool             `json:"buildable,omitempty"`
	LeaderName int              `json:"leaderName,omitempty"`

	weapons []Weapon
}

// Weapons returns a copy of the resolved weapons in catalog order.
func (u *UnitInfo) Weapons() []Weapon {
	if u.weapons == nil {
		return nil
	}
	out := make([]Weapon, len(u.weapons))
	for i, weapon := range u.weapons {
		out[i] = weapon.clone()
	}
	return out
}

// Weapon returns the unit's weapon with the given id.
func (u *UnitInfo) Weapon(id WeaponID) (Weapon, bool) {
	for _, weapon := range u.weapons {
		if weapon.ID == id {
			return weapon.clone(), true
		}
	}
	return Weapon{}, false
}

// clone copies u without sharing any map, slice or pointer with it.
func (u *UnitInfo) clone() UnitInfo {
	out := *u
	if u.Range != nil {
		r := *u.Range
		out.Range = &r
	}
	out.WeaponIDs = slices.Clone(u.WeaponIDs)
	if u.Transport != nil {
		out.Transport = &TransportConfig{Limit: u.Transport.Limit, Types: slices.Clone(u.Transport.Types)}
	}
	out.weapons = u.Weapons()
	return out
}

// HasAttack reports whether the unit carries any weapon.
func (u *UnitInfo) HasAttack() bool {
	return len(u.weapons) > 0
}

// HasAmmo reports whether any weapon consumes ammunition.
func (u *UnitInfo) HasAmmo() bool {
	for _, weapon := range u.weapons {
		if weapon.Limited() {
			return true
		}
	}
	return false
}

// DefaultAmmo returns a full ammunition map, or nil when no weapon is limited.
func (u *UnitInfo) DefaultAmmo() map[WeaponID]int {
	if !u.HasAmmo() {
		return nil
	}
	ammo := make(map[WeaponID]int)
	for _, weapon := range u.weapons {
		if weapon.Limited() {
			ammo[weapon.ID] = weapon.Supply
		}
	}
	return ammo
}

// HasAbility reports whether the unit type declares a.
func (u *UnitInfo) HasAbility(a Ability) bool {
	return u.Abilities.Has(a)
}

// CanTransport reports whether the unit carries other units.
func (u *UnitInfo) CanTransport() bool {
	return u.Transport != nil && u.Transport.Limit > 0
}

// CanTransportType reports whether other may ride in this unit.
func (u *UnitInfo) CanTransportType(other *UnitInfo) bool {
	if !u.CanTransport() || other == nil {
		return false
	}
	for _, t := range u.Transport.Types {
		if t == other.Type {
			return true
		}
	}
	return false
}

// DefaultRange returns the catalog attack range. Units without a declared
// range attack adjacent fields only.
func (u *UnitInfo) DefaultRange() (Range, bool) {
	if u.Range == nil {
		return Range{}, false
	}
	return *u.Range, true
}

// IsLongRange reports whether the unit attacks from a distance.
func (u *UnitInfo) IsLongRange() bool {
	return u.Range != nil
}

// Aura is a radius bonus granted by a building to friendly units.
type Aura struct {
	Radius  int `json:"radius"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
}

// BuildingInfo is the static definition of a building type.
type BuildingInfo struct {
	ID           BuildingID `json:"id"`
	Name         string     `json:"name"`
	Type         EntityType `json:"type"`
	Cost         int        `json:"cost"`
	Defense      int        `json:"defense"`
	Behaviors    Behaviors  `json:"behaviors"`
	Units        []UnitID   `json:"units,omitempty"`
	HQ           bool       `json:"hq,omitempty"`
	HQConversion BuildingID `json:"hqConversion,omitempty"`
	Aura         *Aura      `json:"aura,omitempty"`
	Buildable    bool       `json:"buildable,omitempty"`
}

func (b *BuildingInfo) clone() BuildingInfo {
	out := *b
	out.Units = slices.Clone(b.Units)
	if b.Aura != nil {
		aura := *b.Aura
		out.Aura = &aura
	}
	return out
}

// IsStructure reports whether the building is an ownerless structure.
func (b *BuildingInfo) IsStructure() bool {
	return b.Type == TypeStructure
}

// HasBehavior reports whether the building type declares behavior.
func (b *BuildingInfo) HasBehavior(behavior Behavior) bool {
	return b.Behaviors.Has(behavior)
}

// CanBuildUnit reports whether the building lists unit among its products.
func (b *BuildingInfo) CanBuildUnit(unit UnitID) bool {
	if !b.Behaviors.Has(BehaviorCreateUnits) {
		return false
	}
	for _, id := range b.Units {
		if id == unit {
			return true
		}
	}
	return false
}
