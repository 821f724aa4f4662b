// Package catalog defines the static, read-only content records that every
// rules query resolves against: units, buildings, tiles, weapons, and
// movement types. Records are never mutated after a Catalog is built, so
// pointers returned by lookups are safe to share.
package catalog

import "maps"

// UnitID identifies a unit catalog entry. Shipped ids are never renumbered.
type UnitID int

// BuildingID identifies a building catalog entry.
type BuildingID int

// TileID identifies a tile catalog entry.
type TileID int

// WeaponID identifies a weapon catalog entry.
type WeaponID int

// MovementTypeID identifies a movement type catalog entry.
type MovementTypeID int

// EntityType groups entities for weapon damage tables and cover rules.
type EntityType int

const (
	TypeGround EntityType = iota + 1
	TypeInfantry
	TypeArtillery
	TypeAir
	TypeLowAltitude
	TypeAirInfantry
	TypeAmphibious
	TypeShip
	TypeBuilding
	TypeStructure
	TypeInvincible
)

var entityTypeNames = map[EntityType]string{
	TypeGround:      "ground",
	TypeInfantry:    "infantry",
	TypeArtillery:   "artillery",
	TypeAir:         "air",
	TypeLowAltitude: "lowAltitude",
	TypeAirInfantry: "airInfantry",
	TypeAmphibious:  "amphibious",
	TypeShip:        "ship",
	TypeBuilding:    "building",
	TypeStructure:   "structure",
	TypeInvincible:  "invincible",
}

// String returns the stable name of the entity type.
func (t EntityType) String() string {
	if name, ok := entityTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether t is a declared entity type.
func (t EntityType) Valid() bool {
	_, ok := entityTypeNames[t]
	return ok
}

// Air reports whether t belongs to the air group.
func (t EntityType) Air() bool {
	return t == TypeAir || t == TypeLowAltitude || t == TypeAirInfantry
}

// BuildingGroup reports whether t is a building or structure.
func (t EntityType) BuildingGroup() bool {
	return t == TypeBuilding || t == TypeStructure
}

// CoverExempt reports whether cover is ignored for entities of this type on
// either side of an attack.
func (t EntityType) CoverExempt() bool {
	return t.Air() || t.BuildingGroup()
}

// TileGroup classifies tiles for terrain-dependent skill bonuses.
type TileGroup int

const (
	GroupPlain TileGroup = iota + 1
	GroupForest
	GroupMountain
	GroupStreet
	GroupSea
	GroupBeach
)

// MovementType describes how a unit traverses tiles.
type MovementType struct {
	ID   MovementTypeID `json:"id"`
	Name string         `json:"name"`
	Air  bool           `json:"air,omitempty"`
}

// TileInfo is the static definition of a tile type.
type TileInfo struct {
	ID    TileID                 `json:"id"`
	Name  string                 `json:"name"`
	Group TileGroup              `json:"group"`
	Cover int                    `json:"cover"`
	Costs map[MovementTypeID]int `json:"costs"`
}

func (t *TileInfo) clone() TileInfo {
	out := *t
	out.Costs = maps.Clone(t.Costs)
	return out
}

// MovementCost returns the cost of entering the tile. Zero means impassable.
func (t *TileInfo) MovementCost(movement MovementTypeID) int {
	if t == nil {
		return 0
	}
	return t.Costs[movement]
}

// Weapon is the static definition of a weapon. Supply 0 means unlimited.
type Weapon struct {
	ID         WeaponID           `json:"id"`
	Name       string             `json:"name"`
	Damage     map[EntityType]int `json:"damage"`
	Supply     int                `json:"supply,omitempty"`
	FlatDamage bool               `json:"flatDamage,omitempty"`
}

func (w Weapon) clone() Weapon {
	w.Damage = maps.Clone(w.Damage)
	return w
}

// DamageAgainst returns the base damage against an entity type, 0 when the
// weapon cannot hit it.
func (w Weapon) DamageAgainst(target EntityType) int {
	return w.Damage[target]
}

// Limited reports whether the weapon consumes ammunition.
func (w Weapon) Limited() bool {
	return w.Supply > 0
}
