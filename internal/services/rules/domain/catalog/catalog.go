package catalog

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
)

// Content is the raw, serializable form of a catalog.
type Content struct {
	MovementTypes []MovementType `json:"movementTypes"`
	Weapons       []Weapon       `json:"weapons"`
	Tiles         []TileInfo     `json:"tiles"`
	Units         []UnitInfo     `json:"units"`
	Buildings     []BuildingInfo `json:"buildings"`
}

// Catalog is a validated, immutable registry of content records.
type Catalog struct {
	movementTypes map[MovementTypeID]*MovementType
	weapons       map[WeaponID]*Weapon
	tiles         map[TileID]*TileInfo
	units         map[UnitID]*UnitInfo
	buildings     map[BuildingID]*BuildingInfo
	content       Content
}

// New validates content and builds a Catalog. Ids must be positive and
// unique per kind, and every cross reference must resolve.
func New(content Content) (*Catalog, error) {
	c := &Catalog{
		movementTypes: make(map[MovementTypeID]*MovementType, len(content.MovementTypes)),
		weapons:       make(map[WeaponID]*Weapon, len(content.Weapons)),
		tiles:         make(map[TileID]*TileInfo, len(content.Tiles)),
		units:         make(map[UnitID]*UnitInfo, len(content.Units)),
		buildings:     make(map[BuildingID]*BuildingInfo, len(content.Buildings)),
	}

	for i := range content.MovementTypes {
		mt := content.MovementTypes[i]
		if err := checkEntry("movement type", int(mt.ID), mt.Name); err != nil {
			return nil, err
		}
		if _, exists := c.movementTypes[mt.ID]; exists {
			return nil, duplicate("movement type", int(mt.ID))
		}
		c.movementTypes[mt.ID] = &mt
	}

	for i := range content.Weapons {
		weapon := content.Weapons[i]
		if err := checkEntry("weapon", int(weapon.ID), weapon.Name); err != nil {
			return nil, err
		}
		if _, exists := c.weapons[weapon.ID]; exists {
			return nil, duplicate("weapon", int(weapon.ID))
		}
		if weapon.Supply < 0 {
			return nil, invalid("weapon", int(weapon.ID), "negative supply")
		}
		for target := range weapon.Damage {
			if !target.Valid() {
				return nil, invalid("weapon", int(weapon.ID), "unknown damage target")
			}
		}
		weapon = weapon.clone()
		c.weapons[weapon.ID] = &weapon
	}

	for i := range content.Tiles {
		tile := content.Tiles[i]
		if err := checkEntry("tile", int(tile.ID), tile.Name); err != nil {
			return nil, err
		}
		if _, exists := c.tiles[tile.ID]; exists {
			return nil, duplicate("tile", int(tile.ID))
		}
		costs := make(map[MovementTypeID]int, len(tile.Costs))
		for movement, cost := range tile.Costs {
			if _, ok := c.movementTypes[movement]; !ok {
				return nil, unknown(apperrors.CodeUnknownMovementType, int(movement))
			}
			costs[movement] = cost
		}
		tile.Costs = costs
		c.tiles[tile.ID] = &tile
	}

	for i := range content.Units {
		unit := content.Units[i]
		if err := checkEntry("unit", int(unit.ID), unit.Name); err != nil {
			return nil, err
		}
		if _, exists := c.units[unit.ID]; exists {
			return nil, duplicate("unit", int(unit.ID))
		}
		if !unit.Type.Valid() {
			return nil, invalid("unit", int(unit.ID), "unknown entity type")
		}
		if _, ok := c.movementTypes[unit.Movement]; !ok {
			return nil, unknown(apperrors.CodeUnknownMovementType, int(unit.Movement))
		}
		if unit.Range != nil {
			if unit.Range.Min < 1 || unit.Range.Max < unit.Range.Min {
				return nil, invalid("unit", int(unit.ID), "invalid range")
			}
			r := *unit.Range
			unit.Range = &r
		}
		if unit.Cost < 0 || unit.Fuel < 0 || unit.Radius < 0 {
			return nil, invalid("unit", int(unit.ID), "negative attribute")
		}
		unit.weapons = make([]Weapon, 0, len(unit.WeaponIDs))
		for _, weaponID := range unit.WeaponIDs {
			weapon, ok := c.weapons[weaponID]
			if !ok {
				return nil, unknown(apperrors.CodeUnknownWeapon, int(weaponID))
			}
			unit.weapons = append(unit.weapons, *weapon)
		}
		unit = unit.clone()
		c.units[unit.ID] = &unit
	}

	for i := range content.Buildings {
		building := content.Buildings[i]
		if err := checkEntry("building", int(building.ID), building.Name); err != nil {
			return nil, err
		}
		if _, exists := c.buildings[building.ID]; exists {
			return nil, duplicate("building", int(building.ID))
		}
		if !building.Type.BuildingGroup() {
			return nil, invalid("building", int(building.ID), "type must be building or structure")
		}
		for _, unitID := range building.Units {
			if _, ok := c.units[unitID]; !ok {
				return nil, unknown(apperrors.CodeUnknownUnit, int(unitID))
			}
		}
		building.Units = append([]UnitID(nil), building.Units...)
		if building.Aura != nil {
			aura := *building.Aura
			building.Aura = &aura
		}
		c.buildings[building.ID] = &building
	}
	for _, building := range c.buildings {
		if building.HQConversion == 0 {
			continue
		}
		if _, ok := c.buildings[building.HQConversion]; !ok {
			return nil, unknown(apperrors.CodeUnknownBuilding, int(building.HQConversion))
		}
	}

	c.content = c.snapshot()
	return c, nil
}

// Unit looks up a unit type.
func (c *Catalog) Unit(id UnitID) (*UnitInfo, bool) {
	info, ok := c.units[id]
	return info, ok
}

// Building looks up a building type.
func (c *Catalog) Building(id BuildingID) (*BuildingInfo, bool) {
	info, ok := c.buildings[id]
	return info, ok
}

// Tile looks up a tile type.
func (c *Catalog) Tile(id TileID) (*TileInfo, bool) {
	info, ok := c.tiles[id]
	return info, ok
}

// Weapon looks up a weapon.
func (c *Catalog) Weapon(id WeaponID) (Weapon, bool) {
	weapon, ok := c.weapons[id]
	if !ok {
		return Weapon{}, false
	}
	return weapon.clone(), true
}

// MovementType looks up a movement type.
func (c *Catalog) MovementType(id MovementTypeID) (MovementType, bool) {
	mt, ok := c.movementTypes[id]
	if !ok {
		return MovementType{}, false
	}
	return *mt, true
}

// RequireUnit looks up a unit type and fails on an unknown id.
func (c *Catalog) RequireUnit(id UnitID) (*UnitInfo, error) {
	if info, ok := c.units[id]; ok {
		return info, nil
	}
	return nil, unknown(apperrors.CodeUnknownUnit, int(id))
}

// RequireBuilding looks up a building type and fails on an unknown id.
func (c *Catalog) RequireBuilding(id BuildingID) (*BuildingInfo, error) {
	if info, ok := c.buildings[id]; ok {
		return info, nil
	}
	return nil, unknown(apperrors.CodeUnknownBuilding, int(id))
}

// RequireTile looks up a tile type and fails on an unknown id.
func (c *Catalog) RequireTile(id TileID) (*TileInfo, error) {
	if info, ok := c.tiles[id]; ok {
		return info, nil
	}
	return nil, unknown(apperrors.CodeUnknownTile, int(id))
}

// Units returns all unit types ordered by id.
func (c *Catalog) Units() []*UnitInfo {
	out := make([]*UnitInfo, 0, len(c.units))
	for _, info := range c.units {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Buildings returns all building types ordered by id.
func (c *Catalog) Buildings() []*BuildingInfo {
	out := make([]*BuildingInfo, 0, len(c.buildings))
	for _, info := range c.buildings {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Tiles returns all tile types ordered by id.
func (c *Catalog) Tiles() []*TileInfo {
	out := make([]*TileInfo, 0, len(c.tiles))
	for _, info := range c.tiles {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Content returns the catalog as id-ordered raw content. The result is a
// deep copy; changing it does not affect the catalog.
func (c *Catalog) Content() Content {
	return c.content.clone()
}

func (c *Catalog) snapshot() Content {
	var content Content
	for _, mt := range c.movementTypes {
		content.MovementTypes = append(content.MovementTypes, *mt)
	}
	sort.Slice(content.MovementTypes, func(i, j int) bool { return content.MovementTypes[i].ID < content.MovementTypes[j].ID })
	for _, weapon := range c.weapons {
		content.Weapons = append(content.Weapons, weapon.clone())
	}
	sort.Slice(content.Weapons, func(i, j int) bool { return content.Weapons[i].ID < content.Weapons[j].ID })
	for _, tile := range c.Tiles() {
		content.Tiles = append(content.Tiles, tile.clone())
	}
	for _, unit := range c.Units() {
		raw := unit.clone()
		raw.weapons = nil
		content.Units = append(content.Units, raw)
	}
	for _, building := range c.Buildings() {
		content.Buildings = append(content.Buildings, building.clone())
	}
	return content
}

func (c Content) clone() Content {
	out := Content{MovementTypes: slices.Clone(c.MovementTypes)}
	for _, weapon := range c.Weapons {
		out.Weapons = append(out.Weapons, weapon.clone())
	}
	for _, tile := range c.Tiles {
		out.Tiles = append(out.Tiles, tile.clone())
	}
	for _, unit := range c.Units {
		out.Units = append(out.Units, unit.clone())
	}
	for _, building := range c.Buildings {
		out.Buildings = append(out.Buildings, building.clone())
	}
	return out
}

func checkEntry(kind string, id int, name string) error {
	if id <= 0 {
		return invalid(kind, id, "id must be positive")
	}
	if strings.TrimSpace(name) == "" {
		return invalid(kind, id, "name is required")
	}
	return nil
}

func unknown(code apperrors.Code, id int) error {
	return apperrors.WithMetadata(code, "unknown catalog id "+strconv.Itoa(id), map[string]string{
		"ID": strconv.Itoa(id),
	})
}

func duplicate(kind string, id int) error {
	return apperrors.WithMetadata(apperrors.CodeDuplicateEntry, kind+" "+strconv.Itoa(id)+" defined twice", map[string]string{
		"Kind": kind,
		"ID":   strconv.Itoa(id),
	})
}

func invalid(kind string, id int, reason string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidEntry, kind+" "+strconv.Itoa(id)+": "+reason, map[string]string{
		"Kind": kind,
		"ID":   strconv.Itoa(id),
	})
}
