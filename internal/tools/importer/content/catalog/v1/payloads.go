package contentimporter

import "github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"

const payloadVersion = "v1"

// payload is the envelope shared by every content file.
type payload[T any] struct {
	Version string `json:"version"`
	Source  string `json:"source"`
	Items   []T    `json:"items"`
}

type movementTypePayload = payload[catalog.MovementType]
type weaponPayload = payload[catalog.Weapon]
type tilePayload = payload[catalog.TileInfo]
type unitPayload = payload[catalog.UnitInfo]
type buildingPayload = payload[catalog.BuildingInfo]

type contentPayloads struct {
	MovementTypes *movementTypePayload
	Weapons       *weaponPayload
	Tiles         *tilePayload
	Units         *unitPayload
	Buildings     *buildingPayload
}

func (p contentPayloads) content() catalog.Content {
	return catalog.Content{
		MovementTypes: p.MovementTypes.Items,
		Weapons:       p.Weapons.Items,
		Tiles:         p.Tiles.Items,
		Units:         p.Units.Items,
		Buildings:     p.Buildings.Items,
	}
}
