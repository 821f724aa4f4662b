package unit

import (
	"encoding/json"
	"strconv"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/player"
)

// Plain is the persisted shape of a unit. Keys are single letters because
// units are embedded many times in save and replay payloads.
type Plain struct {
	ID        int                `json:"i"`
	Health    int                `json:"h"`
	Player    int                `json:"p"`
	Fuel      int                `json:"f"`
	Ammo      [][2]int           `json:"a,omitempty"`
	Transport []TransportedPlain `json:"t,omitempty"`
	Moved     bool               `json:"m,omitempty"`
	Capturing bool               `json:"c,omitempty"`
	Unfolded  bool               `json:"u,omitempty"`
	Completed bool               `json:"d,omitempty"`
	RescuedBy int                `json:"r,omitempty"`
	Status    int                `json:"s,omitempty"`
	Shield    bool               `json:"g,omitempty"`
	Label     *int               `json:"l,omitempty"`
	Name      *int               `json:"n,omitempty"`
	Behavior  int                `json:"b,omitempty"`
}

// TransportedPlain is the persisted shape of a carried unit.
type TransportedPlain struct {
	ID        int                `json:"i"`
	Health    int                `json:"h"`
	Player    int                `json:"p"`
	Fuel      int                `json:"f"`
	Ammo      [][2]int           `json:"a,omitempty"`
	Transport []TransportedPlain `json:"t,omitempty"`
	Moved     bool               `json:"m,omitempty"`
	Status    int                `json:"s,omitempty"`
	Shield    bool               `json:"g,omitempty"`
	Label     *int               `json:"l,omitempty"`
	Name      *int               `json:"n,omitempty"`
	Behavior  int                `json:"b,omitempty"`
}

// ToPlain converts the unit into its persisted shape.
func (u Unit) ToPlain() Plain {
	return Plain{
		ID:        int(u.info.ID),
		Health:    u.health,
		Player:    int(u.player),
		Fuel:      u.fuel,
		Ammo:      sortedAmmo(u.ammo),
		Transport: transportsToPlain(u.transports),
		Moved:     u.moved,
		Capturing: u.capturing,
		Unfolded:  u.unfolded,
		Completed: u.completed,
		RescuedBy: int(u.rescuedBy),
		Status:    int(u.status),
		Shield:    u.shield,
		Label:     optional(int(u.label), u.hasLabel),
		Name:      optional(u.name, u.hasName),
		Behavior:  int(u.behavior),
	}
}

// ToPlain converts the carried unit into its persisted shape.
func (t *TransportedUnit) ToPlain() TransportedPlain {
	return TransportedPlain{
		ID:        int(t.info.ID),
		Health:    t.health,
		Player:    int(t.player),
		Fuel:      t.fuel,
		Ammo:      sortedAmmo(t.ammo),
		Transport: transportsToPlain(t.transports),
		Moved:     t.moved,
		Status:    int(t.status),
		Shield:    t.shield,
		Label:     optional(int(t.label), t.hasLabel),
		Name:      optional(t.name, t.hasName),
		Behavior:  int(t.behavior),
	}
}

// FromPlain rebuilds a unit against cat. Values outside the ranges a unit
// can reach are rejected.
func FromPlain(cat *catalog.Catalog, p Plain) (Unit, error) {
	u, err := restore(cat, p.ID, p.Health, p.Player, p.Fuel, p.Ammo)
	if err != nil {
		return Unit{}, err
	}
	if err := checkFlags(p.ID, p.Status, p.Behavior); err != nil {
		return Unit{}, err
	}
	if p.Capturing && p.Unfolded {
		return Unit{}, invalidPlain(p.ID, "capturing while unfolded")
	}
	if p.Unfolded && !u.info.HasAbility(catalog.AbilityUnfold) {
		return Unit{}, invalidPlain(p.ID, "unit cannot unfold")
	}
	transports, err := transportsFromPlain(cat, p.Transport)
	if err != nil {
		return Unit{}, err
	}
	if transports != nil {
		u.transports = transports
	}
	u.moved = p.Moved
	u.capturing = p.Capturing
	u.unfolded = p.Unfolded
	u.completed = p.Completed
	u.rescuedBy = player.ID(p.RescuedBy)
	u.status = StatusEffect(p.Status)
	u.shield = p.Shield
	if p.Label != nil {
		u.label, u.hasLabel = player.ID(*p.Label), true
	}
	if p.Name != nil {
		u.name, u.hasName = *p.Name, true
	}
	u.behavior = AIBehavior(p.Behavior)
	return u, nil
}

func transportedFromPlain(cat *catalog.Catalog, p TransportedPlain) (*TransportedUnit, error) {
	u, err := restore(cat, p.ID, p.Health, p.Player, p.Fuel, p.Ammo)
	if err != nil {
		return nil, err
	}
	if err := checkFlags(p.ID, p.Status, p.Behavior); err != nil {
		return nil, err
	}
	transports, err := transportsFromPlain(cat, p.Transport)
	if err != nil {
		return nil, err
	}
	if transports != nil {
		u.transports = transports
	}
	u.moved = p.Moved
	u.status = StatusEffect(p.Status)
	u.shield = p.Shield
	if p.Label != nil {
		u.label, u.hasLabel = player.ID(*p.Label), true
	}
	if p.Name != nil {
		u.name, u.hasName = *p.Name, true
	}
	u.behavior = AIBehavior(p.Behavior)
	return u.ToTransported(), nil
}

// Marshal encodes the unit in its persisted shape.
func Marshal(u Unit) ([]byte, error) {
	return json.Marshal(u.ToPlain())
}

// Unmarshal decodes a unit written by Marshal.
func Unmarshal(cat *catalog.Catalog, data []byte) (Unit, error) {
	var p Plain
	if err := json.Unmarshal(data, &p); err != nil {
		return Unit{}, apperrors.Wrap(apperrors.CodeInvalidPlainUnit, "decode unit", err)
	}
	return FromPlain(cat, p)
}

func restore(cat *catalog.Catalog, id, health, owner, fuel int, ammo [][2]int) (Unit, error) {
	info, err := cat.RequireUnit(catalog.UnitID(id))
	if err != nil {
		return Unit{}, err
	}
	if health < 0 || health > MaxHealth {
		return Unit{}, invalidPlain(id, "health out of range")
	}
	if owner < 0 {
		return Unit{}, invalidPlain(id, "negative owner")
	}
	if fuel < 0 || fuel > info.Fuel {
		return Unit{}, invalidPlain(id, "fuel out of range")
	}
	u := New(info, player.ID(owner))
	u.health = health
	u.fuel = fuel
	for _, pair := range ammo {
		w, ok := info.Weapon(catalog.WeaponID(pair[0]))
		if !ok || !w.Limited() {
			return Unit{}, invalidPlain(id, "ammo for weapon "+strconv.Itoa(pair[0]))
		}
		if pair[1] < 0 || pair[1] > w.Supply {
			return Unit{}, invalidPlain(id, "ammo out of range")
		}
		u.ammo[w.ID] = pair[1]
	}
	return u, nil
}

func checkFlags(id, status, behavior int) error {
	if status < int(StatusNone) || status > int(StatusPoison) {
		return invalidPlain(id, "unknown status effect")
	}
	if behavior < 0 || behavior > int(BehaviorPassive) {
		return invalidPlain(id, "unknown behavior")
	}
	return nil
}

func transportsFromPlain(cat *catalog.Catalog, plain []TransportedPlain) ([]*TransportedUnit, error) {
	if len(plain) == 0 {
		return nil, nil
	}
	out := make([]*TransportedUnit, 0, len(plain))
	for _, p := range plain {
		t, err := transportedFromPlain(cat, p)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func transportsToPlain(transports []*TransportedUnit) []TransportedPlain {
	if len(transports) == 0 {
		return nil
	}
	out := make([]TransportedPlain, len(transports))
	for i, t := range transports {
		out[i] = t.ToPlain()
	}
	return out
}

func optional(v int, ok bool) *int {
	if !ok {
		return nil
	}
	return &v
}

func invalidPlain(id int, reason string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidPlainUnit, "unit "+strconv.Itoa(id)+": "+reason, map[string]string{
		"ID": strconv.Itoa(id),
	})
}
