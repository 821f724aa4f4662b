package building

import (
	"encoding/json"
	"strconv"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/player"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/skill"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/unit"
)

// Plain is the persisted shape of a building.
type Plain struct {
	ID        int        `json:"i"`
	Health    int        `json:"h"`
	Player    int        `json:"p"`
	Completed bool       `json:"d,omitempty"`
	Label     *int       `json:"l,omitempty"`
	Behaviors []int      `json:"b,omitempty"`
	Skills    *skill.Set `json:"s,omitempty"`
}

func (b Building) ToPlain() Plain {
	p := Plain{
		ID:        int(b.info.ID),
		Health:    b.health,
		Player:    int(b.player),
		Completed: b.completed,
	}
	if b.hasLabel {
		label := int(b.label)
		p.Label = &label
	}
	for _, behavior := range b.behaviors {
		p.Behaviors = append(p.Behaviors, int(behavior))
	}
	if b.skills != nil {
		skills := *b.skills
		p.Skills = &skills
	}
	return p
}

// FromPlain rebuilds a building against cat.
func FromPlain(cat *catalog.Catalog, p Plain) (Building, error) {
	info, err := cat.RequireBuilding(catalog.BuildingID(p.ID))
	if err != nil {
		return Building{}, err
	}
	if p.Health < 0 || p.Health > MaxHealth {
		return Building{}, invalidPlain(p.ID, "health out of range")
	}
	if p.Player < 0 {
		return Building{}, invalidPlain(p.ID, "negative owner")
	}
	if info.IsStructure() && p.Player != int(player.Neutral) {
		return Building{}, invalidPlain(p.ID, "owned structure")
	}
	if p.Skills != nil && !info.HasBehavior(catalog.BehaviorResearch) {
		return Building{}, invalidPlain(p.ID, "skills on a building without research")
	}
	behaviors := make([]unit.AIBehavior, 0, len(p.Behaviors))
	for _, v := range p.Behaviors {
		if v < int(unit.BehaviorAttack) || v > int(unit.BehaviorPassive) {
			return Building{}, invalidPlain(p.ID, "unknown behavior "+strconv.Itoa(v))
		}
		behaviors = append(behaviors, unit.AIBehavior(v))
	}
	b, err := New(info, player.ID(p.Player), WithHealth(p.Health), WithBehaviors(behaviors...))
	if err != nil {
		return Building{}, err
	}
	b.completed = p.Completed
	if p.Label != nil {
		b.label, b.hasLabel = player.ID(*p.Label), true
	}
	if p.Skills != nil {
		b = b.SetSkills(*p.Skills)
	}
	return b, nil
}

func Marshal(b Building) ([]byte, error) {
	return json.Marshal(b.ToPlain())
}

func Unmarshal(cat *catalog.Catalog, data []byte) (Building, error) {
	var p Plain
	if err := json.Unmarshal(data, &p); err != nil {
		return Building{}, apperrors.Wrap(apperrors.CodeInvalidPlainBuilding, "decode building", err)
	}
	return FromPlain(cat, p)
}

func invalidPlain(id int, reason string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidPlainBuilding, "building "+strconv.Itoa(id)+": "+reason, map[string]string{
		"ID": strconv.Itoa(id),
	})
}
