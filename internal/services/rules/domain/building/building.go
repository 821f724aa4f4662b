// Package building models building instances on the map as immutable values.
package building

import (
	"sort"
	"strconv"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/player"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/skill"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/unit"
)

// MaxHealth is the health of an intact building.
const MaxHealth = 100

// Building is a building instance. Structures always belong to the neutral
// player and an HQ never does.
type Building struct {
	info      *catalog.BuildingInfo
	health    int
	player    player.ID
	completed bool
	label     player.ID
	hasLabel  bool
	behaviors []unit.AIBehavior
	skills    *skill.Set
}

// Option customizes a building at creation.
type Option func(*Building)

func WithHealth(health int) Option {
	return func(b *Building) { b.health = clampHealth(health) }
}

func WithLabel(label player.ID) Option {
	return func(b *Building) { b.label, b.hasLabel = label, true }
}

func WithBehaviors(behaviors ...unit.AIBehavior) Option {
	return func(b *Building) { b.behaviors = normalizeBehaviors(behaviors) }
}

// WithSkills sets the research offer. It is ignored unless the building
// researches.
func WithSkills(skills skill.Set) Option {
	return func(b *Building) {
		if b.skills != nil {
			b.skills = &skills
		}
	}
}

func WithCompleted() Option {
	return func(b *Building) { b.completed = true }
}

// New creates a building of info owned by owner.
func New(info *catalog.BuildingInfo, owner player.ID, opts ...Option) (Building, error) {
	if info.IsStructure() {
		owner = player.Neutral
	}
	if info.HQ && owner == player.Neutral {
		return Building{}, neutralHQ(info.ID)
	}
	b := Building{
		info:   info,
		health: MaxHealth,
		player: owner,
	}
	if info.HasBehavior(catalog.BehaviorResearch) {
		b.skills = &skill.Set{}
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b, nil
}

// Create looks up id in cat and creates a building.
func Create(cat *catalog.Catalog, id catalog.BuildingID, owner player.ID, opts ...Option) (Building, error) {
	info, err := cat.RequireBuilding(id)
	if err != nil {
		return Building{}, err
	}
	return New(info, owner, opts...)
}

func (b Building) Info() *catalog.BuildingInfo {
	return b.info
}

func (b Building) ID() catalog.BuildingID {
	return b.info.ID
}

func (b Building) Health() int {
	return b.health
}

func (b Building) Player() player.ID {
	return b.player
}

func (b Building) IsCompleted() bool {
	return b.completed
}

func (b Building) IsHQ() bool {
	return b.info.HQ
}

func (b Building) IsStructure() bool {
	return b.info.IsStructure()
}

func (b Building) IsNeutral() bool {
	return b.player == player.Neutral
}

func (b Building) Label() (player.ID, bool) {
	return b.label, b.hasLabel
}

func (b Building) Behaviors() []unit.AIBehavior {
	return append([]unit.AIBehavior(nil), b.behaviors...)
}

// Skills returns the research offer. ok is false for buildings that do not
// research.
func (b Building) Skills() (skill.Set, bool) {
	if b.skills == nil {
		return skill.Set{}, false
	}
	return *b.skills, true
}

func (b Building) SetHealth(health int) Building {
	b.health = clampHealth(health)
	return b
}

func (b Building) ModifyHealth(delta int) Building {
	return b.SetHealth(b.health + delta)
}

// SetPlayer transfers ownership. Structures stay neutral and an HQ cannot
// become neutral.
func (b Building) SetPlayer(owner player.ID) (Building, error) {
	if b.info.IsStructure() {
		return b, nil
	}
	if b.info.HQ && owner == player.Neutral {
		return Building{}, neutralHQ(b.info.ID)
	}
	b.player = owner
	return b, nil
}

// Capture hands the building to owner. A captured HQ turns into its
// conversion type when owner already holds an HQ.
func (b Building) Capture(owner player.ID, ownsHQ bool, cat *catalog.Catalog) (Building, error) {
	if b.info.HQ && ownsHQ && b.info.HQConversion != 0 {
		info, err := cat.RequireBuilding(b.info.HQConversion)
		if err != nil {
			return Building{}, err
		}
		b.info = info
		if b.skills == nil && info.HasBehavior(catalog.BehaviorResearch) {
			b.skills = &skill.Set{}
		}
	}
	return b.SetPlayer(owner)
}

func (b Building) Complete() Building {
	b.completed = true
	return b
}

func (b Building) Recover() Building {
	b.completed = false
	return b
}

func (b Building) SetLabel(label player.ID) Building {
	b.label, b.hasLabel = label, true
	return b
}

func (b Building) RemoveLabel() Building {
	b.label, b.hasLabel = 0, false
	return b
}

func (b Building) SetBehaviors(behaviors ...unit.AIBehavior) Building {
	b.behaviors = normalizeBehaviors(behaviors)
	return b
}

// SetSkills replaces the research offer of a research building.
func (b Building) SetSkills(skills skill.Set) Building {
	if b.skills == nil {
		return b
	}
	b.skills = &skills
	return b
}

func clampHealth(health int) int {
	return min(MaxHealth, max(0, health))
}

func normalizeBehaviors(behaviors []unit.AIBehavior) []unit.AIBehavior {
	if len(behaviors) == 0 {
		return nil
	}
	seen := make(map[unit.AIBehavior]bool, len(behaviors))
	out := make([]unit.AIBehavior, 0, len(behaviors))
	for _, behavior := range behaviors {
		if !seen[behavior] {
			seen[behavior] = true
			out = append(out, behavior)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func neutralHQ(id catalog.BuildingID) error {
	return apperrors.WithMetadata(apperrors.CodeNeutralHQ, "hq "+strconv.Itoa(int(id))+" cannot be neutral", map[string]string{
		"ID": strconv.Itoa(int(id)),
	})
}
